package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"airhr/resume-analyzer/internal/repositories"
	"airhr/resume-analyzer/internal/services"
)

type ReportHandler struct {
	batchRepo     repositories.BatchRepository
	exportService services.ExportService
}

func NewReportHandler(
	batchRepo repositories.BatchRepository,
	exportService services.ExportService,
) *ReportHandler {
	return &ReportHandler{
		batchRepo:     batchRepo,
		exportService: exportService,
	}
}

// HandleGetReport handles GET /report/:id?format=csv|xlsx and streams the
// candidate table as a downloadable file.
func (h *ReportHandler) HandleGetReport(c *fiber.Ctx) error {
	idParam := c.Params("id")
	batchID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID format",
		})
	}

	if _, err := h.batchRepo.FindByID(batchID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	candidates, err := h.batchRepo.FindCandidates(batchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load candidates",
		})
	}

	ranked := services.SortByScore(candidates)
	stamp := time.Now().Format("2006-01-02_15-04")

	format := c.Query("format", "csv")
	switch format {
	case "csv":
		data, err := h.exportService.ExportCSV(ranked)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to build CSV report",
			})
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="HR_Report_%s.csv"`, stamp))
		return c.Send(data)

	case "xlsx":
		data, err := h.exportService.ExportXLSX(ranked)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to build XLSX report",
			})
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="HR_Report_%s.xlsx"`, stamp))
		return c.Send(data)

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "format must be csv or xlsx",
		})
	}
}
