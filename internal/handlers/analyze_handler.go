package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"airhr/resume-analyzer/internal/models"
	"airhr/resume-analyzer/internal/repositories"
	"airhr/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	batchRepo        repositories.BatchRepository
	docRepo          repositories.DocumentRepository
	worker           services.Worker
	defaultThreshold int
}

func NewAnalyzeHandler(
	batchRepo repositories.BatchRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
	defaultThreshold int,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		batchRepo:        batchRepo,
		docRepo:          docRepo,
		worker:           worker,
		defaultThreshold: defaultThreshold,
	}
}

// HandleAnalyze handles POST /analyze. One candidate row is created per
// input document and per pasted chunk before any processing starts, which is
// what guarantees a batch of N inputs always reports N records.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	pasted := services.SplitPasted(req.PastedText)
	if len(req.DocumentIDs) == 0 && len(pasted) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Provide document_ids and/or pasted_text with at least one candidate",
		})
	}

	threshold := h.defaultThreshold
	if req.ScoreThreshold != nil {
		if *req.ScoreThreshold < 0 || *req.ScoreThreshold > 100 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "score_threshold must be between 0 and 100",
			})
		}
		threshold = *req.ScoreThreshold
	}

	docIDs := make([]uuid.UUID, 0, len(req.DocumentIDs))
	for _, idStr := range req.DocumentIDs {
		docID, err := uuid.Parse(idStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid document id format: " + idStr,
			})
		}
		docIDs = append(docIDs, docID)
	}

	var candidates []models.Candidate
	now := time.Now()

	if len(docIDs) > 0 {
		docs, err := h.docRepo.FindByIDs(docIDs)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to look up documents",
			})
		}

		docsByID := make(map[uuid.UUID]models.Document, len(docs))
		for _, doc := range docs {
			docsByID[doc.ID] = doc
		}

		// candidate order follows the request, not the lookup result
		for _, docID := range docIDs {
			doc, ok := docsByID[docID]
			if !ok {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Document not found: " + docID.String(),
				})
			}

			id := doc.ID
			candidates = append(candidates, models.Candidate{
				ID:         uuid.New(),
				Position:   len(candidates) + 1,
				Name:       doc.OriginalFileName,
				DocumentID: &id,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
	}

	for _, chunk := range pasted {
		candidates = append(candidates, models.Candidate{
			ID:         uuid.New(),
			Position:   len(candidates) + 1,
			Name:       chunk.Name,
			PastedText: chunk.Text,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	batch := &models.Batch{
		ID:             uuid.New(),
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		ScoreThreshold: threshold,
		Status:         models.StatusQueued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.batchRepo.CreateWithCandidates(batch, candidates); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create analysis batch",
		})
	}

	h.worker.EnqueueBatch(batch.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{
		ID:         batch.ID.String(),
		Status:     string(models.StatusQueued),
		Candidates: len(candidates),
	})
}
