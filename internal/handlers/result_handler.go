package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"airhr/resume-analyzer/internal/models"
	"airhr/resume-analyzer/internal/repositories"
	"airhr/resume-analyzer/internal/services"
)

type ResultHandler struct {
	batchRepo repositories.BatchRepository
}

func NewResultHandler(batchRepo repositories.BatchRepository) *ResultHandler {
	return &ResultHandler{
		batchRepo: batchRepo,
	}
}

// HandleGetResult handles GET /result/:id. Candidate rows are always
// included; the threshold and best-set views are computed once the batch
// has finished.
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	batchID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID format",
		})
	}

	batch, err := h.batchRepo.FindByID(batchID)
	if err != nil {
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

	response := models.ResultResponse{
		ID:        batch.ID.String(),
		Status:    string(batch.Status),
		Threshold: batch.ScoreThreshold,
	}

	ranked := services.SortByScore(candidates)
	for _, candidate := range ranked {
		response.Candidates = append(response.Candidates, toCandidateView(candidate))
	}

	if batch.Status == models.StatusCompleted {
		for _, candidate := range services.FilterByThreshold(candidates, batch.ScoreThreshold) {
			response.Passed = append(response.Passed, candidate.Name)
		}
		for _, candidate := range services.BestSet(candidates) {
			response.Best = append(response.Best, candidate.Name)
		}
	}

	if batch.Status == models.StatusFailed {
		response.ErrorMessage = batch.ErrorMessage
	}

	return c.JSON(response)
}

func toCandidateView(c models.Candidate) models.CandidateView {
	return models.CandidateView{
		Name:               c.Name,
		Score:              displayNumber(c.Score),
		MatchPercent:       displayNumber(c.MatchPercent),
		Experience:         c.Experience,
		Verdict:            c.Verdict,
		HireRecommendation: c.HireRecommendation,
		Strengths:          c.Strengths,
		RedFlags:           c.RedFlags,
		Summary:            c.Summary,
		FullReply:          c.FullReply,
	}
}

func displayNumber(n *int) string {
	if n == nil {
		return services.MissingValue
	}
	return strconv.Itoa(*n)
}
