package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"airhr/resume-analyzer/internal/models"
)

type BatchRepository interface {
	CreateWithCandidates(batch *models.Batch, candidates []models.Candidate) error
	FindByID(id uuid.UUID) (*models.Batch, error)
	FindCandidates(batchID uuid.UUID) ([]models.Candidate, error)
	UpdateStatus(id uuid.UUID, status models.BatchStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
	UpdateCandidateResult(id uuid.UUID, data *CandidateUpdateData) error
	FindPendingBatches(limit int) ([]models.Batch, error)
}

// CandidateUpdateData carries one parsed evaluation. Nil numeric pointers
// mean the field was absent from the reply and the column stays NULL.
type CandidateUpdateData struct {
	Score              *int
	MatchPercent       *int
	Experience         string
	Verdict            string
	HireRecommendation string
	Strengths          string
	RedFlags           string
	Summary            string
	FullReply          string
}

type batchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

// CreateWithCandidates inserts the batch and its candidate rows in one
// transaction so a partially created batch never becomes visible.
func (r *batchRepository) CreateWithCandidates(batch *models.Batch, candidates []models.Candidate) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}
		for i := range candidates {
			candidates[i].BatchID = batch.ID
		}
		if len(candidates) > 0 {
			if err := tx.Create(&candidates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	return nil
}

func (r *batchRepository) FindByID(id uuid.UUID) (*models.Batch, error) {
	var batch models.Batch
	if err := r.db.Where("id = ?", id).First(&batch).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("batch not found")
		}
		return nil, fmt.Errorf("failed to find batch: %w", err)
	}
	return &batch, nil
}

func (r *batchRepository) FindCandidates(batchID uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.
		Where("batch_id = ?", batchID).
		Order("position ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	return candidates, nil
}

func (r *batchRepository) UpdateStatus(id uuid.UUID, status models.BatchStatus) error {
	result := r.db.Model(&models.Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("batch not found")
	}

	return nil
}

func (r *batchRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("batch not found")
	}

	return nil
}

func (r *batchRepository) UpdateCandidateResult(id uuid.UUID, data *CandidateUpdateData) error {
	updates := map[string]interface{}{
		"score":               data.Score,
		"match_percent":       data.MatchPercent,
		"experience":          data.Experience,
		"verdict":             data.Verdict,
		"hire_recommendation": data.HireRecommendation,
		"strengths":           data.Strengths,
		"red_flags":           data.RedFlags,
		"summary":             data.Summary,
		"full_reply":          data.FullReply,
		"updated_at":          time.Now(),
	}

	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update candidate: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}

	return nil
}

func (r *batchRepository) FindPendingBatches(limit int) ([]models.Batch, error) {
	var batches []models.Batch
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&batches).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending batches: %w", err)
	}

	return batches, nil
}
