package models

import (
	"time"

	"github.com/google/uuid"
)

type BatchStatus string

const (
	StatusQueued     BatchStatus = "queued"
	StatusProcessing BatchStatus = "processing"
	StatusCompleted  BatchStatus = "completed"
	StatusFailed     BatchStatus = "failed"
)

type Batch struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobTitle       string      `gorm:"type:text" json:"job_title"`
	JobDescription string      `gorm:"type:text" json:"job_description"`
	ScoreThreshold int         `gorm:"not null;default:50" json:"score_threshold"`
	Status         BatchStatus `gorm:"not null;default:'queued'" json:"status"`
	ErrorMessage   *string     `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Candidates []Candidate `gorm:"foreignKey:BatchID" json:"-"`
}

func (Batch) TableName() string {
	return "batches"
}
