package models

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is one row of an analysis batch. One row exists per input
// document or pasted chunk, created before processing starts, so a batch of
// N inputs always yields N rows regardless of how processing goes.
//
// Nullable integer columns encode the missing-value sentinel: a nil Score is
// "the reply carried no score", which is not the same as a score of zero.
type Candidate struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BatchID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"batch_id"`
	Position           int        `gorm:"not null" json:"position"`
	Name               string     `gorm:"type:text;not null" json:"name"`
	DocumentID         *uuid.UUID `gorm:"type:uuid" json:"document_id,omitempty"`
	PastedText         string     `gorm:"type:text" json:"-"`
	Score              *int       `json:"score,omitempty"`
	MatchPercent       *int       `json:"match_percent,omitempty"`
	Experience         string     `gorm:"type:text" json:"experience"`
	Verdict            string     `gorm:"type:text" json:"verdict"`
	HireRecommendation string     `gorm:"type:text" json:"hire_recommendation"`
	Strengths          string     `gorm:"type:text" json:"strengths"`
	RedFlags           string     `gorm:"type:text" json:"red_flags"`
	Summary            string     `gorm:"type:text" json:"summary"`
	FullReply          string     `gorm:"type:text" json:"full_reply"`
	CreatedAt          time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Document *Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}
