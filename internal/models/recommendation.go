package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecommendationStatus tracks what happened to a staffing suggestion.
type RecommendationStatus string

const (
	RecommendationStatusPending   RecommendationStatus = "pending"
	RecommendationStatusAccepted  RecommendationStatus = "accepted"
	RecommendationStatusRejected  RecommendationStatus = "rejected"
	RecommendationStatusDismissed RecommendationStatus = "dismissed"
)

// Valid reports whether the status is one of the known states.
func (s RecommendationStatus) Valid() bool {
	return s == RecommendationStatusPending || s == RecommendationStatusAccepted || s == RecommendationStatusRejected || s == RecommendationStatusDismissed
}

// Recommendation is a persisted staffing suggestion produced by the
// chat assistant, kept so that managers can review it later.
type Recommendation struct {
	DefaultModel
	ManagerID uuid.UUID
	ProjectID *uuid.UUID
	UserID    *uuid.UUID
	Content   string
	Status    RecommendationStatus
}

func (r *Recommendation) BeforeSave(_ *gorm.DB) error {
	r.Content = strings.TrimSpace(r.Content)

	if r.Status == "" {
		r.Status = RecommendationStatusPending
	}

	return nil
}
