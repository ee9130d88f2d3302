package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records who changed what. One row is written for every
// mutating staffing operation.
type AuditLog struct {
	DefaultModel
	ActorID    *uuid.UUID `json:"actorId"`
	Action     string     `json:"action"` // e.g. "allocation.distribute"
	EntityType string     `json:"entityType"`
	EntityID   *uuid.UUID `json:"entityId"`
	Detail     string     `json:"detail"`
}

// Audit writes an audit log entry. Failures are returned to the caller
// so that the surrounding transaction rolls back the audited change too.
func Audit(db *gorm.DB, actorID *uuid.UUID, action, entityType string, entityID *uuid.UUID, detail string) error {
	entry := AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}

	return db.Create(&entry).Error
}
