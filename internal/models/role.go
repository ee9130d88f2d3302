package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a staffing role, e.g. "Backend Engineer". Roles are scoped to
// the manager who created them so that tenants do not share label sets.
type Role struct {
	DefaultModel
	OwnerID     uuid.UUID `gorm:"uniqueIndex:role_owner_id_name"`
	Name        string    `gorm:"uniqueIndex:role_owner_id_name"`
	Description string
}

func (r *Role) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	return nil
}
