package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LCAT is a labor category used for contract accounting, e.g.
// "Senior Software Engineer III". Like roles, LCATs are scoped to the
// manager who created them.
type LCAT struct {
	DefaultModel
	OwnerID     uuid.UUID       `gorm:"uniqueIndex:lcat_owner_id_name"`
	Name        string          `gorm:"uniqueIndex:lcat_owner_id_name"`
	Description string
	HourlyRate  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (l *LCAT) BeforeSave(_ *gorm.DB) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Description = strings.TrimSpace(l.Description)
	return nil
}
