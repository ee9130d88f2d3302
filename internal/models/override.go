package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/types"
	"gorm.io/gorm"
)

// MonthlyHourOverride replaces the computed standard working hours for
// one project month, e.g. to account for a holiday-heavy December.
type MonthlyHourOverride struct {
	Timestamps
	ProjectID uuid.UUID   `gorm:"primaryKey"`
	Month     types.Month `gorm:"primaryKey"`
	Hours     int
	Note      string
}

// BeforeSave verifies that the override is a usable capacity value.
// Zero or negative overrides would defeat the division guards downstream.
func (o *MonthlyHourOverride) BeforeSave(_ *gorm.DB) error {
	o.Note = strings.TrimSpace(o.Note)

	if o.Hours <= 0 {
		return ErrOverrideHoursNotPositive
	}

	return nil
}

// OverridesForProject returns the project's overrides keyed by month,
// in the shape the capacity calculation consumes.
func OverridesForProject(db *gorm.DB, projectID uuid.UUID) (map[types.Month]int, error) {
	var overrides []MonthlyHourOverride
	err := db.Where(MonthlyHourOverride{ProjectID: projectID}).Find(&overrides).Error
	if err != nil {
		return nil, err
	}

	result := make(map[types.Month]int, len(overrides))
	for _, o := range overrides {
		result[o.Month] = o.Hours
	}

	return result, nil
}
