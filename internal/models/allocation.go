package models

import (
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/types"
	"gorm.io/gorm"
)

// Allocation commits hours of an assignment to a specific calendar
// month. There is at most one allocation per assignment and month.
//
// Hours have no upper bound, over-allocation is a derived warning on
// the dashboards and not a rejected write.
type Allocation struct {
	DefaultModel
	AssignmentID uuid.UUID   `gorm:"uniqueIndex:allocation_assignment_id_month"`
	Assignment   Assignment  `json:"-"`
	Month        types.Month `gorm:"uniqueIndex:allocation_assignment_id_month"`
	Hours        int
}

// BeforeSave verifies that the allocated hours are not negative.
func (a *Allocation) BeforeSave(_ *gorm.DB) error {
	if a.Hours < 0 {
		return ErrAllocatedHoursNegative
	}

	return nil
}

func (a *Allocation) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Allocation)
	return a.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the allocation before committing
// an update to the database.
func (a *Allocation) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Allocation)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("AssignmentID") {
		return a.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources.
func (a *Allocation) checkIntegrity(tx *gorm.DB, toSave Allocation) error {
	return tx.First(&Assignment{}, toSave.AssignmentID).Error
}
