package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment is a budgeted staffing commitment of one user to one
// project. The funded hours are the assignment's total budget, the
// monthly allocations spend against it.
type Assignment struct {
	DefaultModel
	ProjectID   uuid.UUID `gorm:"uniqueIndex:assignment_project_id_user_id"`
	Project     Project   `json:"-"`
	UserID      uuid.UUID `gorm:"uniqueIndex:assignment_project_id_user_id"`
	User        User      `json:"-"`
	RoleID      uuid.UUID
	Role        Role `json:"-"`
	LCATID      *uuid.UUID
	LCAT        *LCAT `json:"-"`
	FundedHours int
	Note        string
}

// BeforeSave verifies that the funded hours are not negative.
func (a *Assignment) BeforeSave(_ *gorm.DB) error {
	if a.FundedHours < 0 {
		return ErrFundedHoursNegative
	}

	return nil
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Assignment)
	return a.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the assignment before committing
// an update to the database.
func (a *Assignment) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Assignment)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("ProjectID") || tx.Statement.Changed("UserID") || tx.Statement.Changed("RoleID") || tx.Statement.Changed("LCATID") {
		return a.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources.
func (a *Assignment) checkIntegrity(tx *gorm.DB, toSave Assignment) error {
	err := tx.First(&Project{}, toSave.ProjectID).Error
	if err != nil {
		return err
	}

	err = tx.First(&User{}, toSave.UserID).Error
	if err != nil {
		return err
	}

	err = tx.First(&Role{}, toSave.RoleID).Error
	if err != nil {
		return err
	}

	if toSave.LCATID != nil {
		return tx.First(&LCAT{}, *toSave.LCATID).Error
	}

	return nil
}

// BeforeDelete removes the assignment's allocations.
func (a *Assignment) BeforeDelete(tx *gorm.DB) error {
	return tx.Where(Allocation{AssignmentID: a.ID}).Delete(&Allocation{}).Error
}

// AllocatedHours returns the sum of hours the assignment already has
// allocated across all months.
func (a Assignment) AllocatedHours(db *gorm.DB) (int, error) {
	var sum struct {
		Hours int
	}

	err := db.Model(&Allocation{}).
		Select("COALESCE(SUM(hours), 0) AS hours").
		Where("assignment_id = ?", a.ID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum.Hours, nil
}
