package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/reporting"
	"gorm.io/gorm"
)

// ProjectStatus describes the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusPlanning ProjectStatus = "planning"
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusOnHold   ProjectStatus = "on_hold"
	ProjectStatusClosed   ProjectStatus = "closed"
)

// Valid reports whether the status is one of the known project states.
func (s ProjectStatus) Valid() bool {
	return s == ProjectStatusPlanning || s == ProjectStatusActive || s == ProjectStatusOnHold || s == ProjectStatusClosed
}

// Project represents a staffed engagement. Its funded scope is the sum
// of its assignments' funded hours.
type Project struct {
	DefaultModel
	ManagerID   uuid.UUID `gorm:"uniqueIndex:project_manager_id_code"`
	Manager     User      `json:"-"`
	Code        string    `gorm:"uniqueIndex:project_manager_id_code"`
	Name        string
	Description string
	Status      ProjectStatus
	StartDate   time.Time
	Sprints     int
}

// DefaultEnd returns the estimated project end date. It is used as the
// reporting window end when the project has no allocations yet.
func (p Project) DefaultEnd() time.Time {
	return reporting.DefaultProjectEnd(p.StartDate, p.Sprints)
}

// BeforeSave trims whitespace, defaults the status and verifies that
// the sprint count is positive.
func (p *Project) BeforeSave(_ *gorm.DB) error {
	p.Code = strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	if p.Status == "" {
		p.Status = ProjectStatusPlanning
	}

	if p.Sprints <= 0 {
		return ErrSprintsNotPositive
	}

	return nil
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Project)
	return p.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the project before committing an
// update to the database.
func (p *Project) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("ManagerID") {
		toSave := tx.Statement.Dest.(Project)
		return p.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources.
func (p *Project) checkIntegrity(tx *gorm.DB, toSave Project) error {
	return tx.First(&User{}, toSave.ManagerID).Error
}

// BeforeDelete removes the project's assignments and monthly hour
// overrides. Allocations are removed by the assignment's delete hook.
func (p *Project) BeforeDelete(tx *gorm.DB) error {
	var assignments []Assignment
	err := tx.Where(Assignment{ProjectID: p.ID}).Find(&assignments).Error
	if err != nil {
		return err
	}

	for _, assignment := range assignments {
		err = tx.Delete(&assignment).Error
		if err != nil {
			return err
		}
	}

	return tx.Where(MonthlyHourOverride{ProjectID: p.ID}).Delete(&MonthlyHourOverride{}).Error
}
