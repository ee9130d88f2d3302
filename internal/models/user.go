package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemRole determines which API surfaces a user can use.
type SystemRole string

const (
	SystemRoleAdmin    SystemRole = "admin"
	SystemRoleManager  SystemRole = "manager"
	SystemRoleEmployee SystemRole = "employee"
)

// Valid reports whether the role is one of the known system roles.
func (r SystemRole) Valid() bool {
	return r == SystemRoleAdmin || r == SystemRoleManager || r == SystemRoleEmployee
}

// User represents a person in the system, either staff that gets
// allocated to projects or a manager owning projects.
type User struct {
	DefaultModel
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	FirstName    string
	LastName     string
	SystemRole   SystemRole
	ManagerID    *uuid.UUID
	Manager      *User `json:"-"`
	Active       bool  `gorm:"default:true"`
}

// Name returns the user's full name for report payloads.
func (u User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// BeforeSave normalizes the email address and trims whitespace from
// all strings.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)

	if u.SystemRole == "" {
		u.SystemRole = SystemRoleEmployee
	}

	return nil
}

// BeforeDelete removes all assignments of the user. Their allocations
// are removed by the assignment's own delete hook.
func (u *User) BeforeDelete(tx *gorm.DB) error {
	var assignments []Assignment
	err := tx.Where(Assignment{UserID: u.ID}).Find(&assignments).Error
	if err != nil {
		return err
	}

	for _, assignment := range assignments {
		err = tx.Delete(&assignment).Error
		if err != nil {
			return err
		}
	}

	return nil
}
