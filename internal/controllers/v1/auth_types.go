package v1

import (
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/models"
)

// RegisterEditable represents the parameters of a registration request
type RegisterEditable struct {
	Email      string            `json:"email" example:"clara.weiss@example.com"`
	Password   string            `json:"password" example:"hunter2hunter2"`
	FirstName  string            `json:"firstName" example:"Clara" default:""`
	LastName   string            `json:"lastName" example:"Weiss" default:""`
	SystemRole models.SystemRole `json:"systemRole" example:"manager" default:"employee"` // One of admin, manager, employee
	ManagerID  *uuid.UUID        `json:"managerId" example:"b3f29c95-1b5c-4e3f-9f3c-c2f1f2f46d3a"`
}

func (editable RegisterEditable) model() models.User {
	return models.User{
		Email:      editable.Email,
		FirstName:  editable.FirstName,
		LastName:   editable.LastName,
		SystemRole: editable.SystemRole,
		ManagerID:  editable.ManagerID,
		Active:     true,
	}
}

// LoginEditable represents the parameters of a login request
type LoginEditable struct {
	Email    string `json:"email" example:"clara.weiss@example.com"`
	Password string `json:"password" example:"hunter2hunter2"`
}

type LoginData struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // Bearer token, valid for 24 hours
	User  User   `json:"user"`                                                    // The authenticated user
}

type LoginResponse struct {
	Data  *LoginData `json:"data"`                                               // Token and user for a successful login
	Error *string    `json:"error" example:"the email or password is incorrect"` // The error, if any occurred
}
