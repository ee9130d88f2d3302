package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	ez_uuid "github.com/staffalloc/backend/internal/uuid"
)

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Email      string            `json:"email" example:"clara.weiss@example.com"`
	FirstName  string            `json:"firstName" example:"Clara" default:""`
	LastName   string            `json:"lastName" example:"Weiss" default:""`
	SystemRole models.SystemRole `json:"systemRole" example:"manager" default:"employee"` // One of admin, manager, employee
	ManagerID  *uuid.UUID        `json:"managerId" example:"b3f29c95-1b5c-4e3f-9f3c-c2f1f2f46d3a"`
	Active     bool              `json:"active" example:"true" default:"true"` // Inactive users are kept for historical reports
}

func (editable UserEditable) model() models.User {
	return models.User{
		Email:      editable.Email,
		FirstName:  editable.FirstName,
		LastName:   editable.LastName,
		SystemRole: editable.SystemRole,
		ManagerID:  editable.ManagerID,
		Active:     editable.Active,
	}
}

type UserLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/users/d3c4c57a-32d6-4b0b-b243-a16d1a1a37c5"`                   // The user itself
	Assignments string `json:"assignments" example:"https://example.com/api/v1/assignments?user=d3c4c57a-32d6-4b0b-b243-a16d1a1a37c5"` // All assignments of this user
	Timeline    string `json:"timeline" example:"https://example.com/api/v1/reports/employees/d3c4c57a-32d6-4b0b-b243-a16d1a1a37c5"`   // The user's allocation timeline
}

type User struct {
	models.DefaultModel
	UserEditable
	Links UserLinks `json:"links"`
}

func newUser(c *gin.Context, model models.User) User {
	url := httputil.RequestHost(c)

	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Email:      model.Email,
			FirstName:  model.FirstName,
			LastName:   model.LastName,
			SystemRole: model.SystemRole,
			ManagerID:  model.ManagerID,
			Active:     model.Active,
		},
		Links: UserLinks{
			Self:        fmt.Sprintf("%s/v1/users/%s", url, model.ID),
			Assignments: fmt.Sprintf("%s/v1/assignments?user=%s", url, model.ID),
			Timeline:    fmt.Sprintf("%s/v1/reports/employees/%s", url, model.ID),
		},
	}
}

type UserListResponse struct {
	Data       []User      `json:"data"`                                                          // List of users
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UserCreateResponse struct {
	Data  []UserResponse `json:"data"`                                                          // List of the created users or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (u *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	u.Data = append(u.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // Data for the user
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type UserQueryFilter struct {
	Email      string       `form:"email"`                      // By email address
	ManagerID  ez_uuid.UUID `form:"manager"`                    // By ID of the manager
	SystemRole string       `form:"systemRole"`                 // By system role
	Search     string       `form:"search" filterField:"false"` // By string in email, first or last name
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first user returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of users to return. Defaults to 50.
}

func (f UserQueryFilter) model() models.User {
	user := models.User{
		Email:      f.Email,
		SystemRole: models.SystemRole(f.SystemRole),
	}

	// A pointer to the zero UUID would be treated as a filter value by
	// gorm, so only set the field when the parameter was given.
	if f.ManagerID.UUID != uuid.Nil {
		user.ManagerID = &f.ManagerID.UUID
	}

	return user
}
