package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	ez_uuid "github.com/staffalloc/backend/internal/uuid"
)

// RoleEditable represents all user configurable parameters
type RoleEditable struct {
	OwnerID     uuid.UUID `json:"ownerId" example:"b3f29c95-1b5c-4e3f-9f3c-c2f1f2f46d3a"` // ID of the manager owning the role
	Name        string    `json:"name" example:"Backend Engineer" default:""`
	Description string    `json:"description" example:"Implements and operates services" default:""`
}

func (editable RoleEditable) model() models.Role {
	return models.Role{
		OwnerID:     editable.OwnerID,
		Name:        editable.Name,
		Description: editable.Description,
	}
}

type RoleLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/roles/5ca47b06-55aa-4ac5-bd10-1bf6f3ba9e2e"`                   // The role itself
	Assignments string `json:"assignments" example:"https://example.com/api/v1/assignments?role=5ca47b06-55aa-4ac5-bd10-1bf6f3ba9e2e"` // Assignments using this role
}

type Role struct {
	models.DefaultModel
	RoleEditable
	Links RoleLinks `json:"links"`
}

func newRole(c *gin.Context, model models.Role) Role {
	url := httputil.RequestHost(c)

	return Role{
		DefaultModel: model.DefaultModel,
		RoleEditable: RoleEditable{
			OwnerID:     model.OwnerID,
			Name:        model.Name,
			Description: model.Description,
		},
		Links: RoleLinks{
			Self:        fmt.Sprintf("%s/v1/roles/%s", url, model.ID),
			Assignments: fmt.Sprintf("%s/v1/assignments?role=%s", url, model.ID),
		},
	}
}

type RoleListResponse struct {
	Data       []Role      `json:"data"`                                                          // List of roles
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type RoleCreateResponse struct {
	Data  []RoleResponse `json:"data"`                                                          // List of the created roles or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RoleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RoleResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RoleResponse struct {
	Data  *Role   `json:"data"`                                                          // Data for the role
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RoleQueryFilter struct {
	OwnerID     ez_uuid.UUID `form:"owner"`                           // By ID of the owning manager
	Name        string       `form:"name" filterField:"false"`        // By name
	Description string       `form:"description" filterField:"false"` // By description
	Search      string       `form:"search" filterField:"false"`      // By string in name or description
	Offset      uint         `form:"offset" filterField:"false"`      // The offset of the first role returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`       // Maximum number of roles to return. Defaults to 50.
}

func (f RoleQueryFilter) model() (models.Role, error) {
	return models.Role{
		OwnerID: f.OwnerID.UUID,
	}, nil
}
