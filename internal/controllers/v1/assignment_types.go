package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/types"
	ez_uuid "github.com/staffalloc/backend/internal/uuid"
	"gorm.io/gorm"
)

// AssignmentEditable represents all user configurable parameters
type AssignmentEditable struct {
	ProjectID   uuid.UUID  `json:"projectId" example:"d1b7f2e9-6a4c-4571-a733-f53a54e6ab82"` // ID of the project
	UserID      uuid.UUID  `json:"userId" example:"d3c4c57a-32d6-4b0b-b243-a16d1a1a37c5"`    // ID of the assigned user
	RoleID      uuid.UUID  `json:"roleId" example:"5ca47b06-55aa-4ac5-bd10-1bf6f3ba9e2e"`    // ID of the role the user fills
	LCATID      *uuid.UUID `json:"lcatId" example:"0b0560eb-7ec5-4a44-9a3a-5fba871e32d1"`    // Optional ID of the labor category
	FundedHours int        `json:"fundedHours" example:"320" default:"0"`                    // Funded hour budget, must not be negative
	Note        string     `json:"note" example:"Backfill for Q1" default:""`
}

func (editable AssignmentEditable) model() models.Assignment {
	return models.Assignment{
		ProjectID:   editable.ProjectID,
		UserID:      editable.UserID,
		RoleID:      editable.RoleID,
		LCATID:      editable.LCATID,
		FundedHours: editable.FundedHours,
		Note:        editable.Note,
	}
}

type AssignmentLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/assignments/9a20d526-5afd-4371-a76d-8e93bf4eeb20"`                   // The assignment itself
	Allocations string `json:"allocations" example:"https://example.com/api/v1/allocations?assignment=9a20d526-5afd-4371-a76d-8e93bf4eeb20"` // Allocations booked against this assignment
	Distribute  string `json:"distribute" example:"https://example.com/api/v1/assignments/9a20d526-5afd-4371-a76d-8e93bf4eeb20/distribute"`  // Even distribution of the remaining budget
}

type Assignment struct {
	models.DefaultModel
	AssignmentEditable
	Links AssignmentLinks `json:"links"`

	// This field is computed
	AllocatedHours int `json:"allocatedHours" example:"280"` // Sum of all allocations booked against this assignment
}

func newAssignment(c *gin.Context, db *gorm.DB, model models.Assignment) (Assignment, error) {
	url := httputil.RequestHost(c)

	allocated, err := model.AllocatedHours(db)
	if err != nil {
		return Assignment{}, err
	}

	return Assignment{
		DefaultModel: model.DefaultModel,
		AssignmentEditable: AssignmentEditable{
			ProjectID:   model.ProjectID,
			UserID:      model.UserID,
			RoleID:      model.RoleID,
			LCATID:      model.LCATID,
			FundedHours: model.FundedHours,
			Note:        model.Note,
		},
		Links: AssignmentLinks{
			Self:        fmt.Sprintf("%s/v1/assignments/%s", url, model.ID),
			Allocations: fmt.Sprintf("%s/v1/allocations?assignment=%s", url, model.ID),
			Distribute:  fmt.Sprintf("%s/v1/assignments/%s/distribute", url, model.ID),
		},
		AllocatedHours: allocated,
	}, nil
}

type AssignmentListResponse struct {
	Data       []Assignment `json:"data"`                                                          // List of assignments
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type AssignmentCreateResponse struct {
	Data  []AssignmentResponse `json:"data"`                                                          // List of the created assignments or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *AssignmentCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, AssignmentResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AssignmentResponse struct {
	Data  *Assignment `json:"data"`                                                          // Data for the assignment
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AssignmentQueryFilter struct {
	ProjectID ez_uuid.UUID `form:"project"`                    // By ID of the project
	UserID    ez_uuid.UUID `form:"user"`                       // By ID of the assigned user
	RoleID    ez_uuid.UUID `form:"role"`                       // By ID of the role
	LCATID    ez_uuid.UUID `form:"lcat"`                       // By ID of the labor category
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first assignment returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of assignments to return. Defaults to 50.
}

func (f AssignmentQueryFilter) model() (models.Assignment, error) {
	assignment := models.Assignment{
		ProjectID: f.ProjectID.UUID,
		UserID:    f.UserID.UUID,
		RoleID:    f.RoleID.UUID,
	}

	// A pointer to the zero UUID would be treated as a filter value by
	// gorm, so only set the field when the parameter was given.
	if f.LCATID.UUID != uuid.Nil {
		assignment.LCATID = &f.LCATID.UUID
	}

	return assignment, nil
}

// DistributeEditable represents the parameters of an even distribution run
type DistributeEditable struct {
	Strategy   string      `json:"strategy" example:"even" default:"even"`    // Distribution strategy, only "even" is supported
	StartMonth types.Month `json:"startMonth" example:"2025-01-01T00:00:00Z"` // First month of the range
	EndMonth   types.Month `json:"endMonth" example:"2025-06-01T00:00:00Z"`   // Last month of the range, inclusive
	TotalHours *int        `json:"totalHours" example:"480"`                  // Hours to distribute. Defaults to the assignment's remaining unallocated funded hours
}

type DistributeResponse struct {
	Data  []Allocation `json:"data"`                                                            // The allocations written by the distribution run
	Error *string      `json:"error" example:"the month range must include at least one month"` // The error, if any occurred
}
