package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/types"
	ez_uuid "github.com/staffalloc/backend/internal/uuid"
)

// AllocationEditable represents all user configurable parameters
type AllocationEditable struct {
	AssignmentID uuid.UUID   `json:"assignmentId" example:"9a20d526-5afd-4371-a76d-8e93bf4eeb20"` // ID of the assignment the hours are booked against
	Month        types.Month `json:"month" example:"2025-01-01T00:00:00Z"`                        // Month the hours are booked in
	Hours        int         `json:"hours" example:"120" default:"0"`                             // Booked hours, must not be negative
}

func (editable AllocationEditable) model() models.Allocation {
	return models.Allocation{
		AssignmentID: editable.AssignmentID,
		Month:        editable.Month,
		Hours:        editable.Hours,
	}
}

type AllocationLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/allocations/47c29f3c-4b39-4d05-99a9-9e9e696c2dd1"`              // The allocation itself
	Assignment string `json:"assignment" example:"https://example.com/api/v1/assignments/9a20d526-5afd-4371-a76d-8e93bf4eeb20"`        // The assignment the hours are booked against
}

type Allocation struct {
	models.DefaultModel
	AllocationEditable
	Links AllocationLinks `json:"links"`
}

func newAllocation(c *gin.Context, model models.Allocation) Allocation {
	url := httputil.RequestHost(c)

	return Allocation{
		DefaultModel: model.DefaultModel,
		AllocationEditable: AllocationEditable{
			AssignmentID: model.AssignmentID,
			Month:        model.Month,
			Hours:        model.Hours,
		},
		Links: AllocationLinks{
			Self:       fmt.Sprintf("%s/v1/allocations/%s", url, model.ID),
			Assignment: fmt.Sprintf("%s/v1/assignments/%s", url, model.AssignmentID),
		},
	}
}

type AllocationListResponse struct {
	Data       []Allocation `json:"data"`                                                          // List of allocations
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type AllocationCreateResponse struct {
	Data  []AllocationResponse `json:"data"`                                                          // List of the created allocations or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *AllocationCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, AllocationResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AllocationResponse struct {
	Data  *Allocation `json:"data"`                                                          // Data for the allocation
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AllocationQueryFilter struct {
	AssignmentID ez_uuid.UUID `form:"assignment"`                 // By ID of the assignment
	Month        string       `form:"month" filterField:"false"`  // By month in YYYY-MM format
	Offset       uint         `form:"offset" filterField:"false"` // The offset of the first allocation returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`  // Maximum number of allocations to return. Defaults to 50.
}

func (f AllocationQueryFilter) model() (models.Allocation, error) {
	return models.Allocation{
		AssignmentID: f.AssignmentID.UUID,
	}, nil
}
