package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	ez_uuid "github.com/staffalloc/backend/internal/uuid"
)

// LCATEditable represents all user configurable parameters
type LCATEditable struct {
	OwnerID     uuid.UUID       `json:"ownerId" example:"b3f29c95-1b5c-4e3f-9f3c-c2f1f2f46d3a"` // ID of the manager owning the labor category
	Name        string          `json:"name" example:"Senior Software Engineer" default:""`
	Description string          `json:"description" example:"Key personnel, 10+ years" default:""`
	HourlyRate  decimal.Decimal `json:"hourlyRate" example:"142.50" default:"0"` // Contracted hourly bill rate
}

func (editable LCATEditable) model() models.LCAT {
	return models.LCAT{
		OwnerID:     editable.OwnerID,
		Name:        editable.Name,
		Description: editable.Description,
		HourlyRate:  editable.HourlyRate,
	}
}

type LCATLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/lcats/0b0560eb-7ec5-4a44-9a3a-5fba871e32d1"` // The labor category itself
}

type LCAT struct {
	models.DefaultModel
	LCATEditable
	Links LCATLinks `json:"links"`
}

func newLCAT(c *gin.Context, model models.LCAT) LCAT {
	url := httputil.RequestHost(c)

	return LCAT{
		DefaultModel: model.DefaultModel,
		LCATEditable: LCATEditable{
			OwnerID:     model.OwnerID,
			Name:        model.Name,
			Description: model.Description,
			HourlyRate:  model.HourlyRate,
		},
		Links: LCATLinks{
			Self: fmt.Sprintf("%s/v1/lcats/%s", url, model.ID),
		},
	}
}

type LCATListResponse struct {
	Data       []LCAT      `json:"data"`                                                          // List of labor categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type LCATCreateResponse struct {
	Data  []LCATResponse `json:"data"`                                                          // List of the created labor categories or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *LCATCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, LCATResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type LCATResponse struct {
	Data  *LCAT   `json:"data"`                                                          // Data for the labor category
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type LCATQueryFilter struct {
	OwnerID     ez_uuid.UUID `form:"owner"`                           // By ID of the owning manager
	Name        string       `form:"name" filterField:"false"`        // By name
	Description string       `form:"description" filterField:"false"` // By description
	Search      string       `form:"search" filterField:"false"`      // By string in name or description
	Offset      uint         `form:"offset" filterField:"false"`      // The offset of the first labor category returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`       // Maximum number of labor categories to return. Defaults to 50.
}

func (f LCATQueryFilter) model() (models.LCAT, error) {
	return models.LCAT{
		OwnerID: f.OwnerID.UUID,
	}, nil
}
