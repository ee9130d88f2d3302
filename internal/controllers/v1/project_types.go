package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/httputil"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/types"
	ez_uuid "github.com/staffalloc/backend/internal/uuid"
)

// ProjectEditable represents all user configurable parameters
type ProjectEditable struct {
	ManagerID   uuid.UUID            `json:"managerId" example:"b3f29c95-1b5c-4e3f-9f3c-c2f1f2f46d3a"` // ID of the manager owning the project
	Code        string               `json:"code" example:"PHX" default:""`                            // Short code, unique per manager
	Name        string               `json:"name" example:"Phoenix" default:""`
	Description string               `json:"description" example:"Replatforming of the order pipeline" default:""`
	Status      models.ProjectStatus `json:"status" example:"active" default:"planning"` // One of planning, active, on_hold, closed
	StartDate   time.Time            `json:"startDate" example:"2025-01-06T00:00:00Z"`
	Sprints     int                  `json:"sprints" example:"6" default:"6"` // Number of two-week sprints, used for the default end date
}

func (editable ProjectEditable) model() models.Project {
	return models.Project{
		ManagerID:   editable.ManagerID,
		Code:        editable.Code,
		Name:        editable.Name,
		Description: editable.Description,
		Status:      editable.Status,
		StartDate:   editable.StartDate,
		Sprints:     editable.Sprints,
	}
}

type ProjectLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/projects/d1b7f2e9-6a4c-4571-a733-f53a54e6ab82"`                   // The project itself
	Assignments string `json:"assignments" example:"https://example.com/api/v1/assignments?project=d1b7f2e9-6a4c-4571-a733-f53a54e6ab82"` // Assignments of this project
	Overrides   string `json:"overrides" example:"https://example.com/api/v1/projects/d1b7f2e9-6a4c-4571-a733-f53a54e6ab82/overrides"`    // Monthly hour overrides of this project
	Dashboard   string `json:"dashboard" example:"https://example.com/api/v1/reports/projects/d1b7f2e9-6a4c-4571-a733-f53a54e6ab82"`      // Burn-down dashboard for this project
}

type Project struct {
	models.DefaultModel
	ProjectEditable
	Links ProjectLinks `json:"links"`

	// This field is computed
	EndDate time.Time `json:"endDate" example:"2025-03-31T00:00:00Z"` // Estimated end, derived from start date and sprint count
}

func newProject(c *gin.Context, model models.Project) Project {
	url := httputil.RequestHost(c)

	return Project{
		DefaultModel: model.DefaultModel,
		ProjectEditable: ProjectEditable{
			ManagerID:   model.ManagerID,
			Code:        model.Code,
			Name:        model.Name,
			Description: model.Description,
			Status:      model.Status,
			StartDate:   model.StartDate,
			Sprints:     model.Sprints,
		},
		Links: ProjectLinks{
			Self:        fmt.Sprintf("%s/v1/projects/%s", url, model.ID),
			Assignments: fmt.Sprintf("%s/v1/assignments?project=%s", url, model.ID),
			Overrides:   fmt.Sprintf("%s/v1/projects/%s/overrides", url, model.ID),
			Dashboard:   fmt.Sprintf("%s/v1/reports/projects/%s", url, model.ID),
		},
		EndDate: model.DefaultEnd(),
	}
}

type ProjectListResponse struct {
	Data       []Project   `json:"data"`                                                          // List of projects
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ProjectCreateResponse struct {
	Data  []ProjectResponse `json:"data"`                                                          // List of the created projects or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ProjectCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ProjectResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ProjectResponse struct {
	Data  *Project `json:"data"`                                                          // Data for the project
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ProjectQueryFilter struct {
	ManagerID   ez_uuid.UUID `form:"manager"`                         // By ID of the manager
	Code        string       `form:"code"`                            // By project code
	Status      string       `form:"status"`                          // By lifecycle status
	Name        string       `form:"name" filterField:"false"`        // By name
	Description string       `form:"description" filterField:"false"` // By description
	Search      string       `form:"search" filterField:"false"`      // By string in name or description
	Offset      uint         `form:"offset" filterField:"false"`      // The offset of the first project returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`       // Maximum number of projects to return. Defaults to 50.
}

func (f ProjectQueryFilter) model() (models.Project, error) {
	return models.Project{
		ManagerID: f.ManagerID.UUID,
		Code:      f.Code,
		Status:    models.ProjectStatus(f.Status),
	}, nil
}

// OverrideEditable represents all user configurable parameters of a
// monthly hour override
type OverrideEditable struct {
	Month types.Month `json:"month" example:"2025-02-01T00:00:00Z"` // Month the override applies to
	Hours int         `json:"hours" example:"120"`                  // Capacity of the month in hours, must be positive
	Note  string      `json:"note" example:"Holiday season" default:""`
}

type Override struct {
	models.Timestamps
	ProjectID uuid.UUID `json:"projectId" example:"d1b7f2e9-6a4c-4571-a733-f53a54e6ab82"`
	Month     string    `json:"month" example:"2025-02"` // Month in YYYY-MM format
	Hours     int       `json:"hours" example:"120"`
	Note      string    `json:"note" example:"Holiday season"`
}

func newOverride(model models.MonthlyHourOverride) Override {
	return Override{
		Timestamps: model.Timestamps,
		ProjectID:  model.ProjectID,
		Month:      model.Month.String(),
		Hours:      model.Hours,
		Note:       model.Note,
	}
}

type OverrideListResponse struct {
	Data  []Override `json:"data"`                                                          // List of overrides
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type OverrideResponse struct {
	Data  *Override `json:"data"`                                                          // Data for the override
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
