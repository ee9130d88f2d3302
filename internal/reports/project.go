package reports

import (
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/reporting"
	"github.com/staffalloc/backend/internal/types"
	"gorm.io/gorm"
)

// ProjectDashboardReport is the burn-down dashboard for one project.
type ProjectDashboardReport struct {
	ProjectID           uuid.UUID                 `json:"projectId" example:"d954efdf-6be4-4e37-b571-062e4500d0b4"`
	Name                string                    `json:"name" example:"Phoenix"`
	Code                string                    `json:"code" example:"PHX"`
	Status              models.ProjectStatus      `json:"status" example:"active"`
	TotalFundedHours    int                       `json:"totalFundedHours" example:"320"`
	TotalAllocatedHours int                       `json:"totalAllocatedHours" example:"280"`
	UtilizationPct      float64                   `json:"utilizationPct" example:"87.5"`
	BurnDown            []reporting.BurnDownPoint `json:"burnDown"`
}

// ProjectDashboard assembles funded vs allocated totals and the
// burn-down series for one project.
//
// The reporting window spans the project's existing allocations. A
// project without any allocations falls back to the window from its
// start date to its estimated end.
func ProjectDashboard(db *gorm.DB, projectID uuid.UUID) (ProjectDashboardReport, error) {
	var project models.Project
	err := db.First(&project, projectID).Error
	if err != nil {
		return ProjectDashboardReport{}, err
	}

	totals, err := models.ProjectTotals(db, projectID)
	if err != nil {
		return ProjectDashboardReport{}, err
	}

	monthly, err := models.ProjectMonthlyAllocations(db, projectID)
	if err != nil {
		return ProjectDashboardReport{}, err
	}

	var window []types.Month
	if len(monthly) > 0 {
		window = reporting.MonthRange(monthly[0].Month, monthly[len(monthly)-1].Month)
	} else {
		start := types.NewMonth(project.StartDate.Year(), project.StartDate.Month())
		end := project.DefaultEnd()
		window = reporting.MonthRange(start, types.NewMonth(end.Year(), end.Month()))
	}

	actual := make(map[types.Month]float64, len(monthly))
	for _, row := range monthly {
		actual[row.Month] = float64(row.Hours)
	}

	overrides, err := models.OverridesForProject(db, projectID)
	if err != nil {
		return ProjectDashboardReport{}, err
	}

	return ProjectDashboardReport{
		ProjectID:           project.ID,
		Name:                project.Name,
		Code:                project.Code,
		Status:              project.Status,
		TotalFundedHours:    totals.FundedHours,
		TotalAllocatedHours: totals.AllocatedHours,
		UtilizationPct:      reporting.Percentage(float64(totals.AllocatedHours), float64(totals.FundedHours)),
		BurnDown:            reporting.BuildBurnDownSeries(float64(totals.FundedHours), window, actual, overrides),
	}, nil
}
