// Package reports assembles the dashboard payloads from the aggregation
// queries and the burn-down engine.
package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/reporting"
	"github.com/staffalloc/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Thresholds for flagging employees on the portfolio dashboard.
//
// An employee at exactly 100% FTE is not over-allocated, an employee at
// exactly 25% is on the bench.
const (
	overAllocatedFTE = 1.0
	benchFTE         = 0.25
)

// RoleFTE is the utilization of one role across the whole portfolio.
type RoleFTE struct {
	RoleID         uuid.UUID `json:"roleId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	RoleName       string    `json:"roleName" example:"Backend Engineer"`
	FundedHours    int       `json:"fundedHours" example:"320"`
	AllocatedHours int       `json:"allocatedHours" example:"280"`
	UtilizationPct float64   `json:"utilizationPct" example:"87.5"`
}

// ProjectHours is one project's contribution to an employee's hours.
type ProjectHours struct {
	ProjectID   uuid.UUID `json:"projectId" example:"d954efdf-6be4-4e37-b571-062e4500d0b4"`
	ProjectName string    `json:"projectName" example:"Phoenix"`
	ProjectCode string    `json:"projectCode" example:"PHX"`
	Hours       int       `json:"hours" example:"80"`
}

// FlaggedEmployee is an employee that is either over-allocated or on
// the bench in the current month.
type FlaggedEmployee struct {
	UserID         uuid.UUID      `json:"userId" example:"9e0d7173-1e9e-4bd9-93fd-66eb6ff12a2e"`
	Name           string         `json:"name" example:"Clara Weiss"`
	PrimaryRole    string         `json:"primaryRole" example:"Backend Engineer"`
	Hours          int            `json:"hours" example:"200"`
	StandardHours  int            `json:"standardHours" example:"184"`
	FtePct         float64        `json:"ftePct" example:"108.7"`
	AvailableHours int            `json:"availableHours" example:"0"`
	Projects       []ProjectHours `json:"projects"`
}

// PortfolioReport is the manager's portfolio dashboard.
type PortfolioReport struct {
	TotalProjects         int64             `json:"totalProjects" example:"4"`
	TotalEmployees        int               `json:"totalEmployees" example:"11"`
	TotalFundedHours      int               `json:"totalFundedHours" example:"2080"`
	TotalAllocatedHours   int               `json:"totalAllocatedHours" example:"1820"`
	OverallUtilizationPct float64           `json:"overallUtilizationPct" example:"87.5"`
	FTEByRole             []RoleFTE         `json:"fteByRole"`
	OverAllocated         []FlaggedEmployee `json:"overAllocated"`
	Bench                 []FlaggedEmployee `json:"bench"`
}

// Portfolio assembles the portfolio dashboard. Employees are classified
// by their FTE in the calendar month of now.
func Portfolio(db *gorm.DB, managerID *uuid.UUID, now time.Time) (PortfolioReport, error) {
	report := PortfolioReport{
		FTEByRole:     []RoleFTE{},
		OverAllocated: []FlaggedEmployee{},
		Bench:         []FlaggedEmployee{},
	}

	projects := db.Model(&models.Project{})
	if managerID != nil {
		projects = projects.Where("projects.manager_id = ?", *managerID)
	}

	err := projects.Count(&report.TotalProjects).Error
	if err != nil {
		return PortfolioReport{}, err
	}

	roleCapacity, err := models.RoleCapacity(db, managerID)
	if err != nil {
		return PortfolioReport{}, err
	}

	for _, row := range roleCapacity {
		report.TotalFundedHours += row.FundedHours
		report.TotalAllocatedHours += row.AllocatedHours

		report.FTEByRole = append(report.FTEByRole, RoleFTE{
			RoleID:         row.RoleID,
			RoleName:       row.RoleName,
			FundedHours:    row.FundedHours,
			AllocatedHours: row.AllocatedHours,
			UtilizationPct: reporting.Percentage(float64(row.AllocatedHours), float64(row.FundedHours)),
		})
	}

	report.OverallUtilizationPct = reporting.Percentage(float64(report.TotalAllocatedHours), float64(report.TotalFundedHours))

	month := types.NewMonth(now.UTC().Year(), now.UTC().Month())
	standard := reporting.StandardMonthHours(month)

	// Every employee in scope, including those without any assignment.
	// Idle direct reports count towards the bench.
	roster, err := models.EmployeeRoster(db, managerID)
	if err != nil {
		return PortfolioReport{}, err
	}
	report.TotalEmployees = len(roster)

	monthTotals, err := models.UserMonthlyTotals(db, managerID, nil)
	if err != nil {
		return PortfolioReport{}, err
	}

	currentHours := make(map[uuid.UUID]int)
	for _, row := range monthTotals {
		if row.Month.Equal(month) {
			currentHours[row.UserID] = row.Hours
		}
	}

	breakdowns, err := userProjectBreakdowns(db, managerID, nil, month)
	if err != nil {
		return PortfolioReport{}, err
	}

	primaryRole, err := primaryRoles(db, managerID)
	if err != nil {
		return PortfolioReport{}, err
	}

	for _, employee := range roster {
		hours := currentHours[employee.UserID]
		fte := float64(hours) / float64(standard)

		if fte <= overAllocatedFTE && fte > benchFTE {
			continue
		}

		flagged := FlaggedEmployee{
			UserID:         employee.UserID,
			Name:           employee.UserName,
			PrimaryRole:    primaryRole[employee.UserID],
			Hours:          hours,
			StandardHours:  standard,
			FtePct:         reporting.Percentage(float64(hours), float64(standard)),
			AvailableHours: max(standard-hours, 0),
			Projects:       breakdowns[employee.UserID],
		}

		if flagged.Projects == nil {
			flagged.Projects = []ProjectHours{}
		}

		if fte > overAllocatedFTE {
			report.OverAllocated = append(report.OverAllocated, flagged)
		} else {
			report.Bench = append(report.Bench, flagged)
		}
	}

	slices.SortStableFunc(report.OverAllocated, func(a, b FlaggedEmployee) int {
		return compareDesc(a.FtePct, b.FtePct)
	})
	slices.SortStableFunc(report.Bench, func(a, b FlaggedEmployee) int {
		return compareDesc(float64(a.AvailableHours), float64(b.AvailableHours))
	})

	return report, nil
}

// userProjectBreakdowns returns every user's per-project hours for one
// month, sorted descending by hours.
func userProjectBreakdowns(db *gorm.DB, managerID, userID *uuid.UUID, month types.Month) (map[uuid.UUID][]ProjectHours, error) {
	rows, err := models.UserProjectMonthly(db, managerID, userID)
	if err != nil {
		return nil, err
	}

	breakdowns := make(map[uuid.UUID][]ProjectHours)
	for _, row := range rows {
		if !row.Month.Equal(month) {
			continue
		}

		breakdowns[row.UserID] = append(breakdowns[row.UserID], ProjectHours{
			ProjectID:   row.ProjectID,
			ProjectName: row.ProjectName,
			ProjectCode: row.ProjectCode,
			Hours:       row.Hours,
		})
	}

	for _, breakdown := range breakdowns {
		slices.SortStableFunc(breakdown, func(a, b ProjectHours) int {
			return compareDesc(float64(a.Hours), float64(b.Hours))
		})
	}

	return breakdowns, nil
}

// primaryRoles returns each user's role with the highest funded total.
func primaryRoles(db *gorm.DB, managerID *uuid.UUID) (map[uuid.UUID]string, error) {
	rows, err := models.UserRoleFunding(db, managerID, nil)
	if err != nil {
		return nil, err
	}

	// Rows are ordered by funded hours descending, the first role wins
	primary := make(map[uuid.UUID]string)
	for _, row := range rows {
		if _, ok := primary[row.UserID]; !ok {
			primary[row.UserID] = row.RoleName
		}
	}

	return primary, nil
}

// compareDesc orders two values descending for SortStableFunc.
func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
