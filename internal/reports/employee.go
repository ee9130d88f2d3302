package reports

import (
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/reporting"
	"github.com/staffalloc/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TimelineMonth is one month of an employee's allocation timeline.
type TimelineMonth struct {
	Label          string         `json:"label" example:"Jan 2025"`
	Date           string         `json:"date" example:"2025-01-01"`
	Hours          int            `json:"hours" example:"160"`
	StandardHours  int            `json:"standardHours" example:"184"`
	FtePct         float64        `json:"ftePct" example:"86.96"`
	AvailableHours int            `json:"availableHours" example:"24"`
	Projects       []ProjectHours `json:"projects"`
}

// EmployeeTimelineReport is the chronological allocation view of one
// employee.
type EmployeeTimelineReport struct {
	UserID uuid.UUID       `json:"userId" example:"9e0d7173-1e9e-4bd9-93fd-66eb6ff12a2e"`
	Name   string          `json:"name" example:"Clara Weiss"`
	Months []TimelineMonth `json:"months"`
}

// EmployeeTimeline assembles an employee's monthly totals, optionally
// limited to the inclusive range [from, until].
func EmployeeTimeline(db *gorm.DB, userID uuid.UUID, from, until *types.Month) (EmployeeTimelineReport, error) {
	var user models.User
	err := db.First(&user, userID).Error
	if err != nil {
		return EmployeeTimelineReport{}, err
	}

	report := EmployeeTimelineReport{
		UserID: user.ID,
		Name:   user.Name(),
		Months: []TimelineMonth{},
	}

	totals, err := models.UserMonthlyTotals(db, nil, &userID)
	if err != nil {
		return EmployeeTimelineReport{}, err
	}

	byProject, err := models.UserProjectMonthly(db, nil, &userID)
	if err != nil {
		return EmployeeTimelineReport{}, err
	}

	projectsByMonth := make(map[types.Month][]ProjectHours)
	for _, row := range byProject {
		projectsByMonth[row.Month] = append(projectsByMonth[row.Month], ProjectHours{
			ProjectID:   row.ProjectID,
			ProjectName: row.ProjectName,
			ProjectCode: row.ProjectCode,
			Hours:       row.Hours,
		})
	}

	for _, breakdown := range projectsByMonth {
		slices.SortStableFunc(breakdown, func(a, b ProjectHours) int {
			return compareDesc(float64(a.Hours), float64(b.Hours))
		})
	}

	for _, row := range totals {
		if from != nil && row.Month.Before(*from) {
			continue
		}
		if until != nil && row.Month.After(*until) {
			continue
		}

		standard := reporting.StandardMonthHours(row.Month)

		projects := projectsByMonth[row.Month]
		if projects == nil {
			projects = []ProjectHours{}
		}

		report.Months = append(report.Months, TimelineMonth{
			Label:          row.Month.Label(),
			Date:           row.Month.ISODate(),
			Hours:          row.Hours,
			StandardHours:  standard,
			FtePct:         reporting.Percentage(float64(row.Hours), float64(standard)),
			AvailableHours: max(standard-row.Hours, 0),
			Projects:       projects,
		})
	}

	return report, nil
}

// RollupMonth is one month of an employee's row in the manager rollup.
type RollupMonth struct {
	Label  string  `json:"label" example:"Jan 2025"`
	Date   string  `json:"date" example:"2025-01-01"`
	Hours  int     `json:"hours" example:"160"`
	FtePct float64 `json:"ftePct" example:"86.96"`
}

// EmployeeRollup is one employee's row in the manager rollup grid.
type EmployeeRollup struct {
	UserID           uuid.UUID     `json:"userId" example:"9e0d7173-1e9e-4bd9-93fd-66eb6ff12a2e"`
	Name             string        `json:"name" example:"Clara Weiss"`
	TotalFundedHours int           `json:"totalFundedHours" example:"480"`
	Months           []RollupMonth `json:"months"`
}

// ManagerRollup assembles the allocation grid for every employee under
// a manager, restricted to the inclusive range [from, until]. Employees
// are sorted by name.
func ManagerRollup(db *gorm.DB, managerID uuid.UUID, from, until types.Month) ([]EmployeeRollup, error) {
	roster, err := models.EmployeeRoster(db, &managerID)
	if err != nil {
		return nil, err
	}

	totals, err := models.UserMonthlyTotals(db, &managerID, nil)
	if err != nil {
		return nil, err
	}

	months := make(map[uuid.UUID][]RollupMonth)
	for _, row := range totals {
		if row.Month.Before(from) || row.Month.After(until) {
			continue
		}

		standard := reporting.StandardMonthHours(row.Month)
		months[row.UserID] = append(months[row.UserID], RollupMonth{
			Label:  row.Month.Label(),
			Date:   row.Month.ISODate(),
			Hours:  row.Hours,
			FtePct: reporting.Percentage(float64(row.Hours), float64(standard)),
		})
	}

	rollup := make([]EmployeeRollup, 0, len(roster))
	for _, employee := range roster {
		employeeMonths := months[employee.UserID]
		if employeeMonths == nil {
			employeeMonths = []RollupMonth{}
		}

		rollup = append(rollup, EmployeeRollup{
			UserID:           employee.UserID,
			Name:             employee.UserName,
			TotalFundedHours: employee.FundedHours,
			Months:           employeeMonths,
		})
	}

	return rollup, nil
}
