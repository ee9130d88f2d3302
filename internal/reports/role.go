package reports

import (
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/reporting"
	"github.com/staffalloc/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RoleUtilizationEntry is one role's utilization in a single month.
type RoleUtilizationEntry struct {
	RoleID          uuid.UUID `json:"roleId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	RoleName        string    `json:"roleName" example:"Backend Engineer"`
	AllocatedHours  int       `json:"allocatedHours" example:"160"`
	FtePct          float64   `json:"ftePct" example:"86.96"`
	FundedHours     int       `json:"fundedHours" example:"320"`
	AssignmentCount int       `json:"assignmentCount" example:"2"`
}

// RoleUtilizationReport lists each role's hours for a single month,
// sorted descending by FTE percentage. The FTE relates the month's
// allocated hours to the month's standard working hours.
func RoleUtilizationReport(db *gorm.DB, month types.Month, managerID *uuid.UUID) ([]RoleUtilizationEntry, error) {
	rows, err := models.RoleUtilization(db, month, managerID)
	if err != nil {
		return nil, err
	}

	standard := reporting.StandardMonthHours(month)

	entries := make([]RoleUtilizationEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, RoleUtilizationEntry{
			RoleID:          row.RoleID,
			RoleName:        row.RoleName,
			AllocatedHours:  row.AllocatedHours,
			FtePct:          reporting.Percentage(float64(row.AllocatedHours), float64(standard)),
			FundedHours:     row.FundedHours,
			AssignmentCount: row.AssignmentCount,
		})
	}

	slices.SortStableFunc(entries, func(a, b RoleUtilizationEntry) int {
		return compareDesc(a.FtePct, b.FtePct)
	})

	return entries, nil
}
