// Package xlsx renders staffing reports to Excel workbooks and imports
// allocation grids from them.
package xlsx

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/reports"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// PortfolioWorkbook renders the portfolio dashboard into a workbook
// with one sheet for role utilization and one for flagged employees.
func PortfolioWorkbook(db *gorm.DB, managerID *uuid.UUID, now time.Time) (*excelize.File, error) {
	portfolio, err := reports.Portfolio(db, managerID, now)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Overview")

	overview := [][]any{
		{"Total projects", portfolio.TotalProjects},
		{"Total employees", portfolio.TotalEmployees},
		{"Funded hours", portfolio.TotalFundedHours},
		{"Allocated hours", portfolio.TotalAllocatedHours},
		{"Utilization %", portfolio.OverallUtilizationPct},
	}
	if err := writeRows(f, "Overview", overview); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Roles"); err != nil {
		return nil, err
	}

	roles := [][]any{{"Role", "Funded hours", "Allocated hours", "Utilization %"}}
	for _, role := range portfolio.FTEByRole {
		roles = append(roles, []any{role.RoleName, role.FundedHours, role.AllocatedHours, role.UtilizationPct})
	}
	if err := writeRows(f, "Roles", roles); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Employees"); err != nil {
		return nil, err
	}

	employees := [][]any{{"Employee", "Primary role", "Status", "Hours", "Standard hours", "FTE %", "Available hours"}}
	for _, employee := range portfolio.OverAllocated {
		employees = append(employees, []any{employee.Name, employee.PrimaryRole, "over-allocated", employee.Hours, employee.StandardHours, employee.FtePct, employee.AvailableHours})
	}
	for _, employee := range portfolio.Bench {
		employees = append(employees, []any{employee.Name, employee.PrimaryRole, "bench", employee.Hours, employee.StandardHours, employee.FtePct, employee.AvailableHours})
	}
	if err := writeRows(f, "Employees", employees); err != nil {
		return nil, err
	}

	return f, nil
}

// ProjectWorkbook renders one project's burn-down series into a workbook.
func ProjectWorkbook(db *gorm.DB, projectID uuid.UUID) (*excelize.File, error) {
	dashboard, err := reports.ProjectDashboard(db, projectID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Burn-down"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]any{
		{"Project", dashboard.Name},
		{"Code", dashboard.Code},
		{"Funded hours", dashboard.TotalFundedHours},
		{"Allocated hours", dashboard.TotalAllocatedHours},
		{"Utilization %", dashboard.UtilizationPct},
		{},
		{"Month", "Planned remaining", "Actual remaining", "Planned burn", "Actual burn", "Capacity hours"},
	}
	for _, point := range dashboard.BurnDown {
		rows = append(rows, []any{point.Label, point.PlannedHours, point.ActualHours, point.PlannedBurn, point.ActualBurn, point.CapacityHours})
	}

	if err := writeRows(f, sheet, rows); err != nil {
		return nil, err
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}

			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed writing cell %s: %w", cell, err)
			}
		}
	}

	return nil
}
