package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/models"
	"github.com/staffalloc/backend/internal/types"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var (
	ErrImportNoSheet       = errors.New("the workbook does not contain any worksheet")
	ErrImportHeaderInvalid = errors.New("the first three columns must be Employee, Role and Funded Hours, followed by YYYY-MM month columns")
	ErrImportUnknownUser   = errors.New("no user exists with this email address")
)

// ImportResult summarizes what an allocation grid import created.
type ImportResult struct {
	Assignments int `json:"assignments"`
	Allocations int `json:"allocations"`
}

var titleCaser = cases.Title(language.English)

// ImportAllocationGrid reads a worksheet where each row is one employee
// of the project: email, role name, funded hours, then one column of
// allocated hours per month.
//
// Users are matched by email. Roles are created under the project's
// manager when they do not exist yet, with their name normalized to
// title case so that "backend engineer" and "Backend Engineer" do not
// end up as two roles. The whole import is one transaction.
func ImportAllocationGrid(db *gorm.DB, r io.Reader, projectID uuid.UUID) (ImportResult, error) {
	var result ImportResult

	f, err := excelize.OpenReader(r)
	if err != nil {
		return result, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return result, ErrImportNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return result, err
	}

	if len(rows) < 1 || len(rows[0]) < 3 {
		return result, ErrImportHeaderInvalid
	}

	months, err := parseMonthHeader(rows[0][3:])
	if err != nil {
		return result, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		err := tx.First(&project, projectID).Error
		if err != nil {
			return err
		}

		for _, row := range rows[1:] {
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}

			err = importRow(tx, project, months, row, &result)
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return ImportResult{}, err
	}

	return result, nil
}

func parseMonthHeader(cells []string) ([]types.Month, error) {
	months := make([]types.Month, 0, len(cells))
	for _, cell := range cells {
		month, err := types.ParseMonth(strings.TrimSpace(cell))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a month", ErrImportHeaderInvalid, cell)
		}

		months = append(months, month)
	}

	return months, nil
}

func importRow(tx *gorm.DB, project models.Project, months []types.Month, row []string, result *ImportResult) error {
	email := strings.ToLower(strings.TrimSpace(row[0]))

	var user models.User
	err := tx.First(&user, &models.User{Email: email}).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return fmt.Errorf("%w: %s", ErrImportUnknownUser, email)
		}

		return err
	}

	roleName := titleCaser.String(strings.TrimSpace(row[1]))

	var role models.Role
	err = tx.First(&role, &models.Role{OwnerID: project.ManagerID, Name: roleName}).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		role = models.Role{OwnerID: project.ManagerID, Name: roleName}
		err = tx.Create(&role).Error
	}
	if err != nil {
		return err
	}

	fundedHours := 0
	if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
		fundedHours, err = strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return fmt.Errorf("funded hours for %s are not a number: %w", email, err)
		}
	}

	var assignment models.Assignment
	err = tx.First(&assignment, &models.Assignment{ProjectID: project.ID, UserID: user.ID}).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		assignment = models.Assignment{ProjectID: project.ID, UserID: user.ID, RoleID: role.ID, FundedHours: fundedHours}
		err = tx.Create(&assignment).Error
		if err == nil {
			result.Assignments++
		}
	}
	if err != nil {
		return err
	}

	for i, month := range months {
		cellIndex := 3 + i
		if cellIndex >= len(row) || strings.TrimSpace(row[cellIndex]) == "" {
			continue
		}

		hours, err := strconv.Atoi(strings.TrimSpace(row[cellIndex]))
		if err != nil {
			return fmt.Errorf("hours for %s in %s are not a number: %w", email, month, err)
		}

		var allocation models.Allocation
		err = tx.First(&allocation, &models.Allocation{AssignmentID: assignment.ID, Month: month}).Error
		if errors.Is(err, models.ErrResourceNotFound) {
			allocation = models.Allocation{AssignmentID: assignment.ID, Month: month, Hours: hours}
			err = tx.Create(&allocation).Error
		} else if err == nil {
			allocation.Hours = hours
			err = tx.Model(&allocation).Select("Hours").Updates(allocation).Error
		}
		if err != nil {
			return err
		}

		result.Allocations++
	}

	return nil
}
