package models

import (
	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/types"
	"gorm.io/gorm"
)

// The aggregation queries below are grouped sums over the
// assignment/allocation join. They are pushed to the database because
// the allocation table is large relative to what a dashboard renders.
//
// Every query takes an optional manager ID. When it is set, results are
// restricted to assignments whose project belongs to that manager. A
// nil manager ID is an explicit "global" choice.

// RoleCapacityRow is the funded and allocated sum for one role.
type RoleCapacityRow struct {
	RoleID         uuid.UUID
	RoleName       string
	FundedHours    int
	AllocatedHours int
}

// UserMonthRow is one user's allocation total for one month.
type UserMonthRow struct {
	UserID   uuid.UUID
	UserName string
	Month    types.Month
	Hours    int
}

// UserProjectMonthRow is one user's allocation total for one month on
// one project.
type UserProjectMonthRow struct {
	UserID      uuid.UUID
	ProjectID   uuid.UUID
	ProjectName string
	ProjectCode string
	Month       types.Month
	Hours       int
}

// UserRoleFundingRow is the funded total of one user in one role.
type UserRoleFundingRow struct {
	UserID      uuid.UUID
	RoleID      uuid.UUID
	RoleName    string
	FundedHours int
}

// UserFundingRow is the funded total of one user across all roles.
type UserFundingRow struct {
	UserID      uuid.UUID
	UserName    string
	FundedHours int
}

// MonthTotalRow is an allocation total for one month.
type MonthTotalRow struct {
	Month types.Month
	Hours int
}

// ProjectTotalsRow is the funded and allocated sum of one project.
type ProjectTotalsRow struct {
	FundedHours    int
	AllocatedHours int
}

// RoleUtilizationRow is one role's utilization in a single month.
type RoleUtilizationRow struct {
	RoleID          uuid.UUID
	RoleName        string
	AllocatedHours  int
	FundedHours     int
	AssignmentCount int
}

// managerScope restricts a query to assignments whose project belongs
// to the manager. The query must join the projects table.
func managerScope(db *gorm.DB, managerID *uuid.UUID) *gorm.DB {
	if managerID == nil {
		return db
	}

	return db.Where("projects.manager_id = ?", *managerID)
}

// allocationSums returns a subquery with the summed allocation hours
// per assignment. Joining it instead of the allocations table keeps
// funded hours from being multiplied by the number of allocation rows.
func allocationSums(db *gorm.DB) *gorm.DB {
	return db.Model(&Allocation{}).
		Select("allocations.assignment_id AS assignment_id, SUM(allocations.hours) AS hours").
		Group("allocations.assignment_id")
}

// RoleCapacity sums funded vs allocated hours per role. Roles whose
// assignments have no allocations yet appear with 0 allocated hours.
func RoleCapacity(db *gorm.DB, managerID *uuid.UUID) ([]RoleCapacityRow, error) {
	var rows []RoleCapacityRow

	q := db.Model(&Assignment{}).
		Select("assignments.role_id AS role_id, roles.name AS role_name, SUM(assignments.funded_hours) AS funded_hours, COALESCE(SUM(allocation_sums.hours), 0) AS allocated_hours").
		Joins("JOIN roles ON roles.id = assignments.role_id AND roles.deleted_at IS NULL").
		Joins("JOIN projects ON projects.id = assignments.project_id AND projects.deleted_at IS NULL").
		Joins("LEFT JOIN (?) AS allocation_sums ON allocation_sums.assignment_id = assignments.id", allocationSums(db)).
		Group("assignments.role_id, roles.name").
		Order("roles.name ASC")

	err := managerScope(q, managerID).Find(&rows).Error
	return rows, err
}

// UserMonthlyTotals sums allocated hours per user and month. When a
// user ID is given, only that user's months are returned.
func UserMonthlyTotals(db *gorm.DB, managerID, userID *uuid.UUID) ([]UserMonthRow, error) {
	var rows []UserMonthRow

	q := db.Model(&Allocation{}).
		Select("assignments.user_id AS user_id, users.first_name || ' ' || users.last_name AS user_name, allocations.month AS month, SUM(allocations.hours) AS hours").
		Joins("JOIN assignments ON assignments.id = allocations.assignment_id AND assignments.deleted_at IS NULL").
		Joins("JOIN users ON users.id = assignments.user_id AND users.deleted_at IS NULL").
		Joins("JOIN projects ON projects.id = assignments.project_id AND projects.deleted_at IS NULL").
		Group("assignments.user_id, users.first_name, users.last_name, allocations.month").
		Order("allocations.month ASC")

	if userID != nil {
		q = q.Where("assignments.user_id = ?", *userID)
	}

	err := managerScope(q, managerID).Find(&rows).Error
	return rows, err
}

// UserProjectMonthly sums allocated hours per user, project and month
// for drill-down breakdowns.
func UserProjectMonthly(db *gorm.DB, managerID, userID *uuid.UUID) ([]UserProjectMonthRow, error) {
	var rows []UserProjectMonthRow

	q := db.Model(&Allocation{}).
		Select("assignments.user_id AS user_id, projects.id AS project_id, projects.name AS project_name, projects.code AS project_code, allocations.month AS month, SUM(allocations.hours) AS hours").
		Joins("JOIN assignments ON assignments.id = allocations.assignment_id AND assignments.deleted_at IS NULL").
		Joins("JOIN projects ON projects.id = assignments.project_id AND projects.deleted_at IS NULL").
		Group("assignments.user_id, projects.id, projects.name, projects.code, allocations.month").
		Order("allocations.month ASC")

	if userID != nil {
		q = q.Where("assignments.user_id = ?", *userID)
	}

	err := managerScope(q, managerID).Find(&rows).Error
	return rows, err
}

// UserRoleFunding sums funded hours per user and role. The role with
// the highest total is the user's primary role.
func UserRoleFunding(db *gorm.DB, managerID, userID *uuid.UUID) ([]UserRoleFundingRow, error) {
	var rows []UserRoleFundingRow

	q := db.Model(&Assignment{}).
		Select("assignments.user_id AS user_id, assignments.role_id AS role_id, roles.name AS role_name, SUM(assignments.funded_hours) AS funded_hours").
		Joins("JOIN roles ON roles.id = assignments.role_id AND roles.deleted_at IS NULL").
		Joins("JOIN projects ON projects.id = assignments.project_id AND projects.deleted_at IS NULL").
		Group("assignments.user_id, assignments.role_id, roles.name").
		Order("funded_hours DESC")

	if userID != nil {
		q = q.Where("assignments.user_id = ?", *userID)
	}

	err := managerScope(q, managerID).Find(&rows).Error
	return rows, err
}

// EmployeeRoster returns every user with the employee system role,
// with their funded hours summed across all assignments. Employees
// without any assignment appear with zero funded hours. A non-nil
// managerID restricts the roster to that manager's direct reports and
// the funding to their projects.
func EmployeeRoster(db *gorm.DB, managerID *uuid.UUID) ([]UserFundingRow, error) {
	var rows []UserFundingRow

	funding := db.Model(&Assignment{}).
		Select("assignments.user_id AS user_id, SUM(assignments.funded_hours) AS funded_hours").
		Joins("JOIN projects ON projects.id = assignments.project_id AND projects.deleted_at IS NULL").
		Group("assignments.user_id")

	q := db.Model(&User{}).
		Select("users.id AS user_id, users.first_name || ' ' || users.last_name AS user_name, COALESCE(funding.funded_hours, 0) AS funded_hours").
		Where("users.system_role = ?", SystemRoleEmployee).
		Order("user_name ASC")

	if managerID != nil {
		funding = funding.Where("projects.manager_id = ?", *managerID)
		q = q.Where("users.manager_id = ?", *managerID)
	}

	err := q.Joins("LEFT JOIN (?) AS funding ON funding.user_id = users.id", funding).Find(&rows).Error
	return rows, err
}

// UserFundingTotals sums funded hours per user across all their
// assignments, sorted by user name.
func UserFundingTotals(db *gorm.DB, managerID *uuid.UUID) ([]UserFundingRow, error) {
	var rows []UserFundingRow

	q := db.Model(&Assignment{}).
		Select("assignments.user_id AS user_id, users.first_name || ' ' || users.last_name AS user_name, SUM(assignments.funded_hours) AS funded_hours").
		Joins("JOIN users ON users.id = assignments.user_id AND users.deleted_at IS NULL").
		Joins("JOIN projects ON projects.id = assignments.project_id AND projects.deleted_at IS NULL").
		Group("assignments.user_id, users.first_name, users.last_name").
		Order("user_name ASC")

	err := managerScope(q, managerID).Find(&rows).Error
	return rows, err
}

// ProjectMonthlyAllocations sums allocated hours per month for a single
// project, in chronological order.
func ProjectMonthlyAllocations(db *gorm.DB, projectID uuid.UUID) ([]MonthTotalRow, error) {
	var rows []MonthTotalRow

	err := db.Model(&Allocation{}).
		Select("allocations.month AS month, SUM(allocations.hours) AS hours").
		Joins("JOIN assignments ON assignments.id = allocations.assignment_id AND assignments.deleted_at IS NULL").
		Where("assignments.project_id = ?", projectID).
		Group("allocations.month").
		Order("allocations.month ASC").
		Find(&rows).Error

	return rows, err
}

// ProjectTotals sums funded hours across a project's assignments and
// allocated hours across those assignments' allocations.
func ProjectTotals(db *gorm.DB, projectID uuid.UUID) (ProjectTotalsRow, error) {
	var row ProjectTotalsRow

	err := db.Model(&Assignment{}).
		Select("COALESCE(SUM(assignments.funded_hours), 0) AS funded_hours, COALESCE(SUM(allocation_sums.hours), 0) AS allocated_hours").
		Joins("LEFT JOIN (?) AS allocation_sums ON allocation_sums.assignment_id = assignments.id", allocationSums(db)).
		Where("assignments.project_id = ?", projectID).
		Scan(&row).Error

	return row, err
}

// RoleUtilization reports per-role hours for a single month: the hours
// allocated in that month, the total funded hours across all of the
// role's assignments and the number of assignments using the role.
// Roles without any assignments are excluded.
func RoleUtilization(db *gorm.DB, month types.Month, managerID *uuid.UUID) ([]RoleUtilizationRow, error) {
	var rows []RoleUtilizationRow

	monthSums := db.Model(&Allocation{}).
		Select("allocations.assignment_id AS assignment_id, SUM(allocations.hours) AS hours").
		Where("allocations.month >= date(?)", month).
		Where("allocations.month < date(?)", month.AddDate(0, 1)).
		Group("allocations.assignment_id")

	q := db.Model(&Assignment{}).
		Select("assignments.role_id AS role_id, roles.name AS role_name, COALESCE(SUM(month_sums.hours), 0) AS allocated_hours, SUM(assignments.funded_hours) AS funded_hours, COUNT(assignments.id) AS assignment_count").
		Joins("JOIN roles ON roles.id = assignments.role_id AND roles.deleted_at IS NULL").
		Joins("JOIN projects ON projects.id = assignments.project_id AND projects.deleted_at IS NULL").
		Joins("LEFT JOIN (?) AS month_sums ON month_sums.assignment_id = assignments.id", monthSums).
		Group("assignments.role_id, roles.name").
		Order("allocated_hours DESC")

	err := managerScope(q, managerID).Find(&rows).Error
	return rows, err
}
