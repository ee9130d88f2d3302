package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Uniqueness violations, translated from driver errors in createUpdateCallback.
var (
	ErrUserEmailNotUnique       = errors.New("a user with this email address already exists")
	ErrRoleNameNotUnique        = errors.New("a role with this name already exists for this owner")
	ErrLCATNameNotUnique        = errors.New("a labor category with this name already exists for this owner")
	ErrProjectCodeNotUnique     = errors.New("a project with this code already exists for this manager")
	ErrAssignmentNotUnique      = errors.New("this user is already assigned to this project")
	ErrAllocationMonthNotUnique = errors.New("an allocation for this assignment and month already exists")
	ErrOverrideMonthNotUnique   = errors.New("an hour override for this project and month already exists")
)

// Value checks enforced in model hooks.
var (
	ErrFundedHoursNegative      = errors.New("funded hours must not be negative")
	ErrAllocatedHoursNegative   = errors.New("allocated hours must not be negative")
	ErrOverrideHoursNotPositive = errors.New("overridden hours must be larger than zero")
	ErrSprintsNotPositive       = errors.New("the sprint count must be larger than zero")
)

// Distribution errors.
var (
	ErrDistributionEmptyRange    = errors.New("the month range must include at least one month")
	ErrDistributionNegativeTotal = errors.New("total hours must be greater than or equal to zero")
	ErrDistributionStrategy      = errors.New("only the even distribution strategy is supported")
)
