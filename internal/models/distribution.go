package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/staffalloc/backend/internal/reporting"
	"github.com/staffalloc/backend/internal/types"
	"gorm.io/gorm"
)

// StrategyEven is the only supported distribution strategy.
const StrategyEven = "even"

// DistributeEvenly spreads a total of hours evenly across all months of
// the inclusive range [start, end] for one assignment.
//
// When total is nil, the assignment's remaining unallocated funded hours
// are distributed. The remainder of the integer division goes to the
// earliest months, one hour each, so no two months differ by more than
// one hour. Existing allocation rows in the range are updated in place.
//
// The whole read-modify-write sequence runs in a single transaction so
// that two racing distribution requests for the same assignment cannot
// interleave.
func DistributeEvenly(db *gorm.DB, assignmentID uuid.UUID, start, end types.Month, total *int) ([]Allocation, error) {
	months := reporting.MonthRange(start, end)
	if len(months) == 0 {
		return nil, ErrDistributionEmptyRange
	}

	var allocations []Allocation

	err := db.Transaction(func(tx *gorm.DB) error {
		var assignment Assignment
		err := tx.First(&assignment, assignmentID).Error
		if err != nil {
			return err
		}

		hours := 0
		if total != nil {
			hours = *total
		} else {
			allocated, err := assignment.AllocatedHours(tx)
			if err != nil {
				return err
			}

			hours = max(assignment.FundedHours-allocated, 0)
		}

		if hours < 0 {
			return ErrDistributionNegativeTotal
		}

		base := hours / len(months)
		remainder := hours % len(months)

		for i, month := range months {
			monthHours := base
			if i < remainder {
				monthHours++
			}

			var allocation Allocation
			err = tx.First(&allocation, &Allocation{AssignmentID: assignment.ID, Month: month}).Error
			if err != nil && !errors.Is(err, ErrResourceNotFound) {
				return err
			}

			if errors.Is(err, ErrResourceNotFound) {
				allocation = Allocation{AssignmentID: assignment.ID, Month: month, Hours: monthHours}
				err = tx.Create(&allocation).Error
			} else {
				allocation.Hours = monthHours
				err = tx.Model(&allocation).Select("Hours").Updates(allocation).Error
			}
			if err != nil {
				return err
			}

			allocations = append(allocations, allocation)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return allocations, nil
}
