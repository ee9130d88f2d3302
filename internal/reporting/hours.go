// Package reporting implements the pure calculations behind the staffing
// dashboards: standard working hours, month enumeration and the
// planned-vs-actual burn-down engine.
//
// Everything in this package is deterministic and free of database access so
// that the numeric invariants can be tested without fixtures.
package reporting

import (
	"time"

	"github.com/staffalloc/backend/internal/types"
)

// HoursPerWorkday is the number of working hours assumed for a weekday.
const HoursPerWorkday = 8

// DaysPerSprint is the length of a sprint in days.
const DaysPerSprint = 14

// StandardMonthHours returns the number of working hours in a month assuming
// 8h weekdays. Holidays are not taken into account; projects compensate with
// monthly hour overrides instead.
func StandardMonthHours(month types.Month) int {
	start := time.Time(month)
	next := start.AddDate(0, 1, 0)

	days := 0
	for d := start; d.Before(next); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			days++
		}
	}

	return days * HoursPerWorkday
}

// CapacityHours returns the working hours available in a month, preferring a
// project override when one exists and is positive. Without an override the
// standard hours apply, floored at 1 to keep downstream divisions safe.
func CapacityHours(month types.Month, overrides map[types.Month]int) int {
	if hours, ok := overrides[month]; ok && hours > 0 {
		return hours
	}

	return max(StandardMonthHours(month), 1)
}

// MonthRange enumerates every month from start through end inclusive.
// It returns an empty slice when end precedes start.
func MonthRange(start, end types.Month) []types.Month {
	if end.Before(start) {
		return []types.Month{}
	}

	months := []types.Month{}
	for m := start; !m.After(end); m = m.AddDate(0, 1) {
		months = append(months, m)
	}

	return months
}

// AddMonths advances a date by the given number of calendar months, clamping
// the day to the last valid day of the target month.
func AddMonths(date time.Time, months int) time.Time {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	target := first.AddDate(0, months, 0)

	day := date.Day()
	if last := lastDay(target); day > last {
		day = last
	}

	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, date.Location())
}

// DefaultProjectEnd estimates a project end date from its sprint count.
// Used as a fallback for burn-down windows when no allocations exist yet.
func DefaultProjectEnd(start time.Time, sprints int) time.Time {
	return start.AddDate(0, 0, sprints*DaysPerSprint)
}

// lastDay returns the number of days in t's month.
func lastDay(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
