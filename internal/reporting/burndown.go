package reporting

import (
	"github.com/shopspring/decimal"
	"github.com/staffalloc/backend/internal/types"
)

// BurnDownPoint is one month of a project burn-down chart. PlannedHours and
// ActualHours are the hours remaining after the month's burn; the burn values
// carry the per-month spend so that an overspend beyond the budget stays
// discoverable even after the remaining curve is clamped at zero.
type BurnDownPoint struct {
	Label           string  `json:"label" example:"Jan 2025"`          // Short month label
	PlannedHours    float64 `json:"plannedHours" example:"213.33"`     // Remaining hours on the planned trajectory
	ActualHours     float64 `json:"actualHours" example:"160"`         // Remaining hours on the actual trajectory
	PlannedBurn     float64 `json:"plannedBurnHours" example:"106.67"` // Hours planned to be spent this month
	ActualBurn      float64 `json:"actualBurnHours" example:"160"`     // Hours actually allocated this month
	CapacityHours   int     `json:"capacityHours" example:"184"`       // Working hours available in the month
	SprintIndex     int     `json:"sprintIndex" example:"1"`           // 1-based position in the window
	Date            string  `json:"date" example:"2025-01-01"`         // First day of the month, ISO 8601
}

// round2 rounds to two decimal places.
//
// decimal.Round rounds half away from zero; this is the pinned rounding rule
// for every fractional value the API emits.
func round2(value float64) float64 {
	f, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return f
}

// Percentage returns numerator/denominator as a percentage rounded to two
// decimal places, or 0 when the denominator is zero.
func Percentage(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	return round2(numerator / denominator * 100)
}

// PlannedDistribution splits a total hour budget across the given months,
// proportionally to each month's capacity.
//
// The returned values are rounded to two decimal places; the last element
// absorbs the rounding drift so that the values sum to exactly the total.
// When the total capacity is zero every month weighs the same.
func PlannedDistribution(totalHours float64, months []types.Month, overrides map[types.Month]int) []float64 {
	if len(months) == 0 {
		return []float64{}
	}

	capacities := make([]int, 0, len(months))
	totalCapacity := 0
	for _, month := range months {
		capacity := CapacityHours(month, overrides)
		capacities = append(capacities, capacity)
		totalCapacity += capacity
	}

	if totalCapacity <= 0 {
		for i := range capacities {
			capacities[i] = 1
		}
		totalCapacity = len(months)
	}

	scale := totalHours / float64(totalCapacity)

	distribution := make([]float64, len(months))
	sum := 0.0
	for i, capacity := range capacities {
		distribution[i] = round2(float64(capacity) * scale)
		sum += distribution[i]
	}

	// Correct rounding drift in the last month so the sum matches the total
	drift := round2(totalHours - sum)
	distribution[len(distribution)-1] = round2(distribution[len(distribution)-1] + drift)

	return distribution
}

// BuildBurnDownSeries walks the month windows in order and emits the planned
// and actual burn-down trajectories.
//
// Both remaining-hours curves start at totalHours and are clamped at zero:
// spending past the budget flattens the actual curve instead of driving it
// negative.
func BuildBurnDownSeries(totalHours float64, months []types.Month, actual map[types.Month]float64, overrides map[types.Month]int) []BurnDownPoint {
	planned := PlannedDistribution(totalHours, months, overrides)

	// The distribution is as long as the window list by construction, but a
	// short slice must not panic the walk below.
	for len(planned) < len(months) {
		planned = append(planned, 0)
	}

	plannedRemaining := totalHours
	actualRemaining := totalHours

	series := make([]BurnDownPoint, 0, len(months))
	for i, month := range months {
		plannedBurn := planned[i]
		actualBurn := actual[month]

		plannedRemaining = max(plannedRemaining-plannedBurn, 0)
		actualRemaining = max(actualRemaining-actualBurn, 0)

		series = append(series, BurnDownPoint{
			Label:         month.Label(),
			PlannedHours:  round2(plannedRemaining),
			ActualHours:   round2(actualRemaining),
			PlannedBurn:   round2(plannedBurn),
			ActualBurn:    round2(actualBurn),
			CapacityHours: CapacityHours(month, overrides),
			SprintIndex:   i + 1,
			Date:          month.ISODate(),
		})
	}

	return series
}
