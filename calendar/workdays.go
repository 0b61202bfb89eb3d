package calendar

import (
	"time"
)

// =============================================================================
// WORKING-DAY CALCULATOR
// =============================================================================

// WorkingDays counts the working days in [start, end], inclusive of both
// endpoints. Weekends and holidays are excluded. An inverted range
// (start after end) counts zero days; callers treat zero as a validation
// failure, not an error.
func (c *Calendar) WorkingDays(start, end time.Time) int {
	count := 0
	for d := Truncate(start); !d.After(Truncate(end)); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			count++
		}
	}
	return count
}
