/*
Package calendar answers the two questions every other component asks about
a date: "is this a working day?" and "which public holiday is it?".

PURPOSE:
  Provides the holiday calendar lookup and the working-day calculator used
  by the leave request lifecycle. The default dataset is the Hungarian
  public-holiday table; a Calendar can be constructed from any year-indexed
  dataset (e.g., another country, or a test fixture).

KEY CONCEPTS:
  - Holiday: a fixed calendar date with a display name.
  - Dataset: map of year -> holidays for that year. Years missing from the
    dataset simply have no holidays; that is not an error (e.g., a future
    year whose calendar has not been published yet).
  - Working day: neither Saturday/Sunday nor a recognized holiday.

MEMOIZATION:
  Per-year date->name maps are built lazily on first lookup and cached on
  the Calendar instance. The cache is idempotent (rebuilding a year yields
  the same map) and never shared between Calendars, so two Calendars with
  different datasets cannot contaminate each other.

SEE ALSO:
  - workdays.go: inclusive-range working-day counting
  - leave/request.go: the lifecycle validations built on this package
*/
package calendar

import (
	"sync"
	"time"
)

// =============================================================================
// HOLIDAY DATASET
// =============================================================================

// Holiday is a single named public holiday on a fixed date.
type Holiday struct {
	Date string // YYYY-MM-DD
	Name string
}

// Dataset maps a year to its published holidays.
type Dataset map[int][]Holiday

// hungarianHolidays is the national holiday table for the supported years.
// Source: Hungarian labour code munkaszüneti napok, 2024-2027.
var hungarianHolidays = Dataset{
	2024: {
		{"2024-01-01", "Újév"},
		{"2024-03-15", "1848-as forradalom"},
		{"2024-03-29", "Nagypéntek"},
		{"2024-04-01", "Húsvéthétfő"},
		{"2024-05-01", "A munka ünnepe"},
		{"2024-05-20", "Pünkösdhétfő"},
		{"2024-08-20", "Szent István napja"},
		{"2024-10-23", "1956-os forradalom"},
		{"2024-11-01", "Mindenszentek"},
		{"2024-12-25", "Karácsony"},
		{"2024-12-26", "Karácsony 2. napja"},
	},
	2025: {
		{"2025-01-01", "Újév"},
		{"2025-03-15", "1848-as forradalom"},
		{"2025-04-18", "Nagypéntek"},
		{"2025-04-21", "Húsvéthétfő"},
		{"2025-05-01", "A munka ünnepe"},
		{"2025-06-09", "Pünkösdhétfő"},
		{"2025-08-20", "Szent István napja"},
		{"2025-10-23", "1956-os forradalom"},
		{"2025-11-01", "Mindenszentek"},
		{"2025-12-25", "Karácsony"},
		{"2025-12-26", "Karácsony 2. napja"},
	},
	2026: {
		{"2026-01-01", "Újév"},
		{"2026-03-15", "1848-as forradalom"},
		{"2026-04-03", "Nagypéntek"},
		{"2026-04-06", "Húsvéthétfő"},
		{"2026-05-01", "A munka ünnepe"},
		{"2026-05-25", "Pünkösdhétfő"},
		{"2026-08-20", "Szent István napja"},
		{"2026-10-23", "1956-os forradalom"},
		{"2026-11-01", "Mindenszentek"},
		{"2026-12-25", "Karácsony"},
		{"2026-12-26", "Karácsony 2. napja"},
	},
	2027: {
		{"2027-01-01", "Újév"},
		{"2027-03-15", "1848-as forradalom"},
		{"2027-03-26", "Nagypéntek"},
		{"2027-03-29", "Húsvéthétfő"},
		{"2027-05-01", "A munka ünnepe"},
		{"2027-05-17", "Pünkösdhétfő"},
		{"2027-08-20", "Szent István napja"},
		{"2027-10-23", "1956-os forradalom"},
		{"2027-11-01", "Mindenszentek"},
		{"2027-12-25", "Karácsony"},
		{"2027-12-26", "Karácsony 2. napja"},
	},
}

// =============================================================================
// CALENDAR
// =============================================================================

// Calendar provides holiday and weekend lookups over a fixed dataset.
// The zero value is not usable; construct with New or Hungarian.
type Calendar struct {
	dataset Dataset

	mu   sync.Mutex
	memo map[int]map[string]string // year -> date -> holiday name
}

// New creates a Calendar over the given dataset.
func New(dataset Dataset) *Calendar {
	return &Calendar{
		dataset: dataset,
		memo:    make(map[int]map[string]string),
	}
}

// Hungarian returns a Calendar over the built-in Hungarian holiday table.
func Hungarian() *Calendar {
	return New(hungarianHolidays)
}

// Holiday returns the holiday name for the given date, if any.
// Years absent from the dataset have no holidays.
func (c *Calendar) Holiday(t time.Time) (string, bool) {
	name, ok := c.yearMap(t.Year())[FormatDate(t)]
	return name, ok
}

// Holidays returns the holidays of a year in dataset order. The returned
// slice is a copy; mutating it does not affect the calendar.
// Returns nil for years outside the dataset.
func (c *Calendar) Holidays(year int) []Holiday {
	src := c.dataset[year]
	if src == nil {
		return nil
	}
	out := make([]Holiday, len(src))
	copy(out, src)
	return out
}

// yearMap returns the memoized date->name map for a year, building it on
// first use.
func (c *Calendar) yearMap(year int) map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.memo[year]; ok {
		return m
	}
	m := make(map[string]string, len(c.dataset[year]))
	for _, h := range c.dataset[year] {
		m[h.Date] = h.Name
	}
	c.memo[year] = m
	return m
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWorkingDay reports whether the date is neither a weekend nor a holiday.
func (c *Calendar) IsWorkingDay(t time.Time) bool {
	if IsWeekend(t) {
		return false
	}
	_, holiday := c.Holiday(t)
	return !holiday
}
