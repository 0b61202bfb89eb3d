package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Imrushtempo/Modulsite-SzabiTervezo/calendar"
)

func TestCalendar_Holiday_Named(t *testing.T) {
	cal := calendar.Hungarian()

	name, ok := cal.Holiday(calendar.Date(2025, time.March, 15))
	assert.True(t, ok)
	assert.Equal(t, "1848-as forradalom", name)

	name, ok = cal.Holiday(calendar.Date(2026, time.December, 25))
	assert.True(t, ok)
	assert.Equal(t, "Karácsony", name)
}

func TestCalendar_Holiday_PlainDay(t *testing.T) {
	cal := calendar.Hungarian()

	_, ok := cal.Holiday(calendar.Date(2025, time.March, 17))
	assert.False(t, ok, "a plain Monday is not a holiday")
}

func TestCalendar_Holiday_UnsupportedYear(t *testing.T) {
	// GIVEN: a year with no published holiday calendar
	// WHEN: looking up any date in it
	// THEN: absence, not an error

	cal := calendar.Hungarian()

	_, ok := cal.Holiday(calendar.Date(2031, time.January, 1))
	assert.False(t, ok, "unsupported years have no holidays")
}

func TestCalendar_Holiday_MemoizationIsIdempotent(t *testing.T) {
	cal := calendar.Hungarian()
	date := calendar.Date(2025, time.May, 1)

	for i := 0; i < 3; i++ {
		name, ok := cal.Holiday(date)
		assert.True(t, ok)
		assert.Equal(t, "A munka ünnepe", name)
	}
}

func TestCalendar_DatasetsDoNotLeak(t *testing.T) {
	// GIVEN: two calendars over different datasets
	// WHEN: the same date is looked up in both
	// THEN: each answers from its own dataset

	custom := calendar.New(calendar.Dataset{
		2025: {{Date: "2025-03-17", Name: "Company Day"}},
	})
	hungarian := calendar.Hungarian()

	date := calendar.Date(2025, time.March, 17)

	name, ok := custom.Holiday(date)
	assert.True(t, ok)
	assert.Equal(t, "Company Day", name)

	_, ok = hungarian.Holiday(date)
	assert.False(t, ok)
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, calendar.IsWeekend(calendar.Date(2025, time.March, 15)), "Saturday")
	assert.True(t, calendar.IsWeekend(calendar.Date(2025, time.March, 16)), "Sunday")
	assert.False(t, calendar.IsWeekend(calendar.Date(2025, time.March, 17)), "Monday")
	assert.False(t, calendar.IsWeekend(calendar.Date(2025, time.March, 21)), "Friday")
}

func TestCalendar_Holidays_ListsYear(t *testing.T) {
	cal := calendar.Hungarian()

	holidays := cal.Holidays(2025)
	assert.Len(t, holidays, 11)
	assert.Equal(t, "Újév", holidays[0].Name)

	assert.Nil(t, cal.Holidays(1999))
}

func TestCalendar_Holidays_ReturnsCopy(t *testing.T) {
	// GIVEN: the holiday list of a year
	// WHEN: a caller overwrites an entry in the returned slice
	// THEN: the calendar's own table is untouched

	cal := calendar.Hungarian()

	holidays := cal.Holidays(2025)
	holidays[0] = calendar.Holiday{Date: "2025-01-01", Name: "scribbled"}

	fresh := cal.Holidays(2025)
	assert.Equal(t, "Újév", fresh[0].Name)

	name, ok := cal.Holiday(calendar.Date(2025, time.January, 1))
	assert.True(t, ok)
	assert.Equal(t, "Újév", name)
}

func TestParseDate(t *testing.T) {
	d, err := calendar.ParseDate("2025-03-17")
	assert.NoError(t, err)
	assert.Equal(t, calendar.Date(2025, time.March, 17), d)

	_, err = calendar.ParseDate("17/03/2025")
	assert.Error(t, err)
}
