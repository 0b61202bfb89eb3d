/*
conflicts.go - Team availability conflict checking

PURPOSE:
  Before approving or planning leave, managers want to know how many people
  are already out on each day of a range. A conflict day is a day where two
  or more people have approved or pending leave.

SEVERITY:
  none    no conflict days
  low     at most 2 people out on the worst day
  medium  3 people out on the worst day
  high    4 or more people out on the worst day
*/
package leave

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Imrushtempo/Modulsite-SzabiTervezo/calendar"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/identity"
)

// ConflictDay is one day with multiple people on leave.
type ConflictDay struct {
	Date        string
	PeopleCount int
	UserNames   []string
}

// ConflictSummary aggregates a conflict report.
type ConflictSummary struct {
	MaxPeopleOnLeave  int
	TotalConflictDays int
	Severity          string
}

// ConflictReport is the result of a conflict check over a date range.
type ConflictReport struct {
	Conflicts []ConflictDay
	Requests  []Request
	Summary   ConflictSummary
	Warnings  []string
}

// CheckConflicts scans approved and pending requests overlapping
// [start, end] and reports the days where two or more people are out.
// Weekends and holidays are skipped; nobody counts as "on leave" on a day
// no one works.
func (s *RequestService) CheckConflicts(ctx context.Context, actor identity.User, start, end time.Time) (*ConflictReport, error) {
	if end.Before(start) {
		return nil, validationErrorf("the end date cannot be before the start date")
	}

	requests, err := s.Requests.ListRequestsInRange(ctx, actor.TenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load overlapping requests: %w", err)
	}

	report := &ConflictReport{Requests: requests}

	maxPeople := 0
	for day := calendar.Truncate(start); !day.After(calendar.Truncate(end)); day = day.AddDate(0, 0, 1) {
		if !s.Calendar.IsWorkingDay(day) {
			continue
		}

		seen := make(map[string]bool)
		var names []string
		for _, r := range requests {
			if !r.Covers(day) || seen[r.UserID] {
				continue
			}
			seen[r.UserID] = true
			name := r.UserName
			if name == "" {
				name = r.UserID
			}
			names = append(names, name)
		}

		if len(seen) > maxPeople {
			maxPeople = len(seen)
		}
		if len(seen) >= 2 {
			sort.Strings(names)
			report.Conflicts = append(report.Conflicts, ConflictDay{
				Date:        calendar.FormatDate(day),
				PeopleCount: len(seen),
				UserNames:   names,
			})
		}
		if len(seen) >= 3 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%d people are on leave on %s", len(seen), calendar.FormatDate(day)))
		}
	}

	report.Summary = ConflictSummary{
		MaxPeopleOnLeave:  maxPeople,
		TotalConflictDays: len(report.Conflicts),
		Severity:          severity(len(report.Conflicts), maxPeople),
	}
	return report, nil
}

func severity(conflictDays, maxPeople int) string {
	switch {
	case conflictDays == 0:
		return "none"
	case maxPeople >= 4:
		return "high"
	case maxPeople == 3:
		return "medium"
	default:
		return "low"
	}
}
