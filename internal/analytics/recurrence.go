// Package analytics holds the recurrence and streak engine: pure functions
// over in-memory habits and logs, safe for concurrent use. Repositories fetch
// the data, services call in here, handlers serialize the results.
package analytics

import (
	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

// IsDue reports whether habit is scheduled on day. A date before the habit's
// start is never due. A custom rule with an empty or out-of-range day set
// yields (false, ErrMalformedRecurrence) so a misconfigured habit can't take
// down a batch computation.
func IsDue(habit *entity.Habit, day civil.Date) (bool, error) {
	if day.Before(habit.StartDate) {
		return false, nil
	}
	weekday := int(day.Weekday())
	switch habit.Recurrence.Kind {
	case entity.RecurrenceEveryday:
		return true, nil
	case entity.RecurrenceWeekdays:
		return weekday >= 1 && weekday <= 5, nil
	case entity.RecurrenceCustom:
		if len(habit.Recurrence.Days) == 0 {
			return false, errorvalues.ErrMalformedRecurrence
		}
		for _, d := range habit.Recurrence.Days {
			if d < 0 || d > 6 {
				return false, errorvalues.ErrMalformedRecurrence
			}
		}
		for _, d := range habit.Recurrence.Days {
			if d == weekday {
				return true, nil
			}
		}
		return false, nil
	}
	return false, errorvalues.ErrMalformedRecurrence
}
