package analytics

import (
	"sort"

	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

// ComputeStreaks derives current and longest consecutive-completion streaks
// from one habit's logs. Input order doesn't matter: logs are sorted by date
// first. The current streak stays live for one grace day, so a run ending
// yesterday still counts when today hasn't been logged yet.
func ComputeStreaks(logs []entity.HabitLog, referenceDate civil.Date) entity.StreakResult {
	if len(logs) == 0 {
		return entity.StreakResult{}
	}

	sorted := make([]entity.HabitLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	longest := longestRun(sorted)
	current := trailingRun(sorted, referenceDate)
	if current > longest {
		longest = current
	}
	return entity.StreakResult{CurrentStreak: current, LongestStreak: longest}
}

// longestRun walks ascending logs counting runs of adjacent completed days.
// A duplicate date or any gap restarts the run at 1.
func longestRun(sorted []entity.HabitLog) int {
	var (
		longest int
		run     int
		last    civil.Date
		counted bool
	)
	for _, l := range sorted {
		if !l.Completed {
			run = 0
			counted = false
			continue
		}
		if counted && l.Date == last.AddDays(1) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		last = l.Date
		counted = true
	}
	return longest
}

// trailingRun computes the current streak ending at or one day before
// referenceDate. Logs after referenceDate are ignored.
func trailingRun(sorted []entity.HabitLog, referenceDate civil.Date) int {
	completedOn := make(map[civil.Date]bool, len(sorted))
	var (
		mostRecent entity.HabitLog
		found      bool
	)
	for _, l := range sorted {
		if l.Date.After(referenceDate) {
			continue
		}
		// Sorted ascending, so the last in-range log wins; on duplicate
		// dates the later entry overwrites, matching storage semantics.
		completedOn[l.Date] = l.Completed
		mostRecent = l
		found = true
	}
	if !found || !completedOn[mostRecent.Date] {
		return 0
	}
	// Grace: the run is live only if it reaches today or yesterday.
	if referenceDate.DaysSince(mostRecent.Date) > 1 {
		return 0
	}
	streak := 1
	for day := mostRecent.Date.AddDays(-1); completedOn[day]; day = day.AddDays(-1) {
		streak++
	}
	return streak
}
