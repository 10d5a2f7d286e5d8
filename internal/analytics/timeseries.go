package analytics

import (
	"math"
	"sort"

	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
	"github.com/google/uuid"
)

const topHabitsLimit = 5

// Aggregate folds a user's habits and logs into dashboard material: one
// zero-initialized bucket per day of [start, end], summary counters over the
// in-range logs, and the top habits ranked by longest streak. Streak ranking
// sees each habit's full history with end as the reference date, not just the
// requested window.
func Aggregate(habits []*entity.Habit, logsByHabit map[uuid.UUID][]entity.HabitLog, start, end civil.Date) *entity.DashboardStats {
	stats := &entity.DashboardStats{
		TimeSeriesData: make([]entity.DailyBucket, 0, end.DaysSince(start)+1),
		TopHabits:      []entity.TopHabit{},
	}

	bucketIndex := make(map[civil.Date]int)
	for day := start; !day.After(end); day = day.AddDays(1) {
		bucketIndex[day] = len(stats.TimeSeriesData)
		stats.TimeSeriesData = append(stats.TimeSeriesData, entity.DailyBucket{Date: day})
	}

	for _, habit := range habits {
		for _, l := range logsByHabit[habit.ID] {
			i, ok := bucketIndex[l.Date]
			if !ok {
				continue
			}
			b := &stats.TimeSeriesData[i]
			b.Total++
			if l.Completed {
				b.Completed++
				stats.Summary.TotalCompletions++
			} else {
				b.Missed++
				stats.Summary.TotalMissed++
			}
		}
	}

	stats.Summary.TotalHabits = len(habits)
	if denom := stats.Summary.TotalCompletions + stats.Summary.TotalMissed; denom > 0 {
		stats.Summary.CompletionRate = int(math.Round(100 * float64(stats.Summary.TotalCompletions) / float64(denom)))
	}

	ranked := make([]entity.TopHabit, 0, len(habits))
	for _, habit := range habits {
		streaks := ComputeStreaks(logsByHabit[habit.ID], end)
		ranked = append(ranked, entity.TopHabit{
			ID:            habit.ID,
			Name:          habit.Name,
			LongestStreak: streaks.LongestStreak,
		})
	}
	// Stable keeps input order on equal streaks.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LongestStreak > ranked[j].LongestStreak
	})
	if len(ranked) > topHabitsLimit {
		ranked = ranked[:topHabitsLimit]
	}
	stats.TopHabits = ranked

	return stats
}
