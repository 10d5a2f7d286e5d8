package analytics

import (
	"sort"
	"time"

	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
	"github.com/google/uuid"
)

// ProjectHeatmap maps logs onto calendar heatmap points for a year, or a
// single month when month is nonzero. habitID narrows to one habit when it is
// not uuid.Nil; ownership is the caller's problem. Only days that actually
// have a log produce a point, value 1 for completed and 0 for missed.
func ProjectHeatmap(logs []entity.HabitLog, habitNames map[uuid.UUID]string, year int, month time.Month, habitID uuid.UUID) []entity.HeatmapPoint {
	var start, end civil.Date
	if month != 0 {
		start = civil.Date{Year: year, Month: month, Day: 1}
		end = start.AddDays(daysIn(year, month) - 1)
	} else {
		start = civil.Date{Year: year, Month: time.January, Day: 1}
		end = civil.Date{Year: year, Month: time.December, Day: 31}
	}

	points := make([]entity.HeatmapPoint, 0, len(logs))
	for _, l := range logs {
		if habitID != uuid.Nil && l.HabitID != habitID {
			continue
		}
		if l.Date.Before(start) || l.Date.After(end) {
			continue
		}
		value := 0
		if l.Completed {
			value = 1
		}
		points = append(points, entity.HeatmapPoint{
			Date:      l.Date,
			Value:     value,
			HabitID:   l.HabitID,
			HabitName: habitNames[l.HabitID],
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
