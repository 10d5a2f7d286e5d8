package analytics_test

import (
	"testing"
	"time"

	"github.com/ReesavGupta/new-misogi/internal/analytics"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectHeatmapMonth(t *testing.T) {
	t.Parallel()
	habitID := uuid.New()
	names := map[uuid.UUID]string{habitID: "meditate"}
	logs := []entity.HabitLog{
		{HabitID: habitID, Date: date(t, "2024-04-20"), Completed: false},
		{HabitID: habitID, Date: date(t, "2024-04-03"), Completed: true},
		{HabitID: habitID, Date: date(t, "2024-04-11"), Completed: true},
		// Neighbouring months stay out.
		{HabitID: habitID, Date: date(t, "2024-03-31"), Completed: true},
		{HabitID: habitID, Date: date(t, "2024-05-01"), Completed: true},
	}

	points := analytics.ProjectHeatmap(logs, names, 2024, time.April, uuid.Nil)

	// Three logged days in the month produce exactly three points.
	require.Len(t, points, 3)
	assert.Equal(t, entity.HeatmapPoint{Date: date(t, "2024-04-03"), Value: 1, HabitID: habitID, HabitName: "meditate"}, points[0])
	assert.Equal(t, entity.HeatmapPoint{Date: date(t, "2024-04-11"), Value: 1, HabitID: habitID, HabitName: "meditate"}, points[1])
	assert.Equal(t, entity.HeatmapPoint{Date: date(t, "2024-04-20"), Value: 0, HabitID: habitID, HabitName: "meditate"}, points[2])
}

func TestProjectHeatmapFullYear(t *testing.T) {
	t.Parallel()
	habitID := uuid.New()
	logs := []entity.HabitLog{
		{HabitID: habitID, Date: date(t, "2024-01-01"), Completed: true},
		{HabitID: habitID, Date: date(t, "2024-12-31"), Completed: true},
		{HabitID: habitID, Date: date(t, "2023-12-31"), Completed: true},
		{HabitID: habitID, Date: date(t, "2025-01-01"), Completed: true},
	}

	points := analytics.ProjectHeatmap(logs, nil, 2024, 0, uuid.Nil)

	require.Len(t, points, 2)
	assert.Equal(t, date(t, "2024-01-01"), points[0].Date)
	assert.Equal(t, date(t, "2024-12-31"), points[1].Date)
}

func TestProjectHeatmapHabitFilter(t *testing.T) {
	t.Parallel()
	wanted := uuid.New()
	other := uuid.New()
	logs := []entity.HabitLog{
		{HabitID: wanted, Date: date(t, "2024-06-01"), Completed: true},
		{HabitID: other, Date: date(t, "2024-06-01"), Completed: true},
		{HabitID: other, Date: date(t, "2024-06-02"), Completed: false},
	}

	points := analytics.ProjectHeatmap(logs, nil, 2024, time.June, wanted)

	require.Len(t, points, 1)
	assert.Equal(t, wanted, points[0].HabitID)
}

func TestProjectHeatmapLeapFebruary(t *testing.T) {
	t.Parallel()
	habitID := uuid.New()
	logs := []entity.HabitLog{
		{HabitID: habitID, Date: date(t, "2024-02-29"), Completed: true},
	}

	points := analytics.ProjectHeatmap(logs, nil, 2024, time.February, uuid.Nil)

	require.Len(t, points, 1)
	assert.Equal(t, 1, points[0].Value)
}

func TestProjectHeatmapEmpty(t *testing.T) {
	t.Parallel()
	points := analytics.ProjectHeatmap(nil, nil, 2024, time.April, uuid.Nil)
	assert.Empty(t, points)
	assert.NotNil(t, points)
}
