package analytics_test

import (
	"math/rand"
	"testing"

	"github.com/ReesavGupta/new-misogi/internal/analytics"
	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.Parse(s)
	require.NoError(t, err)
	return d
}

func logsOn(t *testing.T, completed bool, dates ...string) []entity.HabitLog {
	t.Helper()
	logs := make([]entity.HabitLog, 0, len(dates))
	for _, s := range dates {
		logs = append(logs, entity.HabitLog{Date: date(t, s), Completed: completed})
	}
	return logs
}

func TestComputeStreaks(t *testing.T) {
	t.Parallel()
	fiveStraight := logsOn(t, true, "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05")
	testCases := []struct {
		Desc          string
		Logs          []entity.HabitLog
		ReferenceDate string
		Expected      entity.StreakResult
	}{
		{
			Desc:          "empty logs",
			Logs:          nil,
			ReferenceDate: "2024-01-05",
			Expected:      entity.StreakResult{},
		},
		{
			Desc:          "run ending on reference date",
			Logs:          fiveStraight,
			ReferenceDate: "2024-01-05",
			Expected:      entity.StreakResult{CurrentStreak: 5, LongestStreak: 5},
		},
		{
			Desc:          "run ending yesterday still live",
			Logs:          fiveStraight,
			ReferenceDate: "2024-01-06",
			Expected:      entity.StreakResult{CurrentStreak: 5, LongestStreak: 5},
		},
		{
			Desc:          "run lapsed after grace day",
			Logs:          fiveStraight,
			ReferenceDate: "2024-01-07",
			Expected:      entity.StreakResult{CurrentStreak: 0, LongestStreak: 5},
		},
		{
			Desc: "missed day splits runs",
			Logs: append(
				logsOn(t, true, "2024-01-01", "2024-01-02", "2024-01-04", "2024-01-05"),
				logsOn(t, false, "2024-01-03")...,
			),
			ReferenceDate: "2024-01-05",
			Expected:      entity.StreakResult{CurrentStreak: 2, LongestStreak: 2},
		},
		{
			Desc:          "absent day splits runs",
			Logs:          logsOn(t, true, "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-07", "2024-01-08"),
			ReferenceDate: "2024-01-08",
			Expected:      entity.StreakResult{CurrentStreak: 2, LongestStreak: 3},
		},
		{
			Desc:          "most recent log missed kills current streak",
			Logs:          append(logsOn(t, true, "2024-01-01", "2024-01-02"), logsOn(t, false, "2024-01-03")...),
			ReferenceDate: "2024-01-03",
			Expected:      entity.StreakResult{CurrentStreak: 0, LongestStreak: 2},
		},
		{
			Desc:          "single completed day today",
			Logs:          logsOn(t, true, "2024-03-10"),
			ReferenceDate: "2024-03-10",
			Expected:      entity.StreakResult{CurrentStreak: 1, LongestStreak: 1},
		},
		{
			Desc:          "logs after reference date are ignored for current",
			Logs:          logsOn(t, true, "2024-01-04", "2024-01-05", "2024-01-09"),
			ReferenceDate: "2024-01-05",
			Expected:      entity.StreakResult{CurrentStreak: 2, LongestStreak: 2},
		},
		{
			Desc:          "all missed",
			Logs:          logsOn(t, false, "2024-01-01", "2024-01-02", "2024-01-03"),
			ReferenceDate: "2024-01-03",
			Expected:      entity.StreakResult{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			got := analytics.ComputeStreaks(tc.Logs, date(t, tc.ReferenceDate))
			assert.Equal(t, tc.Expected, got)
			assert.GreaterOrEqual(t, got.LongestStreak, got.CurrentStreak)
		})
	}
}

func TestComputeStreaksOrderIndependent(t *testing.T) {
	t.Parallel()
	logs := append(
		logsOn(t, true, "2024-02-01", "2024-02-02", "2024-02-03", "2024-02-06", "2024-02-07"),
		logsOn(t, false, "2024-02-04")...,
	)
	ref := date(t, "2024-02-07")
	want := analytics.ComputeStreaks(logs, ref)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]entity.HabitLog, len(logs))
		copy(shuffled, logs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, analytics.ComputeStreaks(shuffled, ref))
	}
}

func TestComputeStreaksDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	logs := logsOn(t, true, "2024-05-03", "2024-05-01", "2024-05-02")
	first := logs[0].Date
	analytics.ComputeStreaks(logs, date(t, "2024-05-03"))
	assert.Equal(t, first, logs[0].Date)
}

func TestComputeStreaksCurrentRunBecomesLongest(t *testing.T) {
	t.Parallel()
	// Historical run of 2, trailing run of 3 ending on the reference date.
	logs := append(
		logsOn(t, true, "2024-01-01", "2024-01-02", "2024-01-05", "2024-01-06", "2024-01-07"),
		logsOn(t, false, "2024-01-03")...,
	)
	got := analytics.ComputeStreaks(logs, date(t, "2024-01-07"))
	assert.Equal(t, entity.StreakResult{CurrentStreak: 3, LongestStreak: 3}, got)
}
