package entity

import (
	"time"

	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
}

// RefreshToken is an opaque persisted token. A token is usable only while it
// is not revoked and not past ExpiresAt; rotation revokes the old row.
type RefreshToken struct {
	ID        int
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

type RecurrenceKind string

const (
	RecurrenceEveryday RecurrenceKind = "everyday"
	RecurrenceWeekdays RecurrenceKind = "weekdays"
	RecurrenceCustom   RecurrenceKind = "custom"
)

// RecurrenceRule is decoded once at the storage boundary. Days is meaningful
// only for RecurrenceCustom and holds weekday numbers 0-6, 0 = Sunday.
type RecurrenceRule struct {
	Kind RecurrenceKind `json:"kind"`
	Days []int          `json:"days,omitempty"`
}

type Habit struct {
	ID         uuid.UUID      `json:"id"`
	UserID     uuid.UUID      `json:"uid"`
	Name       string         `json:"name"`
	Recurrence RecurrenceRule `json:"recurrence"`
	StartDate  civil.Date     `json:"start_date"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// HabitLog records one day's outcome for a habit. At most one log exists per
// (HabitID, Date); a later write for the same date overwrites.
type HabitLog struct {
	ID        int        `json:"id"`
	HabitID   uuid.UUID  `json:"habit_id"`
	UserID    uuid.UUID  `json:"uid"`
	Date      civil.Date `json:"date"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"created_at"`
}

type UserSettings struct {
	UserID       uuid.UUID `json:"uid"`
	Theme        string    `json:"theme"`
	ReminderTime string    `json:"reminder_time,omitempty"`
}

// StreakResult always satisfies LongestStreak >= CurrentStreak.
type StreakResult struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

type DailyBucket struct {
	Date      civil.Date `json:"date"`
	Completed int        `json:"completed"`
	Missed    int        `json:"missed"`
	Total     int        `json:"total"`
}

type DashboardSummary struct {
	TotalHabits      int `json:"total_habits"`
	TotalCompletions int `json:"total_completions"`
	TotalMissed      int `json:"total_missed"`
	CompletionRate   int `json:"completion_rate"`
}

type TopHabit struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	LongestStreak int       `json:"longest_streak"`
}

type DashboardStats struct {
	Summary        DashboardSummary `json:"summary"`
	TimeSeriesData []DailyBucket    `json:"time_series_data"`
	TopHabits      []TopHabit       `json:"top_habits"`
}

// HeatmapPoint exists only for days that actually have a log entry.
type HeatmapPoint struct {
	Date      civil.Date `json:"date"`
	Value     int        `json:"value"`
	HabitID   uuid.UUID  `json:"habit_id"`
	HabitName string     `json:"habit_name"`
}
