package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=8,max=72"`
}

type CreateHabitRequest struct {
	Name       string                `validate:"required,min=1,max=200"`
	Recurrence entity.RecurrenceRule `validate:"-"`
	// Zero value defaults to today
	StartDate civil.Date
}

// UpdateHabitRequest carries only the fields to change; nil pointers leave
// the stored value alone.
type UpdateHabitRequest struct {
	Name       *string `validate:"omitempty,min=1,max=200"`
	Recurrence *entity.RecurrenceRule
	StartDate  *civil.Date
}

type UpdateSettingsRequest struct {
	Theme        *string `validate:"omitempty,oneof=light dark system"`
	ReminderTime *string `validate:"omitempty,clock_hhmm"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

// HabitWithStreaks is a habit enriched with its computed streaks for list
// responses.
type HabitWithStreaks struct {
	entity.Habit
	entity.StreakResult
}

// TodayHabit additionally reports whether today's log exists and its outcome;
// nil means nothing has been logged today.
type TodayHabit struct {
	entity.Habit
	entity.StreakResult
	TodayCompleted *bool `json:"today_completed"`
}

//go:generate mockgen -source=interfaces.go -destination=mocks/service_mocks.go -package=mocks

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type TokensServiceI interface {
	// Issues and persists a fresh opaque refresh token for the user
	IssueRefreshToken(ctx context.Context, uid uuid.UUID) (string, error)
	// Validates the presented token, revokes it and issues a replacement
	RotateRefreshToken(ctx context.Context, token string) (uuid.UUID, string, error)
	// Revokes the presented token (logout)
	RevokeRefreshToken(ctx context.Context, token string) error
}

type HabitsServiceI interface {
	CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error)
	// Lists habits with streaks computed against today
	GetUserHabits(ctx context.Context, uid uuid.UUID, pagination PaginationOpts, today civil.Date) ([]*HabitWithStreaks, error)
	GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)
	UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, req *UpdateHabitRequest) (*entity.Habit, error)
	DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error
	// Habits due today per their recurrence rules, with streaks and today's outcome
	TodayHabits(ctx context.Context, uid uuid.UUID, today civil.Date) ([]*TodayHabit, error)
}

type HabitLogsServiceI interface {
	// Records the outcome for one day; a repeated call for the same day overwrites
	LogCompletion(ctx context.Context, habitID, userID uuid.UUID, date civil.Date, completed bool) (*entity.HabitLog, error)
	// Logs for a habit; zero from/to bounds mean the full history
	GetHabitLogs(ctx context.Context, habitID, userID uuid.UUID, from, to civil.Date) ([]entity.HabitLog, error)
	GetHabitStreak(ctx context.Context, habitID, userID uuid.UUID, referenceDate civil.Date) (*entity.StreakResult, error)
}

type DashboardServiceI interface {
	// period is week, month or year; anything else falls back to week
	GetStats(ctx context.Context, uid uuid.UUID, period string, today civil.Date) (*entity.DashboardStats, error)
	// month 0 projects the whole year; habitID uuid.Nil means all habits
	GetHeatmap(ctx context.Context, uid uuid.UUID, year int, month time.Month, habitID uuid.UUID) ([]entity.HeatmapPoint, error)
}

type SettingsServiceI interface {
	// Returns the user's settings, creating defaults on first access
	GetSettings(ctx context.Context, uid uuid.UUID) (*entity.UserSettings, error)
	UpdateSettings(ctx context.Context, uid uuid.UUID, req *UpdateSettingsRequest) (*entity.UserSettings, error)
}
