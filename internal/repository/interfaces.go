package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/repository_mocks.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type RefreshTokensRepositoryI interface {
	// Persists a freshly issued refresh token
	Create(ctx context.Context, token *entity.RefreshToken) error
	// Looks up a token row by its opaque value
	GetByToken(ctx context.Context, token string) (*entity.RefreshToken, error)
	// Marks a token revoked. Rotation revokes the old token first
	Revoke(ctx context.Context, token string) error
	// Drops tokens that expired before the cutoff
	DeleteExpired(ctx context.Context, before civil.Date) (int64, error)
}

type HabitsRepositoryI interface {
	// Creates new habit. Name, UserID, Recurrence and StartDate are necessary
	Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error)
	// Searches habit with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error)
	// Lists habits owned by user with uid. Requires pagination params provided
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error)
	// Lists all habits owned by user, newest first. Used by analytics paths
	ListByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	// Updates habit by ID (ID in habit is necessary)
	Update(ctx context.Context, habit *entity.Habit) error
	// Deletes habit with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type HabitLogsRepositoryI interface {
	// Writes the outcome for (habit, date). A second write for the same date
	// overwrites the first
	Upsert(ctx context.Context, log *entity.HabitLog) (*entity.HabitLog, error)
	// Full log history of one habit, ascending by date
	GetByHabitID(ctx context.Context, habitID uuid.UUID) ([]entity.HabitLog, error)
	// Logs of one habit within [from, to]
	GetByHabitAndDateRange(ctx context.Context, habitID uuid.UUID, from, to civil.Date) ([]entity.HabitLog, error)
	// Logs across all of a user's habits within [from, to]
	GetByUserAndDateRange(ctx context.Context, uid uuid.UUID, from, to civil.Date) ([]entity.HabitLog, error)
}

type SettingsRepositoryI interface {
	// Settings row for user, ErrSettingsNotFound when absent
	GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.UserSettings, error)
	// Creates or updates the user's settings row
	Upsert(ctx context.Context, settings *entity.UserSettings) (*entity.UserSettings, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
