package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/cleanup"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

type HabitLogsRepository struct {
	conn PgConnection
}

func NewHabitLogsRepo(cfg DBConfig) *HabitLogsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for habitLogsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitLogsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &HabitLogsRepository{
		conn: pool,
	}
}

func NewHabitLogsRepoWithConn(conn PgConnection) *HabitLogsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitLogsRepo: " + err.Error())
	}
	return &HabitLogsRepository{
		conn: conn,
	}
}

// Upsert relies on the unique (habit_id, log_date) index: a repeated write
// for the same day flips the stored outcome instead of adding a row.
func (logsRepo *HabitLogsRepository) Upsert(ctx context.Context, habitLog *entity.HabitLog) (*entity.HabitLog, error) {
	var (
		saved   entity.HabitLog
		logDate time.Time
	)
	row := logsRepo.conn.QueryRow(ctx,
		`INSERT INTO habit_logs (habit_id, user_id, log_date, completed) VALUES ($1, $2, $3, $4)
		ON CONFLICT (habit_id, log_date) DO UPDATE SET completed = EXCLUDED.completed
		RETURNING id, habit_id, user_id, log_date, completed, created_at;`,
		habitLog.HabitID,
		habitLog.UserID,
		habitLog.Date.In(time.UTC),
		habitLog.Completed,
	)
	err := row.Scan(&saved.ID, &saved.HabitID, &saved.UserID, &logDate, &saved.Completed, &saved.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrHabitNotFound
			}
		}
		return nil, errors.New("upserting habit log error: " + err.Error())
	}
	saved.Date = civil.DateOf(logDate)
	return &saved, nil
}

func (logsRepo *HabitLogsRepository) GetByHabitID(ctx context.Context, habitID uuid.UUID) ([]entity.HabitLog, error) {
	rows, err := logsRepo.conn.Query(ctx,
		`SELECT id, habit_id, user_id, log_date, completed, created_at FROM habit_logs
		WHERE habit_id = $1 ORDER BY log_date ASC;`,
		habitID,
	)
	if err != nil {
		return nil, errors.New("getting habit logs error: " + err.Error())
	}
	return scanLogs(rows)
}

func (logsRepo *HabitLogsRepository) GetByHabitAndDateRange(ctx context.Context, habitID uuid.UUID, from, to civil.Date) ([]entity.HabitLog, error) {
	rows, err := logsRepo.conn.Query(ctx,
		`SELECT id, habit_id, user_id, log_date, completed, created_at FROM habit_logs
		WHERE habit_id = $1 AND log_date >= $2 AND log_date <= $3 ORDER BY log_date ASC;`,
		habitID,
		from.In(time.UTC),
		to.In(time.UTC),
	)
	if err != nil {
		return nil, errors.New("getting habit logs for period error: " + err.Error())
	}
	return scanLogs(rows)
}

func (logsRepo *HabitLogsRepository) GetByUserAndDateRange(ctx context.Context, uid uuid.UUID, from, to civil.Date) ([]entity.HabitLog, error) {
	rows, err := logsRepo.conn.Query(ctx,
		`SELECT id, habit_id, user_id, log_date, completed, created_at FROM habit_logs
		WHERE user_id = $1 AND log_date >= $2 AND log_date <= $3 ORDER BY log_date ASC;`,
		uid,
		from.In(time.UTC),
		to.In(time.UTC),
	)
	if err != nil {
		return nil, errors.New("getting user logs for period error: " + err.Error())
	}
	return scanLogs(rows)
}

func scanLogs(rows pgx.Rows) ([]entity.HabitLog, error) {
	defer rows.Close()
	result := make([]entity.HabitLog, 0)
	for rows.Next() {
		var (
			habitLog entity.HabitLog
			logDate  time.Time
		)
		err := rows.Scan(&habitLog.ID, &habitLog.HabitID, &habitLog.UserID, &logDate, &habitLog.Completed, &habitLog.CreatedAt)
		if err != nil {
			return nil, errors.New("habit log row parsing error: " + err.Error())
		}
		habitLog.Date = civil.DateOf(logDate)
		result = append(result, habitLog)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected habit log rows error: " + err.Error())
	}
	return result, nil
}
