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

type HabitsRepository struct {
	conn PgConnection
}

func NewHabitsRepo(cfg DBConfig) *HabitsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for habitsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &HabitsRepository{
		conn: pool,
	}
}

func NewHabitsRepoWithConn(conn PgConnection) *HabitsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	return &HabitsRepository{
		conn: conn,
	}
}

// Recurrence is stored decoded: kind in a text column, custom weekdays in a
// smallint[] column. Nothing downstream ever re-parses JSON text.
func customDaysOf(rule entity.RecurrenceRule) []int16 {
	if rule.Kind != entity.RecurrenceCustom {
		return nil
	}
	days := make([]int16, 0, len(rule.Days))
	for _, d := range rule.Days {
		days = append(days, int16(d))
	}
	return days
}

func ruleOf(kind string, days []int16) entity.RecurrenceRule {
	rule := entity.RecurrenceRule{Kind: entity.RecurrenceKind(kind)}
	if rule.Kind == entity.RecurrenceCustom {
		rule.Days = make([]int, 0, len(days))
		for _, d := range days {
			rule.Days = append(rule.Days, int(d))
		}
	}
	return rule
}

func (hr *HabitsRepository) Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error) {
	var id uuid.UUID
	row := hr.conn.QueryRow(ctx,
		`INSERT INTO habits (user_id, name, target_days, custom_days, start_date) VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		habit.UserID,
		habit.Name,
		string(habit.Recurrence.Kind),
		customDaysOf(habit.Recurrence),
		habit.StartDate.In(time.UTC),
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return uuid.UUID{}, errorvalues.ErrUserHasHabit
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrUserNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating habit db error: " + err.Error())
	}
	return id, nil
}

func (hr *HabitsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	var (
		habit      entity.Habit
		kind       string
		customDays []int16
		startDate  time.Time
	)
	habit.ID = id
	row := hr.conn.QueryRow(ctx,
		`SELECT user_id, name, target_days, custom_days, start_date, created_at, updated_at FROM habits WHERE id = $1;`, id)
	if err := row.Scan(&habit.UserID, &habit.Name, &kind, &customDays, &startDate, &habit.CreatedAt, &habit.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	habit.Recurrence = ruleOf(kind, customDays)
	habit.StartDate = civil.DateOf(startDate)
	return &habit, nil
}

func (hr *HabitsRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error) {
	rows, err := hr.conn.Query(ctx,
		`SELECT id, user_id, name, target_days, custom_days, start_date, created_at, updated_at
		FROM habits WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting habits by uid error: " + err.Error())
	}
	return scanHabits(rows)
}

func (hr *HabitsRepository) ListByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	rows, err := hr.conn.Query(ctx,
		`SELECT id, user_id, name, target_days, custom_days, start_date, created_at, updated_at
		FROM habits WHERE user_id = $1 ORDER BY created_at DESC;`, uid)
	if err != nil {
		return nil, errors.New("listing habits by uid error: " + err.Error())
	}
	return scanHabits(rows)
}

func scanHabits(rows pgx.Rows) ([]*entity.Habit, error) {
	defer rows.Close()
	habits := make([]*entity.Habit, 0)
	for rows.Next() {
		var (
			h          entity.Habit
			kind       string
			customDays []int16
			startDate  time.Time
		)
		err := rows.Scan(&h.ID, &h.UserID, &h.Name, &kind, &customDays, &startDate, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		h.Recurrence = ruleOf(kind, customDays)
		h.StartDate = civil.DateOf(startDate)
		habits = append(habits, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return habits, nil
}

func (hr *HabitsRepository) Update(ctx context.Context, habit *entity.Habit) error {
	ct, err := hr.conn.Exec(ctx,
		`UPDATE habits SET name = $1, target_days = $2, custom_days = $3, start_date = $4, updated_at = NOW() WHERE id = $5;`,
		habit.Name,
		string(habit.Recurrence.Kind),
		customDaysOf(habit.Recurrence),
		habit.StartDate.In(time.UTC),
		habit.ID,
	)
	if err != nil {
		return errors.New("error updating habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (hr *HabitsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := hr.conn.Exec(ctx, `DELETE FROM habits WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}
