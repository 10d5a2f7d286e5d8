package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/internal/repository"
	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

func TestUpsertLog(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	logsRepo := repository.NewHabitLogsRepoWithConn(mock)
	query := regexp.QuoteMeta(`INSERT INTO habit_logs (habit_id, user_id, log_date, completed) VALUES ($1, $2, $3, $4)
		ON CONFLICT (habit_id, log_date) DO UPDATE SET completed = EXCLUDED.completed
		RETURNING id, habit_id, user_id, log_date, completed, created_at;`)
	habitID := uuid.New()
	userID := uuid.New()
	logDate := civil.Date{Year: 2024, Month: time.March, Day: 5}
	logInstant := logDate.In(time.UTC)
	createdAt := time.Now()
	testCases := []struct {
		Desc         string
		Error        error
		Completed    bool
		MockPrepFunc func(completed bool)
	}{
		{
			Desc:      "successful insert",
			Error:     nil,
			Completed: true,
			MockPrepFunc: func(completed bool) {
				mock.ExpectQuery(query).
					WithArgs(habitID, userID, logInstant, completed).
					WillReturnRows(pgxmock.NewRows([]string{"id", "habit_id", "user_id", "log_date", "completed", "created_at"}).
						AddRow(1, habitID, userID, logInstant, completed, createdAt))
			},
		},
		{
			Desc:      "overwrite keeps same row",
			Error:     nil,
			Completed: false,
			MockPrepFunc: func(completed bool) {
				mock.ExpectQuery(query).
					WithArgs(habitID, userID, logInstant, completed).
					WillReturnRows(pgxmock.NewRows([]string{"id", "habit_id", "user_id", "log_date", "completed", "created_at"}).
						AddRow(1, habitID, userID, logInstant, completed, createdAt))
			},
		},
		{
			Desc:      "fk violation",
			Error:     errorvalues.ErrHabitNotFound,
			Completed: true,
			MockPrepFunc: func(completed bool) {
				mock.ExpectQuery(query).
					WithArgs(habitID, userID, logInstant, completed).
					WillReturnError(&pgconn.PgError{Code: "23503"})
			},
		},
		{
			Desc:      "db error",
			Error:     errors.New("upserting habit log error: db error"),
			Completed: true,
			MockPrepFunc: func(completed bool) {
				mock.ExpectQuery(query).
					WithArgs(habitID, userID, logInstant, completed).
					WillReturnError(errors.New("db error"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc(tc.Completed)
			saved, err := logsRepo.Upsert(ctx, &entity.HabitLog{
				HabitID:   habitID,
				UserID:    userID,
				Date:      logDate,
				Completed: tc.Completed,
			})
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, logDate, saved.Date)
			assert.Equal(t, tc.Completed, saved.Completed)
		})
	}
}

func TestGetLogsByHabitAndDateRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	logsRepo := repository.NewHabitLogsRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT id, habit_id, user_id, log_date, completed, created_at FROM habit_logs
		WHERE habit_id = $1 AND log_date >= $2 AND log_date <= $3 ORDER BY log_date ASC;`)
	habitID := uuid.New()
	userID := uuid.New()
	from := civil.Date{Year: 2024, Month: time.March, Day: 1}
	to := civil.Date{Year: 2024, Month: time.March, Day: 31}
	createdAt := time.Now()

	t.Run("successful", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(habitID, from.In(time.UTC), to.In(time.UTC)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "habit_id", "user_id", "log_date", "completed", "created_at"}).
				AddRow(1, habitID, userID, from.In(time.UTC), true, createdAt).
				AddRow(2, habitID, userID, from.AddDays(1).In(time.UTC), false, createdAt))
		logs, err := logsRepo.GetByHabitAndDateRange(context.Background(), habitID, from, to)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, from, logs[0].Date)
		assert.True(t, logs[0].Completed)
		assert.Equal(t, from.AddDays(1), logs[1].Date)
		assert.False(t, logs[1].Completed)
	})

	t.Run("empty result", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(habitID, from.In(time.UTC), to.In(time.UTC)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "habit_id", "user_id", "log_date", "completed", "created_at"}))
		logs, err := logsRepo.GetByHabitAndDateRange(context.Background(), habitID, from, to)
		require.NoError(t, err)
		assert.Empty(t, logs)
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(habitID, from.In(time.UTC), to.In(time.UTC)).
			WillReturnError(errors.New("db error"))
		_, err := logsRepo.GetByHabitAndDateRange(context.Background(), habitID, from, to)
		assert.EqualError(t, err, "getting habit logs for period error: db error")
	})
}

func TestGetLogsByUserAndDateRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	logsRepo := repository.NewHabitLogsRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT id, habit_id, user_id, log_date, completed, created_at FROM habit_logs
		WHERE user_id = $1 AND log_date >= $2 AND log_date <= $3 ORDER BY log_date ASC;`)
	userID := uuid.New()
	from := civil.Date{Year: 2024, Month: time.January, Day: 1}
	to := civil.Date{Year: 2024, Month: time.January, Day: 7}

	mock.ExpectQuery(query).
		WithArgs(userID, from.In(time.UTC), to.In(time.UTC)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "habit_id", "user_id", "log_date", "completed", "created_at"}).
			AddRow(7, uuid.New(), userID, from.In(time.UTC), true, time.Now()))
	logs, err := logsRepo.GetByUserAndDateRange(context.Background(), userID, from, to)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, userID, logs[0].UserID)
}
