package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/pkg/cleanup"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

type SettingsRepository struct {
	conn PgConnection
}

func NewSettingsRepo(cfg DBConfig) *SettingsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for settingsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for settingsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &SettingsRepository{
		conn: pool,
	}
}

func NewSettingsRepoWithConn(conn PgConnection) *SettingsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for settingsRepo: " + err.Error())
	}
	return &SettingsRepository{
		conn: conn,
	}
}

func (settingsRepo *SettingsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.UserSettings, error) {
	var settings entity.UserSettings
	row := settingsRepo.conn.QueryRow(ctx,
		`SELECT user_id, theme, COALESCE(reminder_time, '') FROM user_settings WHERE user_id = $1;`,
		uid,
	)
	if err := row.Scan(&settings.UserID, &settings.Theme, &settings.ReminderTime); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrSettingsNotFound
		}
		return nil, errors.New("getting user settings error: " + err.Error())
	}
	return &settings, nil
}

func (settingsRepo *SettingsRepository) Upsert(ctx context.Context, settings *entity.UserSettings) (*entity.UserSettings, error) {
	var saved entity.UserSettings
	row := settingsRepo.conn.QueryRow(ctx,
		`INSERT INTO user_settings (user_id, theme, reminder_time) VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (user_id) DO UPDATE SET theme = EXCLUDED.theme, reminder_time = EXCLUDED.reminder_time
		RETURNING user_id, theme, COALESCE(reminder_time, '');`,
		settings.UserID,
		settings.Theme,
		settings.ReminderTime,
	)
	if err := row.Scan(&saved.UserID, &saved.Theme, &saved.ReminderTime); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrUserNotFound
			}
		}
		return nil, errors.New("upserting user settings error: " + err.Error())
	}
	return &saved, nil
}
