package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/cleanup"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

type RefreshTokensRepository struct {
	conn PgConnection
}

func NewRefreshTokensRepo(cfg DBConfig) *RefreshTokensRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for refreshTokensRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for refreshTokensRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &RefreshTokensRepository{
		conn: pool,
	}
}

func NewRefreshTokensRepoWithConn(conn PgConnection) *RefreshTokensRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for refreshTokensRepo: " + err.Error())
	}
	return &RefreshTokensRepository{
		conn: conn,
	}
}

func (tokensRepo *RefreshTokensRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	_, err := tokensRepo.conn.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3);`,
		token.UserID,
		token.Token,
		token.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("creating refresh token error: " + err.Error())
	}
	return nil
}

func (tokensRepo *RefreshTokensRepository) GetByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	var stored entity.RefreshToken
	row := tokensRepo.conn.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at, revoked, created_at FROM refresh_tokens WHERE token = $1;`,
		token,
	)
	err := row.Scan(&stored.ID, &stored.UserID, &stored.Token, &stored.ExpiresAt, &stored.Revoked, &stored.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTokenNotFound
		}
		return nil, errors.New("getting refresh token error: " + err.Error())
	}
	return &stored, nil
}

func (tokensRepo *RefreshTokensRepository) Revoke(ctx context.Context, token string) error {
	ct, err := tokensRepo.conn.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1;`,
		token,
	)
	if err != nil {
		return errors.New("revoking refresh token error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrTokenNotFound
	}
	return nil
}

func (tokensRepo *RefreshTokensRepository) DeleteExpired(ctx context.Context, before civil.Date) (int64, error) {
	ct, err := tokensRepo.conn.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < $1;`,
		before.In(time.UTC),
	)
	if err != nil {
		return 0, errors.New("deleting expired refresh tokens error: " + err.Error())
	}
	return ct.RowsAffected(), nil
}
