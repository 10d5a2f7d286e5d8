package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/internal/repository"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

var refreshTokenTTL = 7 * 24 * time.Hour

// TokensService manages opaque refresh tokens. Access tokens are short-lived
// JWTs issued elsewhere; refresh tokens live in the database so they can be
// revoked and rotated.
type TokensService struct {
	repo repository.RefreshTokensRepositoryI
}

func NewTokensService(tokensRepo repository.RefreshTokensRepositoryI) *TokensService {
	if tokensRepo == nil {
		log.Fatal("provided nil tokensRepo")
	}
	return &TokensService{
		repo: tokensRepo,
	}
}

func newOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.New("generating refresh token error: " + err.Error())
	}
	return hex.EncodeToString(buf), nil
}

func (ts *TokensService) IssueRefreshToken(ctx context.Context, uid uuid.UUID) (string, error) {
	token, err := newOpaqueToken()
	if err != nil {
		return "", err
	}
	err = ts.repo.Create(ctx, &entity.RefreshToken{
		UserID:    uid,
		Token:     token,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return "", err
		}
		return "", errors.New("tokens repository error: " + err.Error())
	}
	return token, nil
}

// RotateRefreshToken revokes the presented token and issues a replacement for
// the same user. A revoked or expired token yields ErrTokenRevoked.
func (ts *TokensService) RotateRefreshToken(ctx context.Context, token string) (uuid.UUID, string, error) {
	stored, err := ts.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTokenNotFound) {
			return uuid.UUID{}, "", err
		}
		return uuid.UUID{}, "", errors.New("tokens repository error: " + err.Error())
	}
	if stored.Revoked || stored.ExpiresAt.Before(time.Now()) {
		return uuid.UUID{}, "", errorvalues.ErrTokenRevoked
	}
	if err = ts.repo.Revoke(ctx, token); err != nil {
		return uuid.UUID{}, "", errors.New("tokens repository error: " + err.Error())
	}
	replacement, err := ts.IssueRefreshToken(ctx, stored.UserID)
	if err != nil {
		return uuid.UUID{}, "", err
	}
	return stored.UserID, replacement, nil
}

func (ts *TokensService) RevokeRefreshToken(ctx context.Context, token string) error {
	err := ts.repo.Revoke(ctx, token)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTokenNotFound) {
			return err
		}
		return errors.New("tokens repository error: " + err.Error())
	}
	return nil
}
