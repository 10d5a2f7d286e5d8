package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/internal/repository/mocks"
	"github.com/ReesavGupta/new-misogi/internal/service"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

func TestIssueRefreshToken(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRefreshTokensRepositoryI(ctrl)
	serv := service.NewTokensService(repo)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tok *entity.RefreshToken) error {
				assert.Equal(t, userID, tok.UserID)
				assert.Len(t, tok.Token, 64)
				assert.True(t, tok.ExpiresAt.After(time.Now()))
				return nil
			})
		token, err := serv.IssueRefreshToken(ctx, userID)
		assert.NoError(t, err)
		assert.Len(t, token, 64)
	})
	t.Run("user not found", func(t *testing.T) {
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errorvalues.ErrUserNotFound)
		_, err := serv.IssueRefreshToken(ctx, userID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestRotateRefreshToken(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRefreshTokensRepositoryI(ctrl)
	serv := service.NewTokensService(repo)
	ctx := context.Background()
	userID := uuid.New()
	presented := "aaaa"

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().GetByToken(gomock.Any(), presented).Return(&entity.RefreshToken{
			UserID:    userID,
			Token:     presented,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		repo.EXPECT().Revoke(gomock.Any(), presented).Return(nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		uid, replacement, err := serv.RotateRefreshToken(ctx, presented)
		assert.NoError(t, err)
		assert.Equal(t, userID, uid)
		assert.NotEqual(t, presented, replacement)
		assert.Len(t, replacement, 64)
	})
	t.Run("revoked token", func(t *testing.T) {
		repo.EXPECT().GetByToken(gomock.Any(), presented).Return(&entity.RefreshToken{
			UserID:    userID,
			Token:     presented,
			ExpiresAt: time.Now().Add(time.Hour),
			Revoked:   true,
		}, nil)
		_, _, err := serv.RotateRefreshToken(ctx, presented)
		assert.ErrorIs(t, err, errorvalues.ErrTokenRevoked)
	})
	t.Run("expired token", func(t *testing.T) {
		repo.EXPECT().GetByToken(gomock.Any(), presented).Return(&entity.RefreshToken{
			UserID:    userID,
			Token:     presented,
			ExpiresAt: time.Now().Add(-time.Hour),
		}, nil)
		_, _, err := serv.RotateRefreshToken(ctx, presented)
		assert.ErrorIs(t, err, errorvalues.ErrTokenRevoked)
	})
	t.Run("unknown token", func(t *testing.T) {
		repo.EXPECT().GetByToken(gomock.Any(), presented).Return(nil, errorvalues.ErrTokenNotFound)
		_, _, err := serv.RotateRefreshToken(ctx, presented)
		assert.ErrorIs(t, err, errorvalues.ErrTokenNotFound)
	})
}

func TestRevokeRefreshToken(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRefreshTokensRepositoryI(ctrl)
	serv := service.NewTokensService(repo)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().Revoke(gomock.Any(), "aaaa").Return(nil)
		assert.NoError(t, serv.RevokeRefreshToken(ctx, "aaaa"))
	})
	t.Run("unknown token", func(t *testing.T) {
		repo.EXPECT().Revoke(gomock.Any(), "bbbb").Return(errorvalues.ErrTokenNotFound)
		assert.ErrorIs(t, serv.RevokeRefreshToken(ctx, "bbbb"), errorvalues.ErrTokenNotFound)
	})
}
