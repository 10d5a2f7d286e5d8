package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/internal/repository"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

const defaultTheme = "light"

type SettingsService struct {
	repo repository.SettingsRepositoryI
}

func NewSettingsService(repo repository.SettingsRepositoryI) *SettingsService {
	if repo == nil {
		log.Fatal("on settings service provided nil repo")
	}
	return &SettingsService{
		repo: repo,
	}
}

// GetSettings returns stored preferences, creating the default row for users
// who never saved any.
func (serv *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := serv.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSettingsNotFound) {
			created, upsertErr := serv.repo.Upsert(ctx, &entity.UserSettings{
				UserID: userID,
				Theme:  defaultTheme,
			})
			if upsertErr != nil {
				return nil, errors.New("settings repository error: " + upsertErr.Error())
			}
			return created, nil
		}
		return nil, errors.New("settings repository error: " + err.Error())
	}
	return settings, nil
}

func (serv *SettingsService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *UpdateSettingsRequest) (*entity.UserSettings, error) {
	if err := validate.Struct(*req); err != nil {
		return nil, validationError(err)
	}
	settings, err := serv.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.ReminderTime != nil {
		settings.ReminderTime = *req.ReminderTime
	}
	saved, err := serv.repo.Upsert(ctx, settings)
	if err != nil {
		return nil, errors.New("settings repository error: " + err.Error())
	}
	return saved, nil
}
