package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/ReesavGupta/new-misogi/internal/analytics"
	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/internal/repository"
	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

type HabitLogsService struct {
	habitsRepo repository.HabitsRepositoryI
	logsRepo   repository.HabitLogsRepositoryI
}

func NewHabitLogsService(habitsRepo repository.HabitsRepositoryI, logsRepo repository.HabitLogsRepositoryI) *HabitLogsService {
	if habitsRepo == nil || logsRepo == nil {
		log.Fatal("on habit logs service provided nil repos")
	}
	return &HabitLogsService{
		habitsRepo: habitsRepo,
		logsRepo:   logsRepo,
	}
}

func (serv *HabitLogsService) ownedHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return habit, nil
}

// LogCompletion records the outcome for one calendar day. Writing the same
// day twice overwrites, it never duplicates.
func (serv *HabitLogsService) LogCompletion(ctx context.Context, habitID, userID uuid.UUID, date civil.Date, completed bool) (*entity.HabitLog, error) {
	_, err := serv.ownedHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	if date.After(civil.Today()) {
		return nil, errorvalues.ErrLogDateNotAllowed
	}
	saved, err := serv.logsRepo.Upsert(ctx, &entity.HabitLog{
		HabitID:   habitID,
		UserID:    userID,
		Date:      date,
		Completed: completed,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habit logs repository error: " + err.Error())
	}
	return saved, nil
}

func (serv *HabitLogsService) GetHabitLogs(ctx context.Context, habitID, userID uuid.UUID, from, to civil.Date) ([]entity.HabitLog, error) {
	_, err := serv.ownedHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	var logs []entity.HabitLog
	if from.IsZero() && to.IsZero() {
		logs, err = serv.logsRepo.GetByHabitID(ctx, habitID)
	} else {
		if to.IsZero() {
			to = civil.Today()
		}
		logs, err = serv.logsRepo.GetByHabitAndDateRange(ctx, habitID, from, to)
	}
	if err != nil {
		return nil, errors.New("habit logs repository error: " + err.Error())
	}
	return logs, nil
}

func (serv *HabitLogsService) GetHabitStreak(ctx context.Context, habitID, userID uuid.UUID, referenceDate civil.Date) (*entity.StreakResult, error) {
	_, err := serv.ownedHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	logs, err := serv.logsRepo.GetByHabitID(ctx, habitID)
	if err != nil {
		return nil, errors.New("habit logs repository error: " + err.Error())
	}
	streaks := analytics.ComputeStreaks(logs, referenceDate)
	return &streaks, nil
}
