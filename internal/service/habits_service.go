package service

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ReesavGupta/new-misogi/internal/analytics"
	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/internal/repository"
	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

type HabitsService struct {
	habitsRepo repository.HabitsRepositoryI
	logsRepo   repository.HabitLogsRepositoryI
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI, logsRepo repository.HabitLogsRepositoryI) *HabitsService {
	if habitsRepo == nil || logsRepo == nil {
		log.Fatal("on habits service provided nil repos")
	}
	return &HabitsService{
		habitsRepo: habitsRepo,
		logsRepo:   logsRepo,
	}
}

// validateRecurrence rejects rules the evaluator would flag as malformed, so
// they cannot enter storage in the first place.
func validateRecurrence(rule entity.RecurrenceRule) error {
	switch rule.Kind {
	case entity.RecurrenceEveryday, entity.RecurrenceWeekdays:
		return nil
	case entity.RecurrenceCustom:
		if len(rule.Days) == 0 {
			return errors.New("custom recurrence requires at least one day")
		}
		for _, d := range rule.Days {
			if d < 0 || d > 6 {
				return errors.New("custom recurrence days must be numbers 0-6")
			}
		}
		return nil
	}
	return errors.New("unknown recurrence kind: " + string(rule.Kind))
}

func (hs *HabitsService) CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error) {
	if err := validate.Struct(*req); err != nil {
		return nil, validationError(err)
	}
	rule := req.Recurrence
	if rule.Kind == "" {
		rule.Kind = entity.RecurrenceEveryday
	}
	if err := validateRecurrence(rule); err != nil {
		return nil, err
	}
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = civil.Today()
	}
	h := entity.Habit{
		UserID:     uid,
		Name:       req.Name,
		Recurrence: rule,
		StartDate:  startDate,
	}
	id, err := hs.habitsRepo.Create(ctx, &h)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			return nil, err
		case errors.Is(err, errorvalues.ErrUserHasHabit):
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	habit, err := hs.habitsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) GetUserHabits(ctx context.Context, uid uuid.UUID, pagination PaginationOpts, today civil.Date) ([]*HabitWithStreaks, error) {
	habits, err := hs.habitsRepo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	result := make([]*HabitWithStreaks, 0, len(habits))
	for _, habit := range habits {
		logs, err := hs.logsRepo.GetByHabitID(ctx, habit.ID)
		if err != nil {
			return nil, errors.New("habit logs repository error: " + err.Error())
		}
		result = append(result, &HabitWithStreaks{
			Habit:        *habit,
			StreakResult: analytics.ComputeStreaks(logs, today),
		})
	}
	return result, nil
}

func (hs *HabitsService) GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.habitsRepo.GetByID(ctx, habitID)
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

func (hs *HabitsService) UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, req *UpdateHabitRequest) (*entity.Habit, error) {
	if err := validate.Struct(*req); err != nil {
		return nil, validationError(err)
	}
	habit, err := hs.GetHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		habit.Name = *req.Name
	}
	if req.Recurrence != nil {
		if err := validateRecurrence(*req.Recurrence); err != nil {
			return nil, err
		}
		habit.Recurrence = *req.Recurrence
	}
	if req.StartDate != nil {
		habit.StartDate = *req.StartDate
	}
	err = hs.habitsRepo.Update(ctx, habit)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	updated, err := hs.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return updated, nil
}

func (hs *HabitsService) DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error {
	_, err := hs.GetHabit(ctx, habitID, userID)
	if err != nil {
		return err
	}
	err = hs.habitsRepo.Delete(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return err
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}

func (hs *HabitsService) TodayHabits(ctx context.Context, uid uuid.UUID, today civil.Date) ([]*TodayHabit, error) {
	habits, err := hs.habitsRepo.ListByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	result := make([]*TodayHabit, 0, len(habits))
	for _, habit := range habits {
		due, err := analytics.IsDue(habit, today)
		if err != nil {
			// Misconfigured habit: warn and leave it off the list.
			slog.Warn("skipping habit with malformed recurrence",
				slog.String("habit_id", habit.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		if !due {
			continue
		}
		logs, err := hs.logsRepo.GetByHabitID(ctx, habit.ID)
		if err != nil {
			return nil, errors.New("habit logs repository error: " + err.Error())
		}
		var todayCompleted *bool
		for i := range logs {
			if logs[i].Date == today {
				todayCompleted = &logs[i].Completed
				break
			}
		}
		result = append(result, &TodayHabit{
			Habit:          *habit,
			StreakResult:   analytics.ComputeStreaks(logs, today),
			TodayCompleted: todayCompleted,
		})
	}
	return result, nil
}
