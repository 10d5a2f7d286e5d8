package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ReesavGupta/new-misogi/internal/analytics"
	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/internal/repository"
	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

type DashboardService struct {
	habitsRepo repository.HabitsRepositoryI
	logsRepo   repository.HabitLogsRepositoryI
}

func NewDashboardService(habitsRepo repository.HabitsRepositoryI, logsRepo repository.HabitLogsRepositoryI) *DashboardService {
	if habitsRepo == nil || logsRepo == nil {
		log.Fatal("on dashboard service provided nil repos")
	}
	return &DashboardService{
		habitsRepo: habitsRepo,
		logsRepo:   logsRepo,
	}
}

func periodStart(period string, today civil.Date) civil.Date {
	switch period {
	case PeriodMonth:
		return today.AddDays(-29)
	case PeriodYear:
		return today.AddDays(-364)
	default:
		return today.AddDays(-6)
	}
}

func (serv *DashboardService) GetStats(ctx context.Context, userID uuid.UUID, period string, today civil.Date) (*entity.DashboardStats, error) {
	start := periodStart(period, today)
	habits, err := serv.habitsRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	logsByHabit := make(map[uuid.UUID][]entity.HabitLog, len(habits))
	for _, habit := range habits {
		logs, err := serv.logsRepo.GetByHabitID(ctx, habit.ID)
		if err != nil {
			return nil, errors.New("habit logs repository error: " + err.Error())
		}
		logsByHabit[habit.ID] = logs
	}
	return analytics.Aggregate(habits, logsByHabit, start, today), nil
}

// GetHeatmap builds calendar heatmap points for a year or a single month.
// A habit id that does not belong to the user yields an empty result rather
// than an error.
func (serv *DashboardService) GetHeatmap(ctx context.Context, userID uuid.UUID, year int, month time.Month, habitID uuid.UUID) ([]entity.HeatmapPoint, error) {
	if habitID != uuid.Nil {
		habit, err := serv.habitsRepo.GetByID(ctx, habitID)
		if err != nil {
			if errors.Is(err, errorvalues.ErrHabitNotFound) {
				return []entity.HeatmapPoint{}, nil
			}
			return nil, errors.New("habits repository error: " + err.Error())
		}
		if habit.UserID != userID {
			return []entity.HeatmapPoint{}, nil
		}
	}
	from := civil.Date{Year: year, Month: time.January, Day: 1}
	to := civil.Date{Year: year, Month: time.December, Day: 31}
	if month != 0 {
		from = civil.Date{Year: year, Month: month, Day: 1}
		to = from.AddDays(daysInMonth(year, month) - 1)
	}
	logs, err := serv.logsRepo.GetByUserAndDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, errors.New("habit logs repository error: " + err.Error())
	}
	habits, err := serv.habitsRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	names := make(map[uuid.UUID]string, len(habits))
	for _, habit := range habits {
		names[habit.ID] = habit.Name
	}
	return analytics.ProjectHeatmap(logs, names, year, month, habitID), nil
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
