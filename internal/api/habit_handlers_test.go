package api_test

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReesavGupta/new-misogi/internal/api"
	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/internal/service"
	"github.com/ReesavGupta/new-misogi/internal/service/mocks"
	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/entity"
)

var userID = uuid.New()

func TestCreateHabit(t *testing.T) {
	ctrl := gomock.NewController(t)
	hService := mocks.NewMockHabitsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		HabitsService: hService,
	})
	habit := api.CreateHabitRequest{
		Name: "test_habit",
		Recurrence: entity.RecurrenceRule{
			Kind: entity.RecurrenceWeekdays,
		},
	}
	body, err := sonic.ConfigDefault.Marshal(habit)
	require.NoError(t, err)
	habitID := uuid.New()

	testCases := []struct {
		ExpectedCode int
		MockPrepFunc func()
		Body         io.Reader
	}{
		{
			ExpectedCode: http.StatusCreated,
			MockPrepFunc: func() {
				hService.EXPECT().CreateHabit(gomock.Any(), userID, &service.CreateHabitRequest{
					Name:       habit.Name,
					Recurrence: habit.Recurrence,
				}).Return(&entity.Habit{
					ID:         habitID,
					UserID:     userID,
					Name:       habit.Name,
					Recurrence: habit.Recurrence,
				}, nil)
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusConflict,
			MockPrepFunc: func() {
				hService.EXPECT().CreateHabit(gomock.Any(), userID, gomock.Any()).
					Return(nil, errorvalues.ErrUserHasHabit)
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusNotFound,
			MockPrepFunc: func() {
				hService.EXPECT().CreateHabit(gomock.Any(), userID, gomock.Any()).
					Return(nil, errorvalues.ErrUserNotFound)
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {
				hService.EXPECT().CreateHabit(gomock.Any(), userID, gomock.Any()).
					Return(nil, errors.New("validation error"))
			},
			Body: bytes.NewReader(body),
		},
		{
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         bytes.NewReader([]byte("corrupted")),
		},
	}
	for _, tc := range testCases {
		tc.MockPrepFunc()
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/habits", tc.Body)
		r = authedRequest(r, userID)
		serv.CreateHabit(rr, r)
		assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
	}
}

func TestGetHabits(t *testing.T) {
	ctrl := gomock.NewController(t)
	hService := mocks.NewMockHabitsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		HabitsService: hService,
	})
	habits := make([]*service.HabitWithStreaks, 0, 10)
	for i := range 10 {
		habits = append(habits, &service.HabitWithStreaks{
			Habit: entity.Habit{
				ID:     uuid.New(),
				UserID: userID,
				Name:   "test_habit_" + strconv.Itoa(i+1),
			},
			StreakResult: entity.StreakResult{
				CurrentStreak: i,
				LongestStreak: i,
			},
		})
	}
	testCases := []struct {
		ExpectedCode        int
		MockPrepFunc        func()
		Limit               int
		Page                int
		ExpectedHabitsCount int
	}{
		{
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				hService.EXPECT().GetUserHabits(gomock.Any(), userID, service.PaginationOpts{
					Limit:  10,
					Offset: 0,
				}, civil.Today()).Return(habits, nil)
			},
			Page:                1,
			Limit:               10,
			ExpectedHabitsCount: 10,
		},
		{
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				hService.EXPECT().GetUserHabits(gomock.Any(), userID, service.PaginationOpts{
					Limit:  4,
					Offset: 4,
				}, civil.Today()).Return(habits[2:6], nil)
			},
			Page:                2,
			Limit:               4,
			ExpectedHabitsCount: 4,
		},
		{
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				hService.EXPECT().GetUserHabits(gomock.Any(), userID, service.PaginationOpts{
					Limit:  10,
					Offset: 0,
				}, civil.Today()).Return(nil, errors.New("service error"))
			},
			Page:                1,
			Limit:               10,
			ExpectedHabitsCount: 0,
		},
	}
	for _, tc := range testCases {
		tc.MockPrepFunc()
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/habits", nil)
		q := r.URL.Query()
		q.Add("limit", strconv.Itoa(tc.Limit))
		q.Add("page", strconv.Itoa(tc.Page))
		r.URL.RawQuery = q.Encode()
		r = authedRequest(r, userID)
		serv.GetHabits(rr, r)
		assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		if rr.Result().StatusCode == http.StatusOK {
			var resp api.GetHabitsResponse
			err := sonic.ConfigDefault.NewDecoder(rr.Body).Decode(&resp)
			require.NoError(t, err)
			assert.Equal(t, tc.ExpectedHabitsCount, len(resp.Habits))
		}
	}
}

func TestGetTodayHabits(t *testing.T) {
	ctrl := gomock.NewController(t)
	hService := mocks.NewMockHabitsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		HabitsService: hService,
	})
	completed := true
	t.Run("success", func(t *testing.T) {
		hService.EXPECT().TodayHabits(gomock.Any(), userID, civil.Today()).
			Return([]*service.TodayHabit{
				{
					Habit: entity.Habit{
						ID:     uuid.New(),
						UserID: userID,
						Name:   "test_habit",
					},
					StreakResult:   entity.StreakResult{CurrentStreak: 2, LongestStreak: 5},
					TodayCompleted: &completed,
				},
			}, nil)
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/habits/today", nil)
		r = authedRequest(r, userID)
		serv.GetTodayHabits(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("service error", func(t *testing.T) {
		hService.EXPECT().TodayHabits(gomock.Any(), userID, civil.Today()).
			Return(nil, errors.New("service error"))
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/habits/today", nil)
		r = authedRequest(r, userID)
		serv.GetTodayHabits(rr, r)
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
}

func TestDeleteHabit(t *testing.T) {
	ctrl := gomock.NewController(t)
	hService := mocks.NewMockHabitsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		HabitsService: hService,
	})
	habitID := uuid.New()
	testCases := []struct {
		ExpectedCode int
		MockPrepFunc func()
	}{
		{
			ExpectedCode: http.StatusNoContent,
			MockPrepFunc: func() {
				hService.EXPECT().DeleteHabit(gomock.Any(), habitID, userID).Return(nil)
			},
		},
		{
			ExpectedCode: http.StatusNotFound,
			MockPrepFunc: func() {
				hService.EXPECT().DeleteHabit(gomock.Any(), habitID, userID).Return(errorvalues.ErrHabitNotFound)
			},
		},
		{
			ExpectedCode: http.StatusNotFound,
			MockPrepFunc: func() {
				hService.EXPECT().DeleteHabit(gomock.Any(), habitID, userID).Return(errorvalues.ErrWrongOwner)
			},
		},
		{
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				hService.EXPECT().DeleteHabit(gomock.Any(), habitID, userID).Return(errors.New("service error"))
			},
		},
	}
	for _, tc := range testCases {
		tc.MockPrepFunc()
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/v1/habits/"+habitID.String(), nil)
		r = authedRequest(r, userID)
		r.SetPathValue("id", habitID.String())
		serv.DeleteHabit(rr, r)
		assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
	}
}

func TestLogCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	lService := mocks.NewMockHabitLogsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		LogsService: lService,
	})
	habitID := uuid.New()
	logDate := civil.Today().AddDays(-1)
	completed := false
	t.Run("logged", func(t *testing.T) {
		body, err := sonic.ConfigDefault.Marshal(api.LogCompletionRequest{
			Date:      logDate,
			Completed: &completed,
		})
		require.NoError(t, err)
		lService.EXPECT().LogCompletion(gomock.Any(), habitID, userID, logDate, false).
			Return(&entity.HabitLog{
				ID:      1,
				HabitID: habitID,
				UserID:  userID,
				Date:    logDate,
			}, nil)
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/habits/"+habitID.String()+"/logs", bytes.NewReader(body))
		r = authedRequest(r, userID)
		r.SetPathValue("id", habitID.String())
		serv.LogCompletion(rr, r)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("empty body defaults to completed today", func(t *testing.T) {
		lService.EXPECT().LogCompletion(gomock.Any(), habitID, userID, civil.Today(), true).
			Return(&entity.HabitLog{
				ID:        2,
				HabitID:   habitID,
				UserID:    userID,
				Date:      civil.Today(),
				Completed: true,
			}, nil)
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/habits/"+habitID.String()+"/logs", bytes.NewReader([]byte("{}")))
		r = authedRequest(r, userID)
		r.SetPathValue("id", habitID.String())
		serv.LogCompletion(rr, r)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("future date", func(t *testing.T) {
		body, err := sonic.ConfigDefault.Marshal(api.LogCompletionRequest{
			Date: civil.Today().AddDays(1),
		})
		require.NoError(t, err)
		lService.EXPECT().LogCompletion(gomock.Any(), habitID, userID, civil.Today().AddDays(1), true).
			Return(nil, errorvalues.ErrLogDateNotAllowed)
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/habits/"+habitID.String()+"/logs", bytes.NewReader(body))
		r = authedRequest(r, userID)
		r.SetPathValue("id", habitID.String())
		serv.LogCompletion(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("invalid habit id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/habits/garbage/logs", bytes.NewReader([]byte("{}")))
		r = authedRequest(r, userID)
		r.SetPathValue("id", "garbage")
		serv.LogCompletion(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestGetHabitLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	lService := mocks.NewMockHabitLogsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		LogsService: lService,
	})
	habitID := uuid.New()
	from := civil.Date{Year: 2025, Month: 3, Day: 1}
	to := civil.Date{Year: 2025, Month: 3, Day: 7}
	t.Run("bounded range", func(t *testing.T) {
		lService.EXPECT().GetHabitLogs(gomock.Any(), habitID, userID, from, to).
			Return([]entity.HabitLog{{ID: 1, HabitID: habitID, Date: from, Completed: true}}, nil)
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/habits/"+habitID.String()+"/logs?from=2025-03-01&to=2025-03-07", nil)
		r = authedRequest(r, userID)
		r.SetPathValue("id", habitID.String())
		serv.GetHabitLogs(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("no bounds", func(t *testing.T) {
		lService.EXPECT().GetHabitLogs(gomock.Any(), habitID, userID, civil.Date{}, civil.Date{}).
			Return([]entity.HabitLog{}, nil)
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/habits/"+habitID.String()+"/logs", nil)
		r = authedRequest(r, userID)
		r.SetPathValue("id", habitID.String())
		serv.GetHabitLogs(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("invalid date", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/habits/"+habitID.String()+"/logs?from=03-01-2025", nil)
		r = authedRequest(r, userID)
		r.SetPathValue("id", habitID.String())
		serv.GetHabitLogs(rr, r)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("foreign habit", func(t *testing.T) {
		lService.EXPECT().GetHabitLogs(gomock.Any(), habitID, userID, civil.Date{}, civil.Date{}).
			Return(nil, errorvalues.ErrWrongOwner)
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/habits/"+habitID.String()+"/logs", nil)
		r = authedRequest(r, userID)
		r.SetPathValue("id", habitID.String())
		serv.GetHabitLogs(rr, r)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}

func TestGetHabitStreak(t *testing.T) {
	ctrl := gomock.NewController(t)
	lService := mocks.NewMockHabitLogsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		LogsService: lService,
	})
	habitID := uuid.New()
	t.Run("default reference date", func(t *testing.T) {
		lService.EXPECT().GetHabitStreak(gomock.Any(), habitID, userID, civil.Today()).
			Return(&entity.StreakResult{CurrentStreak: 3, LongestStreak: 7}, nil)
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/habits/"+habitID.String()+"/streak", nil)
		r = authedRequest(r, userID)
		r.SetPathValue("id", habitID.String())
		serv.GetHabitStreak(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var result entity.StreakResult
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Body).Decode(&result))
		assert.Equal(t, 3, result.CurrentStreak)
		assert.Equal(t, 7, result.LongestStreak)
	})
	t.Run("explicit reference date", func(t *testing.T) {
		refDate := civil.Date{Year: 2025, Month: 3, Day: 10}
		lService.EXPECT().GetHabitStreak(gomock.Any(), habitID, userID, refDate).
			Return(&entity.StreakResult{CurrentStreak: 1, LongestStreak: 4}, nil)
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/habits/"+habitID.String()+"/streak?date=2025-03-10", nil)
		r = authedRequest(r, userID)
		r.SetPathValue("id", habitID.String())
		serv.GetHabitStreak(rr, r)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("habit not found", func(t *testing.T) {
		lService.EXPECT().GetHabitStreak(gomock.Any(), habitID, userID, civil.Today()).
			Return(nil, errorvalues.ErrHabitNotFound)
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/habits/"+habitID.String()+"/streak", nil)
		r = authedRequest(r, userID)
		r.SetPathValue("id", habitID.String())
		serv.GetHabitStreak(rr, r)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}
