package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	errorvalues "github.com/ReesavGupta/new-misogi/internal/error_values"
	"github.com/ReesavGupta/new-misogi/internal/service"
	"github.com/ReesavGupta/new-misogi/pkg/civil"
	"github.com/ReesavGupta/new-misogi/pkg/httputil"
)

type UpdateSettingsRequest struct {
	Theme        *string `json:"theme"`
	ReminderTime *string `json:"reminder_time"`
}

func (s *Server) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get stats error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	period := r.URL.Query().Get("period")
	switch period {
	case "", service.PeriodWeek, service.PeriodMonth, service.PeriodYear:
	default:
		logger.Error("get stats error: invalid period")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "period must be week, month or year", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	stats, err := s.dashboardService.GetStats(ctx, uid, period, civil.Today())
	if err != nil {
		logger.Error("get stats error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while building stats", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
	logger.Info("stats provided")
}

func (s *Server) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get heatmap error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	year := civil.Today().Year
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil || year < 1 {
			logger.Error("get heatmap error: invalid year")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid year", nil)
			return
		}
	}
	var month time.Month
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			logger.Error("get heatmap error: invalid month")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "month must be 1-12", nil)
			return
		}
		month = time.Month(m)
	}
	habitID := uuid.Nil
	if raw := r.URL.Query().Get("habit_id"); raw != "" {
		habitID, err = uuid.Parse(raw)
		if err != nil {
			logger.Error("get heatmap error: invalid habit id")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id", nil)
			return
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	points, err := s.dashboardService.GetHeatmap(ctx, uid, year, month, habitID)
	if err != nil {
		logger.Error("get heatmap error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while building heatmap", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"year":   year,
		"month":  int(month),
		"points": points,
	})
	logger.Info("heatmap provided")
}

func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get settings error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	settings, err := s.settingsService.GetSettings(ctx, uid)
	if err != nil {
		logger.Error("get settings error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting settings", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, settings)
	logger.Info("settings provided")
}

func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update settings error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req UpdateSettingsRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update settings error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	settings, err := s.settingsService.UpdateSettings(ctx, uid, &service.UpdateSettingsRequest{
		Theme:        req.Theme,
		ReminderTime: req.ReminderTime,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrSettingsNotFound) {
			logger.Error("update settings error: settings not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "settings not found", nil)
			return
		}
		logger.Error("update settings error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't update settings", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, settings)
	logger.Info("settings updated")
}
