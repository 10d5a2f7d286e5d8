package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ReesavGupta/new-misogi/internal/service"
)

type Server struct {
	mx               *chi.Mux
	userService      service.UserServiceI
	tokensService    service.TokensServiceI
	habitService     service.HabitsServiceI
	logsService      service.HabitLogsServiceI
	dashboardService service.DashboardServiceI
	settingsService  service.SettingsServiceI
	jwtService       JWTServiceI
}

type ServicesList struct {
	UserService      service.UserServiceI
	TokensService    service.TokensServiceI
	HabitsService    service.HabitsServiceI
	LogsService      service.HabitLogsServiceI
	DashboardService service.DashboardServiceI
	SettingsService  service.SettingsServiceI
	JwtService       JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:               chi.NewMux(),
		userService:      servicesOptions.UserService,
		tokensService:    servicesOptions.TokensService,
		habitService:     servicesOptions.HabitsService,
		logsService:      servicesOptions.LogsService,
		dashboardService: servicesOptions.DashboardService,
		settingsService:  servicesOptions.SettingsService,
		jwtService:       servicesOptions.JwtService,
	}
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.Register)
			r.Post("/login", s.Login)
			r.Post("/refresh", s.Refresh)
			r.Post("/logout", s.Logout)
		})
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Delete("/users/me", s.DeleteAccount)
			r.Route("/habits", func(r chi.Router) {
				r.Post("/", s.CreateHabit)
				r.Get("/", s.GetHabits)
				r.Get("/today", s.GetTodayHabits)
				r.Get("/{id}", s.GetHabit)
				r.Put("/{id}", s.UpdateHabit)
				r.Delete("/{id}", s.DeleteHabit)
				r.Post("/{id}/logs", s.LogCompletion)
				r.Get("/{id}/logs", s.GetHabitLogs)
				r.Get("/{id}/streak", s.GetHabitStreak)
			})
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", s.GetDashboardStats)
				r.Get("/heatmap", s.GetHeatmap)
			})
			r.Route("/settings", func(r chi.Router) {
				r.Get("/", s.GetSettings)
				r.Put("/", s.UpdateSettings)
			})
		})
	})
}

func (s *Server) Run(addr string) error {
	s.routes()
	return http.ListenAndServe(addr, s.mx)
}
