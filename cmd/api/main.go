// @title Habit-tracker API
// @description API for habit-tracker backend with streak analytics
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/ReesavGupta/new-misogi/internal/api"
	"github.com/ReesavGupta/new-misogi/internal/repository"
	"github.com/ReesavGupta/new-misogi/internal/service"
	"github.com/ReesavGupta/new-misogi/pkg/cleanup"
	"github.com/ReesavGupta/new-misogi/pkg/config"
	jwtservice "github.com/ReesavGupta/new-misogi/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	habitsRepo := repository.NewHabitsRepo(&dbCfg)
	logsRepo := repository.NewHabitLogsRepo(&dbCfg)

	serv := api.New(&api.ServicesList{
		UserService:      service.NewUserService(repository.NewUsersRepo(&dbCfg)),
		TokensService:    service.NewTokensService(repository.NewRefreshTokensRepo(&dbCfg)),
		HabitsService:    service.NewHabitsService(habitsRepo, logsRepo),
		LogsService:      service.NewHabitLogsService(habitsRepo, logsRepo),
		DashboardService: service.NewDashboardService(habitsRepo, logsRepo),
		SettingsService:  service.NewSettingsService(repository.NewSettingsRepo(&dbCfg)),
		JwtService:       jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetStringDefault("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
