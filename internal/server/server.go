// Package server assembles the Fiber application from repositories and services.
package server

import (
	"fmt"

	"athletrack/internal/access"
	"athletrack/internal/config"
	"athletrack/internal/handlers"
	"athletrack/internal/metrics"
	"athletrack/internal/middleware"
	"athletrack/internal/repositories"
	"athletrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories bundles the stores the services run on.
type Repositories struct {
	Users    repositories.UserRepository
	Workouts repositories.WorkoutRepository
	Goals    repositories.GoalRepository
}

// NewGORMRepositories returns repositories backed by db.
func NewGORMRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    repositories.NewGORMUserRepository(db),
		Workouts: repositories.NewGORMWorkoutRepository(db),
		Goals:    repositories.NewGORMGoalRepository(db),
	}
}

// NewMemoryRepositories returns process-local repositories that lose their data on exit.
func NewMemoryRepositories() Repositories {
	users := repositories.NewMemoryUserRepository()
	return Repositories{
		Users:    users,
		Workouts: repositories.NewMemoryWorkoutRepository(users),
		Goals:    repositories.NewMemoryGoalRepository(),
	}
}

// Options configures New. Events and Metrics are optional.
type Options struct {
	Config  *config.Config
	Log     *zap.Logger
	Repos   Repositories
	Events  services.EventPublisher
	Metrics *metrics.Collector
	// AccessLog turns on the per-request log line.
	AccessLog bool
}

// New builds the application with every route registered.
func New(opts Options) (*fiber.App, error) {
	if opts.Config == nil || opts.Log == nil {
		return nil, fmt.Errorf("server: config and logger are required")
	}

	var recorder access.Recorder
	if opts.Metrics != nil {
		recorder = opts.Metrics
	}

	authService := services.NewAuthService(opts.Repos.Users, opts.Config.JWTSecret, opts.Config.TokenTTL, opts.Events, opts.Log)
	userService := services.NewUserService(opts.Repos.Users, opts.Events, recorder, opts.Log)
	workoutService := services.NewWorkoutService(opts.Repos.Workouts, opts.Events, recorder, opts.Log)
	goalService := services.NewGoalService(opts.Repos.Goals, opts.Events, recorder, opts.Log)

	app := fiber.New(fiber.Config{
		AppName:      "athletrack",
		ErrorHandler: handlers.ErrorHandler(opts.Log, opts.Config.IsProduction()),
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
		app.Get("/metrics", opts.Metrics.Handler())
	}

	app.Get("/health", handlers.HandleHealth)

	auth := middleware.AuthRequired(authService)
	api := app.Group("/api")
	handlers.NewUserHandler(authService, userService).RegisterRoutes(api, auth)
	handlers.NewWorkoutHandler(workoutService).RegisterRoutes(api, auth)
	handlers.NewGoalHandler(goalService).RegisterRoutes(api, auth)

	app.Use(handlers.NotFound)
	return app, nil
}
