package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/thenoobgamer12/margawellness/config"
	"github.com/thenoobgamer12/margawellness/db"
	"github.com/thenoobgamer12/margawellness/internal/clinic/audit"
	"github.com/thenoobgamer12/margawellness/internal/clinic/handler"
	repo "github.com/thenoobgamer12/margawellness/internal/clinic/repository/postgres"
	"github.com/thenoobgamer12/margawellness/internal/clinic/service"
	"github.com/thenoobgamer12/margawellness/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	userRepo := repo.NewUserRepository(pool)
	clientRepo := repo.NewClientRepository(pool)
	apptRepo := repo.NewAppointmentRepository(pool)
	auditRepo := repo.NewAuditRepository(pool)
	systemRepo := repo.NewSystemRepository(pool)

	recorder := audit.NewRecorder(auditRepo, log)
	recorder.Start(ctx)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenExpiryMin)
	userService := service.NewUserService(userRepo, tokens, recorder)
	clientService := service.NewClientService(clientRepo, recorder)
	scheduleService := service.NewScheduleService(apptRepo, cfg.Schedule, recorder)
	systemService := service.NewSystemService(userRepo, systemRepo, auditRepo, recorder)

	app := fiber.New(fiber.Config{
		ErrorHandler: handler.NewErrorHandler(log),
	})
	handler.RegisterRoutes(app, handler.Handlers{
		Auth:         handler.NewAuthHandler(userService),
		Clients:      handler.NewClientHandler(clientService),
		Appointments: handler.NewAppointmentHandler(scheduleService),
		Users:        handler.NewUserHandler(userService),
		System:       handler.NewSystemHandler(systemService),
	}, tokens)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}

	// Drain any queued audit events before the pool closes.
	recorder.Close()
}
