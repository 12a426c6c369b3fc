package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/user-admin-service/internal/api/http"
	"github.com/spec-kit/user-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/config"
	"github.com/spec-kit/user-admin-service/internal/events"
	"github.com/spec-kit/user-admin-service/internal/observability"
	"github.com/spec-kit/user-admin-service/internal/persistence"
	"github.com/spec-kit/user-admin-service/internal/repository"
	"github.com/spec-kit/user-admin-service/internal/service"
	"github.com/spec-kit/user-admin-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	txManager := persistence.NewTxManager(pool)

	dispatcher := events.NewInMemoryDispatcher()
	publisher := events.NewRedisPublisher(redis.Client, cfg.Events.RedisChannel)
	worker.StartAuditWorker(service.NewAuditService(dispatcher, publisher, logger))

	technicianService := service.NewTechnicianService(service.TechnicianDependencies{
		UserRepo:   userRepo,
		RoleRepo:   roleRepo,
		TicketRepo: ticketRepo,
	})
	userService := service.NewUserService(*cfg, service.UserDependencies{
		UserRepo:   userRepo,
		RoleRepo:   roleRepo,
		TicketRepo: ticketRepo,
		Tx:         txManager,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens, userRepo)

	logger.Warn("password reset responses include the new plaintext password; serve this API over TLS to administrators only",
		zap.String("endpoint", "POST /users/:id/reset-password"))

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Users:          handlers.NewUsersHandler(userService),
		Technicians:    handlers.NewTechniciansHandler(technicianService),
		Metrics:        metrics,
		AuthMiddleware: authMiddleware.Handle,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
