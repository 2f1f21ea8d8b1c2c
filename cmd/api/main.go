package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/support-copilot/internal/api/http"
	"github.com/spec-kit/support-copilot/internal/api/http/handlers"
	"github.com/spec-kit/support-copilot/internal/auth"
	"github.com/spec-kit/support-copilot/internal/config"
	"github.com/spec-kit/support-copilot/internal/events"
	"github.com/spec-kit/support-copilot/internal/observability"
	"github.com/spec-kit/support-copilot/internal/persistence"
	"github.com/spec-kit/support-copilot/internal/repository"
	"github.com/spec-kit/support-copilot/internal/service"
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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	// one store for the process lifetime; every request shares it
	var store repository.IssueStore
	if pg.Enabled() {
		store = repository.NewIssueRepository(pg.PoolHandle())
	} else {
		store = repository.NewMemoryIssueStore()
	}
	store = repository.NewCachedIssueStore(store, redis.Client, cfg.Redis.CacheTTL(), logger)

	if cfg.App.SeedDemoData {
		if err := persistence.SeedDemoData(ctx, store, logger); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()

	triageService := service.NewTriageService(service.TriageDependencies{
		Store:   store,
		Logger:  logger,
		Metrics: metrics,
	})
	issueService := service.NewIssueService(service.IssueDependencies{
		Store:      store,
		Triage:     triageService,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authService := service.NewAuthService(cfg.Auth)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), cfg.Auth.Enabled)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Dispatch:       handlers.NewDispatchHandler(triageService, cfg.App.ResponseBudget(), metrics, logger),
		Issues:         handlers.NewIssuesHandler(issueService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
