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

	httptransport "github.com/spec-kit/social-service/internal/api/http"
	"github.com/spec-kit/social-service/internal/api/http/handlers"
	"github.com/spec-kit/social-service/internal/auth"
	"github.com/spec-kit/social-service/internal/config"
	"github.com/spec-kit/social-service/internal/events"
	"github.com/spec-kit/social-service/internal/observability"
	"github.com/spec-kit/social-service/internal/persistence"
	"github.com/spec-kit/social-service/internal/ratelimit"
	"github.com/spec-kit/social-service/internal/repository"
	"github.com/spec-kit/social-service/internal/service"
	"github.com/spec-kit/social-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	audit := service.NewAuditService(dispatcher, logger)
	audit.RegisterHandlers()

	sessionService := service.NewSessionService(cfg.Auth, sessionRepo, userRepo)
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		Sessions:    sessionService,
		Dispatcher:  dispatcher,
	})
	profileService := service.NewProfileService(profileRepo)
	authMiddleware := auth.NewAuthMiddleware(sessionService)

	worker.StartSessionSweeper(ctx, sessionService, cfg.Auth.SweepInterval(), logger)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	routeCfg := httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Profile:        handlers.NewProfileHandler(profileService),
		AuthMiddleware: authMiddleware,
	}
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.NewRedisLimiter(redis.Client)
		routeCfg.RegisterLimiter = httptransport.RateLimit(limiter, "register", cfg.RateLimit.RegisterPerHour, time.Hour)
		routeCfg.LoginLimiter = httptransport.RateLimit(limiter, "login", cfg.RateLimit.LoginPerHour, time.Hour)
	}
	httptransport.RegisterRoutes(app, routeCfg)

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
