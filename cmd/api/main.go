// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/veritas-backend/internal/admin"
	"github.com/carterperez-dev/veritas-backend/internal/auth"
	"github.com/carterperez-dev/veritas-backend/internal/circle"
	"github.com/carterperez-dev/veritas-backend/internal/config"
	"github.com/carterperez-dev/veritas-backend/internal/core"
	"github.com/carterperez-dev/veritas-backend/internal/criteria"
	"github.com/carterperez-dev/veritas-backend/internal/health"
	"github.com/carterperez-dev/veritas-backend/internal/interaction"
	"github.com/carterperez-dev/veritas-backend/internal/messaging"
	"github.com/carterperez-dev/veritas-backend/internal/middleware"
	"github.com/carterperez-dev/veritas-backend/internal/notify"
	"github.com/carterperez-dev/veritas-backend/internal/poi"
	"github.com/carterperez-dev/veritas-backend/internal/server"
	"github.com/carterperez-dev/veritas-backend/internal/tag"
	"github.com/carterperez-dev/veritas-backend/internal/trust"
	"github.com/carterperez-dev/veritas-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, redis.Client)
	authHandler := auth.NewHandler(authSvc)

	poiRepo := poi.NewRepository(db.DB)
	poiSvc := poi.NewService(poiRepo)
	poiHandler := poi.NewHandler(poiSvc)

	criteriaRepo := criteria.NewRepository(db.DB)
	criteriaSvc := criteria.NewService(criteriaRepo)
	criteriaHandler := criteria.NewHandler(criteriaSvc)

	trustCache := trust.NewCache(redis.Client, cfg.Trust.CacheTTL)
	trustRepo := trust.NewRepository(db.DB)
	trustSvc := trust.NewService(trustRepo, poiSvc, trustCache)
	trustHandler := trust.NewHandler(trustSvc)

	interactionRepo := interaction.NewRepository(db.DB)
	interactionSvc := interaction.NewService(
		interactionRepo,
		userSvc,
		poiSvc,
		criteriaSvc,
		trustCache,
	)
	interactionHandler := interaction.NewHandler(interactionSvc)

	tagRepo := tag.NewRepository(db.DB)
	tagSvc := tag.NewService(tagRepo, poiSvc)
	tagHandler := tag.NewHandler(tagSvc)

	messagingRepo := messaging.NewRepository(db.DB)
	messagingSvc := messaging.NewService(messagingRepo, userSvc)
	messagingHandler := messaging.NewHandler(messagingSvc)

	dispatcher := notify.NewDispatcher(logger)

	circleRepo := circle.NewRepository(db.DB)
	circleSvc := circle.NewService(circleRepo, dispatcher, cfg.Invite.Expiry)
	circleHandler := circle.NewHandler(circleSvc)

	healthHandler := health.NewHandler(
		health.Check{Name: "database", Checker: db},
		health.Check{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		AuthSvc:    authSvc,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)

		r.Post("/users", authHandler.Register)

		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)

		poiHandler.RegisterRoutes(r, authenticator)
		criteriaHandler.RegisterRoutes(r, authenticator)
		criteriaHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		interactionHandler.RegisterRoutes(r, authenticator)
		trustHandler.RegisterRoutes(r, authenticator)
		tagHandler.RegisterRoutes(r, authenticator)
		messagingHandler.RegisterRoutes(r, authenticator)
		circleHandler.RegisterRoutes(r, authenticator)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
