// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"os"

	"github.com/futcuervo/club-trivia/internal/bootstrap"
	"github.com/futcuervo/club-trivia/internal/config"
	"github.com/futcuervo/club-trivia/internal/server"
	"github.com/futcuervo/club-trivia/pkg/catalog"
	"github.com/futcuervo/club-trivia/pkg/common"
	"github.com/futcuervo/club-trivia/pkg/game"
	"github.com/futcuervo/club-trivia/pkg/handler"
	"github.com/futcuervo/club-trivia/pkg/service"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	httpServer        *server.HTTPServer
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	db                *catalog.DB
	sessions          *game.Manager
	stopSweeper       context.CancelFunc
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Telemetry (so startup calls are traced)
// 2. Redis (attempts and tokens)
// 3. Catalog database (reference data and users)
// 4. Services (attempts, auth)
// 5. Game definitions and the session manager
// 6. Servers (HTTP, gRPC health, metrics)
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, common.TracerConfig{
			ServiceName:    cfg.ServiceName,
			Environment:    cfg.Environment,
			InstanceID:     int64(os.Getpid()),
			ZipkinEndpoint: cfg.ZipkinEndpoint,
			SampleRatio:    cfg.OtelSampleRatio,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	// ============================================================
	// Step 2: Initialize Redis
	// ============================================================
	redisClient, err := bootstrap.InitRedis(ctx, cfg)
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	app.redisClient = redisClient

	// ============================================================
	// Step 3: Initialize the catalog database
	// ============================================================
	db, err := bootstrap.InitCatalog(ctx, cfg)
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to init catalog: %w", err)
	}
	app.db = db
	repo := catalog.NewRepository(db)

	// ============================================================
	// Step 4: Initialize services
	// ============================================================
	attemptStore := service.NewRedisAttemptStore(redisClient, service.RedisAttemptStoreConfig{TTL: cfg.AttemptTTL})
	attempts := service.NewAttemptService(attemptStore, cfg.Location)

	auth, err := bootstrap.InitAuth(ctx, cfg, repo, redisClient)
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to init auth: %w", err)
	}

	// ============================================================
	// Step 5: Load games and create the session manager
	// ============================================================
	games, sessions, err := bootstrap.InitGames(cfg, attempts.SaveSessionResult)
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to init games: %w", err)
	}
	app.sessions = sessions

	// ============================================================
	// Step 6: Setup servers
	// ============================================================
	h := handler.New(handler.Config{
		Auth:           auth,
		Attempts:       attempts,
		Catalog:        repo,
		Games:          games,
		Sessions:       sessions,
		Location:       cfg.Location,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, h.Routes(), cfg.ServiceName)
	if err := app.httpServer.Setup(); err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to setup HTTP server: %w", err)
	}

	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, service.NewHealthChecker(redisClient, db), 0)
	if err := app.grpcServer.Setup(); err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// cleanup releases whatever New managed to open before failing.
func (a *App) cleanup(ctx context.Context) {
	if a.db != nil {
		a.db.Close()
	}
	if a.redisClient != nil {
		a.redisClient.Close()
	}
	if a.shutdownTelemetry != nil {
		_ = a.shutdownTelemetry(ctx)
	}
}
