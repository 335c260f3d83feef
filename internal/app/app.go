// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gkanyanta/zambia-tennis-association-sub003/internal/config"
	"github.com/gkanyanta/zambia-tennis-association-sub003/internal/server"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/broadcast"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/format"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/rpc"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/service"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/state"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const healthCheckInterval = 10 * time.Second

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	liveServer        *server.LiveServer
	redisClient       *redis.Client
	healthChecker     *state.HealthChecker
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order: Redis, match formats,
// the store and broadcaster, the scorer, then the servers and telemetry.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	if err := app.initRedis(ctx); err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}

	formats, err := loadFormats(cfg.FormatsPath)
	if err != nil {
		return nil, err
	}

	store := state.NewRedisMatchStore(app.redisClient, state.RedisMatchStoreConfig{TTL: cfg.MatchTTL()})
	broadcaster := broadcast.NewRedisBroadcaster(app.redisClient)
	scorer := service.NewScorer(store, broadcaster, formats, service.ScorerConfig{
		MaxUpdateRetries: cfg.UpdateMaxRetries,
	})
	app.healthChecker = state.NewHealthChecker(app.redisClient)

	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, scorer)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	app.liveServer = server.NewLiveServer(cfg.LivePort, scorer, broadcaster)
	if err := app.liveServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup live feed server: %w", err)
	}

	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, 0, cfg.ZipkinEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	} else {
		logrus.Info("telemetry disabled")
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

func (a *App) initRedis(ctx context.Context) error {
	client, err := state.InitRedisClient(ctx, state.RedisConfig{
		Host:       a.cfg.RedisHost,
		Port:       a.cfg.RedisPort,
		Password:   a.cfg.RedisPassword,
		MaxRetries: a.cfg.RedisMaxRetries,
		RetryDelay: a.cfg.RedisRetryDelay(),
	})
	if err != nil {
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}

// loadFormats reads the formats file, or falls back to the built-in presets
// when no path is configured.
func loadFormats(path string) (*format.Config, error) {
	if path == "" {
		logrus.Info("FORMATS_PATH not set, using built-in match formats")
		return format.Builtin(), nil
	}

	formats, err := format.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load match formats from %s: %w", path, err)
	}
	logrus.Infof("loaded match formats %v from %s (default %s)", formats.Names(), path, formats.Default)
	return formats, nil
}

func (a *App) watchHealth(ctx context.Context) {
	go a.healthChecker.Watch(ctx, a.grpcServer.Health(), rpc.ServiceName, healthCheckInterval)
}
