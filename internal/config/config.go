// Copyright (c) 2025 FutCuervo. All Rights Reserved.
// This is licensed software from FutCuervo, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// ============================================================
// DEVELOPER: Add new configuration fields here.
// ============================================================
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `envDefault:"value"` - set a default value
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
// ============================================================
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	HTTPPort       int      `env:"HTTP_PORT" envDefault:"8000"`
	GRPCPort       int      `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort    int      `env:"METRICS_PORT" envDefault:"8080"`
	Environment    string   `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName    string   `env:"SERVICE_NAME" envDefault:"club-trivia"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// ============================================================
	// Logging configuration
	// ============================================================
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"true"`

	// ============================================================
	// Redis configuration
	// ============================================================
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// ============================================================
	// Catalog database configuration
	// ============================================================
	// DatabaseURL selects the driver: postgres:// or postgresql:// use pgx,
	// anything else is a SQLite path.
	DatabaseURL string `env:"DATABASE_URL" envDefault:"club-trivia.db"`

	// ============================================================
	// Game configuration
	// ============================================================
	GamesConfigPath  string        `env:"GAMES_CONFIG_PATH" envDefault:"config/games.yaml"`
	GameTimezone     string        `env:"GAME_TIMEZONE" envDefault:"America/Argentina/Buenos_Aires"`
	SessionRetention time.Duration `env:"SESSION_RETENTION" envDefault:"10m"`
	SessionMaxIdle   time.Duration `env:"SESSION_MAX_IDLE" envDefault:"2h"`
	SessionSweep     time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
	AttemptTTL       time.Duration `env:"ATTEMPT_TTL" envDefault:"2160h"`

	// ============================================================
	// Auth configuration
	// ============================================================
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`
	AdminUsername   string        `env:"ADMIN_USERNAME"`
	AdminPassword   string        `env:"ADMIN_PASSWORD"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled     bool    `env:"OTEL_ENABLED" envDefault:"true"`
	ZipkinEndpoint  string  `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT"`
	OtelSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`

	// Location is GameTimezone resolved by Validate.
	Location *time.Location `env:"-"`
}
