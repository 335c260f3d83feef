// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Config holds all application configuration loaded from environment variables.
//
// New settings go here as a tagged field; add a check to Validate when the
// zero value or a range of values makes no sense.
type Config struct {
	// Server settings
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	LivePort    int    `env:"LIVE_PORT" envDefault:"8000"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"TennisScoringService"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis settings
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// Match settings
	MatchTTLHours    int    `env:"MATCH_TTL_HOURS" envDefault:"720"`
	FormatsPath      string `env:"FORMATS_PATH"`
	UpdateMaxRetries int    `env:"UPDATE_MAX_RETRIES" envDefault:"10"`

	// OpenTelemetry settings
	OtelEnabled    bool   `env:"OTEL_ENABLED" envDefault:"true"`
	ZipkinEndpoint string `env:"ZIPKIN_ENDPOINT"`
}

// MatchTTL is how long an untouched match is kept.
func (c *Config) MatchTTL() time.Duration {
	return time.Duration(c.MatchTTLHours) * time.Hour
}

// RedisRetryDelay is the initial delay between Redis connection attempts.
func (c *Config) RedisRetryDelay() time.Duration {
	return time.Duration(c.RedisRetryDelayMs) * time.Millisecond
}
