// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads a .env file when one exists, then parses environment variables
// into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate checks ranges the environment parser cannot express.
func (c *Config) Validate() error {
	ports := []struct {
		name  string
		value int
	}{
		{"GRPC_PORT", c.GRPCPort},
		{"METRICS_PORT", c.MetricsPort},
		{"LIVE_PORT", c.LivePort},
	}
	seen := make(map[int]string, len(ports))
	for _, p := range ports {
		if p.value < 1 || p.value > 65535 {
			return fmt.Errorf("invalid %s: %d (must be 1-65535)", p.name, p.value)
		}
		if other, ok := seen[p.value]; ok {
			return fmt.Errorf("%s and %s both use port %d", other, p.name, p.value)
		}
		seen[p.value] = p.name
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if c.RedisMaxRetries < 0 {
		return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d (must be non-negative)", c.RedisMaxRetries)
	}
	if c.RedisRetryDelayMs < 0 {
		return fmt.Errorf("invalid REDIS_RETRY_DELAY_MS: %d (must be non-negative)", c.RedisRetryDelayMs)
	}
	if c.MatchTTLHours < 1 {
		return fmt.Errorf("invalid MATCH_TTL_HOURS: %d (must be at least 1)", c.MatchTTLHours)
	}
	if c.UpdateMaxRetries < 1 {
		return fmt.Errorf("invalid UPDATE_MAX_RETRIES: %d (must be at least 1)", c.UpdateMaxRetries)
	}

	return nil
}
