// Package config loads runtime configuration from the environment. Every
// knob has a default; Validate catches the combinations a deployment
// cannot run with.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Config holds runtime configuration for the service.
type Config struct {
	Provider        string
	RefreshInterval Duration
	Sports          []string
	Upstream        UpstreamConfig
	Redis           RedisConfig
	Storage         StorageConfig
	Metrics         MetricsConfig
	Log             LogConfig
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Provider:        envOrDefault(envProvider, defaultProvider),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Sports:          splitList(envOrDefault(envSports, defaultSports)),
		Upstream:        loadUpstream(),
		Redis:           loadRedis(),
		Storage:         loadStorage(),
		Metrics:         loadMetrics(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}
}

// Validate reports every unusable setting at once.
func (c Config) Validate() error {
	var errs []error

	switch c.Provider {
	case "wickspin", "fixture":
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}

	if len(c.Sports) == 0 {
		errs = append(errs, errors.New("at least one sport is required"))
	}
	for _, sport := range c.Sports {
		switch sport {
		case "cricket", "tennis", "soccer":
		default:
			errs = append(errs, fmt.Errorf("unsupported sport %q", sport))
		}
	}

	if c.Provider == "wickspin" && c.Upstream.BaseURL != "" {
		if u, err := url.Parse(c.Upstream.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid upstream base URL %q", c.Upstream.BaseURL))
		}
	}

	if c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis address is required"))
	}
	if c.Storage.DataDir == "" {
		errs = append(errs, errors.New("data directory is required"))
	}
	if c.Redis.KeyPrefix == "" {
		errs = append(errs, errors.New("redis key prefix is required"))
	}

	return errors.Join(errs...)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
