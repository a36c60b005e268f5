package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Provider != "wickspin" {
		t.Fatalf("unexpected provider %q", cfg.Provider)
	}
	if cfg.RefreshInterval != 5*time.Second {
		t.Fatalf("unexpected refresh interval %v", cfg.RefreshInterval)
	}
	if len(cfg.Sports) != 3 {
		t.Fatalf("unexpected sports %v", cfg.Sports)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.KeyPrefix != "in_play" {
		t.Fatalf("unexpected redis config %+v", cfg.Redis)
	}
	if cfg.Storage.DataDir != "data" || cfg.Storage.VerifySampleSize != 25 {
		t.Fatalf("unexpected storage config %+v", cfg.Storage)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Port != "9090" {
		t.Fatalf("unexpected metrics config %+v", cfg.Metrics)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envProvider, "fixture")
	t.Setenv(envRefreshInterval, "30s")
	t.Setenv(envSports, "Cricket, TENNIS")
	t.Setenv(envRedisAddr, "redis:6380")
	t.Setenv(envRedisDB, "3")
	t.Setenv(envDataDir, "/var/lib/markets")

	cfg := Load()
	if cfg.Provider != "fixture" || cfg.RefreshInterval != 30*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.Sports) != 2 || cfg.Sports[0] != "cricket" || cfg.Sports[1] != "tennis" {
		t.Fatalf("sports list not normalized: %v", cfg.Sports)
	}
	if cfg.Redis.Addr != "redis:6380" || cfg.Redis.DB != 3 {
		t.Fatalf("redis overrides not applied: %+v", cfg.Redis)
	}
	if cfg.Storage.DataDir != "/var/lib/markets" {
		t.Fatalf("data dir override not applied: %+v", cfg.Storage)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Load()
	cfg.Provider = "nope"
	cfg.Sports = []string{"chess"}
	cfg.Redis.Addr = ""
	cfg.Storage.DataDir = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation failure")
	}
	msg := err.Error()
	for _, want := range []string{"unknown provider", "unsupported sport", "redis address", "data directory"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}

func TestValidateRejectsBadUpstreamURL(t *testing.T) {
	cfg := Load()
	cfg.Upstream.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid upstream URL to fail validation")
	}

	cfg.Provider = "fixture"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("fixture provider must not require upstream URL: %v", err)
	}
}
