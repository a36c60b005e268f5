package service

import (
	"log/slog"

	"live-markets-service/internal/config"
	"live-markets-service/internal/providers"
	"live-markets-service/internal/providers/fixture"
	"live-markets-service/internal/providers/wickspin"
)

// buildProvider resolves the configured upstream and wraps it with retries.
func buildProvider(cfg config.Config, logger *slog.Logger) providers.FeedProvider {
	var inner providers.FeedProvider
	switch cfg.Provider {
	case "fixture":
		inner = fixture.New()
	default:
		inner = wickspin.NewClient(wickspin.Config{
			BaseURL:   cfg.Upstream.BaseURL,
			Origin:    cfg.Upstream.Origin,
			SessionID: cfg.Upstream.SessionID,
		})
	}
	return providers.NewRetryingProvider(inner, logger, cfg.Upstream.MaxRetries, cfg.Upstream.RetryBackoff)
}
