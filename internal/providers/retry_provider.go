package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/feed"
	"live-markets-service/internal/logging"
)

const (
	defaultMaxRetries      = 3
	defaultInitialInterval = 200 * time.Millisecond
)

// retryingProvider wraps a FeedProvider with exponential backoff. Retries
// stop early when the context is cancelled.
type retryingProvider struct {
	inner           FeedProvider
	logger          *slog.Logger
	maxRetries      uint64
	initialInterval time.Duration
}

// NewRetryingProvider wraps the given provider with retries. Non-positive
// maxRetries or initialInterval fall back to defaults.
func NewRetryingProvider(inner FeedProvider, logger *slog.Logger, maxRetries int, initialInterval time.Duration) FeedProvider {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if initialInterval <= 0 {
		initialInterval = defaultInitialInterval
	}
	return &retryingProvider{
		inner:           inner,
		logger:          logger,
		maxRetries:      uint64(maxRetries),
		initialInterval: initialInterval,
	}
}

func (r *retryingProvider) FetchEvents(ctx context.Context, sport markets.Sport) ([]feed.Event, error) {
	var events []feed.Event
	err := r.retry(ctx, "queryEvents", func() error {
		var err error
		events, err = r.inner.FetchEvents(ctx, sport)
		return err
	})
	return events, err
}

func (r *retryingProvider) FetchFullMarkets(ctx context.Context, eventID, marketID string) ([]feed.Market, error) {
	var mkts []feed.Market
	err := r.retry(ctx, "queryFullMarkets", func() error {
		var err error
		mkts, err = r.inner.FetchFullMarkets(ctx, eventID, marketID)
		return err
	})
	return mkts, err
}

func (r *retryingProvider) FetchFancyMarkets(ctx context.Context, eventID string, marketIDs []string) ([]feed.Market, int64, error) {
	var mkts []feed.Market
	var version int64
	err := r.retry(ctx, "queryDMFancyBetMarkets", func() error {
		var err error
		mkts, version, err = r.inner.FetchFancyMarkets(ctx, eventID, marketIDs)
		return err
	})
	return mkts, version, err
}

func (r *retryingProvider) retry(ctx context.Context, endpoint string, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initialInterval

	notify := func(err error, delay time.Duration) {
		if r.logger == nil {
			return
		}
		r.logger.Warn("upstream fetch retry",
			"endpoint", endpoint,
			"delay", delay,
			"error", err)
	}

	err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(bo, r.maxRetries), ctx), notify)
	if err != nil && r.logger != nil {
		r.logger.Warn("upstream fetch failed",
			"endpoint", endpoint,
			logging.FieldCount, r.maxRetries+1,
			"error", err)
	}
	return err
}
