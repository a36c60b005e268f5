// Package providers defines how upstream feed data is fetched. Concrete
// clients live in subpackages; wrappers in this package add retry
// behavior without the callers knowing.
package providers

import (
	"context"

	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/feed"
)

// EventProvider fetches the upstream event list for one sport.
type EventProvider interface {
	FetchEvents(ctx context.Context, sport markets.Sport) ([]feed.Event, error)
}

// MarketProvider fetches the full market book for one event.
type MarketProvider interface {
	FetchFullMarkets(ctx context.Context, eventID, marketID string) ([]feed.Market, error)
}

// FancyProvider fetches the fancy-market delta for one event. The returned
// version stamps the delta; zero means the upstream sent none.
type FancyProvider interface {
	FetchFancyMarkets(ctx context.Context, eventID string, marketIDs []string) ([]feed.Market, int64, error)
}

// FeedProvider combines every upstream capability the pipeline needs.
type FeedProvider interface {
	EventProvider
	MarketProvider
	FancyProvider
}
