// Package fixture serves a static feed for local runs and bootstrapping
// without upstream credentials.
package fixture

import (
	"context"
	"time"

	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/feed"
)

// Provider returns a deterministic set of events and markets.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a real time source.
func New() *Provider {
	return &Provider{now: time.Now}
}

// FetchEvents returns one live event per supported sport, matching the
// sport that was asked for.
func (p *Provider) FetchEvents(ctx context.Context, sport markets.Sport) ([]feed.Event, error) {
	_ = ctx
	start := feed.Int64(p.now().UnixMilli())

	switch sport {
	case markets.SportTennis:
		return []feed.Event{{
			EventID:         "9001",
			EventName:       "R. Federer v N. Djokovic",
			CompetitionID:   "20",
			CompetitionName: "ATP Fixture Open",
			OpenDateTime:    start,
			IsInPlay:        true,
			Market:          feed.MarketField{Markets: []feed.Market{fixtureMarket("2.01", "Match Odds", "R. Federer", "N. Djokovic")}},
		}}, nil
	case markets.SportSoccer:
		return []feed.Event{{
			EventID:         "9002",
			EventName:       "Fixture City vs Fixture United",
			CompetitionID:   "30",
			CompetitionName: "Premier League",
			OpenDateTime:    start,
			IsInPlay:        true,
			Market:          feed.MarketField{Markets: []feed.Market{fixtureMarket("3.01", "Match Odds", "Fixture City", "Fixture United")}},
		}}, nil
	default:
		return []feed.Event{{
			EventID:         "9000",
			EventName:       "India v Australia",
			CompetitionID:   "10",
			CompetitionName: "T20 Fixture Series",
			OpenDateTime:    start,
			IsInPlay:        true,
			Market:          feed.MarketField{Markets: []feed.Market{fixtureMarket("1.01", "Match Odds", "India", "Australia")}},
		}}, nil
	}
}

// FetchFullMarkets returns the fixture book for any event.
func (p *Provider) FetchFullMarkets(ctx context.Context, eventID, marketID string) ([]feed.Market, error) {
	_ = ctx
	_ = eventID
	m := fixtureMarket(marketID, "Match Odds", "Home", "Away")
	return []feed.Market{m}, nil
}

// FetchFancyMarkets returns a single fancy market stamped with the clock.
func (p *Provider) FetchFancyMarkets(ctx context.Context, eventID string, marketIDs []string) ([]feed.Market, int64, error) {
	_ = ctx
	_ = eventID
	if len(marketIDs) == 0 {
		return nil, p.now().UnixMilli(), nil
	}
	return []feed.Market{{
		MarketID:   "9.01",
		MarketName: "Fixture Session Runs",
		Selections: []feed.Selection{{
			SelectionID:     "1",
			RunnerName:      "Over 45.5",
			Status:          1,
			AvailableToBack: feed.LevelList{{Price: 1.9, Size: 120}},
			AvailableToLay:  feed.LevelList{{Price: 2.0, Size: 80}},
		}},
	}}, p.now().UnixMilli(), nil
}

func fixtureMarket(id, name, home, away string) feed.Market {
	return feed.Market{
		MarketID:     feed.Text(id),
		MarketName:   name,
		TotalMatched: 1500,
		Status:       "OPEN",
		Selections: []feed.Selection{
			{
				SelectionID:     "1",
				RunnerName:      home,
				Status:          1,
				AvailableToBack: feed.LevelList{{Price: 1.8, Size: 250}},
				AvailableToLay:  feed.LevelList{{Price: 1.85, Size: 200}},
				LastPriceTraded: 1.82,
			},
			{
				SelectionID:     "2",
				RunnerName:      away,
				Status:          1,
				AvailableToBack: feed.LevelList{{Price: 2.1, Size: 180}},
				AvailableToLay:  feed.LevelList{{Price: 2.2, Size: 150}},
				LastPriceTraded: 2.14,
			},
		},
	}
}
