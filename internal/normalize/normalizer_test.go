package normalize

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"live-markets-service/internal/classify"
	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/feed"
)

func newNormalizer() *Normalizer {
	return New(classify.New(nil))
}

func decodeEvent(t *testing.T, raw string) feed.Event {
	t.Helper()
	var ev feed.Event
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("fixture decode failed: %v", err)
	}
	return ev
}

func TestNormalizeCricketEvent(t *testing.T) {
	ev := decodeEvent(t, `{
		"eventId": "501",
		"eventName": "India v Australia",
		"competitionId": "9100",
		"competitionName": "T20 Series",
		"openDateTime": 1757400000000,
		"isInPlay": 1,
		"market": {
			"marketId": "1.501",
			"marketName": "Match Odds",
			"totalMatched": 120345.5,
			"status": "OPEN",
			"selections": [{
				"selectionId": 7,
				"runnerName": "India",
				"status": 1,
				"availableToBack": [{"price": 1.85, "size": 100}],
				"availableToLay": [{"price": 1.9, "size": 80}]
			}]
		}
	}`)

	match, market, err := newNormalizer().Normalize(ev, "cricket")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if match.MatchID != "501" || match.Sport != markets.SportCricket {
		t.Fatalf("unexpected match identity: %+v", match)
	}
	if match.Title != "India v Australia" {
		t.Fatalf("unexpected title %q", match.Title)
	}
	if match.TournamentID != "9100" || match.TournamentName != "T20 Series" {
		t.Fatalf("tournament fields lost: %+v", match)
	}
	if !match.InPlay || match.Locked {
		t.Fatalf("unexpected flags: %+v", match)
	}
	if match.StartTime == nil || !match.StartTime.Equal(time.UnixMilli(1757400000000).UTC()) {
		t.Fatalf("unexpected start time %v", match.StartTime)
	}
	if match.SiteURL != "https://www.wickspin24.live/sports/cricket/match/501" {
		t.Fatalf("unexpected site url %q", match.SiteURL)
	}
	if !match.FancyAvailable {
		t.Fatal("cricket matches should advertise fancy availability")
	}
	if market.MarketID != "1.501" || market.Title != "Match Odds" {
		t.Fatalf("unexpected market: %+v", market)
	}
	if len(market.Runners) != 1 || market.Runners[0].Status != markets.RunnerActive {
		t.Fatalf("unexpected runners: %+v", market.Runners)
	}
	if !market.Visible {
		t.Fatal("visibility should default to true")
	}
}

func TestNormalizeRejectsMissingIdentity(t *testing.T) {
	n := newNormalizer()

	cases := []string{
		`{"eventId": "501"}`,                              // no title
		`{"eventName": "India v Australia"}`,              // no id
		`{"eventId": "abc", "eventName": "A v B"}`,        // non-numeric id
		`{"eventId": "  ", "eventName": "A v B"}`,         // blank id
		`{"eventId": "501", "eventName": "   "}`,          // blank title
	}
	for _, raw := range cases {
		if _, _, err := n.Normalize(decodeEvent(t, raw), ""); !errors.Is(err, ErrMissingIdentity) {
			t.Fatalf("expected ErrMissingIdentity for %s, got %v", raw, err)
		}
	}
}

func TestNormalizeEventWithoutMarketDegrades(t *testing.T) {
	ev := decodeEvent(t, `{"eventId": "502", "eventName": "India v Australia", "competitionName": "T20 Series"}`)
	match, market, err := newNormalizer().Normalize(ev, "")
	if err != nil {
		t.Fatalf("missing market must not be an error: %v", err)
	}
	if match.MatchID != "502" {
		t.Fatalf("unexpected match: %+v", match)
	}
	if market.MarketID != "" || len(market.Runners) != 0 {
		t.Fatalf("expected empty market, got %+v", market)
	}
}

func TestSiteURLStripsLeadingDashAndHonorsBase(t *testing.T) {
	ev := decodeEvent(t, `{"eventId": "-777", "eventName": "A v B", "competitionName": "ATP Tour"}`)
	match, _, err := newNormalizer().WithSiteBase("https://mirror.example/").Normalize(ev, "tennis")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if match.SiteURL != "https://mirror.example/sports/tennis/match/777" {
		t.Fatalf("unexpected site url %q", match.SiteURL)
	}
	if match.FancyAvailable {
		t.Fatal("fancy availability is cricket-only")
	}
}

func TestRunnerDefaultsAreTotal(t *testing.T) {
	// Malformed selection: no prices, garbage sizes, unknown status.
	m := MapMarket(mustMarket(t, `{
		"marketId": "1.9",
		"selections": [{"runnerName": "X", "status": 9, "availableToBack": "junk", "lastPriceTraded": "n/a"}]
	}`))
	if len(m.Runners) != 1 {
		t.Fatalf("expected runner, got %+v", m.Runners)
	}
	r := m.Runners[0]
	if r.LastPriceTraded != 0 || r.TotalMatched != 0 {
		t.Fatalf("expected zero defaults, got %+v", r)
	}
	if r.Status != markets.RunnerSuspended {
		t.Fatalf("unknown status must map to SUSPENDED, got %s", r.Status)
	}
}

func TestLastPriceTradedDefaultsToBestBack(t *testing.T) {
	m := MapMarket(mustMarket(t, `{
		"marketId": "1.9",
		"selections": [{
			"runnerName": "X",
			"status": 1,
			"availableToBack": [{"price": 2.5, "size": 10}, {"price": 2.4, "size": 5}]
		}]
	}`))
	if got := m.Runners[0].LastPriceTraded; got != 2.5 {
		t.Fatalf("expected best back default 2.5, got %v", got)
	}
}

func TestMarketLockedVariants(t *testing.T) {
	if !MapMarket(mustMarket(t, `{"marketId": "1", "status": "SUSPENDED"}`)).Locked {
		t.Fatal("SUSPENDED status should lock the market")
	}
	if !MapMarket(mustMarket(t, `{"marketId": "1", "suspended": 1}`)).Locked {
		t.Fatal("suspended flag should lock the market")
	}
	if MapMarket(mustMarket(t, `{"marketId": "1", "status": "OPEN"}`)).Locked {
		t.Fatal("open market should not be locked")
	}
}

func TestNegativePricesClampToZero(t *testing.T) {
	m := MapMarket(mustMarket(t, `{
		"marketId": "1",
		"totalMatched": -5,
		"selections": [{"runnerName": "X", "availableToBack": [{"price": -1, "size": -2}]}]
	}`))
	if m.TotalMatched != 0 {
		t.Fatalf("negative totalMatched should clamp, got %v", m.TotalMatched)
	}
	lvl := m.Runners[0].Back[0]
	if lvl.Price != 0 || lvl.Size != 0 {
		t.Fatalf("negative levels should clamp, got %+v", lvl)
	}
}

func TestCollectionKeepsTombstonesAndSkipsBlankIDs(t *testing.T) {
	var resp feed.FancyResponse
	raw := `{
		"dmFancyBetMarkets": [
			{"marketId": "f1", "marketName": "6 Over Runs"},
			{"marketId": "f2", "removed": true},
			{"marketName": "orphan"}
		],
		"version": 99
	}`
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	col := Collection(resp.Markets, int64(resp.Version))
	if col.Len() != 2 {
		t.Fatalf("expected blank-id market dropped, got %d", col.Len())
	}
	if !col.Markets["f2"].Removed {
		t.Fatal("tombstone lost in conversion")
	}
	if col.Version != 99 {
		t.Fatalf("version lost, got %d", col.Version)
	}
}

func TestStartsTodayOrTomorrow(t *testing.T) {
	now := time.Date(2025, 3, 9, 15, 0, 0, 0, time.UTC)

	today := feed.Event{OpenDateTime: feed.Int64(time.Date(2025, 3, 9, 19, 0, 0, 0, time.UTC).UnixMilli())}
	tomorrow := feed.Event{OpenDateTime: feed.Int64(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC).UnixMilli())}
	nextWeek := feed.Event{OpenDateTime: feed.Int64(time.Date(2025, 3, 16, 10, 0, 0, 0, time.UTC).UnixMilli())}
	unset := feed.Event{}

	if !StartsTodayOrTomorrow(today, now) || !StartsTodayOrTomorrow(tomorrow, now) {
		t.Fatal("today/tomorrow events should pass")
	}
	if StartsTodayOrTomorrow(nextWeek, now) || StartsTodayOrTomorrow(unset, now) {
		t.Fatal("distant or undated events should fail")
	}
}

func TestStartsTodayOrTomorrowComparesInCallerZone(t *testing.T) {
	// 2025-03-09 20:00 UTC is already 2025-03-10 01:30 in IST; the same
	// instant must count as today for an IST caller.
	ist := time.FixedZone("IST", 5*3600+30*60)
	now := time.Date(2025, 3, 10, 1, 30, 0, 0, ist)
	ev := feed.Event{OpenDateTime: feed.Int64(time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC).UnixMilli())}

	if !StartsTodayOrTomorrow(ev, now) {
		t.Fatal("same-instant event must pass regardless of host zone")
	}
}

func mustMarket(t *testing.T, raw string) feed.Market {
	t.Helper()
	var m feed.Market
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("market fixture decode failed: %v", err)
	}
	return m
}
