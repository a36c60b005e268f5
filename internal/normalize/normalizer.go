// Package normalize converts raw upstream events into the canonical schema.
package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"live-markets-service/internal/classify"
	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/feed"
	"live-markets-service/internal/timeutil"
)

// ErrMissingIdentity marks an event that cannot be keyed: no title, or an
// event id that is not numeric. Such events are skipped, never fatal.
var ErrMissingIdentity = errors.New("event missing title or numeric id")

const defaultSiteBase = "https://www.wickspin24.live"

// Normalizer turns upstream events into canonical matches and markets.
type Normalizer struct {
	classifier *classify.Classifier
	siteBase   string
}

// New constructs a Normalizer around the given classifier.
func New(classifier *classify.Classifier) *Normalizer {
	return &Normalizer{classifier: classifier, siteBase: defaultSiteBase}
}

// WithSiteBase overrides the frontend origin used to build match page URLs.
// An empty base keeps the default.
func (n *Normalizer) WithSiteBase(base string) *Normalizer {
	if base != "" {
		n.siteBase = strings.TrimRight(base, "/")
	}
	return n
}

// Normalize builds the canonical Match and its primary Market from one raw
// event. The hint is the sport the fetch was issued under and only breaks
// classification ties. An event without any market yields an empty market,
// which is a documented degradation rather than an error.
func (n *Normalizer) Normalize(ev feed.Event, hint string) (markets.Match, markets.Market, error) {
	id := strings.TrimSpace(string(ev.EventID))
	title := strings.TrimSpace(ev.EventName)
	if title == "" || !numericID(id) {
		return markets.Match{}, markets.Market{}, ErrMissingIdentity
	}

	sport := n.classifier.Classify(ev.CompetitionName, title, hint)

	rawMarket, hasMarket := ev.PrimaryMarket()
	market := markets.Market{}
	if hasMarket {
		market = MapMarket(rawMarket)
	}

	match := markets.Match{
		MatchID:        id,
		Title:          FormatTitle(title, sport),
		Sport:          sport,
		TournamentID:   string(ev.CompetitionID),
		TournamentName: strings.TrimSpace(ev.CompetitionName),
		StartTime:      startTime(ev),
		InPlay:         bool(ev.IsInPlay),
		Locked:         market.Locked,
		SiteURL:        n.siteURL(sport, id),
		FancyAvailable: sport == markets.SportCricket,
	}
	return match, market, nil
}

// siteURL builds the frontend match page link. Event ids arrive with a
// leading dash that the site strips from its routes.
func (n *Normalizer) siteURL(sport markets.Sport, id string) string {
	return fmt.Sprintf("%s/sports/%s/match/%s", n.siteBase, sport, strings.TrimPrefix(id, "-"))
}

// MapMarket converts one upstream market into the canonical shape.
func MapMarket(m feed.Market) markets.Market {
	runners := make([]markets.Runner, 0, len(m.Selections))
	for _, s := range m.Selections {
		runners = append(runners, mapRunner(s))
	}
	return markets.Market{
		MarketID:     string(m.MarketID),
		Title:        strings.TrimSpace(m.MarketName),
		TotalMatched: nonNegative(float64(m.TotalMatched)),
		Locked:       marketLocked(m),
		Visible:      marketVisible(m),
		Runners:      runners,
	}
}

// Collection converts an upstream market delta into a merge target,
// preserving tombstone flags. The version is taken from the response.
func Collection(ms []feed.Market, version int64) markets.MarketCollection {
	out := markets.NewMarketCollection()
	out.Version = version
	for _, m := range ms {
		id := string(m.MarketID)
		if id == "" {
			continue
		}
		out.Markets[id] = markets.CollectionMarket{
			Market:  MapMarket(m),
			Removed: bool(m.Removed),
		}
	}
	return out
}

// StartsTodayOrTomorrow reports whether the event opens on the current or
// next calendar date relative to now. Events without a start time fail the
// check.
func StartsTodayOrTomorrow(ev feed.Event, now time.Time) bool {
	ms := ev.StartMillis()
	if ms == 0 {
		return false
	}
	// Calendar comparison must happen in one zone; use the caller's.
	start := timeutil.FromUnixMillis(ms).In(now.Location())
	return timeutil.SameDay(start, now) || timeutil.SameDay(start, now.AddDate(0, 0, 1))
}

func mapRunner(s feed.Selection) markets.Runner {
	back := mapLevels(s.AvailableToBack)
	lay := mapLevels(s.AvailableToLay)

	last := nonNegative(float64(s.LastPriceTraded))
	if last == 0 && len(back) > 0 {
		// Upstream omits lastPriceTraded on thin markets; the best
		// available back price is the closest stand-in.
		last = back[0].Price
	}

	status := markets.RunnerSuspended
	if s.Status == 1 {
		status = markets.RunnerActive
	}

	return markets.Runner{
		ID:              string(s.SelectionID),
		Name:            strings.TrimSpace(s.RunnerName),
		Back:            back,
		Lay:             lay,
		LastPriceTraded: last,
		TotalMatched:    nonNegative(float64(s.TotalMatched)),
		Status:          status,
	}
}

func mapLevels(levels feed.LevelList) []markets.PriceLevel {
	if len(levels) == 0 {
		return nil
	}
	out := make([]markets.PriceLevel, 0, len(levels))
	for _, l := range levels {
		out = append(out, markets.PriceLevel{
			Price: nonNegative(float64(l.Price)),
			Size:  nonNegative(float64(l.Size)),
		})
	}
	return out
}

func marketLocked(m feed.Market) bool {
	if bool(m.Suspended) {
		return true
	}
	return strings.EqualFold(m.Status, "SUSPENDED")
}

func marketVisible(m feed.Market) bool {
	if m.Visible == nil {
		return true
	}
	return *m.Visible
}

func startTime(ev feed.Event) *time.Time {
	ms := ev.StartMillis()
	if ms == 0 {
		return nil
	}
	t := timeutil.FromUnixMillis(ms)
	return &t
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func numericID(id string) bool {
	trimmed := strings.TrimPrefix(id, "-")
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
