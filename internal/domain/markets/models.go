package markets

import "time"

// Sport identifies the sport a match was classified under.
type Sport string

const (
	SportCricket Sport = "cricket"
	SportTennis  Sport = "tennis"
	SportSoccer  Sport = "soccer"
	SportUnknown Sport = "unknown"
)

// ParseSport maps free-form sport text to a Sport, defaulting to unknown.
func ParseSport(raw string) Sport {
	switch Sport(raw) {
	case SportCricket, SportTennis, SportSoccer:
		return Sport(raw)
	default:
		return SportUnknown
	}
}

// Known reports whether the sport is one of the supported categories.
func (s Sport) Known() bool {
	return s == SportCricket || s == SportTennis || s == SportSoccer
}

// RunnerStatus mirrors the upstream selection lifecycle states.
type RunnerStatus string

const (
	RunnerActive    RunnerStatus = "ACTIVE"
	RunnerSuspended RunnerStatus = "SUSPENDED"
)

// PriceLevel is one rung of an available-to-back or available-to-lay ladder.
// Ladders are ordered best price first.
type PriceLevel struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// Runner is one selection inside a market.
type Runner struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Back            []PriceLevel `json:"back"`
	Lay             []PriceLevel `json:"lay"`
	LastPriceTraded float64      `json:"lastPriceTraded"`
	TotalMatched    float64      `json:"totalMatched"`
	Status          RunnerStatus `json:"status"`
}

// Market is the canonical market shape persisted by the service.
type Market struct {
	MarketID     string   `json:"marketId"`
	Title        string   `json:"title"`
	TotalMatched float64  `json:"totalMatched"`
	Locked       bool     `json:"locked"`
	Visible      bool     `json:"visible"`
	Runners      []Runner `json:"runners"`
}

// Match is the canonical event shape persisted by the service.
// Identity is MatchID; every other attribute is overwritten each refresh.
type Match struct {
	MatchID        string     `json:"matchId"`
	Title          string     `json:"title"`
	Sport          Sport      `json:"sportId"`
	TournamentID   string     `json:"tournamentId"`
	TournamentName string     `json:"tournamentName"`
	StartTime      *time.Time `json:"startTime"`
	InPlay         bool       `json:"inPlay"`
	Locked         bool       `json:"locked"`
	SiteURL        string     `json:"url"`
	FancyAvailable bool       `json:"fancyBet"`
}
