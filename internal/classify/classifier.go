// Package classify maps event text to a sport. Upstream feeds never carry a
// reliable sport tag for every variant, so classification degrades through
// increasingly generic signals before falling back to the caller's hint.
package classify

import (
	"log/slog"
	"strings"
	"unicode"

	"live-markets-service/internal/domain/markets"
)

// Classifier decides which sport an event belongs to.
type Classifier struct {
	logger *slog.Logger
}

// New constructs a Classifier. The logger may be nil.
func New(logger *slog.Logger) *Classifier {
	return &Classifier{logger: logger}
}

// Classify resolves the sport for an event from its tournament name, title
// and the sport hint the fetch was issued under. Rules apply in strict
// priority order; the first match wins. Inputs are never mutated.
func (c *Classifier) Classify(tournamentName, eventTitle, hint string) markets.Sport {
	combined := strings.ToLower(tournamentName + " " + eventTitle)

	sport, rule := decide(combined, eventTitle, hint)
	c.trace(tournamentName, eventTitle, hint, sport, rule)
	return sport
}

func decide(combined, eventTitle, hint string) (markets.Sport, string) {
	if containsAnyPhrase(combined, cricketTournaments) {
		return markets.SportCricket, "cricket-tournament"
	}
	if containsAnyPhrase(combined, soccerKeywords) {
		return markets.SportSoccer, "soccer-keyword"
	}
	if containsAnyPhrase(combined, cricketGeneric) {
		return markets.SportCricket, "cricket-keyword"
	}
	if containsAnyPhrase(combined, tennisKeywords) {
		return markets.SportTennis, "tennis-keyword"
	}
	if looksLikePlayerPair(eventTitle) {
		return markets.SportTennis, "player-pair"
	}
	if s := markets.ParseSport(hint); s.Known() {
		return s, "api-hint"
	}
	return markets.SportUnknown, "unmatched"
}

// looksLikePlayerPair reports whether a title reads as "A v B" or "A/B" where
// both sides are short personal names. Sides with more than three words or
// with team-indicating tokens (club, united, fc, ...) are excluded so
// two-team sports are not mistaken for tennis.
func looksLikePlayerPair(title string) bool {
	sides := splitTwoParty(title)
	if sides == nil {
		return false
	}
	for _, side := range sides {
		words := strings.Fields(side)
		if len(words) == 0 || len(words) > 3 {
			return false
		}
		if containsAnyPhrase(strings.ToLower(side), teamTokens) {
			return false
		}
	}
	return true
}

func splitTwoParty(title string) []string {
	for _, sep := range []string{" v ", "/"} {
		if parts := strings.Split(title, sep); len(parts) == 2 {
			return []string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}
		}
	}
	return nil
}

func containsAnyPhrase(text string, phrases []string) bool {
	for _, p := range phrases {
		if containsPhrase(text, p) {
			return true
		}
	}
	return false
}

// containsPhrase matches a lowercase phrase at word boundaries. Pure
// substring matching misfires on short tokens ("men" inside "tournament"),
// so both edges of a hit must be non-alphanumeric or the string edge.
func containsPhrase(text, phrase string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)
		if boundaryBefore(text, idx) && boundaryAfter(text, end) {
			return true
		}
		start = idx + 1
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	return !isWordByte(text[idx-1])
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	return !isWordByte(text[end])
}

func isWordByte(b byte) bool {
	return unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b))
}

func (c *Classifier) trace(tournamentName, eventTitle, hint string, sport markets.Sport, rule string) {
	if c == nil || c.logger == nil {
		return
	}
	c.logger.Debug("classified event",
		"tournament", tournamentName,
		"title", eventTitle,
		"hint", hint,
		"sport", string(sport),
		"rule", rule,
	)
}
