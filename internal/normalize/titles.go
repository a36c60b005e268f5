package normalize

import (
	"fmt"
	"strings"

	"live-markets-service/internal/domain/markets"
)

// FormatTitle renders an event title in the sport's canonical style.
// Tennis pairs become "I. Surname - I. Surname"; team sports become
// "A v B" (cricket) or "A vs B" (soccer). When the raw title does not
// split into two sides the sport-specific fallbacks below apply.
func FormatTitle(raw string, sport markets.Sport) string {
	switch sport {
	case markets.SportTennis:
		return tennisTitle(raw)
	case markets.SportCricket:
		a, b := teamNames(raw, sport)
		return a + " v " + b
	case markets.SportSoccer:
		a, b := teamNames(raw, sport)
		return a + " vs " + b
	default:
		return raw
	}
}

// tennisTitle abbreviates "Novak Djokovic v Rafael Nadal" to
// "N. Djokovic - R. Nadal". Titles that do not split into two multi-word
// names pass through unchanged.
func tennisTitle(raw string) string {
	parts := strings.Split(raw, " v ")
	if len(parts) != 2 {
		return raw
	}
	left := strings.Fields(strings.TrimSpace(parts[0]))
	right := strings.Fields(strings.TrimSpace(parts[1]))
	if len(left) < 2 || len(right) < 2 {
		return raw
	}
	return abbreviatePlayer(left) + " - " + abbreviatePlayer(right)
}

func abbreviatePlayer(words []string) string {
	initial := []rune(words[0])[0]
	return fmt.Sprintf("%c. %s", initial, words[len(words)-1])
}

// teamNames extracts the two side names from " v " or " vs " splits,
// falling back to sport-branded placeholders when the title has no split.
func teamNames(raw string, sport markets.Sport) (string, string) {
	for _, sep := range []string{" v ", " vs "} {
		if parts := strings.Split(raw, sep); len(parts) == 2 {
			return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		}
	}
	label := titleCase(string(sport))
	return label + " Team A", label + " Team B"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
