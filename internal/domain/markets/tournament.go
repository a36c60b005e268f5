package markets

import "sort"

// Tournament groups the matches sharing a tournament id within one refresh
// cycle. Tournaments are rebuilt from scratch every cycle and never persisted.
type Tournament struct {
	TournamentID string  `json:"tournamentId"`
	Name         string  `json:"name"`
	Sport        Sport   `json:"sportId"`
	Matches      []Match `json:"matchList"`
}

// BuildTournaments aggregates matches by tournament id. Matches without a
// tournament id are grouped under an empty-id tournament. The result is
// ordered by tournament id, matches within a tournament by match id, so a
// cycle report is stable across runs.
func BuildTournaments(matches []Match) []Tournament {
	grouped := make(map[string]*Tournament)
	for _, m := range matches {
		t, ok := grouped[m.TournamentID]
		if !ok {
			t = &Tournament{
				TournamentID: m.TournamentID,
				Name:         m.TournamentName,
				Sport:        m.Sport,
			}
			grouped[m.TournamentID] = t
		}
		t.Matches = append(t.Matches, m)
	}

	out := make([]Tournament, 0, len(grouped))
	for _, t := range grouped {
		sort.Slice(t.Matches, func(i, j int) bool {
			return t.Matches[i].MatchID < t.Matches[j].MatchID
		})
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TournamentID < out[j].TournamentID
	})
	return out
}
