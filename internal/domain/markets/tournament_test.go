package markets

import "testing"

func TestBuildTournamentsGroupsAndSorts(t *testing.T) {
	matches := []Match{
		{MatchID: "3", Sport: SportCricket, TournamentID: "t2", TournamentName: "T20 Series"},
		{MatchID: "1", Sport: SportCricket, TournamentID: "t1", TournamentName: "Big Bash"},
		{MatchID: "2", Sport: SportCricket, TournamentID: "t1", TournamentName: "Big Bash"},
	}

	out := BuildTournaments(matches)
	if len(out) != 2 {
		t.Fatalf("expected 2 tournaments, got %d", len(out))
	}
	if out[0].TournamentID != "t1" || out[1].TournamentID != "t2" {
		t.Fatalf("tournaments not ordered by id: %+v", out)
	}
	if len(out[0].Matches) != 2 || out[0].Matches[0].MatchID != "1" {
		t.Fatalf("matches not grouped/sorted: %+v", out[0].Matches)
	}
	if out[0].Name != "Big Bash" {
		t.Fatalf("tournament name not carried: %s", out[0].Name)
	}
}

func TestBuildTournamentsEmptyInput(t *testing.T) {
	if out := BuildTournaments(nil); len(out) != 0 {
		t.Fatalf("expected no tournaments, got %+v", out)
	}
}
