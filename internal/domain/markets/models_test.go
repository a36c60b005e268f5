package markets

import "testing"

func TestParseSportVariants(t *testing.T) {
	cases := map[string]Sport{
		"cricket": SportCricket,
		"tennis":  SportTennis,
		"soccer":  SportSoccer,
		"rugby":   SportUnknown,
		"":        SportUnknown,
	}
	for input, expected := range cases {
		if got := ParseSport(input); got != expected {
			t.Fatalf("sport %q expected %s, got %s", input, expected, got)
		}
	}
}

func TestSportKnown(t *testing.T) {
	if SportUnknown.Known() {
		t.Fatal("unknown should not be a known sport")
	}
	for _, s := range []Sport{SportCricket, SportTennis, SportSoccer} {
		if !s.Known() {
			t.Fatalf("%s should be known", s)
		}
	}
}

func TestCollectionClone(t *testing.T) {
	original := NewMarketCollection()
	original.Markets["1.1"] = CollectionMarket{Market: Market{MarketID: "1.1", Title: "Match Odds"}}
	original.Version = 42

	clone := original.Clone()
	clone.Markets["1.2"] = CollectionMarket{Market: Market{MarketID: "1.2"}}
	delete(clone.Markets, "1.1")

	if original.Len() != 1 {
		t.Fatalf("clone mutated the original: %+v", original.Markets)
	}
	if _, ok := original.Markets["1.1"]; !ok {
		t.Fatal("original lost its market")
	}
	if clone.Version != 42 {
		t.Fatalf("clone should carry the version, got %d", clone.Version)
	}
}
