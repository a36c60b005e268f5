package markets

// CollectionMarket is a market as it appears inside a merge target. It carries
// the tombstone flag delta feeds use to retract a previously delivered market.
type CollectionMarket struct {
	Market
	Removed bool `json:"removed,omitempty"`
}

// MarketCollection is the merge target for delta market feeds: a mapping from
// market id to market plus a monotonically non-decreasing version stamp.
type MarketCollection struct {
	Markets map[string]CollectionMarket `json:"markets"`
	Version int64                       `json:"version"`
}

// NewMarketCollection returns an empty collection ready for merging.
func NewMarketCollection() MarketCollection {
	return MarketCollection{Markets: make(map[string]CollectionMarket)}
}

// Clone returns a deep-enough copy: the map is copied, market values are
// copied by value. Runner slices are shared; merges replace whole markets and
// never mutate them in place.
func (c MarketCollection) Clone() MarketCollection {
	out := MarketCollection{
		Markets: make(map[string]CollectionMarket, len(c.Markets)),
		Version: c.Version,
	}
	for id, m := range c.Markets {
		out.Markets[id] = m
	}
	return out
}

// Len returns the number of markets in the collection.
func (c MarketCollection) Len() int {
	return len(c.Markets)
}
