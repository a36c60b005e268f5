// Package merge combines a previously persisted market collection with a
// freshly fetched one. Upstream fancy feeds are deltas: they only transmit
// markets that changed since the last poll, and retract markets with an
// explicit tombstone flag rather than by omission.
package merge

import (
	"time"

	"live-markets-service/internal/domain/markets"
)

// Clock supplies the fallback version stamp, injectable for tests.
type Clock func() int64

// Engine applies tombstoned deltas to market collections.
type Engine struct {
	nowMillis Clock
}

// New constructs an Engine with the given clock. A nil clock falls back to
// wall-clock milliseconds.
func New(clock Clock) *Engine {
	if clock == nil {
		clock = func() int64 { return time.Now().UnixMilli() }
	}
	return &Engine{nowMillis: clock}
}

// Merge applies incoming as a delta on top of previous and returns the
// result; neither input is mutated.
//
// Rules, per market in incoming:
//   - tombstoned (removed): the key is deleted from the result; deleting an
//     absent key is a no-op, so re-applying a delta is idempotent
//   - otherwise: the market replaces any previous value wholesale (no
//     field-level merging)
//
// Markets present in previous but absent from incoming are retained
// unchanged: absence in a delta carries no meaning. The result version is
// incoming's version when it carries one, else the clock value; it never
// moves backwards past previous's version.
func (e *Engine) Merge(previous, incoming markets.MarketCollection) markets.MarketCollection {
	out := previous.Clone()
	if out.Markets == nil {
		out.Markets = make(map[string]markets.CollectionMarket)
	}

	for id, m := range incoming.Markets {
		if m.Removed {
			delete(out.Markets, id)
			continue
		}
		out.Markets[id] = m
	}

	out.Version = e.resolveVersion(previous.Version, incoming.Version)
	return out
}

func (e *Engine) resolveVersion(previous, incoming int64) int64 {
	v := incoming
	if v == 0 && e.nowMillis != nil {
		v = e.nowMillis()
	}
	if v < previous {
		return previous
	}
	return v
}
