// Package persist fans records out to both sinks. The cache gets compact
// JSON under the keyspace layout, the file tree gets the indented twin.
// Sink failures are independent: one sink going down never blocks the
// other, and the caller sees every failure joined into one error.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"live-markets-service/internal/cache"
	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/filestore"
	"live-markets-service/internal/logging"
)

// Entity kinds. Each kind is both a key segment in the cache and a
// directory level in the file tree.
const (
	KindMatch   = "match"
	KindPremium = "premium_markets"
	KindFancy   = "fancy"
)

// GenerationKinds are the kinds replaced wholesale each refresh cycle.
// Fancy collections are delta-merged across cycles and excluded.
func GenerationKinds() []string {
	return []string{KindMatch, KindPremium}
}

// Persister writes canonical records to the cache and the file store.
type Persister struct {
	cache  cache.Store
	files  *filestore.Store
	keys   cache.Keyspace
	logger *slog.Logger
}

// New wires a Persister over both sinks.
func New(cacheStore cache.Store, files *filestore.Store, keys cache.Keyspace, logger *slog.Logger) *Persister {
	return &Persister{cache: cacheStore, files: files, keys: keys, logger: logger}
}

// SaveMatch persists one canonical match summary.
func (p *Persister) SaveMatch(ctx context.Context, sport markets.Sport, m markets.Match) error {
	return p.save(ctx, string(sport), KindMatch, m.MatchID, m)
}

// SavePremium persists the full premium market list of a match.
func (p *Persister) SavePremium(ctx context.Context, sport markets.Sport, matchID string, mkts []markets.Market) error {
	return p.save(ctx, string(sport), KindPremium, matchID, mkts)
}

// SaveFancy persists a merged fancy market collection.
func (p *Persister) SaveFancy(ctx context.Context, sport markets.Sport, matchID string, coll markets.MarketCollection) error {
	return p.save(ctx, string(sport), KindFancy, matchID, coll)
}

// LoadFancy reads the previously persisted fancy collection for a match,
// preferring the cache and falling back to the file tree. A record missing
// from both sinks yields an empty collection, not an error: the first
// cycle of a match has no baseline.
func (p *Persister) LoadFancy(ctx context.Context, sport markets.Sport, matchID string) (markets.MarketCollection, error) {
	key := p.keys.Key(string(sport), KindFancy, matchID)
	if data, err := p.cache.Get(ctx, key); err == nil {
		var coll markets.MarketCollection
		if uerr := json.Unmarshal(data, &coll); uerr == nil {
			if coll.Markets == nil {
				coll.Markets = map[string]markets.CollectionMarket{}
			}
			return coll, nil
		}
		p.logger.Warn("cached fancy record undecodable, falling back to file",
			logging.FieldEventID, matchID, logging.FieldSport, string(sport))
	} else if !errors.Is(err, cache.ErrNotFound) {
		p.logger.Warn("cache read failed, falling back to file",
			logging.FieldEventID, matchID, "error", err)
	}

	var coll markets.MarketCollection
	if err := p.files.Read(string(sport), KindFancy, matchID, &coll); err != nil {
		return markets.NewMarketCollection(), nil
	}
	if coll.Markets == nil {
		coll.Markets = map[string]markets.CollectionMarket{}
	}
	return coll, nil
}

func (p *Persister) save(ctx context.Context, sport, kind, id string, v any) error {
	compact, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("persist: marshal %s/%s/%s: %w", sport, kind, id, err)
	}

	var cacheErr, fileErr error
	if err := p.cache.Set(ctx, p.keys.Key(sport, kind, id), compact); err != nil {
		cacheErr = fmt.Errorf("persist: cache write %s/%s/%s: %w", sport, kind, id, err)
		p.logger.Error("cache write failed",
			logging.FieldSink, "cache",
			logging.FieldSport, sport,
			logging.FieldKind, kind,
			logging.FieldEventID, id,
			"error", err)
	}
	if err := p.files.Write(sport, kind, id, v); err != nil {
		fileErr = fmt.Errorf("persist: file write %s/%s/%s: %w", sport, kind, id, err)
		p.logger.Error("file write failed",
			logging.FieldSink, "file",
			logging.FieldSport, sport,
			logging.FieldKind, kind,
			logging.FieldEventID, id,
			"error", err)
	}
	return errors.Join(cacheErr, fileErr)
}
