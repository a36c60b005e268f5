// Package retention clears out records that the next refresh cycle will
// replace or that have aged past the day boundary. Generation kinds are
// wiped from the cache wholesale at the start of a cycle; fancy
// collections are delta-merged and never bulk-evicted. Files roll over on
// the calendar day.
package retention

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"live-markets-service/internal/cache"
	"live-markets-service/internal/filestore"
	"live-markets-service/internal/logging"
)

// Manager owns both eviction policies.
type Manager struct {
	cache  cache.Store
	files  *filestore.Store
	keys   cache.Keyspace
	sports []string
	kinds  []string
	logger *slog.Logger
}

// New builds a Manager. kinds lists the cache kinds replaced per
// generation; sports lists every sport namespace the pipeline writes.
func New(cacheStore cache.Store, files *filestore.Store, keys cache.Keyspace, sports, kinds []string, logger *slog.Logger) *Manager {
	return &Manager{
		cache:  cacheStore,
		files:  files,
		keys:   keys,
		sports: sports,
		kinds:  kinds,
		logger: logger,
	}
}

// EvictGeneration deletes every cached record of the generation kinds
// across all sports. It keeps going past per-namespace failures and
// returns the joined error alongside the count actually deleted.
func (m *Manager) EvictGeneration(ctx context.Context) (int64, error) {
	var deleted int64
	var errs []error
	for _, sport := range m.sports {
		for _, kind := range m.kinds {
			pattern := m.keys.Pattern(sport, kind)
			keys, err := m.cache.Keys(ctx, pattern)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if len(keys) == 0 {
				continue
			}
			n, err := m.cache.Delete(ctx, keys...)
			deleted += n
			if err != nil {
				errs = append(errs, err)
			}
		}
	}
	if deleted > 0 {
		m.logger.Debug("evicted cache generation", logging.FieldCount, deleted)
	}
	return deleted, errors.Join(errs...)
}

// EvictStaleFiles removes files last written on an earlier calendar day
// than now.
func (m *Manager) EvictStaleFiles(now time.Time) (int, error) {
	removed, err := m.files.EvictBefore(now)
	if removed > 0 {
		m.logger.Info("evicted stale files", logging.FieldCount, removed)
	}
	return removed, err
}
