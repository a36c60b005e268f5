// Package refresh runs the ingestion cycle: evict what expired, fetch the
// live events per sport, normalize and enrich them, merge fancy deltas and
// persist everything to both sinks. A cycle is best effort; one sport or
// event failing never aborts the rest.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/feed"
	"live-markets-service/internal/logging"
	"live-markets-service/internal/merge"
	"live-markets-service/internal/metrics"
	"live-markets-service/internal/normalize"
	"live-markets-service/internal/persist"
	"live-markets-service/internal/providers"
	"live-markets-service/internal/retention"
)

// Deps carries everything a Runner needs.
type Deps struct {
	Provider         providers.FeedProvider
	Normalizer       *normalize.Normalizer
	Merger           *merge.Engine
	Persister        *persist.Persister
	Retention        *retention.Manager
	Metrics          *metrics.Recorder
	Logger           *slog.Logger
	Sports           []markets.Sport
	VerifySampleSize int
}

// Runner executes refresh cycles.
type Runner struct {
	provider     providers.FeedProvider
	norm         *normalize.Normalizer
	merger       *merge.Engine
	persister    *persist.Persister
	retention    *retention.Manager
	metrics      *metrics.Recorder
	logger       *slog.Logger
	sports       []markets.Sport
	verifySample int
	now          func() time.Time
}

// Report summarizes one cycle.
type Report struct {
	CycleID          string
	StartedAt        time.Time
	Duration         time.Duration
	EventsSeen       int
	LiveEvents       int
	MatchesPersisted int
	PremiumPersisted int
	FancyPersisted   int
	CacheEvicted     int64
	FilesEvicted     int
	IntegrityIssues  int
	Tournaments      []markets.Tournament
}

// NewRunner constructs a Runner.
func NewRunner(deps Deps) *Runner {
	return &Runner{
		provider:     deps.Provider,
		norm:         deps.Normalizer,
		merger:       deps.Merger,
		persister:    deps.Persister,
		retention:    deps.Retention,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		sports:       deps.Sports,
		verifySample: deps.VerifySampleSize,
		now:          time.Now,
	}
}

// RunCycle executes one full refresh. The returned Report always reflects
// what actually happened; the error joins everything that went wrong along
// the way.
func (r *Runner) RunCycle(ctx context.Context) (Report, error) {
	start := r.now()
	report := Report{
		CycleID:   uuid.NewString(),
		StartedAt: start,
	}
	logger := r.logger.With(logging.FieldCycleID, report.CycleID)

	var errs []error

	r.evict(ctx, logger, &report, &errs)

	var matches []markets.Match
	for _, sport := range r.sports {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		sportMatches, err := r.refreshSport(ctx, logger, sport, &report)
		if err != nil {
			errs = append(errs, err)
		}
		matches = append(matches, sportMatches...)
	}

	report.Tournaments = markets.BuildTournaments(matches)

	for _, sport := range r.sports {
		verifyReport, err := r.persister.Verify(ctx, sport, r.verifySample)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		report.IntegrityIssues += verifyReport.Issues
		r.metrics.RecordIntegrityIssues(string(sport), verifyReport.Issues)
		if verifyReport.Issues > 0 {
			logger.Warn("read-back verification found issues",
				logging.FieldSport, string(sport),
				logging.FieldCount, verifyReport.Issues)
		}
	}

	report.Duration = r.now().Sub(start)
	err := errors.Join(errs...)
	r.metrics.RecordCycle(report.Duration, err)

	logger.Info("refresh cycle finished",
		logging.FieldCount, report.LiveEvents,
		logging.FieldDurationMS, report.Duration.Milliseconds(),
		"matches", report.MatchesPersisted,
		"premium", report.PremiumPersisted,
		"fancy", report.FancyPersisted,
		"tournaments", len(report.Tournaments),
		"integrity_issues", report.IntegrityIssues,
	)
	return report, err
}

func (r *Runner) evict(ctx context.Context, logger *slog.Logger, report *Report, errs *[]error) {
	filesEvicted, err := r.retention.EvictStaleFiles(r.now())
	report.FilesEvicted = filesEvicted
	r.metrics.RecordEviction("file", filesEvicted)
	if err != nil {
		*errs = append(*errs, err)
		logger.Error("file eviction failed", "error", err)
	}

	cacheEvicted, err := r.retention.EvictGeneration(ctx)
	report.CacheEvicted = cacheEvicted
	r.metrics.RecordEviction("cache", int(cacheEvicted))
	if err != nil {
		*errs = append(*errs, err)
		logger.Error("cache eviction failed", "error", err)
	}
}

func (r *Runner) refreshSport(ctx context.Context, logger *slog.Logger, sport markets.Sport, report *Report) ([]markets.Match, error) {
	events, err := r.fetchEvents(ctx, sport)
	if err != nil {
		logger.Error("event fetch failed", logging.FieldSport, string(sport), "error", err)
		return nil, err
	}
	report.EventsSeen += len(events)

	var errs []error
	var matches []markets.Match
	for _, ev := range events {
		if !bool(ev.IsInPlay) {
			continue
		}
		// An in-play flag on an event dated outside today or tomorrow is
		// stale upstream state; keep it out of the current generation.
		if ev.StartMillis() != 0 && !normalize.StartsTodayOrTomorrow(ev, r.now()) {
			logger.Debug("skipping event outside refresh window",
				logging.FieldSport, string(sport),
				logging.FieldEventID, string(ev.EventID))
			continue
		}
		report.LiveEvents++

		match, embedded, err := r.norm.Normalize(ev, string(sport))
		if err != nil {
			// Unkeyable events are logged and dropped, never fatal.
			logger.Warn("skipping unnormalizable event",
				logging.FieldSport, string(sport),
				logging.FieldEventID, string(ev.EventID),
				"error", err)
			continue
		}
		target := match.Sport
		if !target.Known() {
			target = sport
		}

		if err := r.persister.SaveMatch(ctx, target, match); err != nil {
			errs = append(errs, err)
			r.metrics.RecordPersistError("match")
		} else {
			report.MatchesPersisted++
			r.metrics.RecordPersisted(string(target), persist.KindMatch, 1)
		}
		matches = append(matches, match)

		primary, hasMarket := ev.PrimaryMarket()
		premium := r.premiumMarkets(ctx, logger, ev, embedded, hasMarket, primary)
		if len(premium) > 0 {
			if err := r.persister.SavePremium(ctx, target, match.MatchID, premium); err != nil {
				errs = append(errs, err)
				r.metrics.RecordPersistError(persist.KindPremium)
			} else {
				report.PremiumPersisted++
				r.metrics.RecordPersisted(string(target), persist.KindPremium, len(premium))
			}
		}

		if hasMarket {
			if err := r.refreshFancy(ctx, logger, target, match.MatchID, string(ev.EventID), string(primary.MarketID), report); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return matches, errors.Join(errs...)
}

// premiumMarkets enriches an event with its full market book. When the
// enrichment call fails the embedded summary market is still persisted, so
// a flaky upstream degrades freshness instead of dropping the match.
func (r *Runner) premiumMarkets(ctx context.Context, logger *slog.Logger, ev feed.Event, embedded markets.Market, hasMarket bool, primary feed.Market) []markets.Market {
	if !hasMarket {
		return nil
	}

	full, err := r.fetchFullMarkets(ctx, string(ev.EventID), string(primary.MarketID))
	if err != nil || len(full) == 0 {
		if err != nil {
			logger.Warn("full market fetch failed, using embedded market",
				logging.FieldEventID, string(ev.EventID),
				logging.FieldMarketID, string(primary.MarketID),
				"error", err)
		}
		if embedded.MarketID == "" {
			return nil
		}
		return []markets.Market{embedded}
	}

	out := make([]markets.Market, 0, len(full))
	for _, m := range full {
		if string(m.MarketID) == "" {
			continue
		}
		out = append(out, normalize.MapMarket(m))
	}
	return out
}

func (r *Runner) refreshFancy(ctx context.Context, logger *slog.Logger, sport markets.Sport, matchID, eventID, marketID string, report *Report) error {
	raw, version, err := r.fetchFancyMarkets(ctx, eventID, []string{marketID})
	if err != nil {
		logger.Warn("fancy fetch failed, keeping previous collection",
			logging.FieldEventID, eventID,
			"error", err)
		return err
	}

	incoming := normalize.Collection(raw, version)
	previous, err := r.persister.LoadFancy(ctx, sport, matchID)
	if err != nil {
		return err
	}

	merged := r.merger.Merge(previous, incoming)
	if err := r.persister.SaveFancy(ctx, sport, matchID, merged); err != nil {
		r.metrics.RecordPersistError(persist.KindFancy)
		return err
	}
	report.FancyPersisted++
	r.metrics.RecordPersisted(string(sport), persist.KindFancy, merged.Len())
	return nil
}

func (r *Runner) fetchEvents(ctx context.Context, sport markets.Sport) ([]feed.Event, error) {
	start := time.Now()
	events, err := r.provider.FetchEvents(ctx, sport)
	r.metrics.RecordFetchAttempt("queryEvents", time.Since(start), err)
	return events, err
}

func (r *Runner) fetchFullMarkets(ctx context.Context, eventID, marketID string) ([]feed.Market, error) {
	start := time.Now()
	mkts, err := r.provider.FetchFullMarkets(ctx, eventID, marketID)
	r.metrics.RecordFetchAttempt("queryFullMarkets", time.Since(start), err)
	return mkts, err
}

func (r *Runner) fetchFancyMarkets(ctx context.Context, eventID string, marketIDs []string) ([]feed.Market, int64, error) {
	start := time.Now()
	mkts, version, err := r.provider.FetchFancyMarkets(ctx, eventID, marketIDs)
	r.metrics.RecordFetchAttempt("queryDMFancyBetMarkets", time.Since(start), err)
	return mkts, version, err
}
