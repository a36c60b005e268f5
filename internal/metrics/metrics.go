package metrics

import (
	"sync"
	"time"
)

type fetchStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about the pipeline.
// It is intentionally simple so it can be swapped for a real backend later.
// All methods are safe on a nil Recorder.
type Recorder struct {
	mu          sync.Mutex
	fetches     map[string]*fetchStats
	cycles      int
	cycleErrors int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		fetches: make(map[string]*fetchStats),
		otel:    otel,
	}
}

// RecordFetchAttempt increments counters for one upstream call and stores
// the last observed latency.
func (r *Recorder) RecordFetchAttempt(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(endpoint)
	r.mu.Lock()
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetchAttempt(endpoint, duration, err)
	}
}

// RecordCycle tracks one full refresh cycle.
func (r *Recorder) RecordCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cycles++
	if err != nil {
		r.cycleErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCycle(duration, err)
	}
}

// RecordPersisted counts records written for a sport/kind pair.
func (r *Recorder) RecordPersisted(sport, kind string, count int) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPersisted(sport, kind, count)
}

// RecordPersistError counts a failed write to one sink.
func (r *Recorder) RecordPersistError(sink string) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPersistError(sink)
}

// RecordIntegrityIssues counts read-back verification failures for a sport.
func (r *Recorder) RecordIntegrityIssues(sport string, count int) {
	if r == nil || r.otel == nil || count == 0 {
		return
	}
	r.otel.recordIntegrityIssues(sport, count)
}

// RecordEviction counts records removed from one retention target.
func (r *Recorder) RecordEviction(target string, count int) {
	if r == nil || r.otel == nil || count == 0 {
		return
	}
	r.otel.recordEviction(target, count)
}

// Snapshot is a copy of the in-memory stats for one endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.fetches[endpoint]; ok && stats != nil {
		return Snapshot{
			Calls:           stats.calls,
			Errors:          stats.errors,
			LastCallLatency: stats.lastCallLatency,
		}
	}
	return Snapshot{}
}

// FetchCalls returns the total attempts recorded for an endpoint.
func (r *Recorder) FetchCalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// FetchErrors returns the total failed attempts recorded for an endpoint.
func (r *Recorder) FetchErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// Cycles returns how many refresh cycles ran and how many ended in error.
func (r *Recorder) Cycles() (total, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles, r.cycleErrors
}

func (r *Recorder) ensureStats(endpoint string) *fetchStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.fetches[endpoint]
	if !ok {
		stats = &fetchStats{}
		r.fetches[endpoint] = stats
	}
	return stats
}
