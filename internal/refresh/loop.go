package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"live-markets-service/internal/logging"
)

const defaultInterval = 5 * time.Second

// Loop runs refresh cycles on a fixed interval until stopped.
type Loop struct {
	runner   *Runner
	logger   *slog.Logger
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the loop has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// NewLoop constructs a Loop with sane defaults.
func NewLoop(runner *Runner, logger *slog.Logger, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Loop{
		runner:   runner,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (l *Loop) Start(ctx context.Context) {
	l.startMu.Lock()
	if l.started {
		l.startMu.Unlock()
		return
	}
	l.started = true
	l.startMu.Unlock()

	l.ticker = time.NewTicker(l.interval)

	go func() {
		l.logInfo("refresh loop started", slog.Int64(logging.FieldDurationMS, l.interval.Milliseconds()))
		// Initial cycle to warm both sinks on boot.
		l.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				l.stopTicker()
				l.logInfo("refresh loop stopped")
				return
			case <-l.done:
				l.stopTicker()
				l.logInfo("refresh loop stopped")
				return
			case <-l.ticker.C:
				l.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (l *Loop) Stop(ctx context.Context) error {
	_ = ctx
	l.stopOnce.Do(func() {
		close(l.done)
		l.stopTicker()
	})
	return nil
}

func (l *Loop) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	l.recordAttempt(start)

	_, err := l.runner.RunCycle(ctx)
	if err != nil {
		l.recordFailure(err, start)
		l.logError("refresh cycle failed", err)
		return
	}
	l.recordSuccess(start)
}

func (l *Loop) stopTicker() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
}

func (l *Loop) logInfo(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l *Loop) logError(msg string, err error) {
	if l.logger != nil {
		l.logger.Error(msg, "error", err)
	}
}

func (l *Loop) recordAttempt(at time.Time) {
	l.statusMu.Lock()
	defer l.statusMu.Unlock()
	l.status.LastAttempt = at
}

func (l *Loop) recordSuccess(at time.Time) {
	l.statusMu.Lock()
	defer l.statusMu.Unlock()
	l.status.ConsecutiveFailures = 0
	l.status.LastError = ""
	l.status.LastSuccess = at
}

func (l *Loop) recordFailure(err error, at time.Time) {
	l.statusMu.Lock()
	defer l.statusMu.Unlock()
	l.status.ConsecutiveFailures++
	if err != nil {
		l.status.LastError = err.Error()
	}
	l.status.LastAttempt = at
}

// Status returns a snapshot of the loop's recent health.
func (l *Loop) Status() Status {
	l.statusMu.RLock()
	defer l.statusMu.RUnlock()
	return l.status
}
