package refresh

import (
	"context"
	"testing"
	"time"

	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/feed"
	"live-markets-service/internal/teststubs"
)

func TestLoopRunsAndStops(t *testing.T) {
	stub := teststubs.NewFeedStub()
	stub.Events[markets.SportCricket] = []feed.Event{liveCricketEvent()}

	h := newHarness(t, stub)
	loop := NewLoop(h.runner, nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop.Start(ctx)

	deadline := time.After(2 * time.Second)
	for {
		if loop.Status().IsReady() {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("loop never became ready: %+v", loop.Status())
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := loop.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	// Stop twice is safe.
	if err := loop.Stop(context.Background()); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestLoopTracksFailures(t *testing.T) {
	stub := teststubs.NewFeedStub()
	stub.Err = teststubs.ErrDown

	h := newHarness(t, stub)
	loop := NewLoop(h.runner, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop.Start(ctx)

	deadline := time.After(2 * time.Second)
	for {
		status := loop.Status()
		if status.ConsecutiveFailures > 0 {
			if status.IsReady() {
				t.Fatal("failing loop must not report ready")
			}
			if status.LastError == "" {
				t.Fatal("last error missing")
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("failure never recorded")
		case <-time.After(5 * time.Millisecond):
		}
	}

	loop.Stop(context.Background())
}

func TestStatusReadiness(t *testing.T) {
	if (Status{}).IsReady() {
		t.Fatal("zero status must not be ready")
	}
	s := Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}
	if !s.IsReady() {
		t.Fatal("two failures with a past success is still ready")
	}
	s.ConsecutiveFailures = 3
	if s.IsReady() {
		t.Fatal("three consecutive failures must trip readiness")
	}
}
