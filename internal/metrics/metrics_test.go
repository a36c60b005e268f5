package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksFetches(t *testing.T) {
	r := NewRecorder()

	r.RecordFetchAttempt("queryEvents", 120*time.Millisecond, nil)
	r.RecordFetchAttempt("queryEvents", 80*time.Millisecond, errors.New("boom"))
	r.RecordFetchAttempt("queryFullMarkets", 50*time.Millisecond, nil)

	if got := r.FetchCalls("queryEvents"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := r.FetchErrors("queryEvents"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	snap := r.Snapshot("queryEvents")
	if snap.LastCallLatency != 80*time.Millisecond {
		t.Fatalf("unexpected last latency %v", snap.LastCallLatency)
	}
	if got := r.FetchCalls("queryFullMarkets"); got != 1 {
		t.Fatalf("expected 1 call, got %d", got)
	}
}

func TestRecorderTracksCycles(t *testing.T) {
	r := NewRecorder()

	r.RecordCycle(time.Second, nil)
	r.RecordCycle(time.Second, errors.New("partial"))

	total, failed := r.Cycles()
	if total != 2 || failed != 1 {
		t.Fatalf("unexpected cycle counts total=%d failed=%d", total, failed)
	}
}

func TestRecorderNilSafety(t *testing.T) {
	var r *Recorder

	r.RecordFetchAttempt("queryEvents", time.Second, nil)
	r.RecordCycle(time.Second, nil)
	r.RecordPersisted("cricket", "match", 3)
	r.RecordPersistError("cache")
	r.RecordIntegrityIssues("cricket", 1)
	r.RecordEviction("file", 2)

	if got := r.FetchCalls("queryEvents"); got != 0 {
		t.Fatalf("nil recorder must report zero, got %d", got)
	}
	if total, failed := r.Cycles(); total != 0 || failed != 0 {
		t.Fatalf("nil recorder must report zero cycles, got %d/%d", total, failed)
	}
}

func TestSnapshotUnknownEndpoint(t *testing.T) {
	r := NewRecorder()
	if snap := r.Snapshot("never-called"); snap != (Snapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}
