package teststubs

import (
	"context"
	"sync"

	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/feed"
)

// FeedStub is a scriptable upstream provider. Err, when set, fails every
// call; FailFirst fails the first N calls and then succeeds.
type FeedStub struct {
	mu sync.Mutex

	Events       map[markets.Sport][]feed.Event
	FullMarkets  map[string][]feed.Market
	FancyMarkets map[string][]feed.Market
	FancyVersion int64

	Err       error
	FailFirst int

	Calls int
}

// NewFeedStub returns an empty stub.
func NewFeedStub() *FeedStub {
	return &FeedStub{
		Events:       map[markets.Sport][]feed.Event{},
		FullMarkets:  map[string][]feed.Market{},
		FancyMarkets: map[string][]feed.Market{},
	}
}

func (s *FeedStub) fail() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return s.Err
	}
	if s.FailFirst > 0 {
		s.FailFirst--
		return ErrDown
	}
	return nil
}

func (s *FeedStub) FetchEvents(_ context.Context, sport markets.Sport) ([]feed.Event, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.Events[sport], nil
}

func (s *FeedStub) FetchFullMarkets(_ context.Context, eventID, _ string) ([]feed.Market, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.FullMarkets[eventID], nil
}

func (s *FeedStub) FetchFancyMarkets(_ context.Context, eventID string, _ []string) ([]feed.Market, int64, error) {
	if err := s.fail(); err != nil {
		return nil, 0, err
	}
	return s.FancyMarkets[eventID], s.FancyVersion, nil
}
