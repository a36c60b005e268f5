package wickspin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/providers"
)

func TestFetchEventsPostsSportForm(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != pathQueryEvents {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %s", ct)
		}
		if xr := r.Header.Get("X-Requested-With"); xr != "XMLHttpRequest" {
			t.Errorf("missing browser header, got %q", xr)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Write([]byte(`{"events":[{"eventId":"501","eventName":"India v Australia","isInPlay":1}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	events, err := c.FetchEvents(context.Background(), markets.SportTennis)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(events) != 1 || string(events[0].EventID) != "501" {
		t.Fatalf("unexpected events %+v", events)
	}
	if gotForm["type"] != "2" {
		t.Fatalf("tennis must send type=2, got %q", gotForm["type"])
	}
	for _, cursor := range []string{"competitionTs", "eventTs", "marketTs", "selectionTs"} {
		if gotForm[cursor] != "-1" {
			t.Fatalf("cursor %s not reset: %q", cursor, gotForm[cursor])
		}
	}
}

func TestFetchFullMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathQueryFullMarkets {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		r.ParseForm()
		if r.PostForm.Get("eventId") != "501" || r.PostForm.Get("marketId") != "1.23" {
			t.Errorf("unexpected form %v", r.PostForm)
		}
		if r.PostForm.Get("isGetRunnerMetadata") != "false" {
			t.Errorf("runner metadata flag missing")
		}
		w.Write([]byte(`{"market":{"marketId":"1.23","marketName":"Match Odds"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	mkts, err := c.FetchFullMarkets(context.Background(), "501", "1.23")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(mkts) != 1 || string(mkts[0].MarketID) != "1.23" {
		t.Fatalf("unexpected markets %+v", mkts)
	}
}

func TestFetchFancyMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathQueryFancy {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		r.ParseForm()
		if r.PostForm.Get("marketIds") != "9.1,9.2" {
			t.Errorf("unexpected marketIds %q", r.PostForm.Get("marketIds"))
		}
		w.Write([]byte(`{"dmFancyBetMarkets":[{"marketId":"9.1"},{"marketId":"9.2","removed":1}],"version":777}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	mkts, version, err := c.FetchFancyMarkets(context.Background(), "501", []string{"9.1", "9.2"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if version != 777 {
		t.Fatalf("expected version 777, got %d", version)
	}
	if len(mkts) != 2 || !bool(mkts[1].Removed) {
		t.Fatalf("unexpected markets %+v", mkts)
	}
}

func TestFetchFancyMarketsSkipsEmptyRequest(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:0"})
	c.now = func() time.Time { return time.UnixMilli(12345) }

	mkts, version, err := c.FetchFancyMarkets(context.Background(), "501", nil)
	if err != nil {
		t.Fatalf("expected no call and no error, got %v", err)
	}
	if len(mkts) != 0 || version != 12345 {
		t.Fatalf("unexpected result %v %d", mkts, version)
	}
}

func TestFetchEventsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session expired", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchEvents(context.Background(), markets.SportCricket)
	fe, ok := providers.AsFetchError(err)
	if !ok {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusForbidden || fe.Provider != ProviderName {
		t.Fatalf("unexpected error detail %+v", fe)
	}
}

func TestFetchEventsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchEvents(context.Background(), markets.SportCricket)
	if _, ok := providers.AsFetchError(err); !ok {
		t.Fatalf("expected FetchError for empty body, got %v", err)
	}
}

func TestSessionCookieAttached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("JSESSIONID")
		if err != nil || cookie.Value != "abc123" {
			t.Errorf("session cookie missing: %v", err)
		}
		w.Write([]byte(`{"events":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, SessionID: "abc123"})
	if _, err := c.FetchEvents(context.Background(), markets.SportCricket); err != nil {
		t.Fatalf("fetch: %v", err)
	}
}
