// Package wickspin implements the upstream exchange client. Every call is
// a form-encoded POST that must look like the browser frontend: the
// upstream rejects requests without the expected headers.
package wickspin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"live-markets-service/internal/domain/markets"
	"live-markets-service/internal/feed"
	"live-markets-service/internal/providers"
)

// sportTypes maps canonical sports to the upstream "type" form value.
var sportTypes = map[markets.Sport]string{
	markets.SportCricket: "1",
	markets.SportTennis:  "2",
	markets.SportSoccer:  "3",
}

// Config controls how the client reaches the upstream exchange.
type Config struct {
	BaseURL    string
	Origin     string
	SessionID  string
	HTTPClient *http.Client
}

// Client fetches events and markets from the exchange API.
type Client struct {
	baseURL    string
	origin     string
	sessionID  string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		origin:     resolveOrigin(cfg.Origin),
		sessionID:  cfg.SessionID,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// FetchEvents retrieves the current event list for one sport. Unknown
// sports map to the cricket type code; the classifier sorts them out
// downstream.
func (c *Client) FetchEvents(ctx context.Context, sport markets.Sport) ([]feed.Event, error) {
	typeCode, ok := sportTypes[sport]
	if !ok {
		typeCode = sportTypes[markets.SportCricket]
	}

	form := url.Values{}
	form.Set("type", typeCode)
	form.Set("eventType", cursorUnset)
	form.Set("competitionTs", cursorUnset)
	form.Set("eventTs", cursorUnset)
	form.Set("marketTs", cursorUnset)
	form.Set("selectionTs", cursorUnset)
	form.Set("collectEventIds", "")

	var payload feed.EventsResponse
	if err := c.postForm(ctx, pathQueryEvents, form, &payload); err != nil {
		return nil, err
	}
	return payload.Events, nil
}

// FetchFullMarkets retrieves the full market book for an event.
func (c *Client) FetchFullMarkets(ctx context.Context, eventID, marketID string) ([]feed.Market, error) {
	form := url.Values{}
	form.Set("eventId", eventID)
	form.Set("marketId", marketID)
	form.Set("selectionTs", strconv.FormatInt(c.now().UnixMilli(), 10))
	form.Set("isGetRunnerMetadata", "false")

	var payload feed.FullMarketResponse
	if err := c.postForm(ctx, pathQueryFullMarkets, form, &payload); err != nil {
		return nil, err
	}
	return payload.Market.Markets, nil
}

// FetchFancyMarkets retrieves the fancy-market delta for an event. With no
// market ids there is nothing to ask for, so the call is skipped and an
// empty delta stamped with the local clock comes back.
func (c *Client) FetchFancyMarkets(ctx context.Context, eventID string, marketIDs []string) ([]feed.Market, int64, error) {
	if len(marketIDs) == 0 {
		return nil, c.now().UnixMilli(), nil
	}

	form := url.Values{}
	form.Set("eventId", eventID)
	form.Set("version", strconv.FormatInt(c.now().UnixMilli(), 10))
	form.Set("oddsType", "1")
	form.Set("marketIds", strings.Join(marketIDs, ","))
	form.Set("isDynamicUpdate", "0")

	var payload feed.FancyResponse
	if err := c.postForm(ctx, pathQueryFancy, form, &payload); err != nil {
		return nil, 0, err
	}
	return payload.Markets, int64(payload.Version), nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", c.origin)
	req.Header.Set("Referer", c.origin+"/")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "JSESSIONID", Value: c.sessionID})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &providers.FetchError{
			Provider:   ProviderName,
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return &providers.FetchError{
			Provider: ProviderName,
			Endpoint: path,
			Message:  "empty response body",
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &providers.FetchError{
			Provider: ProviderName,
			Endpoint: path,
			Message:  "undecodable response: " + err.Error(),
		}
	}
	return nil
}
