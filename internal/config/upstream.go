package config

import "time"

const (
	envUpstreamBaseURL = "UPSTREAM_BASE_URL"
	envUpstreamOrigin  = "UPSTREAM_ORIGIN"
	envUpstreamSession = "UPSTREAM_SESSION_ID"
	envFetchRetries    = "FETCH_MAX_RETRIES"
	envFetchBackoff    = "FETCH_RETRY_BACKOFF"

	defaultUpstreamBaseURL = "https://apiplayer.wickspin24.live/exchange/member"
	defaultFetchRetries    = 3
	defaultFetchBackoff    = 200 * Duration(time.Millisecond)
)

// UpstreamConfig controls how we talk to the exchange API.
type UpstreamConfig struct {
	BaseURL      string
	Origin       string
	SessionID    string
	MaxRetries   int
	RetryBackoff Duration
}

func loadUpstream() UpstreamConfig {
	return UpstreamConfig{
		BaseURL:      envOrDefault(envUpstreamBaseURL, defaultUpstreamBaseURL),
		Origin:       envOrDefault(envUpstreamOrigin, ""),
		SessionID:    envOrDefault(envUpstreamSession, ""),
		MaxRetries:   intEnvOrDefault(envFetchRetries, defaultFetchRetries),
		RetryBackoff: durationEnvOrDefault(envFetchBackoff, defaultFetchBackoff),
	}
}
