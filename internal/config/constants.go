package config

import "time"

const (
	envProvider        = "PROVIDER"
	envRefreshInterval = "REFRESH_INTERVAL"
	envSports          = "SPORTS"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"

	defaultProvider = "wickspin"
	// The upstream frontend refreshes every second; polling slower than a
	// few seconds makes in-play odds visibly stale.
	defaultRefreshInterval = 5 * Duration(time.Second)
	defaultSports          = "cricket,tennis,soccer"
	defaultMetricsPort     = "9090"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
)
