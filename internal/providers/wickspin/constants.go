package wickspin

import "time"

const (
	// ProviderName tags errors and logs from this client.
	ProviderName = "wickspin"

	defaultBaseURL     = "https://apiplayer.wickspin24.live/exchange/member"
	defaultOrigin      = "https://www.wickspin24.live"
	defaultHTTPTimeout = 10 * time.Second

	pathQueryEvents      = "/playerService/queryEvents"
	pathQueryFullMarkets = "/playerService/queryFullMarkets"
	pathQueryFancy       = "/playerService/queryDMFancyBetMarkets"

	// cursorUnset asks the upstream for a full snapshot rather than a
	// delta since a previous timestamp.
	cursorUnset = "-1"
)
