package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrEndpoint = "endpoint"
	AttrSport    = "sport"
	AttrKind     = "kind"
	AttrSink     = "sink"
	AttrTarget   = "target"
)
