package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldSport      = "sport"
	FieldKind       = "kind"
	FieldEventID    = "event_id"
	FieldMarketID   = "market_id"
	FieldCycleID    = "cycle_id"
	FieldSink       = "sink"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
)
