package cache

import "fmt"

// Keyspace builds the colon-delimited keys under which records are cached.
// The layout is {prefix}_{sport}_premium:{kind}:{id}, one namespace per
// sport so a whole generation can be matched with a single pattern.
type Keyspace struct {
	prefix string
}

// NewKeyspace constructs a Keyspace with the given prefix (e.g. "in_play").
func NewKeyspace(prefix string) Keyspace {
	return Keyspace{prefix: prefix}
}

// Key builds the cache key for one record.
func (k Keyspace) Key(sport, kind, id string) string {
	return fmt.Sprintf("%s:%s:%s", k.namespace(sport), kind, id)
}

// Pattern builds the glob matching every key of a sport/kind pair.
func (k Keyspace) Pattern(sport, kind string) string {
	return fmt.Sprintf("%s:%s:*", k.namespace(sport), kind)
}

func (k Keyspace) namespace(sport string) string {
	return fmt.Sprintf("%s_%s_premium", k.prefix, sport)
}
