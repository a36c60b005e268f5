package persist

import (
	"context"
	"encoding/json"

	"live-markets-service/internal/domain/markets"
)

// VerifyReport summarizes one read-back pass over a sport's cached records.
type VerifyReport struct {
	Checked int
	Issues  int
}

// Verify samples up to limit records per kind from each sink for a sport,
// decodes each, and counts integrity issues. An issue is a record that
// fails to decode or lacks its identity fields. Verification only reports;
// it never repairs or deletes.
func (p *Persister) Verify(ctx context.Context, sport markets.Sport, limit int) (VerifyReport, error) {
	var report VerifyReport
	for _, kind := range []string{KindMatch, KindPremium, KindFancy} {
		keys, err := p.cache.Keys(ctx, p.keys.Pattern(string(sport), kind))
		if err != nil {
			return report, err
		}
		if limit > 0 && len(keys) > limit {
			keys = keys[:limit]
		}
		for _, key := range keys {
			report.Checked++
			data, err := p.cache.Get(ctx, key)
			if err != nil {
				report.Issues++
				continue
			}
			if !recordIntact(kind, data) {
				report.Issues++
			}
		}

		ids, err := p.files.List(string(sport), kind)
		if err != nil {
			return report, err
		}
		if limit > 0 && len(ids) > limit {
			ids = ids[:limit]
		}
		for _, id := range ids {
			report.Checked++
			var raw json.RawMessage
			if err := p.files.Read(string(sport), kind, id, &raw); err != nil {
				report.Issues++
				continue
			}
			if !recordIntact(kind, raw) {
				report.Issues++
			}
		}
	}
	return report, nil
}

func recordIntact(kind string, data []byte) bool {
	switch kind {
	case KindMatch:
		var m markets.Match
		if err := json.Unmarshal(data, &m); err != nil {
			return false
		}
		return m.MatchID != "" && m.Title != "" && m.Sport != "" && m.SiteURL != ""
	case KindPremium:
		var mkts []markets.Market
		if err := json.Unmarshal(data, &mkts); err != nil {
			return false
		}
		for _, m := range mkts {
			if m.MarketID == "" {
				return false
			}
		}
		return true
	case KindFancy:
		var coll markets.MarketCollection
		return json.Unmarshal(data, &coll) == nil
	default:
		return false
	}
}
