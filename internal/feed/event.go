package feed

import (
	"bytes"
	"encoding/json"
)

// Event is one upstream record from the queryEvents endpoint. Only the
// fields the pipeline reads are declared; the rest of the record is opaque.
type Event struct {
	EventID         Text        `json:"eventId"`
	EventName       string      `json:"eventName"`
	CompetitionID   Text        `json:"competitionId"`
	CompetitionName string      `json:"competitionName"`
	OpenDate        Int64       `json:"openDate"`
	OpenDateTime    Int64       `json:"openDateTime"`
	IsInPlay        Flag        `json:"isInPlay"`
	Market          MarketField `json:"market"`
	Markets         []Market    `json:"markets"`
}

// PrimaryMarket resolves the event's market field to a single market:
// the first market delivered, or false when the event carries none.
// The upstream sends `market` as an object or a list, and some variants
// use a separate `markets` list instead.
func (e Event) PrimaryMarket() (Market, bool) {
	if len(e.Market.Markets) > 0 {
		return e.Market.Markets[0], true
	}
	if len(e.Markets) > 0 {
		return e.Markets[0], true
	}
	return Market{}, false
}

// StartMillis returns the event start as a millisecond epoch, preferring
// openDateTime over openDate. Zero when neither is present.
func (e Event) StartMillis() int64 {
	if e.OpenDateTime != 0 {
		return int64(e.OpenDateTime)
	}
	return int64(e.OpenDate)
}

// MarketField is the tagged union behind the `market` field: a single
// object, a list, or absent. It always decodes to a list.
type MarketField struct {
	Markets []Market
}

func (m *MarketField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		m.Markets = nil
		return nil
	}
	switch data[0] {
	case '[':
		return json.Unmarshal(data, &m.Markets)
	case '{':
		var one Market
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		m.Markets = []Market{one}
		return nil
	default:
		// Some feed variants ship an empty string placeholder here.
		m.Markets = nil
		return nil
	}
}

// Market is an upstream market record as delivered by queryEvents,
// queryFullMarkets and the fancy endpoint.
type Market struct {
	MarketID     Text        `json:"marketId"`
	MarketName   string      `json:"marketName"`
	EventName    string      `json:"eventName"`
	TotalMatched Number      `json:"totalMatched"`
	Status       string      `json:"status"`
	Suspended    Flag        `json:"suspended"`
	Visible      *bool       `json:"visible"`
	Removed      Flag        `json:"removed"`
	Version      Int64       `json:"version"`
	Selections   []Selection `json:"selections"`
}

// Selection is one runner inside an upstream market.
type Selection struct {
	SelectionID     Text      `json:"selectionId"`
	RunnerName      string    `json:"runnerName"`
	Status          Int64     `json:"status"`
	AvailableToBack LevelList `json:"availableToBack"`
	AvailableToLay  LevelList `json:"availableToLay"`
	LastPriceTraded Number    `json:"lastPriceTraded"`
	TotalMatched    Number    `json:"totalMatched"`
}

// Level is one price rung of a back or lay ladder.
type Level struct {
	Price Number `json:"price"`
	Size  Number `json:"size"`
}

// LevelList decodes a ladder that arrives as a list or as a single object
// (normalized to a one-element list).
type LevelList []Level

func (l *LevelList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	switch data[0] {
	case '[':
		var levels []Level
		if err := json.Unmarshal(data, &levels); err != nil {
			return err
		}
		*l = levels
		return nil
	case '{':
		var one Level
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*l = LevelList{one}
		return nil
	default:
		*l = nil
		return nil
	}
}

// EventsResponse is the envelope returned by queryEvents.
type EventsResponse struct {
	Events []Event `json:"events"`
}

// FullMarketResponse is the envelope returned by queryFullMarkets.
type FullMarketResponse struct {
	Market MarketField `json:"market"`
}

// FancyResponse is the envelope returned by the fancy markets endpoint.
// Markets is a delta: only changed markets are present, and removed ones
// carry a tombstone flag.
type FancyResponse struct {
	Markets []Market        `json:"dmFancyBetMarkets"`
	Event   json.RawMessage `json:"dmFancyBetEvent"`
	Version Int64           `json:"version"`
}
