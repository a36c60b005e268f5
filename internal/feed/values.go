// Package feed holds the upstream wire shapes. The API is inconsistent about
// types (numbers as strings, objects where lists are expected, fields simply
// absent), so every ambiguity is resolved here, once, at the decoding
// boundary. Downstream code never branches on payload shape.
package feed

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number decodes a JSON number that may arrive as a number, a numeric
// string, null, or be malformed. Anything unparsable decodes to zero;
// upstream price/size noise must never fail normalization.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number(parseFloat(data))
	return nil
}

// Int64 behaves like Number for integral fields such as version stamps
// and millisecond timestamps.
type Int64 int64

func (i *Int64) UnmarshalJSON(data []byte) error {
	*i = Int64(parseFloat(data))
	return nil
}

// Text decodes a field that may arrive as a string or a bare number.
// Identifiers come both ways depending on the feed variant.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
		return nil
	}
	*t = Text(string(data))
	return nil
}

// Flag decodes a boolean that may arrive as 1/0, "1"/"0" or true/false.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*f = true
	case bytes.Equal(data, []byte(`"true"`)):
		*f = true
	default:
		*f = parseFloat(data) == 1
	}
	return nil
}

func parseFloat(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
