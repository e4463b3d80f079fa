package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Details maps category-specific attribute names (vin, serialNumber, ...) to
// free text. Keys outside the category's declared field list are kept so
// records written by newer clients survive a round trip.
type Details map[string]string

// Get returns the value for key, or "" when absent.
func (d Details) Get(key string) string {
	if d == nil {
		return ""
	}
	return d[key]
}

// UnmarshalJSON accepts numbers, booleans, and nested values written by older
// clients and stores their text form. Null entries are dropped.
func (d *Details) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = nil
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Details, len(raw))
	for k, v := range raw {
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			continue
		}
		out[k] = rawToString(v)
	}
	*d = out
	return nil
}

// rawToString renders a raw JSON value as text: strings are unquoted, numbers
// keep their literal digits, anything else keeps its compact JSON form.
func rawToString(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return strings.TrimSpace(string(v))
	}
	return buf.String()
}
