package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary input that tolerates sloppy client data: it decodes
// from a JSON number or a numeric string. Strings keep their leading numeric
// part ("1500abc" is 1500, "1,000" is 1), and input with no number at all
// becomes 0 instead of failing the request.
type Amount float64

// Float returns the amount as a float64.
func (a Amount) Float() float64 {
	return float64(a)
}

// ParseAmount converts free text into an amount, yielding 0 when s does not
// start with a number.
func ParseAmount(s string) Amount {
	a, _ := parseAmount(s)
	return a
}

// parseAmount reports whether s starts with a finite number.
func parseAmount(s string) (Amount, bool) {
	prefix := numericPrefix(strings.TrimSpace(s))
	if prefix == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return 0, false
	}
	f := d.InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return Amount(f), true
}

// numericPrefix returns the longest leading decimal literal of s: an optional
// sign, digits with at most one point, and an optional exponent.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return strings.TrimSuffix(s[:i], ".")
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// decodeAmount decodes a raw JSON value, reporting whether it held a number.
func decodeAmount(data []byte) (Amount, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		return parseAmount(s)
	}
	return parseAmount(string(data))
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a, _ = decodeAmount(data)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// UnmarshalJSON implements json.Unmarshaler. A currentValue that is blank or
// not a number is treated as absent, so the asset starts at its purchase price.
func (d *AssetDraft) UnmarshalJSON(data []byte) error {
	type draft AssetDraft
	aux := struct {
		*draft
		CurrentValue json.RawMessage `json:"currentValue"`
	}{draft: (*draft)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.CurrentValue = nil
	if v, ok := decodeAmount(aux.CurrentValue); ok {
		d.CurrentValue = &v
	}
	return nil
}
