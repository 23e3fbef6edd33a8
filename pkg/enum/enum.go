// Package enum provides total parsing of closed string-valued enumerations.
// Values reported by the native layer may be newer than the set known here,
// so parsing never fails: unrecognized input degrades to a fallback value.
package enum

import (
	"encoding/json"
	"slices"
)

// Parse returns v as a T when it is a member of valid, otherwise fallback.
// Parse is idempotent: parsing an already valid value returns it unchanged.
func Parse[T ~string](v string, valid []T, fallback T) T {
	if slices.Contains(valid, T(v)) {
		return T(v)
	}
	return fallback
}

// Unmarshal decodes a JSON string and parses it against valid.
// Any JSON value that is not a string yields fallback.
func Unmarshal[T ~string](data []byte, valid []T, fallback T) T {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fallback
	}
	return Parse(s, valid, fallback)
}

// Strings converts a slice of enum values to their string form.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
