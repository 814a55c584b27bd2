package extract

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount coerces a raw amount-bearing string into a canonical currency
// value: "$1,234.50" -> 1234.50. Empty input and non-numeric residue yield
// nil, never an error. Feeding the canonical form back in returns the same
// value, so the coercion is idempotent.
func ParseAmount(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// CoerceAmount accepts already-numeric values as pass-through and strings via
// ParseAmount. Non-finite numbers and anything else yield nil.
func CoerceAmount(v any) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case *float64:
		if t == nil || math.IsNaN(*t) || math.IsInf(*t, 0) {
			return nil
		}
		f := *t
		return &f
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return &t
	case int:
		f := float64(t)
		return &f
	case string:
		return ParseAmount(t)
	default:
		return nil
	}
}
