package domain

import (
	"strconv"
	"strings"
)

// ParsePercent accepts a 0-1 fraction, a 0-100 percent value, or a string
// like "20%" and normalizes to a 0-1 fraction.
func ParsePercent(v interface{}) (frac float64, ok bool) {
	switch t := v.(type) {
	case float64:
		return normalizePercent(t), true
	case int:
		return normalizePercent(float64(t)), true
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimSuffix(s, "%")
		s = strings.ReplaceAll(s, ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		if strings.HasSuffix(strings.TrimSpace(t), "%") {
			return f / 100, true
		}
		return normalizePercent(f), true
	default:
		return 0, false
	}
}

func normalizePercent(f float64) float64 {
	if f > 1 {
		return f / 100
	}
	return f
}

// ValidatePercent reports whether a 0-1 fraction is within bounds.
func ValidatePercent(frac float64) (ok bool, message string) {
	if frac < 0 {
		return false, "percentage cannot be negative"
	}
	if frac > 1.0001 {
		return false, "percentage exceeds 100%"
	}
	return true, ""
}
