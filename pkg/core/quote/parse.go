package quote

import (
	"math"
	"strconv"
	"strings"
)

// ParseValue normalizes a heterogeneous API field into a clean float or nil.
// Upstream payloads mix plain numbers, suffixed magnitude strings ("1.2B",
// "45,000"), percentage strings, and the provider's {raw, fmt} object
// convention. Invalid input always yields nil, never an error or NaN, so
// callers can apply their own missing-data policy.
func ParseValue(value interface{}) *float64 {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		return finiteOrNil(v)
	case float32:
		return finiteOrNil(float64(v))
	case int:
		return finiteOrNil(float64(v))
	case int64:
		return finiteOrNil(float64(v))
	case map[string]interface{}:
		// {raw: 1234.5, fmt: "1.23K"} provider convention
		if raw, ok := v["raw"]; ok {
			switch r := raw.(type) {
			case float64:
				return finiteOrNil(r)
			case int:
				return finiteOrNil(float64(r))
			}
		}
		return nil
	case string:
		return parseString(v)
	default:
		return nil
	}
}

func parseString(s string) *float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" {
		return nil
	}

	num, consumed := leadingFloat(cleaned)
	if consumed == 0 {
		// no numeric prefix at all ("N/A", "--")
		return nil
	}

	// Trailing magnitude suffix multiplies the numeric part.
	switch strings.ToUpper(cleaned[len(cleaned)-1:]) {
	case "T":
		num *= 1e12
	case "B":
		num *= 1e9
	case "M":
		num *= 1e6
	}

	return finiteOrNil(num)
}

// leadingFloat parses the longest float prefix of s, returning the value and
// the number of bytes consumed (0 if none).
func leadingFloat(s string) (float64, int) {
	end := 0
scan:
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c == '.', c == 'e', c == 'E':
			end = i + 1
		case (c == '+' || c == '-') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
			end = i + 1
		default:
			break scan
		}
	}
	// Trim a trailing non-parseable tail (e.g. "1.5e" left by "1.5e").
	for end > 0 {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v, end
		}
		end--
	}
	return 0, 0
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Float returns the dereferenced value or 0 when nil. Engines use it where a
// missing field should behave as zero rather than abort.
func Float(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Positive reports whether v is present and strictly greater than zero.
func Positive(v *float64) bool {
	return v != nil && *v > 0
}
