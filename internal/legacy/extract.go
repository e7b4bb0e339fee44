// Package legacy unwraps values carried over from the original document-store
// export. Orders migrated from that system arrive with extended-JSON wrappers
// around numbers, object ids and dates; everything written by this service is
// native JSON, so the unwrapping only matters for historical payloads.
package legacy

import (
	"strconv"
	"time"
)

// Value returns the native scalar behind an extended-JSON wrapper.
// Native scalars pass through untouched, and unrecognized object shapes are
// returned as-is rather than dropped.
func Value(v any) any {
	wrapped, ok := v.(map[string]any)
	if !ok {
		return v
	}

	if raw, ok := wrapped["$numberInt"]; ok {
		if n, ok := parseNumber(raw); ok {
			return n
		}
		return v
	}
	if raw, ok := wrapped["$numberLong"]; ok {
		if n, ok := parseNumber(raw); ok {
			return n
		}
		return v
	}
	if raw, ok := wrapped["$numberDouble"]; ok {
		if n, ok := parseNumber(raw); ok {
			return n
		}
		return v
	}
	if raw, ok := wrapped["$oid"]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
		return v
	}
	if raw, ok := wrapped["$date"]; ok {
		if t, ok := parseDate(raw); ok {
			return t
		}
		return v
	}

	return v
}

// Number unwraps v and coerces it to a float64, returning 0 for anything
// that is not numeric.
func Number(v any) float64 {
	switch value := Value(v).(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	case string:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// String unwraps v and coerces it to a string. Numbers are formatted without
// an exponent; non-scalar values yield "".
func String(v any) string {
	switch value := Value(v).(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return ""
	}
}

func parseNumber(raw any) (float64, bool) {
	switch value := raw.(type) {
	case string:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case float64:
		return value, true
	default:
		return 0, false
	}
}

func parseDate(raw any) (time.Time, bool) {
	switch value := raw.(type) {
	case string:
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	case map[string]any:
		// $date may itself wrap a long of epoch millis.
		if inner, ok := value["$numberLong"]; ok {
			if millis, ok := parseNumber(inner); ok {
				return time.UnixMilli(int64(millis)).UTC(), true
			}
		}
		return time.Time{}, false
	case float64:
		return time.UnixMilli(int64(value)).UTC(), true
	default:
		return time.Time{}, false
	}
}
