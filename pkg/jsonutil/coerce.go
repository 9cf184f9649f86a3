package jsonutil

import (
	"fmt"
	"strconv"
	"strings"
)

// CoerceString converts a decoded JSON value (any) to its string form using
// the same rules as FlexibleStringValue. Returns empty string for nil.
func CoerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// CoerceInt extracts an integer from a decoded JSON value. String values are
// scanned for their first run of digits, so "$29/mo" yields 29. Returns def
// when no integer can be recovered.
func CoerceInt(v any, def int) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		start := -1
		for i := 0; i < len(val); i++ {
			if val[i] >= '0' && val[i] <= '9' {
				start = i
				break
			}
		}
		if start == -1 {
			return def
		}
		end := start
		for end < len(val) && val[end] >= '0' && val[end] <= '9' {
			end++
		}
		n, err := strconv.Atoi(val[start:end])
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

// CoerceStringSlice converts a decoded JSON array to a slice of strings,
// coercing each element. Non-array values yield nil.
func CoerceStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s := strings.TrimSpace(CoerceString(item))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CoerceMapSlice converts a decoded JSON array to a slice of objects,
// skipping elements that are not objects.
func CoerceMapSlice(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
