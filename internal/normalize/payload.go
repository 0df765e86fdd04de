package normalize

import (
	"strconv"
	"strings"
)

// DefaultTotal is used when an upstream listing response carries no usable
// total count. The upstream listing is large; the exact value only feeds the
// pager's page-count estimate.
const DefaultTotal = 50000

var arrayKeys = []string{"data", "items", "tokens", "results"}

var totalKeys = []string{"total", "totalCount", "count"}

// ExtractItems pulls the logical token array out of whatever shape the
// upstream returned: a bare array, an object wrapping one under a known key,
// or a single object (wrapped as a one-element slice). Non-object elements
// are dropped.
func ExtractItems(raw any) []map[string]any {
	switch v := raw.(type) {
	case []any:
		return toObjects(v)
	case map[string]any:
		for _, key := range arrayKeys {
			if arr, ok := v[key].([]any); ok {
				return toObjects(arr)
			}
		}
		return []map[string]any{v}
	}
	return nil
}

// ExtractTotal returns the listing's total count, falling back to
// DefaultTotal for object payloads without one and to the item count for
// bare arrays.
func ExtractTotal(raw any, itemCount int) int64 {
	switch v := raw.(type) {
	case []any:
		return int64(len(v))
	case map[string]any:
		for _, key := range totalKeys {
			if total, ok := numberValue(v[key]); ok && total > 0 {
				return int64(total)
			}
		}
		return DefaultTotal
	}
	return int64(itemCount)
}

func toObjects(arr []any) []map[string]any {
	out := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func firstValue(m map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func firstString(m map[string]any, keys []string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			// Numeric ids and fids arrive as JSON numbers.
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func firstNumber(m map[string]any, keys []string) float64 {
	for _, key := range keys {
		if n, ok := numberValue(m[key]); ok {
			return n
		}
	}
	return 0
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if n == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
