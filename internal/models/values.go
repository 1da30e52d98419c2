package models

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Records arrive as JSON-shaped maps: numbers may be float64, int64 or
// json.Number depending on the store, instants may be RFC 3339 strings or
// epoch milliseconds.

func str(m map[string]any, key string) string {
	return strOr(m, key, "")
}

func strOr(m map[string]any, key, def string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return def
	default:
		return fmt.Sprint(v)
	}
}

func boolOr(m map[string]any, key string, def bool) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func floatOr(m map[string]any, key string, def float64) float64 {
	if f, ok := toFloat(m[key]); ok {
		return f
	}
	return def
}

func intOr(m map[string]any, key string, def int) int {
	if f, ok := toFloat(m[key]); ok {
		return int(math.Round(f))
	}
	return def
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func submap(m map[string]any, key string) map[string]any {
	if sm, ok := m[key].(map[string]any); ok {
		return sm
	}
	return map[string]any{}
}

func stringList(v any) []string {
	switch l := v.(type) {
	case []string:
		return append([]string(nil), l...)
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		// sparse arrays come back as index-keyed objects
		out := make([]string, 0, len(l))
		for _, k := range sortedKeys(l) {
			if s, ok := l[k].(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// ParseTimestamp accepts RFC 3339 strings and epoch milliseconds. A nil value
// yields the zero time.
func ParseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t, nil
	case string:
		if t == "" {
			return time.Time{}, nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, fmt.Errorf("timestamp %q: %w", t, err)
		}
		return parsed, nil
	}
	if ms, ok := toFloat(v); ok {
		return time.UnixMilli(int64(ms)).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("timestamp: unsupported type %T", v)
}

func timeAt(m map[string]any, key string) (time.Time, error) {
	t, err := ParseTimestamp(m[key])
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}

// FormatTimestamp is the persisted form of an instant; zero instants are
// omitted by callers.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func putTime(m map[string]any, key string, t time.Time) {
	if !t.IsZero() {
		m[key] = FormatTimestamp(t)
	}
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}

func mapList(v any) []map[string]any {
	var items []any
	switch l := v.(type) {
	case []any:
		items = l
	case []map[string]any:
		return l
	case map[string]any:
		for _, k := range sortedKeys(l) {
			items = append(items, l[k])
		}
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
