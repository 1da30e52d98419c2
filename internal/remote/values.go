package remote

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ServerTimestamp is replaced by the store's clock, in epoch milliseconds,
// when the write is applied.
var ServerTimestamp = map[string]any{".sv": "timestamp"}

func isServerTimestamp(v any) bool {
	m, ok := v.(map[string]any)
	return ok && len(m) == 1 && m[".sv"] == "timestamp"
}

// NewPushKey returns a unique key that sorts after every key generated
// before it.
func NewPushKey() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Normalize resolves server values against now and converts v into the
// JSON shapes the stores hold: maps, slices, strings, float64 and bools.
func Normalize(v any, now time.Time) (any, error) {
	resolved := resolve(v, now.UnixMilli())
	raw, err := json.Marshal(resolved)
	if err != nil {
		return nil, fmt.Errorf("remote: encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("remote: decode value: %w", err)
	}
	return prune(out), nil
}

func resolve(v any, millis int64) any {
	if isServerTimestamp(v) {
		return millis
	}
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = resolve(child, millis)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = resolve(child, millis)
		}
		return out
	}
	return v
}

// prune drops null members and empty objects, which the tree never stores.
func prune(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for k, child := range m {
		child = prune(child)
		if child == nil {
			delete(m, k)
			continue
		}
		m[k] = child
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// Clone deep-copies a normalized value.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = Clone(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = Clone(child)
		}
		return out
	}
	return v
}

// GetAt reads the value at segs below root.
func GetAt(root any, segs []string) any {
	cur := root
	for _, s := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[s]
	}
	return cur
}

// SetAt returns root with the value at segs replaced. Intermediate objects
// are created as needed and emptied ones are removed.
func SetAt(root any, segs []string, v any) any {
	if len(segs) == 0 {
		return v
	}
	m, ok := root.(map[string]any)
	if !ok {
		m = map[string]any{}
	}
	child := SetAt(m[segs[0]], segs[1:], v)
	if child == nil {
		delete(m, segs[0])
	} else {
		m[segs[0]] = child
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
