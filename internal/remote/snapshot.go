package remote

import "sort"

// Snapshot is an immutable view of the value at a path.
type Snapshot struct {
	Key   string
	Value any
}

func (s Snapshot) Exists() bool {
	return s.Value != nil
}

func (s Snapshot) Child(key string) Snapshot {
	m, _ := s.Value.(map[string]any)
	return Snapshot{Key: key, Value: m[key]}
}

// Children lists direct children ordered by key. Scalars have none.
func (s Snapshot) Children() []Snapshot {
	m, ok := s.Value.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Snapshot, 0, len(keys))
	for _, k := range keys {
		out = append(out, Snapshot{Key: k, Value: m[k]})
	}
	return out
}
