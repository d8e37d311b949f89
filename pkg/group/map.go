package group

import (
	"github.com/l7mp/relate/pkg/record"
)

// Map is an insertion-ordered mapping from group key to the records sharing
// that key. Key order is first-seen order; in-group record order is input
// order.
type Map struct {
	keys   []any
	groups map[any][]record.Record
}

func newMap() *Map {
	return &Map{keys: []any{}, groups: map[any][]record.Record{}}
}

func (m *Map) add(key any, rec record.Record) {
	if _, ok := m.groups[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.groups[key] = append(m.groups[key], rec)
}

// Keys returns the group keys in first-seen order.
func (m *Map) Keys() []any { return m.keys }

// Get returns the records grouped under the key.
func (m *Map) Get(key any) ([]record.Record, bool) {
	recs, ok := m.groups[key]
	return recs, ok
}

// Len returns the number of distinct groups.
func (m *Map) Len() int { return len(m.keys) }

// Groups returns the record groups in key order.
func (m *Map) Groups() [][]record.Record {
	ret := make([][]record.Record, 0, len(m.keys))
	for _, k := range m.keys {
		ret = append(ret, m.groups[k])
	}
	return ret
}

// Reduced is an insertion-ordered mapping from group key to a caller-reduced
// value.
type Reduced struct {
	keys []any
	vals map[any]any
}

// Keys returns the group keys in first-seen order.
func (r *Reduced) Keys() []any { return r.keys }

// Get returns the reduced value stored under the key.
func (r *Reduced) Get(key any) (any, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Len returns the number of distinct groups.
func (r *Reduced) Len() int { return len(r.keys) }
