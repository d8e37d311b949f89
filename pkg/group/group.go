// Package group implements single-key, multi-key and transform-aggregation
// grouping over record slices. Grouping is a single synchronous pass that
// never reorders or mutates its input.
package group

import (
	"github.com/l7mp/relate/pkg/index"
	"github.com/l7mp/relate/pkg/keycodec"
	"github.com/l7mp/relate/pkg/record"
)

// Reducer aggregates one group of records into a single value. It is invoked
// exactly once per distinct key, with the records sharing that key in input
// order.
type Reducer func([]record.Record) (any, error)

// By groups the records by the key selector. Group keys appear in first-seen
// order; records within a group keep their input order. An empty input yields
// an empty Map.
func By(records []record.Record, key record.Selector) (*Map, error) {
	m := newMap()
	for _, rec := range records {
		k, err := key(rec)
		if err != nil {
			return nil, NewGroupError(err)
		}
		m.add(k, rec)
	}
	return m, nil
}

// ByField groups the records by the value of a named field. Identical to By
// with a field selector.
func ByField(records []record.Record, field string) (*Map, error) {
	return By(records, record.FieldSelector(field))
}

// ByMany recursively partitions the records by each field in order,
// producing a tree of depth len(fields) with the same shape and semantics as
// index.Build: a zero-length tuple returns the raw input slice, a one-field
// tuple collapses to a flat map.
func ByMany(records []record.Record, fields []string) (any, error) {
	return index.Build(records, fields)
}

// ByTransform groups the records by the key selector and reduces each group
// with the given reducer.
func ByTransform(records []record.Record, key record.Selector, reduce Reducer) (*Reduced, error) {
	m, err := By(records, key)
	if err != nil {
		return nil, err
	}

	ret := &Reduced{keys: m.keys, vals: make(map[any]any, len(m.keys))}
	for _, k := range m.keys {
		v, err := reduce(m.groups[k])
		if err != nil {
			return nil, NewGroupError(err)
		}
		ret.vals[k] = v
	}
	return ret, nil
}

// ByComposite groups the records by the serialized composite key built from
// the ordered field tuple. The result is flat, keyed by the encoded string.
func ByComposite(records []record.Record, fields []string) (*Map, error) {
	return By(records, keycodec.Extractor(fields))
}
