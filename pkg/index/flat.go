// Package index implements the ephemeral lookup structures backing the join
// and grouping operators: a flat hash index keyed by a single computed key,
// and a multi-level nested index keyed by an ordered field tuple. Indexes
// are built fresh per operator call and discarded afterwards.
package index

import (
	"github.com/l7mp/relate/pkg/record"
)

// Flat is a hash index from lookup key to the records producing that key, in
// input order.
type Flat struct {
	buckets map[any][]record.Record
}

// NewFlat indexes the records by the given key selector. Bucket order equals
// input order, so the first element of a bucket is always the first record
// seen for that key.
func NewFlat(records []record.Record, key record.Selector) (*Flat, error) {
	ix := &Flat{buckets: make(map[any][]record.Record, len(records))}
	for _, rec := range records {
		k, err := key(rec)
		if err != nil {
			return nil, NewIndexError(err)
		}
		ix.buckets[k] = append(ix.buckets[k], rec)
	}
	return ix, nil
}

// NewFlatFirst indexes the records by the given key selector, retaining only
// the first record seen per key. Later duplicates are dropped (first-wins),
// which gives one-to-one joins their deterministic tie-breaking.
func NewFlatFirst(records []record.Record, key record.Selector) (*Flat, error) {
	ix := &Flat{buckets: make(map[any][]record.Record, len(records))}
	for _, rec := range records {
		k, err := key(rec)
		if err != nil {
			return nil, NewIndexError(err)
		}
		if _, ok := ix.buckets[k]; !ok {
			ix.buckets[k] = []record.Record{rec}
		}
	}
	return ix, nil
}

// Lookup returns the records indexed under the key, or an empty slice.
func (ix *Flat) Lookup(key any) []record.Record {
	recs, ok := ix.buckets[key]
	if !ok {
		return []record.Record{}
	}
	return recs
}

// First returns the first record indexed under the key.
func (ix *Flat) First(key any) (record.Record, bool) {
	recs, ok := ix.buckets[key]
	if !ok || len(recs) == 0 {
		return nil, false
	}
	return recs[0], true
}

// Len returns the number of distinct keys in the index.
func (ix *Flat) Len() int { return len(ix.buckets) }
