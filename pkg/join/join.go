// Package join implements join-style attachment of related records:
// one-to-one and one-to-many flat joins over a single key or computed
// selector keys, composite-key joins in two interchangeable index
// strategies, and a three-level filtered join attaching a shared catalog of
// middle records with per-parent filtered children.
//
// Every operator builds an ephemeral index over the child-side input, then
// produces the output in a single ordered pass over the parents. Inputs are
// never mutated; each parent appears exactly once in the output, enriched
// with one new field.
package join

import (
	"github.com/l7mp/relate/pkg/index"
	"github.com/l7mp/relate/pkg/record"
	"github.com/l7mp/relate/pkg/util"
)

// AttachMany attaches to each parent the list of children whose childKey
// field matches the parent's parentKey field, under the output field "as".
// Parents with no match get an empty list. Runs in O(parents + children).
func AttachMany(parents, children []record.Record, parentKey, childKey, as string) ([]record.Record, error) {
	return AttachBySelectors(parents, children,
		record.FieldSelector(parentKey), record.FieldSelector(childKey), as, CardinalityMany)
}

// AttachOne attaches to each parent the first matching child under the
// output field "as", or an explicit nil when there is no match. When several
// children share a key the first one in child input order wins.
func AttachOne(parents, children []record.Record, parentKey, childKey, as string) ([]record.Record, error) {
	return AttachBySelectors(parents, children,
		record.FieldSelector(parentKey), record.FieldSelector(childKey), as, CardinalityOne)
}

// AttachBySelectors generalizes AttachMany and AttachOne to computed keys:
// the parent and child selectors must return mutually comparable lookup
// keys. The cardinality selects many or one output semantics.
func AttachBySelectors(parents, children []record.Record, parentKey, childKey record.Selector, as string, cardinality Cardinality) ([]record.Record, error) {
	if as == "" {
		return nil, NewJoinConfigError("empty output field")
	}
	if err := cardinality.Validate(); err != nil {
		return nil, err
	}

	var ix *index.Flat
	var err error
	if cardinality == CardinalityOne {
		ix, err = index.NewFlatFirst(children, childKey)
	} else {
		ix, err = index.NewFlat(children, childKey)
	}
	if err != nil {
		return nil, NewJoinError(err)
	}

	ret := make([]record.Record, 0, len(parents))
	for _, p := range parents {
		k, err := parentKey(p)
		if err != nil {
			return nil, NewJoinError(err)
		}
		ret = append(ret, record.Enrich(p, as, attachment(ix.Lookup(k), cardinality)))
	}
	return ret, nil
}

// attachment resolves the matched records into the attached field value:
// a deep-copied list for "many", the first deep-copied match or nil for
// "one".
func attachment(matches []record.Record, cardinality Cardinality) any {
	if cardinality == CardinalityOne {
		if len(matches) == 0 {
			return nil
		}
		return record.DeepCopy(matches[0])
	}
	return util.Map(func(r record.Record) any { return record.DeepCopy(r) }, matches)
}
