package join

import (
	"reflect"

	"github.com/l7mp/relate/pkg/index"
	"github.com/l7mp/relate/pkg/record"
)

// FilteredConfig configures a three-level filtered join: parents are
// enriched with a shared catalog of middle records, and each catalog entry
// is enriched with only the children matching both the middle key and the
// owning parent.
type FilteredConfig struct {
	// ParentKey is the parent field children are owned by.
	ParentKey string `json:"parentKey"`
	// ChildParentKey is the child field linking a child to its owning parent.
	ChildParentKey string `json:"childParentKey"`
	// MiddleKey is the middle field children are matched against.
	MiddleKey string `json:"middleKey"`
	// ChildKey is the child field linking a child to a middle record.
	ChildKey string `json:"childKey"`
	// MiddleAs names the parent output field holding the enriched catalog.
	MiddleAs string `json:"middleAs"`
	// ChildAs names the middle output field holding the filtered children.
	ChildAs string `json:"childAs"`
	// MiddleCardinality and ChildCardinality independently select many/one
	// semantics per level. Both default to "many".
	MiddleCardinality Cardinality `json:"middleCardinality,omitempty"`
	ChildCardinality  Cardinality `json:"childCardinality,omitempty"`
}

func (c *FilteredConfig) validate() error {
	if c.MiddleAs == "" || c.ChildAs == "" {
		return NewJoinConfigError("empty output field")
	}
	if err := c.MiddleCardinality.orMany().Validate(); err != nil {
		return err
	}
	return c.ChildCardinality.orMany().Validate()
}

// AttachFiltered enriches each parent with the full middle catalog, each
// catalog entry carrying the children that match the entry's key and are
// owned by the parent. The catalog itself is never filtered: every parent
// sees every middle record, only the attached children differ.
//
// The ownership filter is a linear scan over each middle key's matched
// children for every parent, so the cost is O(parents × middle + children)
// rather than that of a pure hash join. Catalogs are expected to be small
// relative to children.
func AttachFiltered(parents, middle, children []record.Record, config FilteredConfig) ([]record.Record, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	middleCard := config.MiddleCardinality.orMany()
	childCard := config.ChildCardinality.orMany()

	ix, err := index.NewFlat(children, record.FieldSelector(config.ChildKey))
	if err != nil {
		return nil, NewJoinError(err)
	}

	ret := make([]record.Record, 0, len(parents))
	for _, p := range parents {
		owner, _ := record.Get(p, config.ParentKey)

		enriched := make([]any, 0, len(middle))
		for _, m := range middle {
			mk, _ := record.Get(m, config.MiddleKey)

			owned := []record.Record{}
			for _, c := range ix.Lookup(mk) {
				cp, _ := record.Get(c, config.ChildParentKey)
				if reflect.DeepEqual(cp, owner) {
					owned = append(owned, c)
				}
			}

			enriched = append(enriched, record.Enrich(m, config.ChildAs, attachment(owned, childCard)))
		}

		var catalog any
		if middleCard == CardinalityOne {
			if len(enriched) == 0 {
				catalog = nil
			} else {
				catalog = enriched[0]
			}
		} else {
			catalog = enriched
		}

		ret = append(ret, record.Enrich(p, config.MiddleAs, catalog))
	}
	return ret, nil
}
