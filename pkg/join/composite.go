package join

import (
	"github.com/l7mp/relate/pkg/index"
	"github.com/l7mp/relate/pkg/keycodec"
	"github.com/l7mp/relate/pkg/record"
)

// Composite joins attach children matching an ordered tuple of key fields
// instead of a single field. Two index strategies are available and produce
// identical results: the serialized strategy flattens the tuple into a
// keycodec string and reuses the flat hash index, the nested strategy walks
// a tree index one field per level.

// AttachManyComposite is AttachMany over composite keys, serialized
// strategy. The parent and child tuples may name different fields but must
// have the same arity.
func AttachManyComposite(parents, children []record.Record, parentFields, childFields []string, as string) ([]record.Record, error) {
	if err := checkArity(parentFields, childFields); err != nil {
		return nil, err
	}
	return AttachBySelectors(parents, children,
		keycodec.Extractor(parentFields), keycodec.Extractor(childFields), as, CardinalityMany)
}

// AttachOneComposite is AttachOne over composite keys, serialized strategy.
// First match wins in child input order.
func AttachOneComposite(parents, children []record.Record, parentFields, childFields []string, as string) ([]record.Record, error) {
	if err := checkArity(parentFields, childFields); err != nil {
		return nil, err
	}
	return AttachBySelectors(parents, children,
		keycodec.Extractor(parentFields), keycodec.Extractor(childFields), as, CardinalityOne)
}

// AttachManyNested is AttachMany over composite keys, nested-index strategy.
func AttachManyNested(parents, children []record.Record, parentFields, childFields []string, as string) ([]record.Record, error) {
	return attachNested(parents, children, parentFields, childFields, as, CardinalityMany)
}

// AttachOneNested is AttachOne over composite keys, nested-index strategy.
func AttachOneNested(parents, children []record.Record, parentFields, childFields []string, as string) ([]record.Record, error) {
	return attachNested(parents, children, parentFields, childFields, as, CardinalityOne)
}

func attachNested(parents, children []record.Record, parentFields, childFields []string, as string, cardinality Cardinality) ([]record.Record, error) {
	if as == "" {
		return nil, NewJoinConfigError("empty output field")
	}
	if err := checkArity(parentFields, childFields); err != nil {
		return nil, err
	}

	tree, err := index.Build(children, childFields)
	if err != nil {
		return nil, NewJoinError(err)
	}

	ret := make([]record.Record, 0, len(parents))
	for _, p := range parents {
		path := make([]any, len(parentFields))
		for i, f := range parentFields {
			path[i], _ = record.Get(p, f)
		}
		ret = append(ret, record.Enrich(p, as, attachment(index.Lookup(tree, path), cardinality)))
	}
	return ret, nil
}

func checkArity(parentFields, childFields []string) error {
	if len(parentFields) != len(childFields) {
		return NewJoinConfigError("mismatched composite key arity")
	}
	return nil
}
