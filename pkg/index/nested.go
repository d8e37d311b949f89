package index

import (
	"github.com/l7mp/relate/pkg/keycodec"
	"github.com/l7mp/relate/pkg/record"
)

// Build constructs a multi-level index over the records, one level per field
// in the tuple. Each level is keyed by the keycodec rendering of the field
// value, exactly the component the serialized composite key would contain,
// so the nested and serialized composite strategies cannot disagree on what
// matches. The result is
//   - the raw record slice when the tuple is empty (degenerate case kept for
//     compatibility, of little practical use),
//   - a map[any][]record.Record when the tuple has one field,
//   - a map[any]any of recursively built subtrees otherwise.
func Build(records []record.Record, fields []string) (any, error) {
	if len(fields) == 0 {
		return records, nil
	}

	if len(fields) == 1 {
		tree := map[any][]record.Record{}
		for _, rec := range records {
			v, _ := record.Get(rec, fields[0])
			k := keycodec.Component(v)
			tree[k] = append(tree[k], rec)
		}
		return tree, nil
	}

	// partition by the first field, keeping input order within partitions
	order := []any{}
	parts := map[any][]record.Record{}
	for _, rec := range records {
		v, _ := record.Get(rec, fields[0])
		k := keycodec.Component(v)
		if _, ok := parts[k]; !ok {
			order = append(order, k)
		}
		parts[k] = append(parts[k], rec)
	}

	tree := map[any]any{}
	for _, k := range order {
		sub, err := Build(parts[k], fields[1:])
		if err != nil {
			return nil, err
		}
		tree[k] = sub
	}
	return tree, nil
}

// Lookup walks the tree one path element per level and returns the matching
// records. Path elements are rendered with the keycodec the same way Build
// renders level keys. A missing value at any level, a path shorter or longer
// than the tree depth, or an unexpected node shape all yield an empty slice,
// never an error. A zero-length path returns the tree itself if it is
// already a record slice, else an empty slice.
func Lookup(tree any, path []any) []record.Record {
	if len(path) == 0 {
		if recs, ok := tree.([]record.Record); ok {
			return recs
		}
		return []record.Record{}
	}

	switch node := tree.(type) {
	case map[any][]record.Record:
		// leaf level: the single remaining path element selects the bucket
		if len(path) != 1 {
			return []record.Record{}
		}
		recs, ok := node[keycodec.Component(path[0])]
		if !ok {
			return []record.Record{}
		}
		return recs
	case map[any]any:
		sub, ok := node[keycodec.Component(path[0])]
		if !ok {
			return []record.Record{}
		}
		return Lookup(sub, path[1:])
	default:
		return []record.Record{}
	}
}
