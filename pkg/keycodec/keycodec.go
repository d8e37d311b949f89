// Package keycodec serializes ordered field-value tuples into flat composite
// key strings used by the serialized composite-join strategy and by
// composite grouping.
package keycodec

import (
	"strconv"

	"github.com/l7mp/relate/pkg/record"
	"github.com/l7mp/relate/pkg/util"
)

// Separator is a doubled ASCII unit separator. Real field values essentially
// never contain it, which makes the encoding collision-resistant without
// escaping. Distinct tuples whose rendered values embed the separator can
// still collide: accepted limitation, no escaping is performed.
const Separator = "\x1f\x1f"

// Encode renders each value and joins them with Separator. Absent (nil)
// values render as the empty string.
func Encode(values []any) string {
	ret := ""
	for i, v := range values {
		if i > 0 {
			ret += Separator
		}
		ret += Component(v)
	}
	return ret
}

// Extractor closes over a field-name tuple and returns a selector producing
// the serialized composite key for a record. The tuple logic is built once
// and applied per record. Missing fields contribute an empty component.
func Extractor(fields []string) record.Selector {
	return func(rec record.Record) (any, error) {
		values := make([]any, len(fields))
		for i, f := range fields {
			v, _ := record.Get(rec, f)
			values[i] = v
		}
		return Encode(values), nil
	}
}

// Component renders a single key value the way Encode renders it inside a
// tuple: nil is the empty string, scalars render by type, anything else
// falls back to canonical JSON. The multi-level index keys each of its
// levels with this rendering, which is what keeps the serialized and nested
// composite join strategies interchangeable.
func Component(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	default:
		// composite values fall back to canonical JSON
		return util.Stringify(v)
	}
}
