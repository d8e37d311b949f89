// Package record defines the unstructured record model shared by all
// relational operators: JSON-shaped field maps, deep-copy based enrichment,
// and key selectors for field-name, dotted-path and JSONPath access.
package record

import (
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/json"
)

// Record is an unstructured record: a map from field name to a JSON-shaped
// value (string, int64, float64, bool, nil, []any or nested Record).
type Record = map[string]any

// New deep-copies and JSON-normalizes the given content into a Record. All
// integer values come back as int64 and all floats as float64, so records
// built from arbitrary Go literals key and compare consistently.
func New(content map[string]any) Record {
	rec, err := FromObject(content)
	if err != nil {
		// content was a map already; only exotic non-JSON values can fail
		return runtime.DeepCopyJSON(content)
	}
	return rec
}

// FromObject converts any JSON-marshalable value (struct, map) into a Record
// via a JSON round-trip.
func FromObject(v any) (Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, NewInvalidRecordError(err)
	}
	rec := Record{}
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, NewInvalidRecordError(err)
	}
	return rec, nil
}

// DeepCopy returns a deep, JSON-normalized copy of the record. Records
// holding plain Go scalars (an int instead of an int64) copy through the
// JSON round-trip rather than panicking in the unstructured deep copy.
func DeepCopy(rec Record) Record {
	if rec == nil {
		return nil
	}
	if out, err := FromObject(rec); err == nil {
		return out
	}
	return runtime.DeepCopyJSON(rec)
}

// Get retrieves a field value from a record. Plain field names and dotted
// paths ("spec.sku") are resolved segment by segment; "$"-prefixed JSONPath
// expressions ("$.spec.sku") are resolved by the JSONPath engine. The second
// return value reports whether the field was found; a missing field is never
// an error.
func Get(rec Record, field string) (any, bool) {
	if rec == nil || field == "" {
		return nil, false
	}
	if field[0] == '$' {
		return getJSONPath(rec, field)
	}
	v, ok, err := unstructured.NestedFieldNoCopy(rec, strings.Split(field, ".")...)
	if err != nil || !ok {
		return nil, false
	}
	return v, true
}

// Enrich returns a new record holding a deep copy of every original field
// plus one new field. The input record is never touched. Copying
// JSON-normalizes the original fields, so enriching a record built from
// plain Go literals is safe.
func Enrich(rec Record, field string, value any) Record {
	out := DeepCopy(rec)
	if out == nil {
		out = Record{}
	}
	out[field] = value
	return out
}
