package record

// Selector computes a lookup key for a record. The returned key must be a
// comparable scalar (string, number, bool); what happens on anything else is
// up to the operator consuming the key.
type Selector func(Record) (any, error)

// FieldSelector returns a selector that reads a named field directly. The
// field name may be a dotted path or a JSONPath expression, as in Get. A
// missing field yields a nil key, which simply matches nothing.
func FieldSelector(field string) Selector {
	return func(rec Record) (any, error) {
		v, _ := Get(rec, field)
		return v, nil
	}
}

// JSONPathSelector returns a selector evaluating a JSONPath expression, with
// parse errors surfaced on the first application.
func JSONPathSelector(path string) Selector {
	return func(rec Record) (any, error) {
		if err := validateJSONPath(path); err != nil {
			return nil, NewInvalidSelectorError(path, err)
		}
		v, _ := getJSONPath(rec, path)
		return v, nil
	}
}
