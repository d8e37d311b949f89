package record

import (
	"github.com/ohler55/ojg/jp"
)

// validateJSONPath reports whether the expression parses.
func validateJSONPath(path string) error {
	_, err := jp.ParseString(path)
	return err
}

// getJSONPath evaluates a JSONPath expression on a record. The first match
// wins when the expression selects multiple values.
func getJSONPath(rec Record, path string) (any, bool) {
	je, err := jp.ParseString(path)
	if err != nil {
		return nil, false
	}
	values := je.Get(rec)
	if len(values) == 0 {
		return nil, false
	}
	return values[0], true
}
