package record

import (
	"fmt"
)

type ErrInvalidRecord = error

func NewInvalidRecordError(err error) ErrInvalidRecord {
	return fmt.Errorf("failed to convert value into a record: %w", err)
}

type ErrInvalidSelector = error

func NewInvalidSelectorError(path string, err error) ErrInvalidSelector {
	return fmt.Errorf("invalid JSONPath selector %q: %w", path, err)
}
