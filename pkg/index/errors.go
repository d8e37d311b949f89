package index

import (
	"fmt"
)

type ErrIndex = error

func NewIndexError(err error) ErrIndex {
	return fmt.Errorf("failed to build index: %w", err)
}
