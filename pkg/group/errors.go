package group

import (
	"fmt"
)

type ErrGroup = error

func NewGroupError(err error) ErrGroup {
	return fmt.Errorf("failed to evaluate grouping: %w", err)
}
