package join

import (
	"fmt"
)

type ErrJoin = error

func NewJoinError(err error) ErrJoin {
	return fmt.Errorf("failed to evaluate join: %w", err)
}

type ErrJoinConfig = error

func NewJoinConfigError(message string) ErrJoinConfig {
	return fmt.Errorf("invalid join configuration: %s", message)
}

type ErrInvalidCardinality = error

func NewInvalidCardinalityError(value string) ErrInvalidCardinality {
	return fmt.Errorf("invalid cardinality %q, expected \"many\" or \"one\"", value)
}
