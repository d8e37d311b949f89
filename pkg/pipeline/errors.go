package pipeline

import (
	"fmt"
)

type ErrPipeline = error

func NewPipelineError(err error) ErrPipeline {
	return fmt.Errorf("failed to evaluate pipeline: %w", err)
}

type ErrUnknownOp = error

func NewUnknownOpError(op string) ErrUnknownOp {
	return fmt.Errorf("unknown pipeline op %q", op)
}

type ErrUnknownCollection = error

func NewUnknownCollectionError(name string) ErrUnknownCollection {
	return fmt.Errorf("unknown collection %q", name)
}

type ErrStageConfig = error

func NewStageConfigError(op, message string) ErrStageConfig {
	return fmt.Errorf("invalid %s stage: %s", op, message)
}
