package agent

import (
	"errors"
	"fmt"
)

var (
	ErrMaxSteps    = errors.New("agent: model did not produce a final answer within the step limit")
	ErrEmptyAnswer = errors.New("agent: model produced an empty final answer")
)

// ExecutionError means the tool loop broke down at Step (1-based model turn).
type ExecutionError struct {
	Step int
	Err  error
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("agent: step %d: %v", e.Step, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
