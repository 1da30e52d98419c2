// Package saga runs multi-step operations whose completed steps are undone
// in reverse order when a later step fails.
package saga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

type Step struct {
	Name string
	Do   func(ctx context.Context) error
	// Undo compensates a completed Do. Nil means nothing to undo.
	Undo func(ctx context.Context) error
}

// StepError is the failure that aborted the saga.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// RollbackError is a compensation that failed after StepError.
type RollbackError struct {
	Step string
	Err  error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("rollback %s: %v", e.Step, e.Err)
}

func (e *RollbackError) Unwrap() error {
	return e.Err
}

// Run executes steps in order. On failure it compensates the completed
// steps last-first, using a context that outlives ctx's cancellation, and
// returns a *StepError. Failed compensations are joined to it as
// *RollbackError values.
func Run(ctx context.Context, logger *slog.Logger, steps ...Step) error {
	for i, step := range steps {
		err := step.Do(ctx)
		if err == nil {
			continue
		}

		failed := &StepError{Step: step.Name, Err: err}
		logger.Warn("saga step failed", "step", step.Name, "error", err)

		rollbackCtx := context.WithoutCancel(ctx)
		var rollbackErrs []error
		for j := i - 1; j >= 0; j-- {
			undo := steps[j].Undo
			if undo == nil {
				continue
			}
			if err := undo(rollbackCtx); err != nil {
				logger.Error("saga compensation failed", "step", steps[j].Name, "error", err)
				rollbackErrs = append(rollbackErrs, &RollbackError{Step: steps[j].Name, Err: err})
			}
		}

		if len(rollbackErrs) == 0 {
			return failed
		}
		return errors.Join(append([]error{failed}, rollbackErrs...)...)
	}
	return nil
}
