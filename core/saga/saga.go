package saga

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Step is one side effect of a saga and the action that undoes it.
// Compensate may be nil for steps that need no undo (typically the last one).
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga runs steps in order and compensates completed steps in reverse order
// when one of them fails.
type Saga struct {
	name   string
	steps  []Step
	logger *zap.Logger
}

// New creates an empty saga.
func New(name string, logger *zap.Logger) *Saga {
	return &Saga{name: name, logger: logger}
}

// Add appends a step.
func (s *Saga) Add(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Error reports the failed step and any compensation that failed afterwards.
type Error struct {
	Saga               string
	Step               string
	Err                error
	Compensated        []string
	CompensationErrors map[string]error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("saga %s failed at %s: %v", e.Saga, e.Step, e.Err)
	if len(e.CompensationErrors) > 0 {
		msg += fmt.Sprintf(" (%d compensation(s) failed)", len(e.CompensationErrors))
	}
	return msg
}

// Unwrap returns the step error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Run executes the saga. It returns nil or an *Error.
func (s *Saga) Run(ctx context.Context) error {
	done := make([]Step, 0, len(s.steps))

	for _, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return s.rollback(ctx, step.Name, err, done)
		}
		if err := step.Action(ctx); err != nil {
			return s.rollback(ctx, step.Name, err, done)
		}
		done = append(done, step)
		s.logger.Debug("Saga step completed", zap.String("saga", s.name), zap.String("step", step.Name))
	}

	return nil
}

func (s *Saga) rollback(ctx context.Context, failed string, cause error, done []Step) error {
	sagaErr := &Error{Saga: s.name, Step: failed, Err: cause}

	s.logger.Warn("Saga step failed, compensating",
		zap.String("saga", s.name),
		zap.String("step", failed),
		zap.Error(cause),
	)

	// Compensations must run even when the caller gave up
	cctx := context.WithoutCancel(ctx)

	for i := len(done) - 1; i >= 0; i-- {
		step := done[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(cctx); err != nil {
			if sagaErr.CompensationErrors == nil {
				sagaErr.CompensationErrors = make(map[string]error)
			}
			sagaErr.CompensationErrors[step.Name] = err
			s.logger.Error("Saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
			continue
		}
		sagaErr.Compensated = append(sagaErr.Compensated, step.Name)
	}

	return sagaErr
}

// IsCompensationFailure reports whether err is a saga error that left side effects behind.
func IsCompensationFailure(err error) bool {
	var sagaErr *Error
	return errors.As(err, &sagaErr) && len(sagaErr.CompensationErrors) > 0
}
