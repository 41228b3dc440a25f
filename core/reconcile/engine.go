package reconcile

import (
	"context"
	"time"

	"material-manager/core/errs"

	"go.uber.org/zap"
)

// Source looks a subject up in one catalog. A nil match with a nil error means
// the catalog has nothing for the subject.
type Source interface {
	// Name identifies the source in matches, errors and logs.
	Name() string

	// Lookup searches the catalog for the subject.
	Lookup(ctx context.Context, subject Subject) (*Match, error)
}

// Engine runs reconciliation passes over a fixed set of sources.
type Engine struct {
	spec   Spec
	logger *zap.Logger
}

// NewEngine creates an engine for the given spec.
func NewEngine(spec Spec, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{spec: spec, logger: logger}
}

// ReconcileAll resolves every subject in order, one source call at a time.
//
// A failing source downgrades only its subject to StatusNotFound. When the
// budget runs out or ctx is cancelled, the subjects processed so far are
// returned with Partial set and no error.
func (e *Engine) ReconcileAll(ctx context.Context, subjects []Subject) *Run {
	start := time.Now()
	runCtx := ctx
	if e.spec.Budget > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.spec.Budget)
		defer cancel()
	}

	run := &Run{Results: make([]Result, 0, len(subjects))}
	for _, subject := range subjects {
		if runCtx.Err() != nil {
			run.Partial = true
			break
		}

		result, interrupted := e.reconcileOne(runCtx, subject)
		if interrupted {
			run.Partial = true
			break
		}
		run.Results = append(run.Results, result)
		run.Summary.Add(result)
	}

	run.Elapsed = time.Since(start)
	if run.Partial {
		e.logger.Warn("Reconciliation stopped early",
			zap.Int("processed", len(run.Results)),
			zap.Int("total", len(subjects)),
			zap.Duration("elapsed", run.Elapsed),
			zap.Error(runCtx.Err()))
	}
	return run
}

// ReconcileOne resolves a single subject without a budget.
func (e *Engine) ReconcileOne(ctx context.Context, subject Subject) Result {
	result, _ := e.reconcileOne(ctx, subject)
	return result
}

// reconcileOne reports interrupted when the run context ended while a
// source call was in flight; such a subject is not counted.
func (e *Engine) reconcileOne(runCtx context.Context, subject Subject) (Result, bool) {
	result := Result{Subject: subject, Status: StatusNotFound}

	for _, src := range e.spec.Sources {
		match, err := e.lookup(runCtx, src, subject)
		if err != nil {
			if runCtx.Err() != nil {
				return result, true
			}
			result.Err = &errs.ExternalLookupError{Source: src.Name(), Term: subject.Name, Err: err}
			e.logger.Warn("Catalog lookup failed",
				zap.String("source", src.Name()),
				zap.String("subject", subject.Key),
				zap.Error(err))
			return result, false
		}
		if match != nil {
			if match.Source == "" {
				match.Source = src.Name()
			}
			result.Match = match
			result.Status = Classify(match)
			return result, false
		}
	}

	return result, false
}

func (e *Engine) lookup(ctx context.Context, src Source, subject Subject) (*Match, error) {
	if e.spec.ItemTimeout <= 0 {
		return src.Lookup(ctx, subject)
	}
	callCtx, cancel := context.WithTimeout(ctx, e.spec.ItemTimeout)
	defer cancel()
	return src.Lookup(callCtx, subject)
}
