package bulk

import (
	"context"
	"errors"
	"fmt"

	"material-manager/core/errs"
	"material-manager/feature/materials/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Patch lists the course fields a bulk operation may set. Nil fields are left alone.
type Patch struct {
	Activo  *bool   `json:"activo,omitempty" yaml:"activo,omitempty"`
	Colegio *string `json:"colegio,omitempty" yaml:"colegio,omitempty"`
	Anio    *int    `json:"anio,omitempty" yaml:"anio,omitempty"`
}

// Empty reports whether the patch sets nothing.
func (p Patch) Empty() bool {
	return p.Activo == nil && p.Colegio == nil && p.Anio == nil
}

// Validate checks the present fields.
func (p Patch) Validate() error {
	if p.Colegio != nil && *p.Colegio == "" {
		return errs.Invalid("colegio", "must not be empty")
	}
	if p.Anio != nil && (*p.Anio < 1900 || *p.Anio > 3000) {
		return errs.Invalid("anio", "out of range")
	}
	return nil
}

// Result is the outcome for one id.
type Result struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Service applies one patch to many courses.
type Service struct {
	docs    store.Store
	workers int
	maxIDs  int
	logger  *zap.Logger
}

// NewService creates a new bulk service.
func NewService(docs store.Store, cfg Config, logger *zap.Logger) *Service {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Service{docs: docs, workers: cfg.Workers, maxIDs: cfg.MaxIDs, logger: logger}
}

// Check validates a request before any id is processed.
func (s *Service) Check(ids []string, patch Patch) error {
	if len(ids) == 0 {
		return errs.Invalid("ids", "at least one id is required")
	}
	if s.maxIDs > 0 && len(ids) > s.maxIDs {
		return errs.Invalid("ids", fmt.Sprintf("at most %d ids per request", s.maxIDs))
	}
	return patch.Validate()
}

// ApplyBulk applies patch to every id and returns one result per id, in
// input order. Failures are recorded per id and never stop the others.
// When ctx is cancelled, ids not yet started fail with the context error.
func (s *Service) ApplyBulk(ctx context.Context, ids []string, patch Patch) []Result {
	results := make([]Result, len(ids))
	for i, id := range ids {
		results[i] = Result{ID: id}
	}

	// The school key is the same for every id, resolve it once
	var colegioID *uint
	var colegioErr error
	if patch.Colegio != nil {
		colegio, err := s.docs.GetColegio(ctx, *patch.Colegio)
		if err != nil {
			colegioErr = fmt.Errorf("colegio %s: %w", *patch.Colegio, err)
		} else {
			colegioID = &colegio.ID
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for i := range ids {
		if ctx.Err() != nil {
			results[i].Error = ctx.Err().Error()
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Error = err.Error()
				return nil
			}
			if colegioErr != nil {
				results[i].Error = colegioErr.Error()
				return nil
			}
			if err := s.applyOne(ctx, ids[i], patch, colegioID); err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Success = true
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	s.logger.Info("Bulk update applied",
		zap.Int("total", len(ids)),
		zap.Int("failed", failed))
	return results
}

func (s *Service) applyOne(ctx context.Context, id string, patch Patch, colegioID *uint) error {
	curso, err := s.docs.GetCurso(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errors.New("not found")
		}
		return err
	}

	update := store.CursoUpdate{Activo: patch.Activo, ColegioID: colegioID, Anio: patch.Anio}
	if update.Empty() {
		return nil
	}
	if err := s.docs.UpdateCurso(ctx, curso.ID, update); err != nil {
		s.logger.Warn("Bulk update failed", zap.String("curso", id), zap.Error(err))
		return err
	}
	return nil
}
