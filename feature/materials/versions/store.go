package versions

import (
	"context"
	"fmt"
	"strconv"

	"material-manager/core/lock"
	"material-manager/feature/materials/models"
	"material-manager/feature/materials/store"

	"go.uber.org/zap"
)

// MutateFunc edits a private copy of the latest version. Returning an error
// aborts the write.
type MutateFunc func(curso *models.Curso, latest *models.MaterialVersion) error

// Store persists history changes through the document store, one writer per
// course at a time.
type Store struct {
	docs   store.Store
	locks  lock.Locker
	logger *zap.Logger
}

// New creates a version store.
func New(docs store.Store, locks lock.Locker, logger *zap.Logger) *Store {
	if locks == nil {
		locks = lock.NewLocal()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{docs: docs, locks: locks, logger: logger}
}

// Docs returns the underlying document store.
func (s *Store) Docs() store.Store {
	return s.docs
}

// LockKey is the lock guarding a course's history.
func LockKey(id uint) string {
	return "curso:" + strconv.FormatUint(uint64(id), 10)
}

// Get loads a course by external or numeric key.
func (s *Store) Get(ctx context.Context, cursoKey string) (*models.Curso, error) {
	return s.docs.GetCurso(ctx, cursoKey)
}

// Mutate runs fn against a copy of the latest version and writes the result
// back with ReplaceLatest. The read and the write happen under the course
// lock, and the write carries the revision that was read.
func (s *Store) Mutate(ctx context.Context, cursoKey string, fn MutateFunc) (*models.Curso, error) {
	return s.write(ctx, cursoKey, func(curso *models.Curso) ([]models.MaterialVersion, error) {
		_, latest, err := Latest(curso.VersionesMateriales)
		if err != nil {
			return nil, err
		}
		updated := latest.Clone()
		if err := fn(curso, &updated); err != nil {
			return nil, err
		}
		return ReplaceLatest(curso.VersionesMateriales, updated)
	})
}

// AppendVersion adds v as a new version in front of the history.
func (s *Store) AppendVersion(ctx context.Context, cursoKey string, v models.MaterialVersion) (*models.Curso, error) {
	return s.write(ctx, cursoKey, func(curso *models.Curso) ([]models.MaterialVersion, error) {
		if v.Materiales == nil {
			v.Materiales = []models.MaterialItem{}
		}
		return Append(curso.VersionesMateriales, v.Clone()), nil
	})
}

func (s *Store) write(ctx context.Context, cursoKey string, next func(*models.Curso) ([]models.MaterialVersion, error)) (*models.Curso, error) {
	curso, err := s.docs.GetCurso(ctx, cursoKey)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locks.Lock(ctx, LockKey(curso.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock curso %d: %w", curso.ID, err)
	}
	defer unlock()

	// Reload under the lock; the first read only resolved the key
	curso, err = s.docs.GetCurso(ctx, curso.Key())
	if err != nil {
		return nil, err
	}

	versions, err := next(curso)
	if err != nil {
		return nil, err
	}

	revision, err := s.docs.SaveVersions(ctx, curso.ID, curso.Revision, versions)
	if err != nil {
		s.logger.Error("Failed to persist versions",
			zap.Uint("curso_id", curso.ID),
			zap.Int64("revision", curso.Revision),
			zap.Error(err))
		return nil, err
	}

	curso.VersionesMateriales = versions
	curso.Revision = revision
	return curso, nil
}
