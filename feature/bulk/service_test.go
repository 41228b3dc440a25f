package bulk

import (
	"context"
	"errors"
	"testing"

	"material-manager/core/errs"
	"material-manager/feature/materials/store"
	"material-manager/feature/materials/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

type failingStore struct {
	*store.SQL
	failID uint
}

func (f *failingStore) UpdateCurso(ctx context.Context, id uint, u store.CursoUpdate) error {
	if id == f.failID {
		return errors.New("write timeout")
	}
	return f.SQL.UpdateCurso(ctx, id, u)
}

func TestApplyBulk_MixedResultsInInputOrder(t *testing.T) {
	docs, _ := storetest.New(t)
	andino := storetest.Colegio(t, docs, "col-1", "Andino")
	nuevo := storetest.Colegio(t, docs, "col-2", "Nuevo")
	a := storetest.Curso(t, docs, "cur-a", andino)
	storetest.Curso(t, docs, "cur-b", andino)

	svc := NewService(docs, Config{Workers: 2}, zap.NewNop())
	patch := Patch{Activo: boolPtr(false), Colegio: strPtr("col-2"), Anio: intPtr(2026)}
	results := svc.ApplyBulk(context.Background(), []string{"cur-b", "missing", "1"}, patch)

	require.Len(t, results, 3)
	assert.Equal(t, Result{ID: "cur-b", Success: true}, results[0])
	assert.Equal(t, Result{ID: "missing", Success: false, Error: "not found"}, results[1])
	assert.Equal(t, "1", results[2].ID)
	assert.True(t, results[2].Success)

	got, err := docs.GetCurso(context.Background(), "cur-a")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.False(t, got.Activo)
	assert.Equal(t, nuevo.ID, got.ColegioID)
	assert.Equal(t, 2026, got.Anio)
}

func TestApplyBulk_EmptyPatchSucceedsWithoutWrite(t *testing.T) {
	docs, _ := storetest.New(t)
	c := storetest.Curso(t, docs, "cur-a", nil)

	svc := NewService(&failingStore{SQL: docs, failID: c.ID}, Config{Workers: 1}, zap.NewNop())
	results := svc.ApplyBulk(context.Background(), []string{"cur-a", "nope"}, Patch{})
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
}

func TestApplyBulk_PerIDFailureDoesNotStopOthers(t *testing.T) {
	docs, _ := storetest.New(t)
	a := storetest.Curso(t, docs, "cur-a", nil)
	storetest.Curso(t, docs, "cur-b", nil)

	svc := NewService(&failingStore{SQL: docs, failID: a.ID}, Config{Workers: 4}, zap.NewNop())
	results := svc.ApplyBulk(context.Background(), []string{"cur-a", "cur-b"}, Patch{Anio: intPtr(2024)})
	assert.Equal(t, Result{ID: "cur-a", Error: "write timeout"}, results[0])
	assert.True(t, results[1].Success)

	b, err := docs.GetCurso(context.Background(), "cur-b")
	require.NoError(t, err)
	assert.Equal(t, 2024, b.Anio)
}

func TestApplyBulk_UnknownSchoolFailsEveryID(t *testing.T) {
	docs, _ := storetest.New(t)
	storetest.Curso(t, docs, "cur-a", nil)

	svc := NewService(docs, Config{Workers: 2}, zap.NewNop())
	results := svc.ApplyBulk(context.Background(), []string{"cur-a"}, Patch{Colegio: strPtr("ghost")})
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "colegio ghost")
}

func TestApplyBulk_CancelledContext(t *testing.T) {
	docs, _ := storetest.New(t)
	storetest.Curso(t, docs, "cur-a", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(docs, Config{Workers: 2}, zap.NewNop())
	results := svc.ApplyBulk(ctx, []string{"cur-a", "cur-b"}, Patch{Anio: intPtr(2030)})
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Equal(t, context.Canceled.Error(), r.Error)
	}

	got, err := docs.GetCurso(context.Background(), "cur-a")
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Anio)
}

func TestCheck(t *testing.T) {
	svc := NewService(nil, Config{Workers: 1, MaxIDs: 2}, zap.NewNop())
	assert.ErrorIs(t, svc.Check(nil, Patch{}), errs.ErrInvalidInput)
	assert.ErrorIs(t, svc.Check([]string{"a", "b", "c"}, Patch{}), errs.ErrInvalidInput)
	assert.ErrorIs(t, svc.Check([]string{"a"}, Patch{Colegio: strPtr("")}), errs.ErrInvalidInput)
	assert.ErrorIs(t, svc.Check([]string{"a"}, Patch{Anio: intPtr(12)}), errs.ErrInvalidInput)
	assert.NoError(t, svc.Check([]string{"a"}, Patch{Anio: intPtr(2025)}))
}
