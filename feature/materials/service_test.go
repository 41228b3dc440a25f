package materials

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"material-manager/core/errs"
	"material-manager/core/lock"
	"material-manager/feature/materials/models"
	"material-manager/feature/materials/store"
	"material-manager/feature/materials/store/storetest"
	"material-manager/feature/materials/versions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *store.SQL) {
	t.Helper()
	docs, _ := storetest.New(t)
	svc := NewService(versions.New(docs, lock.NewLocal(), zap.NewNop()), zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	n := 0
	svc.newID = func() string {
		n++
		return "gen-" + string(rune('0'+n))
	}
	return svc, docs
}

func latestOf(t *testing.T, docs store.Store, key string) *models.MaterialVersion {
	t.Helper()
	curso, err := docs.GetCurso(context.Background(), key)
	require.NoError(t, err)
	_, latest, err := versions.Latest(curso.VersionesMateriales)
	require.NoError(t, err)
	return latest
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestEditMaterial_PreservesIDAndCoordenadas(t *testing.T) {
	svc, docs := newTestService(t)
	item := storetest.Item("m1", "Lápiz")
	item.Coordenadas = json.RawMessage(`{"page":2,"x":10}`)
	storetest.Curso(t, docs, "cur-1", nil, storetest.Version(1, item))

	var patch MaterialPatch
	require.NoError(t, json.Unmarshal([]byte(`{"id":"hijack","coordenadas":{"page":9},"disponibilidad":"disponible","nombre":"Lápiz grafito","cantidad":3}`), &patch))

	edited, err := svc.EditMaterial(context.Background(), "cur-1", "m1", patch)
	require.NoError(t, err)
	assert.Equal(t, "m1", edited.ID)
	assert.Equal(t, "Lápiz grafito", edited.Nombre)
	assert.Equal(t, 3, edited.Cantidad)

	latest := latestOf(t, docs, "cur-1")
	require.Len(t, latest.Materiales, 1)
	assert.JSONEq(t, `{"page":2,"x":10}`, string(latest.Materiales[0].Coordenadas))
	assert.Empty(t, latest.Materiales[0].Disponibilidad)
	require.NotNil(t, latest.FechaActualizacion)
	assert.True(t, fixedNow.Equal(*latest.FechaActualizacion))
}

func TestMaterialPatch_KeepsFechaAprobacion(t *testing.T) {
	approved := fixedNow.Add(-time.Hour)
	later := fixedNow

	item := models.MaterialItem{ID: "m1", Aprobado: true, FechaAprobacion: &approved}
	MaterialPatch{FechaAprobacion: &later}.Apply(&item)
	assert.True(t, approved.Equal(*item.FechaAprobacion))

	fresh := models.MaterialItem{ID: "m2"}
	MaterialPatch{FechaAprobacion: &later}.Apply(&fresh)
	require.NotNil(t, fresh.FechaAprobacion)
	assert.True(t, later.Equal(*fresh.FechaAprobacion))
}

func TestEditMaterial_Errors(t *testing.T) {
	svc, docs := newTestService(t)
	storetest.Curso(t, docs, "cur-1", nil, storetest.Version(1, storetest.Item("m1", "Lápiz")))
	storetest.Curso(t, docs, "empty", nil)

	_, err := svc.EditMaterial(context.Background(), "cur-1", "nope", MaterialPatch{Nombre: strPtr("x")})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.EditMaterial(context.Background(), "empty", "m1", MaterialPatch{})
	assert.ErrorIs(t, err, errs.ErrNoVersion)

	_, err = svc.EditMaterial(context.Background(), "cur-1", "m1", MaterialPatch{Cantidad: intPtr(0)})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestDeleteMaterial_SelectorPriority(t *testing.T) {
	svc, docs := newTestService(t)
	storetest.Curso(t, docs, "cur-1", nil, storetest.Version(1,
		storetest.Item("a", "Goma"),
		storetest.Item("b", "Lápiz"),
		storetest.Item("c", "Goma"),
	))
	ctx := context.Background()

	// id wins over nombre and index
	removed, err := svc.DeleteMaterial(ctx, "cur-1", Selector{ID: strPtr("b"), Nombre: strPtr("Goma"), Index: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "b", removed.ID)

	// nombre removes only the first match
	removed, err = svc.DeleteMaterial(ctx, "cur-1", Selector{Nombre: strPtr("Goma")})
	require.NoError(t, err)
	assert.Equal(t, "a", removed.ID)

	latest := latestOf(t, docs, "cur-1")
	require.Len(t, latest.Materiales, 1)
	assert.Equal(t, "c", latest.Materiales[0].ID)

	_, err = svc.DeleteMaterial(ctx, "cur-1", Selector{Index: intPtr(5)})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Len(t, latestOf(t, docs, "cur-1").Materiales, 1)

	_, err = svc.DeleteMaterial(ctx, "cur-1", Selector{})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestReplaceAllMaterials_Defaults(t *testing.T) {
	svc, docs := newTestService(t)
	storetest.Curso(t, docs, "cur-1", nil, storetest.Version(1, storetest.Item("old", "Viejo")), storetest.Version(2))
	no := false

	items, err := svc.ReplaceAllMaterials(context.Background(), "cur-1", []MaterialInput{
		{Nombre: "Cuaderno"},
		{ID: "x", Nombre: "Texto", Tipo: models.TipoLibro, Cantidad: intPtr(2), Obligatorio: &no},
		{ID: "x", Nombre: "Duplicado"},
	})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "gen-1", items[0].ID)
	assert.Equal(t, models.TipoUtil, items[0].Tipo)
	assert.Equal(t, 1, items[0].Cantidad)
	assert.True(t, items[0].Obligatorio)

	assert.Equal(t, "x", items[1].ID)
	assert.False(t, items[1].Obligatorio)
	assert.Equal(t, "gen-2", items[2].ID)

	curso, err := docs.GetCurso(context.Background(), "cur-1")
	require.NoError(t, err)
	assert.Len(t, curso.VersionesMateriales, 2)

	_, err = svc.ReplaceAllMaterials(context.Background(), "cur-1", []MaterialInput{{Nombre: "ok"}, {Nombre: "bad", Tipo: "mueble"}})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestAddMaterial(t *testing.T) {
	svc, docs := newTestService(t)
	storetest.Curso(t, docs, "cur-1", nil, storetest.Version(1, storetest.Item("a", "Goma")))

	item, err := svc.AddMaterial(context.Background(), "cur-1", MaterialInput{ID: "a", Nombre: "Regla"})
	require.NoError(t, err)
	assert.Equal(t, "gen-1", item.ID)
	assert.Len(t, latestOf(t, docs, "cur-1").Materiales, 2)
}

func TestApproveAll_Idempotent(t *testing.T) {
	svc, docs := newTestService(t)
	storetest.Curso(t, docs, "cur-1", nil, storetest.Version(1, storetest.Item("a", "Goma"), storetest.Item("b", "Lápiz")))
	ctx := context.Background()

	res, err := svc.ApproveAll(ctx, "cur-1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.NewlyApproved)
	assert.Equal(t, models.EstadoRevisado, res.EstadoRevision)

	first := latestOf(t, docs, "cur-1")
	for _, item := range first.Materiales {
		assert.True(t, item.Aprobado)
		require.NotNil(t, item.FechaAprobacion)
		assert.True(t, fixedNow.Equal(*item.FechaAprobacion))
	}
	require.NotNil(t, first.FechaActualizacion)
	assert.True(t, fixedNow.Equal(*first.FechaActualizacion))

	svc.now = func() time.Time { return fixedNow.Add(24 * time.Hour) }
	res, err = svc.ApproveAll(ctx, "cur-1")
	require.NoError(t, err)
	assert.Zero(t, res.NewlyApproved)

	second := latestOf(t, docs, "cur-1")
	for i := range second.Materiales {
		assert.True(t, first.Materiales[i].FechaAprobacion.Equal(*second.Materiales[i].FechaAprobacion))
	}
	require.NotNil(t, second.FechaActualizacion)
	assert.True(t, fixedNow.Add(24*time.Hour).Equal(*second.FechaActualizacion))

	curso, err := docs.GetCurso(ctx, "cur-1")
	require.NoError(t, err)
	assert.Equal(t, models.EstadoRevisado, curso.EstadoRevision)
}

func TestApproveAll_Errors(t *testing.T) {
	svc, docs := newTestService(t)
	storetest.Curso(t, docs, "empty", nil)
	storetest.Curso(t, docs, "blank", nil, storetest.Version(1))

	_, err := svc.ApproveAll(context.Background(), "empty")
	assert.ErrorIs(t, err, errs.ErrNoVersion)
	_, err = svc.ApproveAll(context.Background(), "blank")
	assert.ErrorIs(t, err, errs.ErrNothingToApprove)
}

type failingUpdates struct {
	store.Store
}

func (f failingUpdates) UpdateCurso(context.Context, uint, store.CursoUpdate) error {
	return errors.New("cms down")
}

func TestApproveAll_ReviewFailureKeepsApprovals(t *testing.T) {
	docs, _ := storetest.New(t)
	storetest.Curso(t, docs, "cur-1", nil, storetest.Version(1, storetest.Item("a", "Goma")))
	svc := NewService(versions.New(failingUpdates{docs}, nil, zap.NewNop()), zap.NewNop())

	res, err := svc.ApproveAll(context.Background(), "cur-1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.NewlyApproved)
	assert.Equal(t, models.EstadoPendiente, res.EstadoRevision)
	assert.True(t, latestOf(t, docs, "cur-1").Materiales[0].Aprobado)
}

func TestEdit_ReopensReviewedList(t *testing.T) {
	svc, docs := newTestService(t)
	storetest.Curso(t, docs, "cur-1", nil, storetest.Version(1, storetest.Item("a", "Goma")))
	ctx := context.Background()

	_, err := svc.ApproveAll(ctx, "cur-1")
	require.NoError(t, err)
	_, err = svc.EditMaterial(ctx, "cur-1", "a", MaterialPatch{Marca: strPtr("Faber")})
	require.NoError(t, err)

	curso, err := docs.GetCurso(ctx, "cur-1")
	require.NoError(t, err)
	assert.Equal(t, models.EstadoEnRevision, curso.EstadoRevision)
}

func TestListVersionsAndLatest(t *testing.T) {
	svc, docs := newTestService(t)
	storetest.Curso(t, docs, "cur-1", nil, storetest.Version(1), storetest.Version(3, storetest.Item("a", "Goma")), storetest.Version(2))

	list, err := svc.ListVersions(context.Background(), "cur-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 3, list[0].FechaSubida.Day())
	assert.Equal(t, 1, list[2].FechaSubida.Day())

	latest, err := svc.GetLatest(context.Background(), "cur-1")
	require.NoError(t, err)
	assert.Len(t, latest.Version.Materiales, 1)
	assert.Nil(t, latest.Curso.VersionesMateriales)
}

func TestListCoursesBySchool_OnlyParticipating(t *testing.T) {
	svc, docs := newTestService(t)
	colegio := storetest.Colegio(t, docs, "col-1", "Andino")
	other := storetest.Colegio(t, docs, "col-2", "Otro")
	storetest.Curso(t, docs, "with-items", colegio, storetest.Version(1, storetest.Item("a", "Goma")))
	pdfOnly := storetest.Version(2)
	pdfOnly.PDFID = "pdf-1"
	storetest.Curso(t, docs, "with-pdf", colegio, pdfOnly)
	storetest.Curso(t, docs, "empty-version", colegio, storetest.Version(3))
	storetest.Curso(t, docs, "no-versions", colegio)
	storetest.Curso(t, docs, "other-school", other, storetest.Version(1, storetest.Item("a", "Goma")))

	res, err := svc.ListCoursesBySchool(context.Background(), "col-1")
	require.NoError(t, err)
	require.Len(t, res.Cursos, 2)
	assert.Equal(t, "with-items", res.Cursos[0].DocumentID)
	assert.Equal(t, 1, res.Cursos[0].Materiales)
	assert.Equal(t, "with-pdf", res.Cursos[1].DocumentID)

	_, err = svc.ListCoursesBySchool(context.Background(), "col-9")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
