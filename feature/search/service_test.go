package search

import (
	"context"
	"testing"

	"material-manager/core/errs"
	"material-manager/feature/materials/models"
	"material-manager/feature/materials/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func item(id, nombre string, cantidad int) models.MaterialItem {
	it := storetest.Item(id, nombre)
	it.Cantidad = cantidad
	return it
}

func seed(t *testing.T) *Service {
	t.Helper()
	docs, _ := storetest.New(t)
	andino := storetest.Colegio(t, docs, "col-1", "Andino")
	liceo := storetest.Colegio(t, docs, "col-2", "Liceo")

	old := storetest.Version(1, item("o1", "Lápiz de colores", 9))
	latest := storetest.Version(5, item("m1", "Lápiz grafito HB", 2), item("m2", "Goma de borrar", 1))
	storetest.Curso(t, docs, "cur-1", andino, old, latest)

	libro := item("m3", "Texto Lenguaje 3° básico", 1)
	libro.Tipo = models.TipoLibro
	libro.ISBN = "978-956-15-3000-1"
	libro.Marca = "Santillana"
	storetest.Curso(t, docs, "cur-2", andino, storetest.Version(2, libro, item("m4", "Lapiz pasta azul", 3)))

	storetest.Curso(t, docs, "cur-3", liceo, storetest.Version(3, item("m5", "Cuaderno", 4)))
	storetest.Curso(t, docs, "cur-4", liceo)

	return NewService(docs, Config{PageSizeCeiling: 50}, zap.NewNop())
}

func TestSearchAcrossLists_SubstringIgnoresAccents(t *testing.T) {
	svc := seed(t)

	res, err := svc.SearchAcrossLists(context.Background(), "  LAPIZ ")
	require.NoError(t, err)
	assert.False(t, res.Truncated)
	assert.Equal(t, 3, res.Scanned)
	require.Len(t, res.Hits, 2)

	assert.Equal(t, "cur-1", res.Hits[0].Curso)
	assert.Equal(t, "m1", res.Hits[0].Material.ID)
	assert.Equal(t, "Andino", res.Hits[0].ColegioNombre)
	assert.Equal(t, 60, res.Hits[0].TotalProductos)
	assert.Equal(t, "m4", res.Hits[1].Material.ID)
	assert.Equal(t, 90, res.Hits[1].TotalProductos)

	assert.Equal(t, Totals{Colegios: 1, Cursos: 2, Matricula: 60, TotalProductos: 150}, res.Totals)
}

func TestSearchAcrossLists_OnlyLatestVersion(t *testing.T) {
	svc := seed(t)

	res, err := svc.SearchAcrossLists(context.Background(), "colores")
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
	assert.Equal(t, Totals{}, res.Totals)
}

func TestSearchAcrossLists_TokensAcrossFields(t *testing.T) {
	svc := seed(t)

	res, err := svc.SearchAcrossLists(context.Background(), "santillana lenguaje")
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "m3", res.Hits[0].Material.ID)

	res, err = svc.SearchAcrossLists(context.Background(), "956-15")
	require.NoError(t, err)
	assert.Len(t, res.Hits, 1)

	res, err = svc.SearchAcrossLists(context.Background(), "santillana matematica")
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}

func TestSearchAcrossLists_RejectsShortQuery(t *testing.T) {
	svc := seed(t)

	_, err := svc.SearchAcrossLists(context.Background(), " a ")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = svc.SearchAcrossLists(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestSearchAcrossLists_Truncated(t *testing.T) {
	docs, _ := storetest.New(t)
	for _, key := range []string{"a", "b", "c"} {
		storetest.Curso(t, docs, key, nil, storetest.Version(1, item(key+"1", "Cuaderno", 1)))
	}
	svc := NewService(docs, Config{PageSizeCeiling: 2}, zap.NewNop())

	res, err := svc.SearchAcrossLists(context.Background(), "cuaderno")
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Len(t, res.Hits, 2)
	assert.Equal(t, 0, res.Totals.Colegios)
}
