package materials_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"material-manager/core/lock"
	"material-manager/feature/materials"
	"material-manager/feature/materials/models"
	"material-manager/feature/materials/store/storetest"
	"material-manager/feature/materials/versions"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T) (*fiber.App, *versions.Store) {
	t.Helper()
	docs, _ := storetest.New(t)
	colegio := storetest.Colegio(t, docs, "col-1", "Andino")
	storetest.Curso(t, docs, "cur-1", colegio, storetest.Version(1, storetest.Item("m1", "Lápiz"), storetest.Item("m2", "Goma")))
	storetest.Curso(t, docs, "empty", colegio)

	vs := versions.New(docs, lock.NewLocal(), zap.NewNop())
	feature := materials.NewFeature(vs, zap.NewNop())
	assert.Equal(t, "materials", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, vs
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHandler_GetMaterialsAndVersions(t *testing.T) {
	app, _ := newApp(t)

	status, body := do(t, app, "GET", "/cursos/cur-1/materiales", "")
	assert.Equal(t, fiber.StatusOK, status)
	var latest materials.LatestList
	require.NoError(t, json.Unmarshal(body, &latest))
	assert.Len(t, latest.Version.Materiales, 2)

	status, _ = do(t, app, "GET", "/cursos/empty/materiales", "")
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = do(t, app, "GET", "/cursos/missing/versiones", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = do(t, app, "GET", "/cursos/cur-1/versiones", "")
	assert.Equal(t, fiber.StatusOK, status)
	var list []models.MaterialVersion
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)
}

func TestHandler_EditAddDelete(t *testing.T) {
	app, vs := newApp(t)

	status, body := do(t, app, "PATCH", "/cursos/cur-1/materiales/m1", `{"nombre":"Lápiz mina","cantidad":2}`)
	assert.Equal(t, fiber.StatusOK, status)
	var item models.MaterialItem
	require.NoError(t, json.Unmarshal(body, &item))
	assert.Equal(t, "Lápiz mina", item.Nombre)

	status, _ = do(t, app, "PATCH", "/cursos/cur-1/materiales/zz", `{"nombre":"x"}`)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = do(t, app, "PATCH", "/cursos/cur-1/materiales/m1", `{"tipo":"mueble"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = do(t, app, "POST", "/cursos/cur-1/materiales", `{"nombre":"Regla"}`)
	assert.Equal(t, fiber.StatusCreated, status)

	status, _ = do(t, app, "DELETE", "/cursos/cur-1/materiales?nombre=Goma", "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, "DELETE", "/cursos/cur-1/materiales", `{"id":"m1"}`)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, "DELETE", "/cursos/cur-1/materiales", `{"id":"m1"}`)
	assert.Equal(t, fiber.StatusNotFound, status)

	curso, err := vs.Get(t.Context(), "cur-1")
	require.NoError(t, err)
	_, latest, err := versions.Latest(curso.VersionesMateriales)
	require.NoError(t, err)
	require.Len(t, latest.Materiales, 1)
	assert.Equal(t, "Regla", latest.Materiales[0].Nombre)
}

func TestHandler_ReplaceAndApprove(t *testing.T) {
	app, _ := newApp(t)

	status, body := do(t, app, "PUT", "/cursos/cur-1/materiales", `{"materiales":[{"nombre":"Cuaderno"},{"nombre":"Texto","tipo":"libro"}]}`)
	assert.Equal(t, fiber.StatusOK, status)
	var items []models.MaterialItem
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].ID)

	status, body = do(t, app, "POST", "/cursos/cur-1/aprobar", "")
	assert.Equal(t, fiber.StatusOK, status)
	var approval materials.Approval
	require.NoError(t, json.Unmarshal(body, &approval))
	assert.Equal(t, 2, approval.NewlyApproved)

	status, _ = do(t, app, "POST", "/cursos/empty/aprobar", "")
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = do(t, app, "PUT", "/cursos/cur-1/materiales", `{"materiales":[]}`)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = do(t, app, "POST", "/cursos/cur-1/aprobar", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestHandler_CoursesBySchool(t *testing.T) {
	app, _ := newApp(t)

	status, body := do(t, app, "GET", "/colegios/col-1/cursos", "")
	assert.Equal(t, fiber.StatusOK, status)
	var res materials.SchoolCourses
	require.NoError(t, json.Unmarshal(body, &res))
	require.Len(t, res.Cursos, 1)
	assert.Equal(t, "cur-1", res.Cursos[0].DocumentID)
}
