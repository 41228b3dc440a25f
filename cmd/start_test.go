package cmd

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"material-manager/core/config"
	"material-manager/core/database"
	"material-manager/core/lock"
	"material-manager/core/server"
	"material-manager/feature/bulk"
	"material-manager/feature/materials/store"
	"material-manager/feature/materials/versions"
	"material-manager/feature/search"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// sqliteApp is an app with only the SQL document store: no catalog, no bucket.
func sqliteApp(t *testing.T, apiKey string) *app {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	docs := store.NewSQL(db)
	return &app{
		cfg: &config.Config{
			Server: server.Config{ApiKey: apiKey},
			Bulk:   bulk.Config{Workers: 2, MaxIDs: 10},
			Search: search.Config{PageSizeCeiling: 100},
		},
		logger:   zap.NewNop(),
		db:       db,
		docs:     docs,
		versions: versions.New(docs, lock.NewLocal(), zap.NewNop()),
	}
}

func TestNewServer_Health(t *testing.T) {
	srv, err := newServer(sqliteApp(t, "secret"))
	require.NoError(t, err)

	resp, err := srv.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))

	var body struct {
		Status   string          `json:"status"`
		Features map[string]bool `json:"features"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.True(t, body.Features["materials"])
	assert.True(t, body.Features["bulk"])
	assert.False(t, body.Features["availability"])
	assert.False(t, body.Features["publish"])
	assert.True(t, body.Features["integrity"])
}

func TestNewServer_APIKey(t *testing.T) {
	srv, err := newServer(sqliteApp(t, "secret"))
	require.NoError(t, err)

	resp, err := srv.Test(httptest.NewRequest("GET", "/cursos/missing/versiones", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/cursos/missing/versiones", nil)
	req.Header.Set("X-API-Key", "secret")
	resp, err = srv.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestNewServer_DisabledFeatureHasNoRoutes(t *testing.T) {
	srv, err := newServer(sqliteApp(t, ""))
	require.NoError(t, err)

	resp, err := srv.Test(httptest.NewRequest("POST", "/cursos/missing/disponibilidad", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
