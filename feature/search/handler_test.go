package search

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Search(t *testing.T) {
	app := fiber.New()
	NewHandler(seed(t)).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/materiales/buscar?q=goma", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var res Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Len(t, res.Hits, 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/materiales/buscar?q=x", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
