package adapters

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/viewcheck/pkg/views"
)

func newFiberServer(t *testing.T) *fiber.App {
	t.Helper()
	adapter := NewDefaultFiberAdapter()
	adapter.Use(views.RequestID())
	require.NoError(t, testMapper().Mount(adapter))
	assert.Equal(t, "Fiber", adapter.Name())
	return adapter.GetApp()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestFiberAdapter_View(t *testing.T) {
	app := newFiberServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/hello-world", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(views.RequestIDHeader))
	assert.Equal(t, "Hello World!", readBody(t, resp))
}

func TestFiberAdapter_PathParam(t *testing.T) {
	app := newFiberServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/42", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"42"}`, readBody(t, resp))
}

func TestFiberAdapter_ErrorRendering(t *testing.T) {
	app := newFiberServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"no such page"}`, readBody(t, resp))
}

func TestFiberAdapter_Endpoint(t *testing.T) {
	app := newFiberServer(t)

	req := httptest.NewRequest(http.MethodPost, "/add-numbers", strings.NewReader(`{"iLeft":1,"iRight":2}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"result":3}`, readBody(t, resp))
}
