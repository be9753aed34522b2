package adapters

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/viewcheck/pkg/views"
)

func newGinServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	adapter := NewDefaultGinAdapter()
	adapter.Use(views.RequestID())
	require.NoError(t, testMapper().Mount(adapter))
	assert.Equal(t, "Gin", adapter.Name())
	return adapter.GetEngine()
}

func TestGinAdapter_View(t *testing.T) {
	g := newGinServer(t)

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello-world", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello World!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(views.RequestIDHeader))
}

func TestGinAdapter_PathParam(t *testing.T) {
	g := newGinServer(t)

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"42"}`, rec.Body.String())
}

func TestGinAdapter_ErrorRendering(t *testing.T) {
	g := newGinServer(t)

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"no such page"}`, rec.Body.String())
}

func TestGinAdapter_Endpoint(t *testing.T) {
	g := newGinServer(t)

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add-numbers", strings.NewReader(`{"iLeft":1,"iRight":2}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":3}`, rec.Body.String())
}

func TestGinAdapter_StopWithoutStart(t *testing.T) {
	assert.NoError(t, NewDefaultGinAdapter().Stop(t.Context()))
}
