package views

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloWorld(c RequestContext) error {
	return c.String(http.StatusOK, "Hello World!")
}

func someGreatViewFunction(c RequestContext) error {
	return c.String(http.StatusOK, "great")
}

func TestMakeView_DerivesRouteFromName(t *testing.T) {
	m := NewMapper("app")

	h := MakeView(On(m))(helloWorld)
	MakeView(On(m))(someGreatViewFunction)

	require.NotNil(t, h)
	assert.Equal(t, map[string]string{
		"/hello-world":              "app.views.helloWorld",
		"/some-great-view-function": "app.views.someGreatViewFunction",
	}, m.URLMap())

	c := newFakeContext(http.MethodGet, "/hello-world", "")
	require.NoError(t, h(c))
	assert.Equal(t, "Hello World!", c.written)
}

func TestMakeView_Options(t *testing.T) {
	m := NewMapper("")
	called := false
	mw := func(next HandlerFunc) HandlerFunc {
		return func(c RequestContext) error {
			called = true
			return next(c)
		}
	}

	MakeView(On(m), At("/"), Method(http.MethodPost), Named("hellWorld"), Use(mw))(helloWorld)

	route, ok := m.Lookup(http.MethodPost, "/")
	require.True(t, ok)
	assert.Equal(t, "hellWorld", route.Name)
	assert.Equal(t, http.MethodPost, route.Method)
	assert.Equal(t, "views.hellWorld", route.Target)
	require.Len(t, route.Middlewares, 1)

	require.NoError(t, route.Middlewares[0](route.Handler)(newFakeContext(http.MethodPost, "/", "")))
	assert.True(t, called)
}

func TestMakeView_PanicsOnBadPattern(t *testing.T) {
	m := NewMapper("")
	assert.Panics(t, func() {
		MakeView(On(m), At("no-slash"))(helloWorld)
	})
}

func TestView(t *testing.T) {
	m := NewMapper("")

	_, err := View(nil, On(m))
	assert.ErrorIs(t, err, ErrNilHandler)

	h, err := View(helloWorld, On(m))
	require.NoError(t, err)
	assert.NotNil(t, h)
	assert.Equal(t, 1, m.Len())
}

func TestView_DefaultMapper(t *testing.T) {
	before := Default.Len()
	_, err := View(someGreatViewFunction, Named("defaultMapperProbe"))
	require.NoError(t, err)

	assert.Equal(t, before+1, Default.Len())
	_, ok := Default.Lookup(http.MethodGet, "/default-mapper-probe")
	assert.True(t, ok)
}
