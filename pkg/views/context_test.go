package views

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// fakeContext is an in-memory RequestContext
type fakeContext struct {
	ctx     context.Context
	method  string
	path    string
	params  map[string]string
	query   url.Values
	headers http.Header
	body    []byte
	values  map[string]any

	respHeaders http.Header
	status      int
	written     any
}

func newFakeContext(method, target, body string) *fakeContext {
	u, err := url.Parse(target)
	if err != nil {
		panic(err)
	}
	return &fakeContext{
		ctx:         context.Background(),
		method:      method,
		path:        u.Path,
		params:      map[string]string{},
		query:       u.Query(),
		headers:     http.Header{},
		body:        []byte(body),
		values:      map[string]any{},
		respHeaders: http.Header{},
		status:      http.StatusOK,
	}
}

func (f *fakeContext) Context() context.Context         { return f.ctx }
func (f *fakeContext) SetContext(ctx context.Context)   { f.ctx = ctx }
func (f *fakeContext) Method() string                   { return f.method }
func (f *fakeContext) Path() string                     { return f.path }
func (f *fakeContext) Param(name string) string         { return f.params[name] }
func (f *fakeContext) QueryParam(name string) string    { return f.query.Get(name) }
func (f *fakeContext) QueryParams() map[string][]string { return f.query }
func (f *fakeContext) Header(key string) string         { return f.headers.Get(key) }
func (f *fakeContext) Body() ([]byte, error)            { return f.body, nil }
func (f *fakeContext) Get(key string) any               { return f.values[key] }
func (f *fakeContext) Set(key string, val any)          { f.values[key] = val }
func (f *fakeContext) SetHeader(key, value string)      { f.respHeaders.Set(key, value) }
func (f *fakeContext) Status() int                      { return f.status }

func (f *fakeContext) JSON(code int, v any) error {
	f.status = code
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, &f.written)
}

func (f *fakeContext) String(code int, s string) error {
	f.status = code
	f.written = s
	return nil
}

// fakeRouter records RegisterRoute calls
type fakeRouter struct {
	registered []string
	handlers   map[string]HandlerFunc
}

func newFakeRouter() *fakeRouter {
	return &fakeRouter{handlers: map[string]HandlerFunc{}}
}

func (r *fakeRouter) RegisterRoute(method, path string, handler HandlerFunc, middlewares ...MiddlewareFunc) {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	r.registered = append(r.registered, method+" "+path)
	r.handlers[method+" "+path] = handler
}

func (r *fakeRouter) Use(MiddlewareFunc)         {}
func (r *fakeRouter) Start(string) error         { return nil }
func (r *fakeRouter) Stop(context.Context) error { return nil }
func (r *fakeRouter) Name() string               { return "fake" }
