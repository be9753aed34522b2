package adapters

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/toyz/viewcheck/pkg/views"
)

// GinAdapter implements views.Router for the Gin framework
type GinAdapter struct {
	engine *gin.Engine

	mu     sync.Mutex
	server *http.Server
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates a new Gin adapter with a Gin engine that only
// recovers from panics; request logging is left to views.Logging.
func NewDefaultGinAdapter() *GinAdapter {
	g := gin.New()
	g.Use(gin.Recovery())
	return &GinAdapter{engine: g}
}

// RegisterRoute registers a route with the Gin server
func (ga *GinAdapter) RegisterRoute(method, path string, handler views.HandlerFunc, middlewares ...views.MiddlewareFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(middlewares)+1)
	for _, middleware := range middlewares {
		handlers = append(handlers, ga.convertMiddleware(middleware))
	}
	handlers = append(handlers, ga.convertHandler(handler))

	ga.engine.Handle(method, path, handlers...)
}

// Use registers a global middleware with the Gin server
func (ga *GinAdapter) Use(middleware views.MiddlewareFunc) {
	ga.engine.Use(ga.convertMiddleware(middleware))
}

// Start serves the engine on addr until Stop is called
func (ga *GinAdapter) Start(addr string) error {
	ga.mu.Lock()
	ga.server = &http.Server{Addr: addr, Handler: ga.engine}
	server := ga.server
	ga.mu.Unlock()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down
func (ga *GinAdapter) Stop(ctx context.Context) error {
	ga.mu.Lock()
	server := ga.server
	ga.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// GetEngine returns the underlying Gin engine
func (ga *GinAdapter) GetEngine() *gin.Engine {
	return ga.engine
}

func (ga *GinAdapter) convertHandler(handler views.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler(&GinRequestContext{ctx: c}); err != nil {
			if c.Writer.Written() {
				_ = c.Error(err)
				return
			}
			code, body := views.ErrorResponse(err)
			c.JSON(code, body)
		}
	}
}

func (ga *GinAdapter) convertMiddleware(middleware views.MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := func(views.RequestContext) error {
			c.Next()
			return nil
		}

		if err := middleware(next)(&GinRequestContext{ctx: c}); err != nil {
			code, body := views.ErrorResponse(err)
			c.AbortWithStatusJSON(code, body)
		}
	}
}

// GinRequestContext implements views.RequestContext for Gin
type GinRequestContext struct {
	ctx *gin.Context
}

// Context returns the request context
func (grc *GinRequestContext) Context() context.Context {
	return grc.ctx.Request.Context()
}

// SetContext replaces the request context
func (grc *GinRequestContext) SetContext(ctx context.Context) {
	grc.ctx.Request = grc.ctx.Request.WithContext(ctx)
}

// Method returns the HTTP method
func (grc *GinRequestContext) Method() string {
	return grc.ctx.Request.Method
}

// Path returns the request path
func (grc *GinRequestContext) Path() string {
	return grc.ctx.Request.URL.Path
}

// Param returns a path parameter
func (grc *GinRequestContext) Param(name string) string {
	return grc.ctx.Param(name)
}

// QueryParam returns a query parameter
func (grc *GinRequestContext) QueryParam(name string) string {
	return grc.ctx.Query(name)
}

// QueryParams returns all query parameters
func (grc *GinRequestContext) QueryParams() map[string][]string {
	return grc.ctx.Request.URL.Query()
}

// Header returns a request header
func (grc *GinRequestContext) Header(key string) string {
	return grc.ctx.GetHeader(key)
}

// Body reads the request body and puts it back so later readers see it too
func (grc *GinRequestContext) Body() ([]byte, error) {
	if grc.ctx.Request.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(grc.ctx.Request.Body)
	if err != nil {
		return nil, err
	}
	grc.ctx.Request.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// Get retrieves data from context
func (grc *GinRequestContext) Get(key string) any {
	val, _ := grc.ctx.Get(key)
	return val
}

// Set stores data in context
func (grc *GinRequestContext) Set(key string, val any) {
	grc.ctx.Set(key, val)
}

// SetHeader sets a response header
func (grc *GinRequestContext) SetHeader(key, value string) {
	grc.ctx.Header(key, value)
}

// Status returns the response status code
func (grc *GinRequestContext) Status() int {
	return grc.ctx.Writer.Status()
}

// JSON writes JSON response
func (grc *GinRequestContext) JSON(code int, v any) error {
	grc.ctx.JSON(code, v)
	return nil
}

// String writes string response
func (grc *GinRequestContext) String(code int, s string) error {
	grc.ctx.String(code, "%s", s)
	return nil
}
