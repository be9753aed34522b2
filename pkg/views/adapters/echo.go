package adapters

import (
	"bytes"
	"context"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/toyz/viewcheck/pkg/views"
)

// EchoAdapter implements views.Router for Echo v4
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates a new Echo adapter with a quiet Echo instance
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return &EchoAdapter{engine: e}
}

// RegisterRoute registers a route with the Echo server
func (ea *EchoAdapter) RegisterRoute(method, path string, handler views.HandlerFunc, middlewares ...views.MiddlewareFunc) {
	echoMiddlewares := make([]echo.MiddlewareFunc, len(middlewares))
	for i, mw := range middlewares {
		echoMiddlewares[i] = ea.convertMiddleware(mw)
	}

	ea.engine.Add(method, path, ea.convertHandler(handler), echoMiddlewares...)
}

// Use adds global middleware
func (ea *EchoAdapter) Use(middleware views.MiddlewareFunc) {
	ea.engine.Use(ea.convertMiddleware(middleware))
}

// Start starts the server
func (ea *EchoAdapter) Start(addr string) error {
	return ea.engine.Start(addr)
}

// Stop stops the server
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// GetEngine returns the underlying Echo instance
func (ea *EchoAdapter) GetEngine() *echo.Echo {
	return ea.engine
}

// convertHandler renders handler errors itself so middleware sees the final status
func (ea *EchoAdapter) convertHandler(handler views.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := handler(&EchoRequestContext{context: c}); err != nil {
			if c.Response().Committed {
				return err
			}
			code, body := views.ErrorResponse(err)
			return c.JSON(code, body)
		}
		return nil
	}
}

func (ea *EchoAdapter) convertMiddleware(middleware views.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := middleware(func(views.RequestContext) error {
				return next(c)
			})
			return h(&EchoRequestContext{context: c})
		}
	}
}

// EchoRequestContext implements views.RequestContext for Echo
type EchoRequestContext struct {
	context echo.Context
}

// Context returns the request context
func (erc *EchoRequestContext) Context() context.Context {
	return erc.context.Request().Context()
}

// SetContext replaces the request context
func (erc *EchoRequestContext) SetContext(ctx context.Context) {
	erc.context.SetRequest(erc.context.Request().WithContext(ctx))
}

// Method returns the HTTP method
func (erc *EchoRequestContext) Method() string {
	return erc.context.Request().Method
}

// Path returns the request path
func (erc *EchoRequestContext) Path() string {
	return erc.context.Request().URL.Path
}

// Param returns path parameter by name
func (erc *EchoRequestContext) Param(name string) string {
	return erc.context.Param(name)
}

// QueryParam returns query parameter by name
func (erc *EchoRequestContext) QueryParam(name string) string {
	return erc.context.QueryParam(name)
}

// QueryParams returns all query parameters
func (erc *EchoRequestContext) QueryParams() map[string][]string {
	return erc.context.QueryParams()
}

// Header returns a request header
func (erc *EchoRequestContext) Header(key string) string {
	return erc.context.Request().Header.Get(key)
}

// Body reads the request body and puts it back so later readers see it too
func (erc *EchoRequestContext) Body() ([]byte, error) {
	req := erc.context.Request()
	if req.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// Get retrieves data from context
func (erc *EchoRequestContext) Get(key string) any {
	return erc.context.Get(key)
}

// Set stores data in context
func (erc *EchoRequestContext) Set(key string, val any) {
	erc.context.Set(key, val)
}

// SetHeader sets a response header
func (erc *EchoRequestContext) SetHeader(key, value string) {
	erc.context.Response().Header().Set(key, value)
}

// Status returns the response status code
func (erc *EchoRequestContext) Status() int {
	return erc.context.Response().Status
}

// JSON writes JSON response
func (erc *EchoRequestContext) JSON(code int, v any) error {
	return erc.context.JSON(code, v)
}

// String writes string response
func (erc *EchoRequestContext) String(code int, s string) error {
	return erc.context.String(code, s)
}
