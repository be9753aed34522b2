package views

import (
	"context"
)

// RequestContext provides a framework-agnostic view of one HTTP request
type RequestContext interface {
	// Request-scoped context
	Context() context.Context
	SetContext(ctx context.Context)

	// Request data
	Method() string
	Path() string
	Param(name string) string
	QueryParam(name string) string
	QueryParams() map[string][]string
	Header(key string) string
	Body() ([]byte, error)

	// Per-request values
	Get(key string) any
	Set(key string, val any)

	// Response
	SetHeader(key, value string)
	Status() int
	JSON(code int, v any) error
	String(code int, s string) error
}

// HandlerFunc defines the signature for view handlers
type HandlerFunc func(RequestContext) error

// MiddlewareFunc defines the signature for middleware
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// Router is the host web framework a Mapper registers its routes with
type Router interface {
	// Route registration
	RegisterRoute(method, path string, handler HandlerFunc, middlewares ...MiddlewareFunc)

	// Global middleware
	Use(middleware MiddlewareFunc)

	// Server lifecycle
	Start(addr string) error
	Stop(ctx context.Context) error

	// Name of the framework
	Name() string
}
