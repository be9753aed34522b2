package adapters

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/toyz/viewcheck/pkg/views"
)

// FiberAdapter wraps a Fiber app to implement views.Router
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates a new Fiber adapter instance
func NewFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
			}
			code, body := views.ErrorResponse(err)
			return c.Status(code).JSON(body)
		},
	})

	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a new Fiber adapter that recovers from panics
func NewDefaultFiberAdapter() *FiberAdapter {
	adapter := NewFiberAdapter()
	adapter.app.Use(recover.New())
	return adapter
}

// RegisterRoute registers a route with the Fiber app
func (fa *FiberAdapter) RegisterRoute(method, path string, handler views.HandlerFunc, middlewares ...views.MiddlewareFunc) {
	handlers := make([]fiber.Handler, 0, len(middlewares)+1)
	for _, mw := range middlewares {
		handlers = append(handlers, convertMiddleware(mw))
	}
	handlers = append(handlers, convertHandler(handler))

	fa.app.Add(method, path, handlers...)
}

// Use adds middleware to the Fiber app
func (fa *FiberAdapter) Use(middleware views.MiddlewareFunc) {
	fa.app.Use(convertMiddleware(middleware))
}

// Start starts the Fiber server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop stops the Fiber server
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// GetApp returns the underlying Fiber app
func (fa *FiberAdapter) GetApp() *fiber.App {
	return fa.app
}

func convertHandler(handler views.HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := handler(&FiberRequestContext{ctx: c}); err != nil {
			code, body := views.ErrorResponse(err)
			return c.Status(code).JSON(body)
		}
		return nil
	}
}

func convertMiddleware(middleware views.MiddlewareFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		next := func(views.RequestContext) error {
			return c.Next()
		}
		return middleware(next)(&FiberRequestContext{ctx: c})
	}
}

// FiberRequestContext wraps fiber.Ctx to implement views.RequestContext
type FiberRequestContext struct {
	ctx *fiber.Ctx
}

// Context returns the request context
func (frc *FiberRequestContext) Context() context.Context {
	return frc.ctx.UserContext()
}

// SetContext replaces the request context
func (frc *FiberRequestContext) SetContext(ctx context.Context) {
	frc.ctx.SetUserContext(ctx)
}

// Method returns the HTTP method
func (frc *FiberRequestContext) Method() string {
	return frc.ctx.Method()
}

// Path returns the request path
func (frc *FiberRequestContext) Path() string {
	return frc.ctx.Path()
}

// Param returns a path parameter
func (frc *FiberRequestContext) Param(name string) string {
	return frc.ctx.Params(name)
}

// QueryParam returns a query parameter
func (frc *FiberRequestContext) QueryParam(name string) string {
	return frc.ctx.Query(name)
}

// QueryParams returns all query parameters
func (frc *FiberRequestContext) QueryParams() map[string][]string {
	result := make(map[string][]string)
	frc.ctx.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		result[k] = append(result[k], string(value))
	})
	return result
}

// Header returns a request header
func (frc *FiberRequestContext) Header(key string) string {
	return frc.ctx.Get(key)
}

// Body returns a copy of the request body; fasthttp reuses the original buffer
func (frc *FiberRequestContext) Body() ([]byte, error) {
	return append([]byte(nil), frc.ctx.Body()...), nil
}

// Get retrieves data from context
func (frc *FiberRequestContext) Get(key string) any {
	return frc.ctx.Locals(key)
}

// Set stores data in context
func (frc *FiberRequestContext) Set(key string, val any) {
	frc.ctx.Locals(key, val)
}

// SetHeader sets a response header
func (frc *FiberRequestContext) SetHeader(key, value string) {
	frc.ctx.Set(key, value)
}

// Status returns the response status code
func (frc *FiberRequestContext) Status() int {
	return frc.ctx.Response().StatusCode()
}

// JSON writes JSON response
func (frc *FiberRequestContext) JSON(code int, v any) error {
	return frc.ctx.Status(code).JSON(v)
}

// String writes string response
func (frc *FiberRequestContext) String(code int, s string) error {
	return frc.ctx.Status(code).SendString(s)
}
