package views

import (
	"fmt"

	"github.com/toyz/viewcheck/pkg/typecheck"
)

type viewConfig struct {
	pattern     string
	method      string
	name        string
	mapper      *Mapper
	middlewares []MiddlewareFunc
}

// ViewOption configures how a view is registered
type ViewOption func(*viewConfig)

// At sets an explicit route pattern instead of deriving one from the name
func At(pattern string) ViewOption {
	return func(c *viewConfig) {
		c.pattern = pattern
	}
}

// Method sets the HTTP method
func Method(method string) ViewOption {
	return func(c *viewConfig) {
		c.method = method
	}
}

// Named overrides the view name. Closures have no useful Go name, so they
// need this.
func Named(name string) ViewOption {
	return func(c *viewConfig) {
		c.name = name
	}
}

// On registers the view on m instead of Default
func On(m *Mapper) ViewOption {
	return func(c *viewConfig) {
		c.mapper = m
	}
}

// Use attaches route-level middleware
func Use(middlewares ...MiddlewareFunc) ViewOption {
	return func(c *viewConfig) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// View registers handler as a route and returns it unchanged. The route is
// "/" followed by the dashed form of the handler's name unless At is given.
func View(handler HandlerFunc, opts ...ViewOption) (HandlerFunc, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	cfg := &viewConfig{mapper: Default}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.name == "" {
		cfg.name = typecheck.FuncName(handler)
	}

	err := cfg.mapper.Register(Route{
		Pattern:     cfg.pattern,
		Method:      cfg.method,
		Name:        cfg.name,
		Handler:     handler,
		Middlewares: cfg.middlewares,
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}

// MakeView returns a decorator that registers the views it is applied to.
// It panics if registration fails, which only happens for a malformed pattern
// or an unnamed view.
func MakeView(opts ...ViewOption) func(HandlerFunc) HandlerFunc {
	return func(handler HandlerFunc) HandlerFunc {
		h, err := View(handler, opts...)
		if err != nil {
			panic(fmt.Sprintf("views: %v", err))
		}
		return h
	}
}
