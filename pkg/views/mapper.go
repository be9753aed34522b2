// Package views registers view handlers as URL routes derived from their
// function names and mounts them onto echo, gin or fiber.
package views

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Route is one entry of the URL map
type Route struct {
	// Pattern is the URL path, e.g. "/hello-world" or "/users/{id}"
	Pattern string

	// Method is the HTTP method the view answers (default GET)
	Method string

	// Name is the view name the route was derived from
	Name string

	// Target identifies the view as "<app>.views.<name>"
	Target string

	// Handler is the view itself
	Handler HandlerFunc

	// Middlewares apply to this route only
	Middlewares []MiddlewareFunc
}

// Mapper is an insertion-ordered URL map keyed by method and pattern.
// Registering the same method and pattern again replaces the route but keeps
// its original position; other methods on the same pattern are separate routes.
type Mapper struct {
	mu     sync.RWMutex
	app    string
	routes []Route
	index  map[string]int
	logger *slog.Logger
}

// MapperOption configures a Mapper
type MapperOption func(*Mapper)

// WithLogger sets the logger used when routes are registered and mounted
func WithLogger(logger *slog.Logger) MapperOption {
	return func(m *Mapper) {
		m.logger = logger
	}
}

// NewMapper creates an empty URL map for the named application
func NewMapper(app string, opts ...MapperOption) *Mapper {
	m := &Mapper{
		app:   app,
		index: make(map[string]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Default is the URL map used by MakeView and View unless On is given
var Default = NewMapper("")

// App returns the application name used to build route targets
func (m *Mapper) App() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.app
}

// SetApp changes the application name. Targets are built when routes are
// read, so this may happen before or after views register.
func (m *Mapper) SetApp(app string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.app = app
}

// Register adds a route to the map
func (m *Mapper) Register(route Route) error {
	if route.Name == "" {
		return ErrEmptyName
	}
	if route.Handler == nil {
		return fmt.Errorf("%s: %w", route.Name, ErrNilHandler)
	}
	if route.Pattern == "" {
		route.Pattern = "/" + DeriveRoute(route.Name)
	}
	if !strings.HasPrefix(route.Pattern, "/") {
		return fmt.Errorf("%s: %w: %q", route.Name, ErrInvalidPattern, route.Pattern)
	}
	if route.Method == "" {
		route.Method = http.MethodGet
	}
	route.Method = strings.ToUpper(route.Method)

	m.mu.Lock()
	defer m.mu.Unlock()

	key := routeKey(route.Method, route.Pattern)
	if i, ok := m.index[key]; ok {
		m.routes[i] = route
	} else {
		m.index[key] = len(m.routes)
		m.routes = append(m.routes, route)
	}

	m.log().Debug("registered view", "pattern", route.Pattern, "method", route.Method, "view", route.Name)
	return nil
}

// Routes returns a copy of the map in registration order
func (m *Mapper) Routes() []Route {
	m.mu.RLock()
	defer m.mu.RUnlock()

	routes := make([]Route, len(m.routes))
	for i, route := range m.routes {
		if route.Target == "" {
			route.Target = Target(m.app, route.Name)
		}
		routes[i] = route
	}
	return routes
}

// Lookup returns the route registered for method and pattern
func (m *Mapper) Lookup(method, pattern string) (Route, bool) {
	m.mu.RLock()
	i, ok := m.index[routeKey(strings.ToUpper(method), pattern)]
	m.mu.RUnlock()
	if !ok {
		return Route{}, false
	}
	return m.Routes()[i], true
}

// Len returns the number of routes
func (m *Mapper) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.routes)
}

// URLMap returns pattern -> target for every route. A pattern served by
// more than one method is keyed "METHOD pattern" instead.
func (m *Mapper) URLMap() map[string]string {
	routes := m.Routes()
	keys := urlKeys(routes)

	urls := make(map[string]string, len(routes))
	for i, route := range routes {
		urls[keys[i]] = route.Target
	}
	return urls
}

// Mount registers every route with router, in map order
func (m *Mapper) Mount(router Router) error {
	if router == nil {
		return ErrNilRouter
	}
	for _, route := range m.Routes() {
		router.RegisterRoute(route.Method, RouterPath(route.Pattern), route.Handler, route.Middlewares...)
		m.log().Info("mounted view",
			"router", router.Name(),
			"method", route.Method,
			"pattern", route.Pattern,
			"target", route.Target)
	}
	return nil
}

// Dump writes the URL map as an ordered pattern -> target document in "json" or "yaml".
func (m *Mapper) Dump(w io.Writer, format string) error {
	return DumpRoutes(w, format, m.Routes())
}

// DumpRoutes writes routes as an ordered pattern -> target document
func DumpRoutes(w io.Writer, format string, routes []Route) error {
	switch format {
	case "json", "":
		return dumpJSON(w, routes)
	case "yaml":
		return dumpYAML(w, routes)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func dumpJSON(w io.Writer, routes []Route) error {
	keys := urlKeys(routes)

	var b strings.Builder
	b.WriteString("{")
	for i, route := range routes {
		if i > 0 {
			b.WriteString(",")
		}
		key, err := json.Marshal(keys[i])
		if err != nil {
			return err
		}
		value, err := json.Marshal(route.Target)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "\n    %s: %s", key, value)
	}
	if len(routes) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func dumpYAML(w io.Writer, routes []Route) error {
	keys := urlKeys(routes)

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for i, route := range routes {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: keys[i]},
			&yaml.Node{Kind: yaml.ScalarNode, Value: route.Target},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func routeKey(method, pattern string) string {
	return method + " " + pattern
}

// urlKeys returns the URL map key of each route: its pattern, or
// "METHOD pattern" when several routes share the pattern.
func urlKeys(routes []Route) []string {
	count := make(map[string]int, len(routes))
	for _, route := range routes {
		count[route.Pattern]++
	}

	keys := make([]string, len(routes))
	for i, route := range routes {
		if count[route.Pattern] > 1 {
			keys[i] = routeKey(route.Method, route.Pattern)
		} else {
			keys[i] = route.Pattern
		}
	}
	return keys
}

// Target builds the dotted identifier of a view: "<app>.views.<name>", or
// "views.<name>" without an application name.
func Target(app, name string) string {
	if app == "" {
		return "views." + name
	}
	return app + ".views." + name
}

func (m *Mapper) log() *slog.Logger {
	if m.logger != nil {
		return m.logger
	}
	return slog.Default()
}
