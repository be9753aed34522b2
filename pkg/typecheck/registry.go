// Package typecheck checks call arguments against types inferred from
// Hungarian-notation parameter names: "iCount" must carry an integer,
// "sName" a string, "dctOpts" a map and so on.
package typecheck

import (
	"log/slog"
	"sort"
	"sync"
)

// Registry maps name prefixes to expected type tags.
type Registry struct {
	mu     sync.RWMutex
	tags   map[string]Tag
	logger *slog.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger used to report rejected calls at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithoutBuiltins starts the registry empty instead of seeding the built-in prefixes.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		r.tags = make(map[string]Tag)
	}
}

// builtinTags are the prefixes every new registry starts with
func builtinTags() map[string]Tag {
	return map[string]Tag{
		"a":   Unchecked,
		"i":   Integer,
		"s":   Text,
		"b":   Boolean,
		"f":   Float,
		"arr": Sequence,
		"dct": Mapping,
		"set": Set,
		"obj": Object,
		"fn":  Callable,
		"cls": Class,
	}
}

// NewRegistry creates a registry seeded with the built-in prefixes
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{tags: builtinTags()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register maps prefix to tag, replacing any previous mapping.
func (r *Registry) Register(prefix string, tag Tag) error {
	if prefix == "" {
		return ErrEmptyPrefix
	}
	if tag == nil {
		return ErrNilTag
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[prefix] = tag
	return nil
}

// Lookup returns the tag registered for prefix, or Unchecked when there is none.
func (r *Registry) Lookup(prefix string) Tag {
	if prefix == "" {
		return Unchecked
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if tag, ok := r.tags[prefix]; ok {
		return tag
	}
	return Unchecked
}

// Expected returns the tag inferred for a parameter name.
func (r *Registry) Expected(name string) Tag {
	return r.Lookup(ExtractPrefix(name))
}

// Prefixes returns the registered prefixes in sorted order
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefixes := make([]string, 0, len(r.tags))
	for prefix := range r.tags {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	return prefixes
}

func (r *Registry) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// DefaultRegistry is the process-wide registry used by the package-level functions
var DefaultRegistry = NewRegistry()

// RegisterType maps prefix to tag in the default registry
func RegisterType(prefix string, tag Tag) error {
	return DefaultRegistry.Register(prefix, tag)
}

// Lookup returns the tag for prefix from the default registry
func Lookup(prefix string) Tag {
	return DefaultRegistry.Lookup(prefix)
}
