package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
)

// configMutex serializes ConfigureLoggingWithOptions, which swaps global state.
var configMutex sync.Mutex

type contextKey string

const (
	requestIdKey contextKey = "request_id"
	valuesKey    contextKey = "logger_values"
)

// Options is used to configure logging.
type Options struct {
	Subsystem string
	JSON      bool
	MinLevel  slog.Level
	Output    io.Writer
}

// ConfigureLoggingWithOptions installs a text or JSON slog handler as the
// default logger and redirects the legacy log package into it.
func ConfigureLoggingWithOptions(opts Options) *slog.Logger {
	configMutex.Lock()
	defer configMutex.Unlock()

	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.MinLevel}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.Subsystem != "" {
		logger = logger.With("subsystem", opts.Subsystem)
	}

	slog.SetDefault(logger)

	def := log.Default()
	*def = *slog.NewLogLogger(handler, slog.LevelInfo)

	return logger
}

// ConfigureFromEnv configures logging from LOG_JSON and LOG_LEVEL.
func ConfigureFromEnv(subsystem string) (*slog.Logger, error) {
	opts := Options{Subsystem: subsystem, MinLevel: slog.LevelInfo}

	if raw := os.Getenv("LOG_JSON"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_JSON %q: %w", raw, err)
		}
		opts.JSON = val
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := opts.MinLevel.UnmarshalText([]byte(strings.ToUpper(raw))); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
		}
	}

	return ConfigureLoggingWithOptions(opts), nil
}

// WithRequestId adds a request ID to the context.
func WithRequestId(ctx context.Context, requestId string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, requestIdKey, requestId)
}

// GetRequestId returns the request ID from the context, if any.
func GetRequestId(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	val, ok := ctx.Value(requestIdKey).(string)

	return val, ok
}

// With returns a new context carrying extra key-value pairs that Get adds to
// every logger it returns.
func With(ctx context.Context, values ...any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	if len(values) == 0 {
		return ctx
	}

	vals := append(append([]any(nil), getValues(ctx)...), values...)

	return context.WithValue(ctx, valuesKey, vals)
}

func getValues(ctx context.Context) []any {
	vals, _ := ctx.Value(valuesKey).([]any)

	return vals
}

// Get returns the default logger decorated with whatever the context carries.
func Get(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if ctx == nil {
		return logger
	}

	if requestId, ok := GetRequestId(ctx); ok {
		logger = logger.With("request-id", requestId)
	}

	if vals := getValues(ctx); len(vals) > 0 {
		logger = logger.With(vals...)
	}

	return logger
}
