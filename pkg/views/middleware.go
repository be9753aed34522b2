package views

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/viewcheck/internal/logger"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an ID, reusing the one the client sent if
// any, and attaches it to the request context so logger.Get picks it up.
func RequestID() MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(c RequestContext) error {
			id := c.Header(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			c.SetHeader(RequestIDHeader, id)
			c.Set("request_id", id)
			c.SetContext(logger.WithRequestId(c.Context(), id))

			return next(c)
		}
	}
}

// Logging logs one line per request. A nil logger uses the request-scoped
// logger from the context.
func Logging(log *slog.Logger) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(c RequestContext) error {
			start := time.Now()
			err := next(c)

			l := log
			if l == nil {
				l = logger.Get(c.Context())
			} else if id, ok := logger.GetRequestId(c.Context()); ok {
				l = l.With("request-id", id)
			}

			status := c.Status()
			if err != nil {
				status, _ = ErrorResponse(err)
			}

			attrs := []any{
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"latency", time.Since(start),
			}
			if err != nil {
				l.Warn("request failed", append(attrs, "error", err)...)
			} else {
				l.Info("request served", attrs...)
			}
			return err
		}
	}
}
