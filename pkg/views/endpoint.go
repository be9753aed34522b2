package views

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/toyz/viewcheck/internal/logger"
	"github.com/toyz/viewcheck/pkg/typecheck"
)

type endpointConfig struct {
	registry *typecheck.Registry
}

// EndpointOption configures Endpoint
type EndpointOption func(*endpointConfig)

// WithRegistry checks calls against r instead of typecheck.DefaultRegistry
func WithRegistry(r *typecheck.Registry) EndpointOption {
	return func(c *endpointConfig) {
		c.registry = r
	}
}

// Endpoint exposes a type-checked Func as a view.
//
// Arguments come from a JSON object body, or from the query string when the
// body is empty; path parameters named like a declared parameter take
// precedence over both. Declared parameters are passed positionally in
// declaration order up to the first one the request does not supply, and
// every remaining key is passed as a keyword argument in sorted order.
// JSON numbers become int64 when integral and float64 otherwise.
//
// A type mismatch answers 400 with the report, an error from fn answers 500
// (or the code of an *HTTPError), anything else answers 200 {"result": ...}.
func Endpoint(sig typecheck.Signature, fn typecheck.Func, opts ...EndpointOption) (HandlerFunc, error) {
	cfg := &endpointConfig{registry: typecheck.DefaultRegistry}
	for _, opt := range opts {
		opt(cfg)
	}

	checked, err := cfg.registry.Wrap(sig, fn)
	if err != nil {
		return nil, err
	}

	return func(c RequestContext) error {
		values, err := requestValues(c, sig, cfg.registry)
		if err != nil {
			return err
		}

		args, kwargs := splitArguments(sig.Params, values)
		result, err := checked(args, kwargs)

		var mismatch *typecheck.MismatchError
		switch {
		case errors.As(err, &mismatch):
			logger.Get(c.Context()).Info("rejected request", "func", mismatch.Func, "mismatches", len(mismatch.Mismatches))
			return NewHTTPErrorWithDetails(http.StatusBadRequest, mismatch.Error(), mismatchDetails(mismatch))
		case err != nil:
			var httpErr *HTTPError
			if errors.As(err, &httpErr) {
				return httpErr
			}
			logger.Get(c.Context()).Error("endpoint failed", "func", sig.Name, "error", err)
			return ErrInternalServerError(err.Error())
		}

		return c.JSON(http.StatusOK, map[string]any{"result": result})
	}, nil
}

// MustEndpoint is like Endpoint but panics on a malformed signature
func MustEndpoint(sig typecheck.Signature, fn typecheck.Func, opts ...EndpointOption) HandlerFunc {
	h, err := Endpoint(sig, fn, opts...)
	if err != nil {
		panic(fmt.Sprintf("views: %v", err))
	}
	return h
}

func requestValues(c RequestContext, sig typecheck.Signature, r *typecheck.Registry) (map[string]any, error) {
	body, err := c.Body()
	if err != nil {
		return nil, ErrBadRequest("failed to read request body")
	}

	values := make(map[string]any)
	if len(bytes.TrimSpace(body)) > 0 {
		if values, err = decodeObject(body); err != nil {
			return nil, err
		}
	} else {
		for k, vs := range c.QueryParams() {
			if len(vs) == 0 {
				continue
			}
			values[k] = decodeText(vs[0], r.Expected(k))
		}
	}

	for _, name := range sig.Params {
		if raw := c.Param(name); raw != "" {
			values[name] = decodeText(raw, r.Expected(name))
		}
	}
	return values, nil
}

// decodeObject reads body as exactly one JSON object. null and trailing data
// are rejected.
func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var values map[string]any
	if err := dec.Decode(&values); err != nil || values == nil {
		return nil, ErrBadRequest("request body must be a JSON object")
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, ErrBadRequest("request body must hold a single JSON object")
	}

	for k, v := range values {
		values[k] = normalizeNumbers(v)
	}
	return values, nil
}

func splitArguments(params []string, values map[string]any) ([]any, typecheck.Kwargs) {
	var args []any
	used := make(map[string]struct{}, len(params))
	for _, name := range params {
		v, ok := values[name]
		if !ok {
			break
		}
		args = append(args, v)
		used[name] = struct{}{}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if _, ok := used[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var kwargs typecheck.Kwargs
	for _, k := range keys {
		kwargs = append(kwargs, typecheck.KW(k, values[k]))
	}
	return args, kwargs
}

// decodeText turns a query or path value into a Go value. Values for text
// parameters stay strings; anything else is read as JSON when it parses.
func decodeText(raw string, expected typecheck.Tag) any {
	if expected == typecheck.Text {
		return raw
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}
	return normalizeNumbers(v)
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		for i := range val {
			val[i] = normalizeNumbers(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = normalizeNumbers(val[k])
		}
		return val
	default:
		return v
	}
}

func mismatchDetails(err *typecheck.MismatchError) []map[string]any {
	details := make([]map[string]any, 0, len(err.Mismatches))
	for _, m := range err.Mismatches {
		details = append(details, map[string]any{
			"index":    m.Index,
			"name":     m.Name,
			"expected": m.Expected.String(),
			"actual":   m.ActualType(),
			"value":    m.Value,
		})
	}
	return details
}
