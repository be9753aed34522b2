// Package demo is a small application built on viewcheck. Its views and
// type-checked wrappers are registered by the generated autogen_views.go.
package demo

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/toyz/viewcheck/pkg/typecheck"
	"github.com/toyz/viewcheck/pkg/views"
)

//viewcheck::view
func helloWorld(c views.RequestContext) error {
	return c.String(http.StatusOK, "Hello World!")
}

//viewcheck::view /
func hellWorld(c views.RequestContext) error {
	return c.String(http.StatusOK, "Hell World!")
}

//viewcheck::typecheck
func addNumbers(iLeft, iRight int) (int, error) {
	return iLeft + iRight, nil
}

// shout takes interface values so each call is checked at runtime
//
//viewcheck::typecheck
func shout(sWord any, iTimes any) (string, error) {
	return strings.Repeat(strings.ToUpper(sWord.(string))+"!", asInt(iTimes)), nil
}

var addSignature = typecheck.Signature{
	Name:     "add",
	Params:   []string{"iLeft", "iRight"},
	Defaults: []any{0},
}

var shoutSignature = typecheck.Signature{
	Name:   "shout",
	Params: []string{"sWord", "iTimes"},
}

// RegisterEndpoints registers the JSON endpoints on m
func RegisterEndpoints(m *views.Mapper) error {
	add, err := views.Endpoint(addSignature, addEndpoint)
	if err != nil {
		return err
	}
	if _, err := views.View(add, views.On(m), views.At("/add"), views.Method(http.MethodPost), views.Named("add")); err != nil {
		return err
	}

	sh, err := views.Endpoint(shoutSignature, shoutEndpoint)
	if err != nil {
		return err
	}
	_, err = views.View(sh, views.On(m), views.At("/shout/{sWord}"), views.Named("shout"))
	return err
}

func addEndpoint(args []any, kwargs typecheck.Kwargs) (any, error) {
	bindings, err := typecheck.DefaultRegistry.Bind(addSignature, args, kwargs)
	if err != nil {
		return nil, err
	}

	var operands [2]int
	for i := range operands {
		if !bindings[i].Bound {
			return nil, views.ErrBadRequest(fmt.Sprintf("%s is required", bindings[i].Name))
		}
		operands[i] = asInt(bindings[i].Value)
	}
	return CheckedAddNumbers(operands[0], operands[1])
}

func shoutEndpoint(args []any, kwargs typecheck.Kwargs) (any, error) {
	bindings, err := typecheck.DefaultRegistry.Bind(shoutSignature, args, kwargs)
	if err != nil {
		return nil, err
	}

	times := any(1)
	if bindings[1].Bound {
		times = bindings[1].Value
	}
	return CheckedShout(bindings[0].Value, times)
}

// asInt converts a value already checked to be an integer
func asInt(v any) int {
	rv := reflect.ValueOf(v)
	if rv.CanInt() {
		return int(rv.Int())
	}
	return int(rv.Uint())
}
