package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewMetadata(t *testing.T) {
	v := ViewMetadata{FuncName: "helloWorld"}
	assert.Equal(t, "/hello-world", v.Route())
	assert.Equal(t, "helloWorld", v.ViewName())
	assert.Equal(t, "GET", v.HTTPMethod())
	assert.Equal(t, "GET /hello-world", v.RouteKey())

	v = ViewMetadata{FuncName: "index", Name: "hellWorld", Pattern: "/", Method: "POST"}
	assert.Equal(t, "/", v.Route())
	assert.Equal(t, "hellWorld", v.ViewName())
	assert.Equal(t, "POST", v.HTTPMethod())
	assert.Equal(t, "POST /", v.RouteKey())

	v = ViewMetadata{FuncName: "x", Name: "getHTTPResponse"}
	assert.Equal(t, "/get-http-response", v.Route())
}

func TestTypecheckMetadata(t *testing.T) {
	tc := TypecheckMetadata{FuncName: "addNumbers", Params: []string{"iLeft", "iRight"}}
	assert.Equal(t, "CheckedAddNumbers", tc.VarName())
	assert.Equal(t, `"iLeft", "iRight"`, tc.ParamList())

	tc.Name = "SafeAdd"
	assert.Equal(t, "SafeAdd", tc.VarName())

	assert.Equal(t, "", TypecheckMetadata{}.ParamList())
}

func TestPackageMetadata_Empty(t *testing.T) {
	p := &PackageMetadata{}
	assert.True(t, p.Empty())

	p.Views = append(p.Views, ViewMetadata{FuncName: "index"})
	assert.False(t, p.Empty())
}

func TestGeneratorError(t *testing.T) {
	cause := errors.New("boom")

	err := &GeneratorError{Type: ErrorTypeValidation, File: "views.go", Line: 3, Message: "bad view", Cause: cause}
	assert.Equal(t, "views.go:3: bad view: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	err = &GeneratorError{File: "views.go", Message: "bad view"}
	assert.Equal(t, "views.go: bad view", err.Error())

	err = &GeneratorError{Message: "bad view"}
	assert.Equal(t, "bad view", err.Error())

	assert.Equal(t, "validation", ErrorTypeValidation.String())
}
