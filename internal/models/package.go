package models

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/viewcheck/pkg/views"
)

// PackageMetadata represents all annotations found in a package
type PackageMetadata struct {
	PackageName string              // name of the Go package
	PackagePath string              // file system path to the package
	ImportPath  string              // import path, when a go.mod was found
	Views       []ViewMetadata      // functions annotated with //viewcheck::view
	Typechecks  []TypecheckMetadata // functions annotated with //viewcheck::typecheck
}

// Empty reports whether the package has nothing to generate
func (p *PackageMetadata) Empty() bool {
	return len(p.Views) == 0 && len(p.Typechecks) == 0
}

// ViewMetadata describes one view function
type ViewMetadata struct {
	FuncName string // Go function name
	Name     string // view name used for the target, defaults to FuncName
	Pattern  string // explicit route pattern, empty to derive one
	Method   string // HTTP method, empty for GET
	FileName string
	Line     int
}

// Route returns the pattern the view is served at
func (v ViewMetadata) Route() string {
	if v.Pattern != "" {
		return v.Pattern
	}
	return "/" + views.DeriveRoute(v.ViewName())
}

// ViewName returns the registered view name
func (v ViewMetadata) ViewName() string {
	if v.Name != "" {
		return v.Name
	}
	return v.FuncName
}

// HTTPMethod returns the method, defaulting to GET
func (v ViewMetadata) HTTPMethod() string {
	if v.Method == "" {
		return "GET"
	}
	return v.Method
}

// RouteKey identifies the route a view claims: "METHOD pattern"
func (v ViewMetadata) RouteKey() string {
	return v.HTTPMethod() + " " + v.Route()
}

// TypecheckMetadata describes one function to wrap with a type check
type TypecheckMetadata struct {
	FuncName     string   // Go function name
	Name         string   // generated variable name, defaults to Checked<FuncName>
	Params       []string // parameter names in declaration order
	ReturnsError bool     // whether the last result is error
	FileName     string
	Line         int
}

// VarName returns the name of the generated wrapper variable
func (t TypecheckMetadata) VarName() string {
	if t.Name != "" {
		return t.Name
	}
	r, size := utf8.DecodeRuneInString(t.FuncName)
	return "Checked" + string(unicode.ToUpper(r)) + t.FuncName[size:]
}

// ParamList renders the parameter names as a quoted, comma separated list
func (t TypecheckMetadata) ParamList() string {
	quoted := make([]string, len(t.Params))
	for i, p := range t.Params {
		quoted[i] = `"` + p + `"`
	}
	return strings.Join(quoted, ", ")
}
