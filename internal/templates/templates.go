package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// ViewsFileTemplate renders autogen_views.go for one package
const ViewsFileTemplate = `// Code generated by viewcheck. DO NOT EDIT.
{{- if .ImportPath}}
// Source: {{.ImportPath}}
{{- end}}

package {{.PackageName}}

import (
	"github.com/toyz/viewcheck/pkg/typecheck"
	"github.com/toyz/viewcheck/pkg/views"
)
{{if .App}}
// Views holds the routes of this package.
var Views = views.NewMapper({{printf "%q" .App}})
{{end}}
{{- range .Typechecks}}
// {{.VarName}} is {{.FuncName}} with every call checked against its parameter name prefixes.
var {{.VarName}} = typecheck.MustDecorate({{.FuncName}}{{if .Params}}, {{.ParamList}}{{end}})
{{end}}
{{- if .Views}}
func init() {
{{- range .Views}}
	views.MakeView({{if $.App}}views.On(Views), {{end}}views.At({{printf "%q" .Route}}), views.Method({{printf "%q" .Method}}), views.Named({{printf "%q" .Name}}))({{.FuncName}})
{{- end}}
}
{{- end}}
`

// ViewData is one view registration
type ViewData struct {
	FuncName string
	Name     string
	Route    string
	Method   string
}

// TypecheckData is one type-checked wrapper variable
type TypecheckData struct {
	FuncName  string
	VarName   string
	Params    []string
	ParamList string
}

// ViewsFileData is the input of ViewsFileTemplate
type ViewsFileData struct {
	PackageName string
	ImportPath  string
	App         string
	Views       []ViewData
	Typechecks  []TypecheckData
}

var viewsFile = template.Must(template.New("views").Parse(ViewsFileTemplate))

// RenderViewsFile executes ViewsFileTemplate. The output is unformatted.
func RenderViewsFile(data ViewsFileData) ([]byte, error) {
	if data.PackageName == "" {
		return nil, fmt.Errorf("package name is required")
	}

	var buf bytes.Buffer
	if err := viewsFile.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render views file: %w", err)
	}
	return buf.Bytes(), nil
}
