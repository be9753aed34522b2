package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/toyz/viewcheck/internal/annotations"
	"github.com/toyz/viewcheck/internal/models"
	"github.com/toyz/viewcheck/internal/utils"
)

const (
	// GeneratedFileName is the file the generator writes into each package
	GeneratedFileName = "autogen_views.go"

	viewsImportPath = "github.com/toyz/viewcheck/pkg/views"
)

// Parser finds viewcheck annotations in Go source
type Parser struct {
	fileReader *utils.FileReader
	goMod      *utils.GoModParser
}

// NewParser creates a new annotation parser
func NewParser() *Parser {
	fr := utils.NewFileReader()
	return &Parser{fileReader: fr, goMod: utils.NewGoModParser(fr)}
}

// ParseSource parses source code from a string
func (p *Parser) ParseSource(filename, source string) (*models.PackageMetadata, error) {
	file, err := p.fileReader.ParseGoSource(filename, source)
	if err != nil {
		return nil, err
	}

	metadata := &models.PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: "./",
	}
	if err := p.extract(file, filename, metadata); err != nil {
		return nil, err
	}
	return metadata, p.validate(metadata)
}

// ParseDirectory parses the non-test Go files of one package directory. The
// generated file is skipped so regeneration sees only hand-written code.
func (p *Parser) ParseDirectory(path string) (*models.PackageMetadata, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == GeneratedFileName {
			continue
		}
		files = append(files, filepath.Join(path, name))
	}
	slices.Sort(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no Go files found in directory %s", path)
	}

	metadata := &models.PackageMetadata{PackagePath: path}
	if importPath, err := p.goMod.ImportPath(path); err == nil {
		metadata.ImportPath = importPath
	}

	var errs []error
	for _, fileName := range files {
		file, err := p.fileReader.ParseGoFile(fileName)
		if err != nil {
			return nil, err
		}

		if metadata.PackageName == "" {
			metadata.PackageName = file.Name.Name
		} else if metadata.PackageName != file.Name.Name {
			return nil, fmt.Errorf("multiple packages found in directory %s: %s and %s", path, metadata.PackageName, file.Name.Name)
		}

		if err := p.extract(file, fileName, metadata); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return metadata, p.validate(metadata)
}

// extract records every annotated top-level function of file
func (p *Parser) extract(file *ast.File, fileName string, metadata *models.PackageMetadata) error {
	viewsAlias := importAlias(file, viewsImportPath, "views")

	var errs []error
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}

		for _, comment := range fn.Doc.List {
			if !annotations.IsAnnotation(comment.Text) {
				continue
			}

			pos := p.fileReader.FileSet().Position(comment.Pos())
			loc := annotations.SourceLocation{File: fileName, Line: pos.Line, Column: pos.Column}

			parsed, err := annotations.ParseAt(comment.Text, loc)
			if err != nil {
				errs = append(errs, &models.GeneratorError{
					Type:    models.ErrorTypeAnnotationSyntax,
					File:    fileName,
					Line:    pos.Line,
					Message: fmt.Sprintf("invalid annotation on %s", fn.Name.Name),
					Cause:   err,
				})
				continue
			}

			if err := p.record(fn, parsed, viewsAlias, metadata); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (p *Parser) record(fn *ast.FuncDecl, parsed *annotations.ParsedAnnotation, viewsAlias string, metadata *models.PackageMetadata) error {
	fileName, line := parsed.Location.File, parsed.Location.Line
	invalid := func(format string, args ...any) error {
		return &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			File:    fileName,
			Line:    line,
			Message: fmt.Sprintf(format, args...),
		}
	}

	if fn.Recv != nil {
		return invalid("%s annotation on method %s: only top-level functions can be annotated", parsed.Type, fn.Name.Name)
	}
	if fn.Type.TypeParams != nil && len(fn.Type.TypeParams.List) > 0 {
		return invalid("%s annotation on generic function %s", parsed.Type, fn.Name.Name)
	}

	switch parsed.Type {
	case annotations.ViewAnnotation:
		if !isViewHandler(fn.Type, viewsAlias) {
			return invalid("view %s must have signature func(%s.RequestContext) error, got %s", fn.Name.Name, viewsAlias, signatureString(fn.Type))
		}
		metadata.Views = append(metadata.Views, models.ViewMetadata{
			FuncName: fn.Name.Name,
			Name:     parsed.Name,
			Pattern:  parsed.Path,
			Method:   parsed.Method,
			FileName: fileName,
			Line:     line,
		})

	case annotations.TypecheckAnnotation:
		params, ok := paramNames(fn.Type)
		if !ok {
			return invalid("typecheck function %s must name every parameter", fn.Name.Name)
		}
		metadata.Typechecks = append(metadata.Typechecks, models.TypecheckMetadata{
			FuncName:     fn.Name.Name,
			Name:         parsed.Name,
			Params:       params,
			ReturnsError: lastResultIsError(fn.Type),
			FileName:     fileName,
			Line:         line,
		})
	}
	return nil
}

// validate rejects metadata that would generate conflicting code
func (p *Parser) validate(metadata *models.PackageMetadata) error {
	var errs []error

	routes := make(map[string]models.ViewMetadata)
	for _, view := range metadata.Views {
		if prev, dup := routes[view.RouteKey()]; dup {
			errs = append(errs, &models.GeneratorError{
				Type:    models.ErrorTypeValidation,
				File:    view.FileName,
				Line:    view.Line,
				Message: fmt.Sprintf("view %s and view %s (%s:%d) both map to %s", view.FuncName, prev.FuncName, prev.FileName, prev.Line, view.RouteKey()),
			})
			continue
		}
		routes[view.RouteKey()] = view
	}

	vars := make(map[string]models.TypecheckMetadata)
	for _, tc := range metadata.Typechecks {
		if prev, dup := vars[tc.VarName()]; dup {
			errs = append(errs, &models.GeneratorError{
				Type:    models.ErrorTypeValidation,
				File:    tc.FileName,
				Line:    tc.Line,
				Message: fmt.Sprintf("typecheck wrappers for %s and %s are both named %s", tc.FuncName, prev.FuncName, tc.VarName()),
			})
			continue
		}
		vars[tc.VarName()] = tc
	}

	return errors.Join(errs...)
}

// importAlias returns the local name under which file imports path
func importAlias(file *ast.File, path, fallback string) string {
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != path {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name
		}
		return fallback
	}
	return fallback
}

func isViewHandler(ft *ast.FuncType, viewsAlias string) bool {
	if ft.Params == nil || len(ft.Params.List) != 1 || len(ft.Params.List[0].Names) > 1 {
		return false
	}
	sel, ok := ft.Params.List[0].Type.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "RequestContext" {
		return false
	}
	if pkg, ok := sel.X.(*ast.Ident); !ok || pkg.Name != viewsAlias {
		return false
	}
	return ft.Results != nil && len(ft.Results.List) == 1 && len(ft.Results.List[0].Names) <= 1 && isErrorType(ft.Results.List[0].Type)
}

// paramNames flattens the parameter list; false if any parameter is unnamed
func paramNames(ft *ast.FuncType) ([]string, bool) {
	var names []string
	if ft.Params == nil {
		return names, true
	}
	for _, field := range ft.Params.List {
		if len(field.Names) == 0 {
			return nil, false
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				return nil, false
			}
			names = append(names, name.Name)
		}
	}
	return names, true
}

func lastResultIsError(ft *ast.FuncType) bool {
	if ft.Results == nil || len(ft.Results.List) == 0 {
		return false
	}
	return isErrorType(ft.Results.List[len(ft.Results.List)-1].Type)
}

func isErrorType(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	return ok && ident.Name == "error"
}

// signatureString renders a function type for error messages
func signatureString(ft *ast.FuncType) string {
	var params []string
	if ft.Params != nil {
		for _, field := range ft.Params.List {
			n := max(len(field.Names), 1)
			for range n {
				params = append(params, typeString(field.Type))
			}
		}
	}

	var results []string
	if ft.Results != nil {
		for _, field := range ft.Results.List {
			n := max(len(field.Names), 1)
			for range n {
				results = append(results, typeString(field.Type))
			}
		}
	}

	s := "func(" + strings.Join(params, ", ") + ")"
	switch len(results) {
	case 0:
		return s
	case 1:
		return s + " " + results[0]
	default:
		return s + " (" + strings.Join(results, ", ") + ")"
	}
}

func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		return "[]" + typeString(t.Elt)
	case *ast.MapType:
		return "map[" + typeString(t.Key) + "]" + typeString(t.Value)
	case *ast.Ellipsis:
		return "..." + typeString(t.Elt)
	case *ast.InterfaceType:
		return "interface{...}"
	case *ast.FuncType:
		return signatureString(t)
	default:
		return fmt.Sprintf("%T", expr)
	}
}
