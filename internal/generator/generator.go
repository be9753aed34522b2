package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/toyz/viewcheck/internal/models"
	"github.com/toyz/viewcheck/internal/parser"
	"github.com/toyz/viewcheck/internal/templates"
)

// GeneratedFile is the rendered autogen_views.go of one package
type GeneratedFile struct {
	PackageName string
	FilePath    string
	Content     []byte
	Views       int
	Typechecks  int
}

// Generator renders registration code for annotated packages
type Generator struct {
	app string
}

// NewGenerator creates a generator. A non-empty app makes every package
// register on its own Views mapper named app instead of views.Default.
func NewGenerator(app string) *Generator {
	return &Generator{app: app}
}

// Generate renders the views file for metadata. It returns nil when the
// package has nothing to generate.
func (g *Generator) Generate(metadata *models.PackageMetadata) (*GeneratedFile, error) {
	if metadata == nil || metadata.Empty() {
		return nil, nil
	}

	data := templates.ViewsFileData{
		PackageName: metadata.PackageName,
		ImportPath:  metadata.ImportPath,
		App:         g.app,
	}
	for _, view := range metadata.Views {
		data.Views = append(data.Views, templates.ViewData{
			FuncName: view.FuncName,
			Name:     view.ViewName(),
			Route:    view.Route(),
			Method:   view.HTTPMethod(),
		})
	}
	for _, tc := range metadata.Typechecks {
		data.Typechecks = append(data.Typechecks, templates.TypecheckData{
			FuncName:  tc.FuncName,
			VarName:   tc.VarName(),
			Params:    tc.Params,
			ParamList: tc.ParamList(),
		})
	}

	raw, err := templates.RenderViewsFile(data)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			File:    metadata.PackagePath,
			Message: "failed to render views file",
			Cause:   err,
		}
	}

	filePath := filepath.Join(metadata.PackagePath, parser.GeneratedFileName)
	content, err := imports.Process(filePath, raw, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			File:    filePath,
			Message: "generated code does not compile",
			Cause:   fmt.Errorf("%w\n%s", err, raw),
		}
	}

	return &GeneratedFile{
		PackageName: metadata.PackageName,
		FilePath:    filePath,
		Content:     content,
		Views:       len(metadata.Views),
		Typechecks:  len(metadata.Typechecks),
	}, nil
}

// Write stores the file on disk
func (f *GeneratedFile) Write() error {
	if err := os.WriteFile(f.FilePath, f.Content, 0o644); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			File:    f.FilePath,
			Message: "failed to write generated file",
			Cause:   err,
		}
	}
	return nil
}
