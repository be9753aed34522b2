package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/toyz/viewcheck/internal/generator"
	"github.com/toyz/viewcheck/internal/models"
	"github.com/toyz/viewcheck/internal/parser"
	"github.com/toyz/viewcheck/internal/utils"
	"github.com/toyz/viewcheck/pkg/views"
)

// GenerationSummary describes the outcome of a run
type GenerationSummary struct {
	PackagesScanned int
	GeneratedFiles  []string
	RemovedFiles    []string
	Views           int
	Typechecks      int
	Duration        time.Duration
}

// Generator coordinates scanning, parsing and code generation
type Generator struct {
	scanner     *DirectoryScanner
	parser      *parser.Parser
	diagnostics *utils.DiagnosticSystem
	summary     GenerationSummary
	routes      []views.Route
}

// NewGenerator creates a CLI generator reporting through diagnostics
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	return &Generator{
		scanner:     NewDirectoryScanner(),
		parser:      parser.NewParser(),
		diagnostics: diagnostics,
	}
}

// Summary returns the summary of the last run
func (g *Generator) Summary() GenerationSummary {
	return g.summary
}

// Routes returns the routes generated by the last run, in scan order
func (g *Generator) Routes() []views.Route {
	return g.routes
}

// DumpRoutes writes the routes of the last run as a URL map
func (g *Generator) DumpRoutes(w io.Writer, format string) error {
	return views.DumpRoutes(w, format, g.routes)
}

// Run scans, parses and generates every package matched by config. A package
// that fails does not stop the others; all failures are returned joined.
func (g *Generator) Run(config Config) error {
	start := time.Now()
	g.summary = GenerationSummary{}
	g.routes = nil

	d := g.diagnostics
	d.Debug("Scanning %v", config.Directories)

	dirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		d.Error("%v", err)
		return err
	}
	if len(dirs) == 0 {
		d.Warn("No Go packages found in %v", config.Directories)
		return nil
	}
	g.summary.PackagesScanned = len(dirs)

	d.PhaseHeader("Parsing")
	d.Indent()
	var (
		errs     []error
		packages []*models.PackageMetadata
		bare     []string
	)
	for _, dir := range dirs {
		metadata, err := g.parser.ParseDirectory(dir)
		if err != nil {
			d.Error("%v", err)
			errs = append(errs, err)
			continue
		}
		if metadata.Empty() {
			d.Debug("%s: no annotations", relPath(dir))
			bare = append(bare, dir)
			continue
		}
		d.PhaseItem(fmt.Sprintf("%s (%d views, %d typechecks)", packageLabel(metadata, dir), len(metadata.Views), len(metadata.Typechecks)))
		packages = append(packages, metadata)
	}
	d.Unindent()

	if err := g.checkSharedRoutes(config.App, packages); err != nil {
		d.Error("%v", err)
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	d.PhaseHeader("Generating")
	d.Indent()
	codeGen := generator.NewGenerator(config.App)
	for _, metadata := range packages {
		file, err := codeGen.Generate(metadata)
		if err == nil {
			err = file.Write()
		}
		if err != nil {
			d.Error("%v", err)
			errs = append(errs, err)
			continue
		}

		d.PhaseItem(relPath(file.FilePath))
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.FilePath)
		g.summary.Views += file.Views
		g.summary.Typechecks += file.Typechecks

		for _, view := range metadata.Views {
			g.routes = append(g.routes, views.Route{
				Pattern: view.Route(),
				Method:  view.HTTPMethod(),
				Name:    view.ViewName(),
				Target:  views.Target(config.App, view.ViewName()),
			})
			d.Verbose("%s %s -> %s.%s", view.HTTPMethod(), view.Route(), packageLabel(metadata, metadata.PackagePath), view.FuncName)
		}
	}

	// a package that lost all of its annotations keeps no generated file
	for _, dir := range bare {
		file, ok, err := removeGenerated(dir)
		if err != nil {
			d.Error("%v", err)
			errs = append(errs, err)
			continue
		}
		if ok {
			d.PhaseItem(relPath(file) + " (removed)")
			g.summary.RemovedFiles = append(g.summary.RemovedFiles, file)
		}
	}
	d.Unindent()

	g.summary.Duration = time.Since(start)
	d.Summary("Summary",
		utils.SummaryItem{Label: "Packages scanned", Value: g.summary.PackagesScanned},
		utils.SummaryItem{Label: "Files generated", Value: len(g.summary.GeneratedFiles)},
		utils.SummaryItem{Label: "Files removed", Value: len(g.summary.RemovedFiles)},
		utils.SummaryItem{Label: "Views", Value: g.summary.Views},
		utils.SummaryItem{Label: "Typechecks", Value: g.summary.Typechecks},
		utils.SummaryItem{Label: "Duration", Value: g.summary.Duration.Round(time.Millisecond)},
	)

	return errors.Join(errs...)
}

// checkSharedRoutes rejects two packages serving the same method and pattern
// on views.Default, where the later registration would silently replace the
// earlier one.
func (g *Generator) checkSharedRoutes(app string, packages []*models.PackageMetadata) error {
	if app != "" {
		return nil
	}

	owners := make(map[string]*models.PackageMetadata)
	for _, metadata := range packages {
		for _, view := range metadata.Views {
			route := view.RouteKey()
			if owner, ok := owners[route]; ok && owner != metadata {
				return &models.GeneratorError{
					Type:    models.ErrorTypeValidation,
					File:    view.FileName,
					Line:    view.Line,
					Message: fmt.Sprintf("route %s of %s is already served by package %s", route, view.FuncName, owner.PackageName),
				}
			}
			owners[route] = metadata
		}
	}
	return nil
}

func packageLabel(metadata *models.PackageMetadata, dir string) string {
	if metadata.ImportPath != "" {
		return metadata.ImportPath
	}
	return metadata.PackageName + " (" + relPath(dir) + ")"
}

func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
