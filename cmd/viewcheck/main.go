package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toyz/viewcheck/internal/cli"
	"github.com/toyz/viewcheck/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("viewcheck", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		appFlag     = flags.String("app", "", "Application name; views register on a per-package Views mapper and targets read <app>.views.<name>")
		verboseFlag = flags.Bool("verbose", false, "Enable verbose output")
		quietFlag   = flags.Bool("quiet", false, "Only show errors")
		cleanFlag   = flags.Bool("clean", false, "Delete all autogen_views.go files from the specified directories")
		routesFlag  = flags.Bool("routes", false, "Print the generated URL map to stdout")
		formatFlag  = flags.String("format", "json", "URL map format for -routes: json or yaml")
		helpFlag    = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: viewcheck [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "Scans Go packages for //viewcheck:: annotations and generates autogen_views.go,\n")
		fmt.Fprintf(stderr, "which registers annotated views and declares type-checked wrappers.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nDirectory Patterns:\n")
		fmt.Fprintf(stderr, "  ./...              Scan current directory and all subdirectories recursively\n")
		fmt.Fprintf(stderr, "  ./internal/web     Scan only the specific directory\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  viewcheck ./...                         # Generate for every package\n")
		fmt.Fprintf(stderr, "  viewcheck -app shop ./internal/...      # Namespace targets as shop.views.<name>\n")
		fmt.Fprintf(stderr, "  viewcheck -routes -format yaml ./...    # Generate and print the URL map\n")
		fmt.Fprintf(stderr, "  viewcheck -clean ./...                  # Delete all autogen_views.go files\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *helpFlag {
		flags.Usage()
		return 0
	}

	dirs := flags.Args()
	if len(dirs) == 0 {
		fmt.Fprintf(stderr, "Error: at least one directory path is required\n\n")
		flags.Usage()
		return 1
	}
	if *formatFlag != "json" && *formatFlag != "yaml" {
		fmt.Fprintf(stderr, "Error: unknown format %q, want json or yaml\n", *formatFlag)
		return 1
	}

	level := utils.DiagnosticInfo
	switch {
	case *quietFlag:
		level = utils.DiagnosticError
	case *verboseFlag:
		level = utils.DiagnosticVerbose
	}

	// the URL map owns stdout when requested
	out := stdout
	if *routesFlag {
		out = stderr
	}
	diagnostics := newDiagnostics(level, out)

	if *cleanFlag {
		diagnostics.Header("cleaning generated files")
		removed, err := cli.NewCleaner().CleanGeneratedFiles(dirs)
		if err != nil {
			diagnostics.Error("Clean failed: %v", err)
			return 1
		}
		for _, file := range removed {
			diagnostics.Verbose("removed %s", file)
		}
		diagnostics.Success("Removed %d generated files", len(removed))
		return 0
	}

	diagnostics.Header("generating views")
	diagnostics.Debug("Directories: %s", strings.Join(dirs, ", "))
	if *appFlag != "" {
		diagnostics.Debug("App: %s", *appFlag)
	}

	generator := cli.NewGenerator(diagnostics)
	if err := generator.Run(cli.Config{Directories: dirs, App: *appFlag}); err != nil {
		diagnostics.Error("Generation failed")
		return 1
	}

	if *routesFlag {
		if err := generator.DumpRoutes(stdout, *formatFlag); err != nil {
			diagnostics.Error("Failed to write URL map: %v", err)
			return 1
		}
	}
	return 0
}

// newDiagnostics colors output only when writing to the real stdout
func newDiagnostics(level utils.DiagnosticLevel, w io.Writer) *utils.DiagnosticSystem {
	if f, ok := w.(*os.File); ok && f == os.Stdout {
		return utils.NewDiagnosticSystem(level)
	}
	return utils.NewDiagnosticSystemTo(level, w)
}
