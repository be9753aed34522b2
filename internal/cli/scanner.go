package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/toyz/viewcheck/internal/parser"
)

// skipDirs are never descended into by a recursive pattern
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"testdata":     true,
	"build":        true,
	"dist":         true,
}

// DirectoryScanner resolves directory patterns to package directories
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories returns the absolute paths of the directories matched by
// patterns that hold at least one hand-written, non-test Go file. A pattern
// ending in "/..." matches its base and every directory below it; any other
// pattern matches just that directory.
func (s *DirectoryScanner) ScanDirectories(patterns []string) ([]string, error) {
	var dirs []string
	err := s.walk(patterns, func(dir string) error {
		ok, err := hasSourceFiles(dir)
		if err != nil {
			return err
		}
		if ok {
			dirs = append(dirs, dir)
		}
		return nil
	})
	return dirs, err
}

// walk calls fn once for every distinct directory matched by patterns
func (s *DirectoryScanner) walk(patterns []string, fn func(dir string) error) error {
	visited := make(map[string]bool)
	visit := func(dir string) error {
		if visited[dir] {
			return nil
		}
		visited[dir] = true
		return fn(dir)
	}

	for _, pattern := range patterns {
		base, recursive := strings.CutSuffix(pattern, "/...")
		if pattern == "..." {
			base, recursive = ".", true
		}
		if base == "" {
			base = "."
		}

		abs, err := filepath.Abs(base)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", base, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", pattern, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("failed to scan %s: not a directory", pattern)
		}

		if !recursive {
			if err := visit(abs); err != nil {
				return err
			}
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			name := d.Name()
			if path != abs && (skipDirs[name] || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return visit(path)
		})
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", pattern, err)
		}
	}
	return nil
}

// hasSourceFiles reports whether dir holds a Go file the parser would read
func hasSourceFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	return slices.ContainsFunc(entries, func(e os.DirEntry) bool {
		name := e.Name()
		return !e.IsDir() &&
			strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			name != parser.GeneratedFileName
	}), nil
}
