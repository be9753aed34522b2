package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/toyz/viewcheck/internal/parser"
)

// Cleaner removes generated files
type Cleaner struct {
	scanner *DirectoryScanner
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{scanner: NewDirectoryScanner()}
}

// CleanGeneratedFiles removes every autogen_views.go in the directories
// matched by patterns and returns the removed paths
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	var removed []string
	err := c.scanner.walk(patterns, func(dir string) error {
		file, ok, err := removeGenerated(dir)
		if ok {
			removed = append(removed, file)
		}
		return err
	})
	return removed, err
}

// removeGenerated deletes the generated file in dir, reporting whether there
// was one
func removeGenerated(dir string) (string, bool, error) {
	file := filepath.Join(dir, parser.GeneratedFileName)
	if err := os.Remove(file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return file, false, nil
		}
		return file, false, fmt.Errorf("failed to remove %s: %w", file, err)
	}
	return file, true, nil
}
