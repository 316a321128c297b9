// Package output handles file naming and writing for TabPipe artifacts.
// Filenames are derived from the source document, so report.pdf produces
// report.txt, report.tables.txt, report.json, and so on, all in the same
// output directory.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered artifacts to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting outputDir, creating the directory if
// needed. An empty outputDir means the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		outputDir = wd
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Write stores one artifact named after the source document with the
// renderer's extension, and returns the written path.
func (w *Writer) Write(source string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, baseName(source)+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// baseName strips the directory and extension from the source path and
// sanitizes the remainder. Stdin input ("-") falls back to "document".
func baseName(source string) string {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if name == "" || name == "-" || name == "." {
		return "document"
	}
	return sanitize(name)
}

// sanitize maps anything outside [A-Za-z0-9] to an underscore.
func sanitize(s string) string {
	return strings.Map(func(ch rune) rune {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
			return ch
		default:
			return '_'
		}
	}, s)
}
