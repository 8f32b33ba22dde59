// Package output handles file naming and writing for rendered guides.
// Filenames are derived from the appliance and the render time
// (e.g., washing_machine_20260301T120000Z.html).
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultName = "guide"

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
	now       func() time.Time
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir, now: time.Now}, nil
}

// Write stores data under a name derived from label and returns the path.
func (w *Writer) Write(label string, data []byte, ext string) (string, error) {
	name := Filename(label, w.now())
	path := filepath.Join(w.OutputDir, name+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename builds a flat filename from a label and timestamp.
// Example: "Washing Machine" → washing_machine_20260301T120000Z
func Filename(label string, at time.Time) string {
	base := strings.Trim(sanitize(strings.ToLower(strings.TrimSpace(label))), "_")
	if base == "" {
		base = defaultName
	}
	return base + "_" + at.UTC().Format("20060102T150405Z")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
