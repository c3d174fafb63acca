// Package storage provides the byte-level file-write surface consumed by
// the export engine for companion debug logs.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirWriter writes named files under a fixed root directory
type DirWriter struct {
	Root string
}

// NewDirWriter creates a writer rooted at dir
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{Root: dir}
}

// WriteFile writes data to root/name, creating the directory as needed.
// Errors propagate to the caller unmodified; there are no retries.
func (w *DirWriter) WriteFile(name string, data []byte) error {
	if err := os.MkdirAll(w.Root, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return os.WriteFile(filepath.Join(w.Root, name), data, 0o644)
}
