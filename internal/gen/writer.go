package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes one generated file and reports whether it changed.
// Unchanged content is left untouched so that watchers and build caches do
// not see spurious writes.
func WriteFile(file *GeneratedFile) (bool, error) {
	if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
		return false, fmt.Errorf("creating output directory: %w", err)
	}

	outputPath := file.Path()

	existing, err := os.ReadFile(outputPath)
	if err == nil && bytes.Equal(existing, file.Content) {
		return false, nil
	}

	if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
		return false, fmt.Errorf("writing file %s: %w", outputPath, err)
	}

	_ = os.Remove(outputPath + DebugSuffix)

	return true, nil
}

// RemoveStale deletes a previously generated file that no longer has any
// content. Files without the generated header are never removed.
func RemoveStale(dir, filename string) (bool, error) {
	p := filepath.Join(dir, filename)

	content, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading %s: %w", p, err)
	}

	if !IsGenerated(content) {
		return false, fmt.Errorf("%s exists and was not generated by ctor-generator", p)
	}

	if err := os.Remove(p); err != nil {
		return false, fmt.Errorf("removing %s: %w", p, err)
	}

	return true, nil
}

// IsGenerated reports whether content starts with the generated header.
func IsGenerated(content []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(content), []byte("// "+Header))
}
