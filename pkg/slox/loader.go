package slox

import (
	"os"
	"path/filepath"
)

// FileSourceLoader resolves transclude paths against a base directory on
// disk, the natural SourceLoader for a CLI or script-runner embedder.
// The core compiler depends only on the bytecode.SourceLoader interface;
// this is the one concrete implementation this module ships.
type FileSourceLoader struct {
	BaseDir string
}

// Load reads path relative to l.BaseDir (or as-is if absolute).
func (l FileSourceLoader) Load(path string) (string, error) {
	full := path
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		full = filepath.Join(l.BaseDir, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
