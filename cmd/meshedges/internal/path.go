package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveOutputPath returns the absolute output path and checks that its
// parent directory exists, so a bad destination fails before any work is done.
func ResolveOutputPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("output path is empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(absPath)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("output directory %s is not a directory", dir)
	}
	return filepath.Join(dir, filepath.Base(absPath)), nil
}
