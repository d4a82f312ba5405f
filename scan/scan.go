// Package scan resolves the source folder shared by the commands and lists
// the files in it.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir returns the absolute form of path after checking that it names an
// existing directory.
func Dir(path string) (string, error) {
	dir, err := filepath.Abs(path)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(dir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return "", fmt.Errorf("invalid scan path %q: %w", path, err)
	}
	return dir, nil
}

// Files returns the names of the regular files directly inside dir, in
// directory order.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read folder %q: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
