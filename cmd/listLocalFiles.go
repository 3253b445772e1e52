package cmd

import (
	"io/fs"
	"os"
	"path/filepath"
)

// listLocalFiles returns the regular files directly under dir, sorted by
// name and joined with dir. Symlinks count when they point at a regular
// file; subdirectories and dangling links are skipped.
func listLocalFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if e.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(p)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		} else if !e.Type().IsRegular() {
			continue
		}
		files = append(files, p)
	}
	return files, nil
}
