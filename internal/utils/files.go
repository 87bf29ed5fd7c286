package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindNotebookFiles recursively finds all .json files in the specified
// directory, skipping hidden files and directories
func FindNotebookFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		hidden := path != dir && strings.HasPrefix(d.Name(), ".")
		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}

		if !hidden && filepath.Ext(path) == ".json" {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// ExpandNotebookPaths replaces every directory in paths with the notebook
// files it contains. Files are kept as given.
func ExpandNotebookPaths(paths []string) ([]string, error) {
	var out []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if !info.IsDir() {
			out = append(out, path)
			continue
		}
		files, err := FindNotebookFiles(path)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", path, err)
		}
		sort.Strings(files)
		out = append(out, files...)
	}
	return out, nil
}
