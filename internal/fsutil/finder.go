// Package fsutil provides file system helpers for locating graph descriptions.
package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// FindFiles returns every regular file under root whose extension is ext
// (including the dot). Entries are visited in lexical order, so the result is
// stable across runs.
func FindFiles(root, ext string) ([]string, error) {
	if ext == "" {
		return nil, errors.New("fsutil: extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && filepath.Ext(path) == ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
