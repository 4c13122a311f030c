// Package datafiles opens the catalog's tabular data files (games.csv,
// users.csv, reviews.csv) from a single folder.
package datafiles

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrFolderNotExists = errors.New("data folder does not exist")
	ErrFileNotExists   = errors.New("file does not exist")
	ErrInvalidFileName = errors.New("invalid file name")
)

type Files struct {
	folderPath string
}

func New(folderPath string) (*Files, error) {
	if folderPath == "" {
		return nil, errors.New("folder path is empty")
	}

	f := &Files{folderPath: filepath.Clean(folderPath)}

	info, err := os.Stat(f.folderPath)
	if errors.Is(err, os.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, fmt.Errorf("%s: %w", f.folderPath, ErrFolderNotExists)
	}
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Open returns a reader over the named file in the folder.
func (f *Files) Open(name string) (io.ReadCloser, error) {
	fullPath, err := f.path(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrFileNotExists)
	}
	if err != nil {
		return nil, err
	}

	return file, nil
}

func (f *Files) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidFileName
	}
	return filepath.Join(f.folderPath, name), nil
}
