package fileutil

import (
	"errors"
	"io/fs"
	"os"

	"github.com/idelchi/pathwalk/fserr"
)

// stat returns the metadata of path, or (nil, nil) when path does not exist.
func stat(op, path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil //nolint:nilnil // Absence is not an error here
	}

	if err != nil {
		return nil, fserr.FromOS(op, path, err)
	}

	return info, nil
}

// requireExists fails with ErrNotFound when path does not exist.
func requireExists(op, path string) (fs.FileInfo, error) {
	info, err := stat(op, path)
	if err != nil {
		return nil, err
	}

	if info == nil {
		return nil, fserr.NotFound(op, path)
	}

	return info, nil
}

// requireFile fails unless path is an existing regular file.
func requireFile(op, path string) (fs.FileInfo, error) {
	info, err := requireExists(op, path)
	if err != nil {
		return nil, err
	}

	if !info.Mode().IsRegular() {
		return nil, fserr.NotFile(op, path)
	}

	return info, nil
}

// requireDirectory fails unless path is an existing directory.
func requireDirectory(op, path string) (fs.FileInfo, error) {
	info, err := requireExists(op, path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fserr.NotDirectory(op, path)
	}

	return info, nil
}

// requireAbsent fails with ErrExists when path exists, links included.
func requireAbsent(op, path string) error {
	_, err := os.Lstat(path)
	if err == nil {
		return fserr.New(op, path, fserr.ErrExists, nil)
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fserr.FromOS(op, path, err)
	}

	return nil
}
