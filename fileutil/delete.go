package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/idelchi/pathwalk/fserr"
	"github.com/idelchi/pathwalk/walk"
)

// DeleteOption modifies ForceDelete.
type DeleteOption int

const (
	// OverrideReadOnly makes read-only entries writable before deleting them.
	OverrideReadOnly DeleteOption = iota + 1
)

// ForceDelete deletes a file, or a directory with all of its contents.
// A symbolic link is removed without touching its target.
// It fails with fserr.ErrNotFound if path does not exist.
func ForceDelete(path string, opts ...DeleteOption) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fserr.FromOS("delete", path, err)
	}

	if slices.Contains(opts, OverrideReadOnly) {
		if err := makeWritable(path, info); err != nil {
			return err
		}
	}

	if err := os.RemoveAll(path); err != nil {
		return fserr.FromOS("delete", path, err)
	}

	return nil
}

// makeWritable adds owner write permission to path and, for directories,
// to everything below it.
func makeWritable(path string, info fs.FileInfo) error {
	if info.Mode()&fs.ModeSymlink != 0 {
		return nil
	}

	if !info.IsDir() {
		return addOwnerWrite(path, info.Mode(), 0)
	}

	// A directory needs read and search permission before its entries can be listed.
	if err := addOwnerWrite(path, info.Mode(), 0o500); err != nil {
		return err
	}

	chmod := func(path string, entry fs.DirEntry) error {
		if entry.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		fi, err := entry.Info()
		if err != nil {
			return fserr.New("delete", path, fserr.ErrIO, err)
		}

		var extra fs.FileMode
		if fi.IsDir() {
			extra = 0o500
		}

		return addOwnerWrite(path, fi.Mode(), extra)
	}

	return walk.Walk(path, walk.Funcs{
		Directory: func(p string, entry fs.DirEntry, depth int) error {
			if depth == 0 {
				return nil
			}

			return chmod(p, entry)
		},
		File: func(p string, entry fs.DirEntry, _ int) error {
			return chmod(p, entry)
		},
	}, walk.Options{})
}

// addOwnerWrite grants the owner write permission plus extra on path.
func addOwnerWrite(path string, mode, extra fs.FileMode) error {
	want := mode.Perm() | 0o200 | extra
	if want == mode.Perm() {
		return nil
	}

	return fserr.FromOS("delete", path, os.Chmod(path, want))
}

// DeleteDirectory deletes dir and its contents. A missing dir is not an
// error, and a symbolic link to a directory is removed without cleaning the target.
func DeleteDirectory(dir string) error {
	info, err := os.Lstat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fserr.FromOS("delete", dir, err)
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		if !info.IsDir() {
			return fserr.NotDirectory("delete", dir)
		}

		if err := CleanDirectory(dir); err != nil {
			return err
		}
	}

	return fserr.FromOS("delete", dir, remove(dir))
}

// CleanDirectory deletes the contents of dir but not dir itself.
// Every entry is attempted and all failures are returned together.
func CleanDirectory(dir string) error {
	if _, err := requireDirectory("clean", dir); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fserr.New("clean", dir, fserr.ErrIO, err)
	}

	var errs []error

	for _, e := range entries {
		if err := ForceDelete(filepath.Join(dir, e.Name())); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// DeleteQuietly deletes path, recursively for directories, and reports
// whether it is gone. It never fails.
func DeleteQuietly(path string) bool {
	if info, err := os.Lstat(path); err == nil && info.IsDir() {
		_ = CleanDirectory(path)
	}

	return remove(path) == nil
}
