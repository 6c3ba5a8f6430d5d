package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/idelchi/pathwalk/filter"
	"github.com/idelchi/pathwalk/fserr"
	"github.com/idelchi/pathwalk/walk"
)

// CopyFile copies the regular file src to dst, creating parent directories of dst.
// An existing dst is overwritten. With preserveTime the modification time is kept.
func CopyFile(src, dst string, preserveTime bool) error {
	srcInfo, err := requireFile("copy", src)
	if err != nil {
		return err
	}

	dstInfo, err := stat("copy", dst)
	if err != nil {
		return err
	}

	if dstInfo != nil {
		if dstInfo.IsDir() {
			return fserr.NotFile("copy", dst)
		}

		if os.SameFile(srcInfo, dstInfo) {
			return fmt.Errorf("copying %q: source and destination are the same file", src)
		}
	}

	if err := ForceMkdirParent(dst); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fserr.FromOS("copy", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fserr.FromOS("copy", dst, err)
	}

	written, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return fserr.New("copy", dst, fserr.ErrIO, err)
	}

	if written != srcInfo.Size() {
		return fserr.New("copy", dst, fserr.ErrIO,
			fmt.Errorf("copied %d of %d bytes from %q", written, srcInfo.Size(), src))
	}

	if preserveTime {
		return setModTime(dst, srcInfo)
	}

	return nil
}

// setModTime copies the modification time of src onto dst.
func setModTime(dst string, src fs.FileInfo) error {
	return fserr.FromOS("copy", dst, os.Chtimes(dst, src.ModTime(), src.ModTime()))
}

// CopyFileToDirectory copies src into destDir, keeping its base name.
func CopyFileToDirectory(src, destDir string, preserveTime bool) error {
	info, err := stat("copy", destDir)
	if err != nil {
		return err
	}

	if info != nil && !info.IsDir() {
		return fserr.NotDirectory("copy", destDir)
	}

	return CopyFile(src, filepath.Join(destDir, filepath.Base(src)), preserveTime)
}

// CopyDirectory copies the tree below src into dst.
//
// When f is not nil it selects both the files and the directories to copy;
// a rejected directory is skipped with its contents. If dst lies inside src
// it is excluded from the copy.
func CopyDirectory(src, dst string, f filter.Filter, preserveTime bool) error {
	if _, err := requireDirectory("copy", src); err != nil {
		return err
	}

	dstInfo, err := stat("copy", dst)
	if err != nil {
		return err
	}

	if dstInfo != nil && !dstInfo.IsDir() {
		return fserr.NotDirectory("copy", dst)
	}

	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return fserr.New("copy", src, fserr.ErrIO, err)
	}

	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return fserr.New("copy", dst, fserr.ErrIO, err)
	}

	if srcAbs == dstAbs {
		return fmt.Errorf("copying %q: source and destination are the same", src)
	}

	f = filter.And(f, func(path string, _ fs.DirEntry) bool { return path != dstAbs })

	type dirTime struct {
		path string
		info fs.FileInfo
	}

	var dirs []dirTime

	target := func(path string) (string, error) {
		rel, err := filepath.Rel(srcAbs, path)
		if err != nil {
			return "", fserr.New("copy", path, fserr.ErrIO, err)
		}

		return filepath.Join(dstAbs, rel), nil
	}

	visitor := walk.Funcs{
		Directory: func(path string, entry fs.DirEntry, depth int) error {
			if depth > 0 && !f(path, entry) {
				return walk.SkipSubtree
			}

			out, err := target(path)
			if err != nil {
				return err
			}

			info, err := entry.Info()
			if err != nil {
				return fserr.New("copy", path, fserr.ErrIO, err)
			}

			if err := os.MkdirAll(out, info.Mode().Perm()|0o700); err != nil {
				return fserr.FromOS("copy", out, err)
			}

			if preserveTime {
				dirs = append(dirs, dirTime{path: out, info: info})
			}

			return nil
		},
		File: func(path string, entry fs.DirEntry, _ int) error {
			if !f(path, entry) {
				return nil
			}

			out, err := target(path)
			if err != nil {
				return err
			}

			return CopyFile(path, out, preserveTime)
		},
		Failed: func(_ string, err error) error {
			return err
		},
	}

	if err := walk.Walk(srcAbs, visitor, walk.Options{}); err != nil {
		return err
	}

	// Directory times are applied last, deepest first, since copying into a
	// directory updates its modification time.
	for _, d := range slices.Backward(dirs) {
		if err := setModTime(d.path, d.info); err != nil {
			return err
		}
	}

	return nil
}

// CopyToDirectory copies each source, file or directory, into destDir.
func CopyToDirectory(destDir string, sources ...string) error {
	var errs []error

	for _, src := range sources {
		info, err := requireExists("copy", src)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		if info.IsDir() {
			err = CopyDirectory(src, filepath.Join(destDir, filepath.Base(src)), nil, true)
		} else {
			err = CopyFileToDirectory(src, destDir, true)
		}

		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
