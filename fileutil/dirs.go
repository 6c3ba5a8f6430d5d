package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/idelchi/pathwalk/fserr"
)

// IsEmptyDirectory reports whether dir has no entries.
func IsEmptyDirectory(dir string) (bool, error) {
	if _, err := requireDirectory("list", dir); err != nil {
		return false, err
	}

	f, err := os.Open(dir)
	if err != nil {
		return false, fserr.FromOS("list", dir, err)
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}

	if err != nil {
		return false, fserr.New("list", dir, fserr.ErrIO, err)
	}

	return false, nil
}

// canonical returns the absolute path of path with symbolic links resolved.
func canonical(op, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fserr.New(op, path, fserr.ErrIO, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fserr.FromOS(op, path, err)
	}

	return resolved, nil
}

// within reports whether child lies strictly below dir. Both must be clean and absolute.
func within(dir, child string) bool {
	rel, err := filepath.Rel(dir, child)
	if err != nil || rel == "." {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// DirectoryContains reports whether child lies strictly below dir after
// resolving symbolic links. A missing child is never contained.
func DirectoryContains(dir, child string) (bool, error) {
	if _, err := requireDirectory("contains", dir); err != nil {
		return false, err
	}

	info, err := stat("contains", child)
	if err != nil || info == nil {
		return false, err
	}

	d, err := canonical("contains", dir)
	if err != nil {
		return false, err
	}

	c, err := canonical("contains", child)
	if err != nil {
		return false, err
	}

	return within(d, c), nil
}

// IsFileNewer reports whether the file at path was modified after t.
func IsFileNewer(path string, t time.Time) (bool, error) {
	info, err := requireExists("compare time", path)
	if err != nil {
		return false, err
	}

	return info.ModTime().After(t), nil
}

// IsFileOlder reports whether the file at path was modified before t.
func IsFileOlder(path string, t time.Time) (bool, error) {
	info, err := requireExists("compare time", path)
	if err != nil {
		return false, err
	}

	return info.ModTime().Before(t), nil
}

// IsFileNewerThanFile reports whether path was modified after reference.
func IsFileNewerThanFile(path, reference string) (bool, error) {
	ref, err := requireExists("compare time", reference)
	if err != nil {
		return false, err
	}

	return IsFileNewer(path, ref.ModTime())
}

// IsFileOlderThanFile reports whether path was modified before reference.
func IsFileOlderThanFile(path, reference string) (bool, error) {
	ref, err := requireExists("compare time", reference)
	if err != nil {
		return false, err
	}

	return IsFileOlder(path, ref.ModTime())
}
