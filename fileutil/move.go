package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/idelchi/pathwalk/fserr"
)

// Filesystem primitives, replaceable in tests.
//
//nolint:gochecknoglobals // Functional injection for testability
var (
	rename = os.Rename
	remove = os.Remove
)

// MoveFile moves the regular file src to dst, which must not exist.
// When a rename is impossible, e.g. across devices, the file is copied and
// the source removed. If the source cannot be removed the copy is undone.
func MoveFile(src, dst string) error {
	if _, err := requireFile("move", src); err != nil {
		return err
	}

	if err := requireAbsent("move", dst); err != nil {
		return err
	}

	if err := rename(src, dst); err == nil {
		return nil
	}

	if err := CopyFile(src, dst, true); err != nil {
		return err
	}

	if err := remove(src); err != nil {
		_ = os.Remove(dst)

		return fmt.Errorf("deleting %q after copy to %q: %w", src, dst, fserr.FromOS("move", src, err))
	}

	return nil
}

// MoveDirectory moves the directory src to dst, which must not exist.
// Moving a directory into its own subtree fails.
func MoveDirectory(src, dst string) error {
	if _, err := requireDirectory("move", src); err != nil {
		return err
	}

	if err := requireAbsent("move", dst); err != nil {
		return err
	}

	srcAbs, err := canonical("move", src)
	if err != nil {
		return err
	}

	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return fserr.New("move", dst, fserr.ErrIO, err)
	}

	if parent, err := canonical("move", filepath.Dir(dstAbs)); err == nil {
		dstAbs = filepath.Join(parent, filepath.Base(dstAbs))
	}

	if within(srcAbs, dstAbs) {
		return fmt.Errorf("moving %q: destination %q is a subdirectory of the source", src, dst)
	}

	if err := rename(src, dst); err == nil {
		return nil
	}

	if err := CopyDirectory(src, dst, nil, true); err != nil {
		return err
	}

	if err := DeleteDirectory(src); err != nil {
		return fmt.Errorf("deleting %q after copy to %q: %w", src, dst, err)
	}

	if _, err := os.Lstat(src); err == nil {
		return fmt.Errorf("deleting %q after copy to %q: directory still exists", src, dst)
	}

	return nil
}

// prepareDestDir makes sure destDir is a directory, creating it if allowed.
func prepareDestDir(destDir string, createDestDir bool) error {
	info, err := stat("move", destDir)
	if err != nil {
		return err
	}

	if info != nil {
		if !info.IsDir() {
			return fserr.NotDirectory("move", destDir)
		}

		return nil
	}

	if !createDestDir {
		return fserr.NotFound("move", destDir)
	}

	return ForceMkdir(destDir)
}

// MoveFileToDirectory moves src into destDir, keeping its base name.
func MoveFileToDirectory(src, destDir string, createDestDir bool) error {
	if err := prepareDestDir(destDir, createDestDir); err != nil {
		return err
	}

	return MoveFile(src, filepath.Join(destDir, filepath.Base(src)))
}

// MoveDirectoryToDirectory moves src into destDir, keeping its base name.
func MoveDirectoryToDirectory(src, destDir string, createDestDir bool) error {
	if _, err := requireDirectory("move", src); err != nil {
		return err
	}

	if err := prepareDestDir(destDir, createDestDir); err != nil {
		return err
	}

	return MoveDirectory(src, filepath.Join(destDir, filepath.Base(src)))
}

// MoveToDirectory moves a file or directory into destDir.
func MoveToDirectory(src, destDir string, createDestDir bool) error {
	info, err := requireExists("move", src)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return MoveDirectoryToDirectory(src, destDir, createDestDir)
	}

	return MoveFileToDirectory(src, destDir, createDestDir)
}
