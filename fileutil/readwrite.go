package fileutil

import (
	"bufio"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/idelchi/pathwalk/fserr"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

// LineSeparator is the line ending WriteLines uses when none is given.
var LineSeparator = func() string { //nolint:gochecknoglobals // Platform constant
	if runtime.GOOS == "windows" {
		return "\r\n"
	}

	return "\n"
}()

// ReadBytes returns the contents of the file at path.
func ReadBytes(path string) ([]byte, error) {
	if _, err := requireFile("read", path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fserr.FromOS("read", path, err)
	}

	return data, nil
}

// ReadString returns the contents of the file at path as a string.
func ReadString(path string) (string, error) {
	data, err := ReadBytes(path)

	return string(data), err
}

// ReadLines returns the lines of the file at path without their terminators.
// "\n", "\r\n", and "\r" all end a line.
func ReadLines(path string) ([]string, error) {
	if _, err := requireFile("read", path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fserr.FromOS("read", path, err)
	}
	defer file.Close()

	lines := make([]string, 0)

	s := newLineScanner(file)
	for s.Scan() {
		lines = append(lines, s.Text())
	}

	if err := s.Err(); err != nil {
		return nil, fserr.New("read", path, fserr.ErrIO, err)
	}

	return lines, nil
}

// openForWrite opens path for writing, creating missing parent directories.
func openForWrite(op, path string, appendMode bool) (*os.File, error) {
	info, err := stat(op, path)
	if err != nil {
		return nil, err
	}

	if info != nil && info.IsDir() {
		return nil, fserr.NotFile(op, path)
	}

	if err := ForceMkdirParent(path); err != nil {
		return nil, err
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendMode {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	file, err := os.OpenFile(path, flags, fileMode)
	if err != nil {
		return nil, fserr.FromOS(op, path, err)
	}

	return file, nil
}

// WriteBytes writes data to the file at path, replacing or appending to it.
func WriteBytes(path string, data []byte, appendMode bool) error {
	file, err := openForWrite("write", path, appendMode)
	if err != nil {
		return err
	}

	if _, err := file.Write(data); err != nil {
		file.Close()

		return fserr.New("write", path, fserr.ErrIO, err)
	}

	if err := file.Close(); err != nil {
		return fserr.New("write", path, fserr.ErrIO, err)
	}

	return nil
}

// WriteString writes s to the file at path, replacing or appending to it.
func WriteString(path, s string, appendMode bool) error {
	return WriteBytes(path, []byte(s), appendMode)
}

// WriteLines writes each line followed by lineEnding, or LineSeparator if it is empty.
func WriteLines(path string, lines []string, lineEnding string, appendMode bool) error {
	if lineEnding == "" {
		lineEnding = LineSeparator
	}

	file, err := openForWrite("write", path, appendMode)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)

	for _, line := range lines {
		if _, err := w.WriteString(line + lineEnding); err != nil {
			file.Close()

			return fserr.New("write", path, fserr.ErrIO, err)
		}
	}

	if err := w.Flush(); err != nil {
		file.Close()

		return fserr.New("write", path, fserr.ErrIO, err)
	}

	if err := file.Close(); err != nil {
		return fserr.New("write", path, fserr.ErrIO, err)
	}

	return nil
}

// Touch creates an empty file at path or updates its modification time to now.
func Touch(path string) error {
	info, err := stat("touch", path)
	if err != nil {
		return err
	}

	if info == nil {
		file, err := openForWrite("touch", path, true)
		if err != nil {
			return err
		}

		return fserr.FromOS("touch", path, file.Close())
	}

	now := time.Now()

	return fserr.FromOS("touch", path, os.Chtimes(path, now, now))
}

// ForceMkdir creates dir and any missing parents.
// It fails with fserr.ErrNotDirectory if dir exists as a file.
func ForceMkdir(dir string) error {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
			return fserr.NotDirectory("mkdir", dir)
		}

		return fserr.FromOS("mkdir", dir, err)
	}

	return nil
}

// ForceMkdirParent creates the parent directories of path.
func ForceMkdirParent(path string) error {
	return ForceMkdir(filepath.Dir(path))
}
