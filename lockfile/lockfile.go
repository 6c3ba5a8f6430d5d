// Package lockfile provides a file writer guarded by an advisory lock file.
//
// Opening a Writer for "report.txt" creates "report.txt.lck" in a lock
// directory with exclusive-create semantics. A second Open for a file with
// the same base name fails with fserr.ErrLocked until the first Writer is
// closed. Cooperating writers must agree on the lock directory; the lock is
// not enforced by the operating system.
package lockfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/idelchi/pathwalk/fileutil"
	"github.com/idelchi/pathwalk/fserr"
)

// Suffix is appended to the target's base name to form the lock file name.
const Suffix = ".lck"

// Options configures Open.
type Options struct {
	// Append writes to the end of an existing file instead of truncating it.
	Append bool
	// LockDir holds the lock file. Empty means os.TempDir().
	LockDir string
}

// Writer writes to a file while holding its lock.
type Writer struct {
	mu     sync.Mutex
	file   *os.File
	lock   string
	closed bool
}

// Open acquires the lock for path and opens it for writing.
//
// Missing parent directories of path and a missing lock directory are created.
// A directory at path fails with fserr.ErrNotFile and a held lock with
// fserr.ErrLocked. If the target cannot be opened the lock is released, and
// the target is removed if this call created it.
func Open(path string, opts Options) (*Writer, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fserr.New("lock", path, fserr.ErrIO, err)
	}

	if err := fileutil.ForceMkdirParent(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)

	existed := err == nil
	if existed && info.IsDir() {
		return nil, fserr.NotFile("lock", path)
	}

	lockDir := opts.LockDir
	if lockDir == "" {
		lockDir = os.TempDir()
	}

	if err := fileutil.ForceMkdir(lockDir); err != nil {
		return nil, err
	}

	lock := filepath.Join(lockDir, filepath.Base(path)+Suffix)
	if err := acquire(lock); err != nil {
		return nil, err
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if opts.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		_ = os.Remove(lock)

		if !existed {
			_ = os.Remove(path)
		}

		return nil, fserr.FromOS("lock", path, err)
	}

	return &Writer{file: file, lock: lock}, nil
}

// acquire creates the lock file, failing if it already exists.
func acquire(lock string) error {
	f, err := os.OpenFile(lock, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return fserr.New("lock", lock, fserr.ErrLocked, nil)
	}

	if err != nil {
		return fserr.FromOS("lock", lock, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(lock)

		return fserr.New("lock", lock, fserr.ErrIO, err)
	}

	return nil
}

// Name returns the absolute path of the file being written.
func (w *Writer) Name() string {
	return w.file.Name()
}

// LockPath returns the path of the held lock file.
func (w *Writer) LockPath() string {
	return w.lock
}

// Write writes p to the file.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, fserr.New("write", w.file.Name(), fserr.ErrIO, os.ErrClosed)
	}

	n, err := w.file.Write(p)
	if err != nil {
		return n, fserr.New("write", w.file.Name(), fserr.ErrIO, err)
	}

	return n, nil
}

// WriteString writes s to the file.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Sync commits the written contents to stable storage.
func (w *Writer) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fserr.New("sync", w.file.Name(), fserr.ErrIO, os.ErrClosed)
	}

	return fserr.FromOS("sync", w.file.Name(), w.file.Sync())
}

// Close closes the file and releases the lock, even if closing the file fails.
// Closing an already closed Writer does nothing.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	w.closed = true

	closeErr := w.file.Close()
	removeErr := os.Remove(w.lock)

	if errors.Is(removeErr, fs.ErrNotExist) {
		removeErr = nil
	}

	return errors.Join(
		fserr.FromOS("close", w.file.Name(), closeErr),
		fserr.FromOS("unlock", w.lock, removeErr),
	)
}
