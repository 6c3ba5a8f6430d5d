// Package fserr defines the error taxonomy shared by the pathwalk packages.
//
// Every error that describes a specific path is a *PathError carrying one of the
// sentinel kinds below, so callers can branch with errors.Is on the kind while
// still reaching the underlying OS error.
package fserr

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel error kinds.
var (
	// ErrNotFound reports a missing root or required path argument.
	ErrNotFound = errors.New("not found")
	// ErrNotDirectory reports a path that exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrNotFile reports a path that exists but is not a regular file.
	ErrNotFile = errors.New("not a file")
	// ErrPermission reports a write or delete attempted on a non-writable target.
	ErrPermission = errors.New("permission denied")
	// ErrIO reports an enumeration or attribute-read failure on a specific entry.
	ErrIO = errors.New("i/o failure")
	// ErrExists reports a destination that must be absent but is present.
	ErrExists = errors.New("already exists")
	// ErrLocked reports an advisory lock file that is already held.
	ErrLocked = errors.New("locked")
	// ErrLoop reports a followed symbolic link that leads back to one of its ancestors.
	ErrLoop = errors.New("filesystem loop")
)

// PathError records a failed operation on a path together with its kind.
type PathError struct {
	// Op is the operation that failed (e.g. "walk", "copy").
	Op string
	// Path is the path the operation failed on.
	Path string
	// Kind is one of the sentinel kinds of this package.
	Kind error
	// Err is the underlying cause, if any.
	Err error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Kind)
	}

	return fmt.Sprintf("%s %q: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// New returns a *PathError of the given kind.
func New(op, path string, kind, cause error) error {
	return &PathError{Op: op, Path: path, Kind: kind, Err: cause}
}

// NotFound returns a NotFound error for path.
func NotFound(op, path string) error {
	return &PathError{Op: op, Path: path, Kind: ErrNotFound}
}

// NotDirectory returns a NotADirectory error for path.
func NotDirectory(op, path string) error {
	return &PathError{Op: op, Path: path, Kind: ErrNotDirectory}
}

// NotFile returns a NotAFile error for path.
func NotFile(op, path string) error {
	return &PathError{Op: op, Path: path, Kind: ErrNotFile}
}

// FromOS classifies an error returned by the os package.
// A nil err yields nil.
func FromOS(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var kind error

	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = ErrPermission
	case errors.Is(err, fs.ErrExist):
		kind = ErrExists
	default:
		kind = ErrIO
	}

	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}
