// Package fileutil provides filesystem conveniences built on the walk package:
// copying, moving, and deleting trees, reading and writing whole files,
// checksums, content comparison, and directory sizing.
//
// Preconditions are checked before any side effect. Failures are reported as
// *fserr.PathError values, so callers can test them with errors.Is against
// fserr.ErrNotFound, fserr.ErrNotDirectory, fserr.ErrNotFile,
// fserr.ErrPermission, fserr.ErrExists, and fserr.ErrIO.
package fileutil
