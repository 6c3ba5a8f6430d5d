package lockfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/pathwalk/fserr"
)

func TestOpenWriteClose(t *testing.T) {
	dir := t.TempDir()
	lockDir := filepath.Join(dir, "locks")
	target := filepath.Join(dir, "out", "report.txt")

	w, err := Open(target, Options{LockDir: lockDir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(lockDir, "report.txt.lck"), w.LockPath())
	assert.FileExists(t, w.LockPath())

	_, err = w.WriteString("hello ")
	require.NoError(t, err)

	_, err = w.Write([]byte("world"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")

	assert.NoFileExists(t, filepath.Join(lockDir, "report.txt.lck"))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	_, err = w.WriteString("late")
	require.ErrorIs(t, err, os.ErrClosed)
}

func TestOpenAppend(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "log.txt")
	require.NoError(t, os.WriteFile(target, []byte("one\n"), 0o644))

	w, err := Open(target, Options{Append: true, LockDir: dir})
	require.NoError(t, err)

	_, err = w.WriteString("two\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))

	w, err = Open(target, Options{LockDir: dir})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Empty(t, data, "without append the file is truncated")
}

func TestOpenLocked(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "shared.txt")

	first, err := Open(target, Options{LockDir: dir})
	require.NoError(t, err)

	_, err = Open(target, Options{LockDir: dir})
	require.ErrorIs(t, err, fserr.ErrLocked)

	require.NoError(t, first.Close())

	second, err := Open(target, Options{LockDir: dir})
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestOpenDefaultLockDir(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	target := filepath.Join(t.TempDir(), "default.txt")

	w, err := Open(target, Options{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(os.TempDir(), "default.txt"+Suffix), w.LockPath())
	require.NoError(t, w.Close())
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(dir, Options{LockDir: dir})
	require.ErrorIs(t, err, fserr.ErrNotFile)

	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err = Open(filepath.Join(dir, "x.txt"), Options{LockDir: file})
	require.ErrorIs(t, err, fserr.ErrNotDirectory)
}

func TestOpenReleasesLockOnFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root ignores permissions")
	}

	dir := t.TempDir()
	lockDir := filepath.Join(dir, "locks")
	target := filepath.Join(dir, "readonly.txt")

	require.NoError(t, os.WriteFile(target, []byte("keep"), 0o444))

	_, err := Open(target, Options{LockDir: lockDir})
	require.ErrorIs(t, err, fserr.ErrPermission)

	assert.NoFileExists(t, filepath.Join(lockDir, "readonly.txt"+Suffix))
	assert.FileExists(t, target, "an existing target is left in place")
}

func TestOpenUnwritableLockDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root ignores permissions")
	}

	dir := t.TempDir()
	lockDir := filepath.Join(dir, "locks")
	require.NoError(t, os.Mkdir(lockDir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(lockDir, 0o755) })

	_, err := Open(filepath.Join(dir, "x.txt"), Options{LockDir: lockDir})
	require.ErrorIs(t, err, fserr.ErrPermission)
}
