package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/pathwalk/filter"
	"github.com/idelchi/pathwalk/fserr"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "nested", "deeper", "dst.txt")

	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o600))

	old := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(src, old, old))

	require.NoError(t, CopyFile(src, dst, true))

	assert.Equal(t, "payload", readFile(t, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "modification time preserved")
}

func TestCopyFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a": "new", "b": "old contents"})

	require.NoError(t, CopyFile(filepath.Join(dir, "a"), filepath.Join(dir, "b"), false))
	assert.Equal(t, "new", readFile(t, filepath.Join(dir, "b")))
}

func TestCopyFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"file": "x", "sub/": ""})

	file := filepath.Join(dir, "file")
	sub := filepath.Join(dir, "sub")

	tests := []struct {
		name string
		src  string
		dst  string
		kind error
	}{
		{name: "missing source", src: filepath.Join(dir, "nope"), dst: filepath.Join(dir, "out"), kind: fserr.ErrNotFound},
		{name: "directory source", src: sub, dst: filepath.Join(dir, "out"), kind: fserr.ErrNotFile},
		{name: "directory destination", src: file, dst: sub, kind: fserr.ErrNotFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CopyFile(tt.src, tt.dst, false)
			require.ErrorIs(t, err, tt.kind)
		})
	}

	t.Run("same file", func(t *testing.T) {
		require.Error(t, CopyFile(file, file, false))
		assert.Equal(t, "x", readFile(t, file))
	})
}

func TestCopyFileToDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "a", "dest/": "", "plain": "p"})

	require.NoError(t, CopyFileToDirectory(filepath.Join(dir, "a.txt"), filepath.Join(dir, "dest"), false))
	assert.Equal(t, "a", readFile(t, filepath.Join(dir, "dest", "a.txt")))

	err := CopyFileToDirectory(filepath.Join(dir, "a.txt"), filepath.Join(dir, "plain"), false)
	require.ErrorIs(t, err, fserr.ErrNotDirectory)
}

func TestCopyDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeTree(t, src, map[string]string{
		"a.txt":          "a",
		"skip.log":       "log",
		"sub/b.txt":      "b",
		"sub/deep/c.txt": "c",
		"empty/":         "",
	})

	dst := filepath.Join(dir, "dst")

	require.NoError(t, CopyDirectory(src, dst, nil, true))

	assert.Equal(t, "a", readFile(t, filepath.Join(dst, "a.txt")))
	assert.Equal(t, "c", readFile(t, filepath.Join(dst, "sub", "deep", "c.txt")))
	assert.DirExists(t, filepath.Join(dst, "empty"))
}

func TestCopyDirectoryFiltered(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeTree(t, src, map[string]string{
		"a.txt":      "a",
		"skip.log":   "log",
		"sub/b.txt":  "b",
		"node/x.txt": "x",
	})

	dst := filepath.Join(dir, "dst")
	f := filter.And(
		filter.Not(filter.Suffix(".log")),
		filter.Not(filter.Name("node")),
	)

	require.NoError(t, CopyDirectory(src, dst, f, false))

	assert.FileExists(t, filepath.Join(dst, "a.txt"))
	assert.FileExists(t, filepath.Join(dst, "sub", "b.txt"))
	assert.NoFileExists(t, filepath.Join(dst, "skip.log"))
	assert.NoDirExists(t, filepath.Join(dst, "node"))
}

func TestCopyDirectoryIntoItself(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "a", "sub/b.txt": "b"})

	dst := filepath.Join(src, "copy")

	require.NoError(t, CopyDirectory(src, dst, nil, false))

	assert.Equal(t, "a", readFile(t, filepath.Join(dst, "a.txt")))
	assert.Equal(t, "b", readFile(t, filepath.Join(dst, "sub", "b.txt")))
	assert.NoDirExists(t, filepath.Join(dst, "copy"))
}

func TestCopyDirectoryErrors(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"file": "x", "src/a": "a"})

	require.ErrorIs(t, CopyDirectory(filepath.Join(dir, "nope"), filepath.Join(dir, "out"), nil, false), fserr.ErrNotFound)
	require.ErrorIs(t, CopyDirectory(filepath.Join(dir, "file"), filepath.Join(dir, "out"), nil, false), fserr.ErrNotDirectory)
	require.ErrorIs(t, CopyDirectory(filepath.Join(dir, "src"), filepath.Join(dir, "file"), nil, false), fserr.ErrNotDirectory)
	require.Error(t, CopyDirectory(filepath.Join(dir, "src"), filepath.Join(dir, "src"), nil, false))
}

func TestCopyToDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"one.txt": "1", "tree/two.txt": "2", "dest/": ""})

	dest := filepath.Join(dir, "dest")

	err := CopyToDirectory(dest,
		filepath.Join(dir, "one.txt"),
		filepath.Join(dir, "tree"),
		filepath.Join(dir, "missing"),
	)
	require.ErrorIs(t, err, fserr.ErrNotFound)

	assert.Equal(t, "1", readFile(t, filepath.Join(dest, "one.txt")))
	assert.Equal(t, "2", readFile(t, filepath.Join(dest, "tree", "two.txt")))
}

func TestCopyDirectoryUnreadable(t *testing.T) {
	skipUnlessUnixNonRoot(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeTree(t, src, map[string]string{"locked/a": "a"})

	locked := filepath.Join(src, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, fs.FileMode(0o755)) })

	require.ErrorIs(t, CopyDirectory(src, filepath.Join(dir, "dst"), nil, false), fserr.ErrIO)
}
