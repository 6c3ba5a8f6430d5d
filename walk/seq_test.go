package walk

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/pathwalk/filter"
	"github.com/idelchi/pathwalk/fserr"
)

func TestSeqMatchesAccumulate(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{"a.go": 1, "b.md": 2, "x/c.go": 3, "x/y/d.go": 4, "skip/e.go": 5})

	files := filter.Suffix(".go")
	dirs := filter.Not(filter.Name("skip"))

	res, err := Accumulate(root, files, dirs, Options{})
	require.NoError(t, err)

	var gotFiles, gotDirs []string

	var size int64

	for e, err := range Seq(root, files, dirs, Options{}) {
		require.NoError(t, err)

		if e.Dir {
			gotDirs = append(gotDirs, e.Path)

			continue
		}

		gotFiles = append(gotFiles, e.Path)
		size += e.Size
	}

	assert.Equal(t, res.Files, gotFiles)
	assert.Equal(t, res.Directories, gotDirs)
	assert.Equal(t, res.Counters.Bytes.Get(), size)
}

func TestSeqIsRestartable(t *testing.T) {
	root := scenarioTree(t)
	seq := Seq(root, nil, nil, Options{})

	count := func() int {
		n := 0
		for _, err := range seq {
			require.NoError(t, err)

			n++
		}

		return n
	}

	assert.Equal(t, 3, count())
	assert.Equal(t, 3, count())
}

func TestSeqEarlyBreak(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{"a": 1, "b": 1, "c": 1, "d/e": 1})

	n := 0
	for range Seq(root, nil, nil, Options{}) {
		n++
		if n == 2 {
			break
		}
	}

	assert.Equal(t, 2, n)
}

func TestSeqStructuralError(t *testing.T) {
	root := scenarioTree(t)

	var errs []error

	for e, err := range Seq(filepath.Join(root, "missing"), nil, nil, Options{}) {
		assert.Empty(t, e.Path)

		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], fserr.ErrNotFound)
}

func TestSeqDepthAndHook(t *testing.T) {
	root := scenarioTree(t)

	var paths []string

	for e, err := range Seq(root, nil, nil, Options{MaxDepth: 1}) {
		require.NoError(t, err)

		paths = append(paths, e.Path)
	}

	assert.Equal(t, []string{filepath.Join(root, "a.txt")}, paths)

	boom := errors.New("boom")
	hook := func(string, error) error { return boom }

	// No failures occur, so the hook never fires.
	for _, err := range Seq(root, nil, nil, Options{OnError: hook}) {
		require.NoError(t, err)
	}
}
