package fserr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromOS(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{name: "not exist", err: fs.ErrNotExist, kind: ErrNotFound},
		{name: "permission", err: fs.ErrPermission, kind: ErrPermission},
		{name: "exist", err: fs.ErrExist, kind: ErrExists},
		{name: "other", err: errors.New("disk on fire"), kind: ErrIO},
		{
			name: "wrapped path error",
			err:  &os.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist},
			kind: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromOS("op", "/x", tt.err)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, FromOS("op", "/x", nil))
}

func TestPathErrorMessage(t *testing.T) {
	err := NotFound("walk", "/missing")
	assert.Equal(t, `walk "/missing": not found`, err.Error())

	err = New("read", "/dir", ErrIO, errors.New("boom"))
	assert.Equal(t, `read "/dir": i/o failure: boom`, err.Error())

	wrapped := fmt.Errorf("listing: %w", NotDirectory("walk", "/file"))
	assert.ErrorIs(t, wrapped, ErrNotDirectory)
	assert.NotErrorIs(t, wrapped, ErrNotFound)

	var pe *PathError
	require.ErrorAs(t, wrapped, &pe)
	assert.Equal(t, "/file", pe.Path)
	assert.Equal(t, "walk", pe.Op)
}
