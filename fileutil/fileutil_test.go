package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files under root. Keys are slash paths, values are contents.
// Keys ending in "/" create empty directories.
func writeTree(t *testing.T, root string, tree map[string]string) {
	t.Helper()

	for rel, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))

			continue
		}

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func skipUnlessUnixNonRoot(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("permission semantics differ on windows")
	}

	if os.Geteuid() == 0 {
		t.Skip("running as root ignores permissions")
	}
}

// stub replaces a package function for the duration of the test.
func stub[T any](t *testing.T, target *T, value T) {
	t.Helper()

	old := *target
	*target = value

	t.Cleanup(func() { *target = old })
}
