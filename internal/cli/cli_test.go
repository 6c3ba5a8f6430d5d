package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer

	cmd := New("v1.2.3").Command()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), err
}

func writeTree(t *testing.T, root string, tree map[string]string) {
	t.Helper()

	for rel, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func projectTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":           "package main\n",
		"main_test.go":      "package main_test\n",
		"docs/guide.md":     "# guide\n",
		"docs/deep/api.md":  "# api\n",
		".hidden/secret.go": "package secret\n",
		".git/HEAD":         "ref: refs/heads/main\n",
		"build/out.log":     "log\n",
		".gitignore":        "build/\n",
	})

	return root
}

type listJSON struct {
	Root        string   `json:"root"`
	Files       []string `json:"files"`
	Directories []string `json:"directories"`
	Counters    struct {
		Files       int64 `json:"files"`
		Directories int64 `json:"directories"`
		Bytes       int64 `json:"bytes"`
	} `json:"counters"`
	DirectoryMode bool `json:"directory_mode"`
}

func decodeList(t *testing.T, out string) listJSON {
	t.Helper()

	var got listJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	return got
}

func slashed(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(p)
	}

	return out
}

func TestListJSON(t *testing.T) {
	root := projectTree(t)

	out, err := run(t, "list", root, "-o", "json", "--relative", "--sort")
	require.NoError(t, err)

	got := decodeList(t, out)
	assert.Equal(t,
		[]string{"build/out.log", "docs/deep/api.md", "docs/guide.md", "main.go", "main_test.go"},
		slashed(got.Files),
		"hidden entries and .git are skipped by default",
	)
	assert.Equal(t, []string{"build", "docs", "docs/deep"}, slashed(got.Directories))
	assert.Equal(t, int64(4), got.Counters.Directories, "root is counted")
	assert.Equal(t, int64(5), got.Counters.Files)
}

func TestListFilters(t *testing.T) {
	root := projectTree(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "extensions",
			args: []string{"--ext", ".go,!_test.go"},
			want: []string{"main.go"},
		},
		{
			name: "glob",
			args: []string{"--glob", "docs/**/*.md,!**/deep/**"},
			want: []string{"docs/guide.md"},
		},
		{
			name: "gitignore",
			args: []string{"--gitignore", "--ext", ".log,.md"},
			want: []string{"docs/deep/api.md", "docs/guide.md"},
		},
		{
			name: "depth",
			args: []string{"--depth", "1"},
			want: []string{"main.go", "main_test.go"},
		},
		{
			name: "hidden",
			args: []string{"--hidden", "--ext", ".go", "--exclude", `_test\.go$`},
			want: []string{".hidden/secret.go", "main.go"},
		},
		{
			name: "min size",
			args: []string{"--min-size", "14B"},
			want: []string{"main_test.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"list", root, "-o", "json", "--relative", "--sort"}, tt.args...)

			out, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slashed(decodeList(t, out).Files))
		})
	}
}

func TestListDirsTable(t *testing.T) {
	root := projectTree(t)

	out, err := run(t, "list", root, "--dirs", "--relative", "--sort")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, []string{"build", "docs", filepath.Join("docs", "deep")}, lines[:3])
	assert.Contains(t, out, "Top directories:")
	assert.Contains(t, out, "Total directories:")
}

func TestListToFile(t *testing.T) {
	root := projectTree(t)
	target := filepath.Join(t.TempDir(), "out", "list.json")

	out, err := run(t, "list", root, "-o", "json", "--file", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Len(t, decodeList(t, string(data)).Files, 5)

	assert.NoFileExists(t, filepath.Join(os.TempDir(), "list.json.lck"))
}

func TestListErrors(t *testing.T) {
	root := projectTree(t)

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{name: "output", args: []string{"list", root, "-o", "xml"}, msg: "invalid output format"},
		{name: "depth", args: []string{"list", root, "--depth=-1"}, msg: "depth cannot be negative"},
		{name: "min size", args: []string{"list", root, "--min-size", "huge"}, msg: "invalid min-size"},
		{name: "regex", args: []string{"list", root, "--exclude", "("}, msg: "compiling pattern"},
		{name: "glob", args: []string{"list", root, "--glob", "[a-"}, msg: "invalid glob pattern"},
		{name: "missing root", args: []string{"list", filepath.Join(root, "nope")}, msg: "not found"},
		{name: "file root", args: []string{"list", filepath.Join(root, "main.go")}, msg: "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestListEnvironment(t *testing.T) {
	root := projectTree(t)
	t.Setenv("PATHWALK_OUTPUT", "json")

	out, err := run(t, "list", root)
	require.NoError(t, err)
	assert.Len(t, decodeList(t, out).Files, 5)
}

func TestListConfigFile(t *testing.T) {
	root := projectTree(t)
	config := filepath.Join(t.TempDir(), "pathwalk.yaml")
	require.NoError(t, os.WriteFile(config, []byte("output: json\ndirs: true\n"), 0o644))

	out, err := run(t, "--config", config, "list", root)
	require.NoError(t, err)
	assert.True(t, decodeList(t, out).DirectoryMode)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "list", root)
	require.ErrorContains(t, err, "reading config file")
}

func TestSize(t *testing.T) {
	root := projectTree(t)

	out, err := run(t, "size", root, "-o", "json", "--exclude", `(^|/)\.`)
	require.NoError(t, err)

	var usage struct {
		FileCount  int64 `json:"file_count"`
		TotalBytes int64 `json:"total_bytes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &usage))

	assert.Equal(t, int64(5), usage.FileCount)
	assert.Equal(t, int64(13+18+8+6+4), usage.TotalBytes)

	out, err = run(t, "size", filepath.Join(root, "main.go"))
	require.NoError(t, err)
	assert.Contains(t, out, "(13 bytes)")

	_, err = run(t, "size", filepath.Join(root, "nope"))
	require.ErrorContains(t, err, "not found")
}

func TestChecksum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	out, err := run(t, "checksum", "-a", "md5", path)
	require.NoError(t, err)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592  "+path+"\n", out)

	out, err = run(t, "checksum", path, filepath.Join(dir, "missing"))
	require.ErrorContains(t, err, "not found")
	assert.Contains(t, out, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824")

	_, err = run(t, "checksum", "-a", "whirlpool", path)
	require.ErrorContains(t, err, "unsupported checksum algorithm")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3\n", out)
}
