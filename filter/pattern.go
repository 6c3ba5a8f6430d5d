package filter

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/monochromegane/go-gitignore"
)

// Regexp includes entries whose slash-separated path matches any of patterns.
func Regexp(patterns ...string) (Filter, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", p, err)
		}

		res = append(res, re)
	}

	return func(path string, _ fs.DirEntry) bool {
		return MatchingPattern(path, res) != nil
	}, nil
}

// ExcludeRegexp excludes entries whose slash-separated path matches any of patterns.
// With no patterns it includes everything.
func ExcludeRegexp(patterns ...string) (Filter, error) {
	if len(patterns) == 0 {
		return True, nil
	}

	f, err := Regexp(patterns...)
	if err != nil {
		return nil, err
	}

	return Not(f), nil
}

// MatchingPattern returns the first pattern that matches path, or nil.
func MatchingPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// Glob builds a filter from a comma-separated list of doublestar patterns,
// e.g. "**/*.go,!**/*_test.go". Paths are matched relative to base in slash form.
// Patterns prefixed with '!' exclude. With no positive pattern everything not
// excluded is included.
func Glob(base, pattern string) (Filter, error) {
	var positive, negative []string

	for _, p := range strings.Split(pattern, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		target := &positive
		if strings.HasPrefix(p, "!") {
			p = strings.TrimPrefix(p, "!")
			target = &negative
		}

		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern '%s': %w", p, doublestar.ErrBadPattern)
		}

		*target = append(*target, p)
	}

	base = filepath.Clean(base)

	return func(path string, _ fs.DirEntry) bool {
		rel, err := filepath.Rel(base, path)
		if err != nil {
			rel = path
		}

		rel = filepath.ToSlash(rel)

		matched := len(positive) == 0
		for _, p := range positive {
			if doublestar.MatchUnvalidated(p, rel) {
				matched = true

				break
			}
		}

		if !matched {
			return false
		}

		for _, p := range negative {
			if doublestar.MatchUnvalidated(p, rel) {
				return false
			}
		}

		return true
	}, nil
}

// GitIgnore excludes entries matched by root/.gitignore.
// A missing .gitignore yields a filter that includes everything.
func GitIgnore(root string) (Filter, error) {
	root = filepath.Clean(root)
	path := filepath.Join(root, ".gitignore")

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return True, nil
		}

		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	return GitIgnoreFromReader(root, file), nil
}

// GitIgnoreFromReader excludes entries matched by the gitignore rules read from r,
// interpreted relative to root.
func GitIgnoreFromReader(root string, r io.Reader) Filter {
	matcher := gitignore.NewGitIgnoreFromReader(filepath.Clean(root), r)

	return func(path string, entry fs.DirEntry) bool {
		return !matcher.Match(path, entry.IsDir())
	}
}
