// Package filter provides path predicates for directory walks and the
// combinators used to compose them.
//
// A Filter receives the path as produced by the walk and the directory entry
// describing it. For followed symbolic links the entry describes the link target.
package filter

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Filter reports whether the entry at path should be included.
type Filter func(path string, entry fs.DirEntry) bool

// True includes everything.
func True(string, fs.DirEntry) bool { return true }

// False includes nothing.
func False(string, fs.DirEntry) bool { return false }

// orTrue treats a nil Filter as True.
func orTrue(f Filter) Filter {
	if f == nil {
		return True
	}

	return f
}

// And includes an entry when every filter includes it. Nil filters are ignored.
func And(filters ...Filter) Filter {
	return func(path string, entry fs.DirEntry) bool {
		for _, f := range filters {
			if f != nil && !f(path, entry) {
				return false
			}
		}

		return true
	}
}

// Or includes an entry when any filter includes it.
// A nil filter includes everything, and so does Or with no arguments.
func Or(filters ...Filter) Filter {
	if len(filters) == 0 {
		return True
	}

	return func(path string, entry fs.DirEntry) bool {
		for _, f := range filters {
			if orTrue(f)(path, entry) {
				return true
			}
		}

		return false
	}
}

// Not inverts f. Not(nil) includes nothing.
func Not(f Filter) Filter {
	f = orTrue(f)

	return func(path string, entry fs.DirEntry) bool {
		return !f(path, entry)
	}
}

// RegularFile includes regular files.
func RegularFile(_ string, entry fs.DirEntry) bool {
	return entry.Type().IsRegular()
}

// Directory includes directories.
func Directory(_ string, entry fs.DirEntry) bool {
	return entry.IsDir()
}

// Symlink includes symbolic links that were not followed.
func Symlink(_ string, entry fs.DirEntry) bool {
	return entry.Type()&fs.ModeSymlink != 0
}

// Hidden includes entries whose base name starts with a dot.
func Hidden(path string, _ fs.DirEntry) bool {
	name := filepath.Base(path)

	return len(name) > 1 && name != ".." && strings.HasPrefix(name, ".")
}

// Name includes entries whose base name equals one of names.
func Name(names ...string) Filter {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	return func(path string, _ fs.DirEntry) bool {
		_, ok := set[filepath.Base(path)]

		return ok
	}
}

// Suffix includes entries whose base name ends with one of suffixes.
func Suffix(suffixes ...string) Filter {
	return func(path string, _ fs.DirEntry) bool {
		name := filepath.Base(path)
		for _, s := range suffixes {
			if strings.HasSuffix(name, s) {
				return true
			}
		}

		return false
	}
}

// SuffixFold is Suffix with case-insensitive matching.
func SuffixFold(suffixes ...string) Filter {
	lowered := make([]string, len(suffixes))
	for i, s := range suffixes {
		lowered[i] = strings.ToLower(s)
	}

	return func(path string, _ fs.DirEntry) bool {
		name := strings.ToLower(filepath.Base(path))
		for _, s := range lowered {
			if strings.HasSuffix(name, s) {
				return true
			}
		}

		return false
	}
}

// Extensions builds a suffix filter from a list like ".go,!_test.go".
// Entries prefixed with '!' exclude, and exclusions win over inclusions.
// Surrounding quotes are stripped. With no inclusions every non-excluded entry is included.
func Extensions(exts ...string) Filter {
	include := make([]string, 0, len(exts))
	exclude := make([]string, 0, len(exts))

	for _, e := range exts {
		e = strings.Trim(strings.TrimSpace(e), `'"`)
		if e == "" {
			continue
		}

		if strings.HasPrefix(e, "!") {
			exclude = append(exclude, strings.TrimPrefix(e, "!"))
		} else {
			include = append(include, e)
		}
	}

	excluded := Suffix(exclude...)
	included := Suffix(include...)

	return func(path string, entry fs.DirEntry) bool {
		if excluded(path, entry) {
			return false
		}

		return len(include) == 0 || included(path, entry)
	}
}

// info returns the entry's metadata, or nil when it cannot be read.
func info(entry fs.DirEntry) fs.FileInfo {
	fi, err := entry.Info()
	if err != nil {
		return nil
	}

	return fi
}

// MinSize includes entries of at least n bytes.
func MinSize(n int64) Filter {
	return func(_ string, entry fs.DirEntry) bool {
		fi := info(entry)

		return fi != nil && fi.Size() >= n
	}
}

// MaxSize includes entries of at most n bytes.
func MaxSize(n int64) Filter {
	return func(_ string, entry fs.DirEntry) bool {
		fi := info(entry)

		return fi != nil && fi.Size() <= n
	}
}

// NewerThan includes entries modified strictly after t.
func NewerThan(t time.Time) Filter {
	return func(_ string, entry fs.DirEntry) bool {
		fi := info(entry)

		return fi != nil && fi.ModTime().After(t)
	}
}

// OlderThan includes entries modified strictly before t.
func OlderThan(t time.Time) Filter {
	return func(_ string, entry fs.DirEntry) bool {
		fi := info(entry)

		return fi != nil && fi.ModTime().Before(t)
	}
}
