package fileutil

import (
	"iter"
	"strings"

	"github.com/idelchi/pathwalk/filter"
	"github.com/idelchi/pathwalk/walk"
)

// ListFiles returns the regular files below dir accepted by fileFilter,
// descending into subdirectories accepted by dirFilter. Symbolic links are followed.
// A nil dirFilter descends everywhere.
func ListFiles(dir string, fileFilter, dirFilter filter.Filter) ([]string, error) {
	result, err := walk.Accumulate(dir, filter.And(filter.RegularFile, fileFilter), dirFilter, walk.Options{
		FollowLinks: true,
	})
	if err != nil {
		return nil, err
	}

	return result.Files, nil
}

// ListFilesAndDirs is ListFiles that also returns the directories visited,
// dir itself first.
func ListFilesAndDirs(dir string, fileFilter, dirFilter filter.Filter) ([]string, error) {
	result, err := walk.Accumulate(dir, filter.And(filter.RegularFile, fileFilter), dirFilter, walk.Options{
		FollowLinks: true,
	})
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, 1+len(result.Directories)+len(result.Files))
	paths = append(paths, result.Root)
	paths = append(paths, result.Directories...)

	return append(paths, result.Files...), nil
}

// extensionFilter matches files ending in any of exts. Extensions are given
// with or without the leading dot. No extensions matches every file.
func extensionFilter(exts []string) filter.Filter {
	if len(exts) == 0 {
		return filter.True
	}

	suffixes := make([]string, 0, len(exts))

	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}

		suffixes = append(suffixes, "."+strings.TrimPrefix(e, "."))
	}

	return filter.Suffix(suffixes...)
}

// ListFilesByExtension returns the files below dir with one of the given
// extensions. Without recursive only dir's own entries are considered.
func ListFilesByExtension(dir string, exts []string, recursive bool) ([]string, error) {
	result, err := walk.Accumulate(dir, filter.And(filter.RegularFile, extensionFilter(exts)), nil, walk.Options{
		FollowLinks: true,
		MaxDepth:    walk.MaxDepth(recursive),
	})
	if err != nil {
		return nil, err
	}

	return result.Files, nil
}

// IterateFiles yields the paths ListFiles would return without collecting them.
func IterateFiles(dir string, fileFilter, dirFilter filter.Filter) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		entries := walk.Seq(dir, filter.And(filter.RegularFile, fileFilter), dirFilter, walk.Options{
			FollowLinks: true,
		})

		for e, err := range entries {
			if err != nil {
				yield("", err)

				return
			}

			if e.Dir {
				continue
			}

			if !yield(e.Path, nil) {
				return
			}
		}
	}
}
