package walk

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Relativize returns paths relative to parent. When cmp is not nil the
// result is sorted with it, otherwise the input order is kept.
func Relativize(paths []string, parent string, cmp func(a, b string) int) ([]string, error) {
	out := make([]string, 0, len(paths))

	for _, p := range paths {
		rel, err := filepath.Rel(parent, p)
		if err != nil {
			return nil, fmt.Errorf("relativizing %q to %q: %w", p, parent, err)
		}

		out = append(out, rel)
	}

	if cmp != nil {
		slices.SortFunc(out, cmp)
	}

	return out, nil
}

func lexical(sorted bool) func(a, b string) int {
	if !sorted {
		return nil
	}

	return strings.Compare
}
