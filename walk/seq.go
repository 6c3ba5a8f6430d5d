package walk

import (
	"iter"

	"github.com/idelchi/pathwalk/filter"
)

// Seq returns an iterator over the files and directories Accumulate would
// record, in the same order. The root itself is not yielded.
//
// Every range over the iterator walks the tree again. A walk failure is
// yielded once as the final pair with a zero Entry.
func Seq(root string, fileFilter, dirFilter filter.Filter, opts Options) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		m := newMatcher(fileFilter, dirFilter)
		m.onError = opts.OnError
		m.log = logger{w: opts.Debug}

		stopped := false
		m.sink = func(e Entry) error {
			if e.Dir && e.Depth == 0 {
				return nil
			}

			if !yield(e, nil) {
				stopped = true

				return Terminate
			}

			return nil
		}

		if err := Walk(root, m, opts); err != nil && !stopped {
			yield(Entry{}, err)
		}
	}
}
