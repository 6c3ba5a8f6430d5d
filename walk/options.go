package walk

import (
	"fmt"
	"io"
)

// Unbounded is the MaxDepth value that places no limit on traversal depth.
const Unbounded = 0

// Options configures a walk.
type Options struct {
	// FollowLinks resolves symbolic links and treats them as their targets.
	FollowLinks bool
	// MaxDepth is the maximum depth of visited entries, the root being depth 0
	// (0=unlimited). Directories at exactly MaxDepth are not entered.
	MaxDepth int
	// BigCounters selects arbitrary-precision byte counting in Accumulate.
	BigCounters bool
	// OnError is called for per-entry failures. Returning nil skips the entry
	// and continues, returning an error aborts the walk with it.
	OnError func(path string, err error) error
	// Debug receives debug output when set.
	Debug io.Writer
}

// MaxDepth returns the depth limit for a recursive or single-level walk.
func MaxDepth(recursive bool) int {
	if recursive {
		return Unbounded
	}

	return 1
}

// logger provides conditional debug output.
type logger struct {
	w io.Writer
}

// printf prints debug output if a writer is configured.
func (l logger) printf(format string, args ...any) {
	if l.w != nil {
		fmt.Fprintf(l.w, format, args...)
	}
}
