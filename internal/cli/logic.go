package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/pathwalk/fserr"
)

// progress draws an in-place status line on a terminal.
type progress struct {
	w       io.Writer
	enabled bool
}

// newProgress enables the status line only for table output without debug
// output, when w is a terminal.
func newProgress(w io.Writer, output string, debug bool) progress {
	enabled := output != "json" && !debug

	if f, ok := w.(*os.File); ok {
		enabled = enabled && isatty.IsTerminal(f.Fd())
	} else {
		enabled = false
	}

	if enabled {
		// Hide cursor for in-place updates; restored by done.
		fmt.Fprint(w, "\033[?25l")
	}

	return progress{w: w, enabled: enabled}
}

// hook returns the progress callback, or nil when disabled.
func (p progress) hook() func(files, bytes int64) {
	if !p.enabled {
		return nil
	}

	return func(files, bytes int64) {
		msg := fmt.Sprintf("Scanning… %d files, %s", files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
		fmt.Fprintf(p.w, "\r\033[2K%s\r", msg)
	}
}

// clear erases the status line.
func (p progress) clear() {
	if p.enabled {
		fmt.Fprint(p.w, "\r\033[2K\r")
	}
}

// done restores the cursor.
func (p progress) done() {
	if p.enabled {
		fmt.Fprint(p.w, "\033[?25h")
	}
}

// isDirectory reports whether path is a directory, failing if it does not exist.
func isDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fserr.FromOS("size", path, err)
	}

	return info.IsDir(), nil
}
