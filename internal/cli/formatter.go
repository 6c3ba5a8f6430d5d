package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/idelchi/pathwalk/fileutil"
	"github.com/idelchi/pathwalk/internal/summary"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs v in indented JSON format.
func PrintJSON(v any, writer io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

func percent(part int64, total int64) float64 {
	if total <= 0 {
		return 0
	}

	return 100.0 * float64(part) / float64(total)
}

// PrintList outputs the listed paths followed by statistics in table format.
func PrintList(stats *summary.Summary, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	paths := stats.Files
	if stats.DirectoryMode {
		paths = stats.Directories
	}

	for _, p := range paths {
		fmt.Fprintln(w, p)
	}

	total := stats.Counters.Bytes.Get()

	if !stats.DirectoryMode && len(stats.ExtStats) > 0 {
		fmt.Fprintln(w, "\nTop extensions:\t\t")

		for i, ext := range stats.Extensions() {
			extStat := stats.ExtStats[ext]
			if ext == "" {
				ext = `""`
			}

			fmt.Fprintf(w, "  %d) %s:\t%d files, %s (%.1f%%)\n",
				i+1, ext, extStat.Count, fileutil.DisplaySize(extStat.Size), percent(extStat.Size, total))
		}
	}

	if len(stats.Top) > 0 {
		if stats.DirectoryMode {
			fmt.Fprintln(w, "\nTop directories:\t\t")
		} else {
			fmt.Fprintln(w, "\nTop files:\t\t")
		}

		for i, f := range stats.Top {
			fmt.Fprintf(w, "  %d) '%s'\t%s (%.1f%%)\n",
				i+1, f.Path, fileutil.DisplaySize(f.Size), percent(f.Size, total))
		}
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%s\n", stats.Counters.Files)
	fmt.Fprintf(w, "Total directories:\t%s\n", stats.Counters.Directories)
	fmt.Fprintf(w, "Total size:\t%s (%s bytes)\n",
		fileutil.DisplayBigSize(stats.Counters.Bytes.BigInt()), stats.Counters.Bytes)

	if stats.ErrorCount > 0 {
		fmt.Fprintf(w, "Errors:\t%d\n", stats.ErrorCount)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", stats.Elapsed)

	return w.Flush()
}

// PrintUsage outputs the result of a size scan in table format.
func PrintUsage(usage *fileutil.Usage, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "Total files:\t%d\n", usage.FileCount)
	fmt.Fprintf(w, "Total directories:\t%d\n", usage.DirCount)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n", fileutil.DisplaySize(usage.TotalBytes), usage.TotalBytes)

	if usage.ErrorCount > 0 {
		fmt.Fprintf(w, "Errors:\t%d\n", usage.ErrorCount)
	}

	if usage.Elapsed > 0 {
		fmt.Fprintf(w, "\nElapsed:\t%v\n", usage.Elapsed)
	}

	return w.Flush()
}
