package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/pathwalk/fileutil"
)

// SizeOptions configures the size command.
type SizeOptions struct {
	// Path is the file or directory to measure.
	Path string
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// Follow resolves symbolic links.
	Follow bool
	// Output represents output format (table or json).
	Output string
	// Debug indicates whether debug output is enabled.
	Debug bool
}

func newSizeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size [path]",
		Short: "Measure the total size of a file or directory",
		Long: "Size scans a directory in parallel and reports the number of files and " +
			"directories and their total size. A progress line is shown on terminals.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := SizeOptions{
				Path:     ".",
				Excludes: v.GetStringSlice("exclude"),
				Follow:   v.GetBool("follow"),
				Output:   v.GetString("output"),
				Debug:    v.GetBool("debug"),
			}

			if len(args) > 0 {
				options.Path = args[0]
			}

			if !slices.Contains(allowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			return runSize(cmd, options)
		},
	}

	addTraversalFlags(cmd.Flags())

	return cmd
}

// runSize measures options.Path. Regular files are reported without a scan.
func runSize(cmd *cobra.Command, options SizeOptions) error {
	stdout := cmd.OutOrStdout()

	dir, err := isDirectory(options.Path)
	if err != nil {
		return err
	}

	if !dir {
		size, err := fileutil.SizeOf(options.Path)
		if err != nil {
			return err
		}

		return printUsage(stdout, options.Output, &fileutil.Usage{FileCount: 1, TotalBytes: size})
	}

	progress := newProgress(cmd.ErrOrStderr(), options.Output, options.Debug)
	defer progress.done()

	usage, err := fileutil.ScanDirectory(cmd.Context(), options.Path, fileutil.ScanOptions{
		FollowLinks: options.Follow,
		Excludes:    options.Excludes,
		Progress:    progress.hook(),
	})

	progress.clear()

	if err != nil {
		return err
	}

	return printUsage(stdout, options.Output, usage)
}

func printUsage(w io.Writer, output string, usage *fileutil.Usage) error {
	if output == "json" {
		return PrintJSON(usage, w)
	}

	return PrintUsage(usage, w)
}
