package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/pathwalk/counter"
	"github.com/idelchi/pathwalk/filter"
	"github.com/idelchi/pathwalk/fileutil"
	"github.com/idelchi/pathwalk/internal/summary"
	"github.com/idelchi/pathwalk/lockfile"
	"github.com/idelchi/pathwalk/walk"
)

// allowedOutputs lists the supported output formats.
//
//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json"}

// ListOptions configures the list command.
type ListOptions struct {
	// Path is the directory to walk.
	Path string
	// Extensions to include (empty = all), '!' prefix excludes.
	Extensions []string
	// Excludes contains regex patterns pruning files and directories.
	Excludes []string
	// Glob is a comma-separated doublestar pattern list applied to files.
	Glob string
	// GitIgnore applies the root's .gitignore.
	GitIgnore bool
	// Hidden includes dot files and directories.
	Hidden bool
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int
	// Follow resolves symbolic links.
	Follow bool
	// DirsMode lists directories and ranks them by the size of their files.
	DirsMode bool
	// Sort orders the listed paths lexically.
	Sort bool
	// Relative prints paths relative to Path.
	Relative bool
	// TopN is the number of extensions and largest entries reported.
	TopN int
	// Big selects arbitrary-precision byte counting.
	Big bool
	// Output represents output format (table or json).
	Output string
	// File receives the output instead of stdout, guarded by a lock file.
	File string
	// Debug indicates whether debug output is enabled.
	Debug bool
}

func newListCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List matching files or directories",
		Long: heredoc.Doc(`
			List walks a directory and prints the files, or with --dirs the directories,
			that pass all filters, followed by statistics.

			Directory filters (--exclude, --gitignore, hidden entries) prune whole subtrees.
			File filters (--ext, --glob, --min-size) only decide which files are listed.
			The walked directory itself is always entered and counted.
		`),
		Example: heredoc.Doc(`
			pathwalk list --ext .go,!_test.go ./src
			pathwalk list --glob '**/*.md' --gitignore --sort --relative
			pathwalk list --dirs --depth 2 -o json
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := listOptions(v, args)
			if err != nil {
				return err
			}

			return runList(cmd.OutOrStdout(), cmd.ErrOrStderr(), options)
		},
	}

	flags := cmd.Flags()
	addTraversalFlags(flags)
	flags.StringSliceP(
		"ext",
		"x",
		[]string{},
		"File suffixes to include (e.g., .go,.md). Use '!' prefix to exclude (e.g., !.log,!_test.go)",
	)
	flags.StringP("glob", "g", "", "Doublestar patterns for files, comma-separated, '!' prefix excludes")
	flags.Bool("gitignore", false, "Skip entries matched by the root's .gitignore")
	flags.Bool("hidden", false, "Include hidden files and directories")
	flags.String("min-size", "0B", "Minimum file size (e.g., 1KB)")
	flags.IntP("depth", "d", 0, "Maximum traversal depth (0=unlimited)")
	flags.Bool("dirs", false, "List directories instead of files")
	flags.Bool("sort", false, "Sort listed paths")
	flags.Bool("relative", false, "Print paths relative to the walked directory")
	flags.IntP("top", "t", summary.DefaultTopN, "Number of top extensions and entries to display")
	flags.Bool("big", false, "Count bytes with arbitrary precision")
	flags.StringP("file", "f", "", "Write output to a file instead of stdout")

	return cmd
}

// listOptions reads and validates the list configuration from v.
func listOptions(v *viper.Viper, args []string) (ListOptions, error) {
	options := ListOptions{
		Path:       ".",
		Extensions: v.GetStringSlice("ext"),
		Excludes:   v.GetStringSlice("exclude"),
		Glob:       v.GetString("glob"),
		GitIgnore:  v.GetBool("gitignore"),
		Hidden:     v.GetBool("hidden"),
		Depth:      v.GetInt("depth"),
		Follow:     v.GetBool("follow"),
		DirsMode:   v.GetBool("dirs"),
		Sort:       v.GetBool("sort"),
		Relative:   v.GetBool("relative"),
		TopN:       v.GetInt("top"),
		Big:        v.GetBool("big"),
		Output:     v.GetString("output"),
		File:       v.GetString("file"),
		Debug:      v.GetBool("debug"),
	}

	if len(args) > 0 {
		options.Path = args[0]
	}

	if !slices.Contains(allowedOutputs, options.Output) {
		return options, fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
	}

	if options.Depth < 0 {
		return options, fmt.Errorf("depth cannot be negative: %d", options.Depth)
	}

	if s := v.GetString("min-size"); s != "" {
		size, err := fileutil.ParseSize(s)
		if err != nil {
			return options, fmt.Errorf("invalid min-size: %w", err)
		}

		options.MinSize = size
	}

	return options, nil
}

// filters builds the file and directory filters for options.
func filters(options ListOptions) (files, dirs filter.Filter, err error) {
	exclude, err := filter.ExcludeRegexp(options.Excludes...)
	if err != nil {
		return nil, nil, err
	}

	files = filter.And(
		filter.RegularFile,
		exclude,
		filter.Extensions(options.Extensions...),
	)
	dirs = exclude

	if options.Glob != "" {
		glob, err := filter.Glob(options.Path, options.Glob)
		if err != nil {
			return nil, nil, err
		}

		files = filter.And(files, glob)
	}

	if options.MinSize > 0 {
		files = filter.And(files, filter.MinSize(options.MinSize))
	}

	if !options.Hidden {
		files = filter.And(files, filter.Not(filter.Hidden))
		dirs = filter.And(dirs, filter.Not(filter.Hidden))
	}

	if options.GitIgnore {
		ignore, err := filter.GitIgnore(options.Path)
		if err != nil {
			return nil, nil, err
		}

		files = filter.And(files, ignore)
		dirs = filter.And(dirs, ignore)
	}

	return files, dirs, nil
}

// runList walks options.Path and prints the summary to stdout or options.File.
func runList(stdout, stderr io.Writer, options ListOptions) error {
	files, dirs, err := filters(options)
	if err != nil {
		return err
	}

	counters := counter.LongPathCounters()
	if options.Big {
		counters = counter.BigPathCounters()
	}

	collector := summary.NewCollector(options.Path, options.TopN, options.DirsMode, counters)

	opts := walk.Options{
		FollowLinks: options.Follow,
		MaxDepth:    options.Depth,
		OnError: func(string, error) error {
			collector.AddError()

			return nil
		},
	}

	if options.Debug {
		opts.Debug = stderr
	}

	for entry, err := range walk.Seq(options.Path, files, dirs, opts) {
		if err != nil {
			return err
		}

		collector.Add(entry)
	}

	stats := collector.Finalize()

	switch {
	case options.Relative:
		if err := stats.Relativize(options.Sort); err != nil {
			return err
		}
	case options.Sort:
		stats.Sort()
	}

	return writeOutput(stdout, options.File, func(w io.Writer) error {
		if options.Output == "json" {
			return PrintJSON(stats, w)
		}

		return PrintList(stats, w)
	})
}

// writeOutput runs render against stdout, or against file while holding its lock.
func writeOutput(stdout io.Writer, file string, render func(io.Writer) error) error {
	if file == "" {
		return render(stdout)
	}

	w, err := lockfile.Open(file, lockfile.Options{})
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}

	if err := render(w); err != nil {
		w.Close()

		return err
	}

	return w.Close()
}
