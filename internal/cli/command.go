package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// DefaultExcludes contains the default exclusion patterns.
//
//nolint:gochecknoglobals // Config constant
var DefaultExcludes = []string{`(^|/)\.git(/|$)`, `(^|/)node_modules(/|$)`}

// EnvPrefix prefixes the environment variables that override flags.
const EnvPrefix = "PATHWALK"

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().ExecuteContext(context.Background())
}

// Command builds the root command. Each call returns an independent tree with its own configuration.
func (c CLI) Command() *cobra.Command {
	v := viper.New()

	var cfgFile string

	root := &cobra.Command{
		Use:   "pathwalk",
		Short: "Walk directory trees with file and directory filters",
		Long: heredoc.Doc(`
			pathwalk walks directory trees depth-first, applying separate filters to
			files and directories, and reports what it found.

			Flags can also be set through PATHWALK_* environment variables or a YAML
			config file, by default $HOME/.config/pathwalk/config.yaml.
		`),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, v, cfgFile)
		},
	}

	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $HOME/.config/pathwalk/config.yaml)")
	root.PersistentFlags().Bool("debug", false, "Enable debug output")

	root.AddCommand(
		newListCommand(v),
		newSizeCommand(v),
		newChecksumCommand(v),
	)

	return root
}

// initConfig layers defaults, the config file, the environment, and the flags of cmd into v.
func initConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pathwalk"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	return v.BindPFlags(cmd.InheritedFlags())
}

// addTraversalFlags registers the flags shared by the walking commands.
func addTraversalFlags(flags *pflag.FlagSet) {
	flags.SortFlags = false
	flags.StringSliceP("exclude", "e", DefaultExcludes, "Regex patterns to exclude")
	flags.BoolP("follow", "L", false, "Follow symbolic links")
	flags.StringP("output", "o", "table", "Output format: json or table")
}
