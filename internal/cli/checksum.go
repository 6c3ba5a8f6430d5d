package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/pathwalk/fileutil"
)

func newChecksumCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checksum [flags] files...",
		Short: "Print file checksums",
		Long: "Checksum prints '<hex>  <path>' for every file. Files that cannot be read are " +
			"reported and the remaining files are still processed.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algorithm := v.GetString("algorithm")

			if _, err := fileutil.NewHash(algorithm); err != nil {
				return err
			}

			var errs []error

			for _, path := range args {
				sum, err := fileutil.ChecksumHex(path, algorithm)
				if err != nil {
					errs = append(errs, err)

					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, path)
			}

			return errors.Join(errs...)
		},
	}

	cmd.Flags().StringP("algorithm", "a", "sha256",
		"Checksum algorithm: "+strings.Join(fileutil.Algorithms, ", "))

	return cmd
}
