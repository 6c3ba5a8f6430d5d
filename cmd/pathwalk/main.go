// Command pathwalk walks directory trees with file and directory filters.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/pathwalk/internal/cli"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown" //nolint:gochecknoglobals // Set by the linker

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
