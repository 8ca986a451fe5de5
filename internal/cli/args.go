package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// requireInputs validates that at least one input is given, positionally
// or through -i/--infile.
func requireInputs(cmd *cobra.Command, args []string, infiles []string) error {
	if len(args) == 0 && len(infiles) == 0 {
		return fmt.Errorf(`requires at least 1 input file or directory

Usage: %s

Example:
  %s people.csv`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
