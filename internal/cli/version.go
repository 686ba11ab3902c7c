package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ateett12ue/dryp-contracts/internal/config"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dryp",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dryp version %s", config.Version)
			if config.Commit != "unknown" {
				fmt.Fprintf(cmd.OutOrStdout(), " (%s, built %s)", config.Commit, config.Date)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		},
	}
}
