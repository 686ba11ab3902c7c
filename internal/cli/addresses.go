package cli

import (
	"github.com/spf13/cobra"

	"github.com/ateett12ue/dryp-contracts/internal/cli/render"
)

// NewAddressesCmd creates the addresses command
func NewAddressesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "addresses",
		Short: "Show the resolver tables for the current environment and chain",
		Long: `Show the symbolic addresses, exchange tokens and treasury tokens that
deploy arguments are resolved from. The chain comes from --network.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowAddresses.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewAddressesRenderer(cmd.OutOrStdout()).RenderAddresses(result)
		},
	}
}
