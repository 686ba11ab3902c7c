package cli

import (
	"github.com/spf13/cobra"

	"github.com/ateett12ue/dryp-contracts/internal/cli/render"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List networks from dryp.toml",
		Long: `List the networks configured in the [networks] section of dryp.toml plus
the built-in localhost network. Networks whose rpc_url is unset are reported
with the error that resolving them produced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}
}
