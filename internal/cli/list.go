package cli

import (
	"github.com/spf13/cobra"

	"github.com/ateett12ue/dryp-contracts/internal/cli/render"
	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		category string
		name     string
		all      bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List the addresses recorded in deployments/<category>.json for the current
environment. With --network only that chain is shown.`,
		Example: `  # Everything recorded for the current environment
  dryp list

  # Proxied contracts on sepolia
  dryp list -n sepolia --category initializable-proxy

  # Every environment
  dryp list --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{Name: name}
			if category != "" {
				c, err := domain.ParseCategory(category)
				if err != nil {
					return err
				}
				params.Category = c
			}
			if all {
				params.Environment = "*"
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			stopProgress(app.Progress)
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category (none, initializable-proxy, proxy)")
	cmd.Flags().StringVar(&name, "contract", "", "Filter by recorded name")
	cmd.Flags().BoolVar(&all, "all", false, "Show every environment")

	return cmd
}
