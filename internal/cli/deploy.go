package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ateett12ue/dryp-contracts/internal/adapters/catalog"
	"github.com/ateett12ue/dryp-contracts/internal/cli/render"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

type deployFlags struct {
	verify bool
	yes    bool
}

// NewDeployCmd creates the deploy command with one subcommand per contract
func NewDeployCmd() *cobra.Command {
	var flags deployFlags

	cmd := &cobra.Command{
		Use:   "deploy [contract]",
		Short: "Deploy a contract and record its address",
		Long: `Deploy one contract of the DRYP set. Proxy contracts are deployed as an
implementation plus an ERC1967 proxy; both addresses are recorded.

Without a contract name an interactive selector is shown.`,
		Example: `  # Deploy the token on sepolia and verify it
  dryp deploy token --network sepolia --verify

  # Deploy the treasury to mainnet without the confirmation prompt
  ENV=mainnet dryp deploy treasury -n mainnet --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return runDeploy(cmd, key, flags)
		},
	}
	addDeployFlags(cmd, &flags)

	for _, spec := range catalog.NewCatalog().All() {
		var subFlags deployFlags
		sub := &cobra.Command{
			Use:   spec.Key,
			Short: spec.Description,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDeploy(cmd, cmd.Name(), subFlags)
			},
		}
		addDeployFlags(sub, &subFlags)
		cmd.AddCommand(sub)
	}

	return cmd
}

func addDeployFlags(cmd *cobra.Command, flags *deployFlags) {
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "Verify the deployed contracts on the block explorer")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Skip the confirmation prompt for non-testnet environments")
}

func runDeploy(cmd *cobra.Command, key string, flags deployFlags) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	spec, err := app.ResolveContract.Resolve(cmd.Context(), key)
	if err != nil {
		return err
	}

	result, err := app.DeployContract.Run(cmd.Context(), *spec, usecase.DeployOptions{
		Verify:      flags.verify,
		SkipConfirm: flags.yes,
	})
	stopProgress(app.Progress)
	if errors.Is(err, usecase.ErrDeployCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), render.FormatWarning("Deployment cancelled"))
		return nil
	}
	if result != nil {
		if renderErr := render.NewDeployRenderer(cmd.OutOrStdout(), explorerURL(app)).RenderDeploy(result); renderErr != nil {
			return renderErr
		}
	}
	return err
}

// stopProgress halts a running spinner before output is printed
func stopProgress(sink usecase.ProgressSink) {
	if s, ok := sink.(interface{ Stop() }); ok {
		s.Stop()
	}
}
