package cli

import (
	"github.com/spf13/cobra"

	"github.com/ateett12ue/dryp-contracts/internal/adapters/catalog"
	"github.com/ateett12ue/dryp-contracts/internal/cli/render"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// NewVerifyCmd creates the verify command with one subcommand per contract
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [contract]",
		Short: "Verify a recorded deployment on the block explorer",
		Long: `Verify a previously deployed contract with forge verify-contract. The
address is read back from deployments/<category>.json and the constructor
arguments are re-derived, so deploy must have run first on the same network.`,
		Example: `  dryp verify token --network sepolia
  dryp verify treasury -n sepolia`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return runVerify(cmd, key)
		},
	}

	for _, spec := range catalog.NewCatalog().All() {
		cmd.AddCommand(&cobra.Command{
			Use:   spec.Key,
			Short: "Verify " + spec.Name,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runVerify(cmd, cmd.Name())
			},
		})
	}

	return cmd
}

func runVerify(cmd *cobra.Command, key string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	spec, err := app.ResolveContract.Resolve(cmd.Context(), key)
	if err != nil {
		return err
	}

	result, err := app.VerifyContract.Run(cmd.Context(), *spec, usecase.VerifyOptions{})
	stopProgress(app.Progress)
	if err != nil {
		return err
	}

	return render.NewDeployRenderer(cmd.OutOrStdout(), explorerURL(app)).RenderVerify(result)
}
