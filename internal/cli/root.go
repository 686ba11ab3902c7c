package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ateett12ue/dryp-contracts/internal/adapters/progress"
	"github.com/ateett12ue/dryp-contracts/internal/app"
	"github.com/ateett12ue/dryp-contracts/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// skipsApp lists commands that run without a wired app
var skipsApp = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dryp",
		Short: "Deploy and verify the DRYP contracts",
		Long: `dryp deploys the DRYP contract set to EVM networks, records the deployed
addresses under deployments/<category>.json and verifies them on the
network's block explorer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsApp[cmd.Name()] {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)
			interactive := !v.GetBool("non_interactive") && !isNonInteractive()
			if !interactive {
				v.Set("non_interactive", true)
			}
			sink := progress.NewSpinnerProgress(cmd.ErrOrStderr(), interactive)

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}
			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., sepolia, localhost)")
	rootCmd.PersistentFlags().StringP("env", "e", "", "Logical environment (defaults to $ENV or testnet)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspection",
		Title: "Inspection Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "deployment"
	rootCmd.AddCommand(deployCmd)

	verifyCmd := NewVerifyCmd()
	verifyCmd.GroupID = "deployment"
	rootCmd.AddCommand(verifyCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "inspection"
	rootCmd.AddCommand(listCmd)

	addressesCmd := NewAddressesCmd()
	addressesCmd.GroupID = "inspection"
	rootCmd.AddCommand(addressesCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "inspection"
	rootCmd.AddCommand(networksCmd)

	eventsCmd := NewEventsCmd()
	eventsCmd.GroupID = "inspection"
	rootCmd.AddCommand(eventsCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}

// isNonInteractive detects CI and piped sessions
func isNonInteractive() bool {
	return os.Getenv("CI") == "true" ||
		os.Getenv("NO_COLOR") != "" ||
		color.NoColor
}

// explorerURL returns the explorer of the selected network, if any
func explorerURL(a *app.App) string {
	if a.Config.Network == nil {
		return ""
	}
	return a.Config.Network.ExplorerURL
}
