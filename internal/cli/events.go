package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/ateett12ue/dryp-contracts/internal/cli/render"
	"github.com/ateett12ue/dryp-contracts/internal/domain"
)

// NewEventsCmd creates the events command
func NewEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events <tx-hash>",
		Short: "Decode the events of a mined transaction",
		Long: `Fetch a transaction receipt and decode the UnsupportedOperation and
ExecutionEvent logs, plus every other log with a known signature.`,
		Example: `  dryp events 0x5c50...e1 --network sepolia`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			txHash, err := parseTxHash(args[0])
			if err != nil {
				return err
			}

			result, err := app.DecodeEvents.Run(cmd.Context(), txHash)
			if err != nil {
				return err
			}

			return render.NewEventsRenderer(cmd.OutOrStdout()).RenderEvents(result)
		},
	}
}

func parseTxHash(raw string) (common.Hash, error) {
	b, err := hexutil.Decode(raw)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%w: %q is not a transaction hash", domain.ErrValidation, raw)
	}
	return common.BytesToHash(b), nil
}
