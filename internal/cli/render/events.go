package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/ateett12ue/dryp-contracts/internal/adapters/abi"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// EventsRenderer renders decoded receipt events
type EventsRenderer struct {
	out io.Writer
}

// NewEventsRenderer creates a new events renderer
func NewEventsRenderer(out io.Writer) *EventsRenderer {
	return &EventsRenderer{out: out}
}

// RenderEvents prints the protocol events first, then every decodable log
func (r *EventsRenderer) RenderEvents(result *usecase.DecodeEventsResult) error {
	status := color.GreenString("success")
	if result.Status == 0 {
		status = color.RedString("reverted")
	}
	fmt.Fprintf(r.out, "Transaction %s (%s)\n\n", result.TxHash.Hex(), status)

	if op := result.UnsupportedOperation; op != nil {
		fmt.Fprintln(r.out, sectionStyle.Sprint("UnsupportedOperation"))
		fmt.Fprintf(r.out, "  token          %s\n", op.Token.Hex())
		fmt.Fprintf(r.out, "  refundAddress  %s\n", op.RefundAddress.Hex())
		fmt.Fprintf(r.out, "  refundAmount   %s\n\n", op.RefundAmount.String())
	}
	if exec := result.Execution; exec != nil {
		fmt.Fprintln(r.out, sectionStyle.Sprint("ExecutionEvent"))
		fmt.Fprintf(r.out, "  name  %s\n", exec.Name.Hex())
		fmt.Fprintf(r.out, "  data  %s\n\n", abi.FormatValue(exec.Data))
	}

	if len(result.Events) == 0 {
		fmt.Fprintln(r.out, "No known events in receipt")
		return nil
	}

	fmt.Fprintln(r.out, sectionStyle.Sprintf("Events (%d)", len(result.Events)))
	for _, event := range result.Events {
		fmt.Fprintf(r.out, "  [%d] %s %s\n", event.Index, nameStyle.Sprint(event.Name), labelStyle.Sprint(event.Address.Hex()))
		names := lo.Keys(event.Args)
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(r.out, "      %s: %s\n", name, abi.FormatValue(event.Args[name]))
		}
	}
	return nil
}
