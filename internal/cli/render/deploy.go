package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ateett12ue/dryp-contracts/internal/adapters/abi"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

var (
	labelStyle   = color.New(color.Faint)
	addressStyle = color.New(color.FgWhite, color.Bold)
	nameStyle    = color.New(color.FgCyan)
)

// DeployRenderer renders deploy and verify results
type DeployRenderer struct {
	out         io.Writer
	explorerURL string
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, explorerURL string) *DeployRenderer {
	return &DeployRenderer{out: out, explorerURL: explorerURL}
}

// RenderDeploy prints the deployed addresses and the verification outcome
func (r *DeployRenderer) RenderDeploy(result *usecase.DeployResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s to %s on chain %s",
		result.Spec.Name, result.Environment, result.ChainID)))
	fmt.Fprintln(r.out)

	t := newPlainTable(r.out)
	if impl := result.Implementation; impl != nil {
		t.AppendRow(table.Row{labelStyle.Sprint("Implementation"), nameStyle.Sprint(result.Spec.Name), addressStyle.Sprint(impl.Address.Hex())})
		t.AppendRow(table.Row{"", labelStyle.Sprint("tx"), impl.TxHash.Hex()})
		t.AppendRow(table.Row{"", labelStyle.Sprint("block / gas"), fmt.Sprintf("%d / %d", impl.BlockNumber, impl.GasUsed)})
	}
	if proxy := result.Proxy; proxy != nil {
		t.AppendRow(table.Row{labelStyle.Sprint("Proxy"), nameStyle.Sprint(result.Spec.ProxyRecordName()), addressStyle.Sprint(proxy.Address.Hex())})
		t.AppendRow(table.Row{"", labelStyle.Sprint("tx"), proxy.TxHash.Hex()})
		if len(result.InitCalldata) > 0 {
			t.AppendRow(table.Row{"", labelStyle.Sprint("init"), abi.FormatValue(result.InitCalldata)})
		}
	}
	t.Render()

	if result.Verification != nil {
		fmt.Fprintln(r.out)
		return r.RenderVerify(result.Verification)
	}
	return nil
}

// RenderVerify prints one line per verified contract
func (r *DeployRenderer) RenderVerify(result *usecase.VerifyResult) error {
	for _, verified := range []*usecase.VerifiedContract{result.Implementation, result.Proxy} {
		if verified == nil {
			continue
		}
		status := "verified"
		url := explorerLink(r.explorerURL, verified.Address)
		if verified.Outcome != nil {
			if verified.Outcome.AlreadyVerified {
				status = "already verified"
			}
			if verified.Outcome.URL != "" {
				url = verified.Outcome.URL
			}
		}
		line := fmt.Sprintf("%s %s at %s %s", color.GreenString("✓"), nameStyle.Sprint(verified.Name), verified.Address.Hex(), status)
		if url != "" {
			line += " " + labelStyle.Sprint(url)
		}
		fmt.Fprintln(r.out, line)
	}
	return nil
}

func newPlainTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateRows = false
	return t
}
