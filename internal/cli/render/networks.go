package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the resolvable networks, marking the current one
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in dryp.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newPlainTable(r.out)
	for _, network := range result.Networks {
		marker := " "
		if network.Name == result.Current {
			marker = color.GreenString("*")
		}
		if network.Error != nil {
			t.AppendRow(table.Row{marker, "❌ " + network.Name, color.RedString("%v", network.Error), ""})
			continue
		}

		chain := "-"
		if network.ChainID != 0 {
			chain = fmt.Sprintf("%d", network.ChainID)
		}
		if network.Rollup {
			chain += color.YellowString(" (rollup)")
		}
		t.AppendRow(table.Row{marker, "✅ " + network.Name, chain, labelStyle.Sprint(network.ExplorerURL)})
	}
	t.Render()

	return nil
}
