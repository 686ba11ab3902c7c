package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

var (
	envHeader      = color.New(color.BgYellow, color.FgBlack, color.Bold)
	chainHeader    = color.New(color.BgCyan, color.FgBlack)
	categoryStyle  = color.New(color.FgMagenta)
	proxyNameStyle = color.New(color.FgHiCyan)
	summaryStyle   = color.New(color.Faint)
)

// DeploymentsRenderer renders recorded deployments grouped by environment and chain
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderDeploymentList renders one table per environment/chain pair
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Entries) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	groups := lo.GroupBy(result.Entries, func(e domain.RecordEntry) string {
		return e.Key.Environment + "/" + e.Key.ChainID
	})
	keys := lo.Keys(groups)
	sort.Strings(keys)

	for i, key := range keys {
		entries := groups[key]
		first := entries[0].Key
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintf(r.out, "%s %s\n", envHeader.Sprintf(" %s ", first.Environment), chainHeader.Sprintf(" chain %s ", first.ChainID))

		t := newPlainTable(r.out)
		for _, entry := range entries {
			name := entry.Key.Name
			if entry.Key.Category.UsesProxy() && isProxyName(name, entries) {
				name = proxyNameStyle.Sprint(name)
			}
			t.AppendRow(table.Row{categoryStyle.Sprint(entry.Key.Category), name, entry.Address})
		}
		t.Render()
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, summaryStyle.Sprint(summaryLine(result.Summary)))
	return nil
}

// isProxyName reports whether name is the proxy of another recorded entry
func isProxyName(name string, entries []domain.RecordEntry) bool {
	return lo.ContainsBy(entries, func(e domain.RecordEntry) bool {
		return e.Key.Name+"Proxy" == name
	})
}

func summaryLine(summary usecase.DeploymentSummary) string {
	parts := lo.FilterMap(domain.Categories, func(c domain.ContractCategory, _ int) (string, bool) {
		n := summary.ByCategory[c]
		return fmt.Sprintf("%d %s", n, c), n > 0
	})
	line := fmt.Sprintf("%d deployment(s)", summary.Total)
	if len(parts) > 0 {
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	return line
}
