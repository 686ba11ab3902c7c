package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// AddressesRenderer renders the resolver tables for one environment and chain
type AddressesRenderer struct {
	out io.Writer
}

// NewAddressesRenderer creates a new addresses renderer
func NewAddressesRenderer(out io.Writer) *AddressesRenderer {
	return &AddressesRenderer{out: out}
}

// RenderAddresses prints the symbolic addresses then both token tables
func (r *AddressesRenderer) RenderAddresses(result *usecase.ShowAddressesResult) error {
	fmt.Fprintf(r.out, "%s %s\n\n", envHeader.Sprintf(" %s ", result.Environment), chainHeader.Sprintf(" chain %s ", result.ChainID))

	r.section("addresses")
	t := newPlainTable(r.out)
	t.AppendRow(table.Row{"native", result.Native.Hex()})
	for _, name := range sortedKeys(result.Addresses) {
		t.AppendRow(table.Row{name, result.Addresses[name].Hex()})
	}
	t.Render()

	if len(result.ExchangeTokens) > 0 {
		fmt.Fprintln(r.out)
		r.section("exchange tokens")
		t := newPlainTable(r.out)
		t.AppendHeader(table.Row{"Symbol", "Address", "Decimals", "Max", "Price (USDT)"})
		for _, symbol := range sortedKeys(result.ExchangeTokens) {
			token := result.ExchangeTokens[symbol]
			t.AppendRow(table.Row{strings.ToUpper(symbol), token.Address.Hex(), token.Decimals, token.MaxAllowed, token.PriceInUsdt})
		}
		t.Render()
	}

	if len(result.TreasuryTokens) > 0 {
		fmt.Fprintln(r.out)
		r.section("treasury tokens")
		t := newPlainTable(r.out)
		t.AppendHeader(table.Row{"Symbol", "Address", "Decimals", "Allocation", "Price"})
		for _, symbol := range sortedKeys(result.TreasuryTokens) {
			token := result.TreasuryTokens[symbol]
			t.AppendRow(table.Row{strings.ToUpper(symbol), token.Address.Hex(), token.Decimals,
				fmt.Sprintf("%.0f%%", token.AllocatedPercentage*100), token.Price})
		}
		t.Render()
	}

	return nil
}

func (r *AddressesRenderer) section(title string) {
	fmt.Fprintln(r.out, sectionStyle.Sprint(cases.Title(language.English).String(title)))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
