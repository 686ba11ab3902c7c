package addressbook

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

//go:embed tables.yaml
var embeddedTables []byte

const (
	addressTable       = "address"
	exchangeTokenTable = "exchange token"
	treasuryTokenTable = "treasury token"
)

type rawExchangeToken struct {
	Address     string  `yaml:"address"`
	MegaPool    string  `yaml:"megaPool"`
	Decimals    uint8   `yaml:"decimals"`
	MaxAllowed  uint64  `yaml:"maxAllowed"`
	Symbol      string  `yaml:"symbol"`
	PriceInUsdt float64 `yaml:"priceInUsdt"`
}

type rawTreasuryToken struct {
	Address             string  `yaml:"address"`
	Decimals            uint8   `yaml:"decimals"`
	AllocatedPercentage float64 `yaml:"allocatedPercentage"`
	Price               float64 `yaml:"price"`
}

type rawTables struct {
	Addresses      map[string]map[string]map[string]string `yaml:"addresses"`
	ExchangeTokens map[string]map[string]rawExchangeToken  `yaml:"exchangeTokens"`
	TreasuryTokens map[string]map[string]rawTreasuryToken  `yaml:"treasuryTokens"`
}

// Book holds the static address and token tables. It is immutable after load.
type Book struct {
	addresses      map[string]map[string]map[string]common.Address
	exchangeTokens map[string]map[string]domain.ExchangeToken
	treasuryTokens map[string]map[string]domain.TreasuryToken
}

// NewEmbeddedBook parses the tables compiled into the binary
func NewEmbeddedBook() (*Book, error) {
	return Parse(embeddedTables)
}

// NewBookFromConfig loads the project override when one is configured and
// the embedded tables otherwise. The override replaces the embedded tables.
func NewBookFromConfig(cfg *config.RuntimeConfig) (*Book, error) {
	override := cfg.Project.AddressesFile()
	if override == "" {
		return NewEmbeddedBook()
	}
	if !filepath.IsAbs(override) {
		override = filepath.Join(cfg.ProjectRoot, override)
	}
	data, err := os.ReadFile(override)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read address tables %s: %v", domain.ErrConfiguration, override, err)
	}
	return Parse(data)
}

// Parse validates and converts YAML tables
func Parse(data []byte) (*Book, error) {
	var raw rawTables
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid address tables: %v", domain.ErrConfiguration, err)
	}

	book := &Book{
		addresses:      make(map[string]map[string]map[string]common.Address),
		exchangeTokens: make(map[string]map[string]domain.ExchangeToken),
		treasuryTokens: make(map[string]map[string]domain.TreasuryToken),
	}

	for env, chains := range raw.Addresses {
		book.addresses[env] = make(map[string]map[string]common.Address)
		for chainID, names := range chains {
			book.addresses[env][chainID] = make(map[string]common.Address)
			for name, hex := range names {
				address, err := parseAddress(hex, addressTable, env, chainID, name)
				if err != nil {
					return nil, err
				}
				book.addresses[env][chainID][name] = address
			}
		}
	}

	for chainID, tokens := range raw.ExchangeTokens {
		book.exchangeTokens[chainID] = make(map[string]domain.ExchangeToken)
		for symbol, token := range tokens {
			address, err := parseAddress(token.Address, exchangeTokenTable, chainID, symbol, "address")
			if err != nil {
				return nil, err
			}
			megaPool, err := parseAddress(token.MegaPool, exchangeTokenTable, chainID, symbol, "megaPool")
			if err != nil {
				return nil, err
			}
			book.exchangeTokens[chainID][symbol] = domain.ExchangeToken{
				Address:     address,
				MegaPool:    megaPool,
				Decimals:    token.Decimals,
				MaxAllowed:  token.MaxAllowed,
				Symbol:      token.Symbol,
				PriceInUsdt: token.PriceInUsdt,
			}
		}
	}

	for chainID, tokens := range raw.TreasuryTokens {
		book.treasuryTokens[chainID] = make(map[string]domain.TreasuryToken)
		for symbol, token := range tokens {
			address, err := parseAddress(token.Address, treasuryTokenTable, chainID, symbol, "address")
			if err != nil {
				return nil, err
			}
			book.treasuryTokens[chainID][symbol] = domain.TreasuryToken{
				Address:             address,
				Decimals:            token.Decimals,
				AllocatedPercentage: token.AllocatedPercentage,
				Price:               token.Price,
			}
		}
	}

	return book, nil
}

func parseAddress(hex, table string, path ...string) (common.Address, error) {
	if !common.IsHexAddress(hex) {
		return common.Address{}, fmt.Errorf("%w: %s table entry %v has %q", domain.ErrInvalidAddress, table, path, hex)
	}
	return common.HexToAddress(hex), nil
}

// Address returns the symbolic address for an environment and chain
func (b *Book) Address(environment, chainID, name string) (common.Address, error) {
	chains, ok := b.addresses[environment]
	if !ok {
		return common.Address{}, domain.LookupErr{Table: addressTable, Path: []string{environment}}
	}
	names, ok := chains[chainID]
	if !ok {
		return common.Address{}, domain.LookupErr{Table: addressTable, Path: []string{environment, chainID}}
	}
	address, ok := names[name]
	if !ok {
		return common.Address{}, domain.LookupErr{Table: addressTable, Path: []string{environment, chainID, name}}
	}
	return address, nil
}

// ExchangeToken returns exchange token metadata
func (b *Book) ExchangeToken(chainID, symbol string) (*domain.ExchangeToken, error) {
	tokens, ok := b.exchangeTokens[chainID]
	if !ok {
		return nil, domain.LookupErr{Table: exchangeTokenTable, Path: []string{chainID}}
	}
	token, ok := tokens[symbol]
	if !ok {
		return nil, domain.LookupErr{Table: exchangeTokenTable, Path: []string{chainID, symbol}}
	}
	return &token, nil
}

// TreasuryToken returns treasury token metadata
func (b *Book) TreasuryToken(chainID, symbol string) (*domain.TreasuryToken, error) {
	tokens, ok := b.treasuryTokens[chainID]
	if !ok {
		return nil, domain.LookupErr{Table: treasuryTokenTable, Path: []string{chainID}}
	}
	token, ok := tokens[symbol]
	if !ok {
		return nil, domain.LookupErr{Table: treasuryTokenTable, Path: []string{chainID, symbol}}
	}
	return &token, nil
}

// Environments lists the environments that have address entries
func (b *Book) Environments() []string {
	envs := make([]string, 0, len(b.addresses))
	for env := range b.addresses {
		envs = append(envs, env)
	}
	sort.Strings(envs)
	return envs
}

// Names returns a copy of the symbolic addresses for an environment and chain
func (b *Book) Names(environment, chainID string) map[string]common.Address {
	out := make(map[string]common.Address)
	for name, address := range b.addresses[environment][chainID] {
		out[name] = address
	}
	return out
}

// ExchangeTokens returns a copy of the exchange tokens on a chain
func (b *Book) ExchangeTokens(chainID string) map[string]domain.ExchangeToken {
	out := make(map[string]domain.ExchangeToken)
	for symbol, token := range b.exchangeTokens[chainID] {
		out[symbol] = token
	}
	return out
}

// TreasuryTokens returns a copy of the treasury tokens on a chain
func (b *Book) TreasuryTokens(chainID string) map[string]domain.TreasuryToken {
	out := make(map[string]domain.TreasuryToken)
	for symbol, token := range b.treasuryTokens[chainID] {
		out[symbol] = token
	}
	return out
}

// Ensure the book implements the interface
var _ usecase.AddressBook = (*Book)(nil)
