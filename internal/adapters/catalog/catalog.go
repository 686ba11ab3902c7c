package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// Catalog keys
const (
	KeySample               = "sample"
	KeyERC20ApprovalAdapter = "erc20-approval-adapter"
	KeyERC20TransferAdapter = "erc20-transfer-adapter"
	KeyToken                = "token"
	KeyTreasury             = "treasury"
)

// Catalog holds the deployable contracts in deploy order
type Catalog struct {
	specs []domain.ContractSpec
}

// NewCatalog returns the DRYP contract set
func NewCatalog() *Catalog {
	return &Catalog{specs: []domain.ContractSpec{
		{
			Key:         KeySample,
			Name:        "Sample",
			Artifact:    "Sample",
			Category:    domain.CategoryNone,
			Description: "Sample contract taking the native and wrapped native tokens",
			Args:        nativeAndWrapped,
		},
		{
			Key:         KeyERC20ApprovalAdapter,
			Name:        "ERC20ApprovalAdapter",
			Artifact:    "ERC20ApprovalAdapter",
			Category:    domain.CategoryNone,
			Description: "Adapter approving ERC20 spends",
			Args:        nativeAndWrapped,
		},
		{
			Key:         KeyERC20TransferAdapter,
			Name:        "ERC20TransferAdapter",
			Artifact:    "ERC20TransferAdapter",
			Category:    domain.CategoryNone,
			Description: "Adapter executing ERC20 transfers",
			Args:        nativeAndWrapped,
		},
		{
			Key:         KeyToken,
			Name:        "Dryp",
			Artifact:    "DRYP",
			Category:    domain.CategoryInitializableProxy,
			Description: "DRYP token behind an ERC1967 proxy",
			Args:        tokenArgs,
		},
		{
			Key:         KeyTreasury,
			Name:        "Treasury",
			Artifact:    "Treasury",
			Category:    domain.CategoryInitializableProxy,
			Description: "Treasury behind an ERC1967 proxy (deploy the token first)",
			Args:        treasuryArgs,
		},
	}}
}

// NewCatalogWith returns a catalog over custom specs
func NewCatalogWith(specs []domain.ContractSpec) *Catalog {
	return &Catalog{specs: specs}
}

// Get returns the spec for a key
func (c *Catalog) Get(key string) (*domain.ContractSpec, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i := range c.specs {
		if c.specs[i].Key == key {
			spec := c.specs[i]
			return &spec, nil
		}
	}

	keys := lo.Map(c.specs, func(s domain.ContractSpec, _ int) string { return s.Key })
	suggestions := lo.Map(fuzzy.Find(key, keys), func(m fuzzy.Match, _ int) string { return m.Str })
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return nil, domain.UnknownContractErr{Key: key, Suggestions: suggestions}
}

// All returns every spec in deploy order
func (c *Catalog) All() []domain.ContractSpec {
	return append([]domain.ContractSpec(nil), c.specs...)
}

// Keys returns every key in deploy order
func (c *Catalog) Keys() []string {
	return lo.Map(c.specs, func(s domain.ContractSpec, _ int) string { return s.Key })
}

func nativeAndWrapped(_ context.Context, ac domain.ArgsContext) (*domain.Arguments, error) {
	wnative, err := ac.Addresses.Address(ac.Environment, ac.ChainID, "wnative")
	if err != nil {
		return nil, err
	}
	return &domain.Arguments{Constructor: []any{domain.Native, wnative}}, nil
}

func tokenArgs(context.Context, domain.ArgsContext) (*domain.Arguments, error) {
	return &domain.Arguments{Initializer: []any{"DRYP", "dryp"}}, nil
}

func treasuryArgs(ctx context.Context, ac domain.ArgsContext) (*domain.Arguments, error) {
	token := domain.RecordKey{
		Environment: ac.Environment,
		ChainID:     ac.ChainID,
		Category:    domain.CategoryInitializableProxy,
		Name:        "DrypProxy",
	}
	drypToken, err := ac.Deployments.Lookup(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("treasury needs the token proxy: %w", err)
	}

	args := []any{drypToken}
	for _, name := range []string{"drypPool", "treasuryOwner", "treasuryOperator"} {
		addr, err := ac.Addresses.Address(ac.Environment, ac.ChainID, name)
		if err != nil {
			return nil, err
		}
		args = append(args, addr)
	}
	for _, symbol := range []string{"usdc", "usdt"} {
		token, err := ac.Addresses.ExchangeToken(ac.ChainID, symbol)
		if err != nil {
			return nil, err
		}
		args = append(args, token.Address)
	}

	return &domain.Arguments{Initializer: args}, nil
}

var _ usecase.ContractCatalog = (*Catalog)(nil)
