package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
)

// ShowAddressesResult is the resolver table slice for one environment and chain
type ShowAddressesResult struct {
	Environment    string
	ChainID        string
	Native         common.Address
	Addresses      map[string]common.Address
	ExchangeTokens map[string]domain.ExchangeToken
	TreasuryTokens map[string]domain.TreasuryToken
}

// ShowAddresses renders the resolver tables for the active network
type ShowAddresses struct {
	config *config.RuntimeConfig
	book   AddressBook
	chain  ChainClient
}

// NewShowAddresses creates a new ShowAddresses use case
func NewShowAddresses(cfg *config.RuntimeConfig, book AddressBook, chain ChainClient) *ShowAddresses {
	return &ShowAddresses{config: cfg, book: book, chain: chain}
}

// Run uses the configured chain id when present and asks the network otherwise.
func (uc *ShowAddresses) Run(ctx context.Context) (*ShowAddressesResult, error) {
	var chainID uint64
	if uc.config.Network != nil && uc.config.Network.ChainID != 0 {
		chainID = uc.config.Network.ChainID
	} else {
		id, err := uc.chain.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get chain id: %w", err)
		}
		chainID = id
	}

	environment := uc.config.Environment
	if environment == "" {
		environment = domain.DefaultEnvironment
	}
	key := domain.ChainKey(chainID)

	return &ShowAddressesResult{
		Environment:    environment,
		ChainID:        key,
		Native:         domain.Native,
		Addresses:      uc.book.Names(environment, key),
		ExchangeTokens: uc.book.ExchangeTokens(key),
		TreasuryTokens: uc.book.TreasuryTokens(key),
	}, nil
}
