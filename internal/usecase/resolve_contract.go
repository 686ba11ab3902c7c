package usecase

import (
	"context"
	"fmt"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
)

// ResolveContract is the use case for resolving catalog keys
type ResolveContract struct {
	config   *config.RuntimeConfig
	catalog  ContractCatalog
	selector InteractiveSelector
}

// NewResolveContract creates a new ResolveContract use case
func NewResolveContract(cfg *config.RuntimeConfig, catalog ContractCatalog, selector InteractiveSelector) *ResolveContract {
	return &ResolveContract{
		config:   cfg,
		catalog:  catalog,
		selector: selector,
	}
}

// Resolve looks up a catalog key. An empty key opens the selector when the
// session is interactive.
func (uc *ResolveContract) Resolve(ctx context.Context, key string) (*domain.ContractSpec, error) {
	if key != "" {
		return uc.catalog.Get(key)
	}

	if uc.selector == nil || uc.config.NonInteractive {
		return nil, fmt.Errorf("%w: contract name is required in non-interactive mode", domain.ErrValidation)
	}

	selected, err := uc.selector.SelectContract(ctx, uc.catalog.All(), "Select a contract:")
	if err != nil {
		return nil, fmt.Errorf("contract selection failed: %w", err)
	}
	return selected, nil
}

// All returns every catalog entry
func (uc *ResolveContract) All() []domain.ContractSpec {
	return uc.catalog.All()
}
