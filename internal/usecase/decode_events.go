package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
)

// DecodeEventsResult holds every recognised event in a receipt
type DecodeEventsResult struct {
	TxHash               common.Hash
	Status               uint64
	Events               []domain.DecodedEvent
	UnsupportedOperation *domain.UnsupportedOperation
	Execution            *domain.ExecutionEvent
}

// DecodeEvents fetches a receipt and decodes the protocol events in it
type DecodeEvents struct {
	chain   ChainClient
	decoder EventDecoder
}

// NewDecodeEvents creates a new DecodeEvents use case
func NewDecodeEvents(chain ChainClient, decoder EventDecoder) *DecodeEvents {
	return &DecodeEvents{chain: chain, decoder: decoder}
}

// Run returns an error only when the receipt cannot be fetched or decoding
// fails for a reason other than a missing event.
func (uc *DecodeEvents) Run(ctx context.Context, txHash common.Hash) (*DecodeEventsResult, error) {
	receipt, err := uc.chain.TransactionReceipt(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receipt for %s: %w", txHash.Hex(), err)
	}

	result := &DecodeEventsResult{
		TxHash: txHash,
		Status: receipt.Status,
		Events: uc.decoder.DecodeAll(receipt),
	}

	unsupported, err := uc.decoder.DecodeUnsupportedOperation(receipt)
	switch {
	case err == nil:
		result.UnsupportedOperation = unsupported
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	execution, err := uc.decoder.DecodeExecutionEvent(receipt)
	switch {
	case err == nil:
		result.Execution = execution
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	return result, nil
}
