package abi

import (
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

const (
	UnsupportedOperationEvent = "UnsupportedOperation"
	ExecutionEventName        = "ExecutionEvent"
)

// knownEventsABI holds the protocol events plus the proxy lifecycle events
// emitted during deployment, so receipts can be rendered in full.
const knownEventsABI = `[
  {"type":"event","name":"UnsupportedOperation","anonymous":false,"inputs":[
    {"name":"token","type":"address","indexed":false},
    {"name":"refundAddress","type":"address","indexed":false},
    {"name":"amount","type":"uint256","indexed":false}]},
  {"type":"event","name":"ExecutionEvent","anonymous":false,"inputs":[
    {"name":"adapterName","type":"string","indexed":true},
    {"name":"data","type":"bytes","indexed":false}]},
  {"type":"event","name":"Upgraded","anonymous":false,"inputs":[
    {"name":"implementation","type":"address","indexed":true}]},
  {"type":"event","name":"Initialized","anonymous":false,"inputs":[
    {"name":"version","type":"uint8","indexed":false}]},
  {"type":"event","name":"OwnershipTransferred","anonymous":false,"inputs":[
    {"name":"previousOwner","type":"address","indexed":true},
    {"name":"newOwner","type":"address","indexed":true}]},
  {"type":"event","name":"Transfer","anonymous":false,"inputs":[
    {"name":"from","type":"address","indexed":true},
    {"name":"to","type":"address","indexed":true},
    {"name":"value","type":"uint256","indexed":false}]}
]`

// EventDecoder decodes protocol events from transaction receipts
type EventDecoder struct {
	abi ethabi.ABI
	log *slog.Logger
}

// NewEventDecoder creates a decoder for the known events
func NewEventDecoder(log *slog.Logger) (*EventDecoder, error) {
	parsed, err := ethabi.JSON(strings.NewReader(knownEventsABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse event abi: %w", err)
	}
	return &EventDecoder{
		abi: parsed,
		log: log.With("component", "EventDecoder"),
	}, nil
}

// DecodeUnsupportedOperation decodes the first UnsupportedOperation log in the receipt
func (d *EventDecoder) DecodeUnsupportedOperation(receipt *types.Receipt) (*domain.UnsupportedOperation, error) {
	values, err := d.decodeFirst(receipt, UnsupportedOperationEvent)
	if err != nil {
		return nil, err
	}

	token, ok1 := values["token"].(common.Address)
	refundAddress, ok2 := values["refundAddress"].(common.Address)
	amount, ok3 := values["amount"].(*big.Int)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: unexpected %s field types", domain.ErrValidation, UnsupportedOperationEvent)
	}

	return &domain.UnsupportedOperation{
		Token:         token,
		RefundAddress: refundAddress,
		RefundAmount:  amount,
	}, nil
}

// DecodeExecutionEvent decodes the first ExecutionEvent log in the receipt.
// The adapter name is indexed, so Name is keccak256 of the name string.
func (d *EventDecoder) DecodeExecutionEvent(receipt *types.Receipt) (*domain.ExecutionEvent, error) {
	values, err := d.decodeFirst(receipt, ExecutionEventName)
	if err != nil {
		return nil, err
	}

	name, ok1 := values["adapterName"].(common.Hash)
	data, ok2 := values["data"].([]byte)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: unexpected %s field types", domain.ErrValidation, ExecutionEventName)
	}

	return &domain.ExecutionEvent{Name: name, Data: data}, nil
}

// DecodeAll decodes every log that matches a known event, skipping the rest
func (d *EventDecoder) DecodeAll(receipt *types.Receipt) []domain.DecodedEvent {
	var decoded []domain.DecodedEvent
	if receipt == nil {
		return decoded
	}
	for _, log := range receipt.Logs {
		if log == nil || len(log.Topics) == 0 {
			continue
		}
		event, err := d.abi.EventByID(log.Topics[0])
		if err != nil {
			continue
		}
		values, err := decodeLog(*log, *event)
		if err != nil {
			d.log.Debug("failed to decode log", "event", event.Name, "index", log.Index, "error", err)
			continue
		}
		decoded = append(decoded, domain.DecodedEvent{
			Index:   log.Index,
			Address: log.Address,
			Name:    event.Name,
			Args:    values,
		})
	}
	return decoded
}

// decodeFirst filters logs by the event topic and decodes the first match
func (d *EventDecoder) decodeFirst(receipt *types.Receipt, name string) (map[string]any, error) {
	event, ok := d.abi.Events[name]
	if !ok {
		return nil, fmt.Errorf("unknown event %s", name)
	}
	if receipt == nil {
		return nil, fmt.Errorf("%w: nil receipt", domain.ErrValidation)
	}

	for _, log := range receipt.Logs {
		if log == nil || len(log.Topics) == 0 || log.Topics[0] != event.ID {
			continue
		}
		values, err := decodeLog(*log, event)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decode %s: %v", domain.ErrValidation, name, err)
		}
		return values, nil
	}

	return nil, domain.NoMatchingLogErr{Event: name, TxHash: receipt.TxHash}
}

// decodeLog decodes indexed arguments from topics and the rest from data
func decodeLog(log types.Log, event ethabi.Event) (map[string]any, error) {
	values := make(map[string]any)

	var indexed ethabi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(log.Topics)-1 != len(indexed) {
		return nil, fmt.Errorf("expected %d indexed topics, got %d", len(indexed), len(log.Topics)-1)
	}
	if len(indexed) > 0 {
		if err := ethabi.ParseTopicsIntoMap(values, indexed, log.Topics[1:]); err != nil {
			return nil, fmt.Errorf("failed to parse topics: %w", err)
		}
	}

	if len(event.Inputs.NonIndexed()) > 0 {
		if err := event.Inputs.UnpackIntoMap(values, log.Data); err != nil {
			return nil, fmt.Errorf("failed to unpack event data: %w", err)
		}
	}

	return values, nil
}

// Ensure the decoder implements the interface
var _ usecase.EventDecoder = (*EventDecoder)(nil)
