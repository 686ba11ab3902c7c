package abi

import (
	"io"
	"log/slog"
	"math/big"
	"testing"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
)

var (
	unsupportedOperationTopic = crypto.Keccak256Hash([]byte("UnsupportedOperation(address,address,uint256)"))
	executionEventTopic       = crypto.Keccak256Hash([]byte("ExecutionEvent(string,bytes)"))
	transferTopic             = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

	tokenAddress  = common.HexToAddress("0x94a9D9AC8a22534E3FaCa9F4e7F2E2cf85d5E4C8")
	refundAddress = common.HexToAddress("0xBec33ce33afdAF5604CCDF2c4b575238C5FBD23d")
)

func newTestDecoder(t *testing.T) *EventDecoder {
	t.Helper()
	decoder, err := NewEventDecoder(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return decoder
}

func mustType(t *testing.T, typ string) ethabi.Type {
	t.Helper()
	parsed, err := ethabi.NewType(typ, "", nil)
	require.NoError(t, err)
	return parsed
}

func unsupportedOperationLog(t *testing.T, token, refund common.Address, amount *big.Int) *types.Log {
	t.Helper()
	args := ethabi.Arguments{
		{Type: mustType(t, "address")},
		{Type: mustType(t, "address")},
		{Type: mustType(t, "uint256")},
	}
	data, err := args.Pack(token, refund, amount)
	require.NoError(t, err)
	return &types.Log{Topics: []common.Hash{unsupportedOperationTopic}, Data: data}
}

func executionEventLog(t *testing.T, adapterName string, payload []byte) *types.Log {
	t.Helper()
	data, err := ethabi.Arguments{{Type: mustType(t, "bytes")}}.Pack(payload)
	require.NoError(t, err)
	return &types.Log{
		Topics: []common.Hash{executionEventTopic, crypto.Keccak256Hash([]byte(adapterName))},
		Data:   data,
	}
}

func transferLog(t *testing.T) *types.Log {
	t.Helper()
	data, err := ethabi.Arguments{{Type: mustType(t, "uint256")}}.Pack(big.NewInt(1000))
	require.NoError(t, err)
	return &types.Log{
		Topics: []common.Hash{
			transferTopic,
			common.BytesToHash(refundAddress.Bytes()),
			common.BytesToHash(tokenAddress.Bytes()),
		},
		Data: data,
	}
}

func TestEventDecoder_DecodeUnsupportedOperation(t *testing.T) {
	decoder := newTestDecoder(t)
	amount, _ := new(big.Int).SetString("1000000000000000000", 10)

	t.Run("decodes the exact triple", func(t *testing.T) {
		receipt := &types.Receipt{Logs: []*types.Log{
			transferLog(t),
			unsupportedOperationLog(t, tokenAddress, refundAddress, amount),
		}}

		event, err := decoder.DecodeUnsupportedOperation(receipt)
		require.NoError(t, err)
		assert.Equal(t, tokenAddress, event.Token)
		assert.Equal(t, refundAddress, event.RefundAddress)
		assert.Equal(t, 0, amount.Cmp(event.RefundAmount))
	})

	t.Run("first matching log wins", func(t *testing.T) {
		receipt := &types.Receipt{Logs: []*types.Log{
			unsupportedOperationLog(t, tokenAddress, refundAddress, big.NewInt(1)),
			unsupportedOperationLog(t, refundAddress, tokenAddress, big.NewInt(2)),
		}}

		event, err := decoder.DecodeUnsupportedOperation(receipt)
		require.NoError(t, err)
		assert.Equal(t, tokenAddress, event.Token)
		assert.Equal(t, int64(1), event.RefundAmount.Int64())
	})

	t.Run("no matching log is not found", func(t *testing.T) {
		receipt := &types.Receipt{
			TxHash: common.HexToHash("0xabc"),
			Logs:   []*types.Log{transferLog(t)},
		}

		_, err := decoder.DecodeUnsupportedOperation(receipt)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var noLog domain.NoMatchingLogErr
		require.ErrorAs(t, err, &noLog)
		assert.Equal(t, UnsupportedOperationEvent, noLog.Event)
	})

	t.Run("empty receipt is not found", func(t *testing.T) {
		_, err := decoder.DecodeUnsupportedOperation(&types.Receipt{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("truncated data is a validation error", func(t *testing.T) {
		log := unsupportedOperationLog(t, tokenAddress, refundAddress, amount)
		log.Data = log.Data[:40]

		_, err := decoder.DecodeUnsupportedOperation(&types.Receipt{Logs: []*types.Log{log}})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestEventDecoder_DecodeExecutionEvent(t *testing.T) {
	decoder := newTestDecoder(t)
	payload := []byte{0xde, 0xad, 0xbe, 0xef}

	t.Run("name is the hash of the adapter name", func(t *testing.T) {
		receipt := &types.Receipt{Logs: []*types.Log{executionEventLog(t, "UniswapV3Mint", payload)}}

		event, err := decoder.DecodeExecutionEvent(receipt)
		require.NoError(t, err)
		assert.Equal(t, crypto.Keccak256Hash([]byte("UniswapV3Mint")), event.Name)
		assert.Equal(t, payload, event.Data)
	})

	t.Run("no matching log is not found", func(t *testing.T) {
		receipt := &types.Receipt{Logs: []*types.Log{unsupportedOperationLog(t, tokenAddress, refundAddress, big.NewInt(1))}}

		_, err := decoder.DecodeExecutionEvent(receipt)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventDecoder_DecodeAll(t *testing.T) {
	decoder := newTestDecoder(t)

	unknown := &types.Log{Topics: []common.Hash{crypto.Keccak256Hash([]byte("Unknown()"))}}
	receipt := &types.Receipt{Logs: []*types.Log{
		transferLog(t),
		unknown,
		executionEventLog(t, "ERC20Transfer", []byte{0x01}),
		{},
	}}

	events := decoder.DecodeAll(receipt)
	require.Len(t, events, 2)
	assert.Equal(t, "Transfer", events[0].Name)
	assert.Equal(t, refundAddress, events[0].Args["from"])
	assert.Equal(t, "ExecutionEvent", events[1].Name)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, tokenAddress.Hex(), FormatValue(tokenAddress))
	assert.Equal(t, "42", FormatValue(big.NewInt(42)))
	assert.Equal(t, "0x", FormatValue([]byte{}))
	assert.Equal(t, `"dryp"`, FormatValue("dryp"))
	assert.Equal(t, "true", FormatValue(true))
}
