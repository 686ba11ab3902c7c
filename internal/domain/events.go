package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// UnsupportedOperation is emitted when an adapter refunds a token it cannot handle
type UnsupportedOperation struct {
	Token         common.Address
	RefundAddress common.Address
	RefundAmount  *big.Int
}

// ExecutionEvent is emitted by adapters after execution. The adapter name is
// indexed, so only its keccak256 hash is recoverable from the log.
type ExecutionEvent struct {
	Name common.Hash
	Data []byte
}

// DecodedEvent is a generic decoded log used for display
type DecodedEvent struct {
	Index   uint
	Address common.Address
	Name    string
	Args    map[string]any
}
