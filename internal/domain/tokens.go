package domain

import "github.com/ethereum/go-ethereum/common"

// ExchangeToken describes a stable token accepted by the treasury exchange.
type ExchangeToken struct {
	Address     common.Address
	MegaPool    common.Address
	Decimals    uint8
	MaxAllowed  uint64
	Symbol      string
	PriceInUsdt float64
}

// TreasuryToken describes a reserve asset held by the treasury.
type TreasuryToken struct {
	Address             common.Address
	Decimals            uint8
	AllocatedPercentage float64
	Price               float64
}
