package addressbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
)

func TestEmbeddedBook(t *testing.T) {
	book, err := NewEmbeddedBook()
	require.NoError(t, err)

	t.Run("wnative on sepolia", func(t *testing.T) {
		address, err := book.Address("testnet", "11155111", "wnative")
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0xf550605cb56fbba5c0f0e01174cf4e707ce0c9ca"), address)
	})

	t.Run("wnative on mainnet", func(t *testing.T) {
		address, err := book.Address("mainnet", "1", "wnative")
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), address)
	})

	t.Run("missing chain is a configuration error", func(t *testing.T) {
		_, err := book.Address("testnet", "999999", "wnative")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)

		var lookup domain.LookupErr
		require.ErrorAs(t, err, &lookup)
		assert.Equal(t, []string{"testnet", "999999"}, lookup.Path)
	})

	t.Run("missing environment and name", func(t *testing.T) {
		_, err := book.Address("staging", "11155111", "wnative")
		assert.ErrorIs(t, err, domain.ErrConfiguration)

		_, err = book.Address("testnet", "11155111", "drypPool")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("exchange tokens", func(t *testing.T) {
		usdc, err := book.ExchangeToken("11155111", "usdc")
		require.NoError(t, err)
		assert.Equal(t, "USDC", usdc.Symbol)
		assert.Equal(t, uint8(6), usdc.Decimals)
		assert.Equal(t, uint64(100000), usdc.MaxAllowed)

		_, err = book.ExchangeToken("1", "usdc")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("treasury tokens", func(t *testing.T) {
		wbtc, err := book.TreasuryToken("11155111", "wbtc")
		require.NoError(t, err)
		assert.Equal(t, uint8(8), wbtc.Decimals)
		assert.InDelta(t, 0.25, wbtc.AllocatedPercentage, 1e-9)

		assert.Len(t, book.TreasuryTokens("11155111"), 4)
		_, err = book.TreasuryToken("11155111", "eth")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("listing helpers", func(t *testing.T) {
		assert.Equal(t, []string{"mainnet", "testnet"}, book.Environments())
		assert.Len(t, book.Names("testnet", "11155111"), 3)
		assert.Empty(t, book.Names("testnet", "1"))
	})
}

func TestParse_InvalidAddress(t *testing.T) {
	_, err := Parse([]byte(`
addresses:
  testnet:
    "1":
      wnative: "0xnothex"
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewBookFromConfig_Override(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "addresses.yaml"), []byte(`
addresses:
  testnet:
    "31337":
      wnative: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
      drypPool: "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
`), 0644))

	book, err := NewBookFromConfig(&config.RuntimeConfig{
		ProjectRoot: root,
		Project:     &config.ProjectConfig{Paths: config.PathsConfig{Addresses: "addresses.yaml"}},
	})
	require.NoError(t, err)

	pool, err := book.Address("testnet", "31337", "drypPool")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"), pool)

	// the override replaces the embedded tables
	_, err = book.Address("testnet", "11155111", "wnative")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
