package render

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

func init() {
	color.NoColor = true
}

func TestDeploymentsRenderer(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf).RenderDeploymentList(&usecase.DeploymentListResult{}))
		assert.Equal(t, "No deployments found\n", buf.String())
	})

	t.Run("grouped by environment and chain", func(t *testing.T) {
		record := domain.DeploymentRecord{}
		record.Set(domain.RecordKey{Environment: "testnet", ChainID: "11155111", Category: domain.CategoryInitializableProxy, Name: "Dryp"},
			common.HexToAddress("0x1111111111111111111111111111111111111111"))
		record.Set(domain.RecordKey{Environment: "testnet", ChainID: "11155111", Category: domain.CategoryInitializableProxy, Name: "DrypProxy"},
			common.HexToAddress("0x2222222222222222222222222222222222222222"))
		record.Set(domain.RecordKey{Environment: "mainnet", ChainID: "1", Category: domain.CategoryNone, Name: "Sample"},
			common.HexToAddress("0x3333333333333333333333333333333333333333"))

		result := &usecase.DeploymentListResult{
			Entries: record.Entries(),
			Summary: usecase.DeploymentSummary{
				Total:      3,
				ByCategory: map[domain.ContractCategory]int{domain.CategoryNone: 1, domain.CategoryInitializableProxy: 2},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf).RenderDeploymentList(result))
		out := buf.String()

		assert.Contains(t, out, " mainnet ")
		assert.Contains(t, out, " chain 11155111 ")
		assert.Contains(t, out, "DrypProxy")
		assert.Contains(t, out, "0x2222222222222222222222222222222222222222")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("mainnet")), bytes.Index(buf.Bytes(), []byte("testnet")))
		assert.Contains(t, out, "3 deployment(s) (1 none, 2 initializable-proxy)")
	})
}

func TestDeployRenderer(t *testing.T) {
	result := &usecase.DeployResult{
		Spec:        domain.ContractSpec{Name: "Dryp", Category: domain.CategoryInitializableProxy},
		Environment: "testnet",
		ChainID:     "11155111",
		Implementation: &usecase.DeployedContract{
			Address: common.HexToAddress("0x1111111111111111111111111111111111111111"),
			TxHash:  common.HexToHash("0xaa"),
		},
		Proxy: &usecase.DeployedContract{
			Address: common.HexToAddress("0x2222222222222222222222222222222222222222"),
			TxHash:  common.HexToHash("0xbb"),
		},
		InitCalldata: []byte{0x81, 0x29, 0xfc, 0x1c},
		Verification: &usecase.VerifyResult{
			Implementation: &usecase.VerifiedContract{
				Name:    "Dryp",
				Address: common.HexToAddress("0x1111111111111111111111111111111111111111"),
				Outcome: &usecase.VerificationOutcome{AlreadyVerified: true},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewDeployRenderer(&buf, "https://sepolia.etherscan.io").RenderDeploy(result))
	out := buf.String()

	assert.Contains(t, out, "Deployed Dryp to testnet on chain 11155111")
	assert.Contains(t, out, "DrypProxy")
	assert.Contains(t, out, "0x8129fc1c")
	assert.Contains(t, out, "already verified https://sepolia.etherscan.io/address/0x1111111111111111111111111111111111111111")
}

func TestEventsRenderer(t *testing.T) {
	result := &usecase.DecodeEventsResult{
		TxHash: common.HexToHash("0x01"),
		Status: 1,
		UnsupportedOperation: &domain.UnsupportedOperation{
			Token:         common.HexToAddress("0x94a9D9AC8a22534E3FaCa9F4e7F2E2cf85d5E4C8"),
			RefundAddress: common.HexToAddress("0xBec33ce33afdAF5604CCDF2c4b575238C5FBD23d"),
			RefundAmount:  big.NewInt(42),
		},
		Events: []domain.DecodedEvent{{
			Index: 3,
			Name:  "UnsupportedOperation",
			Args:  map[string]any{"amount": big.NewInt(42)},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewEventsRenderer(&buf).RenderEvents(result))
	out := buf.String()

	assert.Contains(t, out, "(success)")
	assert.Contains(t, out, "refundAmount   42")
	assert.Contains(t, out, "[3] UnsupportedOperation")
	assert.Contains(t, out, "amount: 42")
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "❌ No deployment recorded", FormatError("verify: not found: no deployment recorded"))
}
