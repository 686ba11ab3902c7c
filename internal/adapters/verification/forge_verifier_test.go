package verification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

func newRequest() usecase.VerificationRequest {
	return usecase.VerificationRequest{
		Address:         common.HexToAddress("0x1111111111111111111111111111111111111111"),
		ContractName:    "contracts/Dryp.sol:Dryp",
		ChainID:         11155111,
		ConstructorArgs: []byte{0xab, 0xcd},
		CompilerVersion: "0.8.24",
		Network: &config.Network{
			Name:         "sepolia",
			ChainID:      11155111,
			ExplorerURL:  "https://sepolia.etherscan.io/",
			EtherscanKey: "KEY",
		},
	}
}

func newVerifier(run CommandRunner) *ForgeVerifier {
	return NewForgeVerifierWithRunner(
		&config.RuntimeConfig{ProjectRoot: "/project"},
		run,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestForgeVerifier_BuildArgs(t *testing.T) {
	t.Setenv("ETHERSCAN_API_KEY", "FALLBACK")
	v := newVerifier(nil)

	args := v.BuildArgs(newRequest())
	assert.Equal(t, []string{
		"verify-contract",
		"0x1111111111111111111111111111111111111111",
		"contracts/Dryp.sol:Dryp",
		"--chain", "11155111",
		"--watch",
		"--constructor-args", "0xabcd",
		"--compiler-version", "0.8.24",
		"--etherscan-api-key", "KEY",
	}, args)

	req := newRequest()
	req.Network.EtherscanKey = ""
	req.Network.VerifierURL = "https://api.example.org/api"
	req.ConstructorArgs = nil
	args = v.BuildArgs(req)
	assert.Contains(t, args, "FALLBACK")
	assert.Contains(t, args, "https://api.example.org/api")
	assert.NotContains(t, args, "--constructor-args")
}

func TestForgeVerifier_BuildArgsWithoutCompilerMetadata(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := newRequest()
		req.CompilerVersion = ""

		args := newVerifier(nil).BuildArgs(req)
		assert.Equal(t, []string{
			"verify-contract",
			"0x1111111111111111111111111111111111111111",
			"contracts/Dryp.sol:Dryp",
			"--chain", "11155111",
			"--watch",
			"--constructor-args", "0xabcd",
			"--compiler-version", "0.8.2",
			"--num-of-optimizations", "1000000",
			"--via-ir",
			"--etherscan-api-key", "KEY",
		}, args)
	})

	t.Run("project compiler section", func(t *testing.T) {
		viaIR := false
		v := NewForgeVerifierWithRunner(
			&config.RuntimeConfig{
				ProjectRoot: "/project",
				Project: &config.ProjectConfig{Compiler: config.CompilerConfig{
					Version: "0.8.20", OptimizerRuns: 200, ViaIR: &viaIR,
				}},
			},
			nil,
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)
		req := newRequest()
		req.CompilerVersion = ""

		args := v.BuildArgs(req)
		assert.Contains(t, args, "0.8.20")
		assert.Contains(t, args, "200")
		assert.NotContains(t, args, "--via-ir")
	})
}

func TestForgeVerifier_Verify(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotDir string
		v := newVerifier(func(ctx context.Context, dir string, args ...string) ([]byte, error) {
			gotDir = dir
			return []byte("Contract successfully verified\n"), nil
		})

		outcome, err := v.Verify(context.Background(), newRequest())
		require.NoError(t, err)
		assert.Equal(t, "/project", gotDir)
		assert.False(t, outcome.AlreadyVerified)
		assert.Equal(t, "https://sepolia.etherscan.io/address/0x1111111111111111111111111111111111111111#code", outcome.URL)
	})

	t.Run("already verified is success even on exit error", func(t *testing.T) {
		v := newVerifier(func(context.Context, string, ...string) ([]byte, error) {
			return []byte("Contract source code already verified"), errors.New("exit status 1")
		})

		outcome, err := v.Verify(context.Background(), newRequest())
		require.NoError(t, err)
		assert.True(t, outcome.AlreadyVerified)
	})

	t.Run("failure", func(t *testing.T) {
		v := newVerifier(func(context.Context, string, ...string) ([]byte, error) {
			return []byte("Invalid API Key"), errors.New("exit status 1")
		})

		_, err := v.Verify(context.Background(), newRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrVerificationFailed)
		assert.ErrorIs(t, err, domain.ErrNetwork)
		assert.Contains(t, err.Error(), "Invalid API Key")
	})

	t.Run("unclear output", func(t *testing.T) {
		v := newVerifier(func(context.Context, string, ...string) ([]byte, error) {
			return []byte("Submitted contract for verification"), nil
		})

		_, err := v.Verify(context.Background(), newRequest())
		assert.ErrorIs(t, err, domain.ErrVerificationFailed)
	})
}
