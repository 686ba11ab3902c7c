package verification

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// CommandRunner runs forge with args in dir and returns its combined output
type CommandRunner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// ForgeVerifier verifies contracts on the network's explorer through
// `forge verify-contract`.
type ForgeVerifier struct {
	projectRoot string
	compiler    config.CompilerConfig
	run         CommandRunner
	log         *slog.Logger
}

// NewForgeVerifier creates a verifier running forge from the project root
func NewForgeVerifier(cfg *config.RuntimeConfig, log *slog.Logger) *ForgeVerifier {
	return &ForgeVerifier{
		projectRoot: cfg.ProjectRoot,
		compiler:    cfg.Project.CompilerSettings(),
		run:         runForge,
		log:         log.With("component", "ForgeVerifier"),
	}
}

// NewForgeVerifierWithRunner creates a verifier with a custom command runner
func NewForgeVerifierWithRunner(cfg *config.RuntimeConfig, run CommandRunner, log *slog.Logger) *ForgeVerifier {
	v := NewForgeVerifier(cfg, log)
	v.run = run
	return v
}

func runForge(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "forge", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Verify submits one contract. An explorer reporting the contract as already
// verified counts as success.
func (v *ForgeVerifier) Verify(ctx context.Context, req usecase.VerificationRequest) (*usecase.VerificationOutcome, error) {
	args := v.BuildArgs(req)
	v.log.Debug("running forge", "args", strings.Join(args, " "))

	output, err := v.run(ctx, v.projectRoot, args...)
	out := strings.TrimSpace(string(output))

	outcome := &usecase.VerificationOutcome{
		Output: out,
		URL:    explorerURL(req.Network, req.Address.Hex()),
	}
	if isAlreadyVerified(out) {
		outcome.AlreadyVerified = true
		return outcome, nil
	}
	if err != nil {
		if out == "" {
			out = err.Error()
		}
		return nil, fmt.Errorf("%w: %s at %s: %s", domain.ErrVerificationFailed, req.ContractName, req.Address.Hex(), out)
	}
	if !strings.Contains(out, "successfully verified") && !strings.Contains(out, "Pass - Verified") {
		return nil, fmt.Errorf("%w: status unclear for %s: %s", domain.ErrVerificationFailed, req.Address.Hex(), out)
	}
	return outcome, nil
}

// BuildArgs returns the forge arguments for a request
func (v *ForgeVerifier) BuildArgs(req usecase.VerificationRequest) []string {
	args := []string{
		"verify-contract",
		req.Address.Hex(),
		req.ContractName,
		"--chain", fmt.Sprintf("%d", req.ChainID),
		"--watch",
	}

	if len(req.ConstructorArgs) > 0 {
		args = append(args, "--constructor-args", hexutil.Encode(req.ConstructorArgs))
	}
	if req.CompilerVersion != "" {
		args = append(args, "--compiler-version", req.CompilerVersion)
	} else {
		// Hardhat artifacts carry no compiler metadata
		args = append(args, "--compiler-version", v.compiler.Version)
		if v.compiler.OptimizerRuns > 0 {
			args = append(args, "--num-of-optimizations", strconv.Itoa(v.compiler.OptimizerRuns))
		}
		if v.compiler.ViaIR != nil && *v.compiler.ViaIR {
			args = append(args, "--via-ir")
		}
	}

	apiKey := os.Getenv("ETHERSCAN_API_KEY")
	if req.Network != nil {
		if req.Network.EtherscanKey != "" {
			apiKey = req.Network.EtherscanKey
		}
		if req.Network.VerifierURL != "" {
			args = append(args, "--verifier-url", req.Network.VerifierURL)
		}
	}
	if apiKey != "" {
		args = append(args, "--etherscan-api-key", apiKey)
	}

	return args
}

// DumpCommand returns the shell command Verify would run
func (v *ForgeVerifier) DumpCommand(req usecase.VerificationRequest) string {
	return "forge " + strings.Join(v.BuildArgs(req), " ")
}

func isAlreadyVerified(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "already verified")
}

func explorerURL(network *config.Network, address string) string {
	if network == nil || network.ExplorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s#code", strings.TrimSuffix(network.ExplorerURL, "/"), address)
}

var _ usecase.ContractVerifier = (*ForgeVerifier)(nil)
