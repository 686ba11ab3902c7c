package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
)

// VerifyContract verifies a recorded deployment on the block explorer
type VerifyContract struct {
	config    *config.RuntimeConfig
	artifacts ArtifactRepository
	chain     ChainClient
	encoder   CallEncoder
	recorder  DeploymentRecorder
	book      AddressBook
	verifier  ContractVerifier
	progress  ProgressSink
	log       *slog.Logger
}

// NewVerifyContract creates a new verify contract use case
func NewVerifyContract(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	chain ChainClient,
	encoder CallEncoder,
	recorder DeploymentRecorder,
	book AddressBook,
	verifier ContractVerifier,
	progress ProgressSink,
	log *slog.Logger,
) *VerifyContract {
	if progress == nil {
		progress = NopProgress{}
	}
	return &VerifyContract{
		config:    cfg,
		artifacts: artifacts,
		chain:     chain,
		encoder:   encoder,
		recorder:  recorder,
		book:      book,
		verifier:  verifier,
		progress:  progress,
		log:       log.With("component", "VerifyContract"),
	}
}

// VerifyOptions contains options for verification
type VerifyOptions struct {
	Environment string
}

// VerifiedContract is the verification result for one address
type VerifiedContract struct {
	Name    string
	Address common.Address
	Outcome *VerificationOutcome
}

// VerifyResult contains the result of verification
type VerifyResult struct {
	Spec           domain.ContractSpec
	Environment    string
	ChainID        string
	Implementation *VerifiedContract
	Proxy          *VerifiedContract
}

// Run reads the recorded addresses back and submits them for verification.
func (uc *VerifyContract) Run(ctx context.Context, spec domain.ContractSpec, opts VerifyOptions) (*VerifyResult, error) {
	environment := opts.Environment
	if environment == "" {
		environment = uc.config.Environment
	}
	if environment == "" {
		environment = domain.DefaultEnvironment
	}

	numericChainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	chainID := domain.ChainKey(numericChainID)

	implAddress, err := uc.recorder.Lookup(ctx, spec.ImplementationKey(environment, chainID))
	if err != nil {
		return nil, err
	}
	if err := uc.requireCode(ctx, numericChainID, implAddress); err != nil {
		return nil, err
	}

	args, err := spec.ResolveArgs(ctx, domain.ArgsContext{
		Environment: environment,
		ChainID:     chainID,
		Addresses:   uc.book,
		Deployments: uc.recorder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve arguments for %s: %w", spec.Name, err)
	}

	result := &VerifyResult{Spec: spec, Environment: environment, ChainID: chainID}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "verify", Message: fmt.Sprintf("Verifying %s", spec.Name), Spinner: true})
	implArtifact, err := uc.artifacts.GetArtifact(ctx, spec.Artifact)
	if err != nil {
		return nil, err
	}
	implABI, err := implArtifact.ParsedABI()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	ctorArgs, err := uc.encoder.EncodeConstructor(implABI, args.Constructor)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor args for %s: %w", spec.Name, err)
	}

	outcome, err := uc.verifier.Verify(ctx, VerificationRequest{
		Address:         implAddress,
		ContractName:    implArtifact.FullyQualifiedName(),
		ChainID:         numericChainID,
		ConstructorArgs: ctorArgs,
		CompilerVersion: implArtifact.CompilerVersion(),
		Network:         uc.config.Network,
	})
	if err != nil {
		return result, fmt.Errorf("failed to verify %s at %s: %w", spec.Name, implAddress.Hex(), err)
	}
	result.Implementation = &VerifiedContract{Name: spec.Name, Address: implAddress, Outcome: outcome}
	uc.log.Info("verified implementation", "contract", spec.Name, "address", implAddress.Hex(), "alreadyVerified", outcome.AlreadyVerified)

	if !spec.Category.UsesProxy() {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "done"})
		return result, nil
	}

	proxyName := spec.ProxyRecordName()
	proxyAddress, err := uc.recorder.Lookup(ctx, spec.ProxyKey(environment, chainID))
	if err != nil {
		return result, err
	}
	if err := uc.requireCode(ctx, numericChainID, proxyAddress); err != nil {
		return result, err
	}

	initCalldata := []byte{}
	if spec.Category == domain.CategoryInitializableProxy {
		initCalldata, err = uc.encoder.EncodeCall(implABI, spec.InitializerMethod(), args.Initializer)
		if err != nil {
			return result, fmt.Errorf("failed to encode %s.%s: %w", spec.Name, spec.InitializerMethod(), err)
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "verify", Message: fmt.Sprintf("Verifying %s", proxyName), Spinner: true})
	proxyArtifact, err := uc.artifacts.GetArtifact(ctx, domain.ProxyArtifact)
	if err != nil {
		return result, err
	}
	proxyABI, err := proxyArtifact.ParsedABI()
	if err != nil {
		return result, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	proxyCtorArgs, err := uc.encoder.EncodeConstructor(proxyABI, []any{implAddress, initCalldata})
	if err != nil {
		return result, fmt.Errorf("failed to encode constructor args for %s: %w", proxyName, err)
	}

	outcome, err = uc.verifier.Verify(ctx, VerificationRequest{
		Address:         proxyAddress,
		ContractName:    proxyArtifact.FullyQualifiedName(),
		ChainID:         numericChainID,
		ConstructorArgs: proxyCtorArgs,
		CompilerVersion: proxyArtifact.CompilerVersion(),
		Network:         uc.config.Network,
	})
	if err != nil {
		return result, fmt.Errorf("failed to verify %s at %s: %w", proxyName, proxyAddress.Hex(), err)
	}
	result.Proxy = &VerifiedContract{Name: proxyName, Address: proxyAddress, Outcome: outcome}
	uc.log.Info("verified proxy", "contract", proxyName, "address", proxyAddress.Hex(), "alreadyVerified", outcome.AlreadyVerified)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "done"})

	return result, nil
}

func (uc *VerifyContract) requireCode(ctx context.Context, chainID uint64, address common.Address) error {
	ok, err := uc.chain.HasCode(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	if !ok {
		return domain.NoCodeErr{ChainID: chainID, Address: address}
	}
	return nil
}
