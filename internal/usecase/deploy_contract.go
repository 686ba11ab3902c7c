package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/domain/models"
)

// ErrDeployCancelled is returned when the user declines the confirmation prompt
var ErrDeployCancelled = errors.New("deployment cancelled")

// DeployContract deploys one catalog contract, its proxy when the category
// needs one, records both addresses and optionally verifies them.
type DeployContract struct {
	config    *config.RuntimeConfig
	artifacts ArtifactRepository
	chain     ChainClient
	encoder   CallEncoder
	recorder  DeploymentRecorder
	book      AddressBook
	verifier  *VerifyContract
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new deploy contract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	chain ChainClient,
	encoder CallEncoder,
	recorder DeploymentRecorder,
	book AddressBook,
	verifier *VerifyContract,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	if progress == nil {
		progress = NopProgress{}
	}
	return &DeployContract{
		config:    cfg,
		artifacts: artifacts,
		chain:     chain,
		encoder:   encoder,
		recorder:  recorder,
		book:      book,
		verifier:  verifier,
		confirmer: confirmer,
		progress:  progress,
		log:       log.With("component", "DeployContract"),
	}
}

// DeployOptions contains options for a deployment
type DeployOptions struct {
	Environment string
	Verify      bool
	// SkipConfirm bypasses the prompt for non-testnet environments
	SkipConfirm bool
}

// DeployResult contains the result of a deployment
type DeployResult struct {
	Spec           domain.ContractSpec
	Environment    string
	ChainID        string
	Implementation *DeployedContract
	Proxy          *DeployedContract
	InitCalldata   []byte
	Verification   *VerifyResult
}

// Run executes the deployment steps in order. A failing step aborts the
// rest; deployments already confirmed on chain are not rolled back.
func (uc *DeployContract) Run(ctx context.Context, spec domain.ContractSpec, opts DeployOptions) (*DeployResult, error) {
	environment := opts.Environment
	if environment == "" {
		environment = uc.config.Environment
	}
	if environment == "" {
		environment = domain.DefaultEnvironment
	}

	if uc.config.Network != nil && uc.config.Network.Rollup {
		return nil, fmt.Errorf("%w: network %s is a rollup requiring its own deploy transactions, which are not supported",
			domain.ErrConfiguration, uc.config.Network.Name)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "chain", Message: "Fetching chain id", Spinner: true})
	numericChainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if uc.config.Network != nil && uc.config.Network.ChainID != 0 && uc.config.Network.ChainID != numericChainID {
		return nil, fmt.Errorf("%w: network %s is configured with chain id %d but the rpc reports %d",
			domain.ErrConfiguration, uc.config.Network.Name, uc.config.Network.ChainID, numericChainID)
	}
	chainID := domain.ChainKey(numericChainID)

	log := uc.log.With("contract", spec.Name, "env", environment, "chainId", chainID)

	if environment != domain.DefaultEnvironment && !opts.SkipConfirm && !uc.config.NonInteractive && uc.confirmer != nil {
		ok, err := uc.confirmer.Confirm(fmt.Sprintf("Deploy %s to %s on chain %s?", spec.Name, environment, chainID))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDeployCancelled
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "args", Message: "Resolving arguments", Spinner: true})
	args, err := spec.ResolveArgs(ctx, domain.ArgsContext{
		Environment: environment,
		ChainID:     chainID,
		Addresses:   uc.book,
		Deployments: uc.recorder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve arguments for %s: %w", spec.Name, err)
	}

	implArtifact, implABI, implCode, err := uc.loadArtifact(ctx, spec.Artifact)
	if err != nil {
		return nil, err
	}

	// Proxy inputs are prepared before anything is broadcast
	var (
		proxyABI     abi.ABI
		proxyCode    []byte
		initCalldata []byte
	)
	if spec.Category.UsesProxy() {
		_, proxyABI, proxyCode, err = uc.loadArtifact(ctx, domain.ProxyArtifact)
		if err != nil {
			return nil, err
		}
		if spec.Category == domain.CategoryInitializableProxy {
			initCalldata, err = uc.encoder.EncodeCall(implABI, spec.InitializerMethod(), args.Initializer)
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s.%s: %w", spec.Name, spec.InitializerMethod(), err)
			}
		}
	}

	result := &DeployResult{
		Spec:         spec,
		Environment:  environment,
		ChainID:      chainID,
		InitCalldata: initCalldata,
	}

	implCtorArgs, err := uc.encoder.EncodeConstructor(implABI, args.Constructor)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor args for %s: %w", spec.Name, err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "implementation", Current: 1, Total: uc.totalSteps(spec), Message: fmt.Sprintf("Deploying %s", spec.Name), Spinner: true})
	impl, err := uc.chain.Deploy(ctx, DeployRequest{
		Name:            implArtifact.ContractName,
		Bytecode:        implCode,
		ConstructorArgs: implCtorArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", spec.Name, err)
	}
	result.Implementation = impl
	log.Info("implementation deployed", "address", impl.Address.Hex(), "tx", impl.TxHash.Hex())

	if spec.Category.UsesProxy() {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "proxy", Current: 2, Total: uc.totalSteps(spec), Message: fmt.Sprintf("Deploying %s", spec.ProxyRecordName()), Spinner: true})
		if initCalldata == nil {
			initCalldata = []byte{}
		}
		proxyCtorArgs, err := uc.encoder.EncodeConstructor(proxyABI, []any{impl.Address, initCalldata})
		if err != nil {
			return nil, fmt.Errorf("failed to encode constructor args for %s: %w", spec.ProxyRecordName(), err)
		}
		proxy, err := uc.chain.Deploy(ctx, DeployRequest{
			Name:            domain.ProxyArtifact,
			Bytecode:        proxyCode,
			ConstructorArgs: proxyCtorArgs,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to deploy %s: %w", spec.ProxyRecordName(), err)
		}
		result.Proxy = proxy
		log.Info("proxy deployed", "address", proxy.Address.Hex(), "tx", proxy.TxHash.Hex())
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "record", Message: "Recording deployment", Spinner: true})
	if err := uc.recordAndPersist(ctx, spec.ImplementationKey(environment, chainID), impl.Address); err != nil {
		return nil, err
	}
	if result.Proxy != nil {
		if err := uc.recordAndPersist(ctx, spec.ProxyKey(environment, chainID), result.Proxy.Address); err != nil {
			return nil, err
		}
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "done"})

	if opts.Verify {
		verification, err := uc.verifier.Run(ctx, spec, VerifyOptions{Environment: environment})
		result.Verification = verification
		if err != nil {
			return result, fmt.Errorf("deployed but verification failed: %w", err)
		}
	}

	return result, nil
}

func (uc *DeployContract) totalSteps(spec domain.ContractSpec) int {
	if spec.Category.UsesProxy() {
		return 2
	}
	return 1
}

func (uc *DeployContract) loadArtifact(ctx context.Context, name string) (*models.Artifact, abi.ABI, []byte, error) {
	artifact, err := uc.artifacts.GetArtifact(ctx, name)
	if err != nil {
		return nil, abi.ABI{}, nil, err
	}
	parsed, err := artifact.ParsedABI()
	if err != nil {
		return nil, abi.ABI{}, nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	code, err := artifact.CreationCode()
	if err != nil {
		return nil, abi.ABI{}, nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return artifact, parsed, code, nil
}

func (uc *DeployContract) recordAndPersist(ctx context.Context, key domain.RecordKey, address common.Address) error {
	record, err := uc.recorder.Record(ctx, key, address)
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", key, err)
	}
	if err := uc.recorder.Persist(ctx, key.Category, record); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	uc.log.Debug("recorded deployment", "key", key.String(), "address", address.Hex())
	return nil
}
