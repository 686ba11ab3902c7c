package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// DefaultEnvironment is used when ENV is not set
	DefaultEnvironment = "testnet"

	// DefaultInitializer is the initializer method called through the proxy
	DefaultInitializer = "initialize"

	// ProxyArtifact is the artifact name of the ERC1967 proxy
	ProxyArtifact = "ERC1967Proxy"
)

// Native is the sentinel address used for the chain's native currency.
var Native = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

// AddressLookup resolves entries from the static resolver tables.
type AddressLookup interface {
	Address(environment, chainID, name string) (common.Address, error)
	ExchangeToken(chainID, symbol string) (*ExchangeToken, error)
	TreasuryToken(chainID, symbol string) (*TreasuryToken, error)
}

// DeploymentLookup reads back previously recorded deployments.
type DeploymentLookup interface {
	Lookup(ctx context.Context, key RecordKey) (common.Address, error)
}

// ArgsContext carries what an argument resolver may consult.
type ArgsContext struct {
	Environment string
	ChainID     string
	Addresses   AddressLookup
	Deployments DeploymentLookup
}

// Arguments are the values passed to a contract at deploy time.
type Arguments struct {
	Constructor []any
	Initializer []any
}

// ArgsResolver computes deploy arguments for one environment/chain.
type ArgsResolver func(ctx context.Context, ac ArgsContext) (*Arguments, error)

// ContractSpec is everything needed to deploy and verify one contract.
type ContractSpec struct {
	// Key is the CLI name, e.g. "token"
	Key string
	// Name is the name under which the implementation is recorded
	Name string
	// Artifact is the compiled contract name
	Artifact string
	// Category decides the deploy shape and the deployment file
	Category ContractCategory
	// ProxyName overrides the recorded proxy name (defaults to Name+"Proxy")
	ProxyName string
	// Initializer overrides the initializer method (defaults to "initialize")
	Initializer string
	// Description is shown in help output
	Description string
	Args        ArgsResolver
}

// ProxyRecordName returns the name the proxy address is recorded under.
func (s ContractSpec) ProxyRecordName() string {
	if s.ProxyName != "" {
		return s.ProxyName
	}
	return s.Name + "Proxy"
}

// InitializerMethod returns the initializer to encode for proxy deployments.
func (s ContractSpec) InitializerMethod() string {
	if s.Initializer != "" {
		return s.Initializer
	}
	return DefaultInitializer
}

// ResolveArgs runs the spec's resolver, returning empty arguments when none is set.
func (s ContractSpec) ResolveArgs(ctx context.Context, ac ArgsContext) (*Arguments, error) {
	if s.Args == nil {
		return &Arguments{}, nil
	}
	args, err := s.Args(ctx, ac)
	if err != nil {
		return nil, err
	}
	if args == nil {
		return &Arguments{}, nil
	}
	return args, nil
}

// ImplementationKey is the record key for the implementation address.
func (s ContractSpec) ImplementationKey(environment, chainID string) RecordKey {
	return RecordKey{Environment: environment, ChainID: chainID, Category: s.Category, Name: s.Name}
}

// ProxyKey is the record key for the proxy address.
func (s ContractSpec) ProxyKey(environment, chainID string) RecordKey {
	return RecordKey{Environment: environment, ChainID: chainID, Category: s.Category, Name: s.ProxyRecordName()}
}
