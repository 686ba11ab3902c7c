package adapters

import (
	"github.com/google/wire"

	"github.com/ateett12ue/dryp-contracts/internal/adapters/abi"
	"github.com/ateett12ue/dryp-contracts/internal/adapters/addressbook"
	"github.com/ateett12ue/dryp-contracts/internal/adapters/blockchain"
	"github.com/ateett12ue/dryp-contracts/internal/adapters/catalog"
	"github.com/ateett12ue/dryp-contracts/internal/adapters/interactive"
	"github.com/ateett12ue/dryp-contracts/internal/adapters/repository/contracts"
	"github.com/ateett12ue/dryp-contracts/internal/adapters/repository/deployments"
	"github.com/ateett12ue/dryp-contracts/internal/adapters/verification"
	internalconfig "github.com/ateett12ue/dryp-contracts/internal/config"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// ProvideNetworkResolver resolves networks against the loaded dryp.toml
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *internalconfig.NetworkResolver {
	return internalconfig.NewNetworkResolver(cfg.Project)
}

// RepositorySet provides file-based stores
var RepositorySet = wire.NewSet(
	deployments.NewFileRepositoryFromConfig,
	wire.Bind(new(usecase.DeploymentRecorder), new(*deployments.FileRepository)),

	contracts.NewRepositoryFromConfig,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Repository)),

	addressbook.NewBookFromConfig,
	wire.Bind(new(usecase.AddressBook), new(*addressbook.Book)),

	catalog.NewCatalog,
	wire.Bind(new(usecase.ContractCatalog), new(*catalog.Catalog)),
)

// ABISet provides ABI encoding and event decoding
var ABISet = wire.NewSet(
	abi.NewEncoder,
	wire.Bind(new(usecase.CallEncoder), new(*abi.Encoder)),

	abi.NewEventDecoder,
	wire.Bind(new(usecase.EventDecoder), new(*abi.EventDecoder)),
)

// BlockchainSet provides the JSON-RPC chain client
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),
)

// VerificationSet provides explorer verification
var VerificationSet = wire.NewSet(
	verification.NewForgeVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.ForgeVerifier)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),

	interactive.NewPromptConfirmer,
	wire.Bind(new(usecase.Confirmer), new(*interactive.PromptConfirmer)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	ABISet,
	BlockchainSet,
	VerificationSet,
	InteractiveSet,
	ConfigSet,
)
