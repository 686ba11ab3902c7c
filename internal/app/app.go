package app

import (
	"log/slog"

	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Catalog  usecase.ContractCatalog
	Progress usecase.ProgressSink

	// Use cases
	ResolveContract *usecase.ResolveContract
	DeployContract  *usecase.DeployContract
	VerifyContract  *usecase.VerifyContract
	ListDeployments *usecase.ListDeployments
	ListNetworks    *usecase.ListNetworks
	ShowAddresses   *usecase.ShowAddresses
	DecodeEvents    *usecase.DecodeEvents
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	catalog usecase.ContractCatalog,
	progress usecase.ProgressSink,
	resolveContract *usecase.ResolveContract,
	deployContract *usecase.DeployContract,
	verifyContract *usecase.VerifyContract,
	listDeployments *usecase.ListDeployments,
	listNetworks *usecase.ListNetworks,
	showAddresses *usecase.ShowAddresses,
	decodeEvents *usecase.DecodeEvents,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		Catalog:         catalog,
		Progress:        progress,
		ResolveContract: resolveContract,
		DeployContract:  deployContract,
		VerifyContract:  verifyContract,
		ListDeployments: listDeployments,
		ListNetworks:    listNetworks,
		ShowAddresses:   showAddresses,
		DecodeEvents:    decodeEvents,
	}, nil
}
