//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/ateett12ue/dryp-contracts/internal/adapters"
	"github.com/ateett12ue/dryp-contracts/internal/config"
	"github.com/ateett12ue/dryp-contracts/internal/logging"
	"github.com/ateett12ue/dryp-contracts/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveContract,
		usecase.NewVerifyContract,
		usecase.NewDeployContract,
		usecase.NewListDeployments,
		usecase.NewListNetworks,
		usecase.NewShowAddresses,
		usecase.NewDecodeEvents,

		// App
		NewApp,
	)
	return nil, nil
}
