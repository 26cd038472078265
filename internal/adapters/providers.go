package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/nftdeploy/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/nftdeploy/internal/adapters/config"
	"github.com/trebuchet-org/nftdeploy/internal/adapters/progress"
	"github.com/trebuchet-org/nftdeploy/internal/adapters/repository/contracts"
	"github.com/trebuchet-org/nftdeploy/internal/config"
	domainconfig "github.com/trebuchet-org/nftdeploy/internal/domain/config"
	"github.com/trebuchet-org/nftdeploy/internal/usecase"
)

// ProvideProgressSink selects the spinner for terminal output, or the no-op
// sink when the result is rendered as JSON or YAML
func ProvideProgressSink(cfg *domainconfig.RuntimeConfig) usecase.ProgressSink {
	if cfg.JSON || cfg.YAML {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// RepositorySet provides artifact storage implementations
var RepositorySet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Repository)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewConnection,
	blockchain.NewFactoryProvider,
	wire.Bind(new(usecase.FactoryProvider), new(*blockchain.FactoryProvider)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ProvideProgressSink,

	RepositorySet,
	ConfigSet,
	BlockchainSet,
)
