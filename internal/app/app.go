package app

import (
	"log/slog"

	"github.com/trebuchet-org/nftdeploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
	"github.com/trebuchet-org/nftdeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Progress is the sink the use cases report to
	Progress usecase.ProgressSink

	// Use cases
	DeployContract *usecase.DeployContract
	ListNetworks   *usecase.ListNetworks

	// Connection is owned by the app and released by Close
	Connection *blockchain.Connection
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	progress usecase.ProgressSink,
	deployContract *usecase.DeployContract,
	listNetworks *usecase.ListNetworks,
	conn *blockchain.Connection,
) (*App, error) {
	return &App{
		Config:         cfg,
		Log:            log,
		Progress:       progress,
		DeployContract: deployContract,
		ListNetworks:   listNetworks,
		Connection:     conn,
	}, nil
}

// Close releases the network connection, stopping the in-process chain if one was started
func (a *App) Close() error {
	if a == nil || a.Connection == nil {
		return nil
	}
	return a.Connection.Close()
}
