package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
	"github.com/trebuchet-org/nftdeploy/internal/domain/models"
)

// ContractRepository provides access to compiled contract artifacts
type ContractRepository interface {
	GetContract(ctx context.Context, name string) (*models.Contract, error)
	ListContracts(ctx context.Context) ([]*models.Contract, error)
}

// FactoryProvider binds a named artifact to the connected network
type FactoryProvider interface {
	GetContractFactory(ctx context.Context, artifactName string) (ContractFactory, error)
}

// ContractFactory deploys new instances of one compiled contract
type ContractFactory interface {
	Contract() *models.Contract
	Deploy(ctx context.Context, args ...any) (ContractInstance, error)
}

// ContractInstance is a deployed (or deploying) contract
type ContractInstance interface {
	Address() common.Address
	DeployTransaction() PendingTransaction
	// Deployed blocks until the creation transaction is mined and code exists at Address
	Deployed(ctx context.Context) error
	Transact(ctx context.Context, method string, args ...any) (PendingTransaction, error)
}

// PendingTransaction is a submitted transaction awaiting confirmation
type PendingTransaction interface {
	Hash() common.Hash
	Wait(ctx context.Context) (*models.TransactionReceipt, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update. Result is the run as of the
// stage being entered.
type ProgressEvent struct {
	Stage    Stage
	Message  string
	Spinner  bool
	Metadata interface{}
	Result   *DeployResult
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
}
