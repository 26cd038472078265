package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/nftdeploy/internal/domain"
	"github.com/trebuchet-org/nftdeploy/internal/domain/models"
	"github.com/trebuchet-org/nftdeploy/internal/usecase"
)

// FactoryProvider binds artifacts from the repository to the connection
type FactoryProvider struct {
	conn      *Connection
	contracts usecase.ContractRepository
	log       *slog.Logger
}

// NewFactoryProvider creates a new factory provider
func NewFactoryProvider(conn *Connection, contracts usecase.ContractRepository, log *slog.Logger) *FactoryProvider {
	return &FactoryProvider{
		conn:      conn,
		contracts: contracts,
		log:       log,
	}
}

// GetContractFactory resolves the artifact. The network is not contacted
// until Deploy, so an unreachable node surfaces as a deployment failure.
func (p *FactoryProvider) GetContractFactory(ctx context.Context, artifactName string) (usecase.ContractFactory, error) {
	contract, err := p.contracts.GetContract(ctx, artifactName)
	if err != nil {
		return nil, err
	}
	p.log.Debug("resolved artifact", "contract", contract.FullyQualifiedName(), "path", contract.ArtifactPath)
	return &factory{conn: p.conn, contract: contract, log: p.log}, nil
}

type factory struct {
	conn     *Connection
	contract *models.Contract
	log      *slog.Logger
}

func (f *factory) Contract() *models.Contract {
	return f.contract
}

// Deploy sends the creation transaction
func (f *factory) Deploy(ctx context.Context, args ...any) (usecase.ContractInstance, error) {
	if err := f.conn.Connect(ctx); err != nil {
		return nil, err
	}
	backend, err := f.conn.Backend()
	if err != nil {
		return nil, err
	}
	opts, err := f.conn.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}

	address, tx, bound, err := bind.DeployContract(opts, *f.contract.ABI, f.contract.Artifact.Bytecode.Bytes(), backend, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", f.contract.Name, err)
	}
	f.log.Debug("deployment sent", "contract", f.contract.Name, "address", address.Hex(), "tx", tx.Hash().Hex())

	return &instance{
		conn:     f.conn,
		backend:  backend,
		contract: f.contract,
		address:  address,
		deployTx: &pendingTx{backend: backend, tx: tx},
		bound:    bound,
		log:      f.log,
	}, nil
}

type instance struct {
	conn     *Connection
	backend  Backend
	contract *models.Contract
	address  common.Address
	deployTx *pendingTx
	bound    *bind.BoundContract
	log      *slog.Logger
}

func (i *instance) Address() common.Address {
	return i.address
}

func (i *instance) DeployTransaction() usecase.PendingTransaction {
	return i.deployTx
}

// Deployed waits for the creation transaction and checks code exists at the address
func (i *instance) Deployed(ctx context.Context) error {
	receipt, err := i.deployTx.Wait(ctx)
	if err != nil {
		return err
	}

	code, err := i.backend.CodeAt(ctx, i.address, nil)
	if err != nil {
		return fmt.Errorf("failed to check code at %s: %w", i.address.Hex(), err)
	}
	if len(code) == 0 {
		return fmt.Errorf("%s: %w", i.address.Hex(), domain.ErrNoCode)
	}

	i.log.Debug("deployment confirmed", "address", i.address.Hex(), "block", receipt.BlockNumber, "gasUsed", receipt.GasUsed)
	return nil
}

// Transact sends a state-mutating call of method
func (i *instance) Transact(ctx context.Context, method string, args ...any) (usecase.PendingTransaction, error) {
	if !i.contract.HasMethod(method) {
		return nil, fmt.Errorf("%s.%s: %w", i.contract.Name, method, domain.ErrUnknownMethod)
	}
	opts, err := i.conn.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := i.bound.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	i.log.Debug("call sent", "method", method, "tx", tx.Hash().Hex())
	return &pendingTx{backend: i.backend, tx: tx}, nil
}

type pendingTx struct {
	backend Backend
	tx      *types.Transaction
}

func (p *pendingTx) Hash() common.Hash {
	return p.tx.Hash()
}

// Wait blocks until the transaction is mined or ctx is done
func (p *pendingTx) Wait(ctx context.Context) (*models.TransactionReceipt, error) {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", p.tx.Hash().Hex(), err)
	}

	result := toReceipt(receipt)
	if !result.Succeeded() {
		return result, fmt.Errorf("%s in block %d: %w", p.tx.Hash().Hex(), result.BlockNumber, domain.ErrReverted)
	}
	return result, nil
}

func toReceipt(receipt *types.Receipt) *models.TransactionReceipt {
	result := &models.TransactionReceipt{
		TxHash:          receipt.TxHash,
		GasUsed:         receipt.GasUsed,
		Status:          receipt.Status,
		ContractAddress: receipt.ContractAddress,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return result
}

// Ensure the adapter implements the interface
var _ usecase.FactoryProvider = (*FactoryProvider)(nil)
