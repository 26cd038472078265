package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/nftdeploy/internal/domain"
	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
)

// Backend is the chain access needed to deploy, transact and wait for receipts
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Connection owns the backend and the deployer signer for the configured network
type Connection struct {
	cfg     *config.RuntimeConfig
	log     *slog.Logger
	backend Backend
	chainID *big.Int
	signer  *bind.TransactOpts
	closeFn func() error
	mu      sync.Mutex
}

// NewConnection creates a connection that dials lazily on first use
func NewConnection(cfg *config.RuntimeConfig, log *slog.Logger) *Connection {
	return &Connection{
		cfg: cfg,
		log: log,
	}
}

// Connect establishes connection to the configured network. Later calls reuse it.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return nil
	}

	network := c.cfg.Network
	if network == nil {
		return fmt.Errorf("no network configured: %w", domain.ErrUnknownNetwork)
	}

	key, err := deployerKey(c.cfg)
	if err != nil {
		return err
	}

	var backend Backend
	var closeFn func() error
	if network.InProcess() {
		chain := newDevChain(key)
		backend, closeFn = chain, chain.Close
		c.log.Debug("started in-process chain", "deployer", AddressOf(key).Hex())
	} else {
		client, err := ethclient.DialContext(ctx, network.RPCURL)
		if err != nil {
			return fmt.Errorf("failed to connect to RPC %s: %w", network.RPCURL, err)
		}
		backend = client
		closeFn = func() error {
			client.Close()
			return nil
		}
		c.log.Debug("dialed network", "network", network.Name, "rpc", network.RPCURL)
	}

	// Verify chain ID matches
	networkChainID, err := backend.ChainID(ctx)
	if err != nil {
		_ = closeFn()
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && networkChainID.Uint64() != network.ChainID {
		_ = closeFn()
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, network.ChainID, networkChainID.Uint64())
	}

	signer, err := newTransactor(key, networkChainID, c.cfg.GasLimit)
	if err != nil {
		_ = closeFn()
		return err
	}

	c.backend = backend
	c.chainID = networkChainID
	c.signer = signer
	c.closeFn = closeFn
	c.log.Info("connected", "network", network.Name, "chainId", networkChainID.Uint64(), "deployer", signer.From.Hex())
	return nil
}

// Backend returns the connected backend
func (c *Connection) Backend() (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend == nil {
		return nil, domain.ErrNotConnected
	}
	return c.backend, nil
}

// ChainID returns the chain ID reported by the connected node
func (c *Connection) ChainID() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID == nil {
		return 0, domain.ErrNotConnected
	}
	return c.chainID.Uint64(), nil
}

// Deployer returns the signing account address
func (c *Connection) Deployer() (common.Address, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.signer == nil {
		return common.Address{}, domain.ErrNotConnected
	}
	return c.signer.From, nil
}

// TransactOpts returns a fresh copy of the signer options bound to ctx.
// Nonce and fees are left unset so they are fetched per transaction.
func (c *Connection) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.signer == nil {
		return nil, domain.ErrNotConnected
	}
	opts := *c.signer
	opts.Context = ctx
	return &opts, nil
}

// Close releases the backend. It is safe to call on an unconnected Connection.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closeFn == nil {
		return nil
	}
	err := c.closeFn()
	c.backend, c.chainID, c.signer, c.closeFn = nil, nil, nil, nil
	return err
}
