package testutil

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/nftdeploy/internal/domain/models"
	"github.com/trebuchet-org/nftdeploy/internal/usecase"
)

// StubChain serves a single contract through the usecase ports without a
// node. Every step succeeds unless the matching error is set.
type StubChain struct {
	Address    common.Address
	ResolveErr error
	DeployErr  error
	ConfirmErr error
	// SendErrs maps a 1-based call index to the error its send returns
	SendErrs map[int]error
	// Sending, when set, receives the call index as each send begins
	Sending chan<- int
	// HoldSends makes every send block until its context is done
	HoldSends bool

	mu    sync.Mutex
	sends int
}

// Sends reports how many sends have been attempted
func (c *StubChain) Sends() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sends
}

func (c *StubChain) GetContractFactory(ctx context.Context, artifactName string) (usecase.ContractFactory, error) {
	if c.ResolveErr != nil {
		return nil, c.ResolveErr
	}
	return &stubFactory{chain: c, contract: &models.Contract{Name: artifactName, SourceName: "contracts/" + artifactName + ".sol"}}, nil
}

type stubFactory struct {
	chain    *StubChain
	contract *models.Contract
}

func (f *stubFactory) Contract() *models.Contract { return f.contract }

func (f *stubFactory) Deploy(ctx context.Context, args ...any) (usecase.ContractInstance, error) {
	if f.chain.DeployErr != nil {
		return nil, f.chain.DeployErr
	}
	return &stubInstance{chain: f.chain}, nil
}

type stubInstance struct {
	chain *StubChain
}

func (i *stubInstance) Address() common.Address { return i.chain.Address }

func (i *stubInstance) DeployTransaction() usecase.PendingTransaction {
	return &stubTx{hash: common.HexToHash("0xd0"), block: 1}
}

func (i *stubInstance) Deployed(ctx context.Context) error { return i.chain.ConfirmErr }

func (i *stubInstance) Transact(ctx context.Context, method string, args ...any) (usecase.PendingTransaction, error) {
	c := i.chain
	c.mu.Lock()
	c.sends++
	n := c.sends
	c.mu.Unlock()

	if c.Sending != nil {
		c.Sending <- n
	}
	if c.HoldSends {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := c.SendErrs[n]; err != nil {
		return nil, err
	}
	return &stubTx{hash: common.BytesToHash([]byte{byte(n)}), block: uint64(n) + 1}, nil
}

type stubTx struct {
	hash  common.Hash
	block uint64
}

func (t *stubTx) Hash() common.Hash { return t.hash }

func (t *stubTx) Wait(ctx context.Context) (*models.TransactionReceipt, error) {
	return &models.TransactionReceipt{TxHash: t.hash, BlockNumber: t.block, Status: 1}, nil
}

var _ usecase.FactoryProvider = (*StubChain)(nil)
