package blockchain

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
)

// devAccountBalance funds the deployer on the in-process chain (10000 ETH)
var devAccountBalance = new(big.Int).Mul(big.NewInt(10_000), big.NewInt(params.Ether))

// devChain is an ephemeral chain living inside the process. Each accepted
// transaction is sealed into its own block right away, so waits for mining
// return on the first receipt poll.
type devChain struct {
	simulated.Client
	backend *simulated.Backend
}

// newDevChain starts a simulated backend with the given accounts funded
func newDevChain(funded ...*ecdsa.PrivateKey) *devChain {
	alloc := types.GenesisAlloc{}
	for _, key := range funded {
		alloc[AddressOf(key)] = types.Account{Balance: devAccountBalance}
	}
	backend := simulated.NewBackend(alloc)
	return &devChain{
		Client:  backend.Client(),
		backend: backend,
	}
}

// SendTransaction submits the transaction and mines it
func (c *devChain) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := c.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	c.backend.Commit()
	return nil
}

func (c *devChain) Close() error {
	return c.backend.Close()
}
