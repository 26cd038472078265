package blockchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftdeploy/internal/domain"
	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
)

func TestConnection_InProcess(t *testing.T) {
	ctx := context.Background()
	conn := NewConnection(inProcessConfig(t.TempDir()), discardLogger())
	defer conn.Close()

	_, err := conn.TransactOpts(ctx)
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	require.NoError(t, conn.Connect(ctx))
	backend, err := conn.Backend()
	require.NoError(t, err)

	// Connect is idempotent
	require.NoError(t, conn.Connect(ctx))
	again, err := conn.Backend()
	require.NoError(t, err)
	assert.Same(t, backend.(*devChain), again.(*devChain))

	chainID, err := conn.ChainID()
	require.NoError(t, err)
	assert.Equal(t, uint64(1337), chainID)

	devKey, err := ParsePrivateKey(DevPrivateKey)
	require.NoError(t, err)
	deployer, err := conn.Deployer()
	require.NoError(t, err)
	assert.Equal(t, AddressOf(devKey), deployer)

	balance, err := backend.(*devChain).BalanceAt(ctx, deployer, nil)
	require.NoError(t, err)
	assert.Zero(t, devAccountBalance.Cmp(balance))

	opts, err := conn.TransactOpts(ctx)
	require.NoError(t, err)
	assert.Equal(t, deployer, opts.From)
	assert.Equal(t, ctx, opts.Context)

	require.NoError(t, conn.Close())
	_, err = conn.Backend()
	assert.ErrorIs(t, err, domain.ErrNotConnected)
	assert.NoError(t, conn.Close())
}

func TestConnection_ChainIDMismatch(t *testing.T) {
	cfg := inProcessConfig(t.TempDir())
	cfg.Network.ChainID = 1
	conn := NewConnection(cfg, discardLogger())

	err := conn.Connect(context.Background())
	assert.ErrorIs(t, err, domain.ErrChainIDMismatch)
	assert.Contains(t, err.Error(), "expected 1, got 1337")
}

func TestConnection_RemoteNetworkRequiresKey(t *testing.T) {
	cfg := &config.RuntimeConfig{
		Network: &config.Network{Name: "sepolia", RPCURL: "http://127.0.0.1:1", ChainID: 11155111},
	}
	conn := NewConnection(cfg, discardLogger())

	err := conn.Connect(context.Background())
	assert.ErrorIs(t, err, domain.ErrMissingPrivateKey)
}

func TestConnection_Unreachable(t *testing.T) {
	cfg := &config.RuntimeConfig{
		Network: &config.Network{Name: config.LocalhostNetwork, RPCURL: "http://127.0.0.1:1"},
	}
	conn := NewConnection(cfg, discardLogger())

	err := conn.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get chain ID")
}

func TestConnection_NoNetwork(t *testing.T) {
	conn := NewConnection(&config.RuntimeConfig{}, discardLogger())
	assert.ErrorIs(t, conn.Connect(context.Background()), domain.ErrUnknownNetwork)
}

func TestParsePrivateKey(t *testing.T) {
	withPrefix, err := ParsePrivateKey("0x" + DevPrivateKey)
	require.NoError(t, err)
	without, err := ParsePrivateKey(DevPrivateKey)
	require.NoError(t, err)

	assert.Equal(t, AddressOf(withPrefix), AddressOf(without))
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", AddressOf(without).Hex())

	_, err = ParsePrivateKey("not-a-key")
	assert.Error(t, err)
}

func TestDeployerKey(t *testing.T) {
	t.Run("explicit key wins", func(t *testing.T) {
		key, err := deployerKey(&config.RuntimeConfig{
			PrivateKey: "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
			Network:    &config.Network{Name: "sepolia", RPCURL: "https://rpc.sepolia.org"},
		})
		require.NoError(t, err)
		assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", AddressOf(key).Hex())
	})

	t.Run("localhost falls back to dev account", func(t *testing.T) {
		key, err := deployerKey(&config.RuntimeConfig{
			Network: &config.Network{Name: config.LocalhostNetwork, RPCURL: "http://127.0.0.1:8545"},
		})
		require.NoError(t, err)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", AddressOf(key).Hex())
	})
}
