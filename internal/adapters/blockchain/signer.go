package blockchain

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/nftdeploy/internal/domain"
	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
)

// DevPrivateKey is the first account of the well-known Hardhat/Anvil test
// mnemonic. Local development nodes fund it at genesis.
const DevPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// ParsePrivateKey parses a hex private key with or without the 0x prefix
func ParsePrivateKey(key string) (*ecdsa.PrivateKey, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "0x")
	priv, err := crypto.HexToECDSA(key)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return priv, nil
}

// deployerKey selects the configured key, falling back to the development
// account on local networks only
func deployerKey(cfg *config.RuntimeConfig) (*ecdsa.PrivateKey, error) {
	if cfg.PrivateKey != "" {
		return ParsePrivateKey(cfg.PrivateKey)
	}
	if cfg.Network != nil && (cfg.Network.InProcess() || cfg.Network.Name == config.LocalhostNetwork) {
		return ParsePrivateKey(DevPrivateKey)
	}
	networkName := ""
	if cfg.Network != nil {
		networkName = cfg.Network.Name
	}
	return nil, fmt.Errorf("network %s: %w", networkName, domain.ErrMissingPrivateKey)
}

// newTransactor builds signing options bound to the chain ID
func newTransactor(key *ecdsa.PrivateKey, chainID *big.Int, gasLimit uint64) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.GasLimit = gasLimit
	return opts, nil
}

// AddressOf returns the account address controlled by key
func AddressOf(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}
