package config

import (
	"time"
)

const (
	// DefaultArtifactName is the contract deployed when none is configured
	DefaultArtifactName = "MyEpicNFT"

	// DefaultMethod is the state-mutating method invoked after deployment
	DefaultMethod = "makeAnEpicNFT"

	// InvocationCount is the number of sequential method calls made after deployment
	InvocationCount = 2

	// InProcessNetwork names the ephemeral chain started inside the process
	InProcessNetwork = "hardhat"

	// LocalhostNetwork names a development node listening on the default port
	LocalhostNetwork = "localhost"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and adapters and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot   string
	ArtifactsDirs []string
	Project       *ProjectFile

	// Deployment target
	Network      *Network
	ArtifactName string
	Method       string

	// Deployer account, hex encoded. Empty selects the built-in development account.
	PrivateKey string
	GasLimit   uint64

	// Execution settings
	Debug   bool
	JSON    bool
	YAML    bool
	Timeout time.Duration
}

// Network represents network configuration
type Network struct {
	Name    string `json:"name" yaml:"name"`
	RPCURL  string `json:"rpcUrl,omitempty" yaml:"rpcUrl,omitempty"`
	ChainID uint64 `json:"chainId" yaml:"chainId"`
}

// InProcess reports whether the network is the ephemeral in-process chain
func (n *Network) InProcess() bool {
	return n != nil && n.Name == InProcessNetwork && n.RPCURL == ""
}

// ProjectFile is the decoded nftdeploy.toml
type ProjectFile struct {
	Artifact     string            `toml:"artifact"`
	Method       string            `toml:"method"`
	ArtifactsDir []string          `toml:"artifacts_dir"`
	GasLimit     uint64            `toml:"gas_limit"`
	PrivateKey   string            `toml:"private_key"`
	Network      string            `toml:"network"`
	RpcEndpoints map[string]string `toml:"rpc_endpoints"`
	ChainIDs     map[string]uint64 `toml:"chain_ids"`
}
