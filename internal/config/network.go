package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/nftdeploy/internal/domain"
	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
)

const (
	localhostRPCURL  = "http://127.0.0.1:8545"
	localhostChainID = 31337
)

// NetworkResolver resolves network names against the project's
// [rpc_endpoints] and the built-in development networks
type NetworkResolver struct {
	endpoints map[string]string
	chainIDs  map[string]uint64
}

// NewNetworkResolver creates a new network resolver. file may be nil.
func NewNetworkResolver(file *config.ProjectFile) *NetworkResolver {
	r := &NetworkResolver{
		endpoints: map[string]string{},
		chainIDs:  map[string]uint64{},
	}
	if file != nil {
		for name, url := range file.RpcEndpoints {
			r.endpoints[name] = url
		}
		for name, id := range file.ChainIDs {
			r.chainIDs[name] = id
		}
	}
	return r
}

// GetNetworks returns the built-in and configured network names, sorted
func (r *NetworkResolver) GetNetworks() []string {
	names := lo.Uniq(append([]string{config.InProcessNetwork, config.LocalhostNetwork}, lo.Keys(r.endpoints)...))
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration. Configured endpoints
// take precedence over built-ins, then <NAME>_RPC_URL, then raw URLs.
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	if networkName == "" {
		networkName = config.InProcessNetwork
	}

	if raw, ok := r.endpoints[networkName]; ok {
		url, missing, ok := expandEnv(raw)
		if !ok {
			return nil, fmt.Errorf("rpc endpoint for %s references unset variable %s", networkName, missing)
		}
		if url == "" {
			return nil, fmt.Errorf("rpc endpoint for %s is empty", networkName)
		}
		return &config.Network{
			Name:    networkName,
			RPCURL:  url,
			ChainID: r.chainID(networkName),
		}, nil
	}

	switch networkName {
	case config.InProcessNetwork:
		return &config.Network{Name: config.InProcessNetwork, ChainID: r.chainIDs[networkName]}, nil
	case config.LocalhostNetwork:
		return &config.Network{Name: config.LocalhostNetwork, RPCURL: localhostRPCURL, ChainID: r.chainID(networkName)}, nil
	}

	if url, ok := lookupEnvURL(GenerateEnvVarName(networkName)); ok {
		return &config.Network{Name: networkName, RPCURL: url, ChainID: r.chainIDs[networkName]}, nil
	}

	if isRPCURL(networkName) {
		return &config.Network{Name: networkName, RPCURL: networkName}, nil
	}

	return nil, fmt.Errorf("%w: %s (available: %s)", domain.ErrUnknownNetwork, networkName, strings.Join(r.GetNetworks(), ", "))
}

// chainID returns the configured chain ID, or the well-known one for localhost
func (r *NetworkResolver) chainID(networkName string) uint64 {
	if id, ok := r.chainIDs[networkName]; ok {
		return id
	}
	if networkName == config.LocalhostNetwork {
		return localhostChainID
	}
	return 0
}

func lookupEnvURL(name string) (string, bool) {
	url, _, ok := expandEnv("${" + name + "}")
	return url, ok && url != ""
}

func isRPCURL(s string) bool {
	for _, scheme := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(s, scheme) {
			return true
		}
	}
	return false
}
