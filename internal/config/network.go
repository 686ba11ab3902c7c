package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
)

// builtinNetworks are available without a dryp.toml entry. RPCURL and
// EtherscanKey hold ${VAR} references expanded at resolve time.
var builtinNetworks = map[string]config.Network{
	"localhost": {
		Name:    "localhost",
		RPCURL:  "http://127.0.0.1:8545",
		ChainID: 31337,
	},
	"mainnet": {
		Name:         "mainnet",
		RPCURL:       "${ETH_MAINNET_URL}",
		ChainID:      1,
		EtherscanKey: "${ETHERSCAN_API_KEY}",
	},
	"goerli": {
		Name:         "goerli",
		RPCURL:       "${GOERLI_URL}",
		ChainID:      5,
		EtherscanKey: "${ETHERSCAN_API_KEY}",
	},
	"sepolia": {
		Name:         "sepolia",
		RPCURL:       "${SEPOLIA_URL}",
		ChainID:      11155111,
		EtherscanKey: "${ETHERSCAN_API_KEY}",
	},
}

// NetworkResolver resolves network names to configurations
type NetworkResolver struct {
	project *config.ProjectConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	return &NetworkResolver{project: project}
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	if r.project != nil {
		if network, ok := r.project.Networks[networkName]; ok {
			if network.RPCURL == "" {
				return nil, fmt.Errorf("%w: network %s has an empty rpc_url (is the env var set?)", domain.ErrConfiguration, networkName)
			}
			resolved := *network
			resolved.Name = networkName
			if resolved.ExplorerURL == "" && resolved.ChainID != 0 {
				resolved.ExplorerURL = DefaultExplorerURL(resolved.ChainID)
			}
			return &resolved, nil
		}
	}

	if network, ok := builtinNetworks[networkName]; ok {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.EtherscanKey = os.ExpandEnv(network.EtherscanKey)
		if network.RPCURL == "" {
			return nil, fmt.Errorf("%w: network %s needs an rpc url (set it in the environment or in %s)", domain.ErrConfiguration, networkName, ProjectFile)
		}
		if network.ExplorerURL == "" {
			network.ExplorerURL = DefaultExplorerURL(network.ChainID)
		}
		return &network, nil
	}

	return nil, fmt.Errorf("%w: network '%s' not found in %s [networks]", domain.ErrConfiguration, networkName, ProjectFile)
}

// Names returns every resolvable network name, sorted.
func (r *NetworkResolver) Names() []string {
	seen := make(map[string]bool)
	var names []string
	if r.project != nil {
		for name := range r.project.Networks {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range builtinNetworks {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// DefaultExplorerURL returns the block explorer for well known chains
func DefaultExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 5:
		return "https://goerli.etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 80002:
		return "https://amoy.polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 84532:
		return "https://sepolia.basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 421614:
		return "https://sepolia.arbiscan.io"
	case 43114:
		return "https://snowtrace.io"
	case 56:
		return "https://bscscan.com"
	case 97:
		return "https://testnet.bscscan.com"
	case 324:
		return "https://explorer.zksync.io"
	case 300:
		return "https://sepolia.explorer.zksync.io"
	default:
		return ""
	}
}
