package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Context settings
	Environment string   // ENV, selects the address table and record subtree
	Network     *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Deployer key, hex encoded without requiring the 0x prefix
	PrivateKey string

	// Resolved project file
	Project *ProjectConfig
}

// Network represents network configuration
type Network struct {
	ChainID      uint64 `json:"chainId" toml:"chain_id"`
	Name         string `json:"name" toml:"-"`
	RPCURL       string `json:"rpcUrl" toml:"rpc_url"`
	ExplorerURL  string `json:"explorerUrl,omitempty" toml:"explorer_url"`
	VerifierURL  string `json:"verifierUrl,omitempty" toml:"verifier_url"`
	EtherscanKey string `json:"-" toml:"etherscan_key"`
	// Rollup marks zkSync-style chains that need their own deploy flow
	Rollup bool `json:"rollup,omitempty" toml:"rollup"`
}

// PathsConfig holds project relative locations
type PathsConfig struct {
	Artifacts   string `toml:"artifacts"`
	Deployments string `toml:"deployments"`
	Addresses   string `toml:"addresses"`
}

// CompilerConfig describes the solc settings the contracts were built with.
// Verification uses it when an artifact carries no compiler metadata.
type CompilerConfig struct {
	Version       string `toml:"version"`
	OptimizerRuns int    `toml:"optimizer_runs"`
	ViaIR         *bool  `toml:"via_ir"`
}

// Default compiler settings of the DRYP contracts
const (
	DefaultSolcVersion   = "0.8.2"
	DefaultOptimizerRuns = 1000000
)

// ProjectConfig is the parsed dryp.toml
type ProjectConfig struct {
	Paths    PathsConfig         `toml:"paths"`
	Compiler CompilerConfig      `toml:"compiler"`
	Networks map[string]*Network `toml:"networks"`
}

// CompilerSettings returns the compiler section with defaults filled in.
func (p *ProjectConfig) CompilerSettings() CompilerConfig {
	viaIR := true
	settings := CompilerConfig{Version: DefaultSolcVersion, OptimizerRuns: DefaultOptimizerRuns, ViaIR: &viaIR}
	if p == nil {
		return settings
	}
	if p.Compiler.Version != "" {
		settings.Version = p.Compiler.Version
	}
	if p.Compiler.OptimizerRuns > 0 {
		settings.OptimizerRuns = p.Compiler.OptimizerRuns
	}
	if p.Compiler.ViaIR != nil {
		settings.ViaIR = p.Compiler.ViaIR
	}
	return settings
}

// ArtifactsDir returns the configured artifacts directory, defaulting to "out".
func (p *ProjectConfig) ArtifactsDir() string {
	if p == nil || p.Paths.Artifacts == "" {
		return "out"
	}
	return p.Paths.Artifacts
}

// DeploymentsDir returns the configured deployments directory, defaulting to "deployments".
func (p *ProjectConfig) DeploymentsDir() string {
	if p == nil || p.Paths.Deployments == "" {
		return "deployments"
	}
	return p.Paths.Deployments
}

// AddressesFile returns the optional address table override.
func (p *ProjectConfig) AddressesFile() string {
	if p == nil {
		return ""
	}
	return p.Paths.Addresses
}
