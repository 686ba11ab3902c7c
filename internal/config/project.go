package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
)

// ProjectFile is the name of the project configuration file
const ProjectFile = "dryp.toml"

// loadEnvFiles loads .env and .env.local from the project root. Values
// already present in the process environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadProjectConfig parses dryp.toml and expands ${VAR} references.
// A missing file yields an empty config so the built-in defaults apply.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	cfg := &config.ProjectConfig{Networks: make(map[string]*config.Network)}

	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrConfiguration, ProjectFile, err)
	}

	cfg.Paths.Artifacts = os.ExpandEnv(cfg.Paths.Artifacts)
	cfg.Paths.Deployments = os.ExpandEnv(cfg.Paths.Deployments)
	cfg.Paths.Addresses = os.ExpandEnv(cfg.Paths.Addresses)

	if cfg.Networks == nil {
		cfg.Networks = make(map[string]*config.Network)
	}
	for name, network := range cfg.Networks {
		if network == nil {
			return nil, fmt.Errorf("%w: network %s has no settings", domain.ErrConfiguration, name)
		}
		network.Name = name
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		network.VerifierURL = os.ExpandEnv(network.VerifierURL)
		network.EtherscanKey = os.ExpandEnv(network.EtherscanKey)
	}

	return cfg, nil
}
