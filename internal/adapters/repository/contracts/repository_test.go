package contracts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
	"github.com/ateett12ue/dryp-contracts/internal/domain/config"
)

const hardhatArtifact = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "Treasury",
  "sourceName": "contracts/Treasury.sol",
  "abi": [{"type":"function","name":"initialize","inputs":[],"outputs":[],"stateMutability":"nonpayable"}],
  "bytecode": "0x6080604052",
  "deployedBytecode": "0x6080",
  "linkReferences": {},
  "deployedLinkReferences": {}
}`

const foundryArtifact = `{
  "abi": [{"type":"constructor","inputs":[{"name":"implementation","type":"address"},{"name":"_data","type":"bytes"}]}],
  "bytecode": {"object": "0x60806040", "sourceMap": "", "linkReferences": {}},
  "deployedBytecode": {"object": "0x6080"},
  "metadata": {
    "compiler": {"version": "0.8.24+commit.e11b9ed9"},
    "settings": {"compilationTarget": {"lib/openzeppelin/contracts/proxy/ERC1967/ERC1967Proxy.sol": "ERC1967Proxy"}}
  }
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "artifacts", "contracts", "Treasury.sol", "Treasury.json"), hardhatArtifact)
	writeFile(t, filepath.Join(root, "artifacts", "contracts", "Treasury.sol", "Treasury.dbg.json"), `{"buildInfo":"x"}`)
	writeFile(t, filepath.Join(root, "artifacts", "build-info", "abc.json"), `{"abi":[{"type":"fallback"}]}`)
	writeFile(t, filepath.Join(root, "out", "ERC1967Proxy.sol", "ERC1967Proxy.json"), foundryArtifact)

	cfg := &config.RuntimeConfig{
		ProjectRoot: root,
		Project:     &config.ProjectConfig{Paths: config.PathsConfig{Artifacts: "artifacts"}},
	}
	return NewRepositoryFromConfig(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRepository_GetArtifact(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	t.Run("hardhat artifact with string bytecode", func(t *testing.T) {
		artifact, err := repo.GetArtifact(ctx, "Treasury")
		require.NoError(t, err)

		code, err := artifact.CreationCode()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, code)
		assert.Equal(t, "contracts/Treasury.sol:Treasury", artifact.FullyQualifiedName())

		parsed, err := artifact.ParsedABI()
		require.NoError(t, err)
		assert.Contains(t, parsed.Methods, "initialize")
	})

	t.Run("foundry artifact with bytecode object", func(t *testing.T) {
		artifact, err := repo.GetArtifact(ctx, domain.ProxyArtifact)
		require.NoError(t, err)

		assert.Equal(t, "0.8.24+commit.e11b9ed9", artifact.CompilerVersion())
		assert.Equal(t, "lib/openzeppelin/contracts/proxy/ERC1967/ERC1967Proxy.sol:ERC1967Proxy", artifact.FullyQualifiedName())

		parsed, err := artifact.ParsedABI()
		require.NoError(t, err)
		assert.Len(t, parsed.Constructor.Inputs, 2)
	})

	t.Run("fully qualified lookup", func(t *testing.T) {
		artifact, err := repo.GetArtifact(ctx, "contracts/Treasury.sol:Treasury")
		require.NoError(t, err)
		assert.Equal(t, "Treasury", artifact.ContractName)
	})

	t.Run("missing artifact suggests close names", func(t *testing.T) {
		_, err := repo.GetArtifact(ctx, "Tresury")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var notFound domain.ArtifactNotFoundErr
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, notFound.Suggestions, "Treasury")
	})

	t.Run("debug and build-info files are skipped", func(t *testing.T) {
		assert.Equal(t, []string{"ERC1967Proxy", "Treasury"}, repo.Names())
	})
}

const openZeppelinProxyArtifact = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "ERC1967Proxy",
  "sourceName": "contracts/proxy/ERC1967/ERC1967Proxy.sol",
  "abi": [{"type":"constructor","stateMutability":"payable","inputs":[{"name":"_logic","type":"address"},{"name":"_data","type":"bytes"}]}],
  "bytecode": "0x608060405260",
  "deployedBytecode": "0x6080",
  "linkReferences": {},
  "deployedLinkReferences": {}
}`

func TestRepository_OpenZeppelinPackageArtifacts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "artifacts", "contracts", "DRYP.sol", "DRYP.json"),
		`{"contractName":"DRYP","sourceName":"contracts/DRYP.sol","abi":[],"bytecode":"0x6080"}`)
	writeFile(t, filepath.Join(root, filepath.FromSlash(OpenZeppelinBuildDir), "ERC1967Proxy.json"), openZeppelinProxyArtifact)

	cfg := &config.RuntimeConfig{
		ProjectRoot: root,
		Project:     &config.ProjectConfig{Paths: config.PathsConfig{Artifacts: "artifacts"}},
	}
	repo := NewRepositoryFromConfig(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := repo.GetArtifact(context.Background(), "DRYP")
	require.NoError(t, err)

	proxy, err := repo.GetArtifact(context.Background(), domain.ProxyArtifact)
	require.NoError(t, err)

	code, err := proxy.CreationCode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52, 0x60}, code)
	assert.Equal(t, "contracts/proxy/ERC1967/ERC1967Proxy.sol:ERC1967Proxy", proxy.FullyQualifiedName())

	parsed, err := proxy.ParsedABI()
	require.NoError(t, err)
	assert.Len(t, parsed.Constructor.Inputs, 2)
}

func TestRepository_ProjectArtifactWinsOverPackage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "out", "ERC1967Proxy.sol", "ERC1967Proxy.json"), foundryArtifact)
	writeFile(t, filepath.Join(root, filepath.FromSlash(OpenZeppelinBuildDir), "ERC1967Proxy.json"), openZeppelinProxyArtifact)

	cfg := &config.RuntimeConfig{ProjectRoot: root, Project: &config.ProjectConfig{}}
	repo := NewRepositoryFromConfig(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	proxy, err := repo.GetArtifact(context.Background(), domain.ProxyArtifact)
	require.NoError(t, err)
	assert.Equal(t, "0.8.24+commit.e11b9ed9", proxy.CompilerVersion())
}
