package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ateett12ue/dryp-contracts/internal/domain"
)

func executeIn(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)
	t.Setenv("ENV", "")
	t.Setenv("PRIVATE_KEY", "")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dryp.toml"), []byte(`
[paths]
deployments = "deployments"

[networks.sepolia]
rpc_url = "https://rpc.example.org"
chain_id = 11155111
`), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "deployments"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deployments", "initializable-proxy.json"), []byte(`{
  "testnet": {
    "11155111": {
      "initializable-proxy": {
        "Dryp": "0x1111111111111111111111111111111111111111",
        "DrypProxy": "0x2222222222222222222222222222222222222222"
      }
    }
  }
}
`), 0o644))
	return dir
}

func TestRootCmd_CommandTree(t *testing.T) {
	root := NewRootCmd()

	for _, path := range [][]string{
		{"deploy", "sample"},
		{"deploy", "erc20-approval-adapter"},
		{"deploy", "erc20-transfer-adapter"},
		{"deploy", "token"},
		{"deploy", "treasury"},
		{"verify", "token"},
		{"list"},
		{"addresses"},
		{"networks"},
		{"events"},
		{"version"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("network"))
	assert.NotNil(t, root.PersistentFlags().Lookup("non-interactive"))
}

func TestVersionCmd(t *testing.T) {
	out, err := executeIn(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dryp version")
}

func TestListCmd(t *testing.T) {
	dir := writeProject(t)

	out, err := executeIn(t, dir, "list", "--non-interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "DrypProxy")
	assert.Contains(t, out, "0x2222222222222222222222222222222222222222")

	out, err = executeIn(t, dir, "list", "--category", "proxy", "--non-interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "No deployments found")

	_, err = executeIn(t, dir, "list", "--category", "bogus", "--non-interactive")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNetworksCmd(t *testing.T) {
	out, err := executeIn(t, writeProject(t), "networks", "--non-interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "sepolia")
	assert.Contains(t, out, "11155111")
	assert.Contains(t, out, "localhost")
}

func TestDeployCmd_UnknownContract(t *testing.T) {
	_, err := executeIn(t, writeProject(t), "deploy", "tresury", "--non-interactive")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "treasury")
}

func TestDeployCmd_NoNetwork(t *testing.T) {
	_, err := executeIn(t, writeProject(t), "deploy", "token", "--non-interactive")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestVerifyCmd_UnknownNetwork(t *testing.T) {
	_, err := executeIn(t, writeProject(t), "verify", "token", "--network", "nowhere", "--non-interactive")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestParseTxHash(t *testing.T) {
	hash, err := parseTxHash("0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060")
	require.NoError(t, err)
	assert.Equal(t, "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060", hash.Hex())

	_, err = parseTxHash("0x1234")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
