package chains

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLookup(t *testing.T) {
	c := DefaultCatalog()

	n, err := c.Lookup("ethereum")
	require.NoError(t, err)
	assert.Equal(t, EVM, n.Family)
	assert.Equal(t, "1", n.ChainID)
	assert.Equal(t, "latest", n.LatestMarker())

	alias, err := c.Lookup("ETH")
	require.NoError(t, err)
	assert.Equal(t, "ethereum", alias.ID)

	sol, err := c.Lookup("solana")
	require.NoError(t, err)
	assert.Equal(t, Solana, sol.Family)
	assert.Equal(t, "finalized", sol.LatestMarker())
}

func TestLookupUnknown(t *testing.T) {
	_, err := DefaultCatalog().Lookup("nochain")
	assert.True(t, errors.Is(err, ErrUnknownNetwork))
}

func TestListSorted(t *testing.T) {
	list := DefaultCatalog().List()
	require.Len(t, list, len(DefaultNetworks))
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name     string
		networks []Network
	}{
		{"missing id", []Network{{Family: EVM, RPCURL: "http://x"}}},
		{"bad family", []Network{{ID: "x", Family: "btc", RPCURL: "http://x"}}},
		{"no endpoint", []Network{{ID: "x", Family: EVM}}},
		{"duplicate id", []Network{
			{ID: "x", Family: EVM, RPCURL: "http://x"},
			{ID: "X", Family: EVM, RPCURL: "http://y"},
		}},
		{"alias collides", []Network{
			{ID: "x", Family: EVM, RPCURL: "http://x"},
			{ID: "y", Family: EVM, RPCURL: "http://y", Aliases: []string{"x"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.networks)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverridesEndpoint(t *testing.T) {
	t.Setenv("RPCWATCH_RPC_URL_SOLANA_DEVNET", "http://127.0.0.1:8899")
	n, err := DefaultCatalog().Lookup("solana-devnet")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8899", n.RPCURL)
}

func TestLoadCatalogOverridesAndExtends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chains.yaml")
	content := `networks:
  - id: ethereum
    name: Ethereum via local node
    family: evm
    chain_id: "1"
    rpc_url: http://localhost:8545
  - id: anvil
    name: Local Anvil
    family: evm
    chain_id: "31337"
    rpc_url: http://localhost:8546
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultNetworks)+1, c.Len())

	eth, err := c.Lookup("ethereum")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8545", eth.RPCURL)

	// The override replaces the built-in entry, aliases included.
	_, err = c.Lookup("eth")
	assert.Error(t, err)

	anvil, err := c.Lookup("anvil")
	require.NoError(t, err)
	assert.Equal(t, "31337", anvil.ChainID)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	c, err := LoadCatalog(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, len(DefaultNetworks), c.Len())
}

func TestLoadCatalogInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chains.yaml")
	require.NoError(t, os.WriteFile(path, []byte("networks: {{{"), 0644))
	_, err := LoadCatalog(path)
	assert.Error(t, err)
}
