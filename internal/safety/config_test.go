package safety

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 50, cfg.MaxTransactionsPerBlock)
	assert.Equal(t, 1000, cfg.MaxBlockRange)
	assert.Equal(t, 100, cfg.MaxResponseSizeEstimateKB)
	assert.False(t, cfg.AllowBlocksWithTransactions)
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsNonPositive(t *testing.T) {
	for _, mutate := range []func(*Config){
		func(c *Config) { c.MaxTransactionsPerBlock = 0 },
		func(c *Config) { c.MaxBlockRange = -1 },
		func(c *Config) { c.MaxResponseSizeEstimateKB = 0 },
	} {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.Error(t, cfg.Validate())
	}
}

func TestTightenNeverLoosens(t *testing.T) {
	base := DefaultConfig()

	looser := base.Tighten(Overrides{
		MaxTransactionsPerBlock:     intPtr(500),
		MaxBlockRange:               intPtr(1_000_000),
		MaxResponseSizeEstimateKB:   intPtr(10_000),
		AllowBlocksWithTransactions: boolPtr(true),
	})
	assert.Equal(t, base, looser)

	tighter := base.Tighten(Overrides{
		MaxTransactionsPerBlock:   intPtr(10),
		MaxBlockRange:             intPtr(50),
		MaxResponseSizeEstimateKB: intPtr(20),
	})
	assert.Equal(t, 10, tighter.MaxTransactionsPerBlock)
	assert.Equal(t, 50, tighter.MaxBlockRange)
	assert.Equal(t, 20, tighter.MaxResponseSizeEstimateKB)

	ignored := base.Tighten(Overrides{MaxBlockRange: intPtr(0)})
	assert.Equal(t, base, ignored)
}

func TestTightenDisablesBlocksWithTransactions(t *testing.T) {
	base := DefaultConfig()
	base.AllowBlocksWithTransactions = true
	out := base.Tighten(Overrides{AllowBlocksWithTransactions: boolPtr(false)})
	assert.False(t, out.AllowBlocksWithTransactions)
}

func TestOverrideCanLoosen(t *testing.T) {
	base := DefaultConfig()
	out, err := base.Override(Overrides{
		MaxBlockRange:               intPtr(5000),
		AllowBlocksWithTransactions: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, 5000, out.MaxBlockRange)
	assert.True(t, out.AllowBlocksWithTransactions)
	assert.Equal(t, base.MaxTransactionsPerBlock, out.MaxTransactionsPerBlock)

	// Base value is untouched.
	assert.Equal(t, 1000, base.MaxBlockRange)
}

func TestOverrideRejectsInvalid(t *testing.T) {
	base := DefaultConfig()
	out, err := base.Override(Overrides{MaxBlockRange: intPtr(-3)})
	assert.Error(t, err)
	assert.Equal(t, base, out)
}

func TestOverridesIsZero(t *testing.T) {
	assert.True(t, Overrides{}.IsZero())
	assert.False(t, Overrides{MaxBlockRange: intPtr(1)}.IsZero())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/safety.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safety.yaml")
	content := "max_block_range: 10\nallow_blocks_with_transactions: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, hash, err := LoadConfigWithHash(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxBlockRange)
	assert.True(t, cfg.AllowBlocksWithTransactions)
	// Unspecified fields keep defaults.
	assert.Equal(t, 50, cfg.MaxTransactionsPerBlock)

	h := sha256.Sum256([]byte(content))
	assert.Equal(t, "sha256:"+hex.EncodeToString(h[:]), hash)
}

func TestLoadConfigMissingFileHash(t *testing.T) {
	_, hash, err := LoadConfigWithHash(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	h := sha256.Sum256(nil)
	assert.Equal(t, "sha256:"+hex.EncodeToString(h[:]), hash)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safety.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{not yaml"), 0644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigInvalidCeiling(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safety.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_block_range: 0\n"), 0644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestDefaultConfigYAMLMatchesDefaults(t *testing.T) {
	cfg := Config{}
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigYAML()), &cfg))
	assert.Equal(t, DefaultConfig(), cfg)
}
