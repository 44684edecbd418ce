package safety

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the numeric ceilings the validators enforce.
// A Config is a value: once built it is never mutated, only replaced.
type Config struct {
	MaxTransactionsPerBlock     int  `yaml:"max_transactions_per_block" json:"max_transactions_per_block"`
	MaxBlockRange               int  `yaml:"max_block_range" json:"max_block_range"`
	MaxResponseSizeEstimateKB   int  `yaml:"max_response_size_estimate_kb" json:"max_response_size_estimate_kb"`
	AllowBlocksWithTransactions bool `yaml:"allow_blocks_with_transactions" json:"allow_blocks_with_transactions"`
}

// Overrides is a partial Config. Nil fields leave the base value alone.
type Overrides struct {
	MaxTransactionsPerBlock     *int  `yaml:"max_transactions_per_block,omitempty" json:"max_transactions_per_block,omitempty"`
	MaxBlockRange               *int  `yaml:"max_block_range,omitempty" json:"max_block_range,omitempty"`
	MaxResponseSizeEstimateKB   *int  `yaml:"max_response_size_estimate_kb,omitempty" json:"max_response_size_estimate_kb,omitempty"`
	AllowBlocksWithTransactions *bool `yaml:"allow_blocks_with_transactions,omitempty" json:"allow_blocks_with_transactions,omitempty"`
}

// DefaultConfig returns the conservative built-in ceilings.
func DefaultConfig() Config {
	return Config{
		MaxTransactionsPerBlock:     50,
		MaxBlockRange:               1000,
		MaxResponseSizeEstimateKB:   100,
		AllowBlocksWithTransactions: false,
	}
}

// Validate rejects non-positive ceilings.
func (c Config) Validate() error {
	if c.MaxTransactionsPerBlock <= 0 {
		return fmt.Errorf("max_transactions_per_block must be > 0, got %d", c.MaxTransactionsPerBlock)
	}
	if c.MaxBlockRange <= 0 {
		return fmt.Errorf("max_block_range must be > 0, got %d", c.MaxBlockRange)
	}
	if c.MaxResponseSizeEstimateKB <= 0 {
		return fmt.Errorf("max_response_size_estimate_kb must be > 0, got %d", c.MaxResponseSizeEstimateKB)
	}
	return nil
}

// Tighten applies only the parts of o that make c stricter. Looser or
// non-positive values are ignored, so the result is never more permissive
// than c.
func (c Config) Tighten(o Overrides) Config {
	out := c
	if v := o.MaxTransactionsPerBlock; v != nil && *v > 0 && *v < out.MaxTransactionsPerBlock {
		out.MaxTransactionsPerBlock = *v
	}
	if v := o.MaxBlockRange; v != nil && *v > 0 && *v < out.MaxBlockRange {
		out.MaxBlockRange = *v
	}
	if v := o.MaxResponseSizeEstimateKB; v != nil && *v > 0 && *v < out.MaxResponseSizeEstimateKB {
		out.MaxResponseSizeEstimateKB = *v
	}
	if v := o.AllowBlocksWithTransactions; v != nil && !*v {
		out.AllowBlocksWithTransactions = false
	}
	return out
}

// Override replaces every field set in o, in either direction. This is
// the only path that can loosen a config and must be an explicit choice
// of the caller. The result is validated.
func (c Config) Override(o Overrides) (Config, error) {
	out := c
	if o.MaxTransactionsPerBlock != nil {
		out.MaxTransactionsPerBlock = *o.MaxTransactionsPerBlock
	}
	if o.MaxBlockRange != nil {
		out.MaxBlockRange = *o.MaxBlockRange
	}
	if o.MaxResponseSizeEstimateKB != nil {
		out.MaxResponseSizeEstimateKB = *o.MaxResponseSizeEstimateKB
	}
	if o.AllowBlocksWithTransactions != nil {
		out.AllowBlocksWithTransactions = *o.AllowBlocksWithTransactions
	}
	if err := out.Validate(); err != nil {
		return c, fmt.Errorf("invalid override: %w", err)
	}
	return out, nil
}

// IsZero reports whether no override field is set.
func (o Overrides) IsZero() bool {
	return o.MaxTransactionsPerBlock == nil && o.MaxBlockRange == nil &&
		o.MaxResponseSizeEstimateKB == nil && o.AllowBlocksWithTransactions == nil
}

// DefaultConfigPath returns ~/.rpcwatch/safety.yaml, or "" when the home
// directory cannot be resolved.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rpcwatch", "safety.yaml")
}

// LoadConfig loads safety configuration from a YAML file.
// Empty path falls back to ~/.rpcwatch/safety.yaml.
// Missing file returns defaults. Invalid YAML or ceilings return an error.
func LoadConfig(path string) (Config, error) {
	cfg, _, err := LoadConfigWithHash(path)
	return cfg, err
}

// LoadConfigWithHash loads safety configuration and returns the SHA-256
// hash of the raw YAML bytes. When no file exists (defaults used), the
// hash is the SHA-256 of empty input.
func LoadConfigWithHash(path string) (Config, string, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	if path == "" {
		return DefaultConfig(), hashBytes(nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), hashBytes(nil), nil
		}
		return Config{}, "", fmt.Errorf("failed to read safety config: %w", err)
	}

	// Start with defaults, YAML overwrites only specified fields
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, "", fmt.Errorf("failed to parse safety config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", fmt.Errorf("invalid safety config %s: %w", path, err)
	}

	return cfg, hashBytes(data), nil
}

func hashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(h[:])
}

// DefaultConfigYAML returns a commented YAML string for init-config.
func DefaultConfigYAML() string {
	return `# rpcwatch safety configuration
# Generated by: rpcwatch init-config
#
# Every blockchain call passes the safety gate before any chain is contacted.
# Unknown RPC methods are allowed; known dangerous methods are validated
# against the ceilings below or blocked outright.

# Upper bound on transactions per block the agent is expected to handle.
max_transactions_per_block: 50

# Largest toBlock - fromBlock span accepted for eth_getLogs.
max_block_range: 1000

# Advisory response-size budget in KB. Reported in telemetry and audit
# entries; never used to block a call.
max_response_size_estimate_kb: 100

# Fetching blocks with full transaction bodies. Even when true, the gate
# still blocks these calls: a block can hold hundreds of transactions.
allow_blocks_with_transactions: false
`
}
