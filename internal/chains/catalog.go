package chains

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Family groups networks that share an RPC dialect.
type Family string

const (
	EVM    Family = "evm"
	Solana Family = "solana"
	Sui    Family = "sui"
	Cosmos Family = "cosmos"
)

// ErrUnknownNetwork is returned by Lookup for ids not in the catalog.
var ErrUnknownNetwork = errors.New("unknown network")

// Network describes one blockchain the gate can dispatch to.
type Network struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Family   Family   `yaml:"family" json:"family"`
	ChainID  string   `yaml:"chain_id,omitempty" json:"chain_id,omitempty"`
	RPCURL   string   `yaml:"rpc_url" json:"rpc_url"`
	Explorer string   `yaml:"explorer,omitempty" json:"explorer,omitempty"`
	Aliases  []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// LatestMarker returns the block tag that means chain head for the family.
func (n Network) LatestMarker() string {
	if n.Family == Solana {
		return "finalized"
	}
	return "latest"
}

// Catalog is an immutable network registry keyed by lowercase id and alias.
type Catalog struct {
	networks map[string]Network
	index    map[string]string
}

// File is the YAML layout of a catalog override file.
type File struct {
	Networks []Network `yaml:"networks"`
}

// NewCatalog builds a catalog. Ids and aliases must be unique.
func NewCatalog(networks []Network) (*Catalog, error) {
	c := &Catalog{
		networks: make(map[string]Network, len(networks)),
		index:    make(map[string]string, len(networks)),
	}
	for _, n := range networks {
		if err := c.add(n); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DefaultCatalog returns the built-in networks.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultNetworks)
	if err != nil {
		panic(fmt.Sprintf("chains: invalid default catalog: %v", err))
	}
	return c
}

// LoadCatalog reads a YAML override file and layers it over the built-in
// networks; entries with an existing id replace the built-in entry.
// Empty path falls back to ~/.rpcwatch/chains.yaml. Missing file returns
// the defaults.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultCatalog(), nil
		}
		path = filepath.Join(home, ".rpcwatch", "chains.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCatalog(), nil
		}
		return nil, fmt.Errorf("failed to read chain catalog: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse chain catalog: %w", err)
	}

	merged := make([]Network, 0, len(DefaultNetworks)+len(f.Networks))
	overridden := make(map[string]bool, len(f.Networks))
	for _, n := range f.Networks {
		overridden[strings.ToLower(n.ID)] = true
	}
	for _, n := range DefaultNetworks {
		if !overridden[n.ID] {
			merged = append(merged, n)
		}
	}
	merged = append(merged, f.Networks...)

	return NewCatalog(merged)
}

// Lookup resolves a network id or alias, case-insensitively.
// RPCWATCH_RPC_URL_<ID> in the environment replaces the endpoint.
func (c *Catalog) Lookup(id string) (Network, error) {
	key, ok := c.index[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Network{}, fmt.Errorf("%w: %q", ErrUnknownNetwork, id)
	}
	n := c.networks[key]
	if url := os.Getenv(envKey(n.ID)); url != "" {
		n.RPCURL = url
	}
	return n, nil
}

// List returns all networks sorted by id.
func (c *Catalog) List() []Network {
	out := make([]Network, 0, len(c.networks))
	for _, n := range c.networks {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of networks.
func (c *Catalog) Len() int {
	return len(c.networks)
}

func (c *Catalog) add(n Network) error {
	n.ID = strings.ToLower(strings.TrimSpace(n.ID))
	if n.ID == "" {
		return errors.New("chains: network without id")
	}
	switch n.Family {
	case EVM, Solana, Sui, Cosmos:
	default:
		return fmt.Errorf("chains: network %s has unknown family %q", n.ID, n.Family)
	}
	if n.RPCURL == "" {
		return fmt.Errorf("chains: network %s has no rpc_url", n.ID)
	}

	keys := append([]string{n.ID}, n.Aliases...)
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if owner, dup := c.index[k]; dup {
			return fmt.Errorf("chains: %q of %s already used by %s", k, n.ID, owner)
		}
		c.index[k] = n.ID
	}
	c.networks[n.ID] = n
	return nil
}

func envKey(id string) string {
	return "RPCWATCH_RPC_URL_" + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(id))
}
