package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rpcwatch/internal/chains"
)

type chainsFlags struct {
	chains string
	family string
	format string
}

func newChainsCmd() *cobra.Command {
	var f chainsFlags
	cmd := &cobra.Command{
		Use:   "chains",
		Short: "List known blockchain networks",
		Long: "Lists the built-in chain catalog merged with ~/.rpcwatch/chains.yaml.\n" +
			"RPC endpoints can be overridden per network with RPCWATCH_RPC_URL_<ID>.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChains(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.chains, "chains", "", "Path to chain catalog YAML")
	cmd.Flags().StringVar(&f.family, "family", "", "Only list this family (evm|solana|sui|cosmos)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "Output format (text|json)")
	return cmd
}

func runChains(cmd *cobra.Command, f chainsFlags) error {
	catalog, err := chains.LoadCatalog(f.chains)
	if err != nil {
		return err
	}

	family := strings.ToLower(f.family)
	networks := []chains.Network{}
	for _, n := range catalog.List() {
		if family != "" && string(n.Family) != family {
			continue
		}
		if resolved, err := catalog.Lookup(n.ID); err == nil {
			n = resolved
		}
		networks = append(networks, n)
	}

	w := cmd.OutOrStdout()
	if f.format == "json" {
		data, err := json.MarshalIndent(networks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal networks: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFAMILY\tCHAIN ID\tLATEST\tNAME")
	for _, n := range networks {
		chainID := n.ChainID
		if chainID == "" {
			chainID = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.ID, n.Family, chainID, n.LatestMarker(), n.Name)
	}
	return tw.Flush()
}
