package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rpcwatch/internal/intent"
	"github.com/ppiankov/rpcwatch/internal/safety"
)

type initConfigFlags struct {
	dir   string
	force bool
}

func newInitConfigCmd() *cobra.Command {
	var f initConfigFlags
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Generate default safety.yaml and intents.yaml with comments",
		Long: "Creates ~/.rpcwatch/safety.yaml with the default ceilings and\n" +
			"~/.rpcwatch/intents.yaml with the built-in intent patterns.\n" +
			"Existing files are kept unless --force is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitConfig(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.dir, "dir", "", "Target directory (default ~/.rpcwatch)")
	cmd.Flags().BoolVar(&f.force, "force", false, "Overwrite existing files")
	return cmd
}

func runInitConfig(cmd *cobra.Command, f initConfigFlags) error {
	dir := f.dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".rpcwatch")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	intentsYAML, err := intent.DefaultYAML()
	if err != nil {
		return err
	}

	files := []struct {
		name    string
		content string
	}{
		{"safety.yaml", safety.DefaultConfigYAML()},
		{"intents.yaml", intentsYAML},
	}

	w := cmd.OutOrStdout()
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		if _, err := os.Stat(path); err == nil && !f.force {
			fmt.Fprintf(w, "Kept    %s (exists, use --force to overwrite)\n", path)
			continue
		}
		if err := os.WriteFile(path, []byte(file.content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.name, err)
		}
		fmt.Fprintf(w, "Created %s\n", path)
	}
	return nil
}
