package graphgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/soundprediction/graphgen/pkg/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage graphgen configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long: `Write a default config file.

Writes to the given path, or to $HOME/.graphgen.yaml when no path is
given. Refuses to overwrite an existing file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		path = filepath.Join(home, ".graphgen.yaml")
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Println("Wrote default config to", path)
	return nil
}
