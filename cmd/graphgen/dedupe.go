package graphgen

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/soundprediction/graphgen/pkg/config"
	"github.com/spf13/cobra"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe [mention]...",
	Short: "Deduplicate entity mentions by embedding similarity",
	Long: `Deduplicate entity mentions by embedding similarity.

Mentions are given as arguments, or read one per line from stdin when no
arguments are given. Prints the clusters and their representatives as JSON.`,
	RunE: runDedupe,
}

func init() {
	rootCmd.AddCommand(dedupeCmd)

	dedupeCmd.Flags().Float64("threshold", 0, "Similarity threshold in (0,1]")
}

func runDedupe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Dedup.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}

	mentions, err := readMentions(args)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	engine, err := newEngine(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize graphgen: %w", err)
	}
	defer engine.Close()

	result, err := engine.Deduplicate(cmd.Context(), mentions)
	if err != nil {
		return fmt.Errorf("deduplication failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"representatives": result.Representatives,
		"clusters":        result.Clusters,
	})
}

func readMentions(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var mentions []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			mentions = append(mentions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return mentions, nil
}
