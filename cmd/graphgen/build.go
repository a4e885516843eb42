package graphgen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/soundprediction/graphgen"
	"github.com/soundprediction/graphgen/pkg/config"
	"github.com/soundprediction/graphgen/pkg/export"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Build a knowledge graph from a text document",
	Long: `Build a knowledge graph from a text document.

Reads the document from the given file, or from stdin when no file is
given, and writes the graph to the export directory in the configured
formats (json, csv, parquet).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("out", "", "Export directory (default from config)")
	buildCmd.Flags().StringSlice("format", nil, "Export formats: json, csv, parquet (default from config)")
	buildCmd.Flags().Float64("threshold", 0, "Similarity threshold for entity deduplication")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBuildFlags(cmd, cfg)

	document, err := readDocument(args)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	engine, err := newEngine(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize graphgen: %w", err)
	}
	defer engine.Close()

	result, err := engine.GenerateFromText(cmd.Context(), document)
	if err != nil {
		return fmt.Errorf("graph generation failed: %w", err)
	}

	if err := exportResult(cfg, result); err != nil {
		return err
	}

	fmt.Printf("Run %s: %d nodes, %d edges (%d triplets skipped)\n",
		result.RunID, result.Graph.NumNodes(), result.Graph.NumEdges(), result.Skipped)
	return nil
}

func applyBuildFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("out") {
		cfg.Export.Dir, _ = cmd.Flags().GetString("out")
	}
	if cmd.Flags().Changed("format") {
		cfg.Export.Formats, _ = cmd.Flags().GetStringSlice("format")
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Dedup.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
}

func readDocument(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

// exportResult writes the run's graph and triplets in each configured format.
func exportResult(cfg *config.Config, result *graphgen.Result) error {
	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	for _, format := range cfg.Export.Formats {
		switch format {
		case "json":
			path := filepath.Join(cfg.Export.Dir, fmt.Sprintf("graph_%s.json", result.RunID))
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			if err := export.WriteJSON(f, result.Graph); err != nil {
				f.Close()
				return fmt.Errorf("failed to write graph JSON: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
		case "csv":
			path := filepath.Join(cfg.Export.Dir, fmt.Sprintf("triplets_%s.csv", result.RunID))
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			if err := export.WriteTripletsCSV(f, result.Triplets); err != nil {
				f.Close()
				return fmt.Errorf("failed to write triplets CSV: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
		case "parquet":
			writer, err := export.NewParquetWriter(cfg.Export.Dir)
			if err != nil {
				return fmt.Errorf("failed to create parquet writer: %w", err)
			}
			if err := writer.WriteGraph(result.Graph, result.RunID); err != nil {
				return fmt.Errorf("failed to write parquet graph: %w", err)
			}
			if err := writer.WriteTriplets(result.Triplets, result.RunID); err != nil {
				return fmt.Errorf("failed to write parquet triplets: %w", err)
			}
		default:
			return fmt.Errorf("unsupported export format: %s", format)
		}
	}
	return nil
}
