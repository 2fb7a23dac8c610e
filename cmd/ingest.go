package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/filmrehberi/filmrehberi/internal/ingest"
	"github.com/filmrehberi/filmrehberi/internal/progress"
	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the movie vector index from the source dataset",
	Long: `Reads the movie dataset, splits descriptions and user reviews into
chunks, embeds them, and persists the vector index under the data
directory. Skips the work if an index already exists unless --force
is given.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().Bool("force", false, "rebuild the index even if a snapshot exists")
	ingestCmd.Flags().String("dataset", "", "override the dataset path from config")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	force, _ := cmd.Flags().GetBool("force")
	datasetFlag, _ := cmd.Flags().GetString("dataset")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	datasetPath := cfg.DatasetPath
	if datasetFlag != "" {
		datasetPath = datasetFlag
	}

	dir := vectorDir(cfg)
	if !force {
		if _, err := os.Stat(vectordb.SnapshotPath(dir)); err == nil {
			fmt.Printf("Index already exists at %s. Use --force to rebuild.\n", dir)
			return nil
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if verbose {
		fmt.Printf("Dataset: %s\n", datasetPath)
		fmt.Printf("Embedding provider: %s (%s)\n", cfg.EmbeddingProvider, cfg.EmbeddingModel)
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}

	reporter := progress.NewReporter()
	started := false

	ing := ingest.New(store)
	ing.SetProgressFunc(func(current, total int) {
		if !started {
			reporter.Start(total)
			started = true
		}
		reporter.Update(current, fmt.Sprintf("Indexing %d/%d", current, total))
	})

	result, err := ing.Run(ctx, datasetPath, dir)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	reporter.Finish()

	fmt.Printf("Indexed %d documents from %d movies in %s\n", result.Documents, result.Movies, result.Duration.Round(time.Millisecond))
	fmt.Printf("Snapshot written to %s\n", dir)
	return nil
}
