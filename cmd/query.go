package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Semantically search the movie index",
	Long:  `Searches the vector index directly and prints the raw matches. Useful for inspecting what the assistant would retrieve for a question.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().Int("limit", 6, "maximum number of results")
	queryCmd.Flags().String("type", "", "filter by document type: desc, review")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	queryText := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	typeFilter, _ := cmd.Flags().GetString("type")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	if store.Count() == 0 {
		fmt.Println("Vector store is empty. Run `filmrehberi ingest` first.")
		return nil
	}

	var filter *vectordb.SearchFilter
	if typeFilter != "" {
		docType := vectordb.DocumentType(typeFilter)
		filter = &vectordb.SearchFilter{Type: &docType}
	}

	results, err := store.Search(ctx, queryText, limit, filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		return printQueryResultsJSON(results)
	}

	fmt.Print(vectordb.FormatResults(results))
	return nil
}

type queryResultJSON struct {
	Rank       int     `json:"rank"`
	Similarity float64 `json:"similarity"`
	Movie      string  `json:"movie"`
	Type       string  `json:"type"`
	Genre      string  `json:"genre,omitempty"`
	Rating     string  `json:"rating,omitempty"`
	Content    string  `json:"content"`
}

func printQueryResultsJSON(results []vectordb.SearchResult) error {
	out := make([]queryResultJSON, 0, len(results))
	for i, r := range results {
		out = append(out, queryResultJSON{
			Rank:       i + 1,
			Similarity: float64(r.Similarity),
			Movie:      r.Document.Metadata.Name,
			Type:       string(r.Document.Metadata.Type),
			Genre:      r.Document.Metadata.Genre,
			Rating:     r.Document.Metadata.Rating,
			Content:    r.Document.Content,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
