package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/filmrehberi/filmrehberi/internal/mcp"
	"github.com/filmrehberi/filmrehberi/internal/pipeline"
	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing movie search and Q&A tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		store, err := vectordb.NewChromemStore(embedder)
		if err != nil {
			return fmt.Errorf("creating vector store: %w", err)
		}

		dir := vectorDir(cfg)
		if err := store.Load(context.Background(), dir); err != nil {
			// The store may be empty if ingest has not run yet. Stdout is
			// reserved for the MCP protocol, so warnings go to stderr.
			fmt.Fprintf(os.Stderr, "Warning: could not load vector store from %s: %v\n", dir, err)
			fmt.Fprintf(os.Stderr, "Search results will be empty. Run `filmrehberi ingest` first.\n")
		}

		// The Q&A tool needs a completion provider; search works without one.
		var pipe *pipeline.Pipeline
		if provider, err := createLLMProviderFromConfig(cfg); err == nil {
			pipe = pipeline.New(provider, store, cfg)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ask_movies tool disabled: %v\n", err)
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "filmrehberi MCP server started on stdio (documents=%d)\n", store.Count())

		srv := mcpserver.NewServer(store, pipe)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveMCPCmd)
}
