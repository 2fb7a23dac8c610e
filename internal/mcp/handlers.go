package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

// handleSearchMovies performs semantic search over the movie vector store.
func (s *Server) handleSearchMovies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 6)
	if limit <= 0 {
		limit = 6
	}

	var filter *vectordb.SearchFilter
	if typeStr := request.GetString("type_filter", ""); typeStr != "" {
		docType := vectordb.DocumentType(typeStr)
		filter = &vectordb.SearchFilter{Type: &docType}
	}

	results, err := s.store.Search(ctx, query, limit, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The movie dataset may not be ingested yet. Run `filmrehberi ingest` to index it."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleAskMovies runs a single turn through the full recommendation pipeline.
func (s *Server) handleAskMovies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}
	if s.pipe == nil {
		return mcp.NewToolResultError("no completion provider configured; run `filmrehberi init` first"), nil
	}

	st, err := s.pipe.Ask(ctx, question, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pipeline failed: %v", err)), nil
	}

	return mcp.NewToolResultText(st.FinalText()), nil
}

// formatSearchResults converts search results into a rich text format
// optimized for AI agent consumption.
func formatSearchResults(results []vectordb.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))

		if r.Document.Metadata.Name != "" {
			sb.WriteString(fmt.Sprintf("Film: %s\n", r.Document.Metadata.Name))
		}
		if r.Document.Metadata.Type != "" {
			sb.WriteString(fmt.Sprintf("Type: %s\n", r.Document.Metadata.Type))
		}
		if r.Document.Metadata.Genre != "" {
			sb.WriteString(fmt.Sprintf("Genre: %s\n", r.Document.Metadata.Genre))
		}
		if r.Document.Metadata.Rating != "" {
			sb.WriteString(fmt.Sprintf("Rating: %s\n", r.Document.Metadata.Rating))
		}
		sb.WriteString(fmt.Sprintf("Similarity: %.1f%%\n", r.Similarity*100))

		sb.WriteString("\n")
		sb.WriteString(r.Document.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}
