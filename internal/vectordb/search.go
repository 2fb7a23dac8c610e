package vectordb

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as human-readable text. Used by the
// query command for debugging the index; the chat pipeline builds its own
// context blocks.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("--- Result %d (similarity: %.4f) ---\n", i+1, r.Similarity))

		if r.Document.Metadata.Name != "" {
			sb.WriteString(fmt.Sprintf("Movie: %s\n", r.Document.Metadata.Name))
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
		if r.Document.Metadata.URL != "" {
			sb.WriteString(fmt.Sprintf("URL: %s\n", r.Document.Metadata.URL))
		}

		sb.WriteString("\n")
		sb.WriteString(r.Document.Content)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
