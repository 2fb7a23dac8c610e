package ingest

import (
	"strings"
	"unicode"
)

const (
	defaultChunkSize    = 800
	defaultChunkOverlap = 150
)

// SplitText splits text into overlapping chunks of at most chunkSize runes.
// Chunks break at the last whitespace before the limit when possible, so
// words are not cut mid-way. Overlap keeps context across chunk borders.
func SplitText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= chunkSize {
		return []string{string(runes)}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}

		// Prefer breaking at whitespace, scanning back from the limit.
		cut := end
		for cut > start && !unicode.IsSpace(runes[cut-1]) {
			cut--
		}
		if cut == start {
			cut = end // no whitespace in window, hard cut
		}

		chunk := strings.TrimSpace(string(runes[start:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}
