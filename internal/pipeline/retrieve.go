package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

// Metadata default sentinels for documents with missing fields.
const (
	unknownMovie     = "Bilinmeyen Film"
	unknownType      = vectordb.DocumentType("bilgi")
	unspecifiedValue = "Belirtilmemiş"
	unratedValue     = "Puanlanmamış"
)

// retrieve queries the vector store with the trimmed message and assembles
// the textual context. A store error propagates; zero results is the
// defined not-found path, distinct from failure.
func (p *Pipeline) retrieve(ctx context.Context, st State) (State, error) {
	query := strings.TrimSpace(st.Message)

	results, err := p.store.Search(ctx, query, p.topK, nil)
	if err != nil {
		return st, fmt.Errorf("movie retrieval: %w", err)
	}

	st.RetrievedDocs = results
	st.Context = BuildContext(results)
	return st, nil
}

// dedupKey identifies a context block; one block per (movie, type) pair.
type dedupKey struct {
	name  string
	dtype vectordb.DocumentType
}

// BuildContext renders retrieval results into the context text fed to the
// grounded generator. Results are kept in relevance order, deduplicated on
// (name, type), and each kept document becomes one fixed-format block.
// With no results the fixed not-found string is returned, so the context
// is never empty.
func BuildContext(results []vectordb.SearchResult) string {
	if len(results) == 0 {
		return NotFoundContext
	}

	seen := make(map[dedupKey]bool)
	var blocks []string

	for _, r := range results {
		meta := r.Document.Metadata

		name := meta.Name
		if name == "" {
			name = unknownMovie
		}
		dtype := meta.Type
		if dtype == "" {
			dtype = unknownType
		}

		key := dedupKey{name: name, dtype: dtype}
		if seen[key] {
			continue
		}
		seen[key] = true

		genre := meta.Genre
		if genre == "" {
			genre = unspecifiedValue
		}
		directors := meta.Directors
		if directors == "" {
			directors = unspecifiedValue
		}
		rating := meta.Rating
		if rating == "" {
			rating = unratedValue
		}

		label := "Kullanıcı Yorumu"
		if dtype == vectordb.DocTypeDesc {
			label = "Açıklama"
		}

		block := fmt.Sprintf("[Film: %s]\nTür: %s\nYönetmen: %s\nPuan: %s\n%s:\n%s\n---",
			name, genre, directors, rating, label, r.Document.Content)
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n")
}
