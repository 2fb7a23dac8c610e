package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

const sampleDataset = `[
  {
    "name": "Avatar",
    "genre": ["Bilim Kurgu", "Macera"],
    "directors": "James Cameron",
    "rating": {"totalRating": 8.1},
    "url": "https://example.com/avatar",
    "desc": "Pandora gezegeninde geçen destansı bir bilim kurgu macerası.",
    "reviews": [
      {"review": "Görsel şölen, mutlaka izleyin.", "rating": 9},
      {"review": "", "rating": 5},
      {"review": "Hikaye tahmin edilebilir ama etkileyici.", "rating": "7.5"}
    ]
  },
  {
    "name": "Esaretin Bedeli",
    "genre": "Dram",
    "directors": ["Frank Darabont"],
    "rating": {"totalRating": "9.3"},
    "url": "https://example.com/esaretin-bedeli",
    "desc": "",
    "reviews": [
      {"review": "Gelmiş geçmiş en iyi film.", "rating": null}
    ]
  }
]`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.json")
	if err := os.WriteFile(path, []byte(sampleDataset), 0644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

// recordingStore captures added documents without embedding anything.
type recordingStore struct {
	docs      []vectordb.Document
	persisted bool
}

func (r *recordingStore) AddDocuments(_ context.Context, docs []vectordb.Document) error {
	r.docs = append(r.docs, docs...)
	return nil
}

func (r *recordingStore) Search(context.Context, string, int, *vectordb.SearchFilter) ([]vectordb.SearchResult, error) {
	return nil, nil
}

func (r *recordingStore) Persist(context.Context, string) error {
	r.persisted = true
	return nil
}

func (r *recordingStore) Load(context.Context, string) error { return nil }
func (r *recordingStore) Count() int                         { return len(r.docs) }

func TestLoadMoviesFlexibleFields(t *testing.T) {
	movies, err := LoadMovies(writeDataset(t))
	if err != nil {
		t.Fatalf("LoadMovies: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}

	avatar := movies[0]
	if string(avatar.Genre) != "Bilim Kurgu, Macera" {
		t.Errorf("genre array not joined: %q", avatar.Genre)
	}
	if string(avatar.Rating.TotalRating) != "8.1" {
		t.Errorf("numeric rating not normalized: %q", avatar.Rating.TotalRating)
	}
	if string(avatar.Reviews[2].Rating) != "7.5" {
		t.Errorf("string user rating lost: %q", avatar.Reviews[2].Rating)
	}

	second := movies[1]
	if string(second.Directors) != "Frank Darabont" {
		t.Errorf("directors array not joined: %q", second.Directors)
	}
	if string(second.Reviews[0].Rating) != "" {
		t.Errorf("null rating should normalize to empty, got %q", second.Reviews[0].Rating)
	}
}

func TestBuildDocuments(t *testing.T) {
	movies, err := LoadMovies(writeDataset(t))
	if err != nil {
		t.Fatalf("LoadMovies: %v", err)
	}

	docs := New(&recordingStore{}).BuildDocuments(movies)

	// Avatar: 1 desc + 2 non-empty reviews. Second movie: no desc + 1 review.
	if len(docs) != 4 {
		t.Fatalf("expected 4 documents, got %d", len(docs))
	}

	var descCount, reviewCount int
	for _, doc := range docs {
		switch doc.Metadata.Type {
		case vectordb.DocTypeDesc:
			descCount++
		case vectordb.DocTypeReview:
			reviewCount++
		default:
			t.Errorf("document %s has no type", doc.ID)
		}
		if doc.Metadata.Name == "" {
			t.Errorf("document %s lost its movie name", doc.ID)
		}
	}
	if descCount != 1 || reviewCount != 3 {
		t.Errorf("expected 1 desc and 3 reviews, got %d and %d", descCount, reviewCount)
	}

	// Review documents carry the reviewer's rating.
	for _, doc := range docs {
		if doc.Metadata.Type == vectordb.DocTypeReview && strings.HasPrefix(doc.ID, "review:Avatar:0:") {
			if doc.Metadata.UserRating != "9" {
				t.Errorf("expected user rating 9, got %q", doc.Metadata.UserRating)
			}
		}
	}
}

func TestRunIngestsAndPersists(t *testing.T) {
	store := &recordingStore{}
	ing := New(store)

	var progressCalls int
	var lastCurrent, lastTotal int
	ing.SetProgressFunc(func(current, total int) {
		progressCalls++
		lastCurrent, lastTotal = current, total
	})

	result, err := ing.Run(context.Background(), writeDataset(t), t.TempDir())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Movies != 2 {
		t.Errorf("expected 2 movies, got %d", result.Movies)
	}
	if result.Documents != 4 {
		t.Errorf("expected 4 documents, got %d", result.Documents)
	}
	if len(store.docs) != 4 {
		t.Errorf("expected 4 stored documents, got %d", len(store.docs))
	}
	if !store.persisted {
		t.Error("expected store snapshot to be persisted")
	}
	if progressCalls == 0 || lastCurrent != lastTotal {
		t.Errorf("progress should end at total: %d/%d after %d calls", lastCurrent, lastTotal, progressCalls)
	}
}

func TestRunMissingDataset(t *testing.T) {
	ing := New(&recordingStore{})
	if _, err := ing.Run(context.Background(), filepath.Join(t.TempDir(), "missing.json"), t.TempDir()); err == nil {
		t.Error("expected error for missing dataset file")
	}
}

func TestSplitTextShortTextSingleChunk(t *testing.T) {
	chunks := SplitText("kısa bir açıklama", 800, 150)
	if len(chunks) != 1 || chunks[0] != "kısa bir açıklama" {
		t.Errorf("unexpected chunks: %#v", chunks)
	}
}

func TestSplitTextEmpty(t *testing.T) {
	if chunks := SplitText("   ", 800, 150); chunks != nil {
		t.Errorf("expected no chunks for blank text, got %#v", chunks)
	}
}

func TestSplitTextLongTextOverlaps(t *testing.T) {
	word := "kelime "
	long := strings.Repeat(word, 300) // ~2100 runes

	chunks := SplitText(long, 800, 150)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > 800 {
			t.Errorf("chunk %d exceeds limit: %d runes", i, n)
		}
		if strings.TrimSpace(chunk) == "" {
			t.Errorf("chunk %d is blank", i)
		}
	}

	// Consecutive chunks share overlapping text.
	tail := chunks[0][len(chunks[0])-20:]
	if !strings.Contains(chunks[1], strings.TrimSpace(tail)) {
		t.Error("expected overlap between consecutive chunks")
	}
}

func TestSplitTextBreaksAtWhitespace(t *testing.T) {
	text := strings.Repeat("uzunca ", 200)
	chunks := SplitText(text, 100, 20)
	for i, chunk := range chunks {
		if strings.Contains(chunk, "uzunc ") || strings.HasSuffix(chunk, "uzunc") {
			t.Errorf("chunk %d cut a word: %q", i, chunk)
		}
	}
}
