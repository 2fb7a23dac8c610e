package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

// batchSize bounds memory while adding documents to the store; embeddings
// are computed per-document, so batches mostly shape progress reporting.
const batchSize = 250

// ProgressFunc reports ingestion progress (documents stored so far, total).
type ProgressFunc func(current, total int)

// Result summarizes one ingestion run.
type Result struct {
	Movies    int
	Documents int
	Duration  time.Duration
}

// Ingestor builds the movie vector index from the source dataset:
// load -> document assembly -> chunking -> batched embedding -> persist.
type Ingestor struct {
	store      vectordb.VectorStore
	chunkSize  int
	overlap    int
	onProgress ProgressFunc
}

// New creates an Ingestor writing into the given store.
func New(store vectordb.VectorStore) *Ingestor {
	return &Ingestor{
		store:     store,
		chunkSize: defaultChunkSize,
		overlap:   defaultChunkOverlap,
	}
}

// SetProgressFunc sets the progress callback.
func (ing *Ingestor) SetProgressFunc(fn ProgressFunc) {
	ing.onProgress = fn
}

// Run ingests the dataset at datasetPath and persists the store snapshot to
// dataDir.
func (ing *Ingestor) Run(ctx context.Context, datasetPath, dataDir string) (*Result, error) {
	start := time.Now()

	movies, err := LoadMovies(datasetPath)
	if err != nil {
		return nil, err
	}

	docs := ing.BuildDocuments(movies)

	for i := 0; i < len(docs); i += batchSize {
		end := i + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		if err := ing.store.AddDocuments(ctx, docs[i:end]); err != nil {
			return nil, fmt.Errorf("adding documents %d-%d: %w", i, end, err)
		}
		if ing.onProgress != nil {
			ing.onProgress(end, len(docs))
		}
	}

	if err := ing.store.Persist(ctx, dataDir); err != nil {
		return nil, fmt.Errorf("persisting store: %w", err)
	}

	return &Result{
		Movies:    len(movies),
		Documents: len(docs),
		Duration:  time.Since(start),
	}, nil
}

// BuildDocuments converts movies into store documents: one desc document
// per movie plus one document per user review, each split into overlapping
// chunks. Metadata is shared across a movie's documents; reviews addition-
// ally carry the reviewer's rating.
func (ing *Ingestor) BuildDocuments(movies []Movie) []vectordb.Document {
	var docs []vectordb.Document

	for _, movie := range movies {
		meta := vectordb.DocumentMetadata{
			Name:      movie.Name,
			Genre:     string(movie.Genre),
			Directors: string(movie.Directors),
			Rating:    string(movie.Rating.TotalRating),
			URL:       movie.URL,
		}

		if movie.Desc != "" {
			descMeta := meta
			descMeta.Type = vectordb.DocTypeDesc
			for i, chunk := range SplitText(movie.Desc, ing.chunkSize, ing.overlap) {
				docs = append(docs, vectordb.Document{
					ID:       fmt.Sprintf("desc:%s:%d", movie.Name, i),
					Content:  chunk,
					Metadata: descMeta,
				})
			}
		}

		for ri, review := range movie.Reviews {
			if review.Review == "" {
				continue
			}
			reviewMeta := meta
			reviewMeta.Type = vectordb.DocTypeReview
			reviewMeta.UserRating = string(review.Rating)
			for ci, chunk := range SplitText(review.Review, ing.chunkSize, ing.overlap) {
				docs = append(docs, vectordb.Document{
					ID:       fmt.Sprintf("review:%s:%d:%d", movie.Name, ri, ci),
					Content:  chunk,
					Metadata: reviewMeta,
				})
			}
		}
	}

	return docs
}
