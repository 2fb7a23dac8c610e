package vectordb

// DocumentType categorizes the kind of movie content stored in the vector DB.
type DocumentType string

const (
	// DocTypeDesc is a movie's editorial description.
	DocTypeDesc DocumentType = "desc"
	// DocTypeReview is a single user review of a movie.
	DocTypeReview DocumentType = "review"
)

// Document represents a piece of movie content to be stored and searched.
type Document struct {
	ID       string
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata holds structured information about a movie document.
// It is written once during ingestion; the pipeline only reads it.
type DocumentMetadata struct {
	Name       string
	Genre      string
	Directors  string
	Rating     string // aggregate rating for the movie
	URL        string
	Type       DocumentType
	UserRating string // only set for review documents
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document   Document
	Similarity float32
}

// SearchFilter allows narrowing search results by metadata fields.
type SearchFilter struct {
	Type *DocumentType
	Name *string
}
