package siteqa

import "context"

// RetrievedResult is one ranked match from the vector store. Results are
// produced fresh per query and never persisted.
type RetrievedResult struct {
	ChunkID   string  `json:"chunkId"`
	Distance  float64 `json:"distance"`
	SourceURL string  `json:"sourceUrl"`
	Title     string  `json:"title"`
	Text      string  `json:"text"`
}

// StoreStats describes the state of a vector store.
type StoreStats struct {
	Chunks int `json:"chunks"`
}

// VectorStore persists chunk vectors and answers similarity queries.
type VectorStore interface {
	// Upsert stores a chunk and its vector. Upsert is idempotent per
	// chunk ID: re-ingesting a page overwrites, never duplicates.
	Upsert(ctx context.Context, chunk *Chunk, vector []float32) error

	// Query returns up to topK results ordered ascending by distance
	// (lower is more similar), ties broken by insertion order.
	Query(ctx context.Context, vector []float32, topK int) ([]RetrievedResult, error)

	// Stats returns store statistics.
	Stats(ctx context.Context) (*StoreStats, error)

	// Reset removes all stored chunks.
	Reset(ctx context.Context) error
}
