package sqlite

import (
	"context"
	"encoding/binary"
	"math"
	"sort"
	"time"

	"github.com/mwestrik/siteqa"
)

// Compile-time interface verification.
var _ siteqa.VectorStore = (*ChunkStore)(nil)

// ChunkStore implements siteqa.VectorStore using SQLite. Embeddings are
// stored as little-endian float32 BLOBs and similarity search is a
// brute-force scan, which stays comfortably fast at the corpus sizes a
// single-domain crawl produces.
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore.
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// Upsert inserts or replaces a chunk and its embedding. Chunk IDs are
// deterministic per (source URL, index), so re-ingesting a page overwrites
// its previous chunks instead of accumulating duplicates.
func (s *ChunkStore) Upsert(ctx context.Context, chunk *siteqa.Chunk, embedding []float32) error {
	if err := chunk.Validate(); err != nil {
		return err
	}
	if len(embedding) == 0 {
		return siteqa.Errorf(siteqa.EINVALID, "embedding is empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chunks (id, source_url, title, chunk_index, char_start, char_end, overlap_with_previous, text, embedding, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_url = excluded.source_url,
			title = excluded.title,
			chunk_index = excluded.chunk_index,
			char_start = excluded.char_start,
			char_end = excluded.char_end,
			overlap_with_previous = excluded.overlap_with_previous,
			text = excluded.text,
			embedding = excluded.embedding,
			updated_at = excluded.updated_at
	`, chunk.ID, chunk.SourceURL, chunk.Title, chunk.ChunkIndex, chunk.CharStart, chunk.CharEnd,
		chunk.OverlapWithPrevious, chunk.Text, encodeEmbedding(embedding),
		time.Now().UTC().Format(time.RFC3339))

	return err
}

// Query returns the topK chunks nearest to the query embedding by cosine
// distance, ascending. Ties preserve scan order, which follows insertion
// order, so results are deterministic for a fixed store state.
func (s *ChunkStore) Query(ctx context.Context, embedding []float32, topK int) ([]siteqa.RetrievedResult, error) {
	if topK <= 0 {
		return nil, siteqa.Errorf(siteqa.EINVALID, "topK must be positive, got %d", topK)
	}
	if len(embedding) == 0 {
		return nil, siteqa.Errorf(siteqa.EINVALID, "query embedding is empty")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_url, title, text, embedding
		FROM chunks
		ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []siteqa.RetrievedResult
	for rows.Next() {
		var res siteqa.RetrievedResult
		var blob []byte

		if err := rows.Scan(&res.ChunkID, &res.SourceURL, &res.Title, &res.Text, &blob); err != nil {
			return nil, err
		}

		stored, err := decodeEmbedding(blob)
		if err != nil {
			return nil, err
		}
		if len(stored) != len(embedding) {
			return nil, siteqa.Errorf(siteqa.EINVALID,
				"embedding dimension mismatch: query %d, stored %d for chunk %s",
				len(embedding), len(stored), res.ChunkID)
		}

		res.Distance = cosineDistance(embedding, stored)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Stats returns the number of stored chunks.
func (s *ChunkStore) Stats(ctx context.Context) (*siteqa.StoreStats, error) {
	var stats siteqa.StoreStats
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&stats.Chunks)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Reset removes all stored chunks.
func (s *ChunkStore) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks")
	return err
}

// encodeEmbedding packs a float32 vector into a little-endian BLOB.
func encodeEmbedding(v []float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}

// decodeEmbedding unpacks a little-endian BLOB into a float32 vector.
func decodeEmbedding(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "corrupt embedding blob: %d bytes", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v, nil
}

// cosineDistance returns 1 minus the cosine similarity of a and b.
// A zero vector on either side yields the maximum distance of 1.
func cosineDistance(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
