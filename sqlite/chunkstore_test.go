package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/mwestrik/siteqa"
	"github.com/mwestrik/siteqa/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testChunk(sourceURL string, index int, text string) *siteqa.Chunk {
	return &siteqa.Chunk{
		ID:         siteqa.ChunkID(sourceURL, index),
		Text:       text,
		SourceURL:  sourceURL,
		Title:      "Test Page",
		ChunkIndex: index,
		CharStart:  index * 700,
		CharEnd:    index*700 + len(text),
	}
}

func TestChunkStore_Upsert_and_Query(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testChunk("https://example.com/a", 0, "about dogs"), []float32{1, 0, 0}))
	require.NoError(t, store.Upsert(ctx, testChunk("https://example.com/b", 0, "about cats"), []float32{0, 1, 0}))
	require.NoError(t, store.Upsert(ctx, testChunk("https://example.com/c", 0, "about birds"), []float32{0.9, 0.1, 0}))

	results, err := store.Query(ctx, []float32{1, 0, 0}, 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "about dogs", results[0].Text)
	assert.InDelta(t, 0, results[0].Distance, 1e-9)
	assert.Equal(t, "about birds", results[1].Text)
	assert.Less(t, results[0].Distance, results[1].Distance)
	assert.Equal(t, "https://example.com/a", results[0].SourceURL)
	assert.Equal(t, "Test Page", results[0].Title)
}

func TestChunkStore_Upsert_is_idempotent_per_chunk_ID(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t))
	ctx := context.Background()

	chunk := testChunk("https://example.com/page", 0, "first version")
	require.NoError(t, store.Upsert(ctx, chunk, []float32{1, 0}))

	chunk.Text = "second version"
	require.NoError(t, store.Upsert(ctx, chunk, []float32{0, 1}))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Chunks)

	results, err := store.Query(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "second version", results[0].Text)
}

func TestChunkStore_Query_returns_at_most_topK(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t))
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		url := fmt.Sprintf("https://example.com/p%d", i)
		require.NoError(t, store.Upsert(ctx, testChunk(url, 0, fmt.Sprintf("text %d", i)), []float32{float32(i), 1}))
	}

	results, err := store.Query(ctx, []float32{1, 1}, 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = store.Query(ctx, []float32{1, 1}, 100)
	require.NoError(t, err)
	assert.Len(t, results, 10, "topK above store size returns everything")
}

func TestChunkStore_Query_orders_by_ascending_distance(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t))
	ctx := context.Background()

	vectors := [][]float32{{0, 1}, {1, 0}, {0.5, 0.5}, {0.9, 0.1}}
	for i, v := range vectors {
		url := fmt.Sprintf("https://example.com/p%d", i)
		require.NoError(t, store.Upsert(ctx, testChunk(url, 0, fmt.Sprintf("text %d", i)), v))
	}

	results, err := store.Query(ctx, []float32{1, 0}, 4)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i].Distance, results[i-1].Distance)
	}
	assert.Equal(t, "text 1", results[0].Text)
}

func TestChunkStore_Query_rejects_invalid_arguments(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t))
	ctx := context.Background()

	_, err := store.Query(ctx, []float32{1, 0}, 0)
	require.Error(t, err)
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))

	_, err = store.Query(ctx, nil, 5)
	require.Error(t, err)
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))
}

func TestChunkStore_Query_detects_dimension_mismatch(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testChunk("https://example.com/a", 0, "text"), []float32{1, 0, 0}))

	_, err := store.Query(ctx, []float32{1, 0}, 1)
	require.Error(t, err)
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))
}

func TestChunkStore_Query_on_empty_store_returns_no_results(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t))

	results, err := store.Query(context.Background(), []float32{1, 0}, 5)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestChunkStore_Upsert_rejects_invalid_chunk(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t))
	ctx := context.Background()

	err := store.Upsert(ctx, &siteqa.Chunk{Text: "no id"}, []float32{1})
	require.Error(t, err)
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))

	err = store.Upsert(ctx, testChunk("https://example.com/a", 0, "text"), nil)
	require.Error(t, err)
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))
}

func TestChunkStore_Reset_clears_all_chunks(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, testChunk("https://example.com/a", 0, "text"), []float32{1, 0}))
	require.NoError(t, store.Upsert(ctx, testChunk("https://example.com/a", 1, "more"), []float32{0, 1}))

	require.NoError(t, store.Reset(ctx))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Chunks)
}

func TestChunkStore_preserves_embedding_roundtrip(t *testing.T) {
	t.Parallel()

	store := sqlite.NewChunkStore(mustOpenDB(t))
	ctx := context.Background()

	v := []float32{0.123456, -0.987654, 3.14159, -2.71828}
	require.NoError(t, store.Upsert(ctx, testChunk("https://example.com/a", 0, "text"), v))

	// Querying with the same vector must give distance 0 within float
	// precision, which only holds if the stored vector survived intact.
	results, err := store.Query(ctx, v, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 0, results[0].Distance, 1e-6)
}
