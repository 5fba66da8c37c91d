package retrieve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mwestrik/siteqa"
	"github.com/mwestrik/siteqa/mock"
	"github.com/mwestrik/siteqa/retrieve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleVectorEmbedder(v []float32) *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
			return [][]float32{v}, nil
		},
	}
}

func fixedStore(results []siteqa.RetrievedResult) *mock.VectorStore {
	return &mock.VectorStore{
		QueryFn: func(_ context.Context, _ []float32, topK int) ([]siteqa.RetrievedResult, error) {
			if len(results) > topK {
				return results[:topK], nil
			}
			return results, nil
		},
	}
}

func TestRetriever_returns_results_ascending_by_distance(t *testing.T) {
	t.Parallel()

	r := &retrieve.Retriever{
		Embedder: singleVectorEmbedder([]float32{1, 0}),
		Store: fixedStore([]siteqa.RetrievedResult{
			{ChunkID: "a-0", Distance: 0.1, SourceURL: "https://example.com/a", Text: "closest"},
			{ChunkID: "b-0", Distance: 0.3, SourceURL: "https://example.com/b", Text: "middle"},
			{ChunkID: "c-0", Distance: 0.7, SourceURL: "https://example.com/c", Text: "furthest"},
		}),
	}

	results, err := r.Retrieve(context.Background(), "what is this?", 5)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "closest", results[0].Text)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i].Distance, results[i-1].Distance)
	}
}

func TestRetriever_dedupes_by_chunk_ID_keeping_lowest_distance(t *testing.T) {
	t.Parallel()

	r := &retrieve.Retriever{
		Embedder: singleVectorEmbedder([]float32{1, 0}),
		Store: fixedStore([]siteqa.RetrievedResult{
			{ChunkID: "a-0", Distance: 0.2, Text: "first copy"},
			{ChunkID: "b-0", Distance: 0.3, Text: "other"},
			{ChunkID: "a-0", Distance: 0.1, Text: "better copy"},
		}),
	}

	results, err := r.Retrieve(context.Background(), "question", 5)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "better copy", results[0].Text)
	assert.InDelta(t, 0.1, results[0].Distance, 1e-9)
}

func TestRetriever_rejects_invalid_arguments(t *testing.T) {
	t.Parallel()

	r := &retrieve.Retriever{
		Embedder: singleVectorEmbedder([]float32{1}),
		Store:    fixedStore(nil),
	}

	_, err := r.Retrieve(context.Background(), "", 5)
	require.Error(t, err)
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))

	_, err = r.Retrieve(context.Background(), "   ", 5)
	require.Error(t, err)
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))

	_, err = r.Retrieve(context.Background(), "valid", 0)
	require.Error(t, err)
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))
}

func TestRetriever_propagates_embedder_failure(t *testing.T) {
	t.Parallel()

	r := &retrieve.Retriever{
		Embedder: &mock.Embedder{
			EmbedFn: func(context.Context, []string) ([][]float32, error) {
				return nil, siteqa.Errorf(siteqa.EUNAVAILABLE, "embedding service down")
			},
		},
		Store: fixedStore(nil),
	}

	_, err := r.Retrieve(context.Background(), "question", 5)

	require.Error(t, err)
	assert.Equal(t, siteqa.EUNAVAILABLE, siteqa.ErrorCode(err))
}

func TestRetriever_Ask_builds_answer_with_unique_sources(t *testing.T) {
	t.Parallel()

	var gotPrompt string
	r := &retrieve.Retriever{
		Embedder: singleVectorEmbedder([]float32{1, 0}),
		Store: fixedStore([]siteqa.RetrievedResult{
			{ChunkID: "a-0", Distance: 0.1, SourceURL: "https://example.com/a", Title: "Page A", Text: "first chunk"},
			{ChunkID: "a-1", Distance: 0.2, SourceURL: "https://example.com/a", Title: "Page A", Text: "second chunk"},
			{ChunkID: "b-0", Distance: 0.3, SourceURL: "https://example.com/b", Title: "Page B", Text: "third chunk"},
		}),
		Answerer: &mock.Answerer{
			GenerateFn: func(_ context.Context, prompt string) (string, error) {
				gotPrompt = prompt
				return "the answer", nil
			},
		},
	}

	answer, err := r.Ask(context.Background(), "what is this?", 5)

	require.NoError(t, err)
	assert.Equal(t, "the answer", answer.Answer)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, answer.Sources)
	assert.Len(t, answer.Results, 3)

	assert.Contains(t, gotPrompt, "first chunk")
	assert.Contains(t, gotPrompt, "<source>https://example.com/b</source>")
	assert.Contains(t, gotPrompt, "Question: what is this?")
}

func TestRetriever_Ask_returns_not_found_for_empty_store(t *testing.T) {
	t.Parallel()

	r := &retrieve.Retriever{
		Embedder: singleVectorEmbedder([]float32{1, 0}),
		Store:    fixedStore(nil),
		Answerer: &mock.Answerer{
			GenerateFn: func(context.Context, string) (string, error) {
				t.Fatal("answerer should not be called without context")
				return "", nil
			},
		},
	}

	_, err := r.Ask(context.Background(), "anything indexed?", 5)

	require.Error(t, err)
	assert.Equal(t, siteqa.ENOTFOUND, siteqa.ErrorCode(err))
}

func TestRetriever_Ask_propagates_answerer_failure(t *testing.T) {
	t.Parallel()

	r := &retrieve.Retriever{
		Embedder: singleVectorEmbedder([]float32{1, 0}),
		Store: fixedStore([]siteqa.RetrievedResult{
			{ChunkID: "a-0", Distance: 0.1, SourceURL: "https://example.com/a", Text: "chunk"},
		}),
		Answerer: &mock.Answerer{
			GenerateFn: func(context.Context, string) (string, error) {
				return "", siteqa.Errorf(siteqa.EUNAVAILABLE, "model overloaded")
			},
		},
	}

	_, err := r.Ask(context.Background(), "question", 5)

	require.Error(t, err)
	assert.Equal(t, siteqa.EUNAVAILABLE, siteqa.ErrorCode(err))
}

func TestBuildPrompt_falls_back_to_source_for_missing_title(t *testing.T) {
	t.Parallel()

	prompt := retrieve.BuildPrompt([]siteqa.RetrievedResult{
		{ChunkID: "a-0", SourceURL: "https://example.com/untitled", Text: "body"},
	}, "q")

	assert.Contains(t, prompt, "<title>https://example.com/untitled</title>")
}

func TestRetriever_propagates_store_failure(t *testing.T) {
	t.Parallel()

	r := &retrieve.Retriever{
		Embedder: singleVectorEmbedder([]float32{1, 0}),
		Store: &mock.VectorStore{
			QueryFn: func(context.Context, []float32, int) ([]siteqa.RetrievedResult, error) {
				return nil, errors.New("db locked")
			},
		},
	}

	_, err := r.Retrieve(context.Background(), "question", 5)
	require.Error(t, err)
}
