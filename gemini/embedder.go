// Package gemini implements the embedding and answer generation services
// on top of the Google Gemini API.
package gemini

import (
	"context"

	"github.com/mwestrik/siteqa"
	"google.golang.org/genai"
)

// EmbeddingModel is the Gemini model used for text embeddings.
const EmbeddingModel = "gemini-embedding-001"

// Ensure Embedder implements siteqa.Embedder at compile time.
var _ siteqa.Embedder = (*Embedder)(nil)

// Embedder implements siteqa.Embedder using the Gemini embedding API.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client, model: EmbeddingModel}
}

// Embed returns one vector per input text, in input order. The whole batch
// goes to the API in a single call, so callers control batch sizing.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, siteqa.Errorf(siteqa.EINVALID, "no texts to embed")
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = &genai.Content{Parts: []*genai.Part{{Text: t}}}
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, siteqa.Errorf(siteqa.EUNAVAILABLE, "embedding request failed: %v", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, siteqa.Errorf(siteqa.EINTERNAL,
			"embedding count mismatch: sent %d texts, got %d vectors", len(texts), embeddingCount(result))
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, siteqa.Errorf(siteqa.EINTERNAL, "empty embedding at index %d", i)
		}
		vectors[i] = emb.Values
	}

	return vectors, nil
}

func embeddingCount(r *genai.EmbedContentResponse) int {
	if r == nil {
		return 0
	}
	return len(r.Embeddings)
}
