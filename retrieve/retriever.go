// Package retrieve implements question answering over the vector store:
// ranked chunk retrieval and LLM-backed answers with source attribution.
package retrieve

import (
	"context"
	"sort"
	"strings"

	"github.com/mwestrik/siteqa"
)

// Answer is the result of an Ask call: the generated answer plus the
// source URLs of the chunks it was grounded on.
type Answer struct {
	Answer  string                   `json:"answer"`
	Sources []string                 `json:"sources"`
	Results []siteqa.RetrievedResult `json:"results"`
}

// Retriever answers questions against the vector store. Retrieve returns
// ranked chunks; Ask additionally runs them through the Answerer.
type Retriever struct {
	Embedder siteqa.Embedder
	Store    siteqa.VectorStore
	Answerer siteqa.Answerer
}

// Retrieve embeds the question and returns the topK nearest chunks,
// ascending by cosine distance. Results are deduplicated by chunk ID,
// keeping the lowest distance per chunk, and the order is stable: equal
// distances preserve the store's insertion order.
func (r *Retriever) Retrieve(ctx context.Context, question string, topK int) ([]siteqa.RetrievedResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, siteqa.Errorf(siteqa.EINVALID, "question required")
	}
	if topK <= 0 {
		return nil, siteqa.Errorf(siteqa.EINVALID, "topK must be positive, got %d", topK)
	}

	vectors, err := r.Embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "expected one query vector, got %d", len(vectors))
	}

	results, err := r.Store.Query(ctx, vectors[0], topK)
	if err != nil {
		return nil, err
	}

	return dedupeByChunkID(results), nil
}

// Ask retrieves the topK chunks for question and generates an answer
// grounded on them. Questions with no indexed content return ENOTFOUND
// rather than letting the model answer from nothing.
func (r *Retriever) Ask(ctx context.Context, question string, topK int) (*Answer, error) {
	results, err := r.Retrieve(ctx, question, topK)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, siteqa.Errorf(siteqa.ENOTFOUND, "no indexed content to answer from")
	}

	answer, err := r.Answerer.Generate(ctx, BuildPrompt(results, question))
	if err != nil {
		return nil, err
	}

	return &Answer{
		Answer:  answer,
		Sources: uniqueSources(results),
		Results: results,
	}, nil
}

// dedupeByChunkID collapses duplicate chunk IDs, keeping the lowest
// distance for each, then restores ascending order.
func dedupeByChunkID(results []siteqa.RetrievedResult) []siteqa.RetrievedResult {
	best := make(map[string]int)
	var deduped []siteqa.RetrievedResult

	for _, res := range results {
		if idx, ok := best[res.ChunkID]; ok {
			if res.Distance < deduped[idx].Distance {
				deduped[idx] = res
			}
			continue
		}
		best[res.ChunkID] = len(deduped)
		deduped = append(deduped, res)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Distance < deduped[j].Distance
	})
	return deduped
}

// uniqueSources returns the source URLs of results in rank order, first
// occurrence wins.
func uniqueSources(results []siteqa.RetrievedResult) []string {
	seen := make(map[string]struct{})
	var sources []string
	for _, res := range results {
		if _, ok := seen[res.SourceURL]; ok {
			continue
		}
		seen[res.SourceURL] = struct{}{}
		sources = append(sources, res.SourceURL)
	}
	return sources
}
