package mock

import (
	"context"

	"github.com/mwestrik/siteqa"
)

var _ siteqa.VectorStore = (*VectorStore)(nil)

// VectorStore is a mock implementation of siteqa.VectorStore.
type VectorStore struct {
	UpsertFn func(ctx context.Context, chunk *siteqa.Chunk, vector []float32) error
	QueryFn  func(ctx context.Context, vector []float32, topK int) ([]siteqa.RetrievedResult, error)
	StatsFn  func(ctx context.Context) (*siteqa.StoreStats, error)
	ResetFn  func(ctx context.Context) error
}

func (s *VectorStore) Upsert(ctx context.Context, chunk *siteqa.Chunk, vector []float32) error {
	return s.UpsertFn(ctx, chunk, vector)
}

func (s *VectorStore) Query(ctx context.Context, vector []float32, topK int) ([]siteqa.RetrievedResult, error) {
	return s.QueryFn(ctx, vector, topK)
}

func (s *VectorStore) Stats(ctx context.Context) (*siteqa.StoreStats, error) {
	return s.StatsFn(ctx)
}

func (s *VectorStore) Reset(ctx context.Context) error {
	return s.ResetFn(ctx)
}
