package siteqa

import "context"

// Embedder turns texts into vectors.
type Embedder interface {
	// Embed returns one vector per input text, in input order, with a
	// fixed dimensionality per model. The vector contents are opaque to
	// the caller.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
