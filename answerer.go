package siteqa

import "context"

// Answerer generates text from a prompt. It is an opaque text-in/text-out
// call; retry and backoff policy belong to the caller.
type Answerer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
