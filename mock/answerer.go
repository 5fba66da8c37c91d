package mock

import (
	"context"

	"github.com/mwestrik/siteqa"
)

var _ siteqa.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of siteqa.Answerer.
type Answerer struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
}

func (a *Answerer) Generate(ctx context.Context, prompt string) (string, error) {
	return a.GenerateFn(ctx, prompt)
}
