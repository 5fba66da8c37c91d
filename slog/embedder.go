package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwestrik/siteqa"
)

// Ensure LoggingEmbedder implements siteqa.Embedder.
var _ siteqa.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with per-batch logging.
type LoggingEmbedder struct {
	next   siteqa.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next siteqa.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.Info("embed",
			"texts", len(texts),
			"vectors", len(vectors),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}
