// Package ingest orchestrates the indexing pipeline: crawl a site, chunk
// the extracted text, embed the chunks and upsert them into the vector
// store.
package ingest

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mwestrik/siteqa"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the number of chunks sent per embedding request.
const DefaultBatchSize = 64

// DefaultConcurrency bounds in-flight embedding requests.
const DefaultConcurrency = 4

// Crawler is the crawl dependency of the pipeline.
type Crawler interface {
	Crawl(ctx context.Context, task *siteqa.CrawlTask) ([]*siteqa.CrawledPage, *siteqa.CrawlReport, error)
}

// ProgressEvent reports pipeline progress to an optional callback.
type ProgressEvent struct {
	Stage   string // "crawl", "chunk", "embed", "store"
	Message string
	Done    int
	Total   int
}

// IngestResult summarizes one completed ingestion run.
type IngestResult struct {
	RunID             string   `json:"runId"`
	PagesCrawled      int      `json:"pagesCrawled"`
	ChunksCreated     int      `json:"chunksCreated"`
	EmbeddingsCreated int      `json:"embeddingsCreated"`
	CrawledURLs       []string `json:"crawledUrls"`
	FailedURLs        []string `json:"failedUrls"`
}

// Pipeline wires the ingestion stages together. The crawl stage is
// sequential; embedding runs batched with bounded concurrency; upserts
// are sequential because SQLite has a single writer.
type Pipeline struct {
	Crawler  Crawler
	Embedder siteqa.Embedder
	Store    siteqa.VectorStore

	// BatchSize is chunks per embedding request. Zero means DefaultBatchSize.
	BatchSize int

	// Concurrency bounds parallel embedding requests. Zero means
	// DefaultConcurrency.
	Concurrency int

	// Progress, if set, receives per-stage progress events.
	Progress func(ProgressEvent)

	Logger *slog.Logger
}

// Run executes the full pipeline for task and returns the run summary.
// A failure in any stage aborts the run; the error's code distinguishes
// transient failures (EUNAVAILABLE, worth retrying the run) from permanent
// ones.
func (p *Pipeline) Run(ctx context.Context, task *siteqa.CrawlTask) (*IngestResult, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	p.logf("ingest run started", "run_id", runID, "base_url", task.BaseURL)

	pages, report, err := p.Crawler.Crawl(ctx, task)
	if err != nil {
		return nil, err
	}
	p.progress(ProgressEvent{Stage: "crawl", Message: "crawl complete", Done: len(pages), Total: len(pages)})

	var chunks []siteqa.Chunk
	for _, page := range pages {
		pageChunks, err := siteqa.SplitChunks(page.Text, task.MaxCharsPerChunk, task.ChunkOverlap, page.URL, page.Title)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, pageChunks...)
	}
	p.progress(ProgressEvent{Stage: "chunk", Message: "chunking complete", Done: len(chunks), Total: len(chunks)})

	vectors, err := p.embedAll(ctx, chunks)
	if err != nil {
		return nil, err
	}
	p.progress(ProgressEvent{Stage: "embed", Message: "embedding complete", Done: len(vectors), Total: len(chunks)})

	for i := range chunks {
		if err := p.Store.Upsert(ctx, &chunks[i], vectors[i]); err != nil {
			return nil, err
		}
		p.progress(ProgressEvent{Stage: "store", Done: i + 1, Total: len(chunks)})
	}

	result := &IngestResult{
		RunID:             runID,
		PagesCrawled:      len(pages),
		ChunksCreated:     len(chunks),
		EmbeddingsCreated: len(vectors),
		CrawledURLs:       report.CrawledURLs,
		FailedURLs:        report.FailedURLs,
	}
	p.logf("ingest run finished",
		"run_id", runID,
		"pages", result.PagesCrawled,
		"chunks", result.ChunksCreated,
		"failed_urls", len(result.FailedURLs),
	)
	return result, nil
}

// embedAll embeds chunks in batches with bounded concurrency. The returned
// slice is index-aligned with chunks.
func (p *Pipeline) embedAll(ctx context.Context, chunks []siteqa.Chunk) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	batchSize := p.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	vectors := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		g.Go(func() error {
			texts := make([]string, end-start)
			for i := start; i < end; i++ {
				texts[i-start] = chunks[i].Text
			}

			batch, err := p.Embedder.Embed(gctx, texts)
			if err != nil {
				return err
			}
			if len(batch) != len(texts) {
				return siteqa.Errorf(siteqa.EINTERNAL,
					"embedding count mismatch: sent %d, got %d", len(texts), len(batch))
			}

			// Each goroutine writes a disjoint range of vectors.
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func (p *Pipeline) progress(ev ProgressEvent) {
	if p.Progress != nil {
		p.Progress(ev)
	}
}

func (p *Pipeline) logf(msg string, args ...any) {
	if p.Logger != nil {
		p.Logger.Info(msg, args...)
	}
}
