package main

import (
	"fmt"

	"github.com/mwestrik/siteqa"
	"github.com/mwestrik/siteqa/ingest"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	task := &siteqa.CrawlTask{
		BaseURL:          c.URL,
		MaxPages:         c.MaxPages,
		MaxDepth:         c.MaxDepth,
		MaxCharsPerChunk: c.ChunkSize,
		ChunkOverlap:     c.Overlap,
	}
	if err := task.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	deps.Pipeline.Progress = func(ev ingest.ProgressEvent) {
		if ev.Message != "" {
			fmt.Fprintf(deps.Stdout, "%s: %d\n", ev.Message, ev.Done)
		}
	}

	result, err := deps.Pipeline.Run(deps.Ctx, task)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "run %s: %d pages, %d chunks indexed\n",
		result.RunID, result.PagesCrawled, result.ChunksCreated)
	for _, u := range result.FailedURLs {
		fmt.Fprintf(deps.Stdout, "failed: %s\n", u)
	}
	return nil
}
