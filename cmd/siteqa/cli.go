package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/mwestrik/siteqa"
	"github.com/mwestrik/siteqa/crawl"
	"github.com/mwestrik/siteqa/ingest"
	"github.com/mwestrik/siteqa/retrieve"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DBPath string
	Addr   string

	Store     siteqa.VectorStore
	Embedder  siteqa.Embedder
	Answerer  siteqa.Answerer
	Crawler   *crawl.Crawler
	Pipeline  *ingest.Pipeline
	Retriever *retrieve.Retriever
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP API server"`
	Ingest IngestCmd `cmd:"" help:"Crawl a website and index its content"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about indexed content"`
	Stats  StatsCmd  `cmd:"" help:"Show index statistics"`
	Reset  ResetCmd  `cmd:"" help:"Delete all indexed content"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides SITEQA_ADDR)"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	URL       string `arg:"" help:"Base URL to crawl"`
	MaxPages  int    `default:"50" help:"Maximum pages to crawl"`
	MaxDepth  int    `default:"3" help:"Maximum link depth from the base URL"`
	ChunkSize int    `default:"800" help:"Maximum characters per chunk"`
	Overlap   int    `default:"100" help:"Characters shared between consecutive chunks"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the indexed site"`
	TopK     int    `default:"5" help:"Number of chunks to retrieve"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// ResetCmd is the "reset" subcommand.
type ResetCmd struct {
	Force bool `help:"Confirm deletion"`
}
