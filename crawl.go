package siteqa

import (
	"context"
	"net/url"
)

// CrawlTask describes one crawl request. It is immutable for the duration
// of a crawl.
type CrawlTask struct {
	BaseURL          string `json:"baseUrl"`
	MaxPages         int    `json:"maxPages"`
	MaxDepth         int    `json:"maxDepth"`
	MaxCharsPerChunk int    `json:"maxCharsPerChunk"`
	ChunkOverlap     int    `json:"chunkOverlap"`
}

// Validate returns an error if the task parameters are invalid.
// Invalid parameters are fatal and never retried.
func (t *CrawlTask) Validate() error {
	u, err := url.Parse(t.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "base URL must be an absolute http(s) URL")
	}
	if t.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be positive")
	}
	if t.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must be non-negative")
	}
	if t.MaxCharsPerChunk <= 0 {
		return Errorf(EINVALID, "max chars per chunk must be positive")
	}
	if t.ChunkOverlap < 0 || t.ChunkOverlap >= t.MaxCharsPerChunk {
		return Errorf(EINVALID, "chunk overlap must be non-negative and smaller than max chars per chunk")
	}
	return nil
}

// CrawledPage is one successfully fetched and extracted page. Pages are
// created on fetch+extract and discarded after chunking; chunks carry
// copies of SourceURL and Title instead of a back-reference.
type CrawledPage struct {
	URL   string
	Depth int
	Title string
	// RawHTML is the page as fetched, kept only for link discovery.
	RawHTML string
	// Text is the extracted clean text with markup and noise removed.
	Text string
}

// CrawlReport summarizes a finished crawl.
type CrawlReport struct {
	// CrawledURLs lists pages that were fetched and extracted, in crawl order.
	CrawledURLs []string
	// FailedURLs lists pages that failed to fetch or yielded no text.
	// Per-page failures never abort the crawl.
	FailedURLs []string
}

// FrontierEntry is a discovered URL awaiting traversal. Depth is the
// shortest known distance from the base URL at time of enqueue.
type FrontierEntry struct {
	URL   string
	Depth int
}

// URLFrontier manages the crawl queue with deduplication.
type URLFrontier interface {
	// Push adds an entry to the frontier.
	// Returns false if the URL has already been seen.
	Push(entry FrontierEntry) bool

	// Pop returns the next entry in breadth-first order.
	// Returns false if the frontier is empty.
	Pop() (FrontierEntry, bool)

	// Len returns the number of entries in the queue.
	Len() int

	// Seen returns true if the URL has been queued or processed.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
