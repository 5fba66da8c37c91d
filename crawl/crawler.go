// Package crawl implements the breadth-first traversal of a single domain.
// It owns the crawl state machine: frontier, visited set, depth and page
// accounting. Fetching, extraction and link discovery are delegated to
// injected collaborators.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/mwestrik/siteqa"
)

// DefaultExcludedPaths lists path fragments that are skipped at link
// discovery: auth flows, commerce pages, legal boilerplate and binary
// assets rarely contain answerable content.
func DefaultExcludedPaths() []string {
	return []string{
		"/login", "/signin", "/sign-in", "/auth",
		"/signup", "/sign-up", "/register", "/registration",
		"/cart", "/checkout", "/shop", "/store",
		"/admin", "/dashboard",
		"/privacy", "/terms", "/legal",
		"/contact", "/search",
		".pdf", ".jpg", ".jpeg", ".png", ".gif", ".zip",
	}
}

// Crawler walks a site breadth-first from a base URL, yielding extracted
// pages. Each Crawl call owns its own frontier and visited set; a Crawler
// is safe to reuse across sequential or concurrent crawl tasks.
type Crawler struct {
	Fetcher   siteqa.Fetcher
	Extractor siteqa.Extractor
	Links     siteqa.LinkExtractor

	// RateLimiter, if set, throttles fetches per host.
	RateLimiter siteqa.DomainLimiter

	// Sitemaps, if set, seeds the frontier with sitemap URLs at depth 1
	// after the root page succeeds. Best effort; failures are logged.
	Sitemaps siteqa.SitemapService

	// RetryDelays is the fetch retry schedule. Nil means DefaultRetryDelays.
	RetryDelays []time.Duration

	// ExcludedPaths are path fragments rejected at link discovery.
	// Nil means DefaultExcludedPaths; an empty slice disables exclusion.
	ExcludedPaths []string

	Logger *slog.Logger
}

// Crawl traverses the site described by task and returns the extracted
// pages in crawl order plus a report of crawled and failed URLs.
//
// Per-page fetch or extraction failures are recorded and skipped; they
// never abort the crawl. The whole operation fails only for invalid task
// parameters or when the base URL itself cannot be fetched. Hitting
// MaxPages is a bounded-resource policy, not an error: the crawl returns
// successfully with what it has, and BFS ordering guarantees those are the
// pages closest to the root. Cancellation is checked between frontier pops.
func (c *Crawler) Crawl(ctx context.Context, task *siteqa.CrawlTask) ([]*siteqa.CrawledPage, *siteqa.CrawlReport, error) {
	if err := task.Validate(); err != nil {
		return nil, nil, err
	}

	base, err := Canonicalize(task.BaseURL)
	if err != nil {
		return nil, nil, err
	}
	baseHost, err := Host(base)
	if err != nil {
		return nil, nil, err
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	excluded := c.ExcludedPaths
	if excluded == nil {
		excluded = DefaultExcludedPaths()
	}

	frontier := NewFrontier()
	frontier.Push(siteqa.FrontierEntry{URL: base, Depth: 0})

	var pages []*siteqa.CrawledPage
	report := &siteqa.CrawlReport{}
	rootFetched := false

	for {
		if err := ctx.Err(); err != nil {
			return pages, report, err
		}
		if len(pages) >= task.MaxPages {
			break
		}

		entry, ok := frontier.Pop()
		if !ok {
			break
		}

		if c.RateLimiter != nil {
			host, err := Host(entry.URL)
			if err == nil {
				if err := c.RateLimiter.Wait(ctx, host); err != nil {
					return pages, report, err
				}
			}
		}

		html, err := fetchWithRetry(ctx, c.Fetcher, entry.URL, delays, c.Logger)
		if err != nil {
			if !rootFetched {
				return nil, nil, siteqa.Errorf(siteqa.EUNAVAILABLE, "base URL %s unreachable: %v", entry.URL, err)
			}
			c.logf("page fetch failed", "url", entry.URL, "err", err)
			report.FailedURLs = append(report.FailedURLs, entry.URL)
			continue
		}

		if !rootFetched {
			rootFetched = true
			c.seedFromSitemap(ctx, task, base, baseHost, excluded, frontier)
		}

		// Discover links before extraction so pages with unusable text
		// still contribute to the frontier.
		c.discoverLinks(task, entry, html, baseHost, excluded, frontier)

		page := c.extractPage(entry, html)
		if page == nil {
			report.FailedURLs = append(report.FailedURLs, entry.URL)
			continue
		}

		pages = append(pages, page)
		report.CrawledURLs = append(report.CrawledURLs, entry.URL)
		c.logf("page extracted",
			"url", entry.URL,
			"depth", entry.Depth,
			"pages", len(pages),
			"max_pages", task.MaxPages,
		)
	}

	return pages, report, nil
}

// discoverLinks parses anchors out of html and enqueues the survivors:
// same domain as the base URL, not excluded, within the depth budget, not
// already seen. The frontier's Push performs the canonicalized seen-check.
func (c *Crawler) discoverLinks(task *siteqa.CrawlTask, entry siteqa.FrontierEntry, html, baseHost string, excluded []string, frontier *Frontier) {
	if c.Links == nil || entry.Depth+1 > task.MaxDepth {
		return
	}

	links, err := c.Links.ExtractLinks(html, entry.URL)
	if err != nil {
		c.logf("link extraction failed", "url", entry.URL, "err", err)
		return
	}

	for _, link := range links {
		canonical, err := Canonicalize(link)
		if err != nil {
			continue
		}
		host, err := Host(canonical)
		if err != nil || host != baseHost {
			continue
		}
		if isExcluded(canonical, excluded) {
			continue
		}
		frontier.Push(siteqa.FrontierEntry{URL: canonical, Depth: entry.Depth + 1})
	}
}

// seedFromSitemap enqueues sitemap-discovered URLs at depth 1. The URLs go
// through the same domain, exclusion and dedup checks as discovered links.
func (c *Crawler) seedFromSitemap(ctx context.Context, task *siteqa.CrawlTask, base, baseHost string, excluded []string, frontier *Frontier) {
	if c.Sitemaps == nil || task.MaxDepth < 1 {
		return
	}

	urls, err := c.Sitemaps.DiscoverURLs(ctx, base)
	if err != nil {
		c.logf("sitemap discovery failed", "url", base, "err", err)
		return
	}

	seeded := 0
	for _, u := range urls {
		canonical, err := Canonicalize(u)
		if err != nil {
			continue
		}
		host, err := Host(canonical)
		if err != nil || host != baseHost {
			continue
		}
		if isExcluded(canonical, excluded) {
			continue
		}
		if frontier.Push(siteqa.FrontierEntry{URL: canonical, Depth: 1}) {
			seeded++
		}
	}
	if seeded > 0 {
		c.logf("sitemap seeded frontier", "url", base, "seeded", seeded)
	}
}

// extractPage runs the extractor and builds a CrawledPage. Returns nil when
// extraction fails or yields no text, which the caller records as a
// per-page failure.
func (c *Crawler) extractPage(entry siteqa.FrontierEntry, html string) *siteqa.CrawledPage {
	res, err := c.Extractor.Extract(html)
	if err != nil {
		c.logf("extraction failed", "url", entry.URL, "err", err)
		return nil
	}
	if strings.TrimSpace(res.Text) == "" {
		c.logf("extraction yielded no text", "url", entry.URL)
		return nil
	}

	return &siteqa.CrawledPage{
		URL:     entry.URL,
		Depth:   entry.Depth,
		Title:   res.Title,
		RawHTML: html,
		Text:    res.Text,
	}
}

// isExcluded reports whether the URL's path contains any excluded fragment.
func isExcluded(canonical string, excluded []string) bool {
	u, err := url.Parse(canonical)
	if err != nil {
		return true
	}
	path := strings.ToLower(u.Path)
	for _, fragment := range excluded {
		if strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}

func (c *Crawler) logf(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Info(msg, args...)
	}
}
