package siteqa

import "context"

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds URLs advertised by a site's sitemaps. It checks
	// robots.txt for Sitemap directives, then falls back to /sitemap.xml.
	// Sitemap indexes are resolved recursively. A site without sitemaps
	// yields an empty slice, not an error.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
