package siteqa

// LinkExtractor discovers outbound links in HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns absolute URLs resolved against
	// baseURL. Non-HTTP(S) schemes (mailto:, javascript:, ...) and
	// fragment-only links are rejected. No deduplication or domain
	// filtering is performed here; the crawler applies its own rules.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
