// Package goquery provides HTML parsing services built on the goquery
// library: anchor link extraction and a selector-based text extractor used
// as a fallback when the primary extractor yields nothing.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mwestrik/siteqa"
)

var _ siteqa.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor pulls anchor hrefs out of HTML and resolves them against
// the page URL. Scheme filtering beyond http(s) and domain filtering are
// left to the caller.
type LinkExtractor struct{}

// NewLinkExtractor returns a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns the absolute URLs of all anchors in html, resolved
// against baseURL, in document order. Duplicate hrefs, fragment-only links
// and non-HTTP schemes (javascript:, mailto:, tel:, data:) are dropped.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, siteqa.Errorf(siteqa.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, siteqa.Errorf(siteqa.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return links, nil
}

// resolveURL resolves href against base and strips the fragment. Returns
// empty string for unparseable hrefs and for self-referential links, which
// covers fragment-only anchors pointing back at the same page.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
