package siteqa

import "strings"

// ExtractResult holds the readable content of an HTML page.
type ExtractResult struct {
	// Title is the page title.
	Title string

	// Text is the visible text with markup and structural noise removed
	// and whitespace collapsed. Empty when no meaningful content remains.
	Text string
}

// Extractor extracts readable text from HTML pages, removing boilerplate.
// Implementations are pure: no state, no network, no side effects.
type Extractor interface {
	// Extract processes raw HTML and returns title and clean text.
	// The returned text contains no markup tokens. An empty Text means
	// the page had no usable content; the caller treats that as a
	// per-page failure.
	Extract(html string) (*ExtractResult, error)
}

// Compile-time interface verification.
var _ Extractor = (*FallbackExtractor)(nil)

// FallbackExtractor tries each extractor in order and returns the first
// result with non-empty text. Errors from earlier extractors are swallowed
// as long as a later extractor succeeds.
type FallbackExtractor struct {
	Extractors []Extractor
}

// Extract implements Extractor.
func (f *FallbackExtractor) Extract(html string) (*ExtractResult, error) {
	if len(f.Extractors) == 0 {
		return nil, Errorf(EINVALID, "no extractors configured")
	}
	var last *ExtractResult
	var lastErr error
	for _, e := range f.Extractors {
		res, err := e.Extract(html)
		if err != nil {
			lastErr = err
			continue
		}
		if strings.TrimSpace(res.Text) != "" {
			return res, nil
		}
		last, lastErr = res, nil
	}
	if last != nil {
		return last, nil
	}
	return nil, lastErr
}
