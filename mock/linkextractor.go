package mock

import "github.com/mwestrik/siteqa"

var _ siteqa.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of siteqa.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return l.ExtractLinksFn(html, baseURL)
}
