// Package trafilatura adapts the go-trafilatura content extractor, the
// primary extractor in the pipeline.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/mwestrik/siteqa"
	"golang.org/x/net/html"
)

var _ siteqa.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML. It
// returns plain text; pages where trafilatura finds no main content yield
// an empty Text, letting a FallbackExtractor try the next extractor.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content as plain text.
func (e *Extractor) Extract(rawHTML string) (*siteqa.ExtractResult, error) {
	if rawHTML == "" {
		return nil, siteqa.Errorf(siteqa.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "content extraction failed: %v", err)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" && result.ContentNode != nil {
		text = strings.TrimSpace(nodeText(result.ContentNode))
	}

	return &siteqa.ExtractResult{
		Title: result.Metadata.Title,
		Text:  text,
	}, nil
}

// nodeText walks an html.Node and concatenates its text nodes.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
