package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mwestrik/siteqa"
)

var _ siteqa.Extractor = (*Extractor)(nil)

// noiseSelector matches elements that never carry page content.
const noiseSelector = "script, style, noscript, meta, link, iframe, embed, nav, header, footer"

// noiseClassID matches class or id values of common overlay chrome:
// cookie banners, popups, modals, consent dialogs.
var noiseClassID = regexp.MustCompile(`(?i)cookie|banner|popup|modal|consent|notification`)

var whitespace = regexp.MustCompile(`\s+`)

// Extractor extracts readable text from HTML by stripping non-content
// elements and collapsing whitespace. It is cruder than a content-aware
// extractor but never comes back empty on a page that has body text, which
// makes it a useful last resort in a FallbackExtractor chain.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract strips scripts, styles, navigation chrome and overlay elements
// from html, then returns the remaining body text with runs of whitespace
// collapsed to single spaces. The title comes from <title>, falling back
// to the first <h1>.
func (e *Extractor) Extract(html string) (*siteqa.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, siteqa.Errorf(siteqa.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find(noiseSelector).Remove()
	doc.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		if noiseClassID.MatchString(class) || noiseClassID.MatchString(id) {
			sel.Remove()
		}
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	text := strings.TrimSpace(whitespace.ReplaceAllString(body.Text(), " "))

	return &siteqa.ExtractResult{Title: title, Text: text}, nil
}
