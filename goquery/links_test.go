package goquery_test

import (
	"testing"

	"github.com/mwestrik/siteqa"
	"github.com/mwestrik/siteqa/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_resolves_relative_links(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/docs/intro">Intro</a>
		<a href="guide">Guide</a>
		<a href="https://example.com/absolute">Absolute</a>
	</body></html>`

	links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/docs/")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/docs/intro",
		"https://example.com/docs/guide",
		"https://example.com/absolute",
	}, links)
}

func TestLinkExtractor_skips_non_http_and_fragment_links(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="javascript:void(0)">JS</a>
		<a href="mailto:a@example.com">Mail</a>
		<a href="tel:+1234567890">Call</a>
		<a href="#section">Anchor</a>
		<a href="/real">Real</a>
	</body></html>`

	links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/real"}, links)
}

func TestLinkExtractor_deduplicates_in_document_order(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/b">B</a>
		<a href="/a">A</a>
		<a href="/b">B again</a>
		<a href="/b#frag">B with fragment</a>
	</body></html>`

	links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/b", "https://example.com/a"}, links)
}

func TestLinkExtractor_keeps_external_links_for_caller_to_filter(t *testing.T) {
	t.Parallel()

	html := `<a href="https://other.com/page">Other</a>`

	links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://other.com/page"}, links)
}

func TestLinkExtractor_rejects_invalid_base_URL(t *testing.T) {
	t.Parallel()

	_, err := goquery.NewLinkExtractor().ExtractLinks("<a href='/x'>x</a>", "://not-a-url")

	require.Error(t, err)
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(err))
}
