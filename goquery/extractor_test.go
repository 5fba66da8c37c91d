package goquery_test

import (
	"testing"

	"github.com/mwestrik/siteqa/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_strips_scripts_and_chrome(t *testing.T) {
	t.Parallel()

	html := `<html>
	<head><title>Install Guide</title><script>var x = 1;</script></head>
	<body>
		<nav>Home | Docs | About</nav>
		<header>Site header</header>
		<main><p>Run the installer and follow the prompts.</p></main>
		<footer>Copyright 2026</footer>
		<style>.hidden { display: none }</style>
	</body></html>`

	res, err := goquery.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Install Guide", res.Title)
	assert.Equal(t, "Run the installer and follow the prompts.", res.Text)
	assert.NotContains(t, res.Text, "var x")
	assert.NotContains(t, res.Text, "Home | Docs")
	assert.NotContains(t, res.Text, "Copyright")
}

func TestExtractor_removes_overlay_elements_by_class_and_id(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<div class="cookie-notice">We use cookies.</div>
		<div id="newsletter-popup">Subscribe!</div>
		<div class="ConsentBanner">Accept all</div>
		<p>Actual content.</p>
	</body></html>`

	res, err := goquery.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Actual content.", res.Text)
}

func TestExtractor_falls_back_to_h1_for_title(t *testing.T) {
	t.Parallel()

	html := `<html><body><h1>Getting Started</h1><p>First steps.</p></body></html>`

	res, err := goquery.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Getting Started", res.Title)
}

func TestExtractor_collapses_whitespace(t *testing.T) {
	t.Parallel()

	html := "<html><body><p>one\n\t  two</p>\n\n<p>three</p></body></html>"

	res, err := goquery.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "one two three", res.Text)
}

func TestExtractor_returns_empty_text_for_contentless_page(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>T</title></head><body><script>init()</script></body></html>`

	res, err := goquery.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Empty(t, res.Text)
	assert.Equal(t, "T", res.Title)
}
