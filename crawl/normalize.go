package crawl

import (
	"net/url"
	"strings"

	"github.com/mwestrik/siteqa"
)

// Canonicalize reduces a URL to the single canonical form used everywhere
// the crawler compares URLs: the visited-set check and link filtering.
//
// The rule: scheme and host are lowercased, default ports (:80, :443) and
// fragments are stripped, a trailing slash is dropped from non-root paths,
// and an empty path becomes "/". Query strings are preserved, since two
// query variants are genuinely different resources. Applying one rule at
// both ends is what keeps cycles like /a, /a/ and /a#x from being crawled
// more than once.
func Canonicalize(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", siteqa.Errorf(siteqa.EINVALID, "invalid URL %q", rawURL)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", siteqa.Errorf(siteqa.EINVALID, "unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", siteqa.Errorf(siteqa.EINVALID, "URL %q has no host", rawURL)
	}

	u.Scheme = scheme
	u.Host = strings.ToLower(u.Host)
	if scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	} else {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""
	u.RawFragment = ""

	switch u.Path {
	case "", "/":
		u.Path = "/"
	default:
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String(), nil
}

// Host returns the lowercased host of a URL, without default ports.
// Used for the same-domain check against the crawl's base URL.
func Host(rawURL string) (string, error) {
	canonical, err := Canonicalize(rawURL)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(canonical)
	if err != nil {
		return "", siteqa.Errorf(siteqa.EINVALID, "invalid URL %q", rawURL)
	}
	return u.Host, nil
}
