package crawl

import (
	"sync"

	"github.com/mwestrik/siteqa"
)

// Compile-time interface verification.
var _ siteqa.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO crawl queue with exact deduplication.
// URLs are canonicalized on Push, so /a, /a/ and /a#x occupy one slot.
//
// Deduplication uses an exact set rather than a probabilistic filter: the
// crawl contract is that every distinct URL enters the frontier exactly
// once and is never silently dropped, and the set is bounded by the crawl's
// page and depth budgets anyway. Check-and-mark happens inside one critical
// section, so the frontier is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	queue []siteqa.FrontierEntry
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{seen: make(map[string]struct{})}
}

// Push adds an entry to the frontier. The URL is canonicalized first;
// entries with unparseable or non-HTTP(S) URLs are rejected.
// Returns false if the URL has already been seen.
func (f *Frontier) Push(entry siteqa.FrontierEntry) bool {
	canonical, err := Canonicalize(entry.URL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.seen[canonical]; ok {
		return false
	}
	f.seen[canonical] = struct{}{}

	entry.URL = canonical
	f.queue = append(f.queue, entry)
	return true
}

// Pop returns the next entry in breadth-first (FIFO) order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (siteqa.FrontierEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return siteqa.FrontierEntry{}, false
	}
	entry := f.queue[0]
	f.queue = f.queue[1:]
	return entry, true
}

// Len returns the number of entries waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued or processed.
// The URL is canonicalized before checking.
func (f *Frontier) Seen(rawURL string) bool {
	canonical, err := Canonicalize(rawURL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.seen[canonical]
	return ok
}

// SeenCount returns the number of distinct URLs ever pushed.
func (f *Frontier) SeenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}
