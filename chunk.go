package siteqa

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Chunk is a bounded-length text span from one document, carrying source
// attribution metadata. It is the unit of embedding and retrieval. A chunk
// holds copies of SourceURL and Title rather than a reference to the page
// it came from, so chunks can outlive the crawl pass.
type Chunk struct {
	// ID is derived from (SourceURL, ChunkIndex) and is stable across
	// re-ingestion, so re-chunking a page overwrites its prior chunks.
	ID        string `json:"id"`
	Text      string `json:"text"`
	SourceURL string `json:"sourceUrl"`
	Title     string `json:"title"`

	// ChunkIndex is the 0-based position within the source document.
	ChunkIndex int `json:"chunkIndex"`

	// CharStart and CharEnd are rune offsets into the source text.
	// CharEnd-CharStart never exceeds the configured chunk size.
	CharStart int `json:"charStart"`
	CharEnd   int `json:"charEnd"`

	// OverlapWithPrevious is the number of runes shared with the
	// preceding chunk; zero for the first chunk of a document.
	OverlapWithPrevious int `json:"overlapWithPrevious"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "chunk ID required")
	}
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chunk source URL required")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	return nil
}

// ChunkID returns the stable identifier for the index-th chunk of the
// document at sourceURL.
func ChunkID(sourceURL string, index int) string {
	return fmt.Sprintf("%016x-%d", xxhash.Sum64String(sourceURL), index)
}

// SplitChunks splits clean text into overlapping chunks of at most maxChars
// runes. It is deterministic: the same input always yields the same chunks.
//
// The window is a fixed-size character window with no boundary snapping:
// each chunk spans [start, start+maxChars) clamped to the text length, and
// the next start is start+maxChars-overlap. Consecutive chunks therefore
// share exactly overlap runes. Offsets are counted in runes so multi-byte
// text is never split mid-character.
//
// Empty text yields no chunks. Text shorter than maxChars yields exactly
// one chunk equal to the input. overlap must be smaller than maxChars.
func SplitChunks(text string, maxChars, overlap int, sourceURL, title string) ([]Chunk, error) {
	if maxChars <= 0 {
		return nil, Errorf(EINVALID, "max chars must be positive")
	}
	if overlap < 0 || overlap >= maxChars {
		return nil, Errorf(EINVALID, "overlap must be non-negative and smaller than max chars")
	}

	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil, nil
	}

	var chunks []Chunk
	for start := 0; ; start += maxChars - overlap {
		end := start + maxChars
		if end > n {
			end = n
		}

		c := Chunk{
			ID:         ChunkID(sourceURL, len(chunks)),
			Text:       string(runes[start:end]),
			SourceURL:  sourceURL,
			Title:      title,
			ChunkIndex: len(chunks),
			CharStart:  start,
			CharEnd:    end,
		}
		if len(chunks) > 0 {
			c.OverlapWithPrevious = chunks[len(chunks)-1].CharEnd - start
		}
		chunks = append(chunks, c)

		if end >= n {
			break
		}
	}

	return chunks, nil
}
