// Package split implements recursive character text splitting.
//
// Text is cut at the coarsest separator that occurs in it (paragraphs, then
// lines, sentences, words and finally single characters) and the pieces are
// merged back into windows of at most ChunkSize runes. Consecutive windows
// share up to ChunkOverlap runes carried from the tail of the previous one.
package split

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/ragscrape"
)

// Ensure Splitter implements ragscrape.Chunker at compile time.
var _ ragscrape.Chunker = (*Splitter)(nil)

// DefaultSeparators are tried in order; the empty separator splits into runes.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter splits cleaned text into overlapping windows.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	// MinContentLength is the rune count below which text yields no chunks.
	MinContentLength int
	Separators       []string
}

// NewSplitter returns a Splitter using DefaultSeparators.
func NewSplitter(size, overlap, minContentLength int) *Splitter {
	return &Splitter{
		ChunkSize:        size,
		ChunkOverlap:     overlap,
		MinContentLength: minContentLength,
		Separators:       DefaultSeparators,
	}
}

// Chunks splits text and attaches sourceURL and ordinals to the windows.
func (s *Splitter) Chunks(sourceURL string, text string) []ragscrape.Chunk {
	windows := s.Split(text)
	if len(windows) == 0 {
		return nil
	}
	chunks := make([]ragscrape.Chunk, len(windows))
	for i, w := range windows {
		chunks[i] = ragscrape.Chunk{SourceURL: sourceURL, Ordinal: i, Text: w}
	}
	return chunks
}

// Split returns the windows of text in order. Text shorter than
// MinContentLength runes yields nil.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) < s.MinContentLength {
		return nil
	}
	seps := s.Separators
	if len(seps) == 0 {
		seps = DefaultSeparators
	}
	return s.split(text, seps)
}

func (s *Splitter) split(text string, separators []string) []string {
	var sep string
	var rest []string
	for i, candidate := range separators {
		if candidate == "" || strings.Contains(text, candidate) {
			sep = candidate
			rest = separators[i+1:]
			break
		}
	}

	var out, pending []string
	for _, piece := range cut(text, sep) {
		if utf8.RuneCountInString(piece) < s.size() {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			out = append(out, s.merge(pending, sep)...)
			pending = nil
		}
		if len(rest) == 0 {
			out = append(out, piece)
		} else {
			out = append(out, s.split(piece, rest)...)
		}
	}
	if len(pending) > 0 {
		out = append(out, s.merge(pending, sep)...)
	}
	return out
}

// merge joins pieces with sep into windows no longer than ChunkSize, keeping
// at most ChunkOverlap runes of the previous window at the start of the next.
func (s *Splitter) merge(pieces []string, sep string) []string {
	sepLen := utf8.RuneCountInString(sep)
	joinCost := func(n int) int {
		if n > 0 {
			return sepLen
		}
		return 0
	}

	var windows, current []string
	total := 0
	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if total+n+joinCost(len(current)) > s.size() && len(current) > 0 {
			if w := strings.TrimSpace(strings.Join(current, sep)); w != "" {
				windows = append(windows, w)
			}
			for total > s.ChunkOverlap || (total > 0 && total+n+joinCost(len(current)) > s.size()) {
				total -= utf8.RuneCountInString(current[0]) + joinCost(len(current)-1)
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += n + joinCost(len(current)-1)
	}
	if w := strings.TrimSpace(strings.Join(current, sep)); w != "" {
		windows = append(windows, w)
	}
	return windows
}

func (s *Splitter) size() int {
	if s.ChunkSize <= 0 {
		return ragscrape.DefaultChunkSize
	}
	return s.ChunkSize
}

// cut splits text on sep, dropping empty pieces. The empty separator yields
// one piece per rune.
func cut(text, sep string) []string {
	if sep == "" {
		pieces := make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
		return pieces
	}
	var pieces []string
	for _, p := range strings.Split(text, sep) {
		if p != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}
