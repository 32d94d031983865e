package ragscrape

// Chunk is an overlap-linked window of a page's cleaned text.
type Chunk struct {
	SourceURL string `json:"sourceUrl"`
	// Ordinal is the chunk's position within its page, starting at zero.
	Ordinal int    `json:"ordinal"`
	Text    string `json:"text"`
}

// Chunker splits cleaned text into ordered, overlapping windows.
type Chunker interface {
	// Chunks splits text taken from sourceURL. Text shorter than the
	// minimum content length yields no chunks.
	Chunks(sourceURL string, text string) []Chunk
}

// ProcessedPage is a page whose text has been extracted and chunked.
type ProcessedPage struct {
	URL      string
	Metadata PageMetadata
	Chunks   []Chunk
}

// EmbeddedPage is a processed page with one embedding per chunk,
// in chunk order.
type EmbeddedPage struct {
	ProcessedPage
	Embeddings [][]float32
}

// Validate returns an error if the page does not hold exactly one
// embedding per chunk.
func (p *EmbeddedPage) Validate() error {
	if len(p.Chunks) != len(p.Embeddings) {
		return Errorf(EINTERNAL, "page %s has %d chunks but %d embeddings", p.URL, len(p.Chunks), len(p.Embeddings))
	}
	return nil
}
