package ragscrape

import "context"

// ChunkRecord is the sidecar metadata stored for one indexed chunk.
// It augments the page metadata with the chunk ordinal and an excerpt.
type ChunkRecord struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	PublishedDate string `json:"published_date,omitempty"`
	ChunkID       int    `json:"chunk_id"`
	ChunkText     string `json:"chunk_text"`
}

// NewChunkRecord builds the sidecar record for chunk c of a page.
func NewChunkRecord(meta PageMetadata, c Chunk) ChunkRecord {
	return ChunkRecord{
		URL:           meta.URL,
		Title:         meta.Title,
		Description:   meta.Description,
		PublishedDate: meta.PublishedDate,
		ChunkID:       c.Ordinal,
		ChunkText:     Excerpt(c.Text, ExcerptLength),
	}
}

// VectorIndex is a read view of a persisted similarity index.
type VectorIndex interface {
	// Dimension returns the vector dimension.
	Dimension() int

	// Len returns the number of stored vectors.
	Len() int

	// Vector returns a copy of the i-th vector.
	Vector(i int) []float32
}

// IndexSummary reports what Save persisted.
type IndexSummary struct {
	Vectors      int
	Dimension    int
	IndexPath    string
	MetadataPath string
}

// LoadedIndex is the result of loading persisted artifacts. Index, Chunks
// and Metadata are parallel: entry i of each describes the same chunk.
type LoadedIndex struct {
	Index    VectorIndex
	Chunks   []string
	Metadata []ChunkRecord
}

// IndexStore persists embedded pages as a similarity index plus a metadata
// sidecar, and loads them back.
type IndexStore interface {
	// Save flattens pages in page-then-chunk order and writes both artifacts.
	// Returns EINVALID for an empty corpus or inconsistent dimensions.
	Save(ctx context.Context, pages []EmbeddedPage) (*IndexSummary, error)

	// Load reads both artifacts back.
	// Returns ENOTFOUND if either artifact is missing.
	Load(ctx context.Context) (*LoadedIndex, error)
}
