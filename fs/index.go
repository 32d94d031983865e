package fs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/flat"
)

// Ensure IndexStore implements ragscrape.IndexStore at compile time.
var _ ragscrape.IndexStore = (*IndexStore)(nil)

// sidecar is the JSON document stored next to the vector index.
type sidecar struct {
	Chunks   []string                `json:"chunks"`
	Metadata []ragscrape.ChunkRecord `json:"metadata"`
}

// IndexStore persists embedded pages as a flat vector index plus a JSON
// metadata sidecar.
type IndexStore struct {
	indexPath    string
	metadataPath string
}

// NewIndexStore creates an IndexStore writing to the given paths.
func NewIndexStore(indexPath, metadataPath string) *IndexStore {
	return &IndexStore{indexPath: indexPath, metadataPath: metadataPath}
}

// Save flattens pages in page-then-chunk order and writes both artifacts.
func (s *IndexStore) Save(ctx context.Context, pages []ragscrape.EmbeddedPage) (*ragscrape.IndexSummary, error) {
	var doc sidecar
	var vectors [][]float32
	for i := range pages {
		p := &pages[i]
		if err := p.Validate(); err != nil {
			return nil, err
		}
		for j, c := range p.Chunks {
			doc.Chunks = append(doc.Chunks, c.Text)
			doc.Metadata = append(doc.Metadata, ragscrape.NewChunkRecord(p.Metadata, c))
			vectors = append(vectors, p.Embeddings[j])
		}
	}
	if len(vectors) == 0 {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "empty corpus")
	}

	dim := len(vectors[0])
	index, err := flat.New(dim)
	if err != nil {
		return nil, err
	}
	if err := index.Add(vectors...); err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "inconsistent embedding dimensions: %s", ragscrape.ErrorMessage(err))
	}

	if err := writeAtomic(s.indexPath, func(w io.Writer) error {
		_, err := index.WriteTo(w)
		return err
	}); err != nil {
		return nil, err
	}
	if err := writeAtomic(s.metadataPath, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	}); err != nil {
		return nil, err
	}

	return &ragscrape.IndexSummary{
		Vectors:      index.Len(),
		Dimension:    dim,
		IndexPath:    s.indexPath,
		MetadataPath: s.metadataPath,
	}, nil
}

// Load reads both artifacts back.
func (s *IndexStore) Load(ctx context.Context) (*ragscrape.LoadedIndex, error) {
	for _, path := range []string{s.indexPath, s.metadataPath} {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, ragscrape.Errorf(ragscrape.ENOTFOUND, "index artifact not found: %s", path)
		} else if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(s.indexPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	index, err := flat.Read(f)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.metadataPath)
	if err != nil {
		return nil, err
	}
	var doc sidecar
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "decode metadata: %v", err)
	}

	if len(doc.Chunks) != index.Len() || len(doc.Metadata) != index.Len() {
		return nil, ragscrape.Errorf(ragscrape.EINTERNAL, "index holds %d vectors but metadata has %d chunks and %d records",
			index.Len(), len(doc.Chunks), len(doc.Metadata))
	}

	return &ragscrape.LoadedIndex{Index: index, Chunks: doc.Chunks, Metadata: doc.Metadata}, nil
}
