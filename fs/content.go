// Package fs provides file-based storage for raw pages and index artifacts.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ragscrape"
)

// maxSlugLength keeps filenames well below common filesystem limits.
const maxSlugLength = 100

// Ensure ContentStore implements ragscrape.ContentStore at compile time.
var _ ragscrape.ContentStore = (*ContentStore)(nil)

// ContentStore writes one raw HTML file per URL into a directory.
type ContentStore struct {
	dir string
}

// NewContentStore creates a ContentStore writing into dir.
func NewContentStore(dir string) *ContentStore {
	return &ContentStore{dir: dir}
}

// Save writes html under a name derived from url and returns its path.
// The same URL always maps to the same file.
func (s *ContentStore) Save(ctx context.Context, rawURL string, html string) (string, error) {
	name, err := Filename(rawURL)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)
	if err := writeFileAtomic(path, []byte(html)); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads the HTML stored at ref.
func (s *ContentStore) Load(ctx context.Context, ref string) (string, error) {
	data, err := os.ReadFile(ref)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ragscrape.Errorf(ragscrape.ENOTFOUND, "raw content not found: %s", ref)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// Filename returns the stable file name for rawURL:
// {slug}_{xxhash64 of the URL as 16 hex digits}.html.
// Example: https://example.com/docs/api → docs_api_<hash>.html
func Filename(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ragscrape.Errorf(ragscrape.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return fmt.Sprintf("%s_%016x.html", Slug(u.Path), xxhash.Sum64String(rawURL)), nil
}

// Slug joins the non-empty segments of path with underscores. The root path
// becomes "index". Characters unsafe in file names become "-".
func Slug(path string) string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return "index"
	}

	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, strings.Join(segments, "_"))

	if runes := []rune(slug); len(runes) > maxSlugLength {
		slug = string(runes[:maxSlugLength])
	}
	return slug
}
