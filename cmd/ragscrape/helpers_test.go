package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/ragscrape"
	main "github.com/fwojciec/ragscrape/cmd/ragscrape"
	"github.com/fwojciec/ragscrape/crawl"
	"github.com/fwojciec/ragscrape/embed"
	"github.com/fwojciec/ragscrape/fs"
	"github.com/fwojciec/ragscrape/goquery"
	"github.com/fwojciec/ragscrape/hashembed"
	"github.com/fwojciec/ragscrape/htmltomarkdown"
	"github.com/fwojciec/ragscrape/mock"
	"github.com/fwojciec/ragscrape/pipeline"
	"github.com/fwojciec/ragscrape/split"
	"github.com/fwojciec/ragscrape/sqlite"
	"github.com/stretchr/testify/require"
)

// paragraph returns prose long enough to survive chunking.
func paragraph(topic string) string {
	return strings.Repeat("This page explains "+topic+" in detail for readers of the documentation. ", 5)
}

func page(title, body string, links ...string) string {
	var b strings.Builder
	b.WriteString("<html><head><title>" + title + "</title>")
	b.WriteString(`<meta name="description" content="About ` + title + `">`)
	b.WriteString("</head><body><nav><a href=\"/\">Home</a></nav><main><h1>" + title + "</h1><p>" + body + "</p>")
	for _, l := range links {
		b.WriteString(`<a href="` + l + `">` + l + `</a>`)
	}
	b.WriteString("</main></body></html>")
	return b.String()
}

// testSite serves a small site keyed by canonical URL. Unknown URLs fail.
type testSite struct {
	pages   map[string]string
	fetched []string
}

func newTestSite() *testSite {
	return &testSite{pages: map[string]string{
		"https://example.com/":              page("Home", paragraph("the home page"), "/guide", "/private/notes"),
		"https://example.com/guide":         page("Guide", paragraph("the guide"), "/"),
		"https://example.com/private/notes": page("Notes", paragraph("private notes")),
	}}
}

func (s *testSite) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			s.fetched = append(s.fetched, url)
			html, ok := s.pages[url]
			if !ok {
				return "", ragscrape.Errorf(ragscrape.EFETCH, "HTTP 404 for %s", url)
			}
			return html, nil
		},
	}
}

type robotsFunc func(ctx context.Context, domain string) []string

func (f robotsFunc) Load(ctx context.Context, domain string) []string { return f(ctx, domain) }

func newTestCatalog(t *testing.T) *sqlite.CatalogService {
	t.Helper()

	db := sqlite.NewDB(sqlite.MemoryPath)
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return sqlite.NewCatalogService(db)
}

func newTestExtractor() *goquery.Extractor {
	return goquery.NewExtractor(goquery.NewIsolator(), htmltomarkdown.NewConverter(), ragscrape.CleanOptions{})
}

func newTestPipeline(dir string) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Content:   fs.NewContentStore(filepath.Join(dir, "html")),
		Extractor: newTestExtractor(),
		Chunker:   split.NewSplitter(1000, 200, 50),
		Generator: embed.NewGenerator(hashembed.NewEmbedder(16), 32),
		Index:     fs.NewIndexStore(filepath.Join(dir, "index"), filepath.Join(dir, "metadata.json")),
	}
}

// testDeps wires the scrape dependencies around site with artifacts under dir.
func testDeps(t *testing.T, site *testSite, dir string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Catalog: newTestCatalog(t),
		Robots: robotsFunc(func(context.Context, string) []string {
			return []string{"/private"}
		}),
		Crawler: &crawl.Crawler{
			Fetcher:   site.fetcher(),
			Extractor: newTestExtractor(),
			Store:     fs.NewContentStore(filepath.Join(dir, "html")),
		},
		Pipeline: newTestPipeline(dir),
	}
	return deps, stdout, stderr
}

func testPipelineFlags(dir string) main.PipelineFlags {
	return main.PipelineFlags{
		OutputDir:      dir,
		Extractor:      "selectors",
		KeepLinks:      true,
		KeepTables:     true,
		MinContent:     50,
		ChunkSize:      1000,
		ChunkOverlap:   200,
		Embedder:       "hash",
		EmbeddingModel: "unused",
		Dimension:      16,
		BatchSize:      32,
		Normalize:      true,
		Concurrency:    1,
	}
}
