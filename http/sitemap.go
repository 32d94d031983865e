package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/ragscrape"
)

// Ensure SitemapService implements ragscrape.SitemapService.
var _ ragscrape.SitemapService = (*SitemapService)(nil)

// Sitemap walk limits.
const (
	DefaultMaxSitemapURLs = 50000
	maxIndexDepth         = 3
)

// SitemapService collects seed URLs from a site's sitemaps. Sitemaps are
// located through robots.txt Sitemap directives, falling back to
// /sitemap.xml. Sitemap indexes are followed and gzip-compressed sitemaps
// are decompressed.
type SitemapService struct {
	client    *http.Client
	userAgent string

	// MaxURLs stops the walk once this many URLs were collected.
	MaxURLs int
}

// NewSitemapService creates a SitemapService. A nil client gets
// ragscrape.DefaultTimeout and an empty userAgent gets
// ragscrape.DefaultUserAgent.
func NewSitemapService(client *http.Client, userAgent string) *SitemapService {
	if client == nil {
		client = &http.Client{Timeout: ragscrape.DefaultTimeout}
	}
	if userAgent == "" {
		userAgent = ragscrape.DefaultUserAgent
	}
	return &SitemapService{client: client, userAgent: userAgent, MaxURLs: DefaultMaxSitemapURLs}
}

// DiscoverURLs returns the page URLs listed in the sitemaps of baseURL's
// host, deduplicated in document order. A site without sitemaps yields an
// empty slice. The crawl frontier decides which of them may be fetched.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "invalid base URL %q", baseURL)
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	w := &sitemapWalk{
		svc:      s,
		sitemaps: make(map[string]struct{}),
		pages:    make(map[string]struct{}),
		urls:     []string{},
	}
	located := s.locate(ctx, root)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, sitemapURL := range located {
		if err := w.visit(ctx, sitemapURL, 0); err != nil {
			return nil, err
		}
		if w.full() {
			break
		}
	}
	return w.urls, nil
}

// locate returns the sitemaps declared in robots.txt, or /sitemap.xml when
// robots.txt declares none and that file exists.
func (s *SitemapService) locate(ctx context.Context, root *url.URL) []string {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.open(ctx, robotsURL); err == nil {
		declared := sitemapDirectives(body)
		body.Close()
		if len(declared) > 0 {
			return declared
		}
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	if s.exists(ctx, fallback) {
		return []string{fallback}
	}
	return nil
}

// sitemapDirectives reads the values of case-insensitive Sitemap lines.
func sitemapDirectives(r io.Reader) []string {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "sitemap") {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// sitemapWalk accumulates URLs across every sitemap of one discovery.
type sitemapWalk struct {
	svc      *SitemapService
	sitemaps map[string]struct{}
	pages    map[string]struct{}
	urls     []string
}

func (w *sitemapWalk) full() bool {
	return w.svc.MaxURLs > 0 && len(w.urls) >= w.svc.MaxURLs
}

func (w *sitemapWalk) add(u string) {
	if _, ok := w.pages[u]; ok || w.full() {
		return
	}
	w.pages[u] = struct{}{}
	w.urls = append(w.urls, u)
}

// visit reads one sitemap. Indexes recurse up to maxIndexDepth levels and
// every sitemap is read at most once.
func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := w.sitemaps[sitemapURL]; ok || depth > maxIndexDepth {
		return nil
	}
	w.sitemaps[sitemapURL] = struct{}{}

	root, err := w.svc.parse(ctx, sitemapURL)
	if err != nil {
		return err
	}

	if root.Tag != "sitemapindex" {
		for _, u := range locs(root, "url") {
			w.add(u)
		}
		return nil
	}
	for _, child := range locs(root, "sitemap") {
		if w.full() {
			return nil
		}
		if err := w.visit(ctx, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// parse fetches a sitemap document and returns its root element.
func (s *SitemapService) parse(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	body, err := s.open(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var r io.Reader = body
	if strings.HasSuffix(strings.ToLower(sitemapURL), ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, ragscrape.Errorf(ragscrape.EINVALID, "decompressing sitemap %s: %v", sitemapURL, err)
		}
		defer gz.Close()
		r = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "empty sitemap %s", sitemapURL)
	}
	return root, nil
}

// locs returns the trimmed, non-empty <loc> of every tag child of root.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		if loc := el.SelectElement("loc"); loc != nil {
			if u := strings.TrimSpace(loc.Text()); u != "" {
				out = append(out, u)
			}
		}
	}
	return out
}

// open issues a GET and returns the body of a 200 response.
func (s *SitemapService) open(ctx context.Context, target string) (io.ReadCloser, error) {
	resp, err := s.do(ctx, http.MethodGet, target)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, ragscrape.Errorf(ragscrape.EFETCH, "HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

// exists reports whether a HEAD request for target answers 200.
func (s *SitemapService) exists(ctx context.Context, target string) bool {
	resp, err := s.do(ctx, http.MethodHead, target)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (s *SitemapService) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "invalid URL %q: %v", target, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, ragscrape.Errorf(ragscrape.EFETCH, "%s %s: %v", method, target, err)
	}
	return resp, nil
}
