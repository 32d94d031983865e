package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/fwojciec/ragscrape"
)

// MaxRobotsSize bounds how much of a robots.txt is parsed. Rules past it are
// ignored, as major crawlers do.
const MaxRobotsSize = 500 << 10

// RobotsLoader fetches a domain's robots.txt and extracts the disallow
// prefixes that apply to the crawler. It fails open: any problem
// retrieving the document yields an empty rule list.
type RobotsLoader struct {
	Client    *http.Client
	UserAgent string
	// Scheme used to build the robots.txt URL. Defaults to "https".
	Scheme string
	Logger *slog.Logger
}

// NewRobotsLoader returns a loader identifying itself as userAgent.
func NewRobotsLoader(client *http.Client, userAgent string) *RobotsLoader {
	if client == nil {
		client = &http.Client{Timeout: ragscrape.DefaultTimeout}
	}
	return &RobotsLoader{Client: client, UserAgent: userAgent}
}

// Load returns the disallow prefixes of domain's robots.txt that apply to
// the loader's user agent. It never returns an error.
func (l *RobotsLoader) Load(ctx context.Context, domain string) []string {
	log := l.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	scheme := l.Scheme
	if scheme == "" {
		scheme = "https"
	}
	robotsURL := scheme + "://" + domain + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		log.Warn("robots.txt unavailable, crawling without rules", "url", robotsURL, "err", err)
		return nil
	}
	req.Header.Set("User-Agent", l.UserAgent)

	resp, err := l.Client.Do(req)
	if err != nil {
		log.Warn("robots.txt unavailable, crawling without rules", "url", robotsURL, "err", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("robots.txt unavailable, crawling without rules", "url", robotsURL, "status", resp.StatusCode)
		return nil
	}

	rules, err := ragscrape.ParseRobots(io.LimitReader(resp.Body, MaxRobotsSize), l.UserAgent)
	if err != nil {
		log.Warn("robots.txt unreadable, crawling without rules", "url", robotsURL, "err", err)
		return nil
	}
	log.Debug("loaded robots.txt", "url", robotsURL, "disallow", len(rules))
	return rules
}
