package crawl

import (
	"time"

	"github.com/fwojciec/ragscrape"
	"github.com/google/uuid"
)

// Session carries the state of one crawl: its identity, the frontier and
// everything discovered or fetched so far. A session is owned by a single
// goroutine.
type Session struct {
	ragscrape.Session

	Frontier *Frontier
	Records  []ragscrape.PageRecord
	Content  *ragscrape.ContentMap
}

// NewSession creates a session for cfg in the given mode.
// The frontier is built from policy and the configured page and depth limits.
func NewSession(cfg ragscrape.CrawlConfig, mode ragscrape.CrawlMode, policy *ragscrape.Policy) *Session {
	return &Session{
		Session: ragscrape.Session{
			ID:        uuid.NewString(),
			Domain:    cfg.Domain,
			Mode:      mode,
			StartedAt: time.Now().UTC(),
		},
		Frontier: NewFrontier(policy, cfg.MaxPages, cfg.MaxDepth),
		Content:  ragscrape.NewContentMap(),
	}
}

// Seed enqueues urls at depth zero and returns how many were accepted.
func (s *Session) Seed(urls []string) int {
	var n int
	for _, u := range urls {
		if s.Frontier.Enqueue(u, 0) {
			n++
		}
	}
	return n
}
