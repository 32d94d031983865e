package crawl

import (
	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/bloom"
)

// Compile-time interface verification.
var _ ragscrape.URLFrontier = (*Frontier)(nil)

// frontierFalsePositiveRate is the Bloom prefilter's target rate.
const frontierFalsePositiveRate = 0.01

// Frontier is an in-memory breadth-first URL queue with an exact visited set.
// Every URL is canonicalized before it is compared or stored.
// It is owned by a single crawl session and is not safe for concurrent use.
type Frontier struct {
	policy   *ragscrape.Policy
	maxPages int
	maxDepth int

	visited *bloom.Set
	pending *bloom.Set
	queue   []ragscrape.Target
	head    int
}

// NewFrontier creates a frontier that admits URLs allowed by policy, stops
// after maxPages visits, and rejects links deeper than maxDepth. A nil
// policy admits every URL; a non-positive maxDepth disables the depth limit.
func NewFrontier(policy *ragscrape.Policy, maxPages, maxDepth int) *Frontier {
	size := uint(max(maxPages, 1))
	return &Frontier{
		policy:   policy,
		maxPages: maxPages,
		maxDepth: maxDepth,
		visited:  bloom.NewSet(size, frontierFalsePositiveRate),
		pending:  bloom.NewSet(size*4, frontierFalsePositiveRate),
	}
}

// Enqueue adds url at depth unless it is malformed, already visited or
// pending, disallowed by the policy, or deeper than the depth limit.
func (f *Frontier) Enqueue(rawURL string, depth int) bool {
	u, err := ragscrape.CanonicalURL(rawURL)
	if err != nil {
		return false
	}
	if f.maxDepth > 0 && depth > f.maxDepth {
		return false
	}
	if f.visited.Has(u) || f.pending.Has(u) {
		return false
	}
	if f.policy != nil && !f.policy.IsAllowed(u) {
		return false
	}
	f.pending.Add(u)
	f.queue = append(f.queue, ragscrape.Target{URL: u, Depth: depth})
	return true
}

// Dequeue pops the oldest pending target.
func (f *Frontier) Dequeue() (ragscrape.Target, bool) {
	if f.head >= len(f.queue) {
		return ragscrape.Target{}, false
	}
	t := f.queue[f.head]
	f.queue[f.head] = ragscrape.Target{}
	f.head++
	// Reclaim the consumed prefix once it dominates the slice.
	if f.head > 64 && f.head*2 > len(f.queue) {
		f.queue = append([]ragscrape.Target(nil), f.queue[f.head:]...)
		f.head = 0
	}
	f.pending.Remove(t.URL)
	return t, true
}

// MarkVisited records url as visited and reports whether it was new.
func (f *Frontier) MarkVisited(rawURL string) bool {
	u, err := ragscrape.CanonicalURL(rawURL)
	if err != nil {
		return false
	}
	return f.visited.Add(u)
}

// Visited reports whether url has been marked visited.
func (f *Frontier) Visited(rawURL string) bool {
	u, err := ragscrape.CanonicalURL(rawURL)
	if err != nil {
		return false
	}
	return f.visited.Has(u)
}

// VisitedCount returns the number of visited URLs.
func (f *Frontier) VisitedCount() int {
	return f.visited.Len()
}

// EstimatedVisited returns the Bloom prefilter's estimate of visited URLs.
// It drifts above VisitedCount as the filter fills past its sizing.
func (f *Frontier) EstimatedVisited() uint {
	return f.visited.EstimatedCount()
}

// Len returns the number of pending URLs.
func (f *Frontier) Len() int {
	return len(f.queue) - f.head
}

// Exhausted reports whether the queue is empty or the page budget is spent.
func (f *Frontier) Exhausted() bool {
	return f.Len() == 0 || f.VisitedCount() >= f.maxPages
}
