package ragscrape

// Target is a canonical URL waiting in the frontier together with the link
// depth at which it was discovered. Start URLs have depth zero.
type Target struct {
	URL   string
	Depth int
}

// URLFrontier manages the breadth-first crawl queue and the visited set of
// one crawl session.
type URLFrontier interface {
	// Enqueue adds url at depth to the pending queue.
	// Returns false if the URL was rejected: already visited or pending,
	// disallowed by the policy, or beyond the depth limit.
	Enqueue(url string, depth int) bool

	// Dequeue pops the oldest pending target.
	// Returns false if the queue is empty.
	Dequeue() (Target, bool)

	// MarkVisited records url as visited. It is idempotent and
	// returns true only the first time a URL is marked.
	MarkVisited(url string) bool

	// Visited returns true if url has been marked visited.
	Visited(url string) bool

	// VisitedCount returns the number of visited URLs.
	VisitedCount() int

	// Len returns the number of pending URLs.
	Len() int

	// Exhausted returns true when the queue is empty or the page budget
	// has been reached.
	Exhausted() bool
}
