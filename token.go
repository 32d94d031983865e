package ragscrape

import "context"

// TokenCounter reports how many model tokens a chunk of text costs. It is
// informational: the pipeline totals it for the run summary.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
