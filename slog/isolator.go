package slog

import (
	"log/slog"

	"github.com/fwojciec/ragscrape"
)

// Ensure LoggingIsolator implements ragscrape.ContentIsolator.
var _ ragscrape.ContentIsolator = (*LoggingIsolator)(nil)

// LoggingIsolator wraps a ContentIsolator with debug logging of how much
// markup boilerplate removal kept.
type LoggingIsolator struct {
	next   ragscrape.ContentIsolator
	name   string
	logger *slog.Logger
}

// NewLoggingIsolator creates a new LoggingIsolator. name identifies the
// wrapped strategy in log lines.
func NewLoggingIsolator(next ragscrape.ContentIsolator, name string, logger *slog.Logger) *LoggingIsolator {
	return &LoggingIsolator{next: next, name: name, logger: logger}
}

// Isolate delegates to the wrapped isolator.
func (i *LoggingIsolator) Isolate(html string) (result *ragscrape.IsolateResult, err error) {
	defer func() {
		kept := 0
		if result != nil {
			kept = len(result.ContentHTML)
		}
		i.logger.Debug("isolate content",
			"isolator", i.name,
			"html_bytes", len(html),
			"content_bytes", kept,
			"err", err,
		)
	}()
	return i.next.Isolate(html)
}
