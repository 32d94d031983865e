package ragscrape

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Policy decides which URLs a crawl session may fetch. It combines the
// allowed-domain set with the disallow prefixes that apply to the crawler's
// identity. A Policy is immutable after construction.
type Policy struct {
	domains  map[string]struct{}
	disallow []string
}

// NewPolicy returns a Policy for the given allowed domains (hosts, optionally
// with port) and ordered disallow prefixes.
func NewPolicy(allowedDomains []string, disallow []string) *Policy {
	p := &Policy{
		domains:  make(map[string]struct{}, len(allowedDomains)),
		disallow: append([]string(nil), disallow...),
	}
	for _, d := range allowedDomains {
		p.domains[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	return p
}

// IsAllowed reports whether rawURL may be crawled. The host must be in the
// allowed-domain set and the path must not start with any disallow prefix.
// A prefix of exactly "/" disallows everything.
func (p *Policy) IsAllowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if _, ok := p.domains[strings.ToLower(u.Host)]; !ok {
		return false
	}
	// Rules are written percent-encoded, but a decoded rule must still
	// match, so both forms of the path are checked.
	escaped := u.EscapedPath()
	for _, prefix := range p.disallow {
		if prefix == "/" || strings.HasPrefix(escaped, prefix) || strings.HasPrefix(u.Path, prefix) {
			return false
		}
	}
	return true
}

// Disallowed returns a copy of the disallow prefixes in document order.
func (p *Policy) Disallowed() []string {
	return append([]string(nil), p.disallow...)
}

// ParseRobots reads a robots.txt document and returns the Disallow prefixes
// that apply to userAgent. Only User-agent and Disallow directives are
// recognized. A group applies when its agent token is "*" or is contained in
// userAgent. Allow directives and wildcards are ignored.
func ParseRobots(r io.Reader, userAgent string) ([]string, error) {
	var prefixes []string
	applies := false

	// Lines have no length limit; the loader bounds the document instead.
	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading robots.txt: %w", err)
		}
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "user-agent:"):
			agent := directiveValue(line)
			applies = agent == "*" || strings.Contains(userAgent, agent)
		case applies && strings.HasPrefix(lower, "disallow:"):
			if path := directiveValue(line); path != "" {
				prefixes = append(prefixes, path)
			}
		}
		if err != nil {
			break
		}
	}
	return prefixes, nil
}

func directiveValue(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}
