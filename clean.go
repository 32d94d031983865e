package ragscrape

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// EmailPlaceholder replaces redacted email addresses.
const EmailPlaceholder = "[EMAIL]"

var (
	emailRe      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	whitespaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// CleanOptions configures CleanText.
type CleanOptions struct {
	RemoveEmails bool
	// MinLineLength drops lines with fewer characters, which are usually
	// navigation or footer remnants.
	MinLineLength int
}

// CleanText normalizes converted page text. Email addresses are optionally
// redacted, whitespace runs within a line collapse to a single space, short
// lines are dropped and runs of blank lines collapse into one paragraph break.
func CleanText(text string, opts CleanOptions) string {
	if opts.RemoveEmails {
		text = emailRe.ReplaceAllString(text, EmailPlaceholder)
	}

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
		if line == "" {
			flush()
			continue
		}
		if utf8.RuneCountInString(line) < opts.MinLineLength {
			continue
		}
		current = append(current, line)
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}
