package crawl

import (
	"fmt"
	"strings"
)

const ellipsis = "..."

// TruncateURL shortens url to at most width runes for display. The tail of
// a URL identifies the page, so the head is what gets elided.
func TruncateURL(url string, width int) string {
	r := []rune(url)
	switch {
	case width <= 0:
		return ""
	case len(r) <= width:
		return url
	case width <= len(ellipsis):
		return string(r[:width])
	}
	return ellipsis + string(r[len(r)-width+len(ellipsis):])
}

// FormatBytes renders n bytes with a binary unit.
func FormatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	size := float64(n)
	unit := ""
	for _, u := range []string{"KB", "MB", "GB"} {
		size /= 1024
		unit = u
		if size < 1024 {
			break
		}
	}
	return fmt.Sprintf("%.1f %s", size, unit)
}

// FormatTokens renders an approximate token count, rounding to thousands
// once it reaches four digits.
func FormatTokens(n int) string {
	if n < 1000 {
		return fmt.Sprintf("~%d tokens", n)
	}
	return fmt.Sprintf("~%dk tokens", (n+500)/1000)
}

// FormatResult summarizes a crawl pass on one line.
func FormatResult(r *Result) string {
	if r == nil {
		return "no pages visited"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "visited %d pages, saved %d (%s)", r.Visited, r.Saved, FormatBytes(r.Bytes))
	if r.Failed > 0 {
		fmt.Fprintf(&b, ", %d failed", r.Failed)
	}
	return b.String()
}
