package ragscrape

import (
	"context"
	"sort"
	"strconv"
	"strings"
)

// SelectionMode is the operator's choice during interactive selection.
type SelectionMode int

// Selection modes offered to the operator. SelectInvalid represents any
// unrecognized choice and causes the prompt to be repeated.
const (
	SelectInvalid SelectionMode = iota
	SelectAll
	SelectByIndex
	SelectByKeyword
	SelectNone
)

// String returns the label shown to the operator.
func (m SelectionMode) String() string {
	switch m {
	case SelectAll:
		return "Select All"
	case SelectByIndex:
		return "Select by Index"
	case SelectByKeyword:
		return "Filter by Keyword"
	case SelectNone:
		return "Select None"
	default:
		return "Invalid"
	}
}

// ParseSelectionMode maps operator input to a mode. It accepts the menu
// numbers 1-4 and the words all, index, keyword and none.
func ParseSelectionMode(s string) SelectionMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "all":
		return SelectAll
	case "2", "index":
		return SelectByIndex
	case "3", "keyword":
		return SelectByKeyword
	case "4", "none":
		return SelectNone
	default:
		return SelectInvalid
	}
}

// Chooser is the operator-facing side of interactive selection.
// Each method blocks until the operator answers.
type Chooser interface {
	// Present shows the discovered pages in discovery order.
	Present(ctx context.Context, records []PageRecord) error

	// Choose asks for a selection mode.
	Choose(ctx context.Context) (SelectionMode, error)

	// Indices asks for an index expression such as "1,3,5-7".
	Indices(ctx context.Context) (string, error)

	// Keyword asks for a filter keyword.
	Keyword(ctx context.Context) (string, error)

	// Confirm shows the pages matching keyword and asks whether to proceed.
	Confirm(ctx context.Context, keyword string, matches []PageRecord) (bool, error)
}

// ParseIndexSelection parses a comma-separated list of 1-based indices and
// inclusive ranges (e.g. "1,3,5-7") against n items. It returns the selected
// 0-based positions in ascending order without duplicates. Out-of-range
// indices and malformed parts are dropped.
func ParseIndexSelection(expr string, n int) []int {
	seen := make(map[int]struct{})
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi := 0, 0
		if a, b, ok := strings.Cut(part, "-"); ok {
			start, err1 := strconv.Atoi(strings.TrimSpace(a))
			end, err2 := strconv.Atoi(strings.TrimSpace(b))
			if err1 != nil || err2 != nil {
				continue
			}
			lo, hi = start, end
		} else {
			idx, err := strconv.Atoi(part)
			if err != nil {
				continue
			}
			lo, hi = idx, idx
		}

		for i := max(lo, 1); i <= min(hi, n); i++ {
			seen[i-1] = struct{}{}
		}
	}

	positions := make([]int, 0, len(seen))
	for p := range seen {
		positions = append(positions, p)
	}
	sort.Ints(positions)
	return positions
}

// MatchKeyword returns the records whose URL, title or description contains
// keyword, ignoring case. Discovery order is preserved.
func MatchKeyword(records []PageRecord, keyword string) []PageRecord {
	kw := strings.ToLower(keyword)
	var matches []PageRecord
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.URL), kw) ||
			strings.Contains(strings.ToLower(r.Title), kw) ||
			strings.Contains(strings.ToLower(r.Description), kw) {
			matches = append(matches, r)
		}
	}
	return matches
}
