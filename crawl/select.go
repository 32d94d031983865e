package crawl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/ragscrape"
)

// State is a step of the interactive discovery and selection machine.
type State int

// Interactive crawl states. StateFetch and StateDone are terminal for the
// selection loop.
const (
	StateDiscover State = iota
	StatePresent
	StateSelect
	StateFetch
	StateDone
)

func (s State) String() string {
	switch s {
	case StateDiscover:
		return "discover"
	case StatePresent:
		return "present"
	case StateSelect:
		return "select"
	case StateFetch:
		return "fetch"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// DefaultMaxSelectAttempts bounds the number of SELECT rounds.
const DefaultMaxSelectAttempts = 10

// Selector runs the PRESENT and SELECT states against a Chooser.
type Selector struct {
	Chooser ragscrape.Chooser
	// MaxAttempts bounds SELECT rounds, counting invalid choices and
	// declined keyword confirmations. Defaults to DefaultMaxSelectAttempts.
	MaxAttempts int
	Logger      *slog.Logger
	// OnTransition, if set, observes every state change.
	OnTransition func(from, to State)
}

func (sel *Selector) logger() *slog.Logger {
	if sel.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return sel.Logger
}

func (sel *Selector) transition(state *State, to State) {
	if sel.OnTransition != nil {
		sel.OnTransition(*state, to)
	}
	*state = to
}

// Select presents records and loops until the operator makes a valid
// choice. It returns the selected URLs in discovery order; an empty result
// means nothing should be fetched. When the attempt budget runs out the
// result is empty and the error has code EINVALID.
func (sel *Selector) Select(ctx context.Context, records []ragscrape.PageRecord) ([]string, error) {
	maxAttempts := sel.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxSelectAttempts
	}
	log := sel.logger()

	state := StateDiscover
	sel.transition(&state, StatePresent)

	var attempts int
	for {
		switch state {
		case StatePresent:
			if err := sel.Chooser.Present(ctx, records); err != nil {
				return nil, err
			}
			sel.transition(&state, StateSelect)

		case StateSelect:
			if attempts >= maxAttempts {
				sel.transition(&state, StateDone)
				return nil, ragscrape.Errorf(ragscrape.EINVALID, "no valid selection after %d attempts", maxAttempts)
			}
			attempts++

			mode, err := sel.Chooser.Choose(ctx)
			if err != nil {
				return nil, err
			}

			switch mode {
			case ragscrape.SelectAll:
				sel.transition(&state, StateFetch)
				return recordURLs(records), nil

			case ragscrape.SelectByIndex:
				expr, err := sel.Chooser.Indices(ctx)
				if err != nil {
					return nil, err
				}
				positions := ragscrape.ParseIndexSelection(expr, len(records))
				urls := make([]string, 0, len(positions))
				for _, p := range positions {
					urls = append(urls, records[p].URL)
				}
				log.Info("selected pages by index", "expr", expr, "count", len(urls))
				sel.transition(&state, StateFetch)
				return urls, nil

			case ragscrape.SelectByKeyword:
				keyword, err := sel.Chooser.Keyword(ctx)
				if err != nil {
					return nil, err
				}
				matches := ragscrape.MatchKeyword(records, keyword)
				ok, err := sel.Chooser.Confirm(ctx, keyword, matches)
				if err != nil {
					return nil, err
				}
				if !ok {
					log.Info("keyword selection declined", "keyword", keyword, "matches", len(matches))
					sel.transition(&state, StatePresent)
					continue
				}
				sel.transition(&state, StateFetch)
				return recordURLs(matches), nil

			case ragscrape.SelectNone:
				sel.transition(&state, StateDone)
				return nil, nil

			default:
				log.Warn("invalid selection", "attempt", attempts, "max", maxAttempts)
			}
		}
	}
}

func recordURLs(records []ragscrape.PageRecord) []string {
	urls := make([]string, len(records))
	for i, r := range records {
		urls[i] = r.URL
	}
	return urls
}

// Interactive drives DISCOVER, PRESENT, SELECT and FETCH for one session.
type Interactive struct {
	Discoverer *Discoverer
	Selector   *Selector
	Progress   ProgressFunc
}

// Run discovers pages, lets the operator choose among them and fetches the
// chosen ones. NONE, an empty discovery or an empty selection yield an
// empty ContentMap and a nil error.
func (m *Interactive) Run(ctx context.Context, s *Session) (*ragscrape.ContentMap, error) {
	records, err := m.Discoverer.Discover(ctx, s, m.Progress)
	if err != nil {
		return ragscrape.NewContentMap(), err
	}
	if len(records) == 0 {
		m.Selector.logger().Warn("no pages discovered", "domain", s.Domain)
		return ragscrape.NewContentMap(), nil
	}

	urls, err := m.Selector.Select(ctx, records)
	if err != nil {
		return ragscrape.NewContentMap(), err
	}
	if len(urls) == 0 {
		return ragscrape.NewContentMap(), nil
	}

	return m.Discoverer.Crawler.FetchSelected(ctx, s, urls, m.Progress)
}
