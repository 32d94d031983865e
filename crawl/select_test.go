package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/crawl"
	"github.com/fwojciec/ragscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(n int) []ragscrape.PageRecord {
	out := make([]ragscrape.PageRecord, n)
	for i := range out {
		out[i] = ragscrape.PageRecord{
			URL:         fmt.Sprintf("https://example.com/page%d", i+1),
			Title:       fmt.Sprintf("Page %d", i+1),
			Description: ragscrape.NoDescription,
		}
	}
	return out
}

// scriptedChooser answers Choose with modes in order and records how many
// times the pages were presented.
func scriptedChooser(modes ...ragscrape.SelectionMode) (*mock.Chooser, *int) {
	presented := 0
	next := 0
	return &mock.Chooser{
		PresentFn: func(_ context.Context, _ []ragscrape.PageRecord) error {
			presented++
			return nil
		},
		ChooseFn: func(_ context.Context) (ragscrape.SelectionMode, error) {
			if next >= len(modes) {
				return ragscrape.SelectInvalid, nil
			}
			m := modes[next]
			next++
			return m, nil
		},
	}, &presented
}

func TestSelector_Select(t *testing.T) {
	t.Parallel()

	t.Run("all selects every page in discovery order", func(t *testing.T) {
		t.Parallel()

		chooser, _ := scriptedChooser(ragscrape.SelectAll)
		var trace []string
		sel := &crawl.Selector{
			Chooser: chooser,
			OnTransition: func(from, to crawl.State) {
				trace = append(trace, from.String()+">"+to.String())
			},
		}

		urls, err := sel.Select(context.Background(), records(3))

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/page1",
			"https://example.com/page2",
			"https://example.com/page3",
		}, urls)
		assert.Equal(t, []string{"discover>present", "present>select", "select>fetch"}, trace)
	})

	t.Run("by index parses ranges against discovered pages", func(t *testing.T) {
		t.Parallel()

		chooser, _ := scriptedChooser(ragscrape.SelectByIndex)
		chooser.IndicesFn = func(_ context.Context) (string, error) {
			return "1,3,5-7", nil
		}
		sel := &crawl.Selector{Chooser: chooser}

		urls, err := sel.Select(context.Background(), records(8))

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/page1",
			"https://example.com/page3",
			"https://example.com/page5",
			"https://example.com/page6",
			"https://example.com/page7",
		}, urls)
	})

	t.Run("by index with only invalid parts selects nothing", func(t *testing.T) {
		t.Parallel()

		chooser, _ := scriptedChooser(ragscrape.SelectByIndex)
		chooser.IndicesFn = func(_ context.Context) (string, error) {
			return "0,99,abc", nil
		}
		sel := &crawl.Selector{Chooser: chooser}

		urls, err := sel.Select(context.Background(), records(3))

		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("confirmed keyword selects matching pages", func(t *testing.T) {
		t.Parallel()

		recs := records(3)
		recs[1].Title = "Installation Guide"
		chooser, _ := scriptedChooser(ragscrape.SelectByKeyword)
		chooser.KeywordFn = func(_ context.Context) (string, error) {
			return "install", nil
		}
		chooser.ConfirmFn = func(_ context.Context, keyword string, matches []ragscrape.PageRecord) (bool, error) {
			assert.Equal(t, "install", keyword)
			assert.Len(t, matches, 1)
			return true, nil
		}
		sel := &crawl.Selector{Chooser: chooser}

		urls, err := sel.Select(context.Background(), recs)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/page2"}, urls)
	})

	t.Run("declined keyword returns to present", func(t *testing.T) {
		t.Parallel()

		chooser, presented := scriptedChooser(ragscrape.SelectByKeyword, ragscrape.SelectNone)
		chooser.KeywordFn = func(_ context.Context) (string, error) {
			return "page", nil
		}
		chooser.ConfirmFn = func(_ context.Context, _ string, _ []ragscrape.PageRecord) (bool, error) {
			return false, nil
		}
		var trace []string
		sel := &crawl.Selector{
			Chooser: chooser,
			OnTransition: func(_, to crawl.State) {
				trace = append(trace, to.String())
			},
		}

		urls, err := sel.Select(context.Background(), records(2))

		require.NoError(t, err)
		assert.Empty(t, urls)
		assert.Equal(t, 2, *presented)
		assert.Equal(t, []string{"present", "select", "present", "select", "done"}, trace)
	})

	t.Run("none selects nothing", func(t *testing.T) {
		t.Parallel()

		chooser, _ := scriptedChooser(ragscrape.SelectNone)
		sel := &crawl.Selector{Chooser: chooser}

		urls, err := sel.Select(context.Background(), records(4))

		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("invalid choice prompts again without presenting", func(t *testing.T) {
		t.Parallel()

		chooser, presented := scriptedChooser(ragscrape.SelectInvalid, ragscrape.SelectionMode(42), ragscrape.SelectAll)
		sel := &crawl.Selector{Chooser: chooser}

		urls, err := sel.Select(context.Background(), records(2))

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		assert.Equal(t, 1, *presented)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		t.Parallel()

		chooser, _ := scriptedChooser()
		var chosen int
		choose := chooser.ChooseFn
		chooser.ChooseFn = func(ctx context.Context) (ragscrape.SelectionMode, error) {
			chosen++
			return choose(ctx)
		}
		sel := &crawl.Selector{Chooser: chooser, MaxAttempts: 3}

		urls, err := sel.Select(context.Background(), records(2))

		assert.Empty(t, urls)
		assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err))
		assert.Equal(t, 3, chosen)
	})

	t.Run("declined confirmations count toward max attempts", func(t *testing.T) {
		t.Parallel()

		chooser := &mock.Chooser{
			PresentFn: func(_ context.Context, _ []ragscrape.PageRecord) error { return nil },
			ChooseFn: func(_ context.Context) (ragscrape.SelectionMode, error) {
				return ragscrape.SelectByKeyword, nil
			},
			KeywordFn: func(_ context.Context) (string, error) { return "x", nil },
			ConfirmFn: func(_ context.Context, _ string, _ []ragscrape.PageRecord) (bool, error) {
				return false, nil
			},
		}
		sel := &crawl.Selector{Chooser: chooser}

		_, err := sel.Select(context.Background(), records(1))

		assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err))
	})

	t.Run("propagates chooser errors", func(t *testing.T) {
		t.Parallel()

		chooser := &mock.Chooser{
			PresentFn: func(_ context.Context, _ []ragscrape.PageRecord) error {
				return errors.New("terminal closed")
			},
		}
		sel := &crawl.Selector{Chooser: chooser}

		_, err := sel.Select(context.Background(), records(1))

		require.EqualError(t, err, "terminal closed")
	})
}

func TestInteractive_Run(t *testing.T) {
	t.Parallel()

	newInteractive := func(s *site, chooser ragscrape.Chooser) *crawl.Interactive {
		c := &crawl.Crawler{Fetcher: s.fetcher(), Extractor: s.extractor(), Store: newMemoryStore().mock()}
		return &crawl.Interactive{
			Discoverer: &crawl.Discoverer{Crawler: c},
			Selector:   &crawl.Selector{Chooser: chooser},
		}
	}

	t.Run("fetches only the selected pages after discovery", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string][]string{
			"https://example.com/":  {"https://example.com/a", "https://example.com/b"},
			"https://example.com/a": nil,
			"https://example.com/b": nil,
		}}
		chooser, _ := scriptedChooser(ragscrape.SelectByIndex)
		chooser.IndicesFn = func(_ context.Context) (string, error) { return "3", nil }
		m := newInteractive(s, chooser)

		sess := newSession(10, 0)
		sess.Seed([]string{"https://example.com/"})

		content, err := m.Run(context.Background(), sess)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/b"}, content.URLs())
		assert.Equal(t, []string{
			"https://example.com/",
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/b",
		}, s.fetched)
		assert.Len(t, sess.Records, 3)
	})

	t.Run("none yields an empty content map without fetching", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string][]string{"https://example.com/": nil}}
		chooser, _ := scriptedChooser(ragscrape.SelectNone)
		m := newInteractive(s, chooser)

		sess := newSession(10, 0)
		sess.Seed([]string{"https://example.com/"})

		content, err := m.Run(context.Background(), sess)

		require.NoError(t, err)
		assert.Equal(t, 0, content.Len())
		assert.Len(t, s.fetched, 1)
	})

	t.Run("skips selection when nothing was discovered", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string][]string{}}
		m := newInteractive(s, &mock.Chooser{})

		sess := newSession(10, 0)
		sess.Seed([]string{"https://example.com/"})

		content, err := m.Run(context.Background(), sess)

		require.NoError(t, err)
		assert.Equal(t, 0, content.Len())
	})

	t.Run("returns exhausted selection error with empty content", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string][]string{"https://example.com/": nil}}
		chooser, _ := scriptedChooser()
		m := newInteractive(s, chooser)
		m.Selector.MaxAttempts = 2

		sess := newSession(10, 0)
		sess.Seed([]string{"https://example.com/"})

		content, err := m.Run(context.Background(), sess)

		assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err))
		assert.Equal(t, 0, content.Len())
	})
}
