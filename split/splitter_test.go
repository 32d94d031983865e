package split_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/ragscrape/split"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("word%02d", i%100)
	}
	return strings.Join(w, " ")
}

func TestSplitter_Split(t *testing.T) {
	t.Parallel()

	t.Run("text below minimum length yields nothing", func(t *testing.T) {
		t.Parallel()

		s := split.NewSplitter(1000, 200, 50)

		assert.Empty(t, s.Split(strings.Repeat("a", 30)))
	})

	t.Run("short text is a single window", func(t *testing.T) {
		t.Parallel()

		s := split.NewSplitter(1000, 200, 10)
		text := "A single paragraph that easily fits in one window."

		assert.Equal(t, []string{text}, s.Split(text))
	})

	t.Run("prefers paragraph boundaries", func(t *testing.T) {
		t.Parallel()

		s := split.NewSplitter(40, 0, 0)
		text := "First paragraph is here.\n\nSecond paragraph is here."

		assert.Equal(t, []string{"First paragraph is here.", "Second paragraph is here."}, s.Split(text))
	})

	t.Run("windows never exceed chunk size", func(t *testing.T) {
		t.Parallel()

		s := split.NewSplitter(50, 10, 0)

		windows := s.Split(words(200))

		require.NotEmpty(t, windows)
		for _, w := range windows {
			assert.LessOrEqual(t, utf8.RuneCountInString(w), 50)
		}
	})

	t.Run("consecutive windows overlap", func(t *testing.T) {
		t.Parallel()

		s := split.NewSplitter(50, 10, 0)

		windows := s.Split(words(60))

		require.Greater(t, len(windows), 1)
		for i := 1; i < len(windows); i++ {
			prev := strings.Fields(windows[i-1])
			assert.True(t, strings.HasPrefix(windows[i], prev[len(prev)-1]),
				"window %d should start with the last word of window %d", i, i-1)
		}
	})

	t.Run("no overlap when overlap is zero", func(t *testing.T) {
		t.Parallel()

		s := split.NewSplitter(50, 0, 0)

		windows := s.Split(words(60))

		assert.Equal(t, words(60), strings.Join(windows, " "))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		t.Parallel()

		s := split.NewSplitter(1000, 200, 0)

		windows := s.Split(strings.Repeat("é", 2500))

		require.Len(t, windows, 3)
		assert.Equal(t, 1000, utf8.RuneCountInString(windows[0]))
		assert.Equal(t, 1000, utf8.RuneCountInString(windows[1]))
		assert.Equal(t, 900, utf8.RuneCountInString(windows[2]))
	})
}

func TestSplitter_Chunks(t *testing.T) {
	t.Parallel()

	t.Run("attaches url and ordinals in order", func(t *testing.T) {
		t.Parallel()

		s := split.NewSplitter(50, 10, 0)

		chunks := s.Chunks("https://example.com/a", words(60))

		require.Greater(t, len(chunks), 1)
		for i, c := range chunks {
			assert.Equal(t, "https://example.com/a", c.SourceURL)
			assert.Equal(t, i, c.Ordinal)
			assert.NotEmpty(t, c.Text)
		}
	})

	t.Run("short page yields no chunks", func(t *testing.T) {
		t.Parallel()

		s := split.NewSplitter(1000, 200, 50)

		assert.Empty(t, s.Chunks("https://example.com/a", "thirty characters of content.."))
	})
}
