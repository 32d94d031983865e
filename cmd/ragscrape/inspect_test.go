package main_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/ragscrape"
	main "github.com/fwojciec/ragscrape/cmd/ragscrape"
	"github.com/fwojciec/ragscrape/flat"
	"github.com/fwojciec/ragscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedIndex(t *testing.T, n int) *ragscrape.LoadedIndex {
	t.Helper()

	idx, err := flat.New(3)
	require.NoError(t, err)
	loaded := &ragscrape.LoadedIndex{Index: idx}
	for i := range n {
		require.NoError(t, idx.Add([]float32{float32(i), 0, 1}))
		loaded.Chunks = append(loaded.Chunks, fmt.Sprintf("chunk %d", i))
		loaded.Metadata = append(loaded.Metadata, ragscrape.ChunkRecord{
			URL:       fmt.Sprintf("https://example.com/p%d", i),
			Title:     fmt.Sprintf("Page %d", i),
			ChunkID:   0,
			ChunkText: fmt.Sprintf("chunk %d", i),
		})
	}
	return loaded
}

func TestInspectCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("summarizes the index and shows the first records", func(t *testing.T) {
		t.Parallel()

		loaded := loadedIndex(t, 4)
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Index: &mock.IndexStore{
				LoadFn: func(context.Context) (*ragscrape.LoadedIndex, error) { return loaded, nil },
			},
		}

		err := (&main.InspectCmd{Limit: 2}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "4 vectors, dimension 3")
		assert.Contains(t, output, "https://example.com/p1")
		assert.NotContains(t, output, "https://example.com/p2")
		assert.Contains(t, output, "... and 2 more")
	})

	t.Run("limit beyond the index shows everything", func(t *testing.T) {
		t.Parallel()

		loaded := loadedIndex(t, 1)
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Index: &mock.IndexStore{
				LoadFn: func(context.Context) (*ragscrape.LoadedIndex, error) { return loaded, nil },
			},
		}

		err := (&main.InspectCmd{Limit: 5}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Page 0")
		assert.NotContains(t, stdout.String(), "more")
	})

	t.Run("missing index points at scrape", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Index: &mock.IndexStore{
				LoadFn: func(context.Context) (*ragscrape.LoadedIndex, error) {
					return nil, ragscrape.Errorf(ragscrape.ENOTFOUND, "index not found")
				},
			},
		}

		err := (&main.InspectCmd{OutputDir: "data", Limit: 5}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, ragscrape.ENOTFOUND, ragscrape.ErrorCode(err))
		assert.Contains(t, ragscrape.ErrorMessage(err), "no index in data")
	})
}
