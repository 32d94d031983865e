package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/ragscrape/mock"
	rsslog "github.com/fwojciec/ragscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingEmbeddingModel_Embed(t *testing.T) {
	t.Parallel()

	t.Run("logs batch size and dimension", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.EmbeddingModel{
			EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
				return [][]float32{{1, 2, 3}, {4, 5, 6}}, nil
			},
		}

		model := rsslog.NewLoggingEmbeddingModel(inner, logger)
		vectors, err := model.Embed(context.Background(), []string{"a", "b"})

		require.NoError(t, err)
		assert.Len(t, vectors, 2)
		output := buf.String()
		assert.Contains(t, output, "embed batch")
		assert.Contains(t, output, "texts=2")
		assert.Contains(t, output, "dim=3")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.EmbeddingModel{
			EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		model := rsslog.NewLoggingEmbeddingModel(inner, logger)
		_, err := model.Embed(context.Background(), []string{"a"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"quota exceeded\"")
	})
}
