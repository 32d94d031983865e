package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/ragscrape/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayer(t *testing.T) {
	t.Parallel()

	t.Run("returns immediately with zero delay", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		err := crawl.Delayer{}.Wait(context.Background())

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("waits the configured delay", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		err := crawl.Delayer{Delay: 50 * time.Millisecond}.Wait(context.Background())

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := crawl.Delayer{Delay: time.Hour}.Wait(ctx)

		require.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("reports canceled context even without delay", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, crawl.Delayer{}.Wait(ctx), context.Canceled)
	})
}
