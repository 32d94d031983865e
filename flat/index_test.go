package flat_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/flat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-positive dimension", func(t *testing.T) {
		t.Parallel()

		_, err := flat.New(0)

		assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err))
	})

	t.Run("rejects mismatched vectors atomically", func(t *testing.T) {
		t.Parallel()

		x, err := flat.New(2)
		require.NoError(t, err)

		err = x.Add([]float32{1, 2}, []float32{1, 2, 3})

		assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err))
		assert.Zero(t, x.Len())
	})

	t.Run("stores vectors in order", func(t *testing.T) {
		t.Parallel()

		x, err := flat.New(2)
		require.NoError(t, err)
		require.NoError(t, x.Add([]float32{1, 2}, []float32{3, 4}))

		assert.Equal(t, 2, x.Len())
		assert.Equal(t, []float32{3, 4}, x.Vector(1))
		assert.InDelta(t, 8.0, x.Distance(0, []float32{3, 4}), 1e-6)
	})

	t.Run("round trips through the binary encoding", func(t *testing.T) {
		t.Parallel()

		x, err := flat.New(3)
		require.NoError(t, err)
		require.NoError(t, x.Add([]float32{0.1, -0.2, 0.3}, []float32{1, 0, -1}))

		var buf bytes.Buffer
		n, err := x.WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, int64(16+2*3*4), n)
		assert.Equal(t, "RSFI", buf.String()[:4])

		got, err := flat.Read(&buf)

		require.NoError(t, err)
		assert.Equal(t, 3, got.Dimension())
		assert.Equal(t, 2, got.Len())
		assert.Equal(t, []float32{0.1, -0.2, 0.3}, got.Vector(0))
		assert.Equal(t, []float32{1, 0, -1}, got.Vector(1))
	})

	t.Run("rejects foreign files", func(t *testing.T) {
		t.Parallel()

		_, err := flat.Read(bytes.NewReader([]byte("NOPE0000000000000000")))

		assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err))
	})

	t.Run("rejects truncated vectors", func(t *testing.T) {
		t.Parallel()

		x, err := flat.New(2)
		require.NoError(t, err)
		require.NoError(t, x.Add([]float32{1, 2}))
		var buf bytes.Buffer
		_, err = x.WriteTo(&buf)
		require.NoError(t, err)

		_, err = flat.Read(bytes.NewReader(buf.Bytes()[:buf.Len()-2]))

		assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err))
	})

	t.Run("rejects corrupt headers without reading vectors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name       string
			dim, count uint32
		}{
			{"maximal dimension and count", 0xFFFFFFFF, 0xFFFFFFFF},
			{"dimension beyond limit", flat.MaxDimension + 1, 1},
			{"plausible header on an empty body", 768, 1_000_000},
		}
		for _, tt := range tests {
			header := []byte(flat.Magic)
			header = binary.LittleEndian.AppendUint32(header, flat.Version)
			header = binary.LittleEndian.AppendUint32(header, tt.dim)
			header = binary.LittleEndian.AppendUint32(header, tt.count)

			_, err := flat.Read(bytes.NewReader(header))

			assert.Equal(t, ragscrape.EINVALID, ragscrape.ErrorCode(err), tt.name)
		}
	})
}
