// Package flat provides an exhaustive L2 vector index with a compact binary
// encoding.
//
// The encoding is the four byte magic "RSFI" followed by little-endian
// uint32 version, dimension and count, then count*dimension float32 values.
package flat

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/fwojciec/ragscrape"
)

// Magic identifies an encoded index.
const Magic = "RSFI"

// Version is the encoding version written by WriteTo.
const Version uint32 = 1

// MaxDimension bounds the vector dimension an index accepts.
const MaxDimension = 1 << 16

// maxPrealloc bounds the float32 values reserved up front by Read; larger
// indexes grow as rows arrive.
const maxPrealloc = 1 << 20

// Ensure Index implements ragscrape.VectorIndex at compile time.
var _ ragscrape.VectorIndex = (*Index)(nil)

// Index stores vectors of one fixed dimension contiguously.
type Index struct {
	dim  int
	data []float32
}

// New returns an empty index for vectors of dimension dim.
func New(dim int) (*Index, error) {
	if dim <= 0 {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "index dimension must be positive, got %d", dim)
	}
	if dim > MaxDimension {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "index dimension %d exceeds %d", dim, MaxDimension)
	}
	return &Index{dim: dim}, nil
}

// Add appends vectors. Every vector must match the index dimension; on error
// nothing is added.
func (x *Index) Add(vectors ...[]float32) error {
	for i, v := range vectors {
		if len(v) != x.dim {
			return ragscrape.Errorf(ragscrape.EINVALID, "vector %d has dimension %d, index expects %d", i, len(v), x.dim)
		}
	}
	for _, v := range vectors {
		x.data = append(x.data, v...)
	}
	return nil
}

// Dimension returns the vector dimension.
func (x *Index) Dimension() int { return x.dim }

// Len returns the number of stored vectors.
func (x *Index) Len() int { return len(x.data) / x.dim }

// Vector returns a copy of the i-th vector.
func (x *Index) Vector(i int) []float32 {
	return append([]float32(nil), x.data[i*x.dim:(i+1)*x.dim]...)
}

// Distance returns the squared L2 distance between the i-th vector and q.
func (x *Index) Distance(i int, q []float32) float32 {
	var sum float32
	for j, v := range x.data[i*x.dim : (i+1)*x.dim] {
		d := v - q[j]
		sum += d * d
	}
	return sum
}

// WriteTo encodes the index to w.
func (x *Index) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	header := make([]byte, 16)
	copy(header, Magic)
	binary.LittleEndian.PutUint32(header[4:], Version)
	binary.LittleEndian.PutUint32(header[8:], uint32(x.dim))
	binary.LittleEndian.PutUint32(header[12:], uint32(x.Len()))
	m, err := bw.Write(header)
	n += int64(m)
	if err != nil {
		return n, err
	}

	buf := make([]byte, 4)
	for _, f := range x.data {
		binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
		m, err := bw.Write(buf)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Read decodes an index written by WriteTo.
func Read(r io.Reader) (*Index, error) {
	header := make([]byte, 16)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "read index header: %v", err)
	}
	if string(header[:4]) != Magic {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "not an index file")
	}
	if v := binary.LittleEndian.Uint32(header[4:]); v != Version {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "unsupported index version %d", v)
	}
	dim := int(binary.LittleEndian.Uint32(header[8:]))
	count := int(binary.LittleEndian.Uint32(header[12:]))
	x, err := New(dim)
	if err != nil {
		return nil, err
	}

	// The header is untrusted: rows are read one at a time so a short file
	// fails on the first missing row instead of after a huge allocation.
	x.data = make([]float32, 0, min(dim*count, maxPrealloc))
	br := bufio.NewReader(r)
	row := make([]byte, 4*dim)
	for i := range count {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, ragscrape.Errorf(ragscrape.EINVALID, "read index vector %d of %d: %v", i, count, err)
		}
		for j := range dim {
			x.data = append(x.data, math.Float32frombits(binary.LittleEndian.Uint32(row[4*j:])))
		}
	}
	return x, nil
}
