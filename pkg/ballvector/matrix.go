// pkg/ballvector/matrix.go
package ballvector

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// ErrEmptyMatrix is returned when a matrix would have zero rows or columns.
var ErrEmptyMatrix = errors.New("ballvector: matrix must have at least one row and one column")

// ErrRowLengthMismatch is returned when input rows do not share a common width.
var ErrRowLengthMismatch = errors.New("ballvector: all rows must have the same length")

// ErrFlatLengthMismatch is returned when a flat buffer's length does not
// equal n*d for the claimed shape.
var ErrFlatLengthMismatch = errors.New("ballvector: flat buffer length does not match n*d")

// Matrix is a fixed (n, d) point set stored row-major. A Matrix is
// logically immutable once constructed: callers must not mutate the
// backing buffer of a borrowed Matrix for its lifetime.
type Matrix struct {
	data []float64 // len == n*d, row i occupies data[i*d:(i+1)*d]
	n    int
	d    int
}

// New copies rows into a fresh row-major buffer. Use this when the
// caller's data isn't already laid out contiguously.
func New(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyMatrix
	}
	d := len(rows[0])
	if d == 0 {
		return nil, ErrEmptyMatrix
	}
	flat := make([]float64, len(rows)*d)
	for i, row := range rows {
		if len(row) != d {
			return nil, errors.Wrapf(ErrRowLengthMismatch, "row %d has length %d, want %d", i, len(row), d)
		}
		copy(flat[i*d:(i+1)*d], row)
	}
	return &Matrix{data: flat, n: len(rows), d: d}, nil
}

// NewFlat borrows an already row-major buffer of shape (n, d) without
// copying. The caller must not mutate buf for the lifetime of the Matrix.
func NewFlat(buf []float64, n, d int) (*Matrix, error) {
	if n <= 0 || d <= 0 {
		return nil, ErrEmptyMatrix
	}
	if len(buf) != n*d {
		return nil, errors.Wrapf(ErrFlatLengthMismatch, "got %d elements, want %d", len(buf), n*d)
	}
	return &Matrix{data: buf, n: n, d: d}, nil
}

// N returns the number of points.
func (m *Matrix) N() int { return m.n }

// D returns the number of dimensions.
func (m *Matrix) D() int { return m.d }

// Row returns the i-th point as a slice view into the matrix's backing
// buffer. Callers must treat it as read-only.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.d : (i+1)*m.d]
}

// ToBytes serializes the matrix to little-endian float64 bytes, prefixed
// by n and d as uint32.
func (m *Matrix) ToBytes() []byte {
	buf := make([]byte, 8+len(m.data)*8)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(m.n))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(m.d))
	for i, v := range m.data {
		binary.LittleEndian.PutUint64(buf[8+i*8:], math.Float64bits(v))
	}
	return buf
}

// FromBytes deserializes a matrix produced by ToBytes.
func FromBytes(data []byte) (*Matrix, error) {
	if len(data) < 8 {
		return nil, errors.New("ballvector: matrix bytes too short")
	}
	n := int(binary.LittleEndian.Uint32(data[0:4]))
	d := int(binary.LittleEndian.Uint32(data[4:8]))
	want := 8 + n*d*8
	if len(data) < want {
		return nil, errors.New("ballvector: matrix bytes truncated")
	}
	flat := make([]float64, n*d)
	for i := range flat {
		flat[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8+i*8:]))
	}
	return NewFlat(flat, n, d)
}
