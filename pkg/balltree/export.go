// pkg/balltree/export.go
package balltree

import (
	"github.com/pkg/errors"

	"balltree/pkg/ballvector"
	"balltree/pkg/metric"
)

// Header is the small fixed-size summary stored alongside the three
// array blobs that make up a persisted index.
type Header struct {
	N        int
	D        int
	LeafSize int
	P        float64
	NNodes   int
}

// Header returns the tree's persisted-state header.
func (t *Tree) Header() Header {
	return Header{
		N:        t.N(),
		D:        t.D(),
		LeafSize: t.leafSize,
		P:        t.metric.P(),
		NNodes:   len(t.info),
	}
}

// Idx returns the index permutation array. Callers must treat it as
// read-only: it is the Tree's own backing slice, not a copy.
func (t *Tree) Idx() []uint32 { return t.idx }

// Centroids returns the flat (n_nodes*d) centroid matrix, row-major per
// node. Read-only, as with Idx.
func (t *Tree) Centroids() []float64 { return t.centroid }

// Info returns the node-info table. Read-only, as with Idx.
func (t *Tree) Info() []NodeInfo { return t.info }

// FromArrays reconstructs a Tree from previously exported arrays without
// rerunning the builder. data must be the same point set the arrays were
// built from; it is not itself part of the persisted state (only idx,
// centroid and info are).
func FromArrays(h Header, idx []uint32, centroid []float64, info []NodeInfo, data *ballvector.Matrix) (*Tree, error) {
	if data == nil || data.N() != h.N || data.D() != h.D {
		return nil, errors.Wrap(ErrInvalidShape, "data does not match header shape")
	}
	if len(idx) != h.N {
		return nil, errors.Wrap(ErrInvalidShape, "idx length does not match header.N")
	}
	if len(info) != h.NNodes || len(centroid) != h.NNodes*h.D {
		return nil, errors.Wrap(ErrInvalidShape, "centroid/info length does not match header.NNodes")
	}
	m, err := metric.New(h.P)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidParameter, err.Error())
	}

	t := &Tree{
		data:     data,
		metric:   m,
		leafSize: h.LeafSize,
		idx:      append([]uint32(nil), idx...),
		centroid: append([]float64(nil), centroid...),
		info:     append([]NodeInfo(nil), info...),
	}
	return t, nil
}
