// pkg/balltree/tree.go
package balltree

import (
	"math/bits"

	"github.com/pkg/errors"

	"balltree/pkg/ballvector"
	"balltree/pkg/metric"
)

// Tree is a static, array-backed ball tree over a fixed point set. It is
// immutable after NewTree returns: queries never mutate its state, so a
// single Tree may safely serve concurrent query calls from multiple
// goroutines without external synchronization, provided the caller does
// not mutate the backing data matrix.
type Tree struct {
	data     *ballvector.Matrix
	metric   *metric.Minkowski
	leafSize int

	idx      []uint32   // permutation of {0,...,n-1}, length n
	centroid []float64  // n_nodes*d flat, row-major per node
	info     []NodeInfo // length n_nodes
}

// NewTree builds a ball tree over data using cfg. Construction is a single
// linear sweep over node indices in breadth-first order; it never mutates
// data.
func NewTree(data *ballvector.Matrix, cfg Config) (*Tree, error) {
	if data == nil || data.N() < 1 || data.D() < 1 {
		return nil, errors.Wrap(ErrInvalidShape, "point matrix must have n>=1 and d>=1")
	}
	if cfg.LeafSize < 1 {
		return nil, errors.Wrapf(ErrInvalidParameter, "leaf_size=%d must be >= 1", cfg.LeafSize)
	}
	m, err := metric.New(cfg.P)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidParameter, err.Error())
	}

	n := data.N()
	nNodes := nodeCountBound(n, cfg.LeafSize)

	t := &Tree{
		data:     data,
		metric:   m,
		leafSize: cfg.LeafSize,
		idx:      make([]uint32, n),
		centroid: make([]float64, nNodes*data.D()),
		info:     make([]NodeInfo, nNodes),
	}
	for i := range t.idx {
		t.idx[i] = uint32(i)
	}

	if err := t.build(nNodes); err != nil {
		return nil, err
	}
	return t, nil
}

// nodeCountBound computes the node-count upper bound
// n_nodes = 2^(1+ceil(log2(ceil(n/leaf_size)))) - 1.
func nodeCountBound(n, leafSize int) int {
	groups := ceilDiv(n, leafSize)
	if groups < 1 {
		groups = 1
	}
	levels := 1 + ceilLog2(groups)
	return (1 << uint(levels)) - 1
}

// ceilLog2 returns ceil(log2(x)) for x >= 1.
func ceilLog2(x int) int {
	if x <= 1 {
		return 0
	}
	return bits.Len(uint(x - 1))
}

// build fills t.info and t.centroid for every node 0..nNodes-1, splitting
// t.idx in place as it goes, following the "bigger half goes left" rule.
func (t *Tree) build(nNodes int) error {
	n := t.data.N()
	d := t.data.D()

	for i := 0; i < nNodes; i++ {
		var start, end int

		if i == 0 {
			start, end = 0, n
		} else {
			p := parent(i)
			if t.info[p].IsLeaf {
				// Dead node: past a leaf, carries an empty slice.
				t.info[i] = NodeInfo{IdxStart: t.info[p].IdxEnd, IdxEnd: t.info[p].IdxEnd, IsLeaf: true}
				continue
			}
			ps, pe := int(t.info[p].IdxStart), int(t.info[p].IdxEnd)
			mid := ps + ceilDiv(pe-ps, 2)
			if i == leftChild(p) {
				start, end = ps, mid
			} else {
				start, end = mid, pe
			}
		}

		c := centroid(t.data, t.idx, start, end)
		copy(t.centroid[i*d:(i+1)*d], c)

		var maxRho float64
		for j := start; j < end; j++ {
			rho := t.metric.Reduced(c, t.data.Row(int(t.idx[j])))
			if rho > maxRho {
				maxRho = rho
			}
		}
		radius := t.metric.DFromRho(maxRho)

		isLeaf := (end - start) <= t.leafSize
		if !isLeaf {
			axis, spread := widestAxis(t.data, t.idx, start, end)
			if spread == 0 {
				// All points coincide on every axis: nothing left to split on.
				isLeaf = true
			} else {
				k := start + ceilDiv(end-start, 2)
				medianPartition(t.data, t.idx, start, end, axis, k)
			}
		}

		t.info[i] = NodeInfo{
			IdxStart: uint32(start),
			IdxEnd:   uint32(end),
			IsLeaf:   isLeaf,
			Radius:   radius,
		}
	}

	return t.checkOverflow(nNodes)
}

// checkOverflow verifies invariant 5: every node at or past the first
// half of the array must be a leaf. A violation means nodeCountBound was
// insufficient — an implementation bug, not a user error.
func (t *Tree) checkOverflow(nNodes int) error {
	boundary := (nNodes - 1) / 2
	for i := boundary; i < nNodes; i++ {
		if !t.info[i].IsLeaf {
			return &NodeOverflowError{NNodes: nNodes, BadNode: i}
		}
	}
	return nil
}

// N returns the number of points in the index.
func (t *Tree) N() int { return t.data.N() }

// D returns the point dimension.
func (t *Tree) D() int { return t.data.D() }

// LeafSize returns the frozen leaf_size parameter.
func (t *Tree) LeafSize() int { return t.leafSize }

// P returns the frozen Minkowski exponent.
func (t *Tree) P() float64 { return t.metric.P() }

// NNodes returns the size of the node table.
func (t *Tree) NNodes() int { return len(t.info) }

func (t *Tree) centroidRow(node int) []float64 {
	d := t.data.D()
	return t.centroid[node*d : (node+1)*d]
}
