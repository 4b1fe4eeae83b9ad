// pkg/balltree/knn.go
package balltree

import (
	"github.com/pkg/errors"
)

// KNN returns the k nearest points to q and their true distances.
// Distances are sorted ascending, a side effect of the bounded sorted
// buffer used internally. If returnDistance is false, distances is nil.
func (t *Tree) KNN(q []float64, k int, returnDistance bool) (indices []uint32, distances []float64, err error) {
	if len(q) != t.D() {
		return nil, nil, errors.Wrapf(ErrShapeMismatch, "query has dimension %d, index has %d", len(q), t.D())
	}
	if k < 1 || k > t.N() {
		return nil, nil, errors.Wrapf(ErrKOutOfRange, "k=%d, n=%d", k, t.N())
	}

	indices, reduced := t.knnSearch(q, k)
	if returnDistance {
		distances = make([]float64, len(reduced))
		for i, rho := range reduced {
			distances[i] = t.metric.DFromRho(rho)
		}
	}
	return indices, distances, nil
}

// KNNMany runs KNN independently over each row of queries, in the order
// given. The core does not parallelize internally; callers wanting
// parallel kNN should fan this call out themselves across goroutines,
// since Tree is safe for concurrent read-only use.
func (t *Tree) KNNMany(queries [][]float64, k int, returnDistance bool) (indices [][]uint32, distances [][]float64, err error) {
	indices = make([][]uint32, len(queries))
	if returnDistance {
		distances = make([][]float64, len(queries))
	}
	for i, q := range queries {
		idx, dist, err := t.KNN(q, k, returnDistance)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "query %d", i)
		}
		indices[i] = idx
		if returnDistance {
			distances[i] = dist
		}
	}
	return indices, distances, nil
}

// knnSearch runs the bounded, best-first traversal. It owns its stack and
// buffer locally, per query call, so that Tree carries no mutable scratch
// state between concurrent queries.
func (t *Tree) knnSearch(q []float64, k int) ([]uint32, []float64) {
	buf := newNeighborBuf(k)
	st := newTraversalStack(t.N())

	st.push(frame{node: 0, lb: t.rhoLB(q, 0)})

	for {
		f, ok := st.pop()
		if !ok {
			break
		}
		if f.lb >= buf.worst() {
			continue
		}

		info := t.info[f.node]
		if info.IsLeaf {
			for j := info.IdxStart; j < info.IdxEnd; j++ {
				pi := t.idx[j]
				delta := t.metric.Reduced(q, t.data.Row(int(pi)))
				buf.insert(delta, pi)
			}
			continue
		}

		l, r := leftChild(f.node), rightChild(f.node)
		lbL, lbR := t.rhoLB(q, l), t.rhoLB(q, r)

		// Ties resolve to the left child popped first (stable): push the
		// larger-lb child first so the smaller-lb (or tied-left) child is
		// popped next, LIFO.
		if lbL <= lbR {
			st.push(frame{node: r, lb: lbR})
			st.push(frame{node: l, lb: lbL})
		} else {
			st.push(frame{node: l, lb: lbL})
			st.push(frame{node: r, lb: lbR})
		}
	}

	idx, reduced := buf.results()
	outIdx := make([]uint32, len(idx))
	outDist := make([]float64, len(reduced))
	copy(outIdx, idx)
	copy(outDist, reduced)
	return outIdx, outDist
}

// rhoLB computes the reduced lower bound on the distance from q to any
// point covered by node i: ρ_from_d(max(0, d(q, centroid[i]) - radius[i])).
func (t *Tree) rhoLB(q []float64, i int) float64 {
	lb := t.metric.Distance(q, t.centroidRow(i)) - t.info[i].Radius
	if lb < 0 {
		lb = 0
	}
	return t.metric.RhoFromD(lb)
}
