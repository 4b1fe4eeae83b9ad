// pkg/balltree/radius.go
package balltree

import "github.com/pkg/errors"

// RadiusOptions selects one of the three radius-query output shapes:
// count only, indices only, or indices with distances. CountOnly and
// ReturnDistance are mutually exclusive.
type RadiusOptions struct {
	ReturnDistance bool
	CountOnly      bool
}

// RadiusResult holds one query point's radius-neighborhood. Indices is
// unsorted. Distances, when populated, is parallel to Indices and holds
// true (not reduced) distances. In CountOnly mode only Count is valid.
type RadiusResult struct {
	Count     int
	Indices   []uint32
	Distances []float64
}

// RadiusQuery returns the points within r of q.
func (t *Tree) RadiusQuery(q []float64, r float64, opts RadiusOptions) (RadiusResult, error) {
	if len(q) != t.D() {
		return RadiusResult{}, errors.Wrapf(ErrShapeMismatch, "query has dimension %d, index has %d", len(q), t.D())
	}
	if opts.CountOnly && opts.ReturnDistance {
		return RadiusResult{}, ErrConflictingOptions
	}
	return t.radiusSearch(q, r, opts), nil
}

// RadiusQueryMany runs RadiusQuery over each row of queries. radii is
// either length 1 (broadcast to every query) or len(queries).
func (t *Tree) RadiusQueryMany(queries [][]float64, radii []float64, opts RadiusOptions) ([]RadiusResult, error) {
	if opts.CountOnly && opts.ReturnDistance {
		return nil, ErrConflictingOptions
	}
	if len(radii) != 1 && len(radii) != len(queries) {
		return nil, errors.Wrapf(ErrShapeMismatch, "radii has length %d, want 1 or %d", len(radii), len(queries))
	}

	results := make([]RadiusResult, len(queries))
	for i, q := range queries {
		if len(q) != t.D() {
			return nil, errors.Wrapf(ErrShapeMismatch, "query %d has dimension %d, index has %d", i, len(q), t.D())
		}
		r := radii[0]
		if len(radii) > 1 {
			r = radii[i]
		}
		results[i] = t.radiusSearch(q, r, opts)
	}
	return results, nil
}

// radiusSearch walks the tree pruning whole subtrees via the triangle
// inequality: "all-out" subtrees are skipped entirely, "all-in" subtrees
// are admitted wholesale, and only the remainder is examined point-by-point.
func (t *Tree) radiusSearch(q []float64, r float64, opts RadiusOptions) RadiusResult {
	rhoR := t.metric.RhoFromD(r)
	st := newTraversalStack(t.N())
	st.push(frame{node: 0})

	var res RadiusResult

	for {
		f, ok := st.pop()
		if !ok {
			break
		}
		info := t.info[f.node]
		if info.Len() == 0 {
			continue
		}

		dc := t.metric.Distance(q, t.centroidRow(f.node))

		if dc-info.Radius > r {
			// all-out: no point in this subtree can be within r.
			continue
		}

		if dc+info.Radius < r {
			// all-in: every point in this subtree qualifies.
			n := info.Len()
			res.Count += n
			if opts.CountOnly {
				continue
			}
			for j := info.IdxStart; j < info.IdxEnd; j++ {
				pi := t.idx[j]
				res.Indices = append(res.Indices, pi)
				if opts.ReturnDistance {
					// Bulk admission skips the membership test, not the
					// reported distance: still computed per point.
					res.Distances = append(res.Distances, t.metric.Distance(q, t.data.Row(int(pi))))
				}
			}
			continue
		}

		if info.IsLeaf {
			for j := info.IdxStart; j < info.IdxEnd; j++ {
				pi := t.idx[j]
				rho := t.metric.Reduced(q, t.data.Row(int(pi)))
				if rho <= rhoR {
					res.Count++
					if !opts.CountOnly {
						res.Indices = append(res.Indices, pi)
						if opts.ReturnDistance {
							res.Distances = append(res.Distances, t.metric.DFromRho(rho))
						}
					}
				}
			}
			continue
		}

		st.push(frame{node: leftChild(f.node)})
		st.push(frame{node: rightChild(f.node)})
	}

	return res
}
