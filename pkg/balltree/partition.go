// pkg/balltree/partition.go
package balltree

import "balltree/pkg/ballvector"

// centroid computes the arithmetic mean, per axis, of the points indexed
// by idx[start:end]. O(n*d).
func centroid(data *ballvector.Matrix, idx []uint32, start, end int) []float64 {
	d := data.D()
	out := make([]float64, d)
	n := end - start
	for j := start; j < end; j++ {
		row := data.Row(int(idx[j]))
		for a := 0; a < d; a++ {
			out[a] += row[a]
		}
	}
	for a := 0; a < d; a++ {
		out[a] /= float64(n)
	}
	return out
}

// widestAxis returns the axis with the largest (max-min) spread over
// idx[start:end]. Ties resolve to the lower-index axis.
func widestAxis(data *ballvector.Matrix, idx []uint32, start, end int) (axis int, spread float64) {
	d := data.D()
	mins := make([]float64, d)
	maxs := make([]float64, d)
	first := data.Row(int(idx[start]))
	copy(mins, first)
	copy(maxs, first)
	for j := start + 1; j < end; j++ {
		row := data.Row(int(idx[j]))
		for a := 0; a < d; a++ {
			if row[a] < mins[a] {
				mins[a] = row[a]
			}
			if row[a] > maxs[a] {
				maxs[a] = row[a]
			}
		}
	}
	best := -1
	var bestSpread float64
	for a := 0; a < d; a++ {
		s := maxs[a] - mins[a]
		if s > bestSpread {
			bestSpread = s
			best = a
		}
	}
	if best == -1 {
		best = 0
	}
	return best, bestSpread
}

// medianPartition rearranges idx[start:end] in place via quickselect so
// that the element landing at position k (absolute index into idx) has
// its axis value in its final sorted position: everything to its left is
// <=, everything to its right is >=. Average O(n).
func medianPartition(data *ballvector.Matrix, idx []uint32, start, end, axis, k int) {
	lo, hi := start, end-1
	axisValue := func(i int) float64 { return data.Row(int(idx[i]))[axis] }

	for lo < hi {
		pivotIdx := lo + (hi-lo)/2
		pivot := axisValue(pivotIdx)
		idx[pivotIdx], idx[hi] = idx[hi], idx[pivotIdx]

		store := lo
		for i := lo; i < hi; i++ {
			if axisValue(i) < pivot {
				idx[i], idx[store] = idx[store], idx[i]
				store++
			}
		}
		idx[store], idx[hi] = idx[hi], idx[store]

		switch {
		case store == k:
			lo, hi = store, store
		case store < k:
			lo = store + 1
		default:
			hi = store - 1
		}
	}
}

// ceilDiv returns ceil(a/b) for positive a, b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
