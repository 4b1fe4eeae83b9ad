// pkg/balltree/testdata_test.go
package balltree

import (
	"math/rand"
	"sort"

	"balltree/pkg/ballvector"
	"balltree/pkg/metric"
)

// randomMatrix builds an n x d matrix of uniform points in [-10, 10] from
// a seeded generator, so failures are reproducible.
func randomMatrix(rng *rand.Rand, n, d int) *ballvector.Matrix {
	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, d)
		for j := range row {
			row[j] = rng.Float64()*20 - 10
		}
		rows[i] = row
	}
	m, err := ballvector.New(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// bruteKNN is the oracle: exact k nearest neighbors by scanning every point.
func bruteKNN(data *ballvector.Matrix, m *metric.Minkowski, q []float64, k int) ([]uint32, []float64) {
	type cand struct {
		idx uint32
		d   float64
	}
	cands := make([]cand, data.N())
	for i := 0; i < data.N(); i++ {
		cands[i] = cand{uint32(i), m.Distance(q, data.Row(i))}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].d < cands[j].d })
	idx := make([]uint32, k)
	dist := make([]float64, k)
	for i := 0; i < k; i++ {
		idx[i] = cands[i].idx
		dist[i] = cands[i].d
	}
	return idx, dist
}

// bruteRadius is the oracle for radius queries: exact scan, unsorted.
func bruteRadius(data *ballvector.Matrix, m *metric.Minkowski, q []float64, r float64) map[uint32]float64 {
	out := make(map[uint32]float64)
	for i := 0; i < data.N(); i++ {
		d := m.Distance(q, data.Row(i))
		if d <= r {
			out[uint32(i)] = d
		}
	}
	return out
}
