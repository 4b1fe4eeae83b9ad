// pkg/balltree/validate.go
package balltree

import "fmt"

// Validate re-checks the data-model and correctness invariants against
// the tree's current arrays. It is not called by NewTree (construction
// already guarantees these by design) — it exists for property tests
// that want to assert the built index actually holds them.
func (t *Tree) Validate(epsilon float64) error {
	n := t.N()

	seen := make([]bool, n)
	for _, v := range t.idx {
		if int(v) >= n {
			return fmt.Errorf("balltree: idx value %d out of range for n=%d", v, n)
		}
		if seen[v] {
			return fmt.Errorf("balltree: idx value %d appears more than once", v)
		}
		seen[v] = true
	}

	if t.info[0].IdxStart != 0 || int(t.info[0].IdxEnd) != n {
		return fmt.Errorf("balltree: root slice is [%d,%d), want [0,%d)", t.info[0].IdxStart, t.info[0].IdxEnd, n)
	}

	for i := range t.info {
		info := t.info[i]
		if info.Len() == 0 {
			continue
		}
		c := t.centroidRow(i)
		for j := info.IdxStart; j < info.IdxEnd; j++ {
			d := t.metric.Distance(c, t.data.Row(int(t.idx[j])))
			if d > info.Radius+epsilon {
				return fmt.Errorf("balltree: node %d point %d at distance %v exceeds radius %v", i, t.idx[j], d, info.Radius)
			}
		}

		if !info.IsLeaf {
			l, r := leftChild(i), rightChild(i)
			li, ri := t.info[l], t.info[r]
			if li.IdxStart != info.IdxStart || ri.IdxEnd != info.IdxEnd || li.IdxEnd != ri.IdxStart {
				return fmt.Errorf("balltree: node %d children slices [%d,%d) [%d,%d) do not partition [%d,%d)",
					i, li.IdxStart, li.IdxEnd, ri.IdxStart, ri.IdxEnd, info.IdxStart, info.IdxEnd)
			}
			if diff := li.Len() - ri.Len(); diff > 1 || diff < -1 {
				return fmt.Errorf("balltree: node %d children sizes %d and %d differ by more than 1", i, li.Len(), ri.Len())
			}
		}
	}

	boundary := (len(t.info) - 1) / 2
	for i := boundary; i < len(t.info); i++ {
		if !t.info[i].IsLeaf {
			return fmt.Errorf("balltree: node %d at or past leaf boundary %d is not a leaf", i, boundary)
		}
	}

	return nil
}
