// pkg/balltree/node_test.go
package balltree

import "testing"

func TestNodeInfoLen(t *testing.T) {
	n := NodeInfo{IdxStart: 3, IdxEnd: 10}
	if n.Len() != 7 {
		t.Fatalf("expected length 7, got %d", n.Len())
	}
}

func TestHeapAddressing(t *testing.T) {
	cases := []struct{ node, wantLeft, wantRight, wantParent int }{
		{0, 1, 2, 0},
		{1, 3, 4, 0},
		{2, 5, 6, 0},
		{3, 7, 8, 1},
	}
	for _, c := range cases {
		if got := leftChild(c.node); got != c.wantLeft {
			t.Errorf("leftChild(%d) = %d, want %d", c.node, got, c.wantLeft)
		}
		if got := rightChild(c.node); got != c.wantRight {
			t.Errorf("rightChild(%d) = %d, want %d", c.node, got, c.wantRight)
		}
		if c.node == 0 {
			continue
		}
		if got := parent(c.node); got != c.wantParent {
			t.Errorf("parent(%d) = %d, want %d", c.node, got, c.wantParent)
		}
	}
}
