// pkg/balltree/errors.go
package balltree

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidShape is returned at construction when the point matrix
	// doesn't have n>=1, d>=1.
	ErrInvalidShape = errors.New("balltree: invalid shape")

	// ErrInvalidParameter is returned when p < 1 or leaf_size < 1.
	ErrInvalidParameter = errors.New("balltree: invalid parameter")

	// ErrShapeMismatch is returned when a query point's dimension doesn't
	// match the index, or a radius array's length doesn't match the query
	// batch.
	ErrShapeMismatch = errors.New("balltree: shape mismatch")

	// ErrKOutOfRange is returned when k < 1 or k > n.
	ErrKOutOfRange = errors.New("balltree: k out of range")

	// ErrConflictingOptions is returned when a radius query asks for both
	// CountOnly and ReturnDistance.
	ErrConflictingOptions = errors.New("balltree: count_only and return_distance are mutually exclusive")
)

// NodeOverflowError indicates the builder's node-count upper bound was
// insufficient to hold the tree it produced. This is an implementation
// bug, never a user error: the bound is supposed to be unreachable.
type NodeOverflowError struct {
	NNodes  int
	BadNode int
}

// Error implements the error interface.
func (e *NodeOverflowError) Error() string {
	return fmt.Sprintf("balltree: internal overflow: node %d is not a leaf but sits at or past the computed leaf boundary for n_nodes=%d", e.BadNode, e.NNodes)
}
