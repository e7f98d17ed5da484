package btree

import "github.com/pkg/errors"

// Errors reported by CheckConsistency. Each one is wrapped with the
// location of the violation.
var (
	// ErrUnbalanced means two leaves were found at different depths.
	ErrUnbalanced = errors.New("leaves at different depths")

	// ErrOccupancy means a node holds fewer or more entries than its
	// position in the tree allows.
	ErrOccupancy = errors.New("node occupancy out of bounds")

	// ErrChildCount means an internal node does not have exactly one
	// child more than it has entries.
	ErrChildCount = errors.New("invalid child count")

	// ErrKeyOrder means an in-order walk did not yield strictly
	// increasing keys.
	ErrKeyOrder = errors.New("keys out of order")

	// ErrSizeMismatch means the maintained size does not match the
	// number of entries in the tree.
	ErrSizeMismatch = errors.New("size mismatch")
)
