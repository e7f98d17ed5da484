package btree

import "github.com/pkg/errors"

// CheckConsistency walks the whole tree and verifies the structural
// invariants: uniform leaf depth, node occupancy, child counts, strictly
// increasing keys and the maintained size. Returns the first violation
// found.
func (tree *BTree[K, V]) CheckConsistency() error {
	c := checker[K, V]{tree: tree, leafDepth: -1}
	if err := c.walk(tree.root, 0); err != nil {
		return err
	}

	if c.count != tree.size {
		return errors.Wrapf(ErrSizeMismatch, "size=%d, entries=%d", tree.size, c.count)
	}
	return nil
}

type checker[K, V any] struct {
	tree      *BTree[K, V]
	leafDepth int
	count     int
	prev      K
	hasPrev   bool
}

func (c *checker[K, V]) walk(n *node[K, V], depth int) error {
	if err := c.checkNode(n, depth); err != nil {
		return err
	}

	for i, e := range n.entries {
		if !n.isLeaf() {
			if err := c.walk(n.children[i], depth+1); err != nil {
				return err
			}
		}

		if c.hasPrev && c.tree.compare(c.prev, e.key) >= 0 {
			return errors.Wrapf(ErrKeyOrder, "depth %d, index %d: '%v' after '%v'", depth, i, e.key, c.prev)
		}
		c.prev, c.hasPrev = e.key, true
		c.count++
	}

	if !n.isLeaf() {
		return c.walk(n.children[len(n.children)-1], depth+1)
	}
	return nil
}

func (c *checker[K, V]) checkNode(n *node[K, V], depth int) error {
	entryCount := len(n.entries)
	maxEntries := c.tree.maxEntries()

	if n == c.tree.root {
		if entryCount > maxEntries || (entryCount == 0 && !n.isLeaf()) {
			return errors.Wrapf(ErrOccupancy, "root holds %d entries, max %d", entryCount, maxEntries)
		}
	} else if entryCount < c.tree.minEntries() || entryCount > maxEntries {
		return errors.Wrapf(
			ErrOccupancy, "depth %d: node %v holds %d entries, want [%d, %d]",
			depth, n, entryCount, c.tree.minEntries(), maxEntries,
		)
	}

	if n.isLeaf() {
		if c.leafDepth == -1 {
			c.leafDepth = depth
		} else if c.leafDepth != depth {
			return errors.Wrapf(ErrUnbalanced, "leaf at depth %d, expected %d", depth, c.leafDepth)
		}
		return nil
	}

	if len(n.children) != entryCount+1 {
		return errors.Wrapf(
			ErrChildCount, "depth %d: node %v has %d children for %d entries",
			depth, n, len(n.children), entryCount,
		)
	}
	return nil
}
