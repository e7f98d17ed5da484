package btree

// freeList keeps nodes released by merges and root collapses so later
// splits can reuse their backing arrays. A node sits either in the tree or
// in the free list, never in both.
type freeList[K, V any] struct {
	nodes []*node[K, V]
	size  int
}

func newFreeList[K, V any](size int) *freeList[K, V] {
	return &freeList[K, V]{
		nodes: make([]*node[K, V], 0, size),
		size:  size,
	}
}

func (f *freeList[K, V]) newNode() *node[K, V] {
	idx := len(f.nodes) - 1
	if idx < 0 {
		return &node[K, V]{}
	}

	n := f.nodes[idx]
	f.nodes[idx] = nil
	f.nodes = f.nodes[:idx]
	return n
}

// freeNode adds n to the free list and reports whether it was kept.
func (f *freeList[K, V]) freeNode(n *node[K, V]) bool {
	if len(f.nodes) >= f.size {
		return false
	}

	n.reset()
	f.nodes = append(f.nodes, n)
	return true
}

func (f *freeList[K, V]) count() int { return len(f.nodes) }
