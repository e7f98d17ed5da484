package btree

import "go-dbds/pkg/stack"

// ScanOptions controls where a scan starts and in which direction it runs.
type ScanOptions[K any] struct {
	// Key is the starting key. If nil, the scan starts at the smallest key
	// (largest when Reverse is set).
	Key *K

	// Reverse scans in descending key order, starting at the largest key
	// not greater than Key.
	Reverse bool
}

// frame is a position on the explicit root-to-leaf scan path. For
// ascending scans idx is the next entry to emit; for descending scans it
// is one past it.
type frame[K, V any] struct {
	n   *node[K, V]
	idx int
}

// Scan performs an in-order scan starting at the key given in opts. Each
// entry is passed to scanFn. Scan continues until every entry in range has
// been visited or scanFn returns 'true' indicating to stop the scan. The
// tree must not be modified from within scanFn.
func (tree *BTree[K, V]) Scan(opts ScanOptions[K], scanFn func(key K, val V) bool) {
	if tree.size == 0 {
		return
	}

	path := stack.New[*frame[K, V]](tree.Height())
	if opts.Reverse {
		tree.seekReverse(path, opts.Key)
		tree.scanReverse(path, scanFn)
		return
	}

	tree.seek(path, opts.Key)
	tree.scan(path, scanFn)
}

func (tree *BTree[K, V]) seek(path stack.Stack[*frame[K, V]], key *K) {
	if key == nil {
		tree.pushLeftmost(path, tree.root)
		return
	}

	n := tree.root
	for {
		idx, found := n.search(*key, tree.compare)
		path.Push(&frame[K, V]{n: n, idx: idx})
		if found || n.isLeaf() {
			return
		}
		n = n.children[idx]
	}
}

func (tree *BTree[K, V]) scan(path stack.Stack[*frame[K, V]], scanFn func(key K, val V) bool) {
	for !path.Empty() {
		f := path.Top()
		if f.idx >= len(f.n.entries) {
			path.Pop()
			continue
		}

		e := f.n.entries[f.idx]
		f.idx++
		if scanFn(e.key, e.val) {
			return
		}

		if !f.n.isLeaf() {
			tree.pushLeftmost(path, f.n.children[f.idx])
		}
	}
}

func (tree *BTree[K, V]) pushLeftmost(path stack.Stack[*frame[K, V]], n *node[K, V]) {
	for {
		path.Push(&frame[K, V]{n: n})
		if n.isLeaf() {
			return
		}
		n = n.children[0]
	}
}

func (tree *BTree[K, V]) seekReverse(path stack.Stack[*frame[K, V]], key *K) {
	if key == nil {
		tree.pushRightmost(path, tree.root)
		return
	}

	n := tree.root
	for {
		idx, found := n.search(*key, tree.compare)
		if found {
			path.Push(&frame[K, V]{n: n, idx: idx + 1})
			return
		}

		path.Push(&frame[K, V]{n: n, idx: idx})
		if n.isLeaf() {
			return
		}
		n = n.children[idx]
	}
}

func (tree *BTree[K, V]) scanReverse(path stack.Stack[*frame[K, V]], scanFn func(key K, val V) bool) {
	for !path.Empty() {
		f := path.Top()
		if f.idx == 0 {
			path.Pop()
			continue
		}

		f.idx--
		e := f.n.entries[f.idx]
		if scanFn(e.key, e.val) {
			return
		}

		if !f.n.isLeaf() {
			tree.pushRightmost(path, f.n.children[f.idx])
		}
	}
}

func (tree *BTree[K, V]) pushRightmost(path stack.Stack[*frame[K, V]], n *node[K, V]) {
	for {
		path.Push(&frame[K, V]{n: n, idx: len(n.entries)})
		if n.isLeaf() {
			return
		}
		n = n.children[len(n.children)-1]
	}
}
