// Package btree implements an in-memory B-Tree ordered map. Keys are unique
// and kept in order by a caller supplied three-way comparison; values are
// returned by copy. The tree is not safe for concurrent use.
package btree

import (
	"fmt"
	"io"

	"go-dbds/util/helpers"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// New returns an empty B-Tree ordered by the natural order of K. If nil
// options are provided, defaultOptions will be used.
func New[K constraints.Ordered, V any](opts *Options) *BTree[K, V] {
	return NewFunc[K, V](opts, helpers.Compare[K])
}

// NewFunc returns an empty B-Tree ordered by compare, which must return a
// negative number when a < b, zero when a == b and a positive number when
// a > b, and must define a total order.
func NewFunc[K, V any](opts *Options, compare func(a, b K) int) *BTree[K, V] {
	if compare == nil {
		panic(errors.New("btree: nil compare function"))
	}
	if opts == nil {
		opts = &defaultOptions
	}

	tree := &BTree[K, V]{
		compare: compare,
		degree:  helpers.Clamp(opts.Degree, MinDegree, MaxDegree),
		free:    newFreeList[K, V](helpers.Max(opts.FreeListSize, 0)),
		log:     opts.Logger,
	}
	tree.root = tree.newNode()
	return tree
}

// BTree represents an in-memory B-Tree. The tree exclusively owns every
// node; each node is referenced by exactly one parent or, for the root,
// by the tree itself.
type BTree[K, V any] struct {
	root    *node[K, V]
	compare func(a, b K) int
	degree  int
	size    int
	free    *freeList[K, V]
	log     logrus.FieldLogger
}

// Set inserts the key-value pair into the tree. If the key already exists,
// its value is overwritten in place.
func (tree *BTree[K, V]) Set(key K, val V) {
	if tree.isFull(tree.root) {
		oldRoot := tree.root
		tree.root = tree.newNode()
		tree.root.appendChild(oldRoot)
		tree.split(tree.root, 0)
		tree.heightChanged("root split")
	}

	tree.insertNonFull(tree.root, entry[K, V]{key: key, val: val})
}

// Get fetches a copy of the value associated with the given key.
func (tree *BTree[K, V]) Get(key K) (V, bool) {
	n, idx, found := tree.locate(key)
	if !found {
		var zero V
		return zero, false
	}
	return n.entries[idx].val, true
}

// Has reports whether key is present.
func (tree *BTree[K, V]) Has(key K) bool {
	_, _, found := tree.locate(key)
	return found
}

// Update replaces the value of an existing key with fn(old value).
// Returns false without calling fn if the key does not exist.
func (tree *BTree[K, V]) Update(key K, fn func(V) V) bool {
	n, idx, found := tree.locate(key)
	if !found {
		return false
	}
	n.entries[idx].val = fn(n.entries[idx].val)
	return true
}

// Size returns the number of entries in the entire tree.
func (tree *BTree[K, V]) Size() int { return tree.size }

// Empty reports whether the tree holds no entries.
func (tree *BTree[K, V]) Empty() bool { return tree.size == 0 }

// Degree returns the minimum degree after clamping.
func (tree *BTree[K, V]) Degree() int { return tree.degree }

// Height returns the number of levels. An empty tree has height 1.
func (tree *BTree[K, V]) Height() int {
	h := 1
	for n := tree.root; !n.isLeaf(); n = n.children[0] {
		h++
	}
	return h
}

// Min returns the smallest key and its value.
func (tree *BTree[K, V]) Min() (K, V, bool) {
	if tree.size == 0 {
		var k K
		var v V
		return k, v, false
	}

	n := tree.root
	for !n.isLeaf() {
		n = n.children[0]
	}
	e := n.entries[0]
	return e.key, e.val, true
}

// Max returns the largest key and its value.
func (tree *BTree[K, V]) Max() (K, V, bool) {
	if tree.size == 0 {
		var k K
		var v V
		return k, v, false
	}

	n := tree.root
	for !n.isLeaf() {
		n = n.children[len(n.children)-1]
	}
	e := n.entries[len(n.entries)-1]
	return e.key, e.val, true
}

// Clear removes every entry. Released nodes are offered to the free list.
func (tree *BTree[K, V]) Clear() {
	pending := []*node[K, V]{tree.root}
	for len(pending) > 0 {
		n := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		pending = append(pending, n.children...)
		tree.freeNode(n)
	}

	tree.root = tree.newNode()
	tree.size = 0
}

func (tree *BTree[K, V]) String() string {
	return fmt.Sprintf(
		"BTree{size=%d, degree=%d, height=%d}",
		tree.size, tree.degree, tree.Height(),
	)
}

// Print writes an indented dump of the tree to w, largest keys first, one
// entry per line.
func (tree *BTree[K, V]) Print(w io.Writer) {
	tree.print(w, tree.root, 0)
}

func (tree *BTree[K, V]) print(w io.Writer, n *node[K, V], indent int) {
	for i := len(n.entries) - 1; i >= 0; i-- {
		if !n.isLeaf() {
			tree.print(w, n.children[i+1], indent+4)
		}
		fmt.Fprintf(w, "%*s%v\n", indent, "", n.entries[i].key)
	}

	if !n.isLeaf() {
		tree.print(w, n.children[0], indent+4)
	}
}

func (tree *BTree[K, V]) maxEntries() int { return 2*tree.degree - 1 }

func (tree *BTree[K, V]) minEntries() int { return tree.degree - 1 }

func (tree *BTree[K, V]) isFull(n *node[K, V]) bool {
	return len(n.entries) >= tree.maxEntries()
}

// locate walks down from the root and returns the node holding key and the
// entry index inside it.
func (tree *BTree[K, V]) locate(key K) (*node[K, V], int, bool) {
	n := tree.root
	for {
		idx, found := n.search(key, tree.compare)
		if found {
			return n, idx, true
		}
		if n.isLeaf() {
			return nil, 0, false
		}
		n = n.children[idx]
	}
}

// insertNonFull inserts e into the sub-tree rooted at n, which must not be
// full. Full children are split before they are entered so the parent
// always has room for a promoted median.
func (tree *BTree[K, V]) insertNonFull(n *node[K, V], e entry[K, V]) {
	for {
		idx, found := n.search(e.key, tree.compare)
		if found {
			n.entries[idx].val = e.val
			return
		}

		if n.isLeaf() {
			n.insertEntry(idx, e)
			tree.size++
			return
		}

		if tree.isFull(n.children[idx]) {
			tree.split(n, idx)

			cmp := tree.compare(e.key, n.entries[idx].key)
			if cmp == 0 {
				n.entries[idx].val = e.val
				return
			} else if cmp > 0 {
				idx++
			}
		}

		n = n.children[idx]
	}
}

// split splits the full child at idx of parent. The median entry moves up
// into parent at idx and the upper half of the child becomes a new right
// sibling at idx+1.
func (tree *BTree[K, V]) split(parent *node[K, V], idx int) {
	child := parent.children[idx]
	if len(child.entries) != tree.maxEntries() {
		panic(errors.Errorf("btree: split of non-full node with %d entries", len(child.entries)))
	}

	t := tree.degree
	sibling := tree.newNode()
	median := child.entries[t-1]

	sibling.entries = append(sibling.entries, child.entries[t:]...)
	if !child.isLeaf() {
		sibling.children = append(sibling.children, child.children[t:]...)
		child.truncateChildren(t)
	}
	child.truncateEntries(t - 1)

	parent.insertEntry(idx, median)
	parent.insertChild(idx+1, sibling)
}

func (tree *BTree[K, V]) newNode() *node[K, V] {
	return tree.free.newNode()
}

func (tree *BTree[K, V]) freeNode(n *node[K, V]) {
	if !tree.free.freeNode(n) {
		n.reset()
	}
}

func (tree *BTree[K, V]) heightChanged(event string) {
	if tree.log == nil {
		return
	}

	tree.log.WithFields(logrus.Fields{
		"event":  event,
		"height": tree.Height(),
		"size":   tree.size,
		"degree": tree.degree,
	}).Debug("btree height changed")
}
