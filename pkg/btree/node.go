package btree

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type entry[K, V any] struct {
	key K
	val V
}

// node represents an internal or leaf node in the B-Tree. A node is a
// leaf exactly when it has no children.
type node[K, V any] struct {
	entries  []entry[K, V]
	children []*node[K, V]
}

// search performs a binary search in the node entries for the given key
// and returns the index of the first entry not less than key and a flag
// indicating whether that entry holds key itself.
func (n *node[K, V]) search(key K, compare func(a, b K) int) (idx int, found bool) {
	return slices.BinarySearchFunc(n.entries, key, func(e entry[K, V], k K) int {
		return compare(e.key, k)
	})
}

// isLeaf returns true if this node has no children.
func (n *node[K, V]) isLeaf() bool { return len(n.children) == 0 }

// insertEntry inserts the entry at the given index into the node.
func (n *node[K, V]) insertEntry(idx int, e entry[K, V]) {
	n.entries = slices.Insert(n.entries, idx, e)
}

func (n *node[K, V]) appendEntry(e entry[K, V]) {
	n.entries = append(n.entries, e)
}

// removeEntry removes the entry at idx and returns it. The vacated tail
// slot is zeroed so the node does not keep the value alive.
func (n *node[K, V]) removeEntry(idx int) entry[K, V] {
	e := n.entries[idx]
	copy(n.entries[idx:], n.entries[idx+1:])
	n.entries[len(n.entries)-1] = entry[K, V]{}
	n.entries = n.entries[:len(n.entries)-1]
	return e
}

func (n *node[K, V]) popEntry() entry[K, V] {
	return n.removeEntry(len(n.entries) - 1)
}

// truncateEntries keeps the first size entries.
func (n *node[K, V]) truncateEntries(size int) {
	clear(n.entries[size:])
	n.entries = n.entries[:size]
}

// insertChild adds the given child at appropriate location under the node.
func (n *node[K, V]) insertChild(idx int, child *node[K, V]) {
	n.children = slices.Insert(n.children, idx, child)
}

func (n *node[K, V]) appendChild(child *node[K, V]) {
	n.children = append(n.children, child)
}

func (n *node[K, V]) removeChild(idx int) *node[K, V] {
	child := n.children[idx]
	copy(n.children[idx:], n.children[idx+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	return child
}

func (n *node[K, V]) popChild() *node[K, V] {
	return n.removeChild(len(n.children) - 1)
}

func (n *node[K, V]) truncateChildren(size int) {
	clear(n.children[size:])
	n.children = n.children[:size]
}

// reset drops every entry and child reference but keeps the capacity.
func (n *node[K, V]) reset() {
	n.truncateEntries(0)
	n.truncateChildren(0)
}

func (n *node[K, V]) String() string {
	s := "{"
	for _, e := range n.entries {
		s += fmt.Sprintf("'%v' ", e.key)
	}
	s += "} "
	s += fmt.Sprintf("[size=%d, leaf=%t]", len(n.entries), n.isLeaf())
	return s
}
