package btree

type removeMode int

const (
	removeKey removeMode = iota // removes the given key
	removeMin                   // removes the smallest entry of the sub-tree
	removeMax                   // removes the largest entry of the sub-tree
)

// Remove deletes the key from the tree. Returns false if the key does not
// exist, in which case the stored entries are left unchanged. The shape of
// the tree may still change, since nodes on the search path are refilled
// by borrowing or merging before they are entered.
func (tree *BTree[K, V]) Remove(key K) bool {
	if _, removed := tree.remove(tree.root, key, removeKey); !removed {
		return false
	}

	tree.size--
	return true
}

// remove deletes an entry from the sub-tree rooted at n, which is either
// the root or holds at least t entries. Every child is grown to t entries
// before it is entered, so the leaf finally reached can always give up one
// entry.
func (tree *BTree[K, V]) remove(n *node[K, V], key K, mode removeMode) (entry[K, V], bool) {
	for {
		var idx int
		var found bool

		switch mode {
		case removeMax:
			if n.isLeaf() {
				return n.popEntry(), true
			}
			idx = len(n.children) - 1
		case removeMin:
			if n.isLeaf() {
				return n.removeEntry(0), true
			}
			idx = 0
		default:
			idx, found = n.search(key, tree.compare)
			if n.isLeaf() {
				if found {
					return n.removeEntry(idx), true
				}
				return entry[K, V]{}, false
			}
		}

		if found {
			left, right := n.children[idx], n.children[idx+1]
			switch {
			case len(left.entries) > tree.minEntries():
				out := n.entries[idx]
				n.entries[idx], _ = tree.remove(left, key, removeMax)
				return out, true
			case len(right.entries) > tree.minEntries():
				out := n.entries[idx]
				n.entries[idx], _ = tree.remove(right, key, removeMin)
				return out, true
			default:
				// the key moves down into the merged node as its median
				n = tree.merge(n, idx)
				continue
			}
		}

		if len(n.children[idx].entries) <= tree.minEntries() {
			n = tree.grow(n, idx)
		} else {
			n = n.children[idx]
		}
	}
}

// grow brings child idx of parent up to at least t entries by borrowing
// from a sibling that can spare one, or by merging with a sibling.
// Returns the node now covering the key range of the original child.
func (tree *BTree[K, V]) grow(parent *node[K, V], idx int) *node[K, V] {
	child := parent.children[idx]

	if idx > 0 && len(parent.children[idx-1].entries) > tree.minEntries() {
		left := parent.children[idx-1]
		child.insertEntry(0, parent.entries[idx-1])
		parent.entries[idx-1] = left.popEntry()
		if !left.isLeaf() {
			child.insertChild(0, left.popChild())
		}
		return child
	}

	if idx < len(parent.entries) && len(parent.children[idx+1].entries) > tree.minEntries() {
		right := parent.children[idx+1]
		child.appendEntry(parent.entries[idx])
		parent.entries[idx] = right.removeEntry(0)
		if !right.isLeaf() {
			child.appendChild(right.removeChild(0))
		}
		return child
	}

	if idx >= len(parent.entries) {
		idx--
	}
	return tree.merge(parent, idx)
}

// merge folds child idx+1 of parent and the separating entry idx into
// child idx and returns the merged node. A root left without entries is
// replaced by the merged node.
func (tree *BTree[K, V]) merge(parent *node[K, V], idx int) *node[K, V] {
	child := parent.children[idx]
	separator := parent.removeEntry(idx)
	sibling := parent.removeChild(idx + 1)

	child.appendEntry(separator)
	child.entries = append(child.entries, sibling.entries...)
	child.children = append(child.children, sibling.children...)
	tree.freeNode(sibling)

	if parent == tree.root && len(parent.entries) == 0 {
		tree.root = child
		tree.freeNode(parent)
		tree.heightChanged("root collapse")
	}

	return child
}
