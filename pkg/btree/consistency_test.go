package btree

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCheckConsistency(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(tree *BTree[int, int])
		want    error
	}{
		{
			name:    "valid",
			corrupt: func(*BTree[int, int]) {},
		},
		{
			name: "size",
			corrupt: func(tree *BTree[int, int]) {
				tree.size++
			},
			want: ErrSizeMismatch,
		},
		{
			name: "key order",
			corrupt: func(tree *BTree[int, int]) {
				leaf := tree.root.children[0]
				leaf.entries[0].key, leaf.entries[1].key = leaf.entries[1].key, leaf.entries[0].key
			},
			want: ErrKeyOrder,
		},
		{
			name: "separator order",
			corrupt: func(tree *BTree[int, int]) {
				tree.root.entries[0].key = 1
			},
			want: ErrKeyOrder,
		},
		{
			name: "underfull",
			corrupt: func(tree *BTree[int, int]) {
				tree.root.children[1].truncateEntries(0)
			},
			want: ErrOccupancy,
		},
		{
			name: "overfull",
			corrupt: func(tree *BTree[int, int]) {
				leaf := tree.root.children[1]
				leaf.appendEntry(entry[int, int]{key: 30})
				leaf.appendEntry(entry[int, int]{key: 40})
				tree.size += 2
			},
			want: ErrOccupancy,
		},
		{
			name: "child count",
			corrupt: func(tree *BTree[int, int]) {
				tree.root.appendChild(&node[int, int]{entries: []entry[int, int]{{key: 99}}})
			},
			want: ErrChildCount,
		},
		{
			name: "unbalanced",
			corrupt: func(tree *BTree[int, int]) {
				leaf := tree.root.children[1]
				tree.root.children[1] = &node[int, int]{
					entries:  []entry[int, int]{{key: 15}},
					children: []*node[int, int]{{entries: []entry[int, int]{{key: 12}}}, leaf},
				}
				leaf.removeEntry(0)
			},
			want: ErrUnbalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// [10] / [5 6] [12 20]
			tree := build(t, 10, 20, 5, 6, 12)
			tt.corrupt(tree)

			err := tree.CheckConsistency()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}
