package btree

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newScenarioTree(t *testing.T) *BTree[int, string] {
	tree := New[int, string](&Options{Degree: 2})
	tree.Set(10, "a")
	tree.Set(20, "b")
	tree.Set(5, "c")
	require.Equal(t, 1, tree.Height())
	require.Equal(t, []int{5, 10, 20}, keysOf(tree.root))

	tree.Set(6, "d")
	tree.Set(12, "e")
	require.NoError(t, tree.CheckConsistency())
	return tree
}

func TestBTree_Scenario(t *testing.T) {
	tree := newScenarioTree(t)

	require.Equal(t, 2, tree.Height())
	require.Equal(t, []int{10}, keysOf(tree.root))
	require.Equal(t, []int{5, 6}, keysOf(tree.root.children[0]))
	require.Equal(t, []int{12, 20}, keysOf(tree.root.children[1]))
	require.Equal(t, 5, tree.Size())

	v, ok := tree.Get(6)
	require.True(t, ok)
	require.Equal(t, "d", v)

	require.True(t, tree.Remove(20))
	require.NoError(t, tree.CheckConsistency())
	_, ok = tree.Get(20)
	require.False(t, ok)
	require.Equal(t, 4, tree.Size())

	for k, want := range map[int]string{10: "a", 5: "c", 6: "d", 12: "e"} {
		v, ok := tree.Get(k)
		require.True(t, ok, "key %d", k)
		require.Equal(t, want, v)
	}
}

func TestBTree_DegreeClamp(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
		want int
	}{
		{name: "nil options", opts: nil, want: DefaultDegree},
		{name: "zero", opts: &Options{}, want: MinDegree},
		{name: "below min", opts: &Options{Degree: 1}, want: MinDegree},
		{name: "negative", opts: &Options{Degree: -7}, want: MinDegree},
		{name: "in range", opts: &Options{Degree: 17}, want: 17},
		{name: "max", opts: &Options{Degree: MaxDegree}, want: MaxDegree},
		{name: "above max", opts: &Options{Degree: 1000}, want: MaxDegree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := New[int, int](tt.opts)
			require.Equal(t, tt.want, tree.Degree())
			require.True(t, tree.Empty())
			require.Equal(t, 1, tree.Height())
			require.NoError(t, tree.CheckConsistency())
		})
	}
}

func TestBTree_Overwrite(t *testing.T) {
	tree := New[string, int](&Options{Degree: 2})
	for i, k := range strings.Split("the quick brown fox jumps over a lazy dog", " ") {
		tree.Set(k, i)
	}
	before := tree.Size()

	tree.Set("fox", 100)
	tree.Set("fox", 200)
	require.Equal(t, before, tree.Size())

	v, ok := tree.Get("fox")
	require.True(t, ok)
	require.Equal(t, 200, v)

	// overwrite of a key held by an internal node
	rootKey := tree.root.entries[0].key
	tree.Set(rootKey, -1)
	v, _ = tree.Get(rootKey)
	require.Equal(t, -1, v)
	require.Equal(t, before, tree.Size())
	require.NoError(t, tree.CheckConsistency())
}

func TestBTree_OverwritePromotedMedian(t *testing.T) {
	tree := New[int, string](&Options{Degree: 2})
	tree.Set(10, "a")
	tree.Set(20, "b")
	tree.Set(5, "c")
	tree.Set(30, "d")
	tree.Set(40, "e")
	// root [10] with right child [20 30 40]; overwriting 30 splits that
	// child first and finds 30 promoted into the root
	require.Equal(t, []int{20, 30, 40}, keysOf(tree.root.children[1]))

	tree.Set(30, "x")
	require.Equal(t, []int{10, 30}, keysOf(tree.root))
	require.Equal(t, 5, tree.Size())

	v, ok := tree.Get(30)
	require.True(t, ok)
	require.Equal(t, "x", v)
	require.NoError(t, tree.CheckConsistency())
}

func TestBTree_GetReturnsCopy(t *testing.T) {
	type point struct{ x, y int }
	tree := New[int, point](nil)
	tree.Set(1, point{1, 1})

	p, _ := tree.Get(1)
	p.x = 100
	tree.Set(2, p)

	again, _ := tree.Get(1)
	require.Equal(t, point{1, 1}, again)
}

func TestBTree_Update(t *testing.T) {
	tree := New[int, int](&Options{Degree: 3})
	for i := 0; i < 100; i++ {
		tree.Set(i, i)
	}

	require.True(t, tree.Update(42, func(v int) int { return v * 10 }))
	v, _ := tree.Get(42)
	require.Equal(t, 420, v)

	called := false
	require.False(t, tree.Update(1000, func(v int) int { called = true; return v }))
	require.False(t, called)
	require.Equal(t, 100, tree.Size())
}

func TestBTree_MinMax(t *testing.T) {
	tree := New[int, string](&Options{Degree: 2})
	_, _, ok := tree.Min()
	require.False(t, ok)
	_, _, ok = tree.Max()
	require.False(t, ok)

	for _, k := range rand.New(rand.NewSource(7)).Perm(500) {
		tree.Set(k+1, "v")
	}

	k, v, ok := tree.Min()
	require.True(t, ok)
	require.Equal(t, 1, k)
	require.Equal(t, "v", v)

	k, _, ok = tree.Max()
	require.True(t, ok)
	require.Equal(t, 500, k)
}

func TestBTree_CustomCompare(t *testing.T) {
	desc := func(a, b int) int { return b - a }
	tree := NewFunc[int, int](&Options{Degree: 2}, desc)
	for i := 0; i < 50; i++ {
		tree.Set(i, i*i)
	}
	require.NoError(t, tree.CheckConsistency())

	k, _, _ := tree.Min()
	require.Equal(t, 49, k)

	require.Panics(t, func() { NewFunc[int, int](nil, nil) })
}

func TestBTree_Has(t *testing.T) {
	tree := New[string, struct{}](nil)
	tree.Set("a", struct{}{})
	require.True(t, tree.Has("a"))
	require.False(t, tree.Has("b"))
}

func TestBTree_Clear(t *testing.T) {
	tree := New[int, int](&Options{Degree: 2, FreeListSize: 4})
	for i := 0; i < 200; i++ {
		tree.Set(i, i)
	}

	tree.Clear()
	require.True(t, tree.Empty())
	require.Equal(t, 1, tree.Height())
	// the new empty root came from the free list
	require.Equal(t, 3, tree.free.count())
	_, ok := tree.Get(10)
	require.False(t, ok)

	tree.Set(3, 3)
	require.Equal(t, 1, tree.Size())
	require.NoError(t, tree.CheckConsistency())
}

func TestBTree_StringPrint(t *testing.T) {
	tree := newScenarioTree(t)
	require.Equal(t, "BTree{size=5, degree=2, height=2}", tree.String())

	buf := &bytes.Buffer{}
	tree.Print(buf)
	require.Equal(t, "    20\n    12\n10\n    6\n    5\n", buf.String())
}

func TestBTree_HeightLogging(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	tree := New[int, int](&Options{Degree: 2, Logger: log})
	for i := 0; i < 4; i++ {
		tree.Set(i, i)
	}
	require.Len(t, hook.Entries, 1)
	require.Equal(t, "root split", hook.LastEntry().Data["event"])
	require.Equal(t, 2, hook.LastEntry().Data["height"])

	for i := 0; i < 4; i++ {
		tree.Remove(i)
	}
	require.Equal(t, "root collapse", hook.LastEntry().Data["event"])
	require.Equal(t, 1, hook.LastEntry().Data["height"])
}

func TestBTree_RandomOps(t *testing.T) {
	for _, degree := range []int{MinDegree, 3, 4, 7, DefaultDegree, MaxDegree} {
		degree := degree
		t.Run(fmt.Sprintf("degree=%d", degree), func(t *testing.T) {
			replay(t, degree, 20000, 2000)
		})
	}
}

// replay runs a random mix of Set/Get/Remove against a tree and a map and
// compares them after every operation.
func replay(t *testing.T, degree, ops, keySpace int) {
	rnd := rand.New(rand.NewSource(int64(degree)))
	tree := New[int, int](&Options{Degree: degree})
	ref := map[int]int{}

	for i := 0; i < ops; i++ {
		k := rnd.Intn(keySpace)
		switch rnd.Intn(3) {
		case 0:
			v := rnd.Int()
			tree.Set(k, v)
			ref[k] = v
		case 1:
			_, present := ref[k]
			require.Equal(t, present, tree.Remove(k), "remove %d", k)
			delete(ref, k)
		default:
			want, present := ref[k]
			got, ok := tree.Get(k)
			require.Equal(t, present, ok, "get %d", k)
			require.Equal(t, want, got)
		}
		require.Equal(t, len(ref), tree.Size())

		if degree <= 3 || i%500 == 0 {
			require.NoError(t, tree.CheckConsistency(), "degree=%d op=%d", degree, i)
		}
	}

	require.NoError(t, tree.CheckConsistency())
	keys := make([]int, 0, len(ref))
	for k := range ref {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	got := make([]int, 0, tree.Size())
	tree.Scan(ScanOptions[int]{}, func(k, v int) bool {
		require.Equal(t, ref[k], v)
		got = append(got, k)
		return false
	})
	require.Equal(t, keys, got)
}

func TestBTree_SameBehaviourAcrossDegrees(t *testing.T) {
	trees := []*BTree[int, int]{}
	for d := MinDegree; d <= MaxDegree; d += 9 {
		trees = append(trees, New[int, int](&Options{Degree: d}))
	}

	rnd := rand.New(rand.NewSource(99))
	for i := 0; i < 5000; i++ {
		k, v := rnd.Intn(700), rnd.Int()
		insert := rnd.Intn(2) == 0

		var results []bool
		for _, tree := range trees {
			if insert {
				tree.Set(k, v)
				results = append(results, tree.Has(k))
			} else {
				results = append(results, tree.Remove(k))
			}
		}
		for _, r := range results[1:] {
			require.Equal(t, results[0], r)
		}
	}

	for _, tree := range trees[1:] {
		require.Equal(t, trees[0].Size(), tree.Size())
		require.NoError(t, tree.CheckConsistency())
	}
}
