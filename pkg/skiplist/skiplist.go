// Package skiplist implements an in-memory ordered map on top of a
// randomized stack of sorted linked lists. It is not safe for concurrent
// use.
package skiplist

import (
	"fmt"
	"math/rand"
	"time"

	"go-dbds/pkg/stack"
	"go-dbds/util/helpers"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

const (
	MinProbability     = 0.01
	MaxProbability     = 0.80
	DefaultProbability = 0.25

	// MaxLevel bounds the number of levels a node can be linked into.
	MaxLevel = 16
)

var defaultOptions = Options{
	Probability: DefaultProbability,
}

// Options represents the configuration options for the skip list.
type Options struct {
	// Probability that a node linked at level i is also linked at level
	// i+1. Clamped into [MinProbability, MaxProbability].
	Probability float64 `json:"probability"`

	// Seed for level generation. 0 seeds from the current time.
	Seed int64 `json:"seed"`
}

type node[K, V any] struct {
	key  K
	val  V
	next []*node[K, V]
}

// SkipList is an ordered map with expected logarithmic Set, Get and
// Remove.
type SkipList[K, V any] struct {
	head    *node[K, V]
	compare func(a, b K) int
	p       float64
	level   int
	size    int
	rnd     *rand.Rand

	// predecessors of the last located key, lowest level on top
	path stack.Stack[*node[K, V]]
}

// New returns an empty skip list ordered by the natural order of K. If nil
// options are provided, defaultOptions will be used.
func New[K constraints.Ordered, V any](opts *Options) *SkipList[K, V] {
	return NewFunc[K, V](opts, helpers.Compare[K])
}

// NewFunc returns an empty skip list ordered by the three-way comparison
// compare.
func NewFunc[K, V any](opts *Options, compare func(a, b K) int) *SkipList[K, V] {
	if compare == nil {
		panic(errors.New("skiplist: nil compare function"))
	}
	if opts == nil {
		opts = &defaultOptions
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &SkipList[K, V]{
		head:    &node[K, V]{next: make([]*node[K, V], MaxLevel)},
		compare: compare,
		p:       helpers.Clamp(opts.Probability, MinProbability, MaxProbability),
		level:   1,
		rnd:     rand.New(rand.NewSource(seed)),
		path:    stack.New[*node[K, V]](MaxLevel),
	}
}

// Set inserts the key-value pair. If the key already exists, its value is
// overwritten.
func (sl *SkipList[K, V]) Set(key K, val V) {
	if n := sl.locate(key); n != nil {
		n.val = val
		return
	}

	height := sl.randomLevel()
	n := &node[K, V]{key: key, val: val, next: make([]*node[K, V], height)}
	for lvl := 0; lvl < height; lvl++ {
		prev := sl.head
		if lvl < sl.level {
			prev = sl.path.Pop()
		}
		n.next[lvl] = prev.next[lvl]
		prev.next[lvl] = n
	}

	if height > sl.level {
		sl.level = height
	}
	sl.size++
}

// Get fetches a copy of the value associated with the given key.
func (sl *SkipList[K, V]) Get(key K) (V, bool) {
	x := sl.head
	for lvl := sl.level - 1; lvl >= 0; lvl-- {
		for x.next[lvl] != nil && sl.compare(x.next[lvl].key, key) < 0 {
			x = x.next[lvl]
		}
	}

	if x = x.next[0]; x != nil && sl.compare(x.key, key) == 0 {
		return x.val, true
	}
	var zero V
	return zero, false
}

// Remove deletes the key. Returns false if the key does not exist.
func (sl *SkipList[K, V]) Remove(key K) bool {
	target := sl.locate(key)
	if target == nil {
		return false
	}

	for lvl := 0; !sl.path.Empty(); lvl++ {
		prev := sl.path.Pop()
		if lvl < len(target.next) && prev.next[lvl] == target {
			prev.next[lvl] = target.next[lvl]
		}
	}

	for sl.level > 1 && sl.head.next[sl.level-1] == nil {
		sl.level--
	}
	sl.size--
	return true
}

// Scan passes every entry with key not less than *start (all entries when
// start is nil) to scanFn in ascending order until scanFn returns true.
func (sl *SkipList[K, V]) Scan(start *K, scanFn func(key K, val V) bool) {
	x := sl.head
	if start != nil {
		for lvl := sl.level - 1; lvl >= 0; lvl-- {
			for x.next[lvl] != nil && sl.compare(x.next[lvl].key, *start) < 0 {
				x = x.next[lvl]
			}
		}
	}

	for x = x.next[0]; x != nil; x = x.next[0] {
		if scanFn(x.key, x.val) {
			return
		}
	}
}

func (sl *SkipList[K, V]) Size() int { return sl.size }

func (sl *SkipList[K, V]) Empty() bool { return sl.size == 0 }

// Level returns the number of levels currently in use.
func (sl *SkipList[K, V]) Level() int { return sl.level }

func (sl *SkipList[K, V]) String() string {
	return fmt.Sprintf("SkipList{size=%d, level=%d, p=%.2f}", sl.size, sl.level, sl.p)
}

// locate records the predecessor of key on every level in use and returns
// the node holding key, if any.
func (sl *SkipList[K, V]) locate(key K) *node[K, V] {
	sl.path.Reset()

	x := sl.head
	for lvl := sl.level - 1; lvl >= 0; lvl-- {
		for x.next[lvl] != nil && sl.compare(x.next[lvl].key, key) < 0 {
			x = x.next[lvl]
		}
		sl.path.Push(x)
	}

	if n := x.next[0]; n != nil && sl.compare(n.key, key) == 0 {
		return n
	}
	return nil
}

func (sl *SkipList[K, V]) randomLevel() int {
	height := 1
	for height < MaxLevel && sl.rnd.Float64() < sl.p {
		height++
	}
	return height
}
