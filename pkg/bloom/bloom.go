// Package bloom implements a fixed-size Bloom filter: a set membership
// test with no false negatives and a tunable false positive rate.
package bloom

import (
	"fmt"
	"hash/fnv"

	"go-dbds/util/helpers"

	"github.com/pkg/errors"
)

// ErrZeroSize is returned when a filter is requested with no bits.
var ErrZeroSize = errors.New("bloom filter size must be positive")

// HashFunc maps a value to a 64-bit hash. Each function of a filter sets
// one bit per inserted value.
type HashFunc[T any] func(T) uint64

// DefaultHash hashes the fmt rendering of v with FNV-1a.
func DefaultHash[T any](v T) uint64 {
	h := fnv.New64a()
	fmt.Fprint(h, v)
	return h.Sum64()
}

// Filter is a Bloom filter over values of type T backed by m bits.
type Filter[T any] struct {
	bits   []uint8
	m      uint64
	hashes []HashFunc[T]
}

// New returns an empty filter of m bits using the given hash functions.
// Without hash functions DefaultHash is used.
func New[T any](m uint64, hashes ...HashFunc[T]) (*Filter[T], error) {
	if m == 0 {
		return nil, ErrZeroSize
	}
	if len(hashes) == 0 {
		hashes = []HashFunc[T]{DefaultHash[T]}
	}

	return &Filter[T]{
		bits:   make([]uint8, (m+7)/8),
		m:      m,
		hashes: hashes,
	}, nil
}

func (f *Filter[T]) Insert(v T) {
	for _, hash := range f.hashes {
		bit := hash(v) % f.m
		helpers.SetBit(&f.bits[bit/8], int(bit%8), true)
	}
}

// Contains reports whether v may have been inserted. A false result is
// definite.
func (f *Filter[T]) Contains(v T) bool {
	for _, hash := range f.hashes {
		bit := hash(v) % f.m
		if !helpers.GetBit(f.bits[bit/8], int(bit%8)) {
			return false
		}
	}
	return true
}

// Len returns the number of bits in the filter.
func (f *Filter[T]) Len() uint64 { return f.m }

// Reset clears every bit.
func (f *Filter[T]) Reset() {
	clear(f.bits)
}
