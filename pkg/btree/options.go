package btree

import "github.com/sirupsen/logrus"

const (
	// MinDegree is the smallest minimum degree a tree can be built with.
	MinDegree = 2

	// DefaultDegree is used when no options are given.
	DefaultDegree = 32

	// MaxDegree is the largest minimum degree a tree can be built with.
	MaxDegree = 64

	// DefaultFreeListSize is the number of released nodes kept for reuse.
	DefaultFreeListSize = 32
)

var defaultOptions = Options{
	Degree:       DefaultDegree,
	FreeListSize: DefaultFreeListSize,
}

// Options represents the configuration options for the B-Tree.
type Options struct {
	// Degree is the minimum degree t of the tree. Every node except the
	// root holds between t-1 and 2t-1 entries. Values outside
	// [MinDegree, MaxDegree] are clamped to the nearest bound.
	Degree int `json:"degree"`

	// FreeListSize caps the number of released nodes kept for reuse by
	// later splits. 0 disables reuse.
	FreeListSize int `json:"free_list_size"`

	// Logger receives debug events when the tree height changes.
	// nil disables logging.
	Logger logrus.FieldLogger `json:"-"`
}
