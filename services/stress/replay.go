package stress

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"go-dbds/config"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrMismatch is returned when a structure disagrees with the reference map.
var ErrMismatch = errors.New("result mismatch")

// Map is the ordered map surface shared by the B-Tree and the skip list.
type Map[K, V any] interface {
	Set(key K, val V)
	Get(key K) (V, bool)
	Remove(key K) bool
	Size() int
	Empty() bool
}

// Target is one structure under test.
type Target struct {
	Name   string
	Degree int
	Map    Map[int, int]

	// Check verifies internal invariants. Optional.
	Check func() error
}

// Result summarizes a finished replay.
type Result struct {
	Run       string
	Structure string
	Degree    int
	Ops       int
	Inserts   int
	Lookups   int
	Removes   int
	Size      int
	Elapsed   time.Duration
}

// reference is a map that can also pick a random present key in O(1).
type reference struct {
	vals map[int]int
	keys []int
	pos  map[int]int
}

func newReference() *reference {
	return &reference{vals: map[int]int{}, pos: map[int]int{}}
}

func (r *reference) set(k, v int) {
	if _, ok := r.vals[k]; !ok {
		r.pos[k] = len(r.keys)
		r.keys = append(r.keys, k)
	}
	r.vals[k] = v
}

func (r *reference) remove(k int) {
	i, ok := r.pos[k]
	if !ok {
		return
	}

	last := r.keys[len(r.keys)-1]
	r.keys[i] = last
	r.pos[last] = i
	r.keys = r.keys[:len(r.keys)-1]
	delete(r.pos, k)
	delete(r.vals, k)
}

// Replay applies cfg.Ops random operations generated from seed to target
// and to a reference map, comparing Get results and sizes after every
// operation. done is incremented once per operation.
func Replay(
	ctx context.Context,
	target *Target,
	cfg *config.StressConfig,
	seed int64,
	done *atomic.Int64,
	log logrus.FieldLogger,
) (*Result, error) {
	rnd := rand.New(rand.NewSource(seed))
	ref := newReference()
	res := &Result{Structure: target.Name, Degree: target.Degree, Ops: cfg.Ops}
	start := time.Now()

	mismatch := func(op string, key int, format string, args ...interface{}) error {
		log.WithFields(logrus.Fields{"op": op, "key": key}).Errorf(format, args...)
		return errors.Wrapf(ErrMismatch, "%s: %s(%d): "+format, append([]interface{}{target.Name, op, key}, args...)...)
	}

	for i := 0; i < cfg.Ops; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrapf(err, "%s: stopped after %d ops", target.Name, i)
			}
		}

		if rnd.Float64() < cfg.InsertProbability || len(ref.keys) == 0 {
			k, v := rnd.Intn(cfg.KeySpace), rnd.Int()
			target.Map.Set(k, v)
			ref.set(k, v)
			res.Inserts++
		} else if rnd.Intn(2) == 0 {
			// lookup, half of them for keys known to be present
			k := rnd.Intn(cfg.KeySpace)
			if rnd.Intn(2) == 0 {
				k = ref.keys[rnd.Intn(len(ref.keys))]
			}

			want, present := ref.vals[k]
			got, ok := target.Map.Get(k)
			if ok != present || got != want {
				return nil, mismatch("get", k, "got (%d, %t), want (%d, %t)", got, ok, want, present)
			}
			res.Lookups++
		} else {
			k := ref.keys[rnd.Intn(len(ref.keys))]
			if rnd.Intn(4) == 0 {
				k = rnd.Intn(cfg.KeySpace)
			}

			_, present := ref.vals[k]
			if removed := target.Map.Remove(k); removed != present {
				return nil, mismatch("remove", k, "removed=%t, present=%t", removed, present)
			}
			ref.remove(k)
			if _, ok := target.Map.Get(k); ok {
				return nil, mismatch("remove", k, "key still present after removal")
			}
			res.Removes++
		}

		if target.Map.Size() != len(ref.vals) || target.Map.Empty() != (len(ref.vals) == 0) {
			return nil, mismatch("size", -1, "size=%d, want %d", target.Map.Size(), len(ref.vals))
		}

		if target.Check != nil && cfg.CheckEvery > 0 && (i+1)%cfg.CheckEvery == 0 {
			if err := target.Check(); err != nil {
				return nil, errors.Wrapf(err, "%s: consistency check after %d ops", target.Name, i+1)
			}
		}
		done.Add(1)
	}

	if target.Check != nil {
		if err := target.Check(); err != nil {
			return nil, errors.Wrapf(err, "%s: final consistency check", target.Name)
		}
	}

	res.Size = target.Map.Size()
	res.Elapsed = time.Since(start)
	return res, nil
}
