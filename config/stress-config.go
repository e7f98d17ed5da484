package config

import "time"

// StressConfig drives the randomized equivalence runs of main.
type StressConfig struct {
	// Ops is the number of random operations replayed per run.
	Ops int `json:"ops"`

	// KeySpace bounds generated keys to [0, KeySpace).
	KeySpace int `json:"key_space"`

	// InsertProbability is the chance an operation is a Set. The rest is
	// split evenly between lookups and removals.
	InsertProbability float64 `json:"insert_probability"`

	// Degrees lists the B-Tree minimum degrees to run, one tree each.
	Degrees []int `json:"degrees"`

	// SkipListProbability configures the skip list run. 0 skips it.
	SkipListProbability float64 `json:"skip_list_probability"`

	// CheckEvery runs the full consistency check every N operations.
	CheckEvery int `json:"check_every"`

	// Seed for the operation generator. 0 seeds from the current time.
	Seed int64 `json:"seed"`

	ProgressInterval Duration `json:"progress_interval"`
}

func NewStressConfig() *StressConfig {
	return &StressConfig{
		Ops:                 200000,
		KeySpace:            1 << 20,
		InsertProbability:   0.5,
		Degrees:             []int{2, 3, 8, 32, 64},
		SkipListProbability: 0.25,
		CheckEvery:          10000,
		ProgressInterval:    Duration(time.Second),
	}
}
