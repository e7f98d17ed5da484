// Package stress replays random operation sequences against the ordered
// map implementations and a reference Go map, reporting the first
// disagreement.
package stress

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go-dbds/config"
	"go-dbds/pkg/btree"
	"go-dbds/pkg/skiplist"
	"go-dbds/util/logger"
	"go-dbds/util/timer"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type StressService struct {
	cfg *config.StressConfig
	log *logrus.Entry
}

func New(cfg *config.StressConfig) *StressService {
	return &StressService{
		cfg: cfg,
		log: logger.WithPrefix("stress"),
	}
}

// Targets builds a fresh structure for every configured B-Tree degree and,
// if enabled, the skip list.
func (s *StressService) Targets(seed int64) []*Target {
	targets := make([]*Target, 0, len(s.cfg.Degrees)+1)
	for _, degree := range s.cfg.Degrees {
		tree := btree.New[int, int](&btree.Options{
			Degree:       degree,
			FreeListSize: btree.DefaultFreeListSize,
			Logger:       logger.WithPrefix("btree").WithField("degree", degree),
		})
		targets = append(targets, &Target{
			Name:   fmt.Sprintf("btree(t=%d)", tree.Degree()),
			Degree: tree.Degree(),
			Map:    tree,
			Check:  tree.CheckConsistency,
		})
	}

	if s.cfg.SkipListProbability > 0 {
		targets = append(targets, &Target{
			Name: "skiplist",
			Map: skiplist.New[int, int](&skiplist.Options{
				Probability: s.cfg.SkipListProbability,
				Seed:        seed,
			}),
		})
	}
	return targets
}

// Run replays the same operation sequence against every target in
// parallel, one goroutine per target. The first failure cancels the
// remaining runs.
func (s *StressService) Run(ctx context.Context) ([]*Result, error) {
	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runID := uuid.NewString()
	log := s.log.WithField("run", runID)
	targets := s.Targets(seed)
	log.WithFields(logrus.Fields{
		"seed":    seed,
		"ops":     s.cfg.Ops,
		"targets": len(targets),
	}).Info("starting stress run")

	var done atomic.Int64
	total := int64(s.cfg.Ops) * int64(len(targets))
	progress := timer.SetInterval(time.Duration(s.cfg.ProgressInterval), func() {
		n := done.Load()
		log.Infof("progress %d/%d ops (%.1f%%)", n, total, percent(n, total))
	})
	defer progress.Stop()

	results := make([]*Result, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			res, err := Replay(gctx, target, s.cfg, seed, &done, log.WithField("structure", target.Name))
			if err != nil {
				return err
			}
			res.Run = runID
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("stress run failed")
		return nil, err
	}

	for _, res := range results {
		log.WithFields(logrus.Fields{
			"structure": res.Structure,
			"inserts":   res.Inserts,
			"lookups":   res.Lookups,
			"removes":   res.Removes,
			"size":      res.Size,
			"elapsed":   res.Elapsed,
		}).Info("passed")
	}
	return results, nil
}

func percent(n, total int64) float64 {
	if total == 0 {
		return 100
	}
	return float64(n) * 100 / float64(total)
}
