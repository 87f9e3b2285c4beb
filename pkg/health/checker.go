package health

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/danpilch/checkdisk/pkg/collectors/mounts"
	"github.com/danpilch/checkdisk/pkg/collectors/usage"
	"github.com/danpilch/checkdisk/pkg/filter"
	"github.com/danpilch/checkdisk/pkg/namelist"
	"github.com/danpilch/checkdisk/pkg/threshold"
)

// Options configures a check pass.
type Options struct {
	Filter filter.Config
	Global threshold.Pair
	Unit   threshold.Unit
}

// Checker walks the mount table and evaluates each in-scope filesystem.
type Checker struct {
	opts   Options
	logger *logrus.Logger
}

// NewChecker creates a new checker.
func NewChecker(opts Options, logger *logrus.Logger) *Checker {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	if opts.Unit.Multiplier == 0 {
		opts.Unit = threshold.DefaultUnit
	}
	return &Checker{
		opts:   opts,
		logger: logger,
	}
}

// Run performs one sequential pass. The context is checked between
// filesystems; a cancelled pass returns the context error and no result.
func (c *Checker) Run(ctx context.Context, src mounts.Source, q usage.Querier) (*Overall, error) {
	records, err := src.Mounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate mounts: %w", err)
	}

	c.opts.Filter.PathSelect.Reset()

	var agg Aggregator
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log := c.logger.WithFields(logrus.Fields{
			"mount":  rec.MountDir,
			"device": rec.Device,
			"type":   rec.FSType,
		})

		d := c.opts.Filter.Include(rec)
		if !d.Include {
			log.WithField("reason", d.Reason).Debug("Filesystem excluded")
			continue
		}

		snap, err := q.Usage(rec.MountDir, rec.Device)
		if err != nil {
			log.WithError(err).Debug("Usage query failed, skipping filesystem")
			continue
		}

		res, ok := c.Evaluate(rec, snap, d.Rule)
		if !ok {
			log.Debug("Filesystem has no blocks, skipping")
			continue
		}

		log.WithFields(logrus.Fields{
			"state": res.State,
			"used":  res.UsedPercent,
			"free":  humanize.IBytes(uint64(snap.AvailableBytes())),
		}).Debug("Filesystem evaluated")
		agg.Add(res)
	}

	return agg.Finish(c.opts.Filter.PathSelect), nil
}

// Evaluate scores one filesystem. ok is false for filesystems with no blocks
// and for mounts whose directory is the "none" placeholder.
func (c *Checker) Evaluate(rec mounts.Record, snap usage.Snapshot, rule *namelist.Rule) (Result, bool) {
	if snap.TotalBlocks == 0 || rec.MountDir == "none" {
		return Result{}, false
	}

	var override *threshold.Pair
	if rule != nil {
		override = rule.Thresholds
	}
	pair := threshold.Resolve(override, c.opts.Global)

	used := threshold.UsedPercent(snap.TotalBlocks, snap.AvailableBlocks)
	free := c.opts.Unit.Scale(snap.AvailableBytes())

	return Result{
		Record:      rec,
		Usage:       snap,
		State:       pair.Evaluate(used, free),
		UsedPercent: used,
		Free:        free,
		Total:       c.opts.Unit.Scale(snap.TotalBytes()),
		FreePercent: snap.FreePercent(),
		Thresholds:  pair,
	}, true
}
