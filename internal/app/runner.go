// Package app runs configured datasets through reconciliation and overlap measurement.
package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vadiminshakov/restake/config"
	"github.com/vadiminshakov/restake/internal/dataset"
	"github.com/vadiminshakov/restake/internal/reconciler"
	"github.com/vadiminshakov/restake/internal/report"
)

// Run processes every dataset concurrently and returns summaries in configuration order.
// The first failure cancels datasets that have not started yet.
func Run(ctx context.Context, logger *zap.Logger, configs []config.Config) ([]report.Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	l := logger.With(zap.String("run_id", uuid.New().String()))
	l.Info("starting run", zap.Int("datasets", len(configs)))

	summaries := make([]report.Summary, len(configs))
	g, ctx := errgroup.WithContext(ctx)

	for i, c := range configs {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			s, err := process(l, c)
			if err != nil {
				return errors.Wrapf(err, "dataset %s", c.Dataset)
			}
			summaries[i] = s

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		l.Error("run failed", zap.Error(err))
		return nil, err
	}

	l.Info("run finished", zap.Int("datasets", len(summaries)))

	return summaries, nil
}

func process(logger *zap.Logger, c config.Config) (report.Summary, error) {
	ds, err := dataset.Load(c.Dataset)
	if err != nil {
		return report.Summary{}, err
	}

	name := c.Name
	if name == "" {
		name = ds.Name
	}
	l := logger.With(zap.String("dataset", name))

	res, err := reconciler.New(l).Reconcile(ds.Deposits, ds.Withdrawals)
	if err != nil {
		return report.Summary{}, errors.Wrap(err, "reconcile")
	}

	s, err := report.Build(name, res, ds.ReferenceWindows, c.AsOf)
	if err != nil {
		return report.Summary{}, err
	}

	l.Info("dataset processed",
		zap.Int("matches", s.Matches),
		zap.Int("intervals", len(s.Intervals)),
		zap.Int64("staked_seconds", s.StakedSeconds),
		zap.Int64("high_yield_seconds", s.HighYieldSeconds),
		zap.String("high_yield_share", s.HighYieldShare.String()))

	return s, nil
}
