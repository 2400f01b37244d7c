// Package report summarizes reconciled staking periods against high-yield windows.
package report

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/restake/internal/domain"
	"github.com/vadiminshakov/restake/internal/overlap"
	"github.com/vadiminshakov/restake/internal/reconciler"
)

const sharePrecision = 4

// Summary describes one dataset.
type Summary struct {
	Name             string                  `json:"name"`
	Matches          int                     `json:"matches"`
	Intervals        []domain.Interval       `json:"intervals"`
	OpenIntervals    int                     `json:"open_intervals"`
	Horizon          int64                   `json:"horizon"`
	StakedSeconds    int64                   `json:"staked_seconds"`
	HighYieldSeconds int64                   `json:"high_yield_seconds"`
	HighYieldShare   decimal.Decimal         `json:"high_yield_share"`
	Windows          []overlap.WindowOverlap `json:"windows"`
}

// Build measures reconciled intervals against the reference windows.
// Open intervals are closed at asOf. When asOf is zero, the latest known timestamp is used.
func Build(name string, res reconciler.Result, windows []domain.Interval, asOf int64) (Summary, error) {
	if asOf < 0 {
		return Summary{}, errors.Wrapf(domain.ErrInvalidInput, "as of must not be negative, got %d", asOf)
	}
	if asOf == 0 {
		asOf = horizon(res.Intervals, windows)
	}

	clipped := closeAt(res.Intervals, asOf)

	breakdown, err := overlap.Breakdown(windows, clipped)
	if err != nil {
		return Summary{}, errors.Wrap(err, "measure reference windows")
	}

	s := Summary{
		Name:           name,
		Matches:        len(res.Matches),
		Intervals:      res.Intervals,
		Horizon:        asOf,
		HighYieldShare: decimal.Zero,
		Windows:        breakdown,
	}

	for _, i := range res.Intervals {
		if i.IsOpen() {
			s.OpenIntervals++
		}
	}
	for _, i := range clipped {
		s.StakedSeconds += i.Duration(asOf)
	}
	for _, w := range breakdown {
		s.HighYieldSeconds += w.Seconds
	}

	if s.StakedSeconds > 0 {
		s.HighYieldShare = decimal.NewFromInt(s.HighYieldSeconds).
			Div(decimal.NewFromInt(s.StakedSeconds)).
			Round(sharePrecision)
	}

	return s, nil
}

// horizon is the latest timestamp seen in the intervals or the windows.
func horizon(intervals, windows []domain.Interval) int64 {
	var latest int64
	for _, set := range [][]domain.Interval{intervals, windows} {
		for _, i := range set {
			latest = max(latest, i.Start, i.End)
		}
	}

	return latest
}

// closeAt ends open intervals at asOf, dropping those that start at or after it.
func closeAt(intervals []domain.Interval, asOf int64) []domain.Interval {
	out := make([]domain.Interval, 0, len(intervals))
	for _, i := range intervals {
		if i.IsOpen() {
			if asOf <= i.Start {
				continue
			}
			i.End = asOf
		}
		out = append(out, i)
	}

	return out
}
