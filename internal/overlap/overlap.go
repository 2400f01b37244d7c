// Package overlap measures how long one set of intervals overlaps another.
package overlap

import (
	"github.com/pkg/errors"

	"github.com/vadiminshakov/restake/internal/domain"
)

// WindowOverlap is the overlap accumulated inside one primary interval.
type WindowOverlap struct {
	Window    domain.Interval `json:"window"`
	Seconds   int64           `json:"seconds"`
	Intervals int             `json:"intervals"`
}

// AggregateOverlap returns the total seconds during which secondary intervals overlap primary ones.
func AggregateOverlap(primary, secondary []domain.Interval) (int64, error) {
	windows, err := Breakdown(primary, secondary)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, w := range windows {
		total += w.Seconds
	}

	return total, nil
}

// Breakdown returns the overlap per primary interval.
// Both sets must be ascending by start. An open end reaches as far as the other interval does,
// so overlap between two open intervals is rejected as unbounded.
func Breakdown(primary, secondary []domain.Interval) ([]WindowOverlap, error) {
	if err := domain.ValidateIntervals("primary", primary); err != nil {
		return nil, err
	}
	if err := domain.ValidateIntervals("secondary", secondary); err != nil {
		return nil, err
	}

	windows := make([]WindowOverlap, 0, len(primary))

	for _, p := range primary {
		w := WindowOverlap{Window: p}

		for _, s := range secondary {
			// sorted by start: nothing later can reach into p
			if !p.IsOpen() && s.Start >= p.End {
				break
			}
			if !s.IsOpen() && s.End <= p.Start {
				continue
			}
			if p.IsOpen() && s.IsOpen() {
				return nil, errors.Wrapf(domain.ErrInvalidInput, "unbounded overlap of %s and %s", p, s)
			}

			start := max(p.Start, s.Start)
			end := boundedEnd(p, s)
			if end <= start {
				continue
			}

			w.Seconds += end - start
			w.Intervals++
		}

		windows = append(windows, w)
	}

	return windows, nil
}

// boundedEnd is the earlier of two ends, with at most one of them open.
func boundedEnd(p, s domain.Interval) int64 {
	switch {
	case s.IsOpen():
		return p.End
	case p.IsOpen():
		return s.End
	default:
		return min(p.End, s.End)
	}
}
