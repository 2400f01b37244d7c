package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// OpenEnd is the End value of an interval that has not closed yet.
const OpenEnd int64 = 0

// Interval is a time range in unix seconds, half-open at End.
type Interval struct {
	Start int64 `json:"start" yaml:"start"`
	End   int64 `json:"end" yaml:"end"`
}

// NewInterval creates a validated Interval. Pass OpenEnd as end for an open interval.
func NewInterval(start, end int64) (Interval, error) {
	i := Interval{Start: start, End: end}
	if err := i.Validate(); err != nil {
		return Interval{}, err
	}

	return i, nil
}

// IsOpen reports whether the interval has no end yet.
func (i Interval) IsOpen() bool {
	return i.End == OpenEnd
}

// Validate checks that a closed interval does not end before it starts.
func (i Interval) Validate() error {
	if i.Start < 0 {
		return errors.Wrapf(ErrInvalidInput, "interval start must not be negative, got %d", i.Start)
	}
	if !i.IsOpen() && i.End < i.Start {
		return errors.Wrapf(ErrInvalidInput, "interval end %d is before start %d", i.End, i.Start)
	}

	return nil
}

// Duration returns the length in seconds. Open intervals are measured up to asOf;
// an open interval with asOf at or before its start has zero duration.
func (i Interval) Duration(asOf int64) int64 {
	end := i.End
	if i.IsOpen() {
		end = asOf
	}
	if end <= i.Start {
		return 0
	}

	return end - i.Start
}

func (i Interval) String() string {
	if i.IsOpen() {
		return fmt.Sprintf("[%d, open)", i.Start)
	}

	return fmt.Sprintf("[%d, %d)", i.Start, i.End)
}

// ValidateIntervals checks every interval and the ascending start order of the set.
func ValidateIntervals(side string, intervals []Interval) error {
	for idx, i := range intervals {
		if err := i.Validate(); err != nil {
			return errors.Wrapf(err, "%s[%d]", side, idx)
		}
		if idx > 0 && i.Start < intervals[idx-1].Start {
			return errors.Wrapf(ErrInvalidInput, "%s[%d]: start %d is before previous %d",
				side, idx, i.Start, intervals[idx-1].Start)
		}
	}

	return nil
}
