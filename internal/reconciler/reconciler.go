// Package reconciler turns stake and unstake event streams into staking intervals.
package reconciler

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/restake/internal/domain"
)

// Match is one group of deposits and withdrawals whose quantities balance.
// Index ranges are inclusive and point into the slices passed to Reconcile.
// The trailing open match may have no withdrawals, then both withdrawal indexes are -1.
type Match struct {
	Interval        domain.Interval `json:"interval"`
	FirstDeposit    int             `json:"first_deposit"`
	LastDeposit     int             `json:"last_deposit"`
	FirstWithdrawal int             `json:"first_withdrawal"`
	LastWithdrawal  int             `json:"last_withdrawal"`
	Deposited       int64           `json:"deposited"`
	Withdrawn       int64           `json:"withdrawn"`
}

// IsOpen reports whether the match still holds unwithdrawn quantity.
func (m Match) IsOpen() bool {
	return m.Interval.IsOpen()
}

// Result is the output of a reconciliation.
type Result struct {
	// Matches in closing order, as the events paired up. Their intervals may overlap.
	Matches []Match
	// Intervals are the matches coalesced into non-overlapping staking periods, ascending by start.
	Intervals []domain.Interval
}

// Reconciler pairs deposits with withdrawals.
type Reconciler struct {
	l *zap.Logger
}

// New creates a Reconciler. A nil logger disables logging.
func New(logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reconciler{l: logger}
}

// ReconcileIntervals returns the staking intervals for the given deposits and withdrawals.
func ReconcileIntervals(deposits, withdrawals []domain.Event) ([]domain.Interval, error) {
	res, err := New(nil).Reconcile(deposits, withdrawals)
	if err != nil {
		return nil, err
	}

	return res.Intervals, nil
}

// Reconcile walks withdrawals in order and consumes deposits with a forward-only cursor.
// Both sequences must be ascending by timestamp with positive quantities.
func (r *Reconciler) Reconcile(deposits, withdrawals []domain.Event) (Result, error) {
	if len(deposits) == 0 {
		return Result{}, errors.Wrap(domain.ErrInvalidInput, "no deposits")
	}
	if err := domain.ValidateEvents("deposits", deposits); err != nil {
		return Result{}, err
	}
	if err := domain.ValidateEvents("withdrawals", withdrawals); err != nil {
		return Result{}, err
	}

	m := &matcher{
		l:        r.l,
		deposits: deposits,
		matches:  make([]Match, 0, len(withdrawals)+1),
	}

	for i, w := range withdrawals {
		if err := m.withdraw(i, w); err != nil {
			return Result{}, errors.Wrapf(err, "withdrawals[%d]", i)
		}
	}
	m.finish()

	res := Result{
		Matches:   m.matches,
		Intervals: coalesce(m.matches),
	}

	r.l.Debug("reconciled staking events",
		zap.Int("deposits", len(deposits)),
		zap.Int("withdrawals", len(withdrawals)),
		zap.Int("matches", len(res.Matches)),
		zap.Int("intervals", len(res.Intervals)))

	return res, nil
}

// coalesce merges matches that start before the previous period ended:
// the staked position never went back to zero between them.
func coalesce(matches []Match) []domain.Interval {
	out := make([]domain.Interval, 0, len(matches))

	for _, m := range matches {
		next := m.Interval
		n := len(out)
		if n == 0 {
			out = append(out, next)
			continue
		}

		prev := out[n-1]
		if !prev.IsOpen() && next.Start >= prev.End {
			out = append(out, next)
			continue
		}

		switch {
		case prev.IsOpen() || next.IsOpen():
			prev.End = domain.OpenEnd
		case next.End > prev.End:
			prev.End = next.End
		}
		out[n-1] = prev
	}

	return out
}
