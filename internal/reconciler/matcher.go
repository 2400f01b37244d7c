package reconciler

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/restake/internal/domain"
)

type state int

const (
	// stateIdle: no open group, residue is zero.
	stateIdle state = iota
	// stateAccumulating: a withdrawal is larger than the deposits taken so far, residue < 0.
	stateAccumulating
	// stateDepleting: deposits taken exceed withdrawals so far, residue > 0.
	stateDepleting
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAccumulating:
		return "accumulating_deposit"
	case stateDepleting:
		return "depleting_deposit"
	default:
		return "unknown"
	}
}

// matcher holds the cursor state of a single Reconcile call.
type matcher struct {
	l        *zap.Logger
	deposits []domain.Event

	state state
	// residue is deposited minus withdrawn for the current group. Its sign carries across withdrawals.
	residue int64
	// cursor is the next deposit not yet taken. It never moves back.
	cursor  int
	group   Match
	matches []Match
}

// withdraw applies withdrawal i to the current group.
func (m *matcher) withdraw(i int, w domain.Event) error {
	if m.state == stateIdle {
		m.group = Match{FirstDeposit: m.cursor, FirstWithdrawal: i}
	}

	m.group.LastWithdrawal = i
	m.group.Withdrawn += w.Quantity
	m.residue -= w.Quantity

	for m.residue < 0 {
		m.state = stateAccumulating
		if err := m.take(w); err != nil {
			return err
		}
	}

	if m.residue == 0 {
		m.close(w)
		return nil
	}

	// overshoot: surplus stays with the group for the next withdrawal
	m.state = stateDepleting

	return nil
}

// take moves the next deposit into the current group to cover withdrawal w.
func (m *matcher) take(w domain.Event) error {
	if m.cursor >= len(m.deposits) {
		return errors.Wrapf(domain.ErrInvalidInput,
			"withdrawn quantity exceeds deposits at %d, %d left unmatched", w.Timestamp, -m.residue)
	}

	d := m.deposits[m.cursor]
	if d.Timestamp > w.Timestamp {
		return errors.Wrapf(domain.ErrInvalidInput,
			"withdrawal at %d needs deposits[%d] made later at %d", w.Timestamp, m.cursor, d.Timestamp)
	}

	if m.group.Deposited == 0 {
		m.group.Interval.Start = d.Timestamp
	}
	m.group.LastDeposit = m.cursor
	m.group.Deposited += d.Quantity
	m.residue += d.Quantity
	m.cursor++

	return nil
}

// close ends the current group at withdrawal w and resets the accumulator.
func (m *matcher) close(w domain.Event) {
	m.group.Interval.End = w.Timestamp
	m.matches = append(m.matches, m.group)

	m.l.Debug("matched staking interval",
		zap.Int64("start", m.group.Interval.Start),
		zap.Int64("end", m.group.Interval.End),
		zap.Int64("quantity", m.group.Deposited),
		zap.Int("deposits", m.group.LastDeposit-m.group.FirstDeposit+1),
		zap.Int("withdrawals", m.group.LastWithdrawal-m.group.FirstWithdrawal+1))

	m.group = Match{}
	m.residue = 0
	m.state = stateIdle
}

// finish emits the trailing open match for quantity never withdrawn.
func (m *matcher) finish() {
	if m.state != stateDepleting && m.cursor >= len(m.deposits) {
		return
	}

	if m.state == stateIdle {
		m.group = Match{
			Interval:        domain.Interval{Start: m.deposits[m.cursor].Timestamp},
			FirstDeposit:    m.cursor,
			FirstWithdrawal: -1,
			LastWithdrawal:  -1,
		}
	}

	for ; m.cursor < len(m.deposits); m.cursor++ {
		m.group.LastDeposit = m.cursor
		m.group.Deposited += m.deposits[m.cursor].Quantity
	}

	m.group.Interval.End = domain.OpenEnd
	m.matches = append(m.matches, m.group)

	m.l.Info("staking interval still open",
		zap.Int64("start", m.group.Interval.Start),
		zap.Int64("unwithdrawn", m.group.Deposited-m.group.Withdrawn),
		zap.String("state", m.state.String()))
}
