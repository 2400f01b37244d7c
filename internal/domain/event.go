package domain

import (
	"github.com/pkg/errors"
)

// ErrInvalidInput marks malformed events or intervals.
var ErrInvalidInput = errors.New("invalid input")

// Event is a timestamped stake or unstake of some quantity.
type Event struct {
	Quantity  int64 `json:"quantity" yaml:"quantity"`
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`
}

// NewEvent creates a validated Event.
func NewEvent(quantity, timestamp int64) (Event, error) {
	e := Event{Quantity: quantity, Timestamp: timestamp}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}

	return e, nil
}

// Validate checks that quantity and timestamp are positive.
func (e Event) Validate() error {
	if e.Quantity <= 0 {
		return errors.Wrapf(ErrInvalidInput, "quantity must be positive, got %d", e.Quantity)
	}
	if e.Timestamp <= 0 {
		return errors.Wrapf(ErrInvalidInput, "timestamp must be positive, got %d", e.Timestamp)
	}

	return nil
}

// ValidateEvents checks every event and the ascending timestamp order of the sequence.
// The side is only used in error messages.
func ValidateEvents(side string, events []Event) error {
	for i, e := range events {
		if err := e.Validate(); err != nil {
			return errors.Wrapf(err, "%s[%d]", side, i)
		}
		if i > 0 && e.Timestamp < events[i-1].Timestamp {
			return errors.Wrapf(ErrInvalidInput, "%s[%d]: timestamp %d is before previous %d",
				side, i, e.Timestamp, events[i-1].Timestamp)
		}
	}

	return nil
}

// TotalQuantity sums quantities of the events.
func TotalQuantity(events []Event) int64 {
	var total int64
	for _, e := range events {
		total += e.Quantity
	}

	return total
}
