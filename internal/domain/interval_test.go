package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	e, err := NewEvent(3, 1662616906)
	require.NoError(t, err)
	require.Equal(t, Event{Quantity: 3, Timestamp: 1662616906}, e)

	_, err = NewEvent(0, 1662616906)
	require.True(t, errors.Is(err, ErrInvalidInput))
	require.Contains(t, err.Error(), "quantity must be positive, got 0")

	_, err = NewEvent(1, -1)
	require.True(t, errors.Is(err, ErrInvalidInput))
}

func TestValidateEvents(t *testing.T) {
	require.NoError(t, ValidateEvents("deposits", nil))
	require.NoError(t, ValidateEvents("deposits", []Event{{1, 100}, {2, 100}, {1, 150}}))

	err := ValidateEvents("deposits", []Event{{1, 100}, {1, 90}})
	require.True(t, errors.Is(err, ErrInvalidInput))
	require.Contains(t, err.Error(), "deposits[1]")

	err = ValidateEvents("withdrawals", []Event{{1, 100}, {-2, 120}})
	require.True(t, errors.Is(err, ErrInvalidInput))
	require.Contains(t, err.Error(), "withdrawals[1]")
}

func TestInterval(t *testing.T) {
	open, err := NewInterval(100, OpenEnd)
	require.NoError(t, err)
	require.True(t, open.IsOpen())
	require.Equal(t, "[100, open)", open.String())
	require.Equal(t, int64(50), open.Duration(150))
	require.Zero(t, open.Duration(0))

	closed, err := NewInterval(100, 250)
	require.NoError(t, err)
	require.False(t, closed.IsOpen())
	require.Equal(t, "[100, 250)", closed.String())
	require.Equal(t, int64(150), closed.Duration(0))

	_, err = NewInterval(100, 50)
	require.True(t, errors.Is(err, ErrInvalidInput))
}

func TestValidateIntervals(t *testing.T) {
	require.NoError(t, ValidateIntervals("windows", []Interval{{0, 10}, {5, 20}, {20, OpenEnd}}))

	err := ValidateIntervals("windows", []Interval{{10, 20}, {0, 5}})
	require.True(t, errors.Is(err, ErrInvalidInput))
	require.Contains(t, err.Error(), "windows[1]")
}
