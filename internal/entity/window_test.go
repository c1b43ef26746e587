package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriodWindow(t *testing.T) {
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	w, err := NewPeriodWindow(end, 30)
	require.NoError(t, err)
	assert.Equal(t, end.AddDate(0, 0, -30), w.Start)
	assert.Equal(t, end, w.End)
	assert.Equal(t, 30, w.LengthDays)
}

func TestNewPeriodWindow_RejectsNonPositiveLength(t *testing.T) {
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	_, err := NewPeriodWindow(end, 0)
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = NewPeriodWindow(end, -7)
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestPeriodWindow_Previous(t *testing.T) {
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	w, err := NewPeriodWindow(end, 30)
	require.NoError(t, err)

	prev := w.Previous()
	assert.Equal(t, w.LengthDays, prev.LengthDays, "previous window has equal length")
	assert.Equal(t, w.Start, prev.End, "previous window is immediately adjacent")
	assert.Equal(t, w.Start.AddDate(0, 0, -30), prev.Start)
}

func TestPeriodWindow_Contains(t *testing.T) {
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	w, err := NewPeriodWindow(end, 30)
	require.NoError(t, err)

	assert.True(t, w.Contains(w.Start), "start is inclusive")
	assert.False(t, w.Contains(w.End), "end is exclusive")
	assert.True(t, w.Contains(w.Start.AddDate(0, 0, 15)))
	assert.False(t, w.Contains(w.Start.AddDate(0, 0, -1)))
}
