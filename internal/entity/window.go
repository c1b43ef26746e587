package entity

import (
	"fmt"
	"time"
)

// PeriodWindow is a contiguous date range of a fixed length. End - Start is
// always LengthDays.
type PeriodWindow struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	LengthDays int       `json:"length_days"`
}

// NewPeriodWindow returns the window of lengthDays ending at end. A
// zero-or-negative length would produce nonsensical daily averages, so it is
// rejected before any computation.
func NewPeriodWindow(end time.Time, lengthDays int) (PeriodWindow, error) {
	if lengthDays <= 0 {
		return PeriodWindow{}, fmt.Errorf("%w: period length must be positive, got %d", ErrInvalidParams, lengthDays)
	}
	return PeriodWindow{
		Start:      end.AddDate(0, 0, -lengthDays),
		End:        end,
		LengthDays: lengthDays,
	}, nil
}

// Previous returns the equal-length window immediately preceding this one.
// The two windows are adjacent and non-overlapping.
func (w PeriodWindow) Previous() PeriodWindow {
	return PeriodWindow{
		Start:      w.Start.AddDate(0, 0, -w.LengthDays),
		End:        w.Start,
		LengthDays: w.LengthDays,
	}
}

// Contains reports whether t falls inside the window. Start is inclusive,
// End exclusive, so adjacent windows never double-count an order.
func (w PeriodWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
