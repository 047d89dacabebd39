package clock

import "time"

// Clock is the single source of current time for all date math in the
// lending flow (issue/due/return/paid dates, overdue-day computation).
// Injecting it keeps the services deterministic under test.
type Clock interface {
	Now() time.Time
}

// Real is the wall clock
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// New returns the wall clock
func New() Clock {
	return Real{}
}

// Fixed is a test clock pinned to a settable instant
type Fixed struct {
	Current time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{Current: t}
}

func (f *Fixed) Now() time.Time {
	return f.Current
}

// Advance moves the fixed clock forward
func (f *Fixed) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}
