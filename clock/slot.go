package clock

import "time"

// Slot holds at most one pending callback. Setting a slot cancels whatever
// it held before, so repeated actions of one kind never stack timers.
type Slot struct {
	h Handle
}

// Set replaces the pending callback with fn, due after the given delay.
func (s *Slot) Set(c *Clock, after time.Duration, fn func()) {
	if s == nil {
		return
	}
	s.h.Cancel()
	s.h = c.Schedule(after, fn)
}

// Cancel drops the pending callback and reports whether one was pending.
func (s *Slot) Cancel() bool {
	if s == nil {
		return false
	}
	ok := s.h.Cancel()
	s.h = Handle{}
	return ok
}

// Pending reports whether the slot still holds a callback that has not run.
func (s *Slot) Pending() bool {
	return s != nil && s.h.Pending()
}

// Due returns when the pending callback runs, or zero when nothing is pending.
func (s *Slot) Due() time.Duration {
	if !s.Pending() {
		return 0
	}
	return s.h.Due()
}
