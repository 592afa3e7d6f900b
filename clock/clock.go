package clock

import "time"

// Clock is a virtual clock advanced once per tick. Callbacks scheduled on it
// run inside Advance, ordered by due time and then by scheduling order.
type Clock struct {
	now   time.Duration
	seq   uint64
	tasks []*task
}

type task struct {
	due  time.Duration
	seq  uint64
	fn   func()
	done bool
}

// Handle refers to a scheduled callback. The zero Handle is never pending.
type Handle struct {
	c *Clock
	t *task
}

// New creates a clock at time zero.
func New() *Clock {
	return &Clock{}
}

// Now returns the current virtual time.
func (c *Clock) Now() time.Duration {
	if c == nil {
		return 0
	}
	return c.now
}

// Schedule runs fn once the clock has advanced by at least after.
// Negative delays are treated as zero.
func (c *Clock) Schedule(after time.Duration, fn func()) Handle {
	if c == nil || fn == nil {
		return Handle{}
	}
	if after < 0 {
		after = 0
	}
	c.seq++
	t := &task{due: c.now + after, seq: c.seq, fn: fn}
	c.tasks = append(c.tasks, t)
	return Handle{c: c, t: t}
}

// Advance moves the clock forward by dt and runs every callback that came
// due. While a callback runs, Now reports that callback's due time.
// Callbacks may schedule further work; anything due before the target time
// runs in the same call.
func (c *Clock) Advance(dt time.Duration) {
	if c == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	target := c.now + dt
	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		t.done = true
		c.remove(t)
		c.now = t.due
		t.fn()
	}
	c.now = target
}

// Pending reports how many callbacks are still waiting to run.
func (c *Clock) Pending() int {
	if c == nil {
		return 0
	}
	return len(c.tasks)
}

func (c *Clock) nextDue(target time.Duration) *task {
	var next *task
	for _, t := range c.tasks {
		if t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (c *Clock) remove(t *task) {
	for i, other := range c.tasks {
		if other == t {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return
		}
	}
}

// Pending reports whether the callback has neither run nor been cancelled.
func (h Handle) Pending() bool {
	return h.t != nil && !h.t.done
}

// Due returns the virtual time the callback is scheduled for.
func (h Handle) Due() time.Duration {
	if h.t == nil {
		return 0
	}
	return h.t.due
}

// Cancel stops the callback from running. It reports whether the callback
// was still pending.
func (h Handle) Cancel() bool {
	if !h.Pending() {
		return false
	}
	h.t.done = true
	h.c.remove(h.t)
	return true
}
