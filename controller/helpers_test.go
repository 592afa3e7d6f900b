package controller

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/milk9111/echoform/component"
)

const step = 100 * time.Millisecond

type fakeSink struct {
	bools    map[string]bool
	floats   map[string]float64
	ints     map[string]int
	triggers []string
	surfaces int
	swapped  []int
}

func newFakeSink(surfaces int) *fakeSink {
	return &fakeSink{
		bools:    map[string]bool{},
		floats:   map[string]float64{},
		ints:     map[string]int{},
		surfaces: surfaces,
	}
}

func (s *fakeSink) SetBool(name string, v bool)     { s.bools[name] = v }
func (s *fakeSink) SetFloat(name string, v float64) { s.floats[name] = v }
func (s *fakeSink) SetInt(name string, v int)       { s.ints[name] = v }
func (s *fakeSink) Trigger(name string)             { s.triggers = append(s.triggers, name) }

func (s *fakeSink) SwapSurface(form int) bool {
	s.swapped = append(s.swapped, form)
	return form >= 0 && form < s.surfaces
}

func (s *fakeSink) count(trigger string) int {
	n := 0
	for _, t := range s.triggers {
		if t == trigger {
			n++
		}
	}
	return n
}

type fakeBody struct {
	x, y   float64
	vx, vy float64
}

func (b *fakeBody) Velocity() (float64, float64) { return b.vx, b.vy }
func (b *fakeBody) SetVelocity(x, y float64)     { b.vx, b.vy = x, y }
func (b *fakeBody) Position() (float64, float64) { return b.x, b.y }
func (b *fakeBody) SetPosition(x, y float64)     { b.x, b.y = x, y }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCharge(t *testing.T, opts ...Option) (*Controller, *fakeSink) {
	t.Helper()
	sink := newFakeSink(component.FormCount)
	opts = append([]Option{WithSink(sink), WithLogger(quietLogger())}, opts...)
	c, err := New(component.DefaultTuning(component.CombatCharge), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, sink
}

func newCombo(t *testing.T) (*Controller, *fakeSink, *fakeBody) {
	t.Helper()
	sink := newFakeSink(component.FormCount)
	body := &fakeBody{}
	c, err := New(component.DefaultTuning(component.CombatCombo),
		WithSink(sink), WithBody(body), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, sink, body
}

// idle runs n ticks with no input.
func idle(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.Tick(component.Input{}, step)
	}
}

// unlockForm switches to f and waits out the transformation lock.
func unlockForm(t *testing.T, c *Controller, f component.Form) {
	t.Helper()
	if !c.ChangeForm(f) {
		t.Fatalf("ChangeForm(%v) rejected", f)
	}
	idle(c, int(c.Tuning().TransformLock/step))
	if !c.CanTransform() {
		t.Fatalf("transform lock still active after %v", c.Tuning().TransformLock)
	}
}
