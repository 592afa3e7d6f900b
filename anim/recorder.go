package anim

import "log/slog"

// Recorder is a headless sink. It keeps the last value of every parameter
// and the trigger history, and logs triggers at debug level.
type Recorder struct {
	Surfaces int

	Bools    map[string]bool
	Floats   map[string]float64
	Ints     map[string]int
	Triggers []string
	Swaps    []int

	log *slog.Logger
}

// NewRecorder creates a recorder that accepts surface swaps for forms below
// surfaces.
func NewRecorder(surfaces int, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{
		Surfaces: surfaces,
		Bools:    make(map[string]bool),
		Floats:   make(map[string]float64),
		Ints:     make(map[string]int),
		log:      log,
	}
}

func (r *Recorder) SetBool(name string, v bool)     { r.Bools[name] = v }
func (r *Recorder) SetFloat(name string, v float64) { r.Floats[name] = v }
func (r *Recorder) SetInt(name string, v int)       { r.Ints[name] = v }

func (r *Recorder) Trigger(name string) {
	r.Triggers = append(r.Triggers, name)
	r.log.Debug("animation trigger", "trigger", name)
}

func (r *Recorder) SwapSurface(form int) bool {
	r.Swaps = append(r.Swaps, form)
	return form >= 0 && form < r.Surfaces
}

// Count returns how many times a trigger fired.
func (r *Recorder) Count(trigger string) int {
	n := 0
	for _, t := range r.Triggers {
		if t == trigger {
			n++
		}
	}
	return n
}

// Reset clears the trigger history.
func (r *Recorder) Reset() {
	r.Triggers = r.Triggers[:0]
	r.Swaps = r.Swaps[:0]
}
