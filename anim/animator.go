package anim

import "log/slog"

// Surface is the set of clips for one form, keyed by state or trigger name.
type Surface struct {
	Name  string
	Clips map[string]*Clip
}

func (s *Surface) clip(name string) *Clip {
	if s == nil {
		return nil
	}
	return s.Clips[name]
}

// Locomotion clip names, picked from the synced parameters when no one-shot
// clip is running.
const (
	ClipIdle   = "Idle"
	ClipRun    = "Run"
	ClipCrouch = "Crouch"
	ClipRise   = "Rise"
	ClipFall   = "Fall"
	ClipDefend = "Defend"
	ClipCharge = "Charge"
)

// Animator is a parameter-driven animation state machine. Triggers play
// one-shot clips from the active surface; otherwise the locomotion clip is
// chosen from the bool and float parameters. It implements the controller's
// animation sink.
type Animator struct {
	surfaces []*Surface
	active   int

	bools  map[string]bool
	floats map[string]float64
	ints   map[string]int

	player  *Player
	oneShot bool
	emitter Emitter
	log     *slog.Logger
}

// NewAnimator creates an animator over per-form surfaces. Index i is the
// surface for form i; nil entries are allowed.
func NewAnimator(surfaces []*Surface, log *slog.Logger) *Animator {
	if log == nil {
		log = slog.Default()
	}
	a := &Animator{
		surfaces: surfaces,
		bools:    make(map[string]bool),
		floats:   make(map[string]float64),
		ints:     make(map[string]int),
		log:      log,
	}
	a.player = NewPlayer(a.emitter.Emit)
	return a
}

// OnEvent registers a handler for frame and clip-end events.
func (a *Animator) OnEvent(h EventHandler) {
	if a == nil || h == nil {
		return
	}
	a.emitter.Handlers = append(a.emitter.Handlers, h)
}

func (a *Animator) SetBool(name string, v bool)     { a.bools[name] = v }
func (a *Animator) SetFloat(name string, v float64) { a.floats[name] = v }
func (a *Animator) SetInt(name string, v int)       { a.ints[name] = v }

func (a *Animator) Bool(name string) bool     { return a.bools[name] }
func (a *Animator) Float(name string) float64 { return a.floats[name] }
func (a *Animator) Int(name string) int       { return a.ints[name] }

// Trigger plays the clip with the trigger's name on the active surface.
// Unknown triggers are ignored.
func (a *Animator) Trigger(name string) {
	c := a.Surface().clip(name)
	if c == nil {
		a.log.Debug("no clip for trigger", "trigger", name, "surface", a.active)
		return
	}
	a.oneShot = !c.Loop
	a.player.Play(c, true)
}

// SwapSurface activates the surface for form. It reports false and keeps
// the current surface when none is configured.
func (a *Animator) SwapSurface(form int) bool {
	if form < 0 || form >= len(a.surfaces) || a.surfaces[form] == nil {
		return false
	}
	a.active = form
	a.oneShot = false
	a.player.Play(a.locomotion(), true)
	return true
}

// Surface returns the active surface.
func (a *Animator) Surface() *Surface {
	if a.active < 0 || a.active >= len(a.surfaces) {
		return nil
	}
	return a.surfaces[a.active]
}

// Active returns the index of the active surface.
func (a *Animator) Active() int { return a.active }

// Update advances playback by one game update.
func (a *Animator) Update() {
	if a.oneShot && !a.player.Done() {
		a.player.Update()
		if !a.player.Done() {
			return
		}
	}
	a.oneShot = false
	if c := a.locomotion(); c != nil {
		a.player.Play(c, false)
	}
	a.player.Update()
}

// Clip returns the clip being shown.
func (a *Animator) Clip() *Clip { return a.player.Clip() }

// Frame returns the frame index within the current clip.
func (a *Animator) Frame() int { return a.player.Frame() }

// FacingRight mirrors the synced facing parameter.
func (a *Animator) FacingRight() bool {
	v, ok := a.bools["FacingRight"]
	return !ok || v
}

func (a *Animator) locomotion() *Clip {
	s := a.Surface()
	name := ClipIdle
	switch {
	case a.bools["IsDefending"]:
		name = ClipDefend
	case a.bools["IsCharging"]:
		name = ClipCharge
	case !a.bools["IsGrounded"] && a.bools["IsJumpingUp"]:
		name = ClipRise
	case !a.bools["IsGrounded"]:
		name = ClipFall
	case a.bools["IsCrouching"]:
		name = ClipCrouch
	case a.floats["Speed"] > 0:
		name = ClipRun
	}
	if c := s.clip(name); c != nil {
		return c
	}
	return s.clip(ClipIdle)
}
