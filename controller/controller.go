package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/milk9111/echoform/clock"
	"github.com/milk9111/echoform/component"
)

var (
	ErrNoBody          = errors.New("controller: body movement requires a physics body")
	ErrUnknownCombat   = errors.New("controller: unknown combat mode")
	ErrUnknownMovement = errors.New("controller: unknown movement mode")
)

// Body is the physics body driven by BodyMover and kept in sync by
// KinematicMover.
type Body interface {
	Velocity() (x, y float64)
	SetVelocity(x, y float64)
	Position() (x, y float64)
	SetPosition(x, y float64)
}

// Controller owns one character's ActionState and advances it once per
// fixed tick. It is not safe for concurrent use; every method is expected
// to run on the game thread.
type Controller struct {
	state  component.ActionState
	tuning component.Tuning
	input  component.Input

	clock    *clock.Clock
	sink     AnimationSink
	body     Body
	mover    Mover
	combat   CombatStrategy
	pipeline *Pipeline
	log      *slog.Logger

	attackReset    clock.Slot
	specialReset   clock.Slot
	hurtReset      clock.Slot
	rollEnd        clock.Slot
	transformUnset clock.Slot

	rollBuffer    clock.Slot
	specialBuffer clock.Slot
	jumpBuffer    clock.Slot
	attackBuffer  clock.Slot
}

// Option configures a Controller.
type Option func(*Controller)

// WithSink attaches the animation collaborator.
func WithSink(s AnimationSink) Option {
	return func(c *Controller) { c.sink = s }
}

// WithBody attaches the physics body.
func WithBody(b Body) Option {
	return func(c *Controller) { c.body = b }
}

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock shares an existing virtual clock.
func WithClock(clk *clock.Clock) Option {
	return func(c *Controller) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithPosition sets the spawn position.
func WithPosition(x, y float64) Option {
	return func(c *Controller) { c.state.Position = component.Vec2{X: x, Y: y} }
}

// New spawns a controller in the base form.
func New(t component.Tuning, opts ...Option) (*Controller, error) {
	c := &Controller{
		state:  component.NewActionState(),
		tuning: t,
		clock:  clock.New(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	switch t.Combat {
	case component.CombatCombo:
		c.combat = &ComboCombat{}
	case component.CombatCharge:
		c.combat = &ChargeCombat{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCombat, t.Combat)
	}

	switch t.Movement {
	case component.MovementKinematic:
		c.mover = &KinematicMover{}
	case component.MovementBody:
		if c.body == nil {
			return nil, ErrNoBody
		}
		c.mover = &BodyMover{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMovement, t.Movement)
	}

	if c.body != nil {
		if t.Movement == component.MovementBody {
			x, y := c.body.Position()
			c.state.Position = component.Vec2{X: x, Y: y}
		} else {
			c.body.SetPosition(c.state.Position.X, c.state.Position.Y)
		}
	}

	c.pipeline = NewPipeline(
		phaseFunc{"input", (*Controller).inputPhase},
		phaseFunc{"movement", (*Controller).movementPhase},
		phaseFunc{"combat", (*Controller).combatPhase},
		phaseFunc{"form", (*Controller).formPhase},
		phaseFunc{"sync", (*Controller).syncPhase},
		phaseFunc{"decay", (*Controller).decayPhase},
	)

	c.log.Debug("controller spawned",
		"combat", c.combat.Name(),
		"movement", c.mover.Name(),
		"form", c.state.Form,
	)
	return c, nil
}

// Tick runs one fixed step: input, movement, combat, form, animation sync,
// then buffer decay as the virtual clock advances by dt.
func (c *Controller) Tick(in component.Input, dt time.Duration) {
	if c == nil {
		return
	}
	c.input = in
	c.pipeline.Run(c, dt)
}

// SetTuning swaps numeric tuning values. Combat and movement modes are fixed
// for the controller's lifetime, so changes to them are ignored.
func (c *Controller) SetTuning(t component.Tuning) {
	if c == nil {
		return
	}
	if t.Combat != c.tuning.Combat || t.Movement != c.tuning.Movement {
		c.log.Warn("tuning reload cannot change modes; keeping current",
			"combat", c.tuning.Combat,
			"movement", c.tuning.Movement,
		)
		t.Combat = c.tuning.Combat
		t.Movement = c.tuning.Movement
	}
	c.tuning = t
	c.log.Info("tuning reloaded")
}

// Tuning returns the active tuning values.
func (c *Controller) Tuning() component.Tuning { return c.tuning }

// Clock exposes the controller's virtual clock.
func (c *Controller) Clock() *clock.Clock { return c.clock }

// Now returns the controller's virtual time.
func (c *Controller) Now() time.Duration { return c.clock.Now() }

// Phases lists the tick phases in execution order.
func (c *Controller) Phases() []string { return c.pipeline.Names() }

// State returns a copy of the current action state.
func (c *Controller) State() component.ActionState { return c.state }

func (c *Controller) Form() component.Form             { return c.state.Form }
func (c *Controller) IsDefending() bool                { return c.state.IsDefending }
func (c *Controller) IsRolling() bool                  { return c.state.IsRolling }
func (c *Controller) IsAttacking() bool                { return c.state.IsAttacking }
func (c *Controller) IsCrouching() bool                { return c.state.IsCrouching }
func (c *Controller) IsCharging() bool                 { return c.state.IsCharging }
func (c *Controller) IsHurt() bool                     { return c.state.IsHurt }
func (c *Controller) CanTransform() bool               { return c.state.CanTransform }
func (c *Controller) ChargeDuration() time.Duration    { return c.state.ChargeDuration }
func (c *Controller) Position() component.Vec2         { return c.state.Position }
func (c *Controller) CombatMode() component.CombatMode { return c.tuning.Combat }

// OnGroundEnter is called by the collision source when the feet touch a
// ground-tagged surface.
func (c *Controller) OnGroundEnter() {
	if c == nil {
		return
	}
	c.state.IsGrounded = true
	c.mover.Land(c)
}

// OnGroundExit is called when the feet leave the last ground surface.
func (c *Controller) OnGroundExit() {
	if c == nil {
		return
	}
	c.state.IsGrounded = false
	c.state.IsCrouching = false
}

func (c *Controller) inputPhase(time.Duration) {
	in := c.input
	c.state.HorizontalInput = clampAxis(in.MoveX)
	if in.RollPressed {
		c.arm(&c.state.RollBuffered, &c.rollBuffer)
	}
	if in.SpecialPressed {
		c.arm(&c.state.SpecialBuffered, &c.specialBuffer)
	}
	if in.JumpPressed {
		c.arm(&c.state.JumpBuffered, &c.jumpBuffer)
	}
	if in.AttackPressed && c.combat.BuffersAttack() {
		c.arm(&c.state.AttackBuffered, &c.attackBuffer)
	}
}

func (c *Controller) movementPhase(dt time.Duration) {
	c.mover.Move(c, dt)
}

func (c *Controller) combatPhase(time.Duration) {
	c.combat.Update(c)
	c.resolveSpecial()
}

func (c *Controller) formPhase(time.Duration) {
	if f, ok := component.FormFromSelect(c.input.FormSelect); ok && c.ChangeForm(f) {
		// the transformation owns the rest of this tick
		return
	}
	c.resolveRoll()
	c.resolveDefend()
}

func (c *Controller) decayPhase(dt time.Duration) {
	c.clock.Advance(dt)
}

func clampAxis(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
