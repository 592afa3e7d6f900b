package controller

import (
	"math"
	"time"
)

// Mover integrates locomotion for the movement phase.
type Mover interface {
	Name() string
	Move(c *Controller, dt time.Duration)
	// Halt zeroes horizontal velocity, used when an attack plants the feet.
	Halt(c *Controller)
	// Land runs when the collision source reports ground contact.
	Land(c *Controller)
}

// KinematicMover moves the character by writing position directly and
// integrates vertical motion itself. If a body is attached it only mirrors
// the position so the collision source can report ground contact.
type KinematicMover struct{}

func (KinematicMover) Name() string { return "kinematic" }

func (KinematicMover) Move(c *Controller, dt time.Duration) {
	st := &c.state
	t := &c.tuning
	sec := dt.Seconds()

	st.IsCrouching = c.input.Crouch && st.IsGrounded && !st.IsRolling

	switch {
	case st.IsRolling:
		st.IsMoving = false
		st.Position.X += facingSign(st.FacingRight) * t.RollSpeed * sec
	case c.locomotionLocked():
		st.IsMoving = false
	default:
		speed := t.MoveSpeed
		if st.IsCrouching {
			speed *= t.CrouchSpeedModifier
		}
		st.Position.X += st.HorizontalInput * speed * sec
		st.IsMoving = st.HorizontalInput != 0
		c.face(st.HorizontalInput)

		if st.JumpBuffered && st.IsGrounded {
			c.consumeJump()
			c.launch()
			st.VerticalVelocity = jumpVelocity(t.JumpHeight, t.Gravity)
		}
	}

	// gravity keeps acting while airborne even when an action owns the body
	if !st.IsGrounded {
		st.VerticalVelocity += t.Gravity * sec
		st.Position.Y += st.VerticalVelocity * sec
	}
	st.IsJumpingUp = st.IsJumping && st.VerticalVelocity > 0

	if c.body != nil {
		c.body.SetPosition(st.Position.X, st.Position.Y)
	}
}

func (KinematicMover) Halt(*Controller) {}

// Land stops vertical motion and takes the body's resting position, which
// the collision source may have corrected.
func (KinematicMover) Land(c *Controller) {
	if c.body != nil {
		x, y := c.body.Position()
		c.state.Position.X, c.state.Position.Y = x, y
	}
	c.state.VerticalVelocity = 0
	c.state.IsJumping = false
	c.state.IsJumpingUp = false
}

// BodyMover sets horizontal velocity on a physics body each tick and leaves
// vertical motion to the physics engine.
type BodyMover struct{}

func (BodyMover) Name() string { return "body" }

func (BodyMover) Move(c *Controller, _ time.Duration) {
	st := &c.state
	t := &c.tuning
	vx, vy := c.body.Velocity()

	st.IsCrouching = c.input.Crouch && st.IsGrounded && !st.IsRolling

	switch {
	case st.IsRolling:
		st.IsMoving = false
		c.body.SetVelocity(facingSign(st.FacingRight)*t.RollSpeed, vy)
	case c.locomotionLocked():
		st.IsMoving = false
		// the body keeps no momentum into a lock
		c.body.SetVelocity(0, vy)
	default:
		speed := t.MoveSpeed
		if st.IsCrouching {
			speed *= t.CrouchSpeedModifier
		}
		vx = st.HorizontalInput * speed
		st.IsMoving = st.HorizontalInput != 0
		c.face(st.HorizontalInput)

		if st.JumpBuffered && st.IsGrounded {
			c.consumeJump()
			c.launch()
			vy = jumpVelocity(t.JumpHeight, t.Gravity)
		}
		c.body.SetVelocity(vx, vy)
	}

	x, y := c.body.Position()
	st.Position.X, st.Position.Y = x, y
	_, vy = c.body.Velocity()
	st.VerticalVelocity = vy
	st.IsJumpingUp = st.IsJumping && vy > 0
}

func (BodyMover) Halt(c *Controller) {
	_, vy := c.body.Velocity()
	c.body.SetVelocity(0, vy)
}

func (BodyMover) Land(c *Controller) {
	c.state.IsJumping = false
	c.state.IsJumpingUp = false
}

// locomotionLocked reports whether input-driven movement is suppressed this
// tick.
func (c *Controller) locomotionLocked() bool {
	return c.state.LocomotionBlocked() || c.combat.LocksMovement(&c.state)
}

// launch leaves the ground. Contact events confirm it later.
func (c *Controller) launch() {
	st := &c.state
	st.IsGrounded = false
	st.IsCrouching = false
	st.IsJumping = true
	st.IsJumpingUp = true
	c.trigger("Jump")
}

func (c *Controller) face(x float64) {
	if x > 0 && !c.state.FacingRight {
		c.state.FacingRight = true
	} else if x < 0 && c.state.FacingRight {
		c.state.FacingRight = false
	}
}

// jumpVelocity gives the launch speed that peaks at height under gravity.
func jumpVelocity(height, gravity float64) float64 {
	return math.Sqrt(2 * height * math.Abs(gravity))
}

func facingSign(right bool) float64 {
	if right {
		return 1
	}
	return -1
}
