package controller

import (
	"math"
	"time"
)

// AnimationSink is the animation/rendering collaborator. It receives named
// parameters and triggers and swaps the active control surface per form.
type AnimationSink interface {
	SetBool(name string, v bool)
	SetFloat(name string, v float64)
	SetInt(name string, v int)
	Trigger(name string)
	// SwapSurface activates the surface for a form index. It reports false
	// when no surface is configured for that index.
	SwapSurface(form int) bool
}

func (c *Controller) trigger(name string) {
	if c.sink == nil {
		return
	}
	c.sink.Trigger(name)
}

// syncPhase pushes the tick's final state to the sink. It makes no decisions.
func (c *Controller) syncPhase(_ time.Duration) {
	if c.sink == nil {
		return
	}
	st := &c.state
	s := c.sink

	speed := 0.0
	if st.IsMoving {
		speed = math.Abs(st.HorizontalInput)
	}
	s.SetFloat("Speed", speed)
	s.SetBool("IsGrounded", st.IsGrounded)
	s.SetBool("IsCrouching", st.IsCrouching)
	s.SetBool("IsJumping", st.IsJumping)
	s.SetBool("IsJumpingUp", st.IsJumpingUp)
	s.SetBool("IsAttacking", st.IsAttacking)
	s.SetBool("IsRolling", st.IsRolling)
	s.SetBool("IsDefending", st.IsDefending)
	s.SetBool("IsHurt", st.IsHurt)
	s.SetBool("FacingRight", st.FacingRight)
	s.SetInt("Form", int(st.Form))
	c.combat.Sync(c, s)
}
