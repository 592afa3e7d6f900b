package controller

import "github.com/milk9111/echoform/component"

// ChangeForm switches to form f. It is a no-op when f is the current form,
// when the transformation lock is active, or while the combat strategy holds
// the form (charging). On success every action flag, pending reset and input
// buffer is cleared and the lock starts.
func (c *Controller) ChangeForm(f component.Form) bool {
	if c == nil {
		return false
	}
	st := &c.state
	if !f.Valid() || f == st.Form || !st.CanTransform || c.combat.BlocksTransform(st) {
		return false
	}

	prev := st.Form
	st.Form = f
	c.resetActions()

	if c.sink != nil && !c.sink.SwapSurface(int(f)) {
		c.log.Debug("no animation surface for form", "form", f)
	}
	c.trigger("Transform")

	st.CanTransform = false
	c.transformUnset.Set(c.clock, c.tuning.TransformLock, func() {
		c.state.CanTransform = true
	})
	c.log.Debug("form changed", "from", prev, "to", f, "at", c.clock.Now())
	return true
}

// OnTransformComplete is the animation callback for the transform cue. The
// lock is time based, so the event is informational.
func (c *Controller) OnTransformComplete() {
	if c == nil {
		return
	}
	c.log.Debug("transform animation complete", "form", c.state.Form)
}

// resetActions forcibly ends every timed action and clears the buffers.
func (c *Controller) resetActions() {
	st := &c.state
	c.attackReset.Cancel()
	c.specialReset.Cancel()
	c.hurtReset.Cancel()
	c.rollEnd.Cancel()
	c.combat.Cancel(c)
	c.clearBuffers()

	st.IsAttacking = false
	st.IsRolling = false
	st.IsDefending = false
	st.IsHurt = false
	st.IsCharging = false
	st.ChargeDuration = 0
	st.IsJumping = false
	st.IsJumpingUp = false
	st.IsCrouching = false
}

func (c *Controller) resolveRoll() {
	st := &c.state
	if !st.RollBuffered || !st.Form.HasAbilities() {
		return
	}
	if st.IsRolling || st.IsAttacking || st.IsHurt || st.IsCharging {
		return
	}

	c.consumeRoll()
	st.IsRolling = true
	st.IsCrouching = false
	c.trigger("Roll")
	c.rollEnd.Set(c.clock, c.tuning.RollDuration, func() {
		c.state.IsRolling = false
	})
	c.log.Debug("roll", "facing_right", st.FacingRight, "at", c.clock.Now())
}

// resolveDefend mirrors the held defend key. Base form cannot defend.
func (c *Controller) resolveDefend() {
	st := &c.state
	st.IsDefending = c.input.DefendHeld && st.Form.HasAbilities()
}

// TakeDamage is called by the damage pipeline. Rolling and defending make
// the character immune; otherwise it becomes hurt for HurtDuration.
func (c *Controller) TakeDamage() {
	if c == nil {
		return
	}
	st := &c.state
	if st.IsRolling || st.IsDefending {
		c.log.Debug("damage ignored", "rolling", st.IsRolling, "defending", st.IsDefending)
		return
	}

	c.combat.OnDamage(c)
	st.IsHurt = true
	c.trigger("Hurt")
	c.hurtReset.Set(c.clock, c.tuning.HurtDuration, func() {
		c.state.IsHurt = false
	})
	c.log.Debug("damage taken", "at", c.clock.Now())
}

// OnHurtComplete is the animation callback for the hurt reaction. Like the
// attack callbacks it pre-empts the pending reset.
func (c *Controller) OnHurtComplete() {
	if c == nil || !c.hurtReset.Cancel() {
		return
	}
	c.state.IsHurt = false
}

// Animation event names understood by HandleAnimationEvent.
const (
	EventAttackComplete        = "attack_complete"
	EventSpecialAttackComplete = "special_attack_complete"
	EventTransformComplete     = "transform_complete"
	EventHurtComplete          = "hurt_complete"
)

// HandleAnimationEvent routes a named completion event from the animation
// collaborator. Unknown names are ignored.
func (c *Controller) HandleAnimationEvent(name string) {
	switch name {
	case EventAttackComplete:
		c.OnAttackComplete()
	case EventSpecialAttackComplete:
		c.OnSpecialAttackComplete()
	case EventTransformComplete:
		c.OnTransformComplete()
	case EventHurtComplete:
		c.OnHurtComplete()
	}
}
