package controller

import (
	"time"

	"github.com/milk9111/echoform/clock"
	"github.com/milk9111/echoform/component"
)

// CombatStrategy resolves the primary attack during the combat phase. Form
// switching, buffering and animation sync are shared; only the attack model
// differs between strategies.
type CombatStrategy interface {
	Name() string
	// BuffersAttack reports whether attack presses go through the input buffer.
	BuffersAttack() bool
	Update(c *Controller)
	// FinishAttack clears the attack once its timer or animation ends.
	FinishAttack(c *Controller)
	// Cancel forcibly ends any strategy-owned state (form change).
	Cancel(c *Controller)
	// OnDamage runs when damage lands on the character.
	OnDamage(c *Controller)
	LocksMovement(st *component.ActionState) bool
	BlocksTransform(st *component.ActionState) bool
	BlocksSpecial(st *component.ActionState) bool
	Sync(c *Controller, sink AnimationSink)
}

// OnAttackComplete is the animation callback for the primary attack. It wins
// over the pending reset timer; if the timer already fired it does nothing.
func (c *Controller) OnAttackComplete() {
	if c == nil || !c.attackReset.Cancel() {
		return
	}
	c.combat.FinishAttack(c)
	c.log.Debug("attack completed by animation", "at", c.clock.Now())
}

// OnSpecialAttackComplete is the animation callback for the special attack.
func (c *Controller) OnSpecialAttackComplete() {
	if c == nil || !c.specialReset.Cancel() {
		return
	}
	c.endAttack(&c.attackReset)
	c.log.Debug("special attack completed by animation", "at", c.clock.Now())
}

// endAttack clears IsAttacking unless the other attack kind is still
// waiting on its own reset. The primary and special attacks share the flag.
func (c *Controller) endAttack(other *clock.Slot) {
	if other.Pending() {
		return
	}
	c.state.IsAttacking = false
}

// startAttackReset schedules FinishAttack, replacing any pending reset.
func (c *Controller) startAttackReset(after time.Duration) {
	c.attackReset.Set(c.clock, after, func() { c.combat.FinishAttack(c) })
}

// resolveSpecial fires a buffered special attack when the form, cooldown and
// current action allow it. Rejected presses stay buffered until they decay.
func (c *Controller) resolveSpecial() {
	st := &c.state
	if !st.SpecialBuffered || !st.Form.HasAbilities() {
		return
	}
	if st.IsRolling || st.IsDefending || st.IsCharging || c.combat.BlocksSpecial(st) {
		return
	}
	now := c.clock.Now()
	if st.HasSpecialAttacked && now-st.LastSpecialAttackTime < c.tuning.SpecialAttackCooldown {
		return
	}

	c.consumeSpecial()
	st.IsAttacking = true
	st.LastSpecialAttackTime = now
	st.HasSpecialAttacked = true
	c.trigger("SpecialAttack")
	c.specialReset.Set(c.clock, c.tuning.SpecialAttackDuration, func() {
		c.endAttack(&c.attackReset)
	})
	c.log.Debug("special attack", "form", st.Form, "at", now)
}
