package controller

import (
	"fmt"

	"github.com/milk9111/echoform/component"
)

// ComboCombat chains up to three attacks. Each buffered press advances the
// phase 1→2→3→1; the chain expires back to 0 after ComboCooldown without an
// attack.
type ComboCombat struct{}

func (ComboCombat) Name() string { return string(component.CombatCombo) }

func (ComboCombat) BuffersAttack() bool { return true }

func (ComboCombat) Update(c *Controller) {
	st := &c.state
	now := c.clock.Now()

	if st.AttackPhase != 0 && now-st.LastAttackTime > c.tuning.ComboCooldown {
		st.AttackPhase = 0
	}

	if !st.AttackBuffered || !st.CanAttack || st.IsRolling || st.IsDefending {
		return
	}

	c.consumeAttack()
	st.AttackPhase = st.AttackPhase%3 + 1
	st.IsAttacking = true
	st.CanAttack = false
	st.LastAttackTime = now
	c.mover.Halt(c)
	c.trigger(fmt.Sprintf("Attack%d", st.AttackPhase))
	c.startAttackReset(c.tuning.AttackCooldown)
	c.log.Debug("combo attack", "phase", st.AttackPhase, "at", now)
}

func (ComboCombat) FinishAttack(c *Controller) {
	c.endAttack(&c.specialReset)
	c.state.CanAttack = true
}

func (ComboCombat) Cancel(c *Controller) {
	c.state.AttackPhase = 0
	c.state.CanAttack = true
}

func (ComboCombat) OnDamage(*Controller) {}

func (ComboCombat) LocksMovement(st *component.ActionState) bool { return st.IsDefending }

func (ComboCombat) BlocksTransform(*component.ActionState) bool { return false }

func (ComboCombat) BlocksSpecial(*component.ActionState) bool { return false }

func (ComboCombat) Sync(c *Controller, sink AnimationSink) {
	sink.SetInt("AttackPhase", c.state.AttackPhase)
}
