package controller

import (
	"fmt"
	"time"

	"github.com/milk9111/echoform/component"
)

// Charge tier thresholds.
const (
	Tier2Threshold = 500 * time.Millisecond
	Tier3Threshold = time.Second
)

// AttackTier maps how long the attack key was held to an attack tier 1..3.
func AttackTier(held time.Duration) int {
	switch {
	case held < Tier2Threshold:
		return 1
	case held < Tier3Threshold:
		return 2
	}
	return 3
}

// ChargeCombat starts charging when the attack key goes down and releases a
// tiered attack when it comes back up.
type ChargeCombat struct{}

func (ChargeCombat) Name() string { return string(component.CombatCharge) }

func (ChargeCombat) BuffersAttack() bool { return false }

func (ChargeCombat) Update(c *Controller) {
	st := &c.state
	in := c.input
	now := c.clock.Now()

	if in.AttackPressed && canStartCharge(st) {
		st.IsCharging = true
		st.ChargeStartTime = now
		st.ChargeDuration = 0
		c.trigger("Charge")
	}
	if !st.IsCharging {
		return
	}

	held := now - st.ChargeStartTime
	if held > c.tuning.MaxChargeTime {
		held = c.tuning.MaxChargeTime
	}
	if held > st.ChargeDuration {
		st.ChargeDuration = held
	}

	if in.AttackHeld && !in.AttackReleased {
		return
	}

	tier := AttackTier(st.ChargeDuration)
	c.log.Debug("charge released", "held", st.ChargeDuration, "tier", tier)
	st.IsCharging = false
	st.ChargeDuration = 0
	st.AttackTier = tier
	st.IsAttacking = true
	c.trigger(fmt.Sprintf("Attack%d", tier))
	c.startAttackReset(c.tuning.TierDurations[tier-1])
}

func canStartCharge(st *component.ActionState) bool {
	return !st.IsCharging && !st.IsAttacking && !st.IsRolling && !st.IsDefending && !st.IsJumping
}

func (ChargeCombat) FinishAttack(c *Controller) {
	c.endAttack(&c.specialReset)
}

func (ChargeCombat) Cancel(c *Controller) {
	c.state.IsCharging = false
	c.state.ChargeDuration = 0
	c.state.AttackTier = 0
}

// OnDamage drops a charge in progress. An attack already released keeps
// running.
func (ChargeCombat) OnDamage(c *Controller) {
	if !c.state.IsCharging {
		return
	}
	c.state.IsCharging = false
	c.state.ChargeDuration = 0
	c.log.Debug("charge cancelled by damage")
}

func (ChargeCombat) LocksMovement(*component.ActionState) bool { return false }

func (ChargeCombat) BlocksTransform(st *component.ActionState) bool { return st.IsCharging }

func (ChargeCombat) BlocksSpecial(st *component.ActionState) bool { return st.IsJumping }

func (ChargeCombat) Sync(c *Controller, sink AnimationSink) {
	sink.SetBool("IsCharging", c.state.IsCharging)
	sink.SetFloat("ChargeDuration", c.state.ChargeDuration.Seconds())
	sink.SetInt("AttackTier", c.state.AttackTier)
}
