package controller

import (
	"testing"

	"github.com/milk9111/echoform/component"
)

func TestSyncPushesFinalState(t *testing.T) {
	c, sink := newCharge(t)
	unlockForm(t, c, component.FormEcho1)

	c.Tick(component.Input{MoveX: -0.5}, step)
	if got := sink.floats["Speed"]; got != 0.5 {
		t.Fatalf("Speed = %v", got)
	}
	if sink.ints["Form"] != int(component.FormEcho1) {
		t.Fatalf("Form = %d", sink.ints["Form"])
	}
	if !sink.bools["IsGrounded"] || sink.bools["FacingRight"] {
		t.Fatalf("bools = %v", sink.bools)
	}

	c.Tick(component.Input{AttackPressed: true, AttackHeld: true}, step)
	c.Tick(component.Input{AttackHeld: true}, step)
	if !sink.bools["IsCharging"] {
		t.Fatalf("IsCharging not synced")
	}
	if got := sink.floats["ChargeDuration"]; got != 0.1 {
		t.Fatalf("ChargeDuration = %v", got)
	}

	c.Tick(component.Input{RollPressed: true, AttackReleased: true}, step)
	if !sink.bools["IsAttacking"] || sink.ints["AttackTier"] != 1 {
		t.Fatalf("attack not synced: %v %v", sink.bools, sink.ints)
	}
	if sink.bools["IsRolling"] {
		t.Fatalf("roll should be blocked by the attack")
	}
}

func TestSyncComboPhase(t *testing.T) {
	c, sink, _ := newCombo(t)
	c.Tick(component.Input{AttackPressed: true}, step)
	if sink.ints["AttackPhase"] != 1 {
		t.Fatalf("AttackPhase = %d", sink.ints["AttackPhase"])
	}
	if _, ok := sink.bools["IsCharging"]; ok {
		t.Fatalf("combo mode should not push charge params")
	}
}

func TestMissingSinkIsNoop(t *testing.T) {
	c, err := New(component.DefaultTuning(component.CombatCharge), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Tick(component.Input{MoveX: 1, JumpPressed: true}, step)
	if !c.ChangeForm(component.FormEcho1) {
		t.Fatalf("form change failed without a sink")
	}
	c.TakeDamage()
	if c.Form() != component.FormEcho1 || !c.IsHurt() || c.Position().X == 0 {
		t.Fatalf("gameplay state affected by missing sink: %+v", c.State())
	}
}
