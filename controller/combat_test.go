package controller

import (
	"testing"
	"time"

	"github.com/milk9111/echoform/component"
)

func TestAttackTier(t *testing.T) {
	cases := []struct {
		held time.Duration
		want int
	}{
		{0, 1},
		{300 * time.Millisecond, 1},
		{499 * time.Millisecond, 1},
		{500 * time.Millisecond, 2},
		{999 * time.Millisecond, 2},
		{time.Second, 3},
		{5 * time.Second, 3},
	}
	for _, c := range cases {
		t.Run(c.held.String(), func(t *testing.T) {
			if got := AttackTier(c.held); got != c.want {
				t.Fatalf("AttackTier(%v) = %d, want %d", c.held, got, c.want)
			}
		})
	}
}

func TestAttackTierMonotonic(t *testing.T) {
	prev := AttackTier(0)
	for d := time.Duration(0); d <= 2*time.Second; d += 10 * time.Millisecond {
		got := AttackTier(d)
		if got < prev {
			t.Fatalf("tier dropped from %d to %d at %v", prev, got, d)
		}
		prev = got
	}
}

func TestChargeTierOneScenario(t *testing.T) {
	c, sink := newCharge(t)
	unlockForm(t, c, component.FormEcho1)

	c.Tick(component.Input{AttackPressed: true, AttackHeld: true}, step)
	if !c.IsCharging() {
		t.Fatalf("expected charging after attack press")
	}
	c.Tick(component.Input{AttackHeld: true}, step)
	c.Tick(component.Input{AttackHeld: true}, step)
	c.Tick(component.Input{AttackReleased: true}, step)

	if c.IsCharging() {
		t.Fatalf("charge should end on release")
	}
	if !c.IsAttacking() {
		t.Fatalf("expected attacking after release")
	}
	if got := c.State().AttackTier; got != 1 {
		t.Fatalf("tier = %d, want 1", got)
	}
	if sink.count("Attack1") != 1 {
		t.Fatalf("expected one Attack1 trigger, got %v", sink.triggers)
	}

	// tier 1 lasts 400ms from the release tick
	idle(c, 2)
	if !c.IsAttacking() {
		t.Fatalf("attack ended before tier-1 duration")
	}
	idle(c, 1)
	if c.IsAttacking() {
		t.Fatalf("attack still active after tier-1 duration")
	}
}

func TestChargeDurationClamped(t *testing.T) {
	c, _ := newCharge(t)
	unlockForm(t, c, component.FormEcho1)
	max := c.Tuning().MaxChargeTime

	c.Tick(component.Input{AttackPressed: true, AttackHeld: true}, step)
	var seen time.Duration
	for i := 0; i < 40; i++ {
		c.Tick(component.Input{AttackHeld: true}, step)
		if d := c.ChargeDuration(); d > seen {
			seen = d
		}
		if c.ChargeDuration() > max {
			t.Fatalf("charge duration %v exceeds max %v", c.ChargeDuration(), max)
		}
	}
	if seen != max {
		t.Fatalf("charge duration peaked at %v, want %v", seen, max)
	}

	c.Tick(component.Input{AttackReleased: true}, step)
	if got := c.State().AttackTier; got != 3 {
		t.Fatalf("tier = %d, want 3", got)
	}
}

func TestChargeGuards(t *testing.T) {
	cases := []struct {
		name  string
		setup func(c *Controller)
	}{
		{"defending", func(c *Controller) { c.Tick(component.Input{DefendHeld: true}, step) }},
		{"jumping", func(c *Controller) { c.Tick(component.Input{JumpPressed: true}, step) }},
		{"rolling", func(c *Controller) { c.Tick(component.Input{RollPressed: true}, step) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newCharge(t)
			unlockForm(t, c, component.FormEcho1)
			tc.setup(c)
			c.Tick(component.Input{AttackPressed: true, AttackHeld: true, DefendHeld: tc.name == "defending"}, step)
			if c.IsCharging() {
				t.Fatalf("charge started while %s", tc.name)
			}
		})
	}
}

func TestDamageCancelsChargeNotAttack(t *testing.T) {
	c, _ := newCharge(t)
	unlockForm(t, c, component.FormEcho1)

	c.Tick(component.Input{AttackPressed: true, AttackHeld: true}, step)
	c.TakeDamage()
	if c.IsCharging() || c.ChargeDuration() != 0 {
		t.Fatalf("damage should cancel the charge")
	}
	if !c.IsHurt() {
		t.Fatalf("expected hurt")
	}

	idle(c, 10)
	c.Tick(component.Input{AttackPressed: true, AttackHeld: true}, step)
	c.Tick(component.Input{AttackReleased: true}, step)
	if !c.IsAttacking() {
		t.Fatalf("expected attack")
	}
	c.TakeDamage()
	if !c.IsAttacking() {
		t.Fatalf("damage should not cancel a released attack")
	}
	if !c.IsHurt() {
		t.Fatalf("hurt and attacking may overlap")
	}
}

func TestComboCycles(t *testing.T) {
	c, sink, body := newCombo(t)
	cooldown := c.Tuning().AttackCooldown

	want := []int{1, 2, 3, 1}
	for i, phase := range want {
		body.vx = 3
		c.Tick(component.Input{AttackPressed: true}, step)
		if got := c.State().AttackPhase; got != phase {
			t.Fatalf("attack %d: phase = %d, want %d", i, got, phase)
		}
		if !c.IsAttacking() || c.State().CanAttack {
			t.Fatalf("attack %d: expected attacking with canAttack false", i)
		}
		if body.vx != 0 {
			t.Fatalf("attack %d: horizontal velocity %v, want 0", i, body.vx)
		}
		idle(c, int(cooldown/step))
		if c.IsAttacking() || !c.State().CanAttack {
			t.Fatalf("attack %d: reset did not run after %v", i, cooldown)
		}
	}
	if sink.count("Attack1") != 2 || sink.count("Attack3") != 1 {
		t.Fatalf("unexpected triggers %v", sink.triggers)
	}
}

func TestComboExpiry(t *testing.T) {
	cases := []struct {
		name string
		gap  time.Duration // between the two attack ticks
		want int
	}{
		{"within_cooldown", 600 * time.Millisecond, 2},
		{"exactly_cooldown", time.Second, 2},
		{"past_cooldown", 1100 * time.Millisecond, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _, _ := newCombo(t)
			c.Tick(component.Input{AttackPressed: true}, step)
			idle(c, int(tc.gap/step)-1)
			c.Tick(component.Input{AttackPressed: true}, step)
			if got := c.State().AttackPhase; got != tc.want {
				t.Fatalf("phase = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestComboDefendBlocks(t *testing.T) {
	c, _, body := newCombo(t)
	unlockForm(t, c, component.FormEcho2)

	c.Tick(component.Input{DefendHeld: true}, step)
	c.Tick(component.Input{DefendHeld: true, MoveX: 1}, step)
	if !c.IsDefending() {
		t.Fatalf("expected defending")
	}
	if body.vx != 0 {
		t.Fatalf("movement should be suppressed while defending, vx=%v", body.vx)
	}
	c.Tick(component.Input{DefendHeld: true, AttackPressed: true}, step)
	if c.IsAttacking() {
		t.Fatalf("attack started while defending")
	}
}

func TestAttackResetNotStacked(t *testing.T) {
	c, _, _ := newCombo(t)

	c.Tick(component.Input{AttackPressed: true}, step) // reset due at 500ms
	idle(c, 1)
	c.HandleAnimationEvent(EventAttackComplete)
	if c.IsAttacking() {
		t.Fatalf("animation completion should clear the attack")
	}
	c.Tick(component.Input{AttackPressed: true}, step) // now=200ms, reset due at 700ms
	if !c.IsAttacking() {
		t.Fatalf("expected second attack")
	}
	idle(c, 3) // past the first reset's due time
	if !c.IsAttacking() {
		t.Fatalf("first attack's reset cleared the second attack")
	}
	idle(c, 2)
	if c.IsAttacking() {
		t.Fatalf("second attack did not reset")
	}
}

func TestUnrelatedCompletionIgnored(t *testing.T) {
	c, _, _ := newCombo(t)
	c.Tick(component.Input{AttackPressed: true}, step)
	idle(c, 5)
	if c.IsAttacking() {
		t.Fatalf("timer should have cleared the attack")
	}
	c.Tick(component.Input{AttackPressed: true}, step)
	c.OnSpecialAttackComplete()
	if !c.IsAttacking() {
		t.Fatalf("unrelated completion cleared the attack")
	}
}

func TestSpecialAttack(t *testing.T) {
	t.Run("ignored_before_cooldown", func(t *testing.T) {
		c, sink := newCharge(t)
		unlockForm(t, c, component.FormEcho1)
		start := c.Now()

		c.Tick(component.Input{SpecialPressed: true}, step)
		if !c.IsAttacking() {
			t.Fatalf("expected special attack")
		}
		idle(c, 2)
		c.Tick(component.Input{SpecialPressed: true}, step)
		if got := c.State().LastSpecialAttackTime; got != start {
			t.Fatalf("second press re-triggered at %v", got)
		}
		if sink.count("SpecialAttack") != 1 {
			t.Fatalf("special triggered %d times", sink.count("SpecialAttack"))
		}

		// the first activation ends on its own schedule
		idle(c, 6)
		if c.IsAttacking() {
			t.Fatalf("special attack did not reset")
		}
	})

	t.Run("available_after_cooldown", func(t *testing.T) {
		c, sink := newCharge(t)
		unlockForm(t, c, component.FormEcho1)
		c.Tick(component.Input{SpecialPressed: true}, step)
		idle(c, int(c.Tuning().SpecialAttackCooldown/step))
		c.Tick(component.Input{SpecialPressed: true}, step)
		if sink.count("SpecialAttack") != 2 {
			t.Fatalf("special triggered %d times, want 2", sink.count("SpecialAttack"))
		}
	})

	t.Run("event_preempts_timer", func(t *testing.T) {
		c, _ := newCharge(t)
		unlockForm(t, c, component.FormEcho1)
		c.Tick(component.Input{SpecialPressed: true}, step)
		pending := c.Clock().Pending()
		c.HandleAnimationEvent(EventSpecialAttackComplete)
		if c.IsAttacking() {
			t.Fatalf("completion event should clear the special attack")
		}
		if got := c.Clock().Pending(); got != pending-1 {
			t.Fatalf("pending = %d, want %d", got, pending-1)
		}
	})

	t.Run("blocked_while_jumping_in_charge_mode", func(t *testing.T) {
		c, _ := newCharge(t)
		unlockForm(t, c, component.FormEcho1)
		c.Tick(component.Input{JumpPressed: true}, step)
		c.Tick(component.Input{SpecialPressed: true}, step)
		if c.IsAttacking() {
			t.Fatalf("special fired mid-jump")
		}
	})
}

func TestPrimaryResetKeepsSpecialRunning(t *testing.T) {
	cases := []struct {
		name string
		new  func(t *testing.T) *Controller
	}{
		{"combo", func(t *testing.T) *Controller { c, _, _ := newCombo(t); return c }},
		{"charge", func(t *testing.T) *Controller { c, _ := newCharge(t); return c }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.new(t)
			unlockForm(t, c, component.FormEcho1)

			c.Tick(component.Input{AttackPressed: true}, step)
			c.Tick(component.Input{SpecialPressed: true}, step)
			if !c.attackReset.Pending() || !c.specialReset.Pending() {
				t.Fatalf("expected both attack resets pending")
			}

			// past the primary reset, short of the special's
			idle(c, 4)
			if c.attackReset.Pending() {
				t.Fatalf("primary reset should have fired by %v", c.Now())
			}
			if !c.IsAttacking() {
				t.Fatalf("primary reset cleared the running special attack")
			}
			c.Tick(component.Input{AttackPressed: true, AttackHeld: true}, step)
			if c.IsCharging() {
				t.Fatalf("charge started during the special attack")
			}

			idle(c, int(c.Tuning().SpecialAttackDuration/step))
			if c.IsAttacking() || c.specialReset.Pending() {
				t.Fatalf("special attack did not reset")
			}
		})
	}
}

func TestSpecialCompletionKeepsPrimaryRunning(t *testing.T) {
	c, _, _ := newCombo(t)
	unlockForm(t, c, component.FormEcho1)

	c.Tick(component.Input{SpecialPressed: true}, step)
	c.Tick(component.Input{AttackPressed: true}, step)
	c.HandleAnimationEvent(EventSpecialAttackComplete)
	if !c.IsAttacking() {
		t.Fatalf("special completion cleared the combo attack")
	}
	c.HandleAnimationEvent(EventAttackComplete)
	if c.IsAttacking() {
		t.Fatalf("attack still set after both completions")
	}
}
