package controller

import (
	"math"
	"testing"
	"time"

	"github.com/milk9111/echoform/component"
)

func TestKinematicWalkAndFacing(t *testing.T) {
	cases := []struct {
		name      string
		in        component.Input
		wantDX    float64
		wantRight bool
	}{
		{"right", component.Input{MoveX: 1}, 0.5, true},
		{"left", component.Input{MoveX: -1}, -0.5, false},
		{"clamped", component.Input{MoveX: 3}, 0.5, true},
		{"crouch", component.Input{MoveX: 1, Crouch: true}, 0.25, true},
		{"idle", component.Input{}, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, sink := newCharge(t)
			c.Tick(tc.in, step)
			if got := c.Position().X; math.Abs(got-tc.wantDX) > 1e-9 {
				t.Fatalf("x = %v, want %v", got, tc.wantDX)
			}
			if c.State().FacingRight != tc.wantRight {
				t.Fatalf("facing right = %v", c.State().FacingRight)
			}
			if sink.bools["FacingRight"] != tc.wantRight {
				t.Fatalf("facing not synced")
			}
			if c.IsCrouching() != tc.in.Crouch {
				t.Fatalf("crouching = %v", c.IsCrouching())
			}
		})
	}
}

func TestMovementSuppressed(t *testing.T) {
	cases := []struct {
		name  string
		setup func(c *Controller)
	}{
		{"attacking", func(c *Controller) {
			c.Tick(component.Input{AttackPressed: true, AttackHeld: true}, step)
			c.Tick(component.Input{AttackReleased: true}, step)
		}},
		{"hurt", func(c *Controller) { c.TakeDamage() }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newCharge(t)
			unlockForm(t, c, component.FormEcho1)
			tc.setup(c)
			before := c.Position()
			c.Tick(component.Input{MoveX: -1}, step)
			if c.Position() != before {
				t.Fatalf("moved from %v to %v", before, c.Position())
			}
			if !c.State().FacingRight {
				t.Fatalf("facing flipped while %s", tc.name)
			}
		})
	}
}

func TestKinematicJumpPeak(t *testing.T) {
	c, sink := newCharge(t)
	dt := time.Millisecond
	tune := c.Tuning()

	c.Tick(component.Input{JumpPressed: true}, dt)
	if c.State().IsGrounded || !c.State().IsJumping || sink.count("Jump") != 1 {
		t.Fatalf("jump did not launch: %+v", c.State())
	}

	peak := 0.0
	for i := 0; i < 2000 && c.State().VerticalVelocity > 0; i++ {
		if !c.State().IsJumpingUp {
			t.Fatalf("rising without IsJumpingUp")
		}
		c.Tick(component.Input{}, dt)
		peak = math.Max(peak, c.Position().Y)
	}
	if math.Abs(peak-tune.JumpHeight) > 0.05 {
		t.Fatalf("peak = %v, want about %v", peak, tune.JumpHeight)
	}

	c.Tick(component.Input{}, dt)
	if c.State().IsJumpingUp {
		t.Fatalf("IsJumpingUp set while falling")
	}
	c.OnGroundEnter()
	st := c.State()
	if !st.IsGrounded || st.IsJumping || st.IsJumpingUp || st.VerticalVelocity != 0 {
		t.Fatalf("landing did not reset: %+v", st)
	}
}

func TestJumpBufferedWhileAirborne(t *testing.T) {
	c, _ := newCharge(t)
	c.OnGroundExit()
	c.Tick(component.Input{JumpPressed: true}, step/2)
	if c.State().IsJumping {
		t.Fatalf("jumped in the air")
	}
	c.OnGroundEnter()
	c.Tick(component.Input{}, step/2)
	if !c.State().IsJumping {
		t.Fatalf("buffered jump not taken on landing")
	}
}

func TestBodyMover(t *testing.T) {
	c, _, body := newCombo(t)

	c.Tick(component.Input{MoveX: -1}, step)
	if body.vx != -c.Tuning().MoveSpeed {
		t.Fatalf("vx = %v", body.vx)
	}
	if c.State().FacingRight {
		t.Fatalf("expected facing left")
	}

	body.x, body.y = 3, 4
	c.Tick(component.Input{JumpPressed: true}, step)
	want := jumpVelocity(c.Tuning().JumpHeight, c.Tuning().Gravity)
	if body.vy != want {
		t.Fatalf("vy = %v, want %v", body.vy, want)
	}
	if p := c.Position(); p.X != 3 || p.Y != 4 {
		t.Fatalf("position not read back from body: %v", p)
	}

	c.OnGroundEnter()
	if c.State().IsJumping {
		t.Fatalf("landing did not clear jump")
	}
}

func TestNewRequiresBodyForBodyMovement(t *testing.T) {
	if _, err := New(component.DefaultTuning(component.CombatCombo)); err != ErrNoBody {
		t.Fatalf("err = %v, want ErrNoBody", err)
	}
}

func TestBodyMoverStopsWhenLocked(t *testing.T) {
	cases := []struct {
		name string
		lock func(c *Controller)
		in   component.Input
	}{
		{"defend", func(*Controller) {}, component.Input{DefendHeld: true, MoveX: 1}},
		{"hurt", (*Controller).TakeDamage, component.Input{MoveX: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _, body := newCombo(t)
			unlockForm(t, c, component.FormEcho2)

			c.Tick(component.Input{MoveX: 1}, step)
			if body.vx != c.Tuning().MoveSpeed {
				t.Fatalf("vx = %v, want run speed", body.vx)
			}
			body.vy = -1

			tc.lock(c)
			// defend resolves after movement, so the lock holds from the second tick
			c.Tick(tc.in, step)
			c.Tick(tc.in, step)
			if body.vx != 0 {
				t.Fatalf("body still sliding while locked, vx = %v", body.vx)
			}
			if body.vy != -1 {
				t.Fatalf("lock touched vertical velocity, vy = %v", body.vy)
			}
			if c.State().IsMoving {
				t.Fatalf("moving while locked")
			}
		})
	}
}
