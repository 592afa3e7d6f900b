package scenario

import (
	"context"
	"log/slog"
	"time"

	"github.com/milk9111/echoform/component"
	"github.com/milk9111/echoform/controller"
)

// Runner feeds a script's input into a controller one fixed tick at a time.
type Runner struct {
	Controller *controller.Controller
	Script     *Script
	Step       time.Duration
	MaxTicks   int
	// AfterTick runs after every controller tick, e.g. to step physics.
	AfterTick func(tick int)
	Log       *slog.Logger
}

// Run ticks until the script calls done, MaxTicks is reached or ctx is
// cancelled. It returns the number of ticks run.
func (r *Runner) Run(ctx context.Context) (int, error) {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	step := r.Step
	if step <= 0 {
		step = time.Second / 60
	}

	tick := 0
	for r.MaxTicks <= 0 || tick < r.MaxTicks {
		if err := ctx.Err(); err != nil {
			return tick, err
		}
		frame, err := r.Script.Step(tick, r.Controller.State())
		if err != nil {
			return tick, err
		}
		for _, n := range frame.Notes {
			log.Info("scenario note", "tick", tick, "note", n)
		}
		if frame.Done {
			return tick, nil
		}

		r.Controller.Tick(frame.Input, step)
		if frame.Damage {
			r.Controller.TakeDamage()
		}
		if r.AfterTick != nil {
			r.AfterTick(tick)
		}
		logTick(log, tick, r.Controller)
		tick++
	}
	return tick, nil
}

func logTick(log *slog.Logger, tick int, c *controller.Controller) {
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	st := c.State()
	log.Debug("tick",
		"n", tick,
		"now", c.Now(),
		"form", st.Form,
		"x", st.Position.X,
		"y", st.Position.Y,
		"grounded", st.IsGrounded,
		"attacking", st.IsAttacking,
		"charging", st.IsCharging,
		"rolling", st.IsRolling,
		"hurt", st.IsHurt,
	)
}

// Summary is a compact view of the state at the end of a run.
func Summary(st component.ActionState) []any {
	return []any{
		"form", st.Form,
		"x", st.Position.X,
		"y", st.Position.Y,
		"attacking", st.IsAttacking,
		"attack_tier", st.AttackTier,
		"attack_phase", st.AttackPhase,
		"hurt", st.IsHurt,
	}
}
