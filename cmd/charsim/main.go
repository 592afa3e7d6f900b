// Command charsim runs a scenario script against a character controller
// without a window and logs what happened.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/milk9111/echoform/anim"
	"github.com/milk9111/echoform/component"
	"github.com/milk9111/echoform/config"
	"github.com/milk9111/echoform/controller"
	"github.com/milk9111/echoform/physics"
	"github.com/milk9111/echoform/prefabs"
	"github.com/milk9111/echoform/scenario"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := config.Load("charsim", os.Args[1:])
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, opts.LogLevel, opts.LogFormat)

	spec, err := prefabs.LoadCharacterSpec(opts.Spec)
	if err != nil {
		return err
	}
	if opts.Combat != "" {
		spec.Combat = opts.Combat
	}
	arena, err := prefabs.LoadArenaSpec()
	if err != nil {
		return err
	}
	script, err := scenario.Load(opts.Scenario)
	if err != nil {
		return err
	}

	tuning := spec.ToTuning()
	world := physics.NewWorld(tuning.Gravity)
	for _, p := range arena.Platforms {
		world.AddPlatform(physics.Platform{MinX: p.MinX, MinY: p.MinY, MaxX: p.MaxX, MaxY: p.MaxY})
	}
	body := world.AddBody(physics.BodySpec{
		X:         arena.Spawn.X,
		Y:         arena.Spawn.Y,
		Width:     spec.Collider.Width,
		Height:    spec.Collider.Height,
		Mass:      1,
		Kinematic: tuning.Movement == component.MovementKinematic,
	}, nil)

	rec := anim.NewRecorder(len(spec.Forms), logger)
	ctrl, err := controller.New(tuning,
		controller.WithSink(rec),
		controller.WithBody(body),
		controller.WithLogger(logger),
		controller.WithPosition(arena.Spawn.X, arena.Spawn.Y),
	)
	if err != nil {
		return err
	}
	body.SetListener(ctrl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := &scenario.Runner{
		Controller: ctrl,
		Script:     script,
		Step:       opts.Step,
		MaxTicks:   opts.MaxTicks,
		AfterTick:  func(int) { world.Step(opts.Step) },
		Log:        logger,
	}
	ticks, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", script.Name(), err)
	}

	logger.Info("scenario finished",
		append([]any{"scenario", script.Name(), "ticks", ticks, "now", ctrl.Now()}, scenario.Summary(ctrl.State())...)...)
	logTriggers(logger, rec)
	return nil
}

func logTriggers(logger *slog.Logger, rec *anim.Recorder) {
	counts := map[string]int{}
	for _, t := range rec.Triggers {
		counts[t]++
	}
	attrs := make([]any, 0, len(counts)*2)
	for name, n := range counts {
		attrs = append(attrs, name, n)
	}
	logger.Info("animation triggers", attrs...)
}
