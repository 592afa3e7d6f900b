package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/echoform/anim"
	"github.com/milk9111/echoform/component"
	"github.com/milk9111/echoform/config"
	"github.com/milk9111/echoform/controller"
	"github.com/milk9111/echoform/input"
	"github.com/milk9111/echoform/physics"
	"github.com/milk9111/echoform/prefabs"
	"github.com/milk9111/echoform/sheet"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	frames int
	debug  bool

	opts config.Options
	log  *slog.Logger
	step time.Duration

	spec     *prefabs.CharacterSpec
	sheets   []*ebiten.Image
	level    *Level
	world    *physics.World
	body     *physics.Body
	ctrl     *controller.Controller
	animator *anim.Animator
	input    *input.Source
	watcher  *prefabs.Watcher
}

func NewGame(opts config.Options, logger *slog.Logger) (*Game, error) {
	spec, err := loadCharacter(opts)
	if err != nil {
		return nil, err
	}
	tuning := spec.ToTuning()

	world := physics.NewWorld(tuning.Gravity)
	level, err := LoadLevel(world)
	if err != nil {
		return nil, err
	}

	spawnX, spawnY := level.Spawn()
	body := world.AddBody(physics.BodySpec{
		X:         spawnX,
		Y:         spawnY,
		Width:     spec.Collider.Width,
		Height:    spec.Collider.Height,
		Mass:      1,
		Kinematic: tuning.Movement == component.MovementKinematic,
	}, nil)

	animator := anim.NewAnimator(spec.Surfaces(), logger)
	ctrl, err := controller.New(tuning,
		controller.WithSink(animator),
		controller.WithBody(body),
		controller.WithLogger(logger),
		controller.WithPosition(spawnX, spawnY),
	)
	if err != nil {
		return nil, err
	}
	body.SetListener(ctrl)
	animator.OnEvent(func(_ string, _ int, name string) {
		ctrl.HandleAnimationEvent(name)
	})

	g := &Game{
		opts:     opts,
		log:      logger,
		step:     time.Second / time.Duration(opts.TPS),
		spec:     spec,
		sheets:   buildSheets(spec),
		level:    level,
		world:    world,
		body:     body,
		ctrl:     ctrl,
		animator: animator,
		input:    input.NewSource(),
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(logger, prefabs.Dir)
		if err != nil {
			logger.Warn("prefab hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func loadCharacter(opts config.Options) (*prefabs.CharacterSpec, error) {
	spec, err := prefabs.LoadCharacterSpec(opts.Spec)
	if err != nil {
		return nil, err
	}
	if opts.Combat != "" {
		spec.Combat = opts.Combat
	}
	return spec, nil
}

// buildSheets uploads the painted form sheets to the GPU.
func buildSheets(spec *prefabs.CharacterSpec) []*ebiten.Image {
	painted := sheet.Paint(spec)
	out := make([]*ebiten.Image, len(painted))
	for i, img := range painted {
		out[i] = ebiten.NewImageFromImage(img)
	}
	return out
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.reload()

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	g.ctrl.Tick(g.input.Poll(), g.step)
	g.world.Step(g.step)
	g.animator.Update()
	return nil
}

// reload applies character prefab edits between ticks. Arena edits need a
// restart because the platforms live in the physics space.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Drain() {
		if name != filepath.Base(g.opts.Spec) {
			g.log.Info("prefab changed; restart to apply", "file", name)
			continue
		}
		spec, err := loadCharacter(g.opts)
		if err != nil {
			g.log.Warn("prefab reload failed", "file", name, "err", err)
			continue
		}
		g.spec = spec
		g.sheets = buildSheets(spec)
		g.ctrl.SetTuning(spec.ToTuning())
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.level.Draw(screen)
	g.drawCharacter(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	if g.debug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawCharacter(screen *ebiten.Image) {
	clip := g.animator.Clip()
	form := g.animator.Active()
	if clip == nil || form < 0 || form >= len(g.sheets) {
		return
	}
	src := sheet.FrameRect(g.spec, clip.Row, g.animator.Frame())
	sub, ok := g.sheets[form].SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}

	pos := g.ctrl.Position()
	w, h := g.spec.Collider.Width, g.spec.Collider.Height
	r := g.level.ScreenRect(pos.X-w/2, pos.Y-h/2, pos.X+w/2, pos.Y+h/2)

	op := &ebiten.DrawImageOptions{}
	sx := float64(r.Width) / float64(src.Dx())
	sy := float64(r.Height) / float64(src.Dy())
	if !g.animator.FacingRight() {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(src.Dx()), 0)
	}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(float64(r.X), float64(r.Y))
	screen.DrawImage(sub, op)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	st := g.ctrl.State()
	clip := "none"
	if c := g.animator.Clip(); c != nil {
		clip = c.Name
	}
	msg := fmt.Sprintf(
		"\nform: %v  combat: %s  clip: %s\nx: %.2f  y: %.2f  vy: %.2f  grounded: %v  sensor: %v\nattacking: %v  tier: %d  phase: %d  charging: %v (%v)\nrolling: %v  defending: %v  hurt: %v  can transform: %v",
		st.Form, g.ctrl.CombatMode(), clip,
		st.Position.X, st.Position.Y, st.VerticalVelocity, st.IsGrounded, g.body.Grounded(),
		st.IsAttacking, st.AttackTier, st.AttackPhase, st.IsCharging, st.ChargeDuration,
		st.IsRolling, st.IsDefending, st.IsHurt, st.CanTransform,
	)
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
