package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/echoform/physics"
	"github.com/milk9111/echoform/prefabs"
	"golang.org/x/image/colornames"
)

// Level is the arena: static platforms in world units (+Y up) and the
// viewport that maps them onto the screen.
type Level struct {
	spec       *prefabs.ArenaSpec
	background color.Color
	platforms  []levelPlatform
	// pixels per world unit
	ppu float64
}

type levelPlatform struct {
	physics.Platform
	color color.Color
}

// LoadLevel reads the arena prefab and adds its platforms to world.
func LoadLevel(world *physics.World) (*Level, error) {
	spec, err := prefabs.LoadArenaSpec()
	if err != nil {
		return nil, err
	}

	lvl := &Level{
		spec:       spec,
		background: colornames.Black,
		ppu:        min(baseWidth/spec.Width, baseHeight/spec.Height),
	}
	if spec.Background != nil {
		lvl.background = spec.Background.Color
	}

	for _, p := range spec.Platforms {
		lp := levelPlatform{
			Platform: physics.Platform{MinX: p.MinX, MinY: p.MinY, MaxX: p.MaxX, MaxY: p.MaxY},
			color:    colornames.Slategray,
		}
		if p.Color != nil {
			lp.color = p.Color.Color
		}
		world.AddPlatform(lp.Platform)
		lvl.platforms = append(lvl.platforms, lp)
	}
	return lvl, nil
}

// Spawn is the character's spawn position.
func (l *Level) Spawn() (float64, float64) {
	return l.spec.Spawn.X, l.spec.Spawn.Y
}

// ToScreen converts a world point to screen pixels.
func (l *Level) ToScreen(x, y float64) (float32, float32) {
	return float32(x * l.ppu), float32(baseHeight - y*l.ppu)
}

// ScreenRect converts a world box to a screen rectangle.
func (l *Level) ScreenRect(minX, minY, maxX, maxY float64) Rect {
	x, y := l.ToScreen(minX, maxY)
	return Rect{
		X:      x,
		Y:      y,
		Width:  float32((maxX - minX) * l.ppu),
		Height: float32((maxY - minY) * l.ppu),
	}
}

func (l *Level) Draw(screen *ebiten.Image) {
	screen.Fill(l.background)

	view := Rect{Width: baseWidth, Height: baseHeight}
	for _, p := range l.platforms {
		r := l.ScreenRect(p.MinX, p.MinY, p.MaxX, p.MaxY)
		if !r.Intersects(&view) {
			continue
		}
		vector.FillRect(screen, r.X, r.Y, r.Width, r.Height, p.color, false)
		vector.StrokeRect(screen, r.X, r.Y, r.Width, r.Height, 1.0, colornames.Black, false)
	}
}
