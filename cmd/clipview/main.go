// Command clipview previews one clip of a character prefab on its
// placeholder sheet. Left and right cycle clips, up and down cycle forms.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/echoform/anim"
	"github.com/milk9111/echoform/config"
	"github.com/milk9111/echoform/prefabs"
	"github.com/milk9111/echoform/sheet"
)

const (
	screenSize = 512
	zoom       = 8
)

type viewer struct {
	spec     *prefabs.CharacterSpec
	sheets   []*ebiten.Image
	surfaces []*anim.Surface
	names    []string
	events   []string

	form   int
	clip   int
	player *anim.Player
}

func newViewer(spec *prefabs.CharacterSpec, clip string, form int) (*viewer, error) {
	v := &viewer{
		spec:     spec,
		surfaces: spec.Surfaces(),
		form:     form,
	}
	for name := range spec.Animation.Clips {
		v.names = append(v.names, name)
	}
	slices.Sort(v.names)

	idx := slices.Index(v.names, clip)
	if idx < 0 {
		return nil, fmt.Errorf("unknown clip %q", clip)
	}
	if form < 0 || form >= len(v.surfaces) {
		return nil, fmt.Errorf("form %d out of range", form)
	}
	v.clip = idx

	for _, img := range sheet.Paint(spec) {
		v.sheets = append(v.sheets, ebiten.NewImageFromImage(img))
	}
	v.player = anim.NewPlayer(func(_ string, frame int, name string) {
		v.events = append(v.events, fmt.Sprintf("%d:%s", frame, name))
		if len(v.events) > 8 {
			v.events = v.events[1:]
		}
	})
	v.play()
	return v, nil
}

func (v *viewer) play() {
	v.events = v.events[:0]
	v.player.Play(v.surfaces[v.form].Clips[v.names[v.clip]], true)
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.clip = (v.clip + 1) % len(v.names)
		v.play()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.clip = (v.clip + len(v.names) - 1) % len(v.names)
		v.play()
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		v.form = (v.form + 1) % len(v.surfaces)
		v.play()
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		v.form = (v.form + len(v.surfaces) - 1) % len(v.surfaces)
		v.play()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.play()
	}
	v.player.Update()
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})

	clip := v.player.Clip()
	if clip == nil {
		return
	}
	src := sheet.FrameRect(v.spec, clip.Row, v.player.Frame())
	sub, ok := v.sheets[v.form].SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(float64(screenSize-src.Dx()*zoom)/2, float64(screenSize-src.Dy()*zoom)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(sub, op)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"form: %s  clip: %s  frame: %d/%d  fps: %d  loop: %v  done: %v\nevents: %v",
		v.surfaces[v.form].Name, clip.Name, v.player.Frame()+1, clip.Frames, clip.FPS, clip.Loop, v.player.Done(), v.events,
	))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenSize, screenSize
}

func main() {
	specName := flag.String("spec", "character.yaml", "character prefab")
	clip := flag.String("clip", anim.ClipIdle, "clip to preview")
	form := flag.Int("form", 0, "form index")
	flag.Parse()

	logger := config.NewLogger(os.Stderr, "info", "text")

	spec, err := prefabs.LoadCharacterSpec(*specName)
	if err != nil {
		log.Fatal(err)
	}
	v, err := newViewer(spec, *clip, *form)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info("previewing", "spec", spec.Name, "clips", len(v.names), "forms", len(v.surfaces))

	ebiten.SetWindowSize(screenSize, screenSize)
	ebiten.SetWindowTitle("echoform clip viewer")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
