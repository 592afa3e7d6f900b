// Package sheet paints placeholder sprite sheets for character forms. The
// sheets are plain RGBA images so they can be built and checked without a
// graphics context.
package sheet

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/milk9111/echoform/prefabs"
	"golang.org/x/image/colornames"
)

// OutlineThickness is the outline width in sheet pixels.
const OutlineThickness = 1

// Paint builds one sheet per form in spec. Each clip row holds a silhouette
// in the form's color that bobs a little per frame so playback is visible.
func Paint(spec *prefabs.CharacterSpec) []*image.RGBA {
	fw, fh := spec.Animation.FrameW, spec.Animation.FrameH
	rows, cols := Size(spec)

	sheets := make([]*image.RGBA, len(spec.Forms))
	for i := range spec.Forms {
		img := image.NewRGBA(image.Rect(0, 0, cols*fw, rows*fh))
		body := spec.FormColor(i)
		for _, c := range spec.Animation.Clips {
			for f := 0; f < c.FrameCount; f++ {
				paintFrame(img, FrameRect(spec, c.Row, f), f, body)
			}
		}
		outline := Outline(img, OutlineThickness, colornames.Black)
		draw.Draw(img, img.Bounds(), outline, image.Point{}, draw.Over)
		sheets[i] = img
	}
	return sheets
}

// Size returns the sheet dimensions in frames.
func Size(spec *prefabs.CharacterSpec) (rows, cols int) {
	for _, c := range spec.Animation.Clips {
		rows = max(rows, c.Row+1)
		cols = max(cols, c.FrameCount)
	}
	return rows, cols
}

// FrameRect is the source rectangle of frame in row.
func FrameRect(spec *prefabs.CharacterSpec, row, frame int) image.Rectangle {
	fw, fh := spec.Animation.FrameW, spec.Animation.FrameH
	return image.Rect(frame*fw, row*fh, (frame+1)*fw, (row+1)*fh)
}

func paintFrame(img *image.RGBA, cell image.Rectangle, frame int, body color.Color) {
	w, h := cell.Dx(), cell.Dy()
	bob := frame % 2
	// keep one transparent pixel around the silhouette for the outline
	pad := OutlineThickness

	torso := image.Rect(cell.Min.X+w/4, cell.Min.Y+h/4+bob, cell.Max.X-w/4, cell.Max.Y-pad)
	draw.Draw(img, torso, image.NewUniform(body), image.Point{}, draw.Src)

	head := image.Rect(cell.Min.X+w/3, cell.Min.Y+pad+bob, cell.Max.X-w/3, cell.Min.Y+h/4+bob)
	draw.Draw(img, head, image.NewUniform(body), image.Point{}, draw.Src)

	// sheets face right
	eye := image.Rect(head.Max.X-3, head.Min.Y+2, head.Max.X-1, head.Min.Y+4)
	draw.Draw(img, eye, image.NewUniform(colornames.Black), image.Point{}, draw.Src)
}

// Outline returns an image holding outlineCol on every transparent pixel of
// src within thickness pixels of an opaque one.
func Outline(src *image.RGBA, thickness int, outlineCol color.RGBA) *image.RGBA {
	b := src.Bounds()
	w := b.Dx()
	h := b.Dy()
	out := image.NewRGBA(b)

	isOpaque := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return src.RGBAAt(x+b.Min.X, y+b.Min.Y).A != 0
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if isOpaque(x, y) {
				continue
			}
			found := false
			for yy := max(y-thickness, 0); yy <= min(y+thickness, h-1) && !found; yy++ {
				for xx := max(x-thickness, 0); xx <= min(x+thickness, w-1); xx++ {
					if isOpaque(xx, yy) {
						found = true
						break
					}
				}
			}
			if found {
				out.SetRGBA(x+b.Min.X, y+b.Min.Y, outlineCol)
			}
		}
	}
	return out
}
