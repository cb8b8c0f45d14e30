package text

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// rasterize draws s in white onto a tightly sized transparent RGBA image,
// one text line, baseline at the face's ascent.
func rasterize(face font.Face, s string) *image.RGBA {
	d := font.Drawer{
		Face: face,
		Src:  image.White,
	}

	metrics := face.Metrics()
	width := d.MeasureString(s).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	img := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))

	d.Dst = img
	d.Dot = fixed.Point26_6{X: 0, Y: metrics.Ascent}
	d.DrawString(s)

	return img
}
