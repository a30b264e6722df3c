package attention

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/porticus-lab/go-attention/saliency"
)

// Blend weights for the heatmap overlay.
const (
	overlayImageWeight = 0.6
	overlayHeatWeight  = 0.4
)

// RenderHeatmap blends a jet-colored rendering of the saliency map over
// the source image, keeping the page readable underneath the heat. The
// map must have the same dimensions as the image or ErrSizeMismatch is
// returned.
func RenderHeatmap(img image.Image, m *saliency.Map) (*image.RGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w != m.Width() || h != m.Height() {
		return nil, ErrSizeMismatch
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			heat := jetColor(m.At(x, y))
			out.SetRGBA(x, y, color.RGBA{
				R: blend(uint8(r>>8), heat.R),
				G: blend(uint8(g>>8), heat.G),
				B: blend(uint8(bl>>8), heat.B),
				A: 255,
			})
		}
	}
	return out, nil
}

func blend(img, heat uint8) uint8 {
	return uint8(overlayImageWeight*float64(img) + overlayHeatWeight*float64(heat) + 0.5)
}

// jetColor maps an intensity to the blue→cyan→yellow→red jet palette.
func jetColor(v uint8) color.RGBA {
	t := float64(v) / 255
	return color.RGBA{
		R: jetChannel(1.5 - abs4(t-0.75)),
		G: jetChannel(1.5 - abs4(t-0.5)),
		B: jetChannel(1.5 - abs4(t-0.25)),
		A: 255,
	}
}

func abs4(d float64) float64 {
	if d < 0 {
		d = -d
	}
	return 4 * d
}

func jetChannel(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}

// Default legend dimensions.
const (
	legendWidth  = 256
	legendHeight = 64
)

// RenderLegend draws a horizontal jet gradient bar with "low" and "high"
// end labels, suitable for publishing next to a heatmap. Non-positive
// dimensions fall back to the 256×64 default.
func RenderLegend(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		w, h = legendWidth, legendHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	margin := w / 16
	if margin < 2 {
		margin = 2
	}
	bar := image.Rect(margin, margin, w-margin, h*2/3)
	if bar.Dx() < 2 || bar.Dy() < 1 {
		return img
	}
	for x := bar.Min.X; x < bar.Max.X; x++ {
		v := uint8(255 * (x - bar.Min.X) / (bar.Dx() - 1))
		c := jetColor(v)
		for y := bar.Min.Y; y < bar.Max.Y; y++ {
			img.SetRGBA(x, y, c)
		}
	}

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	baseline := bar.Max.Y + basicfont.Face7x13.Ascent + 2
	if baseline >= h {
		return img
	}
	d.Dot = fixed.P(bar.Min.X, baseline)
	d.DrawString("low")
	adv := d.MeasureString("high")
	d.Dot = fixed.P(bar.Max.X-adv.Ceil(), baseline)
	d.DrawString("high")
	return img
}
