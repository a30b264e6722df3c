package attention

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/porticus-lab/go-attention/saliency"
)

func TestJetColor_Endpoints(t *testing.T) {
	if got := jetColor(0); got != (color.RGBA{0, 0, 128, 255}) {
		t.Errorf("jetColor(0) = %v, want dark blue {0 0 128 255}", got)
	}
	if got := jetColor(255); got != (color.RGBA{128, 0, 0, 255}) {
		t.Errorf("jetColor(255) = %v, want dark red {128 0 0 255}", got)
	}
	mid := jetColor(128)
	if mid.G != 255 {
		t.Errorf("jetColor(128).G = %d, want saturated green channel", mid.G)
	}
}

func TestJetColor_Monotone(t *testing.T) {
	// Rising intensity should shift weight from blue to red.
	lo := jetColor(32)
	hi := jetColor(224)
	if lo.B <= hi.B {
		t.Errorf("blue channel did not fall: %d -> %d", lo.B, hi.B)
	}
	if lo.R >= hi.R {
		t.Errorf("red channel did not rise: %d -> %d", lo.R, hi.R)
	}
}

func TestRenderHeatmap_Blend(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{100, 100, 100, 255}), image.Point{}, draw.Src)
	m, err := saliency.NewMap(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	out, err := RenderHeatmap(img, m)
	if err != nil {
		t.Fatalf("RenderHeatmap returned error: %v", err)
	}
	// 0.6·100 plus 0.4·jet(0) per channel.
	want := color.RGBA{60, 60, 111, 255}
	if got := out.RGBAAt(2, 2); got != want {
		t.Errorf("blended pixel = %v, want %v", got, want)
	}
}

func TestRenderHeatmap_SizeMismatch(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	m, err := saliency.NewMap(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RenderHeatmap(img, m); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("error = %v, want ErrSizeMismatch", err)
	}
}

func TestRenderLegend(t *testing.T) {
	img := RenderLegend(0, 0)
	b := img.Bounds()
	if b.Dx() != legendWidth || b.Dy() != legendHeight {
		t.Fatalf("legend size = %dx%d, want %dx%d", b.Dx(), b.Dy(), legendWidth, legendHeight)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v, want white", got)
	}
	// The bar runs cold to hot, left to right.
	left := img.RGBAAt(17, 20)
	right := img.RGBAAt(legendWidth-18, 20)
	if left.B <= left.R {
		t.Errorf("left bar end %v is not blue dominant", left)
	}
	if right.R <= right.B {
		t.Errorf("right bar end %v is not red dominant", right)
	}
	// Labels are drawn below the bar in black.
	foundInk := false
	for y := legendHeight * 2 / 3; y < legendHeight && !foundInk; y++ {
		for x := 0; x < legendWidth; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{0, 0, 0, 255}) {
				foundInk = true
				break
			}
		}
	}
	if !foundInk {
		t.Error("no label ink found under the gradient bar")
	}
}
