package saliency

import (
	"image"
	"image/draw"
	"math/cmplx"
	"testing"
)

// contrastImage returns a mid-gray canvas with a single bright square, the
// simplest scene with one unambiguous salient region.
func contrastImage(w, h int, square image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgb(96, 96, 96)), image.Point{}, draw.Src)
	draw.Draw(img, square, image.NewUniform(rgb(250, 250, 250)), image.Point{}, draw.Src)
	return img
}

func TestSpectral_Dimensions(t *testing.T) {
	img := contrastImage(200, 120, image.Rect(30, 30, 60, 60))
	m, err := Spectral(img)
	if err != nil {
		t.Fatalf("Spectral returned error: %v", err)
	}
	if m.Width() != 200 || m.Height() != 120 {
		t.Errorf("map size = %dx%d, want 200x120", m.Width(), m.Height())
	}
}

func TestSpectral_ZeroArea(t *testing.T) {
	m, err := Spectral(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if err != nil {
		t.Fatalf("Spectral returned error: %v", err)
	}
	if !m.Empty() {
		t.Error("zero-area image should produce an empty map")
	}
}

func TestSpectral_UniformImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgb(128, 128, 128)), image.Point{}, draw.Src)
	m, err := Spectral(img)
	if err != nil {
		t.Fatalf("Spectral returned error: %v", err)
	}
	if got := m.MaxValue(); got != 0 {
		t.Errorf("uniform image max saliency = %d, want 0", got)
	}
}

func TestSpectral_ValueRange(t *testing.T) {
	// At the native working resolution no resampling happens after the
	// final stretch, so the map must span the full scale exactly.
	img := contrastImage(64, 64, image.Rect(40, 10, 55, 25))
	m, err := Spectral(img)
	if err != nil {
		t.Fatalf("Spectral returned error: %v", err)
	}
	if got := m.MaxValue(); got != 255 {
		t.Errorf("max saliency = %d, want full-scale 255", got)
	}
}

func TestSpectral_HighlightsContrastRegion(t *testing.T) {
	square := image.Rect(80, 80, 120, 120)
	m, err := Spectral(contrastImage(256, 256, square))
	if err != nil {
		t.Fatalf("Spectral returned error: %v", err)
	}
	inside := m.RegionMean(square.Inset(-10))
	outside := m.Mean()
	if inside <= outside {
		t.Errorf("mean saliency inside square = %v, not above global mean %v", inside, outside)
	}
}

func TestSpectral_Deterministic(t *testing.T) {
	img := contrastImage(100, 100, image.Rect(10, 10, 40, 40))
	a, err := Spectral(img)
	if err != nil {
		t.Fatalf("Spectral returned error: %v", err)
	}
	b, err := Spectral(img)
	if err != nil {
		t.Fatalf("Spectral returned error: %v", err)
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("maps differ at (%d, %d): %d vs %d", x, y, a.At(x, y), b.At(x, y))
			}
		}
	}
}

func TestFFT2_RoundTrip(t *testing.T) {
	const w, h = 8, 4
	orig := make([]complex128, w*h)
	for i := range orig {
		orig[i] = complex(float64(i%7), float64(i%3))
	}
	data := make([]complex128, len(orig))
	copy(data, orig)

	fft2(data, w, h)
	ifft2(data, w, h)

	for i := range orig {
		if cmplx.Abs(data[i]-orig[i]) > 1e-9 {
			t.Fatalf("round trip diverged at %d: got %v, want %v", i, data[i], orig[i])
		}
	}
}

func TestNormalize(t *testing.T) {
	m := normalize([]float64{2, 4, 6, 10}, 2, 2)
	want := []uint8{0, 64, 128, 255}
	for i, w := range want {
		if got := m.pix[i]; got != w {
			t.Errorf("pix[%d] = %d, want %d", i, got, w)
		}
	}
}

func TestNormalize_Constant(t *testing.T) {
	m := normalize([]float64{3, 3, 3}, 3, 1)
	for i, p := range m.pix {
		if p != 0 {
			t.Errorf("pix[%d] = %d, want 0 for constant input", i, p)
		}
	}
}
