package attention

import (
	"image"
	"testing"
)

func TestBoostRegions(t *testing.T) {
	m := uniformMap(t, 10, 10, 100)
	BoostRegions(m, image.Rect(2, 2, 5, 5))
	// 0.7·100 + 0.3·255 rounds to 147.
	if got := m.At(3, 3); got != 147 {
		t.Errorf("boosted cell = %d, want 147", got)
	}
	if got := m.At(6, 6); got != 100 {
		t.Errorf("cell outside region = %d, want untouched 100", got)
	}
}

func TestBoostRegions_DarkFloor(t *testing.T) {
	m := uniformMap(t, 4, 4, 0)
	BoostRegions(m, image.Rect(0, 0, 4, 4))
	if got := m.At(1, 1); got != 77 {
		t.Errorf("boosted zero cell = %d, want 77", got)
	}
}

func TestBoostRegions_SaturatedCeiling(t *testing.T) {
	m := uniformMap(t, 4, 4, 255)
	BoostRegions(m, image.Rect(0, 0, 4, 4))
	if got := m.At(0, 0); got != 255 {
		t.Errorf("boosted full cell = %d, want 255", got)
	}
}

func TestBoostRegions_ClipsToMap(t *testing.T) {
	m := uniformMap(t, 10, 10, 0)
	BoostRegions(m, image.Rect(-5, -5, 100, 2))
	if got := m.At(0, 0); got != 77 {
		t.Errorf("cell inside clipped region = %d, want 77", got)
	}
	if got := m.At(0, 5); got != 0 {
		t.Errorf("cell outside region = %d, want 0", got)
	}
	// Must not panic on a nil map or an empty rectangle.
	BoostRegions(nil, image.Rect(0, 0, 4, 4))
	BoostRegions(m, image.Rectangle{})
}
