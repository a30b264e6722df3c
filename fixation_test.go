package attention

import (
	"image"
	"testing"

	"github.com/porticus-lab/go-attention/saliency"
)

// sparseMap builds a w×h map that is zero except for the given points.
func sparseMap(t *testing.T, w, h int, points map[image.Point]uint8) *saliency.Map {
	t.Helper()
	m, err := saliency.NewMap(w, h)
	if err != nil {
		t.Fatalf("NewMap(%d, %d) returned error: %v", w, h, err)
	}
	for p, v := range points {
		m.Set(p.X, p.Y, v)
	}
	return m
}

func TestDefaultFixationParams(t *testing.T) {
	p := DefaultFixationParams()
	if p.MaxFixations != 5 || p.MinSaliency != 150 || p.MinDistance != 80 {
		t.Errorf("defaults = %+v, want {5 150 80}", p)
	}
}

func TestFixationOrder_TwoDistantPeaks(t *testing.T) {
	m := sparseMap(t, 100, 100, map[image.Point]uint8{
		{10, 10}: 200,
		{90, 90}: 180,
	})
	fixs := FixationOrder(m, DefaultFixationParams())
	if len(fixs) != 2 {
		t.Fatalf("got %d fixations, want 2", len(fixs))
	}
	if fixs[0].Position != [2]int{10, 10} {
		t.Errorf("first fixation at %v, want [10 10]", fixs[0].Position)
	}
	if fixs[1].Position != [2]int{90, 90} {
		t.Errorf("second fixation at %v, want [90 90]", fixs[1].Position)
	}
	if fixs[0].Saliency != 200 || fixs[1].Saliency != 180 {
		t.Errorf("saliencies = %d, %d, want 200, 180", fixs[0].Saliency, fixs[1].Saliency)
	}
}

func TestFixationOrder_OrdinalsAndMethods(t *testing.T) {
	m := sparseMap(t, 300, 300, map[image.Point]uint8{
		{20, 20}:   250,
		{150, 30}:  220,
		{280, 40}:  210,
		{30, 170}:  230,
		{200, 200}: 240,
	})
	fixs := FixationOrder(m, DefaultFixationParams())
	if len(fixs) == 0 {
		t.Fatal("no fixations")
	}
	for i, f := range fixs {
		if f.Order != i+1 {
			t.Errorf("fixation %d has order %d, want %d", i, f.Order, i+1)
		}
		want := MethodWeightedSaliency
		if i == 0 {
			want = MethodHighestSaliency
		}
		if f.Method != want {
			t.Errorf("fixation %d method = %q, want %q", i, f.Method, want)
		}
	}
}

func TestFixationOrder_RespectsMinDistance(t *testing.T) {
	// Peaks only 10 px apart: the second is inhibited after the first is
	// chosen.
	m := sparseMap(t, 100, 100, map[image.Point]uint8{
		{10, 10}: 200,
		{20, 10}: 180,
	})
	fixs := FixationOrder(m, DefaultFixationParams())
	if len(fixs) != 1 {
		t.Fatalf("got %d fixations, want 1", len(fixs))
	}
	if fixs[0].Position != [2]int{10, 10} {
		t.Errorf("fixation at %v, want [10 10]", fixs[0].Position)
	}
}

func TestFixationOrder_BoundaryDistanceInhibited(t *testing.T) {
	// Exactly MinDistance apart is still inside the inhibition radius.
	m := sparseMap(t, 200, 100, map[image.Point]uint8{
		{10, 50}: 200,
		{90, 50}: 180,
	})
	p := DefaultFixationParams()
	p.MinDistance = 80
	fixs := FixationOrder(m, p)
	if len(fixs) != 1 {
		t.Fatalf("got %d fixations, want 1 when peaks sit exactly MinDistance apart", len(fixs))
	}
}

func TestFixationOrder_PairwiseDistances(t *testing.T) {
	points := map[image.Point]uint8{}
	v := uint8(150)
	for y := 20; y < 300; y += 60 {
		for x := 20; x < 300; x += 60 {
			points[image.Pt(x, y)] = v
			v++
		}
	}
	m := sparseMap(t, 300, 300, points)
	p := DefaultFixationParams()
	fixs := FixationOrder(m, p)
	if len(fixs) == 0 || len(fixs) > p.MaxFixations {
		t.Fatalf("got %d fixations, want between 1 and %d", len(fixs), p.MaxFixations)
	}
	for i := 0; i < len(fixs); i++ {
		for j := i + 1; j < len(fixs); j++ {
			a, b := fixs[i].Position, fixs[j].Position
			if d := dist(a[0], a[1], b[0], b[1]); d < p.MinDistance {
				t.Errorf("fixations %d and %d are %.1f px apart, want >= %v", i, j, d, p.MinDistance)
			}
		}
	}
}

func TestFixationOrder_MaxFixationsCap(t *testing.T) {
	points := map[image.Point]uint8{}
	for y := 50; y < 500; y += 100 {
		for x := 50; x < 500; x += 100 {
			points[image.Pt(x, y)] = 200
		}
	}
	m := sparseMap(t, 500, 500, points)
	p := FixationParams{MaxFixations: 3, MinSaliency: 150, MinDistance: 10}
	if got := len(FixationOrder(m, p)); got != 3 {
		t.Errorf("got %d fixations, want cap of 3", got)
	}
}

func TestFixationOrder_FewerPeaksThanMax(t *testing.T) {
	m := sparseMap(t, 100, 100, map[image.Point]uint8{{50, 50}: 200})
	fixs := FixationOrder(m, DefaultFixationParams())
	if len(fixs) != 1 {
		t.Errorf("got %d fixations, want 1", len(fixs))
	}
}

func TestFixationOrder_NoQualifyingPeaks(t *testing.T) {
	// Everything below MinSaliency: the global maximum still yields one
	// fixation.
	m := sparseMap(t, 100, 100, map[image.Point]uint8{{40, 60}: 100})
	fixs := FixationOrder(m, DefaultFixationParams())
	if len(fixs) != 1 {
		t.Fatalf("got %d fixations, want 1", len(fixs))
	}
	f := fixs[0]
	if f.Position != [2]int{40, 60} || f.Saliency != 100 || f.Method != MethodHighestSaliency {
		t.Errorf("fallback fixation = %+v", f)
	}
}

func TestFixationOrder_AllZeroMap(t *testing.T) {
	m := sparseMap(t, 50, 50, nil)
	fixs := FixationOrder(m, DefaultFixationParams())
	if len(fixs) != 1 {
		t.Fatalf("got %d fixations, want 1", len(fixs))
	}
	f := fixs[0]
	if f.Position != [2]int{0, 0} || f.Saliency != 0 {
		t.Errorf("fixation on all-zero map = %+v, want position [0 0] with saliency 0", f)
	}
}

func TestFixationOrder_EmptyMap(t *testing.T) {
	m, err := saliency.NewMap(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if fixs := FixationOrder(m, DefaultFixationParams()); fixs != nil {
		t.Errorf("got %v on a zero-area map, want none", fixs)
	}
	if fixs := FixationOrder(nil, DefaultFixationParams()); fixs != nil {
		t.Errorf("got %v on a nil map, want none", fixs)
	}
}

func TestFixationOrder_NonPositiveMax(t *testing.T) {
	m := sparseMap(t, 100, 100, map[image.Point]uint8{{10, 10}: 200})
	for _, max := range []int{0, -1} {
		p := FixationParams{MaxFixations: max, MinSaliency: 150, MinDistance: 80}
		if fixs := FixationOrder(m, p); fixs != nil {
			t.Errorf("MaxFixations=%d produced %v, want none", max, fixs)
		}
	}
}

func TestFixationOrder_Deterministic(t *testing.T) {
	points := map[image.Point]uint8{}
	for y := 30; y < 400; y += 90 {
		for x := 30; x < 400; x += 90 {
			points[image.Pt(x, y)] = uint8(150 + (x+y)%100)
		}
	}
	m := sparseMap(t, 400, 400, points)
	a := FixationOrder(m, DefaultFixationParams())
	b := FixationOrder(m, DefaultFixationParams())
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("fixation %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestFixationOrder_TopLeftStartBias(t *testing.T) {
	// Equal peak strength: the top-left one is fixated first.
	m := sparseMap(t, 100, 100, map[image.Point]uint8{
		{10, 10}: 200,
		{90, 90}: 200,
	})
	fixs := FixationOrder(m, DefaultFixationParams())
	if len(fixs) == 0 || fixs[0].Position != [2]int{10, 10} {
		t.Errorf("first fixation = %+v, want the top-left peak", fixs)
	}
}

func TestSaliencyPeaks_LocalMaximaOnly(t *testing.T) {
	// 5 px apart: the weaker cell falls inside the stronger cell's 15×15
	// window and is not a peak.
	m := sparseMap(t, 100, 100, map[image.Point]uint8{
		{50, 50}: 200,
		{55, 50}: 180,
	})
	peaks := saliencyPeaks(m, 150)
	if len(peaks) != 1 {
		t.Fatalf("got %d peaks, want 1", len(peaks))
	}
	if peaks[0].x != 50 || peaks[0].y != 50 {
		t.Errorf("peak at (%d, %d), want (50, 50)", peaks[0].x, peaks[0].y)
	}
}

func TestSaliencyPeaks_RowMajorOrder(t *testing.T) {
	m := sparseMap(t, 100, 100, map[image.Point]uint8{
		{80, 20}: 200,
		{20, 20}: 200,
		{50, 70}: 200,
	})
	peaks := saliencyPeaks(m, 150)
	if len(peaks) != 3 {
		t.Fatalf("got %d peaks, want 3", len(peaks))
	}
	want := [][2]int{{20, 20}, {80, 20}, {50, 70}}
	for i, w := range want {
		if peaks[i].x != w[0] || peaks[i].y != w[1] {
			t.Errorf("peak %d at (%d, %d), want (%d, %d)", i, peaks[i].x, peaks[i].y, w[0], w[1])
		}
	}
}

func TestNextScore_ReadingDirection(t *testing.T) {
	t.Run("after horizontal move favor below", func(t *testing.T) {
		path := []Fixation{
			{Order: 1, Position: [2]int{10, 50}},
			{Order: 2, Position: [2]int{60, 50}},
		}
		below := peak{x: 60, y: 100, v: 200}
		above := peak{x: 60, y: 0, v: 200}
		if nextScore(below, path, 200, 200, dist(0, 0, 200, 200)) <= nextScore(above, path, 200, 200, dist(0, 0, 200, 200)) {
			t.Error("candidate below the line did not outscore the one above")
		}
	})
	t.Run("after vertical move favor sideways", func(t *testing.T) {
		path := []Fixation{
			{Order: 1, Position: [2]int{50, 10}},
			{Order: 2, Position: [2]int{50, 60}},
		}
		sideways := peak{x: 100, y: 60, v: 200}
		down := peak{x: 50, y: 110, v: 200}
		if nextScore(sideways, path, 200, 200, dist(0, 0, 200, 200)) <= nextScore(down, path, 200, 200, dist(0, 0, 200, 200)) {
			t.Error("sideways candidate did not outscore the one straight down")
		}
	})
}

func TestInhibit_NegativeRadius(t *testing.T) {
	peaks := []peak{{x: 0, y: 0, v: 200}, {x: 1, y: 0, v: 180}}
	kept := inhibit(peaks, 0, 0, 0, -1)
	if len(kept) != 1 || kept[0].x != 1 {
		t.Errorf("kept = %+v, want only the unchosen peak", kept)
	}
}
