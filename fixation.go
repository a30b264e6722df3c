package attention

import (
	"math"

	"github.com/porticus-lab/go-attention/imgproc"
	"github.com/porticus-lab/go-attention/saliency"
)

// Method values reported on a Fixation.
const (
	// MethodHighestSaliency marks the first fixation, chosen by raw peak
	// strength with a start bias toward the top-left.
	MethodHighestSaliency = "highest_saliency"
	// MethodWeightedSaliency marks every later fixation, chosen by peak
	// strength weighted by travel distance and scan direction.
	MethodWeightedSaliency = "weighted_saliency"
)

// peakWindow is the side of the square neighborhood a cell must dominate
// to count as a saliency peak.
const peakWindow = 15

// readingBias is the score multiplier for candidates that continue the
// established scan direction.
const readingBias = 1.2

// Fixation is one step of a predicted visual scan path.
type Fixation struct {
	// Order is the 1-based position in the sequence.
	Order int `json:"order"`
	// Position is the fixation point as [x, y] pixel coordinates.
	Position [2]int `json:"position"`
	// Saliency is the map intensity at the fixation point.
	Saliency int `json:"saliency"`
	// Method names the selection rule that produced this fixation.
	Method string `json:"method"`
}

// FixationParams tunes FixationOrder. Fields are taken literally, so the
// zero value produces an empty sequence; start from
// DefaultFixationParams and adjust.
type FixationParams struct {
	// MaxFixations caps the sequence length. Zero or negative yields an
	// empty sequence.
	MaxFixations int
	// MinSaliency is the minimum intensity for a cell to count as a
	// peak. When no cell qualifies, the brightest cell is used as the
	// only candidate.
	MinSaliency int
	// MinDistance is the inhibition radius in pixels: once a point has
	// been fixated, remaining candidates up to and including this
	// distance from it are excluded.
	MinDistance float64
}

// DefaultFixationParams returns the parameters Analyzer uses unless
// configured otherwise: at most 5 fixations, peak threshold 150,
// inhibition radius 80 pixels.
func DefaultFixationParams() FixationParams {
	return FixationParams{MaxFixations: 5, MinSaliency: 150, MinDistance: 80}
}

// FixationOrder predicts the order in which a viewer's gaze visits the
// salient regions of m.
//
// Candidates are the cells that dominate their 15×15 neighborhood at or
// above MinSaliency; if none qualify, the global maximum serves as the
// only candidate. The first fixation favors strong peaks near the
// top-left, where scanning habitually starts. Each later fixation weighs
// the remaining peaks by strength, discounted by travel distance from
// the current point, rewarded for continuing the established scan
// direction and mildly pulled toward the top-left. After every choice,
// candidates within MinDistance of the chosen point are dropped so the
// gaze does not revisit the same area.
//
// The result is deterministic: score ties resolve to the earliest
// candidate in row-major order. A nil or zero-area map yields no
// fixations.
func FixationOrder(m *saliency.Map, p FixationParams) []Fixation {
	if m == nil || m.Empty() || p.MaxFixations <= 0 {
		return nil
	}
	peaks := saliencyPeaks(m, p.MinSaliency)
	w := float64(m.Width())
	h := float64(m.Height())
	diag := m.Diagonal()

	fixs := make([]Fixation, 0, p.MaxFixations)
	for len(fixs) < p.MaxFixations && len(peaks) > 0 {
		best := 0
		bestScore := math.Inf(-1)
		for i, pk := range peaks {
			var score float64
			if len(fixs) == 0 {
				score = firstScore(pk, w, h)
			} else {
				score = nextScore(pk, fixs, w, h, diag)
			}
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		sel := peaks[best]
		method := MethodWeightedSaliency
		if len(fixs) == 0 {
			method = MethodHighestSaliency
		}
		fixs = append(fixs, Fixation{
			Order:    len(fixs) + 1,
			Position: [2]int{sel.x, sel.y},
			Saliency: int(sel.v),
			Method:   method,
		})
		peaks = inhibit(peaks, best, sel.x, sel.y, p.MinDistance)
	}
	return fixs
}

type peak struct {
	x, y int
	v    uint8
}

// saliencyPeaks lists the cells that equal the maximum of their 15×15
// neighborhood and reach minSaliency, in row-major order. When nothing
// qualifies the global maximum is returned as the only candidate, so a
// non-empty map always produces at least one.
func saliencyPeaks(m *saliency.Map, minSaliency int) []peak {
	win := imgproc.Dilate(m.Gray(), peakWindow)
	var peaks []peak
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			v := m.At(x, y)
			if int(v) >= minSaliency && v == win.Pix[y*win.Stride+x] {
				peaks = append(peaks, peak{x: x, y: y, v: v})
			}
		}
	}
	if len(peaks) == 0 {
		x, y, v := m.Max()
		peaks = append(peaks, peak{x: x, y: y, v: v})
	}
	return peaks
}

// firstScore ranks candidates for the opening fixation: raw strength
// shaded toward the top-left corner.
func firstScore(pk peak, w, h float64) float64 {
	return float64(pk.v) * (1 - 0.3*float64(pk.x)/w - 0.2*float64(pk.y)/h)
}

// nextScore ranks candidates for a follow-up fixation relative to the
// path walked so far.
func nextScore(pk peak, path []Fixation, w, h, diag float64) float64 {
	last := path[len(path)-1].Position
	d := dist(pk.x, pk.y, last[0], last[1])

	// Prefer nearby peaks. The penalty decays with travel distance as a
	// fraction of the image diagonal.
	score := float64(pk.v) * math.Exp(-3*d/diag)

	// Reward candidates that continue the established direction: after a
	// horizontal move favor dropping down a line, otherwise favor moving
	// sideways.
	if len(path) >= 2 {
		prev := path[len(path)-2].Position
		if abs(prev[0]-last[0]) > abs(prev[1]-last[1]) {
			if pk.y > last[1] {
				score *= readingBias
			}
		} else if abs(pk.x-last[0]) > abs(pk.y-last[1]) {
			score *= readingBias
		}
	}

	// Standing pull toward the top-left, floored so far corners stay in
	// play.
	corner := 1 - 0.2*float64(pk.x)/w - 0.15*float64(pk.y)/h
	if corner < 0.7 {
		corner = 0.7
	}
	return score * corner
}

// inhibit returns the candidates that survive fixating (fx, fy): the
// chosen peak and everything up to and including minDistance away are
// removed.
func inhibit(peaks []peak, chosen, fx, fy int, minDistance float64) []peak {
	kept := make([]peak, 0, len(peaks))
	for i, pk := range peaks {
		if i == chosen {
			continue
		}
		if dist(pk.x, pk.y, fx, fy) > minDistance {
			kept = append(kept, pk)
		}
	}
	return kept
}

func dist(x0, y0, x1, y1 int) float64 {
	return math.Hypot(float64(x0-x1), float64(y0-y1))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
