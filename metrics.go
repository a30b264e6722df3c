package attention

import (
	"image"
	"math"

	"github.com/porticus-lab/go-attention/regions"
	"github.com/porticus-lab/go-attention/saliency"
)

// Confidence levels for how reliably a design steers attention.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Goal box verdicts.
const (
	VerdictExcellent = "Excellent Visibility"
	VerdictAverage   = "Average Visibility"
	VerdictInvisible = "Invisible"
)

// ClarityScore rates how focused a saliency map is on a 0–100 scale.
// A map with a few strong peaks over a quiet background scores high; a
// map with attention smeared everywhere scores low. Maps whose strongest
// response is weak are additionally discounted, since a faint peak over
// a faint background signals clutter rather than focus.
func ClarityScore(m *saliency.Map) int {
	max := m.MaxValue()
	if max == 0 {
		return 0
	}
	score := (1 - m.Mean()/float64(max)) * 100
	if max < 50 {
		score *= float64(max) / 50
	}
	s := int(score)
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// ConfidenceLevel grades the strongest attention response of the map:
// High above 200, Medium above 100, Low otherwise.
func ConfidenceLevel(m *saliency.Map) string {
	switch max := m.MaxValue(); {
	case max > 200:
		return ConfidenceHigh
	case max > 100:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// BoxMetric reports how much attention a goal box captures.
type BoxMetric struct {
	Name           string  `json:"name"`
	Box            [4]int  `json:"box"`
	AttentionShare float64 `json:"attention_share"`
	Verdict        string  `json:"verdict"`
}

// GoalBoxShares measures, for each goal box, the share of the map's total
// attention that falls inside the box. Boxes are clipped to the map;
// boxes left with no area score zero. Shares above 15% earn
// VerdictExcellent, 5% and up VerdictAverage, anything less
// VerdictInvisible.
func GoalBoxShares(m *saliency.Map, boxes []regions.GoalBox) []BoxMetric {
	total := m.Sum()
	out := make([]BoxMetric, 0, len(boxes))
	for _, gb := range boxes {
		share := 0.0
		if total > 0 {
			r := clipBox(gb.Box, m.Width(), m.Height())
			share = round2(float64(m.RegionSum(r)) / float64(total) * 100)
		}
		out = append(out, BoxMetric{
			Name:           gb.Name,
			Box:            gb.Box,
			AttentionShare: share,
			Verdict:        boxVerdict(share),
		})
	}
	return out
}

func boxVerdict(share float64) string {
	switch {
	case share > 15:
		return VerdictExcellent
	case share >= 5:
		return VerdictAverage
	default:
		return VerdictInvisible
	}
}

// clipBox converts an [x, y, w, h] box to a rectangle clipped to a w×h
// canvas. The origin is clamped inside the canvas first so a box hanging
// off the edge keeps its visible part.
func clipBox(box [4]int, w, h int) image.Rectangle {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	x := clampInt(box[0], 0, w-1)
	y := clampInt(box[1], 0, h-1)
	bw := box[2]
	bh := box[3]
	if bw > w-x {
		bw = w - x
	}
	if bh > h-y {
		bh = h - y
	}
	if bw <= 0 || bh <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(x, y, x+bw, y+bh)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
