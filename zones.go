package attention

import (
	"fmt"
	"sort"

	"github.com/porticus-lab/go-attention/imgproc"
	"github.com/porticus-lab/go-attention/saliency"
)

// Heat bands of a saliency map, named for their color under the standard
// jet palette.
const (
	ZoneRed    = "red"
	ZoneYellow = "yellow"
	ZoneBlue   = "blue"
)

// zoneBands partitions the intensity range. Order matters: regions are
// discovered hottest band first.
var zoneBands = []struct {
	name   string
	lo, hi uint8
}{
	{ZoneRed, 200, 255},
	{ZoneYellow, 100, 199},
	{ZoneBlue, 0, 99},
}

// zoneMorphKernel is the square kernel used to knit ragged band masks
// into solid regions before labeling.
const zoneMorphKernel = 5

// ZoneRegion is one automatically detected region of similar attention
// intensity.
type ZoneRegion struct {
	// Name is a human-readable label derived from the band and the
	// region's attention share.
	Name string `json:"name"`
	// Zone is the heat band the region belongs to.
	Zone string `json:"zone"`
	// Box is the bounding box as [x, y, w, h].
	Box [4]int `json:"box"`
	// AttentionShare is the percentage of the map's total attention
	// captured by the bounding box.
	AttentionShare float64 `json:"attention_share"`
	// AvgSaliency is the mean intensity inside the bounding box.
	AvgSaliency float64 `json:"avg_saliency"`
	// Area is the region's size in pixels.
	Area int `json:"area"`
	// Identified is reserved for downstream tooling that maps regions to
	// page elements.
	Identified bool `json:"identified"`
	// Priority marks the strongest regions as worth identifying first.
	Priority bool `json:"priority_for_identification,omitempty"`
}

// DetectZones segments the map into connected regions of low, medium and
// high attention. Each band mask is cleaned with a morphological close
// and open before labeling; regions smaller than minArea pixels and
// regions whose bounding box swallows more than half the map are
// discarded. The result is sorted by attention share, strongest first,
// with the top topN regions flagged as identification priorities.
//
// A map with no attention at all yields no regions.
func DetectZones(m *saliency.Map, topN, minArea int) []ZoneRegion {
	if m == nil || m.Empty() {
		return nil
	}
	total := m.Sum()
	if total == 0 {
		return nil
	}
	gray := m.Gray()
	mapArea := m.Width() * m.Height()

	var zones []ZoneRegion
	for _, band := range zoneBands {
		mask := imgproc.InRange(gray, band.lo, band.hi)
		mask = imgproc.Close(mask, zoneMorphKernel)
		mask = imgproc.Open(mask, zoneMorphKernel)

		n := 0
		for _, comp := range imgproc.Components(mask) {
			if comp.Area < minArea {
				continue
			}
			bb := comp.Bounds
			if float64(bb.Dx()*bb.Dy()) > 0.5*float64(mapArea) {
				continue
			}
			n++
			share := round2(float64(m.RegionSum(bb)) / float64(total) * 100)
			zones = append(zones, ZoneRegion{
				Name:           zoneName(band.name, share, n),
				Zone:           band.name,
				Box:            [4]int{bb.Min.X, bb.Min.Y, bb.Dx(), bb.Dy()},
				AttentionShare: share,
				AvgSaliency:    round2(m.RegionMean(bb)),
				Area:           comp.Area,
			})
		}
	}

	sort.SliceStable(zones, func(i, j int) bool {
		return zones[i].AttentionShare > zones[j].AttentionShare
	})
	for i := range zones {
		if i >= topN {
			break
		}
		zones[i].Priority = true
	}
	return zones
}

func zoneName(band string, share float64, n int) string {
	switch {
	case band == ZoneRed && share > 20:
		return fmt.Sprintf("High-Attention Element %d", n)
	case band == ZoneRed:
		return fmt.Sprintf("Hot Zone Element %d", n)
	case band == ZoneYellow:
		return fmt.Sprintf("Medium-Attention Element %d", n)
	default:
		return fmt.Sprintf("Low-Attention Element %d", n)
	}
}
