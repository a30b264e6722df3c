package regions

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/porticus-lab/go-attention/imgproc"
)

// Detection methods recorded in a Document.
const (
	// MethodDiff means regions were isolated by differencing the marked
	// image against the original.
	MethodDiff = "image_diff"
	// MethodColor means regions were isolated by saturated marker
	// colors and drawn edges in the marked image alone.
	MethodColor = "color_marker"
)

// annotationColors are the HSV ranges of common marker pens: red (both
// ends of the hue circle), blue, yellow and green, all strongly
// saturated and bright.
var annotationColors = []imgproc.HSVRange{
	{HMin: 0, HMax: 10, SMin: 100, SMax: 255, VMin: 100, VMax: 255},
	{HMin: 170, HMax: 180, SMin: 100, SMax: 255, VMin: 100, VMax: 255},
	{HMin: 100, HMax: 130, SMin: 100, SMax: 255, VMin: 100, VMax: 255},
	{HMin: 20, HMax: 30, SMin: 100, SMax: 255, VMin: 100, VMax: 255},
	{HMin: 40, HMax: 80, SMin: 100, SMax: 255, VMin: 100, VMax: 255},
}

// Edge thresholds for picking up thin drawn lines in color mode.
const (
	edgeLow  = 50
	edgeHigh = 150
)

// Options tune Detect. Zero-valued fields select the defaults; Padding
// may be negative to disable padding entirely.
type Options struct {
	// MinArea is the minimum region size in pixels (default 500).
	MinArea int
	// MaxBoxes caps the number of returned boxes (default 20).
	MaxBoxes int
	// Padding grows each box on all sides (default 5).
	Padding int
	// DiffThreshold: in diff mode a pixel counts as annotated when its
	// grayscale difference strictly exceeds this value (default 30).
	DiffThreshold uint8
}

func (o Options) resolved() Options {
	if o.MinArea == 0 {
		o.MinArea = 500
	}
	if o.MaxBoxes == 0 {
		o.MaxBoxes = 20
	}
	if o.Padding == 0 {
		o.Padding = 5
	} else if o.Padding < 0 {
		o.Padding = 0
	}
	if o.DiffThreshold == 0 {
		o.DiffThreshold = 30
	}
	return o
}

// Detect finds annotated regions in a marked screenshot and returns them
// as goal boxes named "Region 1", "Region 2" and so on.
//
// With a non-nil original the marked image is differenced against it and
// every region that changed beyond DiffThreshold is a candidate; the
// original is resampled first if the dimensions differ. Without an
// original, candidates are regions in saturated annotation colors plus
// strong drawn edges.
//
// Candidate regions smaller than MinArea pixels and regions whose box
// would cover more than half the image are dropped. Surviving boxes are
// padded, clipped to the image and capped at MaxBoxes. No detected
// regions is not an error; the result is just empty.
func Detect(marked, original image.Image, opts Options) ([]GoalBox, string, error) {
	if marked == nil {
		return nil, "", fmt.Errorf("regions: nil marked image")
	}
	o := opts.resolved()
	w := marked.Bounds().Dx()
	h := marked.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, "", fmt.Errorf("regions: zero-area marked image")
	}

	var mask *image.Gray
	var method string
	if original != nil {
		method = MethodDiff
		if original.Bounds().Dx() != w || original.Bounds().Dy() != h {
			original = imaging.Resize(original, w, h, imaging.Linear)
		}
		diff, err := imgproc.AbsDiff(imgproc.Luma(marked), imgproc.Luma(original))
		if err != nil {
			return nil, "", err
		}
		mask = imgproc.Threshold(diff, o.DiffThreshold)
	} else {
		method = MethodColor
		colors := imgproc.HSVMask(marked, annotationColors...)
		edges := imgproc.Edges(imgproc.Luma(marked), edgeLow, edgeHigh)
		var err error
		mask, err = imgproc.Or(colors, edges)
		if err != nil {
			return nil, "", err
		}
	}

	var boxes []GoalBox
	for _, comp := range imgproc.Components(mask) {
		if comp.Area < o.MinArea {
			continue
		}
		bb := comp.Bounds
		if float64(bb.Dx()*bb.Dy()) > 0.5*float64(w*h) {
			continue
		}
		x := max(0, bb.Min.X-o.Padding)
		y := max(0, bb.Min.Y-o.Padding)
		x2 := min(w, bb.Max.X+o.Padding)
		y2 := min(h, bb.Max.Y+o.Padding)
		boxes = append(boxes, GoalBox{
			Name: fmt.Sprintf("Region %d", len(boxes)+1),
			Box:  [4]int{x, y, x2 - x, y2 - y},
		})
		if len(boxes) >= o.MaxBoxes {
			break
		}
	}
	return boxes, method, nil
}
