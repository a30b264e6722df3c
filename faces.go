package attention

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/porticus-lab/go-attention/saliency"
)

// Boost blend: 70% of the existing intensity plus 30% of full scale.
// Faces and caller-supplied magnet regions draw the eye regardless of
// their pixel contrast, so their saliency is raised toward the ceiling.
const (
	boostKeep = 0.7
	boostGain = 0.3 * 255
)

// minFaceQuality discards low-certainty cascade detections.
const minFaceQuality = 5.0

// minFaceSize is the smallest face side the cascade scans for, in
// pixels.
const minFaceSize = 20

type faceDetector struct {
	classifier *pigo.Pigo
}

// newFaceDetector loads a binary pigo cascade from disk.
func newFaceDetector(path string) (*faceDetector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("attention: reading face cascade: %w", err)
	}
	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("attention: unpacking face cascade %s: %w", path, err)
	}
	return &faceDetector{classifier: classifier}, nil
}

// detect returns face bounding boxes found in the grayscale image.
func (d *faceDetector) detect(gray *image.Gray) []image.Rectangle {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	if w < minFaceSize || h < minFaceSize {
		return nil
	}
	maxSize := w
	if h < w {
		maxSize = h
	}
	params := pigo.CascadeParams{
		MinSize:     minFaceSize,
		MaxSize:     maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: gray.Pix,
			Rows:   h,
			Cols:   w,
			Dim:    gray.Stride,
		},
	}
	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, 0.2)

	var rects []image.Rectangle
	for _, det := range dets {
		if det.Q <= minFaceQuality {
			continue
		}
		half := det.Scale / 2
		rects = append(rects, image.Rect(
			det.Col-half, det.Row-half,
			det.Col-half+det.Scale, det.Row-half+det.Scale,
		))
	}
	return rects
}

// BoostRegions raises the map intensity inside each rectangle, blending
// 70% of the existing value with 30% of full scale. Rectangles are
// clipped to the map bounds; the map is modified in place.
func BoostRegions(m *saliency.Map, rects ...image.Rectangle) {
	if m == nil {
		return
	}
	for _, r := range rects {
		r = r.Intersect(m.Bounds())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				v := boostKeep*float64(m.At(x, y)) + boostGain
				m.Set(x, y, uint8(v+0.5))
			}
		}
	}
}
