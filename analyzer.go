package attention

import (
	"fmt"
	"image"

	"github.com/porticus-lab/go-attention/imgproc"
	"github.com/porticus-lab/go-attention/regions"
	"github.com/porticus-lab/go-attention/saliency"
)

// Analyzer computes visual attention reports for images. An Analyzer is
// immutable after creation and safe for concurrent use.
type Analyzer struct {
	cfg   analyzerConfig
	faces *faceDetector
}

// New creates an Analyzer. When a face cascade is configured it is
// loaded eagerly, so errors surface at creation time rather than on the
// first analysis.
func New(opts ...Option) (*Analyzer, error) {
	cfg := defaultAnalyzerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	a := &Analyzer{cfg: cfg}
	if cfg.cascadePath != "" {
		d, err := newFaceDetector(cfg.cascadePath)
		if err != nil {
			return nil, err
		}
		a.faces = d
	}
	return a, nil
}

// Analyze computes the saliency map of img and derives the full report:
// clarity and confidence metrics, attention shares for the given goal
// boxes, automatically detected attention zones and the predicted
// fixation order.
//
// Faces and configured boost regions are folded into the map first, so
// every downstream number reflects them. goalBoxes may be nil.
func (a *Analyzer) Analyze(img image.Image, goalBoxes []regions.GoalBox) (*Report, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	m, err := saliency.Spectral(img)
	if err != nil {
		return nil, fmt.Errorf("attention: computing saliency: %w", err)
	}

	faces := 0
	if a.faces != nil && !m.Empty() {
		rects := a.faces.detect(imgproc.Luma(img))
		BoostRegions(m, rects...)
		faces = len(rects)
	}
	if len(a.cfg.boosts) > 0 {
		BoostRegions(m, a.cfg.boosts...)
	}

	rep := &Report{
		Metrics: ReportMetrics{
			ClarityScore:    ClarityScore(m),
			ConfidenceLevel: ConfidenceLevel(m),
			MaxSaliencyPeak: int(m.MaxValue()),
			FacesDetected:   faces,
		},
		Interpretation: DefaultInterpretation(),
		GoalBoxes:      GoalBoxShares(m, goalBoxes),
		FixationOrder:  FixationOrder(m, a.cfg.fixation),
		saliency:       m,
	}
	if a.cfg.zones {
		rep.AutoDetectedZones = DetectZones(m, a.cfg.topRegions, a.cfg.minZoneArea)
	}
	if rep.AutoDetectedZones == nil {
		rep.AutoDetectedZones = []ZoneRegion{}
	}
	if rep.FixationOrder == nil {
		rep.FixationOrder = []Fixation{}
	}
	return rep, nil
}

// Analyze is a convenience for one-off analysis with a throwaway
// Analyzer.
func Analyze(img image.Image, goalBoxes []regions.GoalBox, opts ...Option) (*Report, error) {
	a, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return a.Analyze(img, goalBoxes)
}
