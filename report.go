package attention

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/porticus-lab/go-attention/saliency"
)

// Fixed interpretation guidance published with every report.
const (
	clarityMeaning    = "Higher is better (80-100=Clear, 0-49=Cluttered)."
	confidenceMeaning = "High means the design has a clear focal point."
)

// OutputFiles lists the artifacts written alongside a report. The
// library leaves it nil; command-line and server frontends fill it in
// after writing the files.
type OutputFiles struct {
	Heatmap string `json:"heatmap"`
	Metrics string `json:"metrics"`
	Legend  string `json:"legend"`
}

// ReportMetrics are the headline numbers of an analysis.
type ReportMetrics struct {
	ClarityScore    int    `json:"clarity_score"`
	ConfidenceLevel string `json:"confidence_level"`
	MaxSaliencyPeak int    `json:"max_saliency_peak"`
	FacesDetected   int    `json:"faces_detected"`
}

// Interpretation explains how to read the metrics.
type Interpretation struct {
	ClarityMeaning    string `json:"clarity_meaning"`
	ConfidenceMeaning string `json:"confidence_meaning"`
}

// DefaultInterpretation returns the guidance strings attached to every
// report.
func DefaultInterpretation() Interpretation {
	return Interpretation{
		ClarityMeaning:    clarityMeaning,
		ConfidenceMeaning: confidenceMeaning,
	}
}

// Report is the complete result of analyzing one image. Its JSON layout
// is stable and consumed by automation pipelines; the goal_boxes,
// auto_detected_zones and fixation_order arrays are always present, even
// when empty.
type Report struct {
	OutputFiles       *OutputFiles   `json:"output_files,omitempty"`
	Metrics           ReportMetrics  `json:"metrics"`
	Interpretation    Interpretation `json:"interpretation"`
	GoalBoxes         []BoxMetric    `json:"goal_boxes"`
	AutoDetectedZones []ZoneRegion   `json:"auto_detected_zones"`
	FixationOrder     []Fixation     `json:"fixation_order"`

	saliency *saliency.Map
}

// SaliencyMap returns the map the report was computed from, after face
// and region boosts. Callers use it to render heatmaps or run further
// analysis; the map must not be modified.
func (r *Report) SaliencyMap() *saliency.Map { return r.saliency }

// JSON returns the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("attention: encoding report: %w", err)
	}
	return data, nil
}

// WriteFile saves the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := r.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("attention: writing report: %w", err)
	}
	return nil
}
