package attention_test

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	attention "github.com/porticus-lab/go-attention"
	"github.com/porticus-lab/go-attention/regions"
)

// pageImage paints a plain page with one standout block, roughly what a
// screenshot of a sparse landing page looks like.
func pageImage(w, h int, focal image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{235, 235, 235, 255}), image.Point{}, draw.Src)
	draw.Draw(img, focal, image.NewUniform(color.RGBA{200, 30, 30, 255}), image.Point{}, draw.Src)
	return img
}

func TestAnalyze_NilImage(t *testing.T) {
	a, err := attention.New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := a.Analyze(nil, nil); !errors.Is(err, attention.ErrNoImage) {
		t.Errorf("error = %v, want ErrNoImage", err)
	}
}

func TestAnalyze_Report(t *testing.T) {
	focal := image.Rect(20, 12, 44, 36)
	img := pageImage(64, 64, focal)
	rep, err := attention.Analyze(img, []regions.GoalBox{
		{Name: "CTA", Box: [4]int{16, 8, 32, 32}},
	})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if rep.Metrics.MaxSaliencyPeak != 255 {
		t.Errorf("max peak = %d, want 255 at native working size", rep.Metrics.MaxSaliencyPeak)
	}
	if rep.Metrics.ConfidenceLevel != attention.ConfidenceHigh {
		t.Errorf("confidence = %q, want %q", rep.Metrics.ConfidenceLevel, attention.ConfidenceHigh)
	}
	if rep.Metrics.ClarityScore < 0 || rep.Metrics.ClarityScore > 100 {
		t.Errorf("clarity = %d, want 0..100", rep.Metrics.ClarityScore)
	}
	if rep.Metrics.FacesDetected != 0 {
		t.Errorf("faces = %d, want 0 without a cascade", rep.Metrics.FacesDetected)
	}

	if want := attention.DefaultInterpretation(); rep.Interpretation != want {
		t.Errorf("interpretation = %+v, want %+v", rep.Interpretation, want)
	}

	if len(rep.GoalBoxes) != 1 {
		t.Fatalf("got %d goal box metrics, want 1", len(rep.GoalBoxes))
	}
	if rep.GoalBoxes[0].AttentionShare <= 0 {
		t.Errorf("goal box over the focal block captured %v%%, want > 0", rep.GoalBoxes[0].AttentionShare)
	}

	if len(rep.FixationOrder) == 0 {
		t.Fatal("no fixations predicted")
	}
	for i, f := range rep.FixationOrder {
		if f.Order != i+1 {
			t.Errorf("fixation %d has order %d", i, f.Order)
		}
	}
	if rep.FixationOrder[0].Method != attention.MethodHighestSaliency {
		t.Errorf("first fixation method = %q", rep.FixationOrder[0].Method)
	}

	m := rep.SaliencyMap()
	if m == nil || m.Width() != 64 || m.Height() != 64 {
		t.Fatal("report does not expose a saliency map matching the image")
	}
}

func TestAnalyze_ZeroAreaImage(t *testing.T) {
	rep, err := attention.Analyze(image.NewRGBA(image.Rect(0, 0, 0, 0)), []regions.GoalBox{
		{Name: "anything", Box: [4]int{0, 0, 10, 10}},
	})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if rep.Metrics.MaxSaliencyPeak != 0 || rep.Metrics.ClarityScore != 0 {
		t.Errorf("metrics = %+v, want zeroed", rep.Metrics)
	}
	if rep.Metrics.ConfidenceLevel != attention.ConfidenceLow {
		t.Errorf("confidence = %q, want %q", rep.Metrics.ConfidenceLevel, attention.ConfidenceLow)
	}
	if len(rep.FixationOrder) != 0 {
		t.Errorf("fixations on a zero-area image: %+v", rep.FixationOrder)
	}
	if rep.GoalBoxes[0].Verdict != attention.VerdictInvisible {
		t.Errorf("goal box verdict = %q, want %q", rep.GoalBoxes[0].Verdict, attention.VerdictInvisible)
	}
}

func TestAnalyze_JSONLayout(t *testing.T) {
	rep, err := attention.Analyze(pageImage(64, 64, image.Rect(10, 10, 30, 30)), nil)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	data, err := rep.JSON()
	if err != nil {
		t.Fatalf("JSON returned error: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	for _, key := range []string{"metrics", "interpretation", "goal_boxes", "auto_detected_zones", "fixation_order"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("report JSON is missing %q", key)
		}
	}
	if _, ok := doc["output_files"]; ok {
		t.Error("output_files present although no files were written")
	}
	// Arrays must be arrays even when empty, never null.
	if string(doc["goal_boxes"]) == "null" {
		t.Error("goal_boxes serialized as null")
	}
}

func TestAnalyze_WithoutZones(t *testing.T) {
	rep, err := attention.Analyze(pageImage(64, 64, image.Rect(10, 10, 30, 30)), nil,
		attention.WithoutZones())
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if len(rep.AutoDetectedZones) != 0 {
		t.Errorf("zones = %+v, want none when disabled", rep.AutoDetectedZones)
	}
	if rep.AutoDetectedZones == nil {
		t.Error("auto_detected_zones is nil, want empty array")
	}
}

func TestAnalyze_WithBoostRegions(t *testing.T) {
	quiet := image.Rect(48, 48, 64, 64)
	img := pageImage(64, 64, image.Rect(5, 5, 20, 20))
	rep, err := attention.Analyze(img, nil, attention.WithBoostRegions(quiet))
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	// The boost blends 30% of full scale in, so the region mean cannot
	// sit below that floor.
	if got := rep.SaliencyMap().RegionMean(quiet); got < 76 {
		t.Errorf("boosted region mean = %v, want >= 76", got)
	}
	if rep.Metrics.FacesDetected != 0 {
		t.Errorf("boost regions counted as faces: %d", rep.Metrics.FacesDetected)
	}
}

func TestNew_BadCascadePath(t *testing.T) {
	if _, err := attention.New(attention.WithFaceCascade("testdata/does-not-exist.bin")); err == nil {
		t.Error("expected an error for a missing cascade file")
	}
}
