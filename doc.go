// Package attention predicts where human attention lands on a web page
// screenshot: it computes a spectral-residual saliency map, scores goal
// regions, finds high-attention zones, and derives the order in which a
// viewer's gaze is likely to visit them.
//
// # Analyzing a screenshot
//
// For a one-off analysis use the package-level helper:
//
//	rep, err := attention.Analyze(img, nil)
//
// The report carries the headline metrics, the detected zones and the
// predicted fixation order, and marshals to JSON:
//
//	rep.Metrics.ClarityScore    // 0-100
//	rep.Metrics.ConfidenceLevel // "High", "Medium" or "Low"
//	rep.FixationOrder           // gaze path, strongest peak first
//	rep.WriteFile("saliency_metrics.json")
//
// Pass goal boxes to score how much attention named page regions receive:
//
//	boxes, err := regions.LoadGoalBoxes("goal_boxes.json")
//	rep, err  = attention.Analyze(img, boxes)
//
// For repeated analyses create an [Analyzer], which loads its face
// cascade once and is safe for concurrent use:
//
//	a, err := attention.New(
//	    attention.WithFaceCascade("facefinder"),
//	    attention.WithTopRegions(5),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rep, err := a.Analyze(img, boxes)
//
// # Fixation sequences
//
// [FixationOrder] works directly on a saliency map and is deterministic
// for a given map and parameters:
//
//	fixs := attention.FixationOrder(m, attention.DefaultFixationParams())
//	for _, f := range fixs {
//	    fmt.Println(f.Order, f.Position, f.Saliency, f.Method)
//	}
//
// # Heatmaps
//
// Render the analyzed map over the source image, plus a color legend:
//
//	overlay, err := attention.RenderHeatmap(img, rep.SaliencyMap())
//	legend := attention.RenderLegend(0, 0)
//
// The subpackages complete the toolkit: saliency holds the map model and
// the spectral-residual generator, capture drives a headless browser for
// screenshots and PDF printing, mdpdf renders Markdown reports to PDF,
// regions extracts annotated goal boxes from marked screenshots, and n8n
// talks to a workflow-automation instance.
package attention
