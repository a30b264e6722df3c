package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	attention "github.com/porticus-lab/go-attention"
	"github.com/porticus-lab/go-attention/regions"
)

// Output filenames written next to the metrics report.
const (
	metricsFile = "saliency_metrics.json"
	legendFile  = "heatmap_legend.png"
)

// runAnalyze implements the "analyze" command: it computes the
// attention report for a screenshot and writes the heatmap overlay,
// the color legend and the metrics JSON into the output directory.
func runAnalyze(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	boxesPath := fs.String("boxes", "", "goal boxes JSON file")
	outDir := fs.String("out", ".", "output directory")
	cascade := fs.String("cascade", "", "face cascade file, enables face boosting")
	maxFix := fs.Int("max-fixations", 5, "fixation sequence length")
	minSal := fs.Int("min-saliency", 150, "peak detection threshold")
	minDist := fs.Float64("min-distance", 80, "fixation inhibition radius in pixels")
	noZones := fs.Bool("no-zones", false, "skip automatic zone detection")
	topN := fs.Int("top", 10, "zones to flag for identification")
	minZoneArea := fs.Int("min-zone-area", 500, "minimum zone size in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	imgPath := fs.Arg(0)
	if imgPath == "" {
		return fmt.Errorf("no image specified")
	}

	img, err := loadImage(imgPath)
	if err != nil {
		return err
	}

	var boxes []regions.GoalBox
	if *boxesPath != "" {
		if boxes, err = regions.LoadGoalBoxes(*boxesPath); err != nil {
			return err
		}
		log.Info().Int("boxes", len(boxes)).Str("path", *boxesPath).Msg("goal boxes loaded")
	}

	opts := []attention.Option{
		attention.WithFixationParams(attention.FixationParams{
			MaxFixations: *maxFix,
			MinSaliency:  *minSal,
			MinDistance:  *minDist,
		}),
		attention.WithTopRegions(*topN),
		attention.WithMinZoneArea(*minZoneArea),
	}
	if *noZones {
		opts = append(opts, attention.WithoutZones())
	}
	if *cascade != "" {
		opts = append(opts, attention.WithFaceCascade(*cascade))
	}

	rep, err := attention.Analyze(img, boxes, opts...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	base := filepath.Base(imgPath)
	base = base[:len(base)-len(filepath.Ext(base))]
	heatmapName := fmt.Sprintf("heatmap_output_%s.png", base)

	heat, err := attention.RenderHeatmap(img, rep.SaliencyMap())
	if err != nil {
		return err
	}
	if err := imaging.Save(heat, filepath.Join(*outDir, heatmapName)); err != nil {
		return fmt.Errorf("writing heatmap: %w", err)
	}
	if err := imaging.Save(attention.RenderLegend(0, 0), filepath.Join(*outDir, legendFile)); err != nil {
		return fmt.Errorf("writing legend: %w", err)
	}

	rep.OutputFiles = &attention.OutputFiles{
		Heatmap: heatmapName,
		Metrics: metricsFile,
		Legend:  legendFile,
	}
	metricsPath := filepath.Join(*outDir, metricsFile)
	if err := rep.WriteFile(metricsPath); err != nil {
		return err
	}

	log.Info().
		Int("clarity", rep.Metrics.ClarityScore).
		Str("confidence", rep.Metrics.ConfidenceLevel).
		Int("peak", rep.Metrics.MaxSaliencyPeak).
		Int("faces", rep.Metrics.FacesDetected).
		Int("zones", len(rep.AutoDetectedZones)).
		Int("fixations", len(rep.FixationOrder)).
		Msg("analysis complete")
	log.Info().Str("dir", *outDir).Str("metrics", metricsFile).Str("heatmap", heatmapName).Msg("report written")
	return nil
}

// runRegions implements the "regions" command: it extracts annotated
// regions from a marked screenshot into a goal boxes file.
func runRegions(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("regions", flag.ContinueOnError)
	out := fs.String("o", "goal_boxes.json", "output JSON path")
	minArea := fs.Int("min-area", 0, "minimum region size in pixels (default 500)")
	padding := fs.Int("pad", 0, "padding around each box (default 5, negative disables)")
	maxBoxes := fs.Int("max-boxes", 0, "region count cap (default 20)")
	threshold := fs.Int("threshold", 0, "diff threshold against the original (default 30)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	markedPath := fs.Arg(0)
	if markedPath == "" {
		return fmt.Errorf("no marked image specified")
	}

	marked, err := loadImage(markedPath)
	if err != nil {
		return err
	}
	var original image.Image
	if origPath := fs.Arg(1); origPath != "" {
		if original, err = loadImage(origPath); err != nil {
			return err
		}
	}

	boxes, method, err := regions.Detect(marked, original, regions.Options{
		MinArea:       *minArea,
		MaxBoxes:      *maxBoxes,
		Padding:       *padding,
		DiffThreshold: uint8(*threshold),
	})
	if err != nil {
		return err
	}

	doc := regions.Document{
		GoalBoxes:       boxes,
		SourceImage:     filepath.Base(markedPath),
		DetectionMethod: method,
	}
	if err := doc.WriteFile(*out); err != nil {
		return err
	}

	log.Info().
		Int("regions", len(boxes)).
		Str("method", method).
		Str("path", *out).
		Msg("regions detected")
	for _, b := range boxes {
		log.Info().Str("name", b.Name).Ints("box", b.Box[:]).Msg("region")
	}
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
