// gaze captures web pages and predicts where a viewer looks first.
//
// Usage:
//
//	gaze capture [options] <url>
//	gaze analyze [options] <image>
//	gaze regions [options] <marked-image> [original-image]
//	gaze md2pdf [options] <report.md>
//	gaze workflow <list|export|validate|backup> [options]
//	gaze serve [options]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/porticus-lab/go-attention/capture"
	"github.com/porticus-lab/go-attention/mdpdf"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	log := newLogger()

	var err error
	switch os.Args[1] {
	case "capture":
		err = runCapture(log, os.Args[2:])
	case "analyze":
		err = runAnalyze(log, os.Args[2:])
	case "regions":
		err = runRegions(log, os.Args[2:])
	case "md2pdf":
		err = runMD2PDF(log, os.Args[2:])
	case "workflow":
		err = runWorkflow(log, os.Args[2:])
	case "serve":
		err = runServe(log, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`gaze - web page attention analysis toolkit

Usage:
  gaze capture [options] <url>
  gaze analyze [options] <image>
  gaze regions [options] <marked-image> [original-image]
  gaze md2pdf [options] <report.md>
  gaze workflow <list|export|validate|backup> [options]
  gaze serve [options]

Commands:
  capture    Screenshot a web page
  analyze    Predict attention on a page screenshot and write a report
  regions    Extract goal boxes from a hand-annotated screenshot
  md2pdf     Render a markdown report to PDF
  workflow   Manage n8n workflows (list, export, validate, backup)
  serve      Run the HTTP API

Run any command with -h for its options.

Environment:
  GAZE_ADDR      listen address for serve (default :8080)
  GAZE_API_KEY   API key required by serve, empty disables auth
  GAZE_N8N_URL   n8n instance URL for workflow commands
  GAZE_N8N_KEY   n8n API key for workflow commands

Examples:
  gaze capture -full -o landing.png https://example.com
  gaze analyze -boxes goal_boxes.json -out report/ landing.png
  gaze regions -o goal_boxes.json marked.png landing.png
  gaze md2pdf -o report.pdf report.md
  gaze workflow backup -dir backups/
  gaze serve -addr :9000
`)
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger()
}

// envOr returns the environment variable value or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// browserFlags registers the flags shared by every command that starts
// a browser and returns a builder for the matching capture options.
func browserFlags(fs *flag.FlagSet) func() []capture.Option {
	chrome := fs.String("chrome", "", "path to the Chrome/Chromium binary")
	noSandbox := fs.Bool("no-sandbox", false, "pass --no-sandbox to Chrome")
	autoDL := fs.Bool("auto-download", false, "download a browser when none is installed")
	timeout := fs.Duration("timeout", 0, "per-page timeout (default 30s)")

	return func() []capture.Option {
		var opts []capture.Option
		if *chrome != "" {
			opts = append(opts, capture.WithChromePath(*chrome))
		}
		if *noSandbox {
			opts = append(opts, capture.WithNoSandbox())
		}
		if *autoDL {
			opts = append(opts, capture.WithAutoDownload())
		}
		if *timeout > 0 {
			opts = append(opts, capture.WithTimeout(*timeout))
		}
		return opts
	}
}

// runCapture implements the "capture" command.
func runCapture(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	out := fs.String("o", "screenshot.png", "output PNG path")
	width := fs.Int("width", 0, "viewport width (default 1200)")
	height := fs.Int("height", 0, "viewport height (default 800)")
	fullPage := fs.Bool("full", false, "capture the full page height")
	settle := fs.Duration("settle", 0, "wait after load for dynamic content (default 3s, negative to skip)")
	bopts := browserFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	url := fs.Arg(0)
	if url == "" {
		return fmt.Errorf("no URL specified")
	}

	b, err := capture.NewBrowser(bopts()...)
	if err != nil {
		return err
	}
	defer b.Close()

	start := time.Now()
	shot, err := b.Screenshot(context.Background(), url, capture.ShotConfig{
		Width:    *width,
		Height:   *height,
		FullPage: *fullPage,
		Settle:   *settle,
	})
	if err != nil {
		return err
	}
	if err := shot.WriteToFile(*out, 0o644); err != nil {
		return err
	}

	log.Info().
		Str("url", url).
		Str("path", *out).
		Int("bytes", shot.Len()).
		Dur("took", time.Since(start)).
		Msg("screenshot saved")
	return nil
}

// runMD2PDF implements the "md2pdf" command.
func runMD2PDF(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("md2pdf", flag.ContinueOnError)
	out := fs.String("o", "", "output PDF path (default: markdown name with .pdf)")
	cssFile := fs.String("css", "", "custom stylesheet file")
	paper := fs.String("paper", "", "paper size: a3, a4, a5, letter, legal, tabloid (default a4)")
	landscape := fs.Bool("landscape", false, "print in landscape orientation")
	margin := fs.Float64("margin", 0, "page margin in cm (default 2)")
	bopts := browserFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	mdPath := fs.Arg(0)
	if mdPath == "" {
		return fmt.Errorf("no markdown file specified")
	}

	opts := []mdpdf.Option{mdpdf.WithBrowserOptions(bopts()...)}
	if *cssFile != "" {
		css, err := os.ReadFile(*cssFile)
		if err != nil {
			return fmt.Errorf("reading stylesheet: %w", err)
		}
		opts = append(opts, mdpdf.WithCSS(string(css)))
	}
	if *paper != "" || *landscape || *margin > 0 {
		pg := mdpdf.ReportPageConfig()
		if *paper != "" {
			size, err := capture.ParsePageSize(*paper)
			if err != nil {
				return err
			}
			pg.Size = size
		}
		if *landscape {
			pg.Orientation = capture.Landscape
		}
		if *margin > 0 {
			pg.Margin = capture.UniformMargin(*margin)
		}
		opts = append(opts, mdpdf.WithPageConfig(pg))
	}

	c, err := mdpdf.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	doc, err := c.ConvertFile(context.Background(), mdPath, *out)
	if err != nil {
		return err
	}

	pdfPath := *out
	if pdfPath == "" {
		pdfPath = strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".pdf"
	}
	log.Info().
		Str("markdown", mdPath).
		Str("pdf", pdfPath).
		Int("bytes", doc.PDF.Len()).
		Msg("report rendered")
	return nil
}
