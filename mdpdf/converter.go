// Package mdpdf converts markdown reports to styled PDF documents.
//
// Markdown is rendered to a standalone HTML document with goldmark,
// styled with [DefaultCSS] or a custom stylesheet, then printed to PDF
// through a headless browser from the capture package. Relative image
// references are resolved against the source location so generated
// reports can embed heatmaps and screenshots by relative path.
package mdpdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/porticus-lab/go-attention/capture"
)

// Converter turns markdown into PDF documents.
//
// A Converter reuses one headless browser across conversions. It is
// safe for concurrent use. Call [Converter.Close] when finished; a
// browser supplied via [WithBrowser] is left open for its owner.
type Converter struct {
	cfg converterConfig

	browser *capture.Browser
	owned   bool

	mu     sync.Mutex
	closed bool
}

type converterConfig struct {
	browser     *capture.Browser
	browserOpts []capture.Option
	page        *capture.PageConfig
	css         string
}

// Option configures a Converter.
type Option func(*converterConfig)

// WithBrowser shares an existing browser instead of starting a new
// one. The Converter will not close it.
func WithBrowser(b *capture.Browser) Option {
	return func(c *converterConfig) { c.browser = b }
}

// WithBrowserOptions passes options through to the browser the
// Converter starts for itself. Ignored when [WithBrowser] is used.
func WithBrowserOptions(opts ...capture.Option) Option {
	return func(c *converterConfig) { c.browserOpts = opts }
}

// WithPageConfig sets the PDF page parameters. The default is A4 with
// 2 cm margins.
func WithPageConfig(pg *capture.PageConfig) Option {
	return func(c *converterConfig) { c.page = pg }
}

// WithCSS replaces [DefaultCSS] with a custom stylesheet.
func WithCSS(css string) Option {
	return func(c *converterConfig) { c.css = css }
}

// NewConverter creates a Converter with the given options.
//
// Unless a shared browser is supplied with [WithBrowser], it starts a
// headless browser in the background so errors surface at creation
// time. The caller must call [Converter.Close] when finished.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := converterConfig{css: DefaultCSS}
	for _, o := range opts {
		o(&cfg)
	}

	c := &Converter{cfg: cfg, browser: cfg.browser}
	if c.browser == nil {
		b, err := capture.NewBrowser(cfg.browserOpts...)
		if err != nil {
			return nil, fmt.Errorf("mdpdf: %w", err)
		}
		c.browser = b
		c.owned = true
	}
	return c, nil
}

// Close releases the Converter's browser if it owns one. Close is
// idempotent.
func (c *Converter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.owned {
		return c.browser.Close()
	}
	return nil
}

// Document is the result of a conversion: the intermediate HTML and
// the printed PDF.
type Document struct {
	HTML string
	PDF  *capture.PDF
}

// Convert renders markdown source to PDF. Relative image paths in the
// source are resolved against baseDir; pass "" to leave them as
// written.
func (c *Converter) Convert(ctx context.Context, src []byte, baseDir string) (*Document, error) {
	htmlDoc, err := Render(src, baseDir, c.cfg.css)
	if err != nil {
		return nil, err
	}

	pdf, err := c.browser.PrintHTML(ctx, htmlDoc, c.pageConfig())
	if err != nil {
		return nil, fmt.Errorf("mdpdf: %w", err)
	}
	return &Document{HTML: htmlDoc, PDF: pdf}, nil
}

// ConvertFile renders the markdown file at mdPath to pdfPath, writing
// the intermediate HTML next to the PDF with an .html extension. An
// empty pdfPath derives the output name from mdPath.
func (c *Converter) ConvertFile(ctx context.Context, mdPath, pdfPath string) (*Document, error) {
	src, err := os.ReadFile(mdPath)
	if err != nil {
		return nil, fmt.Errorf("mdpdf: reading markdown: %w", err)
	}
	if pdfPath == "" {
		pdfPath = replaceExt(mdPath, ".pdf")
	}

	doc, err := c.Convert(ctx, src, filepath.Dir(mdPath))
	if err != nil {
		return nil, err
	}

	htmlPath := replaceExt(pdfPath, ".html")
	if err := os.WriteFile(htmlPath, []byte(doc.HTML), 0o644); err != nil {
		return nil, fmt.Errorf("mdpdf: writing HTML: %w", err)
	}
	if err := doc.PDF.WriteToFile(pdfPath, 0o644); err != nil {
		return nil, fmt.Errorf("mdpdf: writing PDF: %w", err)
	}
	return doc, nil
}

func (c *Converter) pageConfig() *capture.PageConfig {
	if c.cfg.page != nil {
		return c.cfg.page
	}
	return ReportPageConfig()
}

// ReportPageConfig returns the page setup used for reports when no
// custom configuration is given: A4 portrait with 2 cm margins.
func ReportPageConfig() *capture.PageConfig {
	return &capture.PageConfig{
		Size:            capture.A4,
		Margin:          capture.UniformMargin(2.0),
		Scale:           1.0,
		PrintBackground: true,
	}
}

// replaceExt swaps the extension of path for ext.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Convert renders markdown to PDF using a temporary [Converter]. For
// repeated conversions, create a Converter to reuse the browser.
func Convert(ctx context.Context, src []byte, baseDir string, opts ...Option) (*Document, error) {
	c, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Convert(ctx, src, baseDir)
}

// ConvertFile renders a markdown file to PDF using a temporary
// [Converter].
func ConvertFile(ctx context.Context, mdPath, pdfPath string, opts ...Option) (*Document, error) {
	c, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.ConvertFile(ctx, mdPath, pdfPath)
}
