package capture

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PrintPDF renders the web page at rawURL to a PDF document.
// If pg is nil, [DefaultPageConfig] values are used.
func (b *Browser) PrintPDF(ctx context.Context, rawURL string, pg *PageConfig) (*PDF, error) {
	if err := b.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("capture: invalid URL %q: %w", rawURL, err)
	}
	return b.print(ctx, rawURL, pg)
}

// PrintHTML renders an HTML string to a PDF document.
// If pg is nil, [DefaultPageConfig] values are used.
func (b *Browser) PrintHTML(ctx context.Context, html string, pg *PageConfig) (*PDF, error) {
	if err := b.checkClosed(); err != nil {
		return nil, err
	}

	// Chrome needs something to navigate to; park the markup in a
	// temp file and print that.
	tmp, err := os.CreateTemp("", "gaze-*.html")
	if err != nil {
		return nil, fmt.Errorf("capture: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, werr := tmp.WriteString(html)
	if err := errors.Join(werr, tmp.Close()); err != nil {
		return nil, fmt.Errorf("capture: writing temp file: %w", err)
	}

	u, err := fileURL(tmp.Name())
	if err != nil {
		return nil, err
	}
	return b.print(ctx, u, pg)
}

// PrintFile renders a local HTML file to a PDF document.
// If pg is nil, [DefaultPageConfig] values are used.
func (b *Browser) PrintFile(ctx context.Context, path string, pg *PageConfig) (*PDF, error) {
	if err := b.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	u, err := fileURL(path)
	if err != nil {
		return nil, err
	}
	return b.print(ctx, u, pg)
}

// fileURL turns a local path into an absolute file:// URL.
func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("capture: resolving path: %w", err)
	}
	return "file://" + abs, nil
}

// print navigates a fresh tab to targetURL and runs Chrome's print
// pipeline with the resolved page setup.
func (b *Browser) print(ctx context.Context, targetURL string, pg *PageConfig) (*PDF, error) {
	rc := pg.resolved()
	paperW, paperH := rc.Size.inches(rc.Orientation)
	top, right, bottom, left := rc.Margin.inches()
	params := &page.PrintToPDFParams{
		PaperWidth:          paperW,
		PaperHeight:         paperH,
		MarginTop:           top,
		MarginRight:         right,
		MarginBottom:        bottom,
		MarginLeft:          left,
		Scale:               rc.Scale,
		PrintBackground:     rc.PrintBackground,
		Landscape:           rc.Orientation == Landscape,
		PreferCSSPageSize:   rc.PreferCSSPageSize,
		DisplayHeaderFooter: rc.DisplayHeaderFooter,
		HeaderTemplate:      rc.HeaderTemplate,
		FooterTemplate:      rc.FooterTemplate,
	}

	var data []byte
	err := b.run(ctx, chromedp.Tasks{
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			data, _, err = params.Do(ctx)
			return err
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("capture: printing failed: %w", err)
	}
	return &PDF{payload: payload{data: data}}, nil
}

// PrintURL renders a web page to PDF using a temporary [Browser].
// This is convenient for one-off jobs. For repeated use, create a
// Browser with [NewBrowser] to reuse the process.
func PrintURL(ctx context.Context, rawURL string, pg *PageConfig, opts ...Option) (*PDF, error) {
	b, err := NewBrowser(opts...)
	if err != nil {
		return nil, err
	}
	defer b.Close()
	return b.PrintPDF(ctx, rawURL, pg)
}

// PrintHTML renders an HTML string to PDF using a temporary [Browser].
func PrintHTML(ctx context.Context, html string, pg *PageConfig, opts ...Option) (*PDF, error) {
	b, err := NewBrowser(opts...)
	if err != nil {
		return nil, err
	}
	defer b.Close()
	return b.PrintHTML(ctx, html, pg)
}
