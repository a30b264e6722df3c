package capture

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ShotConfig controls a screenshot.
//
// Zero-value fields use the defaults from [DefaultShotConfig]. Settle
// may be negative to skip the post-load wait entirely.
type ShotConfig struct {
	// Width is the viewport width in pixels. Defaults to 1200.
	Width int
	// Height is the viewport height in pixels. Defaults to 800.
	Height int
	// FullPage captures the entire page height instead of just the
	// viewport.
	FullPage bool
	// Settle is how long to wait after the page loads, giving dynamic
	// content a chance to render. Defaults to 3 seconds.
	Settle time.Duration
}

// DefaultShotConfig returns the standard screenshot configuration: a
// 1200×800 viewport with a 3 second settle delay.
func DefaultShotConfig() ShotConfig {
	return ShotConfig{Width: 1200, Height: 800, Settle: 3 * time.Second}
}

// resolved returns a ShotConfig with all zero values replaced by
// defaults.
func (s ShotConfig) resolved() ShotConfig {
	d := DefaultShotConfig()
	if s.Width <= 0 {
		s.Width = d.Width
	}
	if s.Height <= 0 {
		s.Height = d.Height
	}
	if s.Settle == 0 {
		s.Settle = d.Settle
	}
	if s.Settle < 0 {
		s.Settle = 0
	}
	return s
}

// Screenshot navigates to rawURL and captures a PNG of the rendered
// page.
func (b *Browser) Screenshot(ctx context.Context, rawURL string, sc ShotConfig) (*Shot, error) {
	if err := b.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("capture: invalid URL %q: %w", rawURL, err)
	}
	r := sc.resolved()

	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(r.Width), int64(r.Height)),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if r.Settle > 0 {
		tasks = append(tasks, chromedp.Sleep(r.Settle))
	}

	var buf []byte
	tasks = append(tasks, chromedp.ActionFunc(func(ctx context.Context) error {
		params := page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng)
		if r.FullPage {
			params = params.WithCaptureBeyondViewport(true)
		}
		var err error
		buf, err = params.Do(ctx)
		return err
	}))

	if err := b.run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("capture: screenshot failed: %w", err)
	}
	return &Shot{payload: payload{data: buf}, URL: rawURL, Viewport: [2]int{r.Width, r.Height}}, nil
}

// Screenshot captures a page using a temporary [Browser]. This is
// convenient for one-off captures. For repeated use, create a Browser
// with [NewBrowser] to reuse the process.
func Screenshot(ctx context.Context, rawURL string, sc ShotConfig, opts ...Option) (*Shot, error) {
	b, err := NewBrowser(opts...)
	if err != nil {
		return nil, err
	}
	defer b.Close()
	return b.Screenshot(ctx, rawURL, sc)
}
