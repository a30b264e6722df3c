// Package capture drives a headless Chrome browser to photograph and
// print web pages.
//
// A [Browser] keeps one browser process alive and opens a fresh tab per
// operation, so repeated captures do not pay the startup cost. Use
// [Browser.Screenshot] for pixel captures feeding the attention
// analysis, and [Browser.PrintPDF] and friends for paginated PDF output.
package capture

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/go-rod/rod/lib/launcher"
)

// Browser is a headless Chrome instance shared across captures.
//
// It is safe for concurrent use; each operation runs in its own tab.
// Call [Browser.Close] when the Browser is no longer needed to release
// the process.
type Browser struct {
	cfg browserConfig

	// rootCtx owns the browser process; per-operation tabs derive
	// from it. stop tears the process down, innermost first.
	rootCtx context.Context
	stop    []context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// headlessFlags is the Chrome flag set for unattended page rendering,
// on top of chromedp's defaults.
var headlessFlags = []chromedp.ExecAllocatorOption{
	chromedp.Flag("disable-gpu", true),
	chromedp.Flag("disable-dev-shm-usage", true),
	chromedp.Flag("disable-extensions", true),
	chromedp.Flag("disable-background-networking", true),
	chromedp.Flag("disable-sync", true),
	chromedp.Flag("disable-translate", true),
	chromedp.Flag("no-first-run", true),
}

func (c browserConfig) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, headlessFlags...)
	opts = append(opts, chromedp.Flag("headless", c.headless))
	if c.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.chromePath))
	}
	if c.noSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	if c.windowW > 0 && c.windowH > 0 {
		opts = append(opts, chromedp.WindowSize(c.windowW, c.windowH))
	}
	return opts
}

// NewBrowser starts a headless browser with the given options.
//
// The browser is started eagerly so errors surface at creation time. The
// caller must call [Browser.Close] when finished.
func NewBrowser(opts ...Option) (*Browser, error) {
	cfg := defaultBrowserConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.chromePath == "" && cfg.autoDownload {
		path, err := resolveChrome()
		if err != nil {
			return nil, err
		}
		cfg.chromePath = path
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), cfg.allocatorOptions()...)
	rootCtx, cancelRoot := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(rootCtx); err != nil {
		cancelRoot()
		cancelAlloc()
		return nil, fmt.Errorf("capture: starting browser: %w", err)
	}

	return &Browser{
		cfg:     cfg,
		rootCtx: rootCtx,
		stop:    []context.CancelFunc{cancelRoot, cancelAlloc},
	}, nil
}

// Close releases all resources held by the Browser, including the
// browser process. Close is idempotent.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, cancel := range b.stop {
		cancel()
	}
	return nil
}

// run executes tasks in a fresh tab, applying the configured timeout.
func (b *Browser) run(ctx context.Context, tasks chromedp.Tasks) error {
	if b.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(b.rootCtx)
	defer tabCancel()

	// The tab context derives from the browser, not from ctx, so wire
	// the caller's cancellation through to the tab.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	err := chromedp.Run(tabCtx, tasks)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

func (b *Browser) checkClosed() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	return nil
}

// resolveChrome downloads a compatible Chromium binary if one is not
// already cached and returns the path to the executable. The binary is
// stored in ~/.cache/rod/browser (Unix) or %APPDATA%\rod\browser
// (Windows).
func resolveChrome() (string, error) {
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("capture: downloading browser: %w", err)
	}
	return path, nil
}
