package capture

import "time"

// browserConfig holds internal configuration for a Browser.
type browserConfig struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	headless     string
	autoDownload bool
	windowW      int
	windowH      int
}

func defaultBrowserConfig() browserConfig {
	return browserConfig{
		timeout:  30 * time.Second,
		headless: "new",
	}
}

// Option configures a [Browser].
type Option func(*browserConfig)

// WithChromePath pins the Chrome or Chromium executable instead of
// searching the standard install locations.
func WithChromePath(path string) Option {
	return func(c *browserConfig) {
		c.chromePath = path
	}
}

// WithTimeout bounds each capture or print operation, 30 seconds when
// unset. Zero or negative disables the bound; the caller's context
// still applies.
func WithTimeout(d time.Duration) Option {
	return func(c *browserConfig) {
		c.timeout = d
	}
}

// WithNoSandbox passes --no-sandbox to Chrome, needed when the process
// runs as root (typical for containerized workflow runners).
func WithNoSandbox() Option {
	return func(c *browserConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload downloads a compatible Chromium build when no local
// installation is configured, caching it in the user cache directory.
// Without this option a missing browser fails at creation time.
func WithAutoDownload() Option {
	return func(c *browserConfig) {
		c.autoDownload = true
	}
}

// WithWindowSize sets the browser window size. Operations that emulate
// their own viewport, like [Browser.Screenshot], are unaffected; for
// the rest this is the page width Chrome lays out against.
func WithWindowSize(width, height int) Option {
	return func(c *browserConfig) {
		c.windowW = width
		c.windowH = height
	}
}
