package attention

import "image"

// analyzerConfig holds internal configuration for an Analyzer.
type analyzerConfig struct {
	fixation    FixationParams
	zones       bool
	topRegions  int
	minZoneArea int
	cascadePath string
	boosts      []image.Rectangle
}

func defaultAnalyzerConfig() analyzerConfig {
	return analyzerConfig{
		fixation:    DefaultFixationParams(),
		zones:       true,
		topRegions:  10,
		minZoneArea: 500,
	}
}

// Option configures an [Analyzer].
type Option func(*analyzerConfig)

// WithFixationParams overrides the scan path parameters. The defaults
// are those returned by DefaultFixationParams.
func WithFixationParams(p FixationParams) Option {
	return func(c *analyzerConfig) {
		c.fixation = p
	}
}

// WithoutZones disables automatic zone detection. Reports then carry an
// empty auto_detected_zones array.
func WithoutZones() Option {
	return func(c *analyzerConfig) {
		c.zones = false
	}
}

// WithTopRegions sets how many detected zones are flagged as
// identification priorities. Defaults to 10.
func WithTopRegions(n int) Option {
	return func(c *analyzerConfig) {
		c.topRegions = n
	}
}

// WithMinZoneArea sets the minimum size in pixels for a detected zone.
// Defaults to 500.
func WithMinZoneArea(px int) Option {
	return func(c *analyzerConfig) {
		c.minZoneArea = px
	}
}

// WithFaceCascade enables face detection using the binary cascade file
// at path. Detected faces are counted in the report and their regions
// boosted in the saliency map before any metric is computed.
func WithFaceCascade(path string) Option {
	return func(c *analyzerConfig) {
		c.cascadePath = path
	}
}

// WithBoostRegions marks regions known to attract attention, such as
// logos or prominent calls to action. They receive the same saliency
// boost as detected faces but are not counted as faces.
func WithBoostRegions(rects ...image.Rectangle) Option {
	return func(c *analyzerConfig) {
		c.boosts = append(c.boosts, rects...)
	}
}
