package attention

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrNoImage is returned when an analysis is requested for a nil
	// image.
	ErrNoImage = errors.New("attention: nil image")
	// ErrSizeMismatch is returned when a saliency map is combined with
	// an image of different dimensions.
	ErrSizeMismatch = errors.New("attention: saliency map does not match image size")
)
