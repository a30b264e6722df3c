package capture

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Browser].
	ErrClosed = errors.New("capture: browser is closed")
)
