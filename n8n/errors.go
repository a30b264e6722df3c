package n8n

import "errors"

var (
	// ErrNotFound is returned when the instance has no workflow with
	// the requested ID.
	ErrNotFound = errors.New("n8n: workflow not found")
)
