package orbit

import "errors"

var (
	// ErrUnknownMode indicates a mode identifier outside the closed set.
	ErrUnknownMode = errors.New("orbit: unknown mode")

	// ErrUnknownView indicates a view identifier outside the closed set.
	ErrUnknownView = errors.New("orbit: unknown view")
)
