package parallax

import "errors"

var (
	ErrLayerCountMismatch = errors.New("array size does not match layer count")
	ErrNotConfigured      = errors.New("parallax is not set up")
	ErrAlreadyConfigured  = errors.New("parallax is already set up")
	ErrInvalidConfig      = errors.New("invalid parallax configuration")
	ErrLayersAlreadyAdded = errors.New("parallax layers are already added")
	ErrUnknownLayer       = errors.New("unknown parallax layer")
)
