package nn

import "errors"

// Common errors.
var (
	ErrInvalidDimension  = errors.New("invalid layer dimension")
	ErrInvalidActivation = errors.New("unknown activation")
	ErrCapacityExceeded  = errors.New("network layer capacity exceeded")
	ErrDimensionMismatch = errors.New("layer dimension mismatch")
	ErrNotPrimed         = errors.New("backward called before forward")
	ErrEmptyNetwork      = errors.New("network has no layers")
)
