package serialization

import "errors"

// Common errors.
var (
	ErrIO          = errors.New("model file i/o failed")
	ErrCorruptData = errors.New("model data is truncated or malformed")
)
