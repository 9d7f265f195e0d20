package analysis

import "errors"

// ErrValidation marks malformed input rejected before any computation runs.
var ErrValidation = errors.New("validation error")
