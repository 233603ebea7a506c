package tensor

import "errors"

// Shape errors.
var (
	ErrInvalidShape = errors.New("invalid shape")
	ErrOverflow     = errors.New("element count overflow")
)
