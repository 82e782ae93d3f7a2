package format

import "errors"

// ErrAlignment is the panic value for a non-power-of-two alignment.
var ErrAlignment = errors.New("format: alignment is not a power of two")
