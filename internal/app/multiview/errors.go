package multiview

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a bookkeeping bug. It is raised with panic, never returned.
var ErrInvariant = errors.New("multiview invariant violated")

// Invariant panics with an error wrapping ErrInvariant.
func Invariant(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...)))
}
