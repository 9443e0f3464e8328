package birch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation reports a call made in the wrong batch state, such
	// as Draw before Begin or a nested Begin.
	ErrInvalidOperation = errors.New("birch: invalid operation")
	// ErrInvalidArgument reports a nil texture or region, or a vertex slice
	// whose length is not a whole number of sprites.
	ErrInvalidArgument = errors.New("birch: invalid argument")
	// ErrSingularMatrix reports a matrix that cannot be inverted.
	ErrSingularMatrix = errors.New("birch: singular matrix")
	// ErrTextureUnset reports a pixel-space region operation on a region
	// without a texture.
	ErrTextureUnset = errors.New("birch: texture not set")
)

// usagePanic panics with an error wrapping kind. Batch sequencing and
// argument errors are programmer errors; callers can still recover the value
// and test it with errors.Is.
func usagePanic(kind error, format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{kind}, args...)...))
}
