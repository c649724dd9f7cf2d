package gglayer

import (
	"errors"
	"fmt"
)

// Common errors for engine and layer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive
	// or the buffer size would overflow.
	ErrInvalidDimensions = errors.New("gglayer: invalid dimensions")

	// ErrUnknownBlendMode is matched by [UnknownBlendModeError].
	ErrUnknownBlendMode = errors.New("gglayer: unknown blend mode")

	// ErrDimensionMismatch is returned when a layer buffer and its parent
	// buffer differ in size. It indicates a broken internal invariant.
	ErrDimensionMismatch = errors.New("gglayer: layer and parent buffer sizes differ")

	// ErrLayerMerged is returned when a layer is composited a second time.
	ErrLayerMerged = errors.New("gglayer: layer already merged")

	// ErrNotTopLayer is returned when compositing a layer that is not on top
	// of the engine's stack.
	ErrNotTopLayer = errors.New("gglayer: layer is not on top of the stack")

	// ErrNoParent is returned when no buffer lies beneath the layer.
	ErrNoParent = errors.New("gglayer: no parent buffer")

	// ErrInvalidColor is returned by ParseHex for malformed input.
	ErrInvalidColor = errors.New("gglayer: invalid color")

	// ErrNilPixelFunc is returned by Process when given a nil function.
	ErrNilPixelFunc = errors.New("gglayer: nil pixel function")
)

// UnknownBlendModeError reports a blending mode name that was not registered
// when the layer was composited.
type UnknownBlendModeError struct {
	Mode string
}

func (e *UnknownBlendModeError) Error() string {
	return fmt.Sprintf("gglayer: unknown blend mode %q", e.Mode)
}

// Is reports whether target is ErrUnknownBlendMode.
func (e *UnknownBlendModeError) Is(target error) bool {
	return target == ErrUnknownBlendMode
}
