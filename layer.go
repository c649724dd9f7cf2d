package gglayer

import (
	"image"
	"sync/atomic"

	"golang.org/x/image/draw"
)

// DefaultBlendingMode is the blending mode of a new layer.
const DefaultBlendingMode = "normal"

// layerSeq hands out layer IDs.
var layerSeq atomic.Uint64

// LayerOptions holds a layer's compositing configuration.
type LayerOptions struct {
	// BlendingMode names a function in the engine's blend registry.
	BlendingMode string

	// Opacity weights the composite, normally in [0, 1].
	Opacity float64
}

// Layer is an isolated RGBA buffer composited into the buffer beneath it
// using a named blending mode and an opacity.
//
// A layer only exists for the duration of the function passed to
// Engine.NewLayer. Its buffer is zero-filled (transparent black) until an
// initializer such as CopyParent or FillColor runs.
//
// Thread safety: Layer is not safe for concurrent access.
type Layer struct {
	id     uint64
	width  int
	height int

	pixelData []byte
	options   LayerOptions

	// c is the owning engine. The layer never outlives its NewLayer call.
	c     *Engine
	index int

	merged    bool
	discarded bool
}

// newLayer creates a layer sized to match e with a zeroed buffer.
func newLayer(e *Engine) (*Layer, error) {
	size, err := bufferSize(e.width, e.height)
	if err != nil {
		return nil, err
	}

	return &Layer{
		id:        layerSeq.Add(1),
		width:     e.width,
		height:    e.height,
		pixelData: e.buffers.Get(size),
		options: LayerOptions{
			BlendingMode: DefaultBlendingMode,
			Opacity:      1.0,
		},
		c: e,
	}, nil
}

// ID returns the layer's process-unique identifier.
func (l *Layer) ID() uint64 {
	return l.id
}

// Width returns the layer width in pixels.
func (l *Layer) Width() int {
	return l.width
}

// Height returns the layer height in pixels.
func (l *Layer) Height() int {
	return l.height
}

// PixelData returns the layer's own buffer. It is nil once the layer has
// been discarded.
func (l *Layer) PixelData() []byte {
	return l.pixelData
}

// Options returns the layer's compositing configuration.
func (l *Layer) Options() LayerOptions {
	return l.options
}

// SetBlendingMode sets the name of the blend function used when the layer
// is composited. The name is resolved at composite time, not here.
func (l *Layer) SetBlendingMode(mode string) *Layer {
	l.options.BlendingMode = mode
	return l
}

// SetOpacity sets the opacity from a percentage, storing percent/100.
//
// Values outside [0, 100] are not clamped: they scale the compositing weight
// past its normal range. Stored channels are still clamped to [0, 255].
// A NaN opacity composites as a no-op.
func (l *Layer) SetOpacity(percent float64) *Layer {
	l.options.Opacity = percent / 100
	return l
}

// CopyParent copies the buffer directly beneath the layer into the layer,
// alpha included. An unmodified copy composites as a no-op in normal mode.
func (l *Layer) CopyParent() *Layer {
	copy(l.pixelData, l.c.stack.at(l.index-1))
	return l
}

// FillColor fills the engine's active buffer, which is this layer while
// its effect function runs. It does nothing once the layer is discarded.
func (l *Layer) FillColor(c Color) {
	if l.discarded {
		return
	}
	l.c.FillColor(c)
}

// Process applies fn to every pixel of the engine's active buffer.
func (l *Layer) Process(name string, fn PixelFunc) error {
	if l.discarded {
		return ErrLayerMerged
	}
	return l.c.Process(name, fn)
}

// NewLayer creates a layer nested inside this one.
func (l *Layer) NewLayer(fn func(*Layer) error) error {
	return l.c.NewLayer(fn)
}

// OverlayImage replaces the layer contents with img scaled to the layer's
// dimensions.
func (l *Layer) OverlayImage(img image.Image) *Layer {
	if l.discarded {
		return l
	}
	dst := &image.NRGBA{
		Pix:    l.pixelData,
		Stride: l.width * 4,
		Rect:   image.Rect(0, 0, l.width, l.height),
	}
	draw.BiLinear.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)
	return l
}
