package gglayer

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gglayer/blend"
	"github.com/gogpu/gglayer/internal/parallel"
	"github.com/gogpu/gglayer/internal/pool"
	"golang.org/x/image/draw"
)

// Dimensions is the size of every buffer in an engine's stack.
type Dimensions struct {
	Width  int
	Height int
}

// PixelFunc maps one pixel of the active buffer to its new value.
// x and y are the pixel's coordinates.
//
// When the engine was created WithWorkers(n) for n > 1, a PixelFunc is
// called from several goroutines at once and must be safe for concurrent
// use.
type PixelFunc func(x, y int, p Color) Color

// Engine owns a stack of same-sized RGBA buffers with the base image at the
// bottom. Effects always write to the active (top) buffer; layers pushed
// with NewLayer are composited into the buffer beneath them when their
// effect function returns.
//
// Thread safety: Engine is not safe for concurrent use. Layer nesting is
// enforced by the call stack of NewLayer.
type Engine struct {
	width  int
	height int

	stack    pixelStack
	registry *blend.Registry
	buffers  *pool.Pool
	workers  *parallel.WorkerPool
}

// NewEngine creates an engine whose base buffer is width×height pixels of
// transparent black.
func NewEngine(width, height int, opts ...Option) (*Engine, error) {
	size, err := bufferSize(width, height)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = blend.Default()
	}

	e := &Engine{
		width:    width,
		height:   height,
		registry: o.registry,
		buffers:  pool.New(o.poolSize),
	}
	if o.workers > 1 {
		e.workers = parallel.NewWorkerPool(o.workers)
	}
	e.stack.push(make([]byte, size))

	return e, nil
}

// NewEngineFromImage creates an engine whose base buffer holds img converted
// to non-premultiplied RGBA. The engine does not retain img.
func NewEngineFromImage(img image.Image, opts ...Option) (*Engine, error) {
	b := img.Bounds()
	e, err := NewEngine(b.Dx(), b.Dy(), opts...)
	if err != nil {
		return nil, err
	}

	dst := e.Image()
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return e, nil
}

// bufferSize returns the byte length of a width×height RGBA buffer.
func bufferSize(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt/4/height {
		return 0, fmt.Errorf("%w: %dx%d overflows", ErrInvalidDimensions, width, height)
	}
	return width * height * 4, nil
}

// Dimensions returns the size shared by every buffer in the stack.
func (e *Engine) Dimensions() Dimensions {
	return Dimensions{Width: e.width, Height: e.height}
}

// PixelData returns the active buffer. The slice is shared with the engine.
func (e *Engine) PixelData() []byte {
	return e.stack.top()
}

// PixelStack returns the buffers of the stack, base first. The outer slice
// is a copy; the buffers are shared with the engine.
func (e *Engine) PixelStack() [][]byte {
	return e.stack.snapshot()
}

// Depth returns the number of layers currently pushed above the base image.
func (e *Engine) Depth() int {
	return e.stack.len() - 1
}

// Registry returns the registry used to resolve blending modes.
func (e *Engine) Registry() *blend.Registry {
	return e.registry
}

// Image returns the base buffer as an image. The image shares memory with
// the engine and reflects composites made after the call.
func (e *Engine) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    e.stack.at(0),
		Stride: e.width * 4,
		Rect:   image.Rect(0, 0, e.width, e.height),
	}
}

// FillColor sets every pixel of the active buffer to c.
func (e *Engine) FillColor(c Color) {
	buf := e.stack.top()
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i+0] = c.R
		buf[i+1] = c.G
		buf[i+2] = c.B
		buf[i+3] = c.A
	}
}

// Process applies fn to every pixel of the active buffer.
// name identifies the effect in log output.
// With more than one worker, fn runs on several goroutines at once.
func (e *Engine) Process(name string, fn PixelFunc) error {
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilPixelFunc, name)
	}

	buf := e.stack.top()
	stride := e.width * 4
	parallel.ForEachBand(e.workers, e.height, func(b parallel.Band) {
		for y := b.Y0; y < b.Y1; y++ {
			row := buf[y*stride : (y+1)*stride]
			for x := 0; x < e.width; x++ {
				i := x * 4
				p := fn(x, y, Color{R: row[i], G: row[i+1], B: row[i+2], A: row[i+3]})
				row[i+0] = p.R
				row[i+1] = p.G
				row[i+2] = p.B
				row[i+3] = p.A
			}
		}
	})

	Logger().Debug("gglayer: processed", "filter", name, "depth", e.Depth())
	return nil
}

// NewLayer pushes a new layer, runs fn against it and composites the layer
// into the buffer beneath it. fn may create nested layers through the
// layer's or the engine's NewLayer; they are merged before fn returns.
//
// If fn returns an error the layer is discarded without being merged and
// the parent buffer is left untouched.
//
// Example:
//
//	err := e.NewLayer(func(l *gglayer.Layer) error {
//	    l.SetBlendingMode("multiply").SetOpacity(60).CopyParent()
//	    return l.Process("invert", invert)
//	})
func (e *Engine) NewLayer(fn func(*Layer) error) error {
	l, err := newLayer(e)
	if err != nil {
		return err
	}
	l.index = e.stack.push(l.pixelData)
	Logger().Debug("gglayer: layer pushed", "layer", l.id, "depth", e.Depth())
	defer e.discard(l)

	if fn != nil {
		if err := fn(l); err != nil {
			Logger().Warn("gglayer: layer effect failed", "layer", l.id, "err", err)
			return fmt.Errorf("gglayer: layer %d: %w", l.id, err)
		}
	}

	// Effect code may already have merged the layer itself.
	if l.merged {
		return nil
	}
	if err := l.ApplyToParent(); err != nil {
		Logger().Warn("gglayer: composite failed", "layer", l.id, "err", err)
		return err
	}
	return nil
}

// discard pops l from the stack and recycles its buffer.
func (e *Engine) discard(l *Layer) {
	if e.stack.len()-1 == l.index {
		e.buffers.Put(e.stack.pop())
	}
	l.pixelData = nil
	l.discarded = true
	Logger().Debug("gglayer: layer popped", "layer", l.id, "depth", e.Depth())
}

// Close releases the engine's worker goroutines. The engine remains usable
// and processes sequentially afterwards. Close is safe to call multiple times.
func (e *Engine) Close() {
	if e.workers != nil {
		e.workers.Close()
	}
}
