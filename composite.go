package gglayer

import (
	"math"

	"github.com/gogpu/gglayer/blend"
	"github.com/gogpu/gglayer/internal/parallel"
)

// ApplyToParent composites the layer into the buffer directly beneath it.
//
// For every pixel the blend function registered under the layer's mode maps
// (layer, parent) to a result whose RGB channels are clamped to [0, 255].
// When the function leaves alpha unset the layer pixel's alpha is used. The
// parent's RGB channels then move toward the result by
//
//	w = opacity * resultAlpha / 255
//
// and are rounded to the nearest integer. The parent's alpha channel is
// never written. A NaN weight leaves the pixel unchanged.
//
// All checks run before the first parent byte is written, so a failed call
// leaves the parent unchanged. Engine.NewLayer calls ApplyToParent unless
// the effect function already did.
func (l *Layer) ApplyToParent() error {
	if l.merged || l.discarded {
		return ErrLayerMerged
	}

	e := l.c
	if e.stack.len()-1 != l.index {
		return ErrNotTopLayer
	}
	if l.index < 1 {
		return ErrNoParent
	}

	fn, ok := e.registry.Lookup(l.options.BlendingMode)
	if !ok {
		return &UnknownBlendModeError{Mode: l.options.BlendingMode}
	}

	parent := e.stack.at(l.index - 1)
	if len(parent) != len(l.pixelData) || len(parent) != l.width*l.height*4 {
		return ErrDimensionMismatch
	}

	stride := l.width * 4
	opacity := l.options.Opacity
	parallel.ForEachBand(e.workers, l.height, func(b parallel.Band) {
		lo, hi := b.Y0*stride, b.Y1*stride
		compositeRows(parent[lo:hi], l.pixelData[lo:hi], fn, opacity)
	})
	l.merged = true

	Logger().Debug("gglayer: layer merged",
		"layer", l.id,
		"mode", l.options.BlendingMode,
		"opacity", opacity)
	return nil
}

// compositeRows blends layer into parent in place. Both slices cover the
// same pixels.
func compositeRows(parent, layer []byte, fn blend.Func, opacity float64) {
	for i := 0; i+3 < len(parent); i += 4 {
		p := blend.Pixel{R: parent[i], G: parent[i+1], B: parent[i+2], A: parent[i+3]}
		s := blend.Pixel{R: layer[i], G: layer[i+1], B: layer[i+2], A: layer[i+3]}

		res := fn(s, p)
		alpha := float64(s.A)
		if res.HasAlpha {
			alpha = res.A
		}
		w := opacity * (alpha / 255)
		if math.IsNaN(w) {
			w = 0
		}

		parent[i+0] = lerpChannel(p.R, clamp255(res.R), w)
		parent[i+1] = lerpChannel(p.G, clamp255(res.G), w)
		parent[i+2] = lerpChannel(p.B, clamp255(res.B), w)
	}
}

// lerpChannel moves channel c toward target by weight w.
func lerpChannel(c uint8, target, w float64) uint8 {
	v := float64(c)
	return uint8(math.Round(clamp255(v - (v-target)*w)))
}
