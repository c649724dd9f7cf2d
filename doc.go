// Package gglayer provides a layered RGBA compositing engine.
//
// # Overview
//
// An [Engine] owns a stack of same-sized, non-premultiplied RGBA buffers
// with the base image at the bottom. Effects always write to the active
// (top) buffer. [Engine.NewLayer] pushes a [Layer], runs an effect function
// against it and then composites the layer into the buffer beneath it using
// a named blend function and an opacity.
//
// # Quick Start
//
//	import "github.com/gogpu/gglayer"
//
//	e, err := gglayer.NewEngineFromImage(img)
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	err = e.NewLayer(func(l *gglayer.Layer) error {
//	    l.SetBlendingMode("multiply").SetOpacity(60)
//	    l.FillColor(gglayer.RGB(255, 136, 0))
//	    return nil
//	})
//
//	png.Encode(w, e.Image())
//
// # Compositing
//
// For every pixel the layer's blend function maps (layer, parent) to a
// result. RGB channels are clamped to [0, 255]; if the function leaves alpha
// unset the layer pixel's alpha is used. The parent's RGB channels move
// toward the result by opacity × alpha / 255 and the parent's alpha channel
// is left untouched.
//
// Blending mode names are resolved when the layer is composited, not when
// they are set, so custom modes may be registered late. An unregistered name
// fails the composite with [ErrUnknownBlendMode] before any parent byte is
// written.
//
// # Architecture
//
// The module is organized into:
//   - Public API: Engine, Layer, Color, options
//   - blend: the named blend function registry and built-in modes
//   - Internal: pool (layer buffer reuse), parallel (row-band workers),
//     recipe (YAML layer recipes for the gglayer command)
package gglayer
