// Package filter provides per-pixel color effects for layers.
//
// Effects are 4x5 color matrices applied to non-premultiplied RGBA in the
// [0, 255] range. They run through Engine.Process, so they always target
// the active buffer: inside a layer's effect function, the layer itself.
package filter
