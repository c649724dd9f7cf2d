// Package blend provides the named blend functions used when a layer is
// composited onto the buffer beneath it.
//
// A blend function maps a layer pixel and a parent pixel to a result. It does
// not apply opacity and it does not need to clamp: both are the compositor's
// job. Functions are looked up by name through a [Registry], which allows
// custom modes to be registered late, after layers referencing them have
// already been configured.
package blend

import (
	"errors"
	"sort"
	"sync"
)

// Common errors for registry operations.
var (
	// ErrEmptyName is returned when registering a function without a name.
	ErrEmptyName = errors.New("blend: empty mode name")

	// ErrNilFunc is returned when registering a nil function.
	ErrNilFunc = errors.New("blend: nil blend function")
)

// Pixel is a single non-premultiplied RGBA pixel.
type Pixel struct {
	R, G, B, A uint8
}

// Result is the output of a blend function.
//
// Channels are real numbers and may fall outside [0, 255]. When HasAlpha is
// false the function left alpha unset and the compositor substitutes the
// layer pixel's alpha.
type Result struct {
	R, G, B  float64
	A        float64
	HasAlpha bool
}

// RGB returns a Result with alpha left unset.
func RGB(r, g, b float64) Result {
	return Result{R: r, G: g, B: b}
}

// RGBA returns a Result carrying an explicit alpha.
func RGBA(r, g, b, a float64) Result {
	return Result{R: r, G: g, B: b, A: a, HasAlpha: true}
}

// Func blends a layer pixel onto a parent pixel.
type Func func(layer, parent Pixel) Result

// Registry maps mode names to blend functions.
//
// Thread safety: all methods are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// NewDefaultRegistry creates a registry holding the built-in modes.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for name, fn := range builtins {
		r.funcs[name] = fn
	}
	return r
}

// Register adds fn under name, replacing any function already registered
// under the same name.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return ErrNilFunc
	}
	r.mu.Lock()
	r.funcs[name] = fn
	r.mu.Unlock()
	return nil
}

// Lookup returns the function registered under name. Names are case-sensitive.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()
	return fn, ok
}

// Names returns the registered mode names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

var defaultRegistry = NewDefaultRegistry()

// Default returns the shared registry used by engines that are not given one
// explicitly. Modes registered here are visible to all such engines.
func Default() *Registry {
	return defaultRegistry
}
