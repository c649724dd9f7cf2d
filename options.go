package gglayer

import "github.com/gogpu/gglayer/blend"

// Option configures an Engine during creation.
//
// Example:
//
//	// Sequential compositing with the shared blend registry
//	e, err := gglayer.NewEngine(800, 600)
//
//	// Custom modes, four compositing goroutines
//	e, err := gglayer.NewEngine(800, 600,
//	    gglayer.WithRegistry(reg),
//	    gglayer.WithWorkers(4))
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	registry *blend.Registry
	workers  int
	poolSize int
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		registry: nil, // blend.Default() if nil
		workers:  1,
		poolSize: 4,
	}
}

// WithRegistry sets the registry used to resolve blending mode names.
// Names are resolved when a layer is composited, so modes may be registered
// after layers referring to them have been configured.
func WithRegistry(r *blend.Registry) Option {
	return func(o *engineOptions) {
		o.registry = r
	}
}

// WithWorkers sets how many goroutines composite a layer and run pixel
// functions. The image is split into row bands; the result is identical to
// sequential processing. Values of 1 or less disable parallelism.
//
// With more than one worker, blend functions and the PixelFunc passed to
// Process are called concurrently.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithBufferPoolSize caps how many discarded layer buffers the engine keeps
// for reuse. Zero keeps all of them; a negative value disables reuse.
func WithBufferPoolSize(n int) Option {
	return func(o *engineOptions) {
		o.poolSize = n
	}
}
