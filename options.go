// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

// ContextOption configures a Context during creation.
//
// Example:
//
//	// Default backend drawing into an image surface
//	cr := vg.NewContext(surface)
//
//	// Custom backend (dependency injection)
//	cr := vg.NewContext(nil, vg.WithBackend(myBackend))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	backend        Backend
	tolerance      float64
	antialias      Antialias
	gstatePoolSize int
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		tolerance:      defaultTolerance,
		antialias:      AntialiasDefault,
		gstatePoolSize: defaultGStatePoolSize,
	}
}

// WithBackend replaces the default backend. The context takes ownership
// of b and calls its Destroy method when the context is destroyed. The
// target passed to NewContext may then be nil.
func WithBackend(b Backend) ContextOption {
	return func(o *contextOptions) {
		o.backend = b
	}
}

// WithTolerance sets the initial flattening tolerance in device pixels.
func WithTolerance(tolerance float64) ContextOption {
	return func(o *contextOptions) {
		o.tolerance = max(tolerance, minTolerance)
	}
}

// WithAntialias sets the initial antialiasing mode.
func WithAntialias(aa Antialias) ContextOption {
	return func(o *contextOptions) {
		o.antialias = aa
	}
}

// WithGStatePoolSize sets how many saved graphics states the default
// backend keeps for reuse. Saves beyond this depth allocate.
func WithGStatePoolSize(n int) ContextOption {
	return func(o *contextOptions) {
		o.gstatePoolSize = max(n, 0)
	}
}
