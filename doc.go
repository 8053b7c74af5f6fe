// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package vg is a device-independent 2D vector-graphics core.
//
// # Overview
//
// A Context holds an imperative drawing state: a current path, a
// transformation matrix, a clip, a source pattern and stroke parameters.
// Drawing verbs (Paint, Fill, Stroke, Mask, ShowText) compose the source
// with the path and clip and hand the result to the target Surface,
// which either rasterizes it (image surfaces) or records it (recording
// surfaces).
//
// # Quick Start
//
//	s := vg.NewImageSurface(vg.FormatARGB32, 256, 256)
//	defer s.Destroy()
//
//	cr := vg.NewContext(s)
//	defer cr.Destroy()
//
//	cr.SetSourceRGB(1, 1, 1)
//	cr.Paint()
//	cr.Arc(128, 128, 100, 0, 2*math.Pi)
//	cr.SetSourceRGB(0.8, 0.1, 0.1)
//	cr.Fill()
//
//	if err := cr.Status(); err != vg.StatusSuccess {
//	    log.Fatal(err)
//	}
//
// # Errors
//
// Context, Surface and Pattern carry a sticky status. The first error
// recorded on an object wins and every later operation on it is a no-op,
// so callers check Status at natural boundaries instead of after every
// call. Status implements error.
//
// # Coordinate System
//
// User space is mapped to device space by the current transformation
// matrix (CTM). Device space is mapped to the target's pixels by the
// surface device offset and scale. Paths are stored in the target's pixel
// space as 26.6 fixed point.
//
// # Backends
//
// Every Context operation is forwarded through the Backend interface.
// NewContext uses the default state-stack backend; WithBackend installs
// another implementation, such as NewNullBackend for tests.
//
// # Concurrency
//
// A Context, and the surfaces it draws on, must be used from one
// goroutine at a time. Font faces, scaled fonts and the process-wide
// caches behind them are safe for concurrent use.
package vg
