// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"math"
	"slices"
	"sync/atomic"

	"github.com/gogpu/vg/internal/array"
)

// PatternType identifies the kind of a pattern.
type PatternType int

// Pattern types.
const (
	PatternTypeSolid PatternType = iota
	PatternTypeSurface
	PatternTypeLinear
	PatternTypeRadial
	PatternTypeRasterSource
)

// ColorStop is a gradient color at an offset in [0, 1].
type ColorStop struct {
	Offset float64
	Color  RGBA
}

// RasterAcquireFunc returns the surface holding the pixels of a raster
// source pattern for the region extents of the pattern space. The
// surface is released with the matching RasterReleaseFunc.
type RasterAcquireFunc func(data any, target *Surface, extents Rectangle) *Surface

// RasterReleaseFunc releases a surface returned by RasterAcquireFunc.
type RasterReleaseFunc func(data any, s *Surface)

// Pattern is a paint source: a solid color, a gradient, a surface or a
// raster source driven by callbacks.
//
// Patterns are reference counted. A pattern created in error is inert:
// its setters do nothing and drawing with it records its status.
type Pattern struct {
	refs   atomic.Int32
	status Status
	// static patterns are shared: reference counting and setters do
	// nothing on them.
	static bool

	typ    PatternType
	matrix Matrix
	extend Extend
	filter Filter

	color RGBA

	stops                  []ColorStop
	x0, y0, r0, x1, y1, r1 float64

	surface *Surface
	// group is set on patterns returned by PopGroup.
	group *groupSource

	rsData    any
	rsContent Content
	rsWidth   int
	rsHeight  int
	rsAcquire RasterAcquireFunc
	rsRelease RasterReleaseFunc

	userData array.UserData
}

func newPattern(typ PatternType, extend Extend) *Pattern {
	p := &Pattern{typ: typ, matrix: Identity(), extend: extend, filter: FilterGood}
	p.refs.Store(1)
	return p
}

// blackPattern is the shared source of contexts that cannot draw.
var blackPattern = &Pattern{
	static: true,
	typ:    PatternTypeSolid,
	matrix: Identity(),
	extend: ExtendPad,
	filter: FilterGood,
	color:  RGBA{A: 1},
}

func newPatternInError(s Status) *Pattern {
	p := &Pattern{status: s, matrix: Identity()}
	p.refs.Store(1)
	return p
}

// NewSolidPattern returns an opaque solid pattern.
func NewSolidPattern(r, g, b float64) *Pattern {
	return NewSolidPatternRGBA(r, g, b, 1)
}

// NewSolidPatternRGBA returns a solid pattern. Components are clamped to
// [0, 1].
func NewSolidPatternRGBA(r, g, b, a float64) *Pattern {
	p := newPattern(PatternTypeSolid, ExtendPad)
	p.color = RGBA{R: r, G: g, B: b, A: a}.clamp()
	return p
}

// NewLinearGradient returns a gradient along the line (x0, y0)-(x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *Pattern {
	p := newPattern(PatternTypeLinear, ExtendPad)
	p.x0, p.y0, p.x1, p.y1 = x0, y0, x1, y1
	return p
}

// NewRadialGradient returns a gradient between the circle (cx0, cy0, r0)
// and the circle (cx1, cy1, r1).
func NewRadialGradient(cx0, cy0, r0, cx1, cy1, r1 float64) *Pattern {
	if r0 < 0 || r1 < 0 {
		return newPatternInError(StatusInvalidSize)
	}
	p := newPattern(PatternTypeRadial, ExtendPad)
	p.x0, p.y0, p.r0 = cx0, cy0, r0
	p.x1, p.y1, p.r1 = cx1, cy1, r1
	return p
}

// NewSurfacePattern returns a pattern drawing s. The pattern holds a
// reference to s.
func NewSurfacePattern(s *Surface) *Pattern {
	if s == nil {
		return newPatternInError(StatusNullPointer)
	}
	if s.status.isError() {
		return newPatternInError(s.status)
	}
	p := newPattern(PatternTypeSurface, ExtendNone)
	p.surface = s.Reference()
	return p
}

// NewRasterSourcePattern returns a pattern whose pixels are produced on
// demand by the acquire callback set with SetAcquire. The pattern covers
// width × height units of pattern space.
func NewRasterSourcePattern(data any, content Content, width, height int) *Pattern {
	if !content.valid() {
		return newPatternInError(StatusInvalidContent)
	}
	if width < 0 || height < 0 {
		return newPatternInError(StatusInvalidSize)
	}
	p := newPattern(PatternTypeRasterSource, ExtendNone)
	p.rsData = data
	p.rsContent = content
	p.rsWidth, p.rsHeight = width, height
	return p
}

func (p *Pattern) setError(s Status) {
	if p.status == StatusSuccess && s.isError() && !p.static {
		p.status = s
	}
}

// Status returns the sticky status of p.
func (p *Pattern) Status() Status {
	if p == nil {
		return StatusNullPointer
	}
	return p.status
}

// Type returns the kind of p.
func (p *Pattern) Type() PatternType { return p.typ }

// Reference increments the reference count of p and returns it.
func (p *Pattern) Reference() *Pattern {
	if p != nil && !p.static {
		p.refs.Add(1)
	}
	return p
}

// ReferenceCount returns the current reference count of p.
func (p *Pattern) ReferenceCount() int {
	if p == nil || p.static {
		return 0
	}
	return int(p.refs.Load())
}

// Destroy drops a reference. The last reference releases the surface of
// a surface pattern and destroys the user data.
func (p *Pattern) Destroy() {
	if p == nil || p.static || p.refs.Add(-1) != 0 {
		return
	}
	p.userData.Fini()
	if p.surface != nil {
		p.surface.Destroy()
		p.surface = nil
	}
}

// SetUserData attaches value to key. A nil value removes the slot.
func (p *Pattern) SetUserData(key *UserDataKey, value any, destroy func(any)) error {
	if p.status.isError() {
		return p.status
	}
	if p.static {
		return StatusPatternTypeMismatch
	}
	if err := p.userData.Set(key, value, destroy); err != nil {
		p.setError(StatusNoMemory)
		return StatusNoMemory
	}
	return nil
}

// UserData returns the value attached to key.
func (p *Pattern) UserData(key *UserDataKey) any {
	return p.userData.Get(key)
}

// SetMatrix sets the transformation from user space to pattern space.
// A matrix that is not invertible puts p in error.
func (p *Pattern) SetMatrix(m Matrix) {
	if p.status.isError() || p.static {
		return
	}
	if p.matrix == m {
		return
	}
	if !m.Invertible() {
		p.setError(StatusInvalidMatrix)
		return
	}
	p.matrix = m
}

// Matrix returns the pattern matrix.
func (p *Pattern) Matrix() Matrix { return p.matrix }

// SetExtend sets how p is drawn outside its natural area.
func (p *Pattern) SetExtend(e Extend) {
	if p.status.isError() || p.static {
		return
	}
	p.extend = e
}

// Extend returns the extend mode of p.
func (p *Pattern) Extend() Extend { return p.extend }

// SetFilter sets the resampling filter of p.
func (p *Pattern) SetFilter(f Filter) {
	if p.status.isError() || p.static {
		return
	}
	p.filter = f
}

// Filter returns the resampling filter of p.
func (p *Pattern) Filter() Filter { return p.filter }

// RGBA returns the color of a solid pattern.
func (p *Pattern) RGBA() (RGBA, error) {
	if p.typ != PatternTypeSolid {
		return RGBA{}, StatusPatternTypeMismatch
	}
	return p.color, nil
}

// Surface returns the surface of a surface pattern.
func (p *Pattern) Surface() (*Surface, error) {
	if p.typ != PatternTypeSurface {
		return nil, StatusPatternTypeMismatch
	}
	return p.surface, nil
}

func (p *Pattern) isGradient() bool {
	return p.typ == PatternTypeLinear || p.typ == PatternTypeRadial
}

// AddColorStopRGB adds an opaque color stop to a gradient.
func (p *Pattern) AddColorStopRGB(offset, r, g, b float64) {
	p.AddColorStopRGBA(offset, r, g, b, 1)
}

// AddColorStopRGBA adds a color stop to a gradient. Stops are kept sorted
// by offset; stops with equal offsets keep their insertion order.
func (p *Pattern) AddColorStopRGBA(offset, r, g, b, a float64) {
	if p.status.isError() || p.static {
		return
	}
	if !p.isGradient() {
		p.setError(StatusPatternTypeMismatch)
		return
	}
	stop := ColorStop{Offset: clamp01(offset), Color: RGBA{R: r, G: g, B: b, A: a}.clamp()}
	i := len(p.stops)
	for i > 0 && p.stops[i-1].Offset > stop.Offset {
		i--
	}
	p.stops = slices.Insert(p.stops, i, stop)
}

// ColorStopCount returns the number of stops of a gradient.
func (p *Pattern) ColorStopCount() (int, error) {
	if !p.isGradient() {
		return 0, StatusPatternTypeMismatch
	}
	return len(p.stops), nil
}

// ColorStop returns the stop at index i.
func (p *Pattern) ColorStop(i int) (ColorStop, error) {
	if !p.isGradient() {
		return ColorStop{}, StatusPatternTypeMismatch
	}
	if i < 0 || i >= len(p.stops) {
		return ColorStop{}, StatusInvalidIndex
	}
	return p.stops[i], nil
}

// LinearPoints returns the end points of a linear gradient.
func (p *Pattern) LinearPoints() (x0, y0, x1, y1 float64, err error) {
	if p.typ != PatternTypeLinear {
		return 0, 0, 0, 0, StatusPatternTypeMismatch
	}
	return p.x0, p.y0, p.x1, p.y1, nil
}

// RadialCircles returns the circles of a radial gradient.
func (p *Pattern) RadialCircles() (x0, y0, r0, x1, y1, r1 float64, err error) {
	if p.typ != PatternTypeRadial {
		return 0, 0, 0, 0, 0, 0, StatusPatternTypeMismatch
	}
	return p.x0, p.y0, p.r0, p.x1, p.y1, p.r1, nil
}

// SetAcquire installs the callbacks of a raster source pattern.
func (p *Pattern) SetAcquire(acquire RasterAcquireFunc, release RasterReleaseFunc) {
	if p.status.isError() {
		return
	}
	if p.typ != PatternTypeRasterSource {
		p.setError(StatusPatternTypeMismatch)
		return
	}
	p.rsAcquire, p.rsRelease = acquire, release
}

// snapshot returns a pattern that keeps drawing what p draws now. Stops
// are copied and a surface is copied with its current contents. Solid
// patterns have no mutable appearance and raster sources are callbacks,
// so both are shared.
func (p *Pattern) snapshot() *Pattern {
	if p.typ == PatternTypeSolid || p.typ == PatternTypeRasterSource || p.status.isError() {
		return p.Reference()
	}
	c := newPattern(p.typ, p.extend)
	c.matrix = p.matrix
	c.filter = p.filter
	c.stops = slices.Clone(p.stops)
	c.x0, c.y0, c.r0 = p.x0, p.y0, p.r0
	c.x1, c.y1, c.r1 = p.x1, p.y1, p.r1
	if p.surface != nil {
		c.surface = p.surface.snapshot()
	}
	return c
}

// isClear reports whether drawing p can never change a pixel under an
// operator that is bounded by the source.
func (p *Pattern) isClear() bool {
	switch p.typ {
	case PatternTypeSolid:
		return p.color.isClear()
	case PatternTypeLinear, PatternTypeRadial:
		if len(p.stops) == 0 {
			return true
		}
		for _, s := range p.stops {
			if !s.Color.isClear() {
				return false
			}
		}
		return true
	case PatternTypeSurface:
		return p.surface != nil && p.surface.isClear
	}
	return false
}

// isOpaque reports whether every pixel drawn from p is opaque.
func (p *Pattern) isOpaque() bool {
	switch p.typ {
	case PatternTypeSolid:
		return p.color.isOpaque()
	case PatternTypeLinear, PatternTypeRadial:
		if len(p.stops) == 0 || p.extend == ExtendNone || p.typ == PatternTypeRadial {
			return false
		}
		for _, s := range p.stops {
			if !s.Color.isOpaque() {
				return false
			}
		}
		return !p.degenerate()
	case PatternTypeSurface:
		return p.surface != nil && p.surface.content() == ContentColor && p.extend != ExtendNone
	}
	return false
}

// degenerate reports whether a gradient has no extent to interpolate
// over.
func (p *Pattern) degenerate() bool {
	switch p.typ {
	case PatternTypeLinear:
		return p.x0 == p.x1 && p.y0 == p.y1
	case PatternTypeRadial:
		return p.r0 == p.r1 && p.x0 == p.x1 && p.y0 == p.y1
	}
	return false
}

// colorAt returns the interpolated color of a gradient at t, applying the
// extend mode. ok is false where nothing is drawn.
func (p *Pattern) colorAt(t float64) (RGBA, bool) {
	if len(p.stops) == 0 || math.IsNaN(t) {
		return RGBA{}, false
	}
	switch p.extend {
	case ExtendNone:
		if t < 0 || t > 1 {
			return RGBA{}, false
		}
	case ExtendRepeat:
		t -= math.Floor(t)
	case ExtendReflect:
		t = math.Mod(math.Abs(t), 2)
		if t > 1 {
			t = 2 - t
		}
	default:
		t = clamp01(t)
	}

	stops := p.stops
	if t <= stops[0].Offset {
		return stops[0].Color, true
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color, true
	}
	for i := 1; i < len(stops); i++ {
		s1 := stops[i]
		if t > s1.Offset {
			continue
		}
		s0 := stops[i-1]
		span := s1.Offset - s0.Offset
		if span <= 0 {
			return s1.Color, true
		}
		u := (t - s0.Offset) / span
		return RGBA{
			R: s0.Color.R + (s1.Color.R-s0.Color.R)*u,
			G: s0.Color.G + (s1.Color.G-s0.Color.G)*u,
			B: s0.Color.B + (s1.Color.B-s0.Color.B)*u,
			A: s0.Color.A + (s1.Color.A-s0.Color.A)*u,
		}, true
	}
	return last.Color, true
}
