// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"github.com/gogpu/vg/internal/array"
	"github.com/gogpu/vg/internal/blend"
	"github.com/gogpu/vg/internal/raster"
	"github.com/gogpu/vg/internal/stroke"
)

// Operator selects how the source is combined with the destination.
type Operator int

// Compositing operators. The Porter-Duff operators come first, followed
// by Add, Saturate and the blend modes of the W3C compositing model.
const (
	OperatorClear Operator = iota
	OperatorSource
	OperatorOver
	OperatorIn
	OperatorOut
	OperatorAtop
	OperatorDest
	OperatorDestOver
	OperatorDestIn
	OperatorDestOut
	OperatorDestAtop
	OperatorXor
	OperatorAdd
	OperatorSaturate
	OperatorMultiply
	OperatorScreen
	OperatorOverlay
	OperatorDarken
	OperatorLighten
	OperatorColorDodge
	OperatorColorBurn
	OperatorHardLight
	OperatorSoftLight
	OperatorDifference
	OperatorExclusion
	OperatorHue
	OperatorSaturation
	OperatorColor
	OperatorLuminosity

	operatorLast
)

func (op Operator) valid() bool { return op >= 0 && op < operatorLast }

func (op Operator) mode() blend.Mode { return blend.Mode(op) }

// String returns the operator name.
func (op Operator) String() string {
	if !op.valid() {
		return "Unknown"
	}
	return op.mode().String()
}

func (op Operator) boundedByMask() bool   { return blend.BoundedByMask(op.mode()) }
func (op Operator) boundedBySource() bool { return blend.BoundedBySource(op.mode()) }

// Antialias selects the antialiasing mode for shapes and text.
type Antialias int

// Antialiasing modes.
const (
	AntialiasDefault Antialias = iota
	AntialiasNone
	AntialiasGray
	AntialiasSubpixel
	AntialiasFast
	AntialiasGood
	AntialiasBest
)

func (a Antialias) enabled() bool { return a != AntialiasNone }

// FillRule selects how self-intersecting paths are filled.
type FillRule int

// Fill rules.
const (
	FillRuleWinding FillRule = iota
	FillRuleEvenOdd
)

func (r FillRule) raster() raster.FillRule {
	if r == FillRuleEvenOdd {
		return raster.FillRuleEvenOdd
	}
	return raster.FillRuleNonZero
}

// LineCap is the shape of the end of an open stroked sub-path.
type LineCap int

// Line caps.
const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin is the shape drawn where two stroked segments meet.
type LineJoin int

// Line joins.
const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// StrokeStyle holds the stroke parameters of a graphics state.
type StrokeStyle struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
	// Hairline strokes are one device pixel wide whatever the CTM and
	// Width say.
	Hairline bool
}

func (s *StrokeStyle) copy() StrokeStyle {
	c := *s
	c.Dash = append([]float64(nil), s.Dash...)
	return c
}

func (s *StrokeStyle) internal(width float64) stroke.Style {
	return stroke.Style{
		Width:      width,
		Cap:        stroke.LineCap(s.Cap),
		Join:       stroke.LineJoin(s.Join),
		MiterLimit: s.MiterLimit,
	}
}

// Content describes what a surface stores.
type Content int

// Surface contents.
const (
	ContentColor      Content = 0x1000
	ContentAlpha      Content = 0x2000
	ContentColorAlpha Content = 0x3000
)

func (c Content) valid() bool {
	return c == ContentColor || c == ContentAlpha || c == ContentColorAlpha
}

// Format is the pixel format of an image surface.
type Format int

// Image formats. ARGB32 stores premultiplied RGBA, RGB24 ignores alpha and
// A8 stores alpha only.
const (
	FormatInvalid Format = iota - 1
	FormatARGB32
	FormatRGB24
	FormatA8
)

func (f Format) valid() bool {
	return f == FormatARGB32 || f == FormatRGB24 || f == FormatA8
}

func (f Format) content() Content {
	switch f {
	case FormatRGB24:
		return ContentColor
	case FormatA8:
		return ContentAlpha
	}
	return ContentColorAlpha
}

func formatForContent(c Content) Format {
	switch c {
	case ContentColor:
		return FormatRGB24
	case ContentAlpha:
		return FormatA8
	}
	return FormatARGB32
}

// Extend selects how a pattern is drawn outside its natural area.
type Extend int

// Extend modes.
const (
	ExtendNone Extend = iota
	ExtendRepeat
	ExtendReflect
	ExtendPad
)

// Filter selects the resampling filter of surface patterns.
type Filter int

// Filters.
const (
	FilterFast Filter = iota
	FilterGood
	FilterBest
	FilterNearest
	FilterBilinear
)

// Rectangle is a rectangle in user space.
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// UserDataKey identifies a user-data slot. Keys compare by address:
// declare one package-level variable per slot.
//
//	var myKey vg.UserDataKey
//	cr.SetUserData(&myKey, value, nil)
type UserDataKey = array.Key
