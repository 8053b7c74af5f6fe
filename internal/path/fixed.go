// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package path

import (
	"image"
	"math"

	"golang.org/x/image/math/fixed"
)

// MaxCoord is the largest magnitude a device coordinate may take.
// It is half the Int26_6 range so translations and stroke outsets
// computed on stored coordinates cannot overflow.
const MaxCoord = 1 << 24

// FromFloat converts v to 26.6 fixed point, rounding to nearest.
func FromFloat(v float64) fixed.Int26_6 {
	return FromFloatClamped(v, 0)
}

// FromFloatClamped converts v to 26.6 fixed point, clamping the result so
// that |v| + margin stays inside the representable range. Callers pass
// the half stroke width in device units as margin so that outlines built
// around a clamped point still fit.
func FromFloatClamped(v, margin float64) fixed.Int26_6 {
	if math.IsNaN(v) {
		return 0
	}
	if margin < 0 || math.IsNaN(margin) {
		margin = 0
	}
	limit := MaxCoord - math.Min(margin, MaxCoord/2)
	v = math.Max(-limit, math.Min(limit, v))
	return fixed.Int26_6(math.Round(v * 64))
}

// ToFloat converts a 26.6 value to float64.
func ToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// FromInt converts an integer to 26.6 fixed point.
func FromInt(i int) fixed.Int26_6 {
	return fixed.Int26_6(i << 6)
}

// Pt returns the fixed point nearest to (x, y).
func Pt(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: FromFloat(x), Y: FromFloat(y)}
}

// PointToFloat converts a fixed point to floating point.
func PointToFloat(p fixed.Point26_6) Point {
	return Point{X: ToFloat(p.X), Y: ToFloat(p.Y)}
}

// Box is an axis-aligned box in fixed point. P1 is the top-left corner
// and P2 the bottom-right; the box is empty when P1 is not strictly above
// and left of P2.
type Box struct {
	P1, P2 fixed.Point26_6
}

// BoxFromRect returns the box covering the integer rectangle r.
func BoxFromRect(r image.Rectangle) Box {
	return Box{
		P1: fixed.Point26_6{X: FromInt(r.Min.X), Y: FromInt(r.Min.Y)},
		P2: fixed.Point26_6{X: FromInt(r.Max.X), Y: FromInt(r.Max.Y)},
	}
}

// Empty reports whether b encloses no area.
func (b Box) Empty() bool {
	return b.P1.X >= b.P2.X || b.P1.Y >= b.P2.Y
}

// Intersect returns the intersection of b and o. The result may be empty.
func (b Box) Intersect(o Box) Box {
	return Box{
		P1: fixed.Point26_6{X: max(b.P1.X, o.P1.X), Y: max(b.P1.Y, o.P1.Y)},
		P2: fixed.Point26_6{X: min(b.P2.X, o.P2.X), Y: min(b.P2.Y, o.P2.Y)},
	}
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Box{
		P1: fixed.Point26_6{X: min(b.P1.X, o.P1.X), Y: min(b.P1.Y, o.P1.Y)},
		P2: fixed.Point26_6{X: max(b.P2.X, o.P2.X), Y: max(b.P2.Y, o.P2.Y)},
	}
}

// Translate returns b moved by (dx, dy).
func (b Box) Translate(dx, dy fixed.Int26_6) Box {
	return Box{
		P1: fixed.Point26_6{X: b.P1.X + dx, Y: b.P1.Y + dy},
		P2: fixed.Point26_6{X: b.P2.X + dx, Y: b.P2.Y + dy},
	}
}

// IsIntegral reports whether all edges of b lie on pixel boundaries.
func (b Box) IsIntegral() bool {
	return b.P1.X&63 == 0 && b.P1.Y&63 == 0 && b.P2.X&63 == 0 && b.P2.Y&63 == 0
}

// Contains reports whether the point (x, y) lies inside b.
func (b Box) Contains(x, y float64) bool {
	return x >= ToFloat(b.P1.X) && x < ToFloat(b.P2.X) &&
		y >= ToFloat(b.P1.Y) && y < ToFloat(b.P2.Y)
}

// RoundOut returns the smallest integer rectangle containing b.
func (b Box) RoundOut() image.Rectangle {
	if b.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(b.P1.X.Floor(), b.P1.Y.Floor(), b.P2.X.Ceil(), b.P2.Y.Ceil())
}

// Rect returns the integer rectangle equal to b. It is only exact when
// IsIntegral reports true.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.P1.X.Floor(), b.P1.Y.Floor(), b.P2.X.Floor(), b.P2.Y.Floor())
}

// FloatBounds returns the corners of b as floats.
func (b Box) FloatBounds() (x1, y1, x2, y2 float64) {
	return ToFloat(b.P1.X), ToFloat(b.P1.Y), ToFloat(b.P2.X), ToFloat(b.P2.Y)
}
