// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is a 2D affine transformation:
//
//	x' = XX*x + XY*y + X0
//	y' = YX*x + YY*y + Y0
type Matrix struct {
	XX, YX float64
	XY, YY float64
	X0, Y0 float64
}

// NewMatrix returns the matrix with the given components.
func NewMatrix(xx, yx, xy, yy, x0, y0 float64) Matrix {
	return Matrix{XX: xx, YX: yx, XY: xy, YY: yy, X0: x0, Y0: y0}
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{XX: 1, YY: 1}
}

// Translate creates a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{XX: 1, YY: 1, X0: tx, Y0: ty}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{XX: sx, YY: sy}
}

// Rotate creates a rotation matrix. Positive angles rotate from the
// positive X axis towards the positive Y axis.
func Rotate(radians float64) Matrix {
	s, c := math.Sincos(radians)
	return Matrix{XX: c, YX: s, XY: -s, YY: c}
}

// Multiply returns the transformation that applies m first and then o.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		XX: m.XX*o.XX + m.YX*o.XY,
		YX: m.XX*o.YX + m.YX*o.YY,
		XY: m.XY*o.XX + m.YY*o.XY,
		YY: m.XY*o.YX + m.YY*o.YY,
		X0: m.X0*o.XX + m.Y0*o.XY + o.X0,
		Y0: m.X0*o.YX + m.Y0*o.YY + o.Y0,
	}
}

// Translate returns m with a translation applied before it.
func (m Matrix) Translate(tx, ty float64) Matrix {
	return Translate(tx, ty).Multiply(m)
}

// Scale returns m with a scale applied before it.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return Scale(sx, sy).Multiply(m)
}

// Rotate returns m with a rotation applied before it.
func (m Matrix) Rotate(radians float64) Matrix {
	return Rotate(radians).Multiply(m)
}

// TransformPoint applies m to the point (x, y).
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.XX*x + m.XY*y + m.X0, m.YX*x + m.YY*y + m.Y0
}

// TransformDistance applies m to the vector (dx, dy), ignoring the
// translation.
func (m Matrix) TransformDistance(dx, dy float64) (float64, float64) {
	return m.XX*dx + m.XY*dy, m.YX*dx + m.YY*dy
}

// Determinant returns the determinant of the linear part of m.
func (m Matrix) Determinant() float64 {
	return m.XX*m.YY - m.YX*m.XY
}

// IsFinite reports whether every component of m is finite.
func (m Matrix) IsFinite() bool {
	for _, v := range [...]float64{m.XX, m.YX, m.XY, m.YY, m.X0, m.Y0} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Invertible reports whether m is finite with a non-zero determinant.
func (m Matrix) Invertible() bool {
	if !m.IsFinite() {
		return false
	}
	det := m.Determinant()
	return det != 0 && !math.IsInf(det, 0) && !math.IsNaN(det)
}

// Invert returns the inverse of m. It returns StatusInvalidMatrix when m
// is singular or not finite.
func (m Matrix) Invert() (Matrix, error) {
	if !m.Invertible() {
		return Matrix{}, StatusInvalidMatrix
	}
	// Scale and translation only, exact.
	if m.YX == 0 && m.XY == 0 {
		return Matrix{
			XX: 1 / m.XX, YY: 1 / m.YY,
			X0: -m.X0 / m.XX, Y0: -m.Y0 / m.YY,
		}, nil
	}
	inv := 1 / m.Determinant()
	return Matrix{
		XX: m.YY * inv,
		YX: -m.YX * inv,
		XY: -m.XY * inv,
		YY: m.XX * inv,
		X0: (m.XY*m.Y0 - m.YY*m.X0) * inv,
		Y0: (m.YX*m.X0 - m.XX*m.Y0) * inv,
	}, nil
}

// IsIdentity reports whether m is the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation reports whether m only translates.
func (m Matrix) IsTranslation() bool {
	return m.XX == 1 && m.YX == 0 && m.XY == 0 && m.YY == 1
}

// IsIntegerTranslation reports whether m translates by whole units and
// returns the offsets.
func (m Matrix) IsIntegerTranslation() (tx, ty int, ok bool) {
	if !m.IsTranslation() {
		return 0, 0, false
	}
	if m.X0 != math.Trunc(m.X0) || m.Y0 != math.Trunc(m.Y0) {
		return 0, 0, false
	}
	if math.Abs(m.X0) > math.MaxInt32 || math.Abs(m.Y0) > math.MaxInt32 {
		return 0, 0, false
	}
	return int(m.X0), int(m.Y0), true
}

// isAxisAligned reports whether m maps axis-aligned rectangles onto
// axis-aligned rectangles.
func (m Matrix) isAxisAligned() bool {
	return (m.YX == 0 && m.XY == 0) || (m.XX == 0 && m.YY == 0)
}

// TransformBounds returns the bounding box of the rectangle
// [x1, x2] × [y1, y2] transformed by m.
func (m Matrix) TransformBounds(x1, y1, x2, y2 float64) (bx1, by1, bx2, by2 float64) {
	bx1, by1 = math.Inf(1), math.Inf(1)
	bx2, by2 = math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{x1, y1}, {x2, y1}, {x1, y2}, {x2, y2}} {
		x, y := m.TransformPoint(c[0], c[1])
		bx1, by1 = math.Min(bx1, x), math.Min(by1, y)
		bx2, by2 = math.Max(bx2, x), math.Max(by2, y)
	}
	return bx1, by1, bx2, by2
}

// scaleFactors returns the lengths of the images of the unit X and Y
// vectors.
func (m Matrix) scaleFactors() (sx, sy float64) {
	return math.Hypot(m.XX, m.YX), math.Hypot(m.XY, m.YY)
}

// linear returns m without its translation.
func (m Matrix) linear() Matrix {
	m.X0, m.Y0 = 0, 0
	return m
}

// aff3 returns m in the layout used by golang.org/x/image/draw.
func (m Matrix) aff3() f64.Aff3 {
	return f64.Aff3{m.XX, m.XY, m.X0, m.YX, m.YY, m.Y0}
}
