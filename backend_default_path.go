// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/vg/internal/path"
)

// maxArcSegments bounds the curves emitted for one arc.
const maxArcSegments = 1 << 16

// point converts user coordinates to the fixed-point pixel space of the
// path. Coordinates are clamped so the stroke outline still fits.
func (b *defaultBackend) point(x, y float64) fixed.Point26_6 {
	g := b.gstate
	x, y = g.toBackend.TransformPoint(x, y)
	margin := g.style.Width / 2 * g.backendScale()
	return fixed.Point26_6{X: path.FromFloatClamped(x, margin), Y: path.FromFloatClamped(y, margin)}
}

func (b *defaultBackend) distance(dx, dy float64) fixed.Point26_6 {
	dx, dy = b.gstate.toBackend.TransformDistance(dx, dy)
	return path.Pt(dx, dy)
}

func (b *defaultBackend) NewPath() Status {
	b.path.Reset()
	return StatusSuccess
}

func (b *defaultBackend) NewSubPath() Status {
	b.path.NewSubPath()
	return StatusSuccess
}

func (b *defaultBackend) MoveTo(x, y float64) Status {
	b.path.MoveTo(b.point(x, y))
	return StatusSuccess
}

func (b *defaultBackend) LineTo(x, y float64) Status {
	b.path.LineTo(b.point(x, y))
	return StatusSuccess
}

func (b *defaultBackend) CurveTo(x1, y1, x2, y2, x3, y3 float64) Status {
	b.path.CurveTo(b.point(x1, y1), b.point(x2, y2), b.point(x3, y3))
	return StatusSuccess
}

func (b *defaultBackend) RelMoveTo(dx, dy float64) Status {
	return StatusOf(b.path.RelMoveTo(b.distance(dx, dy)))
}

func (b *defaultBackend) RelLineTo(dx, dy float64) Status {
	return StatusOf(b.path.RelLineTo(b.distance(dx, dy)))
}

func (b *defaultBackend) RelCurveTo(dx1, dy1, dx2, dy2, dx3, dy3 float64) Status {
	return StatusOf(b.path.RelCurveTo(b.distance(dx1, dy1), b.distance(dx2, dy2), b.distance(dx3, dy3)))
}

// Rectangle adds a closed sub-path. Corners are converted one by one so
// a rectangle larger than the coordinate range clamps to the range.
func (b *defaultBackend) Rectangle(x, y, width, height float64) Status {
	b.path.MoveTo(b.point(x, y))
	b.path.LineTo(b.point(x+width, y))
	b.path.LineTo(b.point(x+width, y+height))
	b.path.LineTo(b.point(x, y+height))
	b.path.ClosePath()
	return StatusSuccess
}

func (b *defaultBackend) ClosePath() Status {
	b.path.ClosePath()
	return StatusSuccess
}

// Arc adds line segments to the start of the arc and Bézier curves along
// it. A radius of zero or less adds a zero-length segment at the centre.
func (b *defaultBackend) Arc(xc, yc, radius, angle1, angle2 float64, forward bool) Status {
	if !(radius > 0) {
		b.LineTo(xc, yc)
		b.LineTo(xc, yc)
		return StatusSuccess
	}
	b.LineTo(xc+radius*math.Cos(angle1), yc+radius*math.Sin(angle1))
	if angle1 == angle2 {
		return StatusSuccess
	}

	sweep := angle2 - angle1
	maxAngle := arcMaxAngle(b.gstate.tolerance / majorAxis(b.gstate.toBackend, radius))
	n := int(math.Ceil(math.Abs(sweep) / maxAngle))
	n = min(max(n, 1), maxArcSegments)
	step := sweep / float64(n)
	a := angle1
	for i := range n {
		next := angle1 + step*float64(i+1)
		b.arcSegment(xc, yc, radius, a, next)
		a = next
	}
	return StatusSuccess
}

func (b *defaultBackend) arcSegment(xc, yc, r, a, c float64) {
	sinA, cosA := math.Sincos(a)
	sinC, cosC := math.Sincos(c)
	h := 4.0 / 3.0 * math.Tan((c-a)/4)
	b.CurveTo(
		xc+r*cosA-h*r*sinA, yc+r*sinA+h*r*cosA,
		xc+r*cosC+h*r*sinC, yc+r*sinC-h*r*cosC,
		xc+r*cosC, yc+r*sinC,
	)
}

// arcError returns the distance between a unit circle arc of the given
// angle and its Bézier approximation.
func arcError(angle float64) float64 {
	return 2.0 / 27.0 * math.Pow(math.Sin(angle/4), 6) / math.Pow(math.Cos(angle/4), 2)
}

// arcMaxAngle returns the largest angle π/n whose unit-circle error is
// within tolerance.
func arcMaxAngle(tolerance float64) float64 {
	for i := 2; i < maxArcSegments; i++ {
		angle := math.Pi / float64(i)
		if arcError(angle) <= tolerance {
			return angle
		}
	}
	return math.Pi / maxArcSegments
}

// majorAxis returns the longest radius of a circle of radius r under m.
func majorAxis(m Matrix, r float64) float64 {
	a, bb, c, d := m.XX, m.YX, m.XY, m.YY
	s := a*a + bb*bb + c*c + d*d
	det := a*d - bb*c
	disc := math.Sqrt(math.Max(0, s*s-4*det*det))
	return r * math.Sqrt((s+disc)/2)
}

// ArcTo adds a line towards (x1, y1) ending in an arc of the given radius
// tangent to the lines current point to (x1, y1) and (x1, y1) to (x2, y2).
func (b *defaultBackend) ArcTo(x1, y1, x2, y2, radius float64) Status {
	if !b.HasCurrentPoint() {
		return StatusNoCurrentPoint
	}
	x0, y0 := b.CurrentPoint()
	d1x, d1y := x0-x1, y0-y1
	d2x, d2y := x2-x1, y2-y1
	l1, l2 := math.Hypot(d1x, d1y), math.Hypot(d2x, d2y)
	cross := d1x*d2y - d1y*d2x
	if radius <= 0 || l1 == 0 || l2 == 0 || cross == 0 {
		return b.LineTo(x1, y1)
	}
	d1x, d1y = d1x/l1, d1y/l1
	d2x, d2y = d2x/l2, d2y/l2
	theta := math.Acos(math.Max(-1, math.Min(1, d1x*d2x+d1y*d2y)))
	dist := radius / math.Tan(theta/2)
	t1x, t1y := x1+d1x*dist, y1+d1y*dist
	t2x, t2y := x1+d2x*dist, y1+d2y*dist
	bx, by := d1x+d2x, d1y+d2y
	bl := math.Hypot(bx, by)
	h := radius / math.Sin(theta/2)
	cx, cy := x1+bx/bl*h, y1+by/bl*h

	b.LineTo(t1x, t1y)
	a1 := math.Atan2(t1y-cy, t1x-cx)
	a2 := math.Atan2(t2y-cy, t2x-cx)
	// The incoming direction is -d1; a negative cross product turns
	// towards increasing angles.
	if cross < 0 {
		a2 = normalizeForward(a1, a2)
		return b.Arc(cx, cy, radius, a1, a2, true)
	}
	a2 = normalizeBackward(a1, a2)
	return b.Arc(cx, cy, radius, a1, a2, false)
}

// normalizeForward returns angle2 moved by whole turns into
// [angle1, angle1+2π).
func normalizeForward(angle1, angle2 float64) float64 {
	if angle2 < angle1 {
		angle2 = math.Mod(angle2-angle1, 2*math.Pi)
		if angle2 < 0 {
			angle2 += 2 * math.Pi
		}
		angle2 += angle1
	}
	return angle2
}

// normalizeBackward returns angle2 moved by whole turns into
// (angle1-2π, angle1].
func normalizeBackward(angle1, angle2 float64) float64 {
	if angle2 > angle1 {
		angle2 = math.Mod(angle2-angle1, 2*math.Pi)
		if angle2 > 0 {
			angle2 -= 2 * math.Pi
		}
		angle2 += angle1
	}
	return angle2
}

func (b *defaultBackend) PathExtents() (x1, y1, x2, y2 float64) {
	box, ok := b.path.Extents()
	if !ok {
		return 0, 0, 0, 0
	}
	return b.gstate.fromBackend.TransformBounds(box.FloatBounds())
}

func (b *defaultBackend) HasCurrentPoint() bool {
	_, ok := b.path.CurrentPoint()
	return ok
}

func (b *defaultBackend) CurrentPoint() (x, y float64) {
	pt, ok := b.path.CurrentPoint()
	if !ok {
		return 0, 0
	}
	p := path.PointToFloat(pt)
	return b.gstate.fromBackend.TransformPoint(p.X, p.Y)
}

func (b *defaultBackend) CopyPath() *Path {
	return exportPath(b.path, b.gstate.fromBackend, 0)
}

func (b *defaultBackend) CopyPathFlat() *Path {
	return exportPath(b.path, b.gstate.fromBackend, b.gstate.tolerance)
}

// AppendPath adds the records of p in user space. Every header is
// checked before the path changes.
func (b *defaultBackend) AppendPath(p *Path) Status {
	if p == nil {
		return StatusNullPointer
	}
	if st := p.validate(); st.isError() {
		return st
	}
	d := p.Data
	for i := 0; i < len(d); i += d[i].Length {
		switch d[i].Type {
		case PathMoveTo:
			b.MoveTo(d[i+1].X, d[i+1].Y)
		case PathLineTo:
			b.LineTo(d[i+1].X, d[i+1].Y)
		case PathCurveTo:
			b.CurveTo(d[i+1].X, d[i+1].Y, d[i+2].X, d[i+2].Y, d[i+3].X, d[i+3].Y)
		case PathClosePath:
			b.ClosePath()
		}
	}
	return StatusSuccess
}
