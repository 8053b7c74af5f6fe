// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package path

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Point is a floating-point point in backend space.
type Point struct {
	X, Y float64
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// maxFlattenDepth bounds the subdivision depth: 2^16 segments per curve.
const maxFlattenDepth = 16

// flattenCubic returns the points after p0 of a polyline approximating
// the cubic within tolerance. The last point is p3.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64) []Point {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	var points []Point
	flattenCubicRec(p0, p1, p2, p3, tolerance, 0, &points)
	return points
}

// flattenCubicRec recursively subdivides a cubic Bézier curve.
func flattenCubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, points *[]Point) {
	d1 := distanceToLine(p1, p0, p3)
	d2 := distanceToLine(p2, p0, p3)

	if math.Max(d1, d2) <= tolerance || depth >= maxFlattenDepth {
		*points = append(*points, p3)
		return
	}

	// de Casteljau split at t = 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}

// distanceToLine returns the distance from p to the segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()

	if abLen < 1e-10 {
		return p.Distance(a)
	}

	ap := p.Sub(a)
	t := ap.Dot(ab) / (abLen * abLen)

	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}

	closest := a.Add(ab.Mul(t))
	return p.Distance(closest)
}

func evalCubic(p0, p1, p2, p3 Point, t float64) Point {
	s := 1 - t
	s2 := s * s
	t2 := t * t
	return Point{
		X: s2*s*p0.X + 3*s2*t*p1.X + 3*s*t2*p2.X + t2*t*p3.X,
		Y: s2*s*p0.Y + 3*s2*t*p1.Y + 3*s*t2*p2.Y + t2*t*p3.Y,
	}
}

// cubicExtremaT returns the parameters in (0, 1) where the curve has an
// extremum in x or y.
func cubicExtremaT(p0, p1, p2, p3 Point) []float64 {
	var ts []float64
	for _, c := range [2][4]float64{
		{p0.X, p1.X, p2.X, p3.X},
		{p0.Y, p1.Y, p2.Y, p3.Y},
	} {
		// Derivative coefficients: a t^2 + b t + k.
		a := -c[0] + 3*c[1] - 3*c[2] + c[3]
		b := 2 * (c[0] - 2*c[1] + c[2])
		k := c[1] - c[0]
		for _, t := range quadRoots(a, b, k) {
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	return ts
}

func quadRoots(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// Polyline is a flattened sub-path in floating-point backend space.
type Polyline struct {
	Points []Point
	Closed bool
}

// Flatten returns the path as polylines, one per sub-path, with curves
// approximated within tolerance. Sub-paths consisting of a lone MoveTo
// are dropped.
func (p *Path) Flatten(tolerance float64) []Polyline {
	c := polylineCollector{}
	_ = p.InterpretFlat(&c, tolerance)
	c.finish()
	return c.lines
}

type polylineCollector struct {
	lines []Polyline
	cur   []Point
}

func (c *polylineCollector) finish() {
	if len(c.cur) > 1 {
		c.lines = append(c.lines, Polyline{Points: c.cur})
	}
	c.cur = nil
}

func (c *polylineCollector) MoveTo(pt fixed.Point26_6) error {
	c.finish()
	c.cur = []Point{PointToFloat(pt)}
	return nil
}

func (c *polylineCollector) LineTo(pt fixed.Point26_6) error {
	c.cur = append(c.cur, PointToFloat(pt))
	return nil
}

func (c *polylineCollector) CurveTo(_, _, p3 fixed.Point26_6) error {
	c.cur = append(c.cur, PointToFloat(p3))
	return nil
}

func (c *polylineCollector) ClosePath() error {
	if len(c.cur) > 0 {
		c.lines = append(c.lines, Polyline{Points: c.cur, Closed: true})
	}
	c.cur = nil
	return nil
}
