// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"math"

	"github.com/gogpu/vg/internal/path"
)

// Point is a point in stroke space.
type Point = path.Point

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Style holds the stroke parameters.
type Style struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// expander accumulates outline pieces for one expansion.
type expander struct {
	style     Style
	half      float64
	tolerance float64
	out       []path.Polyline
}

// Expand returns the polygons covering the stroke of lines.
// tolerance bounds the error of round caps and joins.
func Expand(lines []path.Polyline, style Style, tolerance float64) []path.Polyline {
	if style.Width <= 0 {
		return nil
	}
	if tolerance <= 0 {
		tolerance = 0.1
	}
	e := &expander{style: style, half: style.Width / 2, tolerance: tolerance}
	for _, l := range lines {
		e.polyline(l)
	}
	return e.out
}

// emit appends a polygon with positive orientation.
func (e *expander) emit(pts ...Point) {
	if len(pts) < 3 {
		return
	}
	if signedArea(pts) < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	e.out = append(e.out, path.Polyline{Points: pts, Closed: true})
}

func signedArea(pts []Point) float64 {
	a := 0.0
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// dedupe drops consecutive duplicate points, including the closing
// duplicate of a closed polyline.
func dedupe(l path.Polyline) []Point {
	pts := make([]Point, 0, len(l.Points))
	for _, p := range l.Points {
		if len(pts) == 0 || pts[len(pts)-1] != p {
			pts = append(pts, p)
		}
	}
	if l.Closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

func (e *expander) polyline(l path.Polyline) {
	pts := dedupe(l)
	switch {
	case len(pts) == 0:
		return
	case len(pts) == 1:
		e.dot(pts[0])
		return
	}

	n := len(pts)
	segs := n - 1
	if l.Closed {
		segs = n
	}
	for i := range segs {
		e.segment(pts[i], pts[(i+1)%n])
	}

	if l.Closed {
		for i := range n {
			prev := pts[(i+n-1)%n]
			e.join(prev, pts[i], pts[(i+1)%n])
		}
		return
	}
	for i := 1; i < n-1; i++ {
		e.join(pts[i-1], pts[i], pts[i+1])
	}
	e.capAt(pts[0], unit(pts[0].Sub(pts[1])))
	e.capAt(pts[n-1], unit(pts[n-1].Sub(pts[n-2])))
}

func unit(v Point) Point {
	l := v.Length()
	if l == 0 {
		return Point{}
	}
	return v.Mul(1 / l)
}

// normal returns the left-hand perpendicular of the unit direction d.
func normal(d Point) Point {
	return Point{X: -d.Y, Y: d.X}
}

func (e *expander) segment(a, b Point) {
	n := normal(unit(b.Sub(a))).Mul(e.half)
	e.emit(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

func (e *expander) join(prev, p, next Point) {
	d0 := unit(p.Sub(prev))
	d1 := unit(next.Sub(p))
	cross := d0.X*d1.Y - d0.Y*d1.X
	dot := d0.Dot(d1)
	if math.Abs(cross) < 1e-12 && dot > 0 {
		// Collinear, the segment quads already meet.
		return
	}

	// The outer side of the turn is opposite the turn direction.
	side := 1.0
	if cross > 0 {
		side = -1
	}
	n0 := normal(d0).Mul(e.half * side)
	n1 := normal(d1).Mul(e.half * side)
	a, b := p.Add(n0), p.Add(n1)

	switch e.style.Join {
	case LineJoinRound:
		e.circle(p)
	case LineJoinMiter:
		// Miter length ratio is 1/sin(theta/2) where theta is the angle
		// between the segments.
		theta := math.Acos(math.Max(-1, math.Min(1, -dot)))
		if s := math.Sin(theta / 2); s > 0 && 1/s <= e.style.MiterLimit {
			bis := unit(n0.Add(n1))
			tip := p.Add(bis.Mul(e.half / s))
			e.emit(p, a, tip, b)
			return
		}
		e.emit(p, a, b)
	default:
		e.emit(p, a, b)
	}
}

func (e *expander) capAt(p, outward Point) {
	switch e.style.Cap {
	case LineCapRound:
		e.circle(p)
	case LineCapSquare:
		n := normal(outward).Mul(e.half)
		ext := p.Add(outward.Mul(e.half))
		e.emit(p.Add(n), ext.Add(n), ext.Sub(n), p.Sub(n))
	}
}

// dot draws a degenerate sub-path: a disc for round caps, an axis
// aligned square for square caps and nothing for butt caps.
func (e *expander) dot(p Point) {
	switch e.style.Cap {
	case LineCapRound:
		e.circle(p)
	case LineCapSquare:
		h := e.half
		e.emit(
			Point{X: p.X - h, Y: p.Y - h}, Point{X: p.X + h, Y: p.Y - h},
			Point{X: p.X + h, Y: p.Y + h}, Point{X: p.X - h, Y: p.Y + h},
		)
	}
}

func (e *expander) circle(c Point) {
	e.emit(Circle(c, e.half, e.tolerance)...)
}

// Circle returns a polygon approximating a circle within tolerance.
func Circle(c Point, r, tolerance float64) []Point {
	n := CircleSegments(r, tolerance)
	pts := make([]Point, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return pts
}

// CircleSegments returns the number of chords needed so that a circle of
// radius r deviates from its polygon by at most tolerance.
func CircleSegments(r, tolerance float64) int {
	if r <= tolerance {
		return 4
	}
	n := int(math.Ceil(math.Pi / math.Acos(1-tolerance/r)))
	return max(4, min(n, 1024))
}
