// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package path implements the fixed-point path model used by the drawing
// context.
//
// Coordinates are 26.6 fixed point in backend space: the caller has
// already applied the CTM and the target's device transform. A Path is a
// flat op list with a parallel point list; Interpret and InterpretFlat are
// the only ways segments leave the package, so exporting a path and
// rasterizing it see the same sequence.
//
// After ClosePath the path needs a MoveTo: the next LineTo or CurveTo
// first re-opens a sub-path at the close point, and Interpret reports a
// trailing MoveTo when the path ends in a close.
package path

import (
	"errors"

	"golang.org/x/image/math/fixed"
)

// ErrNoCurrentPoint is returned by operations that need a current point.
var ErrNoCurrentPoint = errors.New("path: no current point")

// Op is a path segment kind.
type Op uint8

const (
	// OpMoveTo starts a new sub-path. It carries one point.
	OpMoveTo Op = iota
	// OpLineTo adds a straight segment. It carries one point.
	OpLineTo
	// OpCurveTo adds a cubic Bézier segment. It carries three points.
	OpCurveTo
	// OpClosePath closes the current sub-path. It carries no points.
	OpClosePath
)

// Points returns the number of points an op carries.
func (op Op) Points() int {
	switch op {
	case OpMoveTo, OpLineTo:
		return 1
	case OpCurveTo:
		return 3
	default:
		return 0
	}
}

// String returns the op name.
func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpCurveTo:
		return "CurveTo"
	case OpClosePath:
		return "ClosePath"
	default:
		return "Unknown"
	}
}

// Sink receives path segments from Interpret. Returning an error stops the
// traversal and the error is returned to the caller of Interpret.
type Sink interface {
	MoveTo(p fixed.Point26_6) error
	LineTo(p fixed.Point26_6) error
	CurveTo(p1, p2, p3 fixed.Point26_6) error
	ClosePath() error
}

// Path is a fixed-point path. The zero value is an empty path.
type Path struct {
	ops []Op
	pts []fixed.Point26_6

	current    fixed.Point26_6
	lastMove   fixed.Point26_6
	hasCurrent bool
	needsMove  bool
	hasCurves  bool
}

// New returns an empty path.
func New() *Path {
	return &Path{}
}

// Reset empties the path, keeping its storage.
func (p *Path) Reset() {
	p.ops = p.ops[:0]
	p.pts = p.pts[:0]
	p.current = fixed.Point26_6{}
	p.lastMove = fixed.Point26_6{}
	p.hasCurrent = false
	p.needsMove = false
	p.hasCurves = false
}

// Copy returns a deep copy of p.
func (p *Path) Copy() *Path {
	c := *p
	c.ops = append([]Op(nil), p.ops...)
	c.pts = append([]fixed.Point26_6(nil), p.pts...)
	return &c
}

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool {
	return len(p.ops) == 0
}

// Len returns the number of ops.
func (p *Path) Len() int {
	return len(p.ops)
}

// HasCurves reports whether the path contains any CurveTo.
func (p *Path) HasCurves() bool {
	return p.hasCurves
}

// CurrentPoint returns the current point and whether there is one.
func (p *Path) CurrentPoint() (fixed.Point26_6, bool) {
	return p.current, p.hasCurrent
}

func (p *Path) lastOp() (Op, bool) {
	if len(p.ops) == 0 {
		return 0, false
	}
	return p.ops[len(p.ops)-1], true
}

// MoveTo starts a new sub-path at pt. A MoveTo directly following another
// MoveTo replaces it.
func (p *Path) MoveTo(pt fixed.Point26_6) {
	p.needsMove = false
	if op, ok := p.lastOp(); ok && op == OpMoveTo {
		p.pts[len(p.pts)-1] = pt
	} else {
		p.ops = append(p.ops, OpMoveTo)
		p.pts = append(p.pts, pt)
	}
	p.current = pt
	p.lastMove = pt
	p.hasCurrent = true
}

// NewSubPath forgets the current point without adding a segment.
func (p *Path) NewSubPath() {
	p.hasCurrent = false
	p.needsMove = false
}

func (p *Path) applyPendingMove() {
	if p.needsMove {
		p.MoveTo(p.current)
	}
}

// LineTo adds a line to pt. Without a current point it behaves as MoveTo.
// A zero-length line is dropped unless it directly follows a MoveTo, so a
// degenerate sub-path still produces a segment for caps.
func (p *Path) LineTo(pt fixed.Point26_6) {
	if !p.hasCurrent {
		p.MoveTo(pt)
		return
	}
	p.applyPendingMove()
	if op, _ := p.lastOp(); op != OpMoveTo && pt == p.current {
		return
	}
	p.ops = append(p.ops, OpLineTo)
	p.pts = append(p.pts, pt)
	p.current = pt
}

// CurveTo adds a cubic Bézier from the current point through the control
// points p1 and p2 to p3. Without a current point the curve starts at p1.
func (p *Path) CurveTo(p1, p2, p3 fixed.Point26_6) {
	if !p.hasCurrent {
		p.MoveTo(p1)
	}
	p.applyPendingMove()
	p.ops = append(p.ops, OpCurveTo)
	p.pts = append(p.pts, p1, p2, p3)
	p.current = p3
	p.hasCurves = true
}

// ClosePath closes the current sub-path back to its start. The current
// point becomes the sub-path start.
func (p *Path) ClosePath() {
	if !p.hasCurrent {
		return
	}
	if p.needsMove {
		// Already closed; closing an empty sub-path is a no-op.
		return
	}
	p.ops = append(p.ops, OpClosePath)
	p.current = p.lastMove
	p.needsMove = true
}

// RelMoveTo moves relative to the current point.
func (p *Path) RelMoveTo(d fixed.Point26_6) error {
	if !p.hasCurrent {
		return ErrNoCurrentPoint
	}
	p.MoveTo(p.current.Add(d))
	return nil
}

// RelLineTo draws a line relative to the current point.
func (p *Path) RelLineTo(d fixed.Point26_6) error {
	if !p.hasCurrent {
		return ErrNoCurrentPoint
	}
	p.LineTo(p.current.Add(d))
	return nil
}

// RelCurveTo draws a curve whose points are relative to the current point.
func (p *Path) RelCurveTo(d1, d2, d3 fixed.Point26_6) error {
	if !p.hasCurrent {
		return ErrNoCurrentPoint
	}
	c := p.current
	p.CurveTo(c.Add(d1), c.Add(d2), c.Add(d3))
	return nil
}

// Translate moves every point of the path by (dx, dy).
func (p *Path) Translate(dx, dy fixed.Int26_6) {
	if dx == 0 && dy == 0 {
		return
	}
	d := fixed.Point26_6{X: dx, Y: dy}
	for i := range p.pts {
		p.pts[i] = p.pts[i].Add(d)
	}
	p.current = p.current.Add(d)
	p.lastMove = p.lastMove.Add(d)
}

// Interpret feeds every segment to sink in order.
func (p *Path) Interpret(sink Sink) error {
	i := 0
	for _, op := range p.ops {
		var err error
		switch op {
		case OpMoveTo:
			err = sink.MoveTo(p.pts[i])
		case OpLineTo:
			err = sink.LineTo(p.pts[i])
		case OpCurveTo:
			err = sink.CurveTo(p.pts[i], p.pts[i+1], p.pts[i+2])
		case OpClosePath:
			err = sink.ClosePath()
		}
		if err != nil {
			return err
		}
		i += op.Points()
	}
	if p.needsMove && p.hasCurrent {
		return sink.MoveTo(p.current)
	}
	return nil
}

// InterpretFlat is like Interpret but replaces every curve by line
// segments that stay within tolerance device units of the curve.
func (p *Path) InterpretFlat(sink Sink, tolerance float64) error {
	if !p.hasCurves {
		return p.Interpret(sink)
	}
	return p.Interpret(&flattener{sink: sink, tolerance: tolerance})
}

type flattener struct {
	sink      Sink
	tolerance float64
	current   fixed.Point26_6
}

func (f *flattener) MoveTo(pt fixed.Point26_6) error {
	f.current = pt
	return f.sink.MoveTo(pt)
}

func (f *flattener) LineTo(pt fixed.Point26_6) error {
	f.current = pt
	return f.sink.LineTo(pt)
}

func (f *flattener) CurveTo(p1, p2, p3 fixed.Point26_6) error {
	p0 := f.current
	f.current = p3
	pts := flattenCubic(PointToFloat(p0), PointToFloat(p1), PointToFloat(p2), PointToFloat(p3), f.tolerance)
	last := len(pts) - 1
	for i, q := range pts {
		fp := Pt(q.X, q.Y)
		if i == last {
			// The end point is exact, never rounded through float.
			fp = p3
		}
		if err := f.sink.LineTo(fp); err != nil {
			return err
		}
	}
	return nil
}

func (f *flattener) ClosePath() error {
	return f.sink.ClosePath()
}

// IsBox reports whether the path is a single axis-aligned rectangle and
// returns it. Both windings qualify; the closing edge may be implicit.
func (p *Path) IsBox() (Box, bool) {
	if p.hasCurves {
		return Box{}, false
	}
	ops := p.ops
	// Strip a trailing implicit move and close.
	n := len(ops)
	if n > 0 && ops[n-1] == OpMoveTo && n > 1 && ops[n-2] == OpClosePath {
		n--
	}
	if n > 0 && ops[n-1] == OpClosePath {
		n--
	}
	if n != 4 && n != 5 {
		return Box{}, false
	}
	if ops[0] != OpMoveTo {
		return Box{}, false
	}
	for _, op := range ops[1:n] {
		if op != OpLineTo {
			return Box{}, false
		}
	}
	pts := p.pts[:n]
	if n == 5 && pts[4] != pts[0] {
		return Box{}, false
	}

	horizontalFirst := pts[0].Y == pts[1].Y && pts[1].X == pts[2].X &&
		pts[2].Y == pts[3].Y && pts[3].X == pts[0].X
	verticalFirst := pts[0].X == pts[1].X && pts[1].Y == pts[2].Y &&
		pts[2].X == pts[3].X && pts[3].Y == pts[0].Y
	if !horizontalFirst && !verticalFirst {
		return Box{}, false
	}

	b := Box{
		P1: fixed.Point26_6{X: min(pts[0].X, pts[2].X), Y: min(pts[0].Y, pts[2].Y)},
		P2: fixed.Point26_6{X: max(pts[0].X, pts[2].X), Y: max(pts[0].Y, pts[2].Y)},
	}
	return b, true
}

// Extents returns the bounding box of the path geometry. Curves
// contribute their exact extrema. A lone MoveTo contributes nothing.
func (p *Path) Extents() (Box, bool) {
	var b extentsSink
	_ = p.Interpret(&b)
	return b.box, b.ok
}

type extentsSink struct {
	box     Box
	ok      bool
	current fixed.Point26_6
	pending bool
}

func (e *extentsSink) add(pt fixed.Point26_6) {
	if !e.ok {
		e.box = Box{P1: pt, P2: pt}
		e.ok = true
		return
	}
	e.box.P1.X = min(e.box.P1.X, pt.X)
	e.box.P1.Y = min(e.box.P1.Y, pt.Y)
	e.box.P2.X = max(e.box.P2.X, pt.X)
	e.box.P2.Y = max(e.box.P2.Y, pt.Y)
}

func (e *extentsSink) flushMove() {
	if e.pending {
		e.add(e.current)
		e.pending = false
	}
}

func (e *extentsSink) MoveTo(pt fixed.Point26_6) error {
	e.current = pt
	e.pending = true
	return nil
}

func (e *extentsSink) LineTo(pt fixed.Point26_6) error {
	e.flushMove()
	e.add(pt)
	e.current = pt
	return nil
}

func (e *extentsSink) CurveTo(p1, p2, p3 fixed.Point26_6) error {
	e.flushMove()
	p0 := PointToFloat(e.current)
	c1, c2, c3 := PointToFloat(p1), PointToFloat(p2), PointToFloat(p3)
	for _, t := range cubicExtremaT(p0, c1, c2, c3) {
		q := evalCubic(p0, c1, c2, c3, t)
		e.add(Pt(q.X, q.Y))
	}
	e.add(p3)
	e.current = p3
	return nil
}

func (e *extentsSink) ClosePath() error { return nil }
