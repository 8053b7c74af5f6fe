// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

// NewPath clears the current path and the current point.
func (c *Context) NewPath() { c.do(Backend.NewPath) }

// NewSubPath clears the current point without adding a segment. A
// following LineTo or Arc starts a new subpath.
func (c *Context) NewSubPath() { c.do(Backend.NewSubPath) }

// MoveTo starts a new subpath at (x, y).
func (c *Context) MoveTo(x, y float64) {
	c.do(func(b Backend) Status { return b.MoveTo(x, y) })
}

// LineTo adds a line to (x, y). Without a current point it behaves as
// MoveTo.
func (c *Context) LineTo(x, y float64) {
	c.do(func(b Backend) Status { return b.LineTo(x, y) })
}

// CurveTo adds a cubic Bézier spline with control points (x1, y1) and
// (x2, y2) ending at (x3, y3).
func (c *Context) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	c.do(func(b Backend) Status { return b.CurveTo(x1, y1, x2, y2, x3, y3) })
}

// Arc adds a circular arc of the given radius around (xc, yc), swept
// in the direction of increasing angles from angle1 to angle2. When
// angle2 is less than angle1 it is advanced by whole turns. A line joins
// the current point to the start of the arc.
//
// A radius of zero or less adds a degenerate line to the centre so that
// joins and caps still see the point.
func (c *Context) Arc(xc, yc, radius, angle1, angle2 float64) {
	angle2 = normalizeForward(angle1, angle2)
	c.do(func(b Backend) Status { return b.Arc(xc, yc, radius, angle1, angle2, true) })
}

// ArcNegative is Arc swept in the direction of decreasing angles.
func (c *Context) ArcNegative(xc, yc, radius, angle1, angle2 float64) {
	angle2 = normalizeBackward(angle1, angle2)
	c.do(func(b Backend) Status { return b.Arc(xc, yc, radius, angle1, angle2, false) })
}

// ArcTo adds an arc of the given radius tangent to the line from the
// current point to (x1, y1) and to the line from (x1, y1) to (x2, y2).
// Backends without ArcTo support record StatusNotSupported.
func (c *Context) ArcTo(x1, y1, x2, y2, radius float64) {
	c.do(func(b Backend) Status {
		ab, ok := b.(ArcToBackend)
		if !ok {
			return StatusNotSupported
		}
		return ab.ArcTo(x1, y1, x2, y2, radius)
	})
}

// RelMoveTo is MoveTo relative to the current point. Without a current
// point it records StatusNoCurrentPoint.
func (c *Context) RelMoveTo(dx, dy float64) {
	c.do(func(b Backend) Status { return b.RelMoveTo(dx, dy) })
}

// RelLineTo is LineTo relative to the current point.
func (c *Context) RelLineTo(dx, dy float64) {
	c.do(func(b Backend) Status { return b.RelLineTo(dx, dy) })
}

// RelCurveTo is CurveTo with all points relative to the current point.
func (c *Context) RelCurveTo(dx1, dy1, dx2, dy2, dx3, dy3 float64) {
	c.do(func(b Backend) Status { return b.RelCurveTo(dx1, dy1, dx2, dy2, dx3, dy3) })
}

// Rectangle adds a closed rectangular subpath.
func (c *Context) Rectangle(x, y, width, height float64) {
	c.do(func(b Backend) Status { return b.Rectangle(x, y, width, height) })
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() { c.do(Backend.ClosePath) }

// PathExtents returns the user-space bounds of the current path,
// ignoring stroke parameters.
func (c *Context) PathExtents() (x1, y1, x2, y2 float64) {
	if !c.ok() {
		return 0, 0, 0, 0
	}
	return c.backend.PathExtents()
}

// HasCurrentPoint reports whether the path has a current point.
func (c *Context) HasCurrentPoint() bool {
	return c.ok() && c.backend.HasCurrentPoint()
}

// CurrentPoint returns the current point in user space, or (0, 0)
// without one.
func (c *Context) CurrentPoint() (x, y float64) {
	if !c.ok() {
		return 0, 0
	}
	return c.backend.CurrentPoint()
}

// CopyPath returns the current path in user space. On a context in
// error the returned path carries the error.
func (c *Context) CopyPath() *Path {
	if !c.ok() {
		return pathInError(c.status)
	}
	return c.backend.CopyPath()
}

// CopyPathFlat is CopyPath with curves flattened to lines within the
// tolerance.
func (c *Context) CopyPathFlat() *Path {
	if !c.ok() {
		return pathInError(c.status)
	}
	return c.backend.CopyPathFlat()
}

// AppendPath appends p, in user space, to the current path. A path with
// a status records that status; malformed data records
// StatusInvalidPathData.
func (c *Context) AppendPath(p *Path) {
	if p == nil {
		c.setError(StatusNullPointer)
		return
	}
	if p.Status.isError() {
		c.setError(p.Status)
		return
	}
	c.do(func(b Backend) Status { return b.AppendPath(p) })
}
