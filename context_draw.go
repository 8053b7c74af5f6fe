// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

// Paint paints the source everywhere inside the clip.
func (c *Context) Paint() { c.do(Backend.Paint) }

// PaintWithAlpha paints the source through a uniform alpha.
func (c *Context) PaintWithAlpha(alpha float64) {
	c.do(func(b Backend) Status { return b.PaintWithAlpha(alpha) })
}

// Mask paints the source using the alpha of p as mask.
func (c *Context) Mask(p *Pattern) {
	c.do(func(b Backend) Status { return b.Mask(p) })
}

// MaskSurface paints the source using the alpha of s, placed at (x, y)
// in user space, as mask.
func (c *Context) MaskSurface(s *Surface, x, y float64) {
	if !c.ok() {
		return
	}
	p := NewSurfacePattern(s)
	defer p.Destroy()
	p.SetMatrix(Translate(-x, -y))
	c.Mask(p)
}

// Stroke strokes the current path with the stroke parameters and clears
// the path.
func (c *Context) Stroke() { c.do(Backend.Stroke) }

// StrokePreserve is Stroke keeping the path.
func (c *Context) StrokePreserve() { c.do(Backend.StrokePreserve) }

// Fill fills the current path with the fill rule and clears the path.
// Open subpaths are closed implicitly.
func (c *Context) Fill() { c.do(Backend.Fill) }

// FillPreserve is Fill keeping the path.
func (c *Context) FillPreserve() { c.do(Backend.FillPreserve) }

// InStroke reports whether the user point (x, y) would be painted by
// Stroke. The clip is ignored.
func (c *Context) InStroke(x, y float64) bool {
	if !c.ok() {
		return false
	}
	in, st := c.backend.InStroke(x, y)
	c.setError(st)
	return in
}

// InFill reports whether the user point (x, y) would be painted by Fill.
// The clip is ignored.
func (c *Context) InFill(x, y float64) bool {
	return c.ok() && c.backend.InFill(x, y)
}

// StrokeExtents returns the user-space bounds of the area Stroke would
// cover, ignoring the clip.
func (c *Context) StrokeExtents() (x1, y1, x2, y2 float64) {
	if !c.ok() {
		return 0, 0, 0, 0
	}
	x1, y1, x2, y2, st := c.backend.StrokeExtents()
	c.setError(st)
	return x1, y1, x2, y2
}

// FillExtents returns the user-space bounds of the area Fill would
// cover, ignoring the clip.
func (c *Context) FillExtents() (x1, y1, x2, y2 float64) {
	if !c.ok() {
		return 0, 0, 0, 0
	}
	return c.backend.FillExtents()
}

// Clip intersects the clip with the current path and clears the path.
func (c *Context) Clip() { c.do(Backend.Clip) }

// ClipPreserve is Clip keeping the path.
func (c *Context) ClipPreserve() { c.do(Backend.ClipPreserve) }

// ResetClip removes all clipping.
func (c *Context) ResetClip() { c.do(Backend.ResetClip) }

// InClip reports whether the user point (x, y) is visible through the
// clip.
func (c *Context) InClip(x, y float64) bool {
	return c.ok() && c.backend.InClip(x, y)
}

// ClipExtents returns the user-space bounds of the visible area.
func (c *Context) ClipExtents() (x1, y1, x2, y2 float64) {
	if !c.ok() {
		return 0, 0, 0, 0
	}
	return c.backend.ClipExtents()
}

// CopyClipRectangleList returns the clip as a list of user-space
// rectangles. A clip that is not a union of pixel-aligned rectangles in
// user space yields StatusClipNotRepresentable; that error is returned
// but not recorded on c.
func (c *Context) CopyClipRectangleList() ([]Rectangle, error) {
	if !c.ok() {
		return nil, c.status
	}
	rects, st := c.backend.CopyClipRectangleList()
	if st == StatusClipNotRepresentable {
		return nil, st
	}
	if st.isError() {
		return nil, c.setError(st)
	}
	return rects, nil
}
