// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"image"
	"math"

	"github.com/gogpu/vg/internal/clip"
	"github.com/gogpu/vg/internal/path"
	"github.com/gogpu/vg/internal/raster"
)

// clearPattern is the transparent source used to clear under unbounded
// operators.
var clearPattern = NewSolidPatternRGBA(0, 0, 0, 0)

func (b *defaultBackend) Paint() Status {
	g := b.gstate
	src := g.preparedSource()
	op := g.reducedOperator()
	return g.target.paint(op, &src, g.drawClip(op, &src))
}

// PaintWithAlpha paints through a uniform alpha. Opaque alpha is a plain
// paint; clear alpha does nothing under operators bounded by the mask.
func (b *defaultBackend) PaintWithAlpha(alpha float64) Status {
	g := b.gstate
	if alphaIsOpaque(alpha) {
		return b.Paint()
	}
	if alphaIsClear(alpha) && g.op.boundedByMask() {
		return StatusSuccess
	}
	m := NewSolidPatternRGBA(0, 0, 0, alpha)
	defer m.Destroy()
	return b.Mask(m)
}

func (b *defaultBackend) Mask(p *Pattern) Status {
	if p == nil {
		return StatusNullPointer
	}
	if st := p.Status(); st.isError() {
		return st
	}
	g := b.gstate
	op := g.reducedOperator()
	if p.typ == PatternTypeSolid {
		a := p.color.A
		if alphaIsClear(a) && op.boundedByMask() {
			return StatusSuccess
		}
		if alphaIsOpaque(a) {
			return b.Paint()
		}
		if g.source.typ == PatternTypeSolid {
			c := g.source.color
			c.A *= a
			s := NewSolidPatternRGBA(c.R, c.G, c.B, c.A)
			defer s.Destroy()
			src := source{pattern: s, matrix: Identity()}
			return g.target.paint(op, &src, g.clip)
		}
	}
	src := g.preparedSource()
	mask := g.pattern(p, g.ctmInverse)
	return g.target.mask(op, &src, &mask, g.drawClip(op, &src))
}

func (b *defaultBackend) Stroke() Status {
	st := b.StrokePreserve()
	b.path.Reset()
	return st
}

func (b *defaultBackend) StrokePreserve() Status {
	g := b.gstate
	if g.style.Width <= 0 && !g.style.Hairline {
		return StatusSuccess
	}
	src := g.preparedSource()
	op := g.reducedOperator()
	return g.target.stroke(op, &src, b.path, &g.style, g.toBackend, g.fromBackend, g.tolerance, g.antialias, g.drawClip(op, &src))
}

func (b *defaultBackend) Fill() Status {
	st := b.FillPreserve()
	b.path.Reset()
	return st
}

func (b *defaultBackend) FillPreserve() Status {
	g := b.gstate
	op := g.reducedOperator()
	if b.path.Empty() {
		if op.boundedByMask() {
			return StatusSuccess
		}
		src := source{pattern: clearPattern, matrix: Identity()}
		return g.target.paint(OperatorClear, &src, g.clip)
	}
	src := g.preparedSource()
	return g.target.fill(op, &src, b.path, g.fillRule, g.tolerance, g.antialias, g.drawClip(op, &src))
}

// userToBackend maps a user point to the pixel space of the path.
func (b *defaultBackend) userToBackend(x, y float64) (float64, float64) {
	return b.gstate.toBackend.TransformPoint(x, y)
}

func (b *defaultBackend) InStroke(x, y float64) (bool, Status) {
	g := b.gstate
	if g.style.Width <= 0 && !g.style.Hairline {
		return false, StatusSuccess
	}
	polys := strokePolygons(b.path, &g.style, g.toBackend, g.fromBackend, g.tolerance)
	px, py := b.userToBackend(x, y)
	return raster.Contains(polys, raster.FillRuleNonZero, px, py), StatusSuccess
}

func (b *defaultBackend) InFill(x, y float64) bool {
	if b.path.Empty() {
		return false
	}
	g := b.gstate
	px, py := b.userToBackend(x, y)
	return raster.Contains(b.path.Flatten(g.tolerance), g.fillRule.raster(), px, py)
}

// polyExtents returns the user-space bounds of polygons in pixel space.
func (b *defaultBackend) polyExtents(lines []path.Polyline) (x1, y1, x2, y2 float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, l := range lines {
		for _, p := range l.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if minX > maxX {
		return 0, 0, 0, 0
	}
	return b.gstate.fromBackend.TransformBounds(minX, minY, maxX, maxY)
}

func (b *defaultBackend) StrokeExtents() (x1, y1, x2, y2 float64, st Status) {
	g := b.gstate
	if g.style.Width <= 0 && !g.style.Hairline {
		return 0, 0, 0, 0, StatusSuccess
	}
	x1, y1, x2, y2 = b.polyExtents(strokePolygons(b.path, &g.style, g.toBackend, g.fromBackend, g.tolerance))
	return x1, y1, x2, y2, StatusSuccess
}

func (b *defaultBackend) FillExtents() (x1, y1, x2, y2 float64) {
	lines := b.path.Flatten(b.gstate.tolerance)
	var closed []path.Polyline
	for _, l := range lines {
		if len(l.Points) > 2 {
			closed = append(closed, l)
		}
	}
	return b.polyExtents(closed)
}

func (b *defaultBackend) Clip() Status {
	st := b.ClipPreserve()
	b.path.Reset()
	return st
}

func (b *defaultBackend) ClipPreserve() Status {
	g := b.gstate
	g.clip = clip.IntersectPath(g.clip, b.path, g.fillRule.raster(), g.tolerance, g.antialias.enabled())
	return StatusSuccess
}

func (b *defaultBackend) ResetClip() Status {
	b.gstate.clip = nil
	return StatusSuccess
}

// InClip reports whether the user point lies inside the clip.
func (b *defaultBackend) InClip(x, y float64) bool {
	px, py := b.userToBackend(x, y)
	return b.gstate.clip.Contains(px, py)
}

// ClipExtents returns the user-space bounds of the clip, limited to the
// target when the target is bounded.
func (b *defaultBackend) ClipExtents() (x1, y1, x2, y2 float64) {
	g := b.gstate
	ext, bounded := g.target.Extents()
	if g.clip.IsAllClipped() {
		return 0, 0, 0, 0
	}
	var r image.Rectangle
	if box, ok := g.clip.Extents(); ok {
		bx1, by1, bx2, by2 := box.FloatBounds()
		if bounded {
			bx1, by1 = math.Max(bx1, float64(ext.Min.X)), math.Max(by1, float64(ext.Min.Y))
			bx2, by2 = math.Min(bx2, float64(ext.Max.X)), math.Min(by2, float64(ext.Max.Y))
			if bx2 <= bx1 || by2 <= by1 {
				return 0, 0, 0, 0
			}
		}
		return g.fromBackend.TransformBounds(bx1, by1, bx2, by2)
	}
	if !bounded {
		r = image.Rect(-unboundedExtent, -unboundedExtent, unboundedExtent, unboundedExtent)
	} else {
		r = ext
	}
	return g.fromBackend.TransformBounds(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
}

// CopyClipRectangleList returns the clip as user-space rectangles. It
// fails with StatusClipNotRepresentable unless the clip is made of boxes
// and the CTM preserves axis alignment.
func (b *defaultBackend) CopyClipRectangleList() ([]Rectangle, Status) {
	g := b.gstate
	if g.clip.IsAllClipped() {
		return []Rectangle{}, StatusSuccess
	}
	var rects []image.Rectangle
	if g.clip == nil {
		ext, bounded := g.target.Extents()
		if !bounded {
			return nil, StatusClipNotRepresentable
		}
		rects = []image.Rectangle{ext}
	} else {
		var err error
		if rects, err = g.clip.RectangleList(); err != nil {
			return nil, StatusOf(err)
		}
	}
	if !g.fromBackend.isAxisAligned() {
		return nil, StatusClipNotRepresentable
	}
	out := make([]Rectangle, len(rects))
	for i, r := range rects {
		x1, y1, x2, y2 := g.fromBackend.TransformBounds(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
		out[i] = Rectangle{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
	}
	return out, StatusSuccess
}
