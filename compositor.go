// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/vg/internal/blend"
	"github.com/gogpu/vg/internal/clip"
	"github.com/gogpu/vg/internal/path"
	"github.com/gogpu/vg/internal/raster"
)

// The image compositor works in three steps: the shape becomes a
// coverage mask over the pixels it may touch, the clip becomes a second
// mask through the surface's incremental Clipper, and the source is
// shaded into a scratch image. blend.Span then combines the three with
// the destination one row at a time.

func (is *imageSurface) paint(op Operator, src *source, c *clip.Clip) (image.Rectangle, Status) {
	return is.composite(op, src, nil, is.rect, c)
}

func (is *imageSurface) mask(op Operator, src, mask *source, c *clip.Clip) (image.Rectangle, Status) {
	r := c.Bounds(is.rect)
	if r.Empty() {
		return image.Rectangle{}, intStatusNothingToDo
	}
	tmp := image.NewRGBA(r)
	if st := shade(tmp, mask, is.owner); st.isError() {
		return image.Rectangle{}, st
	}
	cov := image.NewAlpha(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := tmp.Pix[tmp.PixOffset(r.Min.X, y):][:r.Dx()*4]
		dst := cov.Pix[cov.PixOffset(r.Min.X, y):][:r.Dx()]
		for i := range dst {
			dst[i] = src[i*4+3]
		}
	}
	return is.composite(op, src, cov, r, c)
}

func (is *imageSurface) fill(op Operator, src *source, p *path.Path, rule FillRule, tolerance float64, aa Antialias, c *clip.Clip) (image.Rectangle, Status) {
	if b, ok := p.IsBox(); ok && b.IsIntegral() && op.boundedByMask() {
		return is.composite(op, src, nil, b.Rect(), c)
	}
	return is.fillPolygons(op, src, p.Flatten(tolerance), rule.raster(), aa.enabled(), c)
}

func (is *imageSurface) stroke(op Operator, src *source, p *path.Path, style *StrokeStyle, ctm, ctmInverse Matrix, tolerance float64, aa Antialias, c *clip.Clip) (image.Rectangle, Status) {
	polys := strokePolygons(p, style, ctm, ctmInverse, tolerance)
	return is.fillPolygons(op, src, polys, raster.FillRuleNonZero, aa.enabled(), c)
}

func (is *imageSurface) glyphs(op Operator, src *source, glyphs []Glyph, sf *ScaledFont, c *clip.Clip) (image.Rectangle, Status) {
	p, err := sf.glyphsPath(glyphs)
	if err != nil {
		return image.Rectangle{}, StatusOf(err)
	}
	aa := sf.options.Antialias != AntialiasNone
	return is.fillPolygons(op, src, p.Flatten(defaultTolerance), raster.FillRuleNonZero, aa, c)
}

// fillPolygons rasterizes lines into a coverage mask and composites
// through it. Unbounded operators need coverage over the whole clip.
func (is *imageSurface) fillPolygons(op Operator, src *source, lines []path.Polyline, rule raster.FillRule, aa bool, c *clip.Clip) (image.Rectangle, Status) {
	bounds := is.rect
	if op.boundedByMask() {
		bounds = raster.Bounds(lines).Intersect(bounds)
	}
	bounds = c.Bounds(bounds)
	if bounds.Empty() {
		return image.Rectangle{}, intStatusNothingToDo
	}
	cov := raster.NewMask(bounds, lines, rule, aa)
	return is.composite(op, src, cov, bounds, c)
}

// composite combines src through the coverage cov and the clip c into
// the pixels of bounds. A nil cov means full coverage; otherwise cov must
// cover bounds.
func (is *imageSurface) composite(op Operator, src *source, cov *image.Alpha, bounds image.Rectangle, c *clip.Clip) (image.Rectangle, Status) {
	r := c.Bounds(bounds.Intersect(is.rect))
	if r.Empty() {
		return image.Rectangle{}, intStatusNothingToDo
	}
	cm := is.clipper.Mask(c, r)

	if is.drawSolid(op, src, cov, cm, r) {
		return r, StatusSuccess
	}

	tmp := image.NewRGBA(r)
	if st := shade(tmp, src, is.owner); st.isError() {
		return image.Rectangle{}, st
	}
	w := r.Dx()
	mode := op.mode()
	var row []byte
	if is.alpha != nil {
		row = make([]byte, w*4)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		s := tmp.Pix[tmp.PixOffset(r.Min.X, y):][:w*4]
		var m, cl []byte
		if cov != nil {
			m = cov.Pix[cov.PixOffset(r.Min.X, y):][:w]
		}
		if cm != nil {
			cl = cm.Pix[cm.PixOffset(r.Min.X, y):][:w]
		}
		if is.alpha != nil {
			d := is.alpha.Pix[is.alpha.PixOffset(r.Min.X, y):][:w]
			clear(row)
			for i, a := range d {
				row[i*4+3] = a
			}
			blend.Span(row, s, m, cl, mode)
			for i := range d {
				d[i] = row[i*4+3]
			}
			continue
		}
		d := is.rgba.Pix[is.rgba.PixOffset(r.Min.X, y):][:w*4]
		blend.Span(d, s, m, cl, mode)
		if is.format == FormatRGB24 {
			forceOpaque(d)
		}
	}
	return r, StatusSuccess
}

// drawSolid handles solid OVER, and SOURCE at full coverage, without a
// clip mask through draw.DrawMask. It reports whether it did the work.
func (is *imageSurface) drawSolid(op Operator, src *source, cov, cm *image.Alpha, r image.Rectangle) bool {
	if is.rgba == nil || cm != nil || src.pattern.typ != PatternTypeSolid {
		return false
	}
	var dop draw.Op
	switch op {
	case OperatorOver:
		dop = draw.Over
	case OperatorSource:
		// draw.Src through a mask clears uncovered pixels.
		if cov != nil {
			return false
		}
		dop = draw.Src
	default:
		return false
	}
	u := image.NewUniform(src.pattern.color.premul())
	if cov != nil {
		draw.DrawMask(is.rgba, r, u, image.Point{}, cov, r.Min, dop)
	} else {
		draw.Draw(is.rgba, r, u, image.Point{}, dop)
	}
	if is.format == FormatRGB24 {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			forceOpaque(is.rgba.Pix[is.rgba.PixOffset(r.Min.X, y):][:r.Dx()*4])
		}
	}
	return true
}
