// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// shade fills dst with the colors of src, premultiplied. Pixels the
// source does not reach stay transparent. target is the surface being
// drawn to, passed to raster source callbacks.
func shade(dst *image.RGBA, src *source, target *Surface) Status {
	p := src.pattern
	switch p.typ {
	case PatternTypeSolid:
		draw.Draw(dst, dst.Rect, image.NewUniform(p.color.premul()), image.Point{}, draw.Src)
	case PatternTypeLinear, PatternTypeRadial:
		shadeGradient(dst, p, src.matrix)
	case PatternTypeSurface:
		return shadeSurface(dst, p, p.surface, src.matrix.Multiply(p.surface.device))
	case PatternTypeRasterSource:
		return shadeRasterSource(dst, p, src.matrix, target)
	}
	return StatusSuccess
}

func putPixel(dst *image.RGBA, x, y int, c color.RGBA) {
	i := dst.PixOffset(x, y)
	dst.Pix[i+0] = c.R
	dst.Pix[i+1] = c.G
	dst.Pix[i+2] = c.B
	dst.Pix[i+3] = c.A
}

func shadeGradient(dst *image.RGBA, p *Pattern, m Matrix) {
	if len(p.stops) == 0 {
		return
	}
	if p.degenerate() {
		var c RGBA
		switch p.extend {
		case ExtendNone:
			return
		case ExtendPad:
			c = p.stops[len(p.stops)-1].Color
		default:
			c = p.averageColor()
		}
		draw.Draw(dst, dst.Rect, image.NewUniform(c.premul()), image.Point{}, draw.Src)
		return
	}
	at := p.linearT
	if p.typ == PatternTypeRadial {
		at = p.radialColor
	}
	r := dst.Rect
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			px, py := m.TransformPoint(float64(x)+0.5, float64(y)+0.5)
			if c, ok := at(px, py); ok {
				putPixel(dst, x, y, c.premul())
			}
		}
	}
}

// linearT projects (x, y) onto the gradient line.
func (p *Pattern) linearT(x, y float64) (RGBA, bool) {
	dx, dy := p.x1-p.x0, p.y1-p.y0
	t := ((x-p.x0)*dx + (y-p.y0)*dy) / (dx*dx + dy*dy)
	return p.colorAt(t)
}

// radialColor finds the largest t for which (x, y) lies on the circle
// interpolated between the two gradient circles with a non-negative
// radius.
func (p *Pattern) radialColor(x, y float64) (RGBA, bool) {
	cdx, cdy, dr := p.x1-p.x0, p.y1-p.y0, p.r1-p.r0
	pdx, pdy := x-p.x0, y-p.y0
	a := cdx*cdx + cdy*cdy - dr*dr
	b := pdx*cdx + pdy*cdy + p.r0*dr
	c := pdx*pdx + pdy*pdy - p.r0*p.r0

	try := func(t float64) (RGBA, bool) {
		if p.r0+t*dr < 0 {
			return RGBA{}, false
		}
		return p.colorAt(t)
	}
	if a == 0 {
		if b == 0 {
			return RGBA{}, false
		}
		return try(c / (2 * b))
	}
	disc := b*b - a*c
	if disc < 0 {
		return RGBA{}, false
	}
	s := math.Sqrt(disc)
	t1, t2 := (b+s)/a, (b-s)/a
	if t1 < t2 {
		t1, t2 = t2, t1
	}
	if col, ok := try(t1); ok {
		return col, true
	}
	return try(t2)
}

// averageColor integrates the gradient over [0, 1].
func (p *Pattern) averageColor() RGBA {
	stops := p.stops
	first, last := stops[0], stops[len(stops)-1]
	var sum RGBA
	add := func(c RGBA, w float64) {
		sum.R += c.R * w
		sum.G += c.G * w
		sum.B += c.B * w
		sum.A += c.A * w
	}
	add(first.Color, clamp01(first.Offset))
	for i := 1; i < len(stops); i++ {
		s0, s1 := stops[i-1], stops[i]
		w := (clamp01(s1.Offset) - clamp01(s0.Offset)) / 2
		add(s0.Color, w)
		add(s1.Color, w)
	}
	add(last.Color, 1-clamp01(last.Offset))
	return sum.clamp()
}

// interpolator returns the resampler for a filter.
func interpolator(f Filter) draw.Interpolator {
	switch f {
	case FilterFast, FilterNearest:
		return draw.NearestNeighbor
	case FilterBest:
		return draw.CatmullRom
	}
	return draw.ApproxBiLinear
}

// shadeSurface samples s through m, which maps dst pixels to pixels of s.
func shadeSurface(dst *image.RGBA, p *Pattern, s *Surface, m Matrix) Status {
	if s.status.isError() {
		return s.status
	}
	bounded := true
	ext, ok := s.Extents()
	if !ok {
		bounded = false
	}
	x1, y1, x2, y2 := m.TransformBounds(float64(dst.Rect.Min.X), float64(dst.Rect.Min.Y), float64(dst.Rect.Max.X), float64(dst.Rect.Max.Y))
	want := image.Rect(int(math.Floor(x1))-1, int(math.Floor(y1))-1, int(math.Ceil(x2))+1, int(math.Ceil(y2))+1)
	extend := p.extend
	if !bounded {
		ext = want
		extend = ExtendNone
	} else if extend == ExtendNone {
		want = want.Intersect(ext)
	} else {
		want = ext
	}
	if want.Empty() {
		return StatusSuccess
	}

	img, release, st := s.acquireSourceImage(want)
	if st.isError() {
		return st
	}
	defer release()

	if extend == ExtendNone {
		if tx, ty, ok := m.IsIntegerTranslation(); ok {
			draw.Draw(dst, dst.Rect, img, dst.Rect.Min.Add(image.Pt(tx, ty)), draw.Src)
			return StatusSuccess
		}
		inv, err := m.Invert()
		if err != nil {
			return StatusInvalidMatrix
		}
		sr := img.Bounds().Intersect(ext)
		interpolator(p.filter).Transform(dst, inv.aff3(), img, sr, draw.Src, nil)
		return StatusSuccess
	}

	src := img.SubImage(ext.Intersect(img.Bounds())).(*image.RGBA)
	if src.Rect.Empty() {
		return StatusSuccess
	}
	_, _, aligned := m.IsIntegerTranslation()
	nearest := aligned || p.filter == FilterFast || p.filter == FilterNearest
	r := dst.Rect
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			u, v := m.TransformPoint(float64(x)+0.5, float64(y)+0.5)
			var c color.RGBA
			if nearest {
				c = sampleNearest(src, u, v, extend)
			} else {
				c = sampleBilinear(src, u, v, extend)
			}
			putPixel(dst, x, y, c)
		}
	}
	return StatusSuccess
}

// wrapCoord maps i into [0, n) according to the extend mode.
func wrapCoord(i, n int, e Extend) int {
	switch e {
	case ExtendRepeat:
		i %= n
		if i < 0 {
			i += n
		}
	case ExtendReflect:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
	default:
		i = min(max(i, 0), n-1)
	}
	return i
}

func rgbaAt(img *image.RGBA, x, y int, e Extend) color.RGBA {
	r := img.Rect
	x = r.Min.X + wrapCoord(x-r.Min.X, r.Dx(), e)
	y = r.Min.Y + wrapCoord(y-r.Min.Y, r.Dy(), e)
	return img.RGBAAt(x, y)
}

func sampleNearest(img *image.RGBA, u, v float64, e Extend) color.RGBA {
	return rgbaAt(img, int(math.Floor(u)), int(math.Floor(v)), e)
}

func sampleBilinear(img *image.RGBA, u, v float64, e Extend) color.RGBA {
	u, v = u-0.5, v-0.5
	x0, y0 := math.Floor(u), math.Floor(v)
	fx, fy := u-x0, v-y0
	ix, iy := int(x0), int(y0)
	c00 := rgbaAt(img, ix, iy, e)
	c10 := rgbaAt(img, ix+1, iy, e)
	c01 := rgbaAt(img, ix, iy+1, e)
	c11 := rgbaAt(img, ix+1, iy+1, e)
	mix := func(a, b, c, d uint8) uint8 {
		top := float64(a)*(1-fx) + float64(b)*fx
		bot := float64(c)*(1-fx) + float64(d)*fx
		return uint8(math.Round(top*(1-fy) + bot*fy))
	}
	return color.RGBA{
		R: mix(c00.R, c10.R, c01.R, c11.R),
		G: mix(c00.G, c10.G, c01.G, c11.G),
		B: mix(c00.B, c10.B, c01.B, c11.B),
		A: mix(c00.A, c10.A, c01.A, c11.A),
	}
}

// shadeRasterSource asks the pattern's callbacks for the pixels under
// dst and samples them like a surface pattern.
func shadeRasterSource(dst *image.RGBA, p *Pattern, m Matrix, target *Surface) Status {
	if p.rsAcquire == nil {
		return StatusSuccess
	}
	x1, y1, x2, y2 := m.TransformBounds(float64(dst.Rect.Min.X), float64(dst.Rect.Min.Y), float64(dst.Rect.Max.X), float64(dst.Rect.Max.Y))
	x1, y1 = math.Max(x1, 0), math.Max(y1, 0)
	x2, y2 = math.Min(x2, float64(p.rsWidth)), math.Min(y2, float64(p.rsHeight))
	if p.extend != ExtendNone {
		x1, y1, x2, y2 = 0, 0, float64(p.rsWidth), float64(p.rsHeight)
	}
	if x2 <= x1 || y2 <= y1 {
		return StatusSuccess
	}
	s := p.rsAcquire(p.rsData, target, Rectangle{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1})
	if s == nil {
		return StatusSuccess
	}
	defer func() {
		if p.rsRelease != nil {
			p.rsRelease(p.rsData, s)
		}
	}()
	return shadeSurface(dst, p, s, m.Multiply(s.device))
}
