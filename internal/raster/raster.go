// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster converts flattened paths into coverage masks.
//
// Polygons are clipped to the mask rectangle before scan conversion.
//
// Antialiased nonzero fills go through golang.org/x/image/vector, which
// computes exact signed-area coverage. Even-odd fills and aliased fills
// use the scanline sampler in this package: aliased fills sample each
// pixel centre once, antialiased even-odd fills average several
// sub-scanlines with exact horizontal span coverage.
package raster

import (
	"image"
	"math"
	"slices"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/vg/internal/path"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// subScanlines is the number of samples per pixel row for antialiased
// scanline fills.
const subScanlines = 5

func (r FillRule) inside(winding int) bool {
	if r == FillRuleEvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

// Fill rasterizes lines as closed polygons into dst, replacing its
// contents. Coordinates are in dst's pixel space; polygons are clipped to
// dst's bounds first, so far-off vertices keep full precision.
func Fill(dst *image.Alpha, lines []path.Polyline, rule FillRule, antialias bool) {
	clear(dst.Pix)
	b := dst.Rect
	if b.Empty() || len(lines) == 0 {
		return
	}
	lines = ClipPolygons(lines, b)
	if len(lines) == 0 {
		return
	}
	if antialias && rule == FillRuleNonZero {
		fillVector(dst, lines)
		return
	}
	fillScanline(dst, buildEdges(lines), rule, antialias)
}

// NewMask allocates a mask covering bounds and fills lines into it.
func NewMask(bounds image.Rectangle, lines []path.Polyline, rule FillRule, antialias bool) *image.Alpha {
	m := image.NewAlpha(bounds)
	Fill(m, lines, rule, antialias)
	return m
}

func fillVector(dst *image.Alpha, lines []path.Polyline) {
	b := dst.Rect
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Src
	ox, oy := float64(b.Min.X), float64(b.Min.Y)
	for _, l := range lines {
		if len(l.Points) < 2 {
			continue
		}
		p0 := l.Points[0]
		z.MoveTo(float32(p0.X-ox), float32(p0.Y-oy))
		for _, p := range l.Points[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}
	z.Draw(dst, b, image.Opaque, image.Point{})
}

// edge is a non-horizontal polygon edge with y0 < y1.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dir    int // +1 for downward edges, -1 for upward
}

func (e edge) xAt(y float64) float64 {
	return e.x0 + (y-e.y0)*(e.x1-e.x0)/(e.y1-e.y0)
}

func buildEdges(lines []path.Polyline) []edge {
	var edges []edge
	for _, l := range lines {
		n := len(l.Points)
		if n < 2 {
			continue
		}
		for i := range n {
			p0 := l.Points[i]
			p1 := l.Points[(i+1)%n]
			if p0.Y == p1.Y {
				continue
			}
			if p0.Y < p1.Y {
				edges = append(edges, edge{p0.X, p0.Y, p1.X, p1.Y, 1})
			} else {
				edges = append(edges, edge{p1.X, p1.Y, p0.X, p0.Y, -1})
			}
		}
	}
	return edges
}

type crossing struct {
	x   float64
	dir int
}

// spans returns the inside intervals of the scanline at y.
func spans(edges []edge, y float64, rule FillRule, buf []crossing) ([][2]float64, []crossing) {
	buf = buf[:0]
	for _, e := range edges {
		if e.y0 <= y && y < e.y1 {
			buf = append(buf, crossing{e.xAt(y), e.dir})
		}
	}
	if len(buf) < 2 {
		return nil, buf
	}
	slices.SortFunc(buf, func(a, b crossing) int {
		switch {
		case a.x < b.x:
			return -1
		case a.x > b.x:
			return 1
		}
		return 0
	})

	var out [][2]float64
	winding := 0
	for i, c := range buf {
		was := rule.inside(winding)
		winding += c.dir
		now := rule.inside(winding)
		if !was && now {
			out = append(out, [2]float64{c.x, c.x})
		} else if was && !now && len(out) > 0 {
			out[len(out)-1][1] = buf[i].x
		}
	}
	return out, buf
}

func fillScanline(dst *image.Alpha, edges []edge, rule FillRule, antialias bool) {
	if len(edges) == 0 {
		return
	}
	b := dst.Rect
	w := b.Dx()

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, e := range edges {
		minY = math.Min(minY, e.y0)
		maxY = math.Max(maxY, e.y1)
	}
	yStart := max(b.Min.Y, int(math.Floor(minY)))
	yEnd := min(b.Max.Y, int(math.Ceil(maxY)))

	var buf []crossing
	acc := make([]float64, w+1)
	for y := yStart; y < yEnd; y++ {
		row := dst.Pix[(y-b.Min.Y)*dst.Stride:]
		if !antialias {
			var ss [][2]float64
			ss, buf = spans(edges, float64(y)+0.5, rule, buf)
			for _, s := range ss {
				x0 := max(b.Min.X, int(math.Ceil(s[0]-0.5)))
				x1 := min(b.Max.X, int(math.Ceil(s[1]-0.5)))
				for x := x0; x < x1; x++ {
					row[x-b.Min.X] = 0xff
				}
			}
			continue
		}

		clear(acc)
		for k := range subScanlines {
			sy := float64(y) + (float64(k)+0.5)/subScanlines
			var ss [][2]float64
			ss, buf = spans(edges, sy, rule, buf)
			for _, s := range ss {
				accumulateSpan(acc, s[0]-float64(b.Min.X), s[1]-float64(b.Min.X))
			}
		}
		for x := range w {
			v := acc[x] / subScanlines
			if v > 0 {
				row[x] = uint8(math.Min(255, math.Round(v*255)))
			}
		}
	}
}

// accumulateSpan adds exact horizontal coverage of [x0, x1) to acc.
func accumulateSpan(acc []float64, x0, x1 float64) {
	w := float64(len(acc) - 1)
	x0 = math.Max(0, math.Min(w, x0))
	x1 = math.Max(0, math.Min(w, x1))
	if x1 <= x0 {
		return
	}
	i0, i1 := int(x0), int(x1)
	if i0 == i1 {
		acc[i0] += x1 - x0
		return
	}
	acc[i0] += float64(i0+1) - x0
	for i := i0 + 1; i < i1; i++ {
		acc[i]++
	}
	if i1 < len(acc) {
		acc[i1] += x1 - float64(i1)
	}
}

// Contains reports whether the point (x, y) is inside the polygons
// under rule.
func Contains(lines []path.Polyline, rule FillRule, x, y float64) bool {
	winding := 0
	for _, e := range buildEdges(lines) {
		if e.y0 <= y && y < e.y1 && e.xAt(y) > x {
			winding += e.dir
		}
	}
	return rule.inside(winding)
}

// Bounds returns the integer bounds of lines.
func Bounds(lines []path.Polyline) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, l := range lines {
		for _, p := range l.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if minX > maxX {
		return image.Rectangle{}
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}
