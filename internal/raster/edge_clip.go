// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"image"

	"github.com/gogpu/vg/internal/path"
)

// clipMargin is how far outside the mask the clip rectangle lies, so the
// edges added along it never touch a sampled pixel.
const clipMargin = 1

// ClipPolygons clips closed polygons to r outset by one pixel.
//
// Each polygon is clipped against the four sides in turn
// (Sutherland-Hodgman). Parts outside are folded onto the rectangle
// edges, which keeps the winding number of every point inside r, so
// nonzero and even-odd coverage inside r is unchanged. Polygons already
// inside are returned as is.
func ClipPolygons(lines []path.Polyline, r image.Rectangle) []path.Polyline {
	x0 := float64(r.Min.X - clipMargin)
	y0 := float64(r.Min.Y - clipMargin)
	x1 := float64(r.Max.X + clipMargin)
	y1 := float64(r.Max.Y + clipMargin)

	var out []path.Polyline
	for _, l := range lines {
		if len(l.Points) < 3 {
			continue
		}
		if inside(l.Points, x0, y0, x1, y1) {
			out = append(out, l)
			continue
		}
		pts := clipSide(l.Points, func(p path.Point) float64 { return p.X - x0 })
		pts = clipSide(pts, func(p path.Point) float64 { return x1 - p.X })
		pts = clipSide(pts, func(p path.Point) float64 { return p.Y - y0 })
		pts = clipSide(pts, func(p path.Point) float64 { return y1 - p.Y })
		if len(pts) >= 3 {
			out = append(out, path.Polyline{Points: pts, Closed: true})
		}
	}
	return out
}

func inside(pts []path.Point, x0, y0, x1, y1 float64) bool {
	for _, p := range pts {
		if p.X < x0 || p.X > x1 || p.Y < y0 || p.Y > y1 {
			return false
		}
	}
	return true
}

// clipSide keeps the part of the closed polygon in where dist >= 0.
func clipSide(in []path.Point, dist func(path.Point) float64) []path.Point {
	if len(in) == 0 {
		return nil
	}
	out := make([]path.Point, 0, len(in)+4)
	prev := in[len(in)-1]
	dp := dist(prev)
	for _, cur := range in {
		dc := dist(cur)
		switch {
		case dc >= 0:
			if dp < 0 {
				out = append(out, prev.Lerp(cur, dp/(dp-dc)))
			}
			out = append(out, cur)
		case dp >= 0:
			out = append(out, prev.Lerp(cur, dp/(dp-dc)))
		}
		prev, dp = cur, dc
	}
	return out
}
