// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"github.com/gogpu/vg/internal/path"
	"github.com/gogpu/vg/internal/stroke"
)

// strokePolygons returns the polygons covering the stroke of p, in the
// pixel space p is stored in. ctm maps user space to that pixel space;
// width, dashes and round joins are measured in user space.
func strokePolygons(p *path.Path, style *StrokeStyle, ctm, ctmInverse Matrix, tolerance float64) []path.Polyline {
	lines := p.Flatten(tolerance)
	if len(lines) == 0 {
		return nil
	}
	if style.Hairline {
		if len(style.Dash) > 0 {
			lines = mapLines(stroke.Dash(mapLines(lines, ctmInverse), style.Dash, style.DashOffset), ctm)
		}
		return stroke.Expand(lines, style.internal(1), tolerance)
	}

	user := mapLines(lines, ctmInverse)
	if len(style.Dash) > 0 {
		user = stroke.Dash(user, style.Dash, style.DashOffset)
	}
	sx, sy := ctm.scaleFactors()
	userTolerance := tolerance
	if s := max(sx, sy); s > 0 {
		userTolerance = tolerance / s
	}
	return mapLines(stroke.Expand(user, style.internal(style.Width), userTolerance), ctm)
}

// mapLines returns lines transformed by m.
func mapLines(lines []path.Polyline, m Matrix) []path.Polyline {
	if m.IsIdentity() {
		return lines
	}
	out := make([]path.Polyline, len(lines))
	for i, l := range lines {
		pts := make([]path.Point, len(l.Points))
		for j, pt := range l.Points {
			pts[j].X, pts[j].Y = m.TransformPoint(pt.X, pt.Y)
		}
		out[i] = path.Polyline{Points: pts, Closed: l.Closed}
	}
	return out
}
