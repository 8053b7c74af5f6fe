// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"math"

	"github.com/gogpu/vg/internal/path"
)

// Dash splits lines according to the on/off pattern dashes starting at
// offset. An odd-length pattern is used twice. Zero-length "on" entries
// produce degenerate polylines, which Expand draws as dots for round and
// square caps.
//
// The caller validates the pattern; Dash returns lines unchanged when the
// pattern has no positive total length.
func Dash(lines []path.Polyline, dashes []float64, offset float64) []path.Polyline {
	pattern := dashes
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), dashes...), dashes...)
	}
	total := 0.0
	for _, d := range pattern {
		total += d
	}
	if total <= 0 || len(pattern) == 0 {
		return lines
	}

	var out []path.Polyline
	for _, l := range lines {
		out = dashPolyline(out, l, pattern, total, offset)
	}
	return out
}

type dasher struct {
	pattern []float64
	idx     int
	remain  float64
	on      bool
}

func newDasher(pattern []float64, total, offset float64) dasher {
	offset = math.Mod(offset, total)
	if offset < 0 {
		offset += total
	}
	d := dasher{pattern: pattern, on: true}
	for offset > 0 && offset >= pattern[d.idx] {
		offset -= pattern[d.idx]
		d.advance()
	}
	d.remain = pattern[d.idx] - offset
	return d
}

func (d *dasher) advance() {
	d.idx = (d.idx + 1) % len(d.pattern)
	d.on = !d.on
}

func dashPolyline(out []path.Polyline, l path.Polyline, pattern []float64, total, offset float64) []path.Polyline {
	pts := l.Points
	if l.Closed && len(pts) > 1 {
		pts = append(append([]Point(nil), pts...), pts[0])
	}
	if len(pts) == 0 {
		return out
	}

	d := newDasher(pattern, total, offset)
	startsOn := d.on
	var cur []Point
	var pieces []path.Polyline
	if d.on {
		cur = []Point{pts[0]}
	}

	flushOn := func() {
		if len(cur) > 0 {
			pieces = append(pieces, path.Polyline{Points: cur})
		}
		cur = nil
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := a.Distance(b)
		pos := 0.0
		for segLen-pos > d.remain {
			pos += d.remain
			p := a.Lerp(b, pos/segLen)
			if d.on {
				cur = append(cur, p)
				flushOn()
			} else {
				cur = []Point{p}
			}
			d.advance()
			d.remain = d.pattern[d.idx]
		}
		d.remain -= segLen - pos
		if d.on {
			cur = append(cur, b)
		}
	}
	endsOn := d.on
	if d.on {
		flushOn()
	}

	// A closed path that is "on" at both ends joins its first and last
	// dashes into one.
	if l.Closed && startsOn && endsOn && len(pieces) > 1 {
		first := pieces[0]
		last := pieces[len(pieces)-1]
		joined := append(last.Points, first.Points[1:]...)
		pieces = append([]path.Polyline{{Points: joined}}, pieces[1:len(pieces)-1]...)
	}
	return append(out, pieces...)
}
