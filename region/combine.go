// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package region

import (
	"slices"
)

type setOp func(inA, inB bool) bool

func opUnion(a, b bool) bool     { return a || b }
func opIntersect(a, b bool) bool { return a && b }
func opSubtract(a, b bool) bool  { return a && !b }
func opXor(a, b bool) bool       { return a != b }

// combine evaluates op over two banded inputs and returns a normalized
// banded result.
func combine(a, b []band, op setOp) []band {
	ys := make([]int, 0, 2*(len(a)+len(b)))
	for _, bd := range a {
		ys = append(ys, bd.y0, bd.y1)
	}
	for _, bd := range b {
		ys = append(ys, bd.y0, bd.y1)
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)

	var out []band
	ia, ib := 0, 0
	for i := 0; i+1 < len(ys); i++ {
		y0, y1 := ys[i], ys[i+1]
		for ia < len(a) && a[ia].y1 <= y0 {
			ia++
		}
		for ib < len(b) && b[ib].y1 <= y0 {
			ib++
		}
		var sa, sb []span
		if ia < len(a) && a[ia].y0 <= y0 {
			sa = a[ia].spans
		}
		if ib < len(b) && b[ib].y0 <= y0 {
			sb = b[ib].spans
		}
		spans := combineSpans(sa, sb, op)
		if len(spans) == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].y1 == y0 && slices.Equal(out[n-1].spans, spans) {
			out[n-1].y1 = y1
			continue
		}
		out = append(out, band{y0: y0, y1: y1, spans: spans})
	}
	return out
}

// combineSpans evaluates op over two sorted span lists and merges
// touching output spans.
func combineSpans(a, b []span, op setOp) []span {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	xs := make([]int, 0, 2*(len(a)+len(b)))
	for _, s := range a {
		xs = append(xs, s.x0, s.x1)
	}
	for _, s := range b {
		xs = append(xs, s.x0, s.x1)
	}
	slices.Sort(xs)
	xs = slices.Compact(xs)

	var out []span
	ia, ib := 0, 0
	for i := 0; i+1 < len(xs); i++ {
		x0, x1 := xs[i], xs[i+1]
		for ia < len(a) && a[ia].x1 <= x0 {
			ia++
		}
		for ib < len(b) && b[ib].x1 <= x0 {
			ib++
		}
		inA := ia < len(a) && a[ia].x0 <= x0
		inB := ib < len(b) && b[ib].x0 <= x0
		if !op(inA, inB) {
			continue
		}
		if n := len(out); n > 0 && out[n-1].x1 == x0 {
			out[n-1].x1 = x1
			continue
		}
		out = append(out, span{x0, x1})
	}
	return out
}
