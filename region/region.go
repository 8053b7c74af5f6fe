// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package region implements sets of integer pixel rectangles.
//
// A Region is kept in y-x banded form: horizontal bands that do not
// overlap, each holding sorted, non-touching x spans, with vertically
// adjacent bands coalesced when their spans are identical. Every set
// operation renormalizes, so repeated operations do not grow the
// representation.
//
// Rectangles reports a maximally merged view of the same set: no two
// returned rectangles could be joined into a single rectangle. The view
// is the row-first or column-first decomposition, whichever is smaller.
//
// Regions carry a sticky error. Mutating an errored region is a no-op
// returning its error; combining with an errored argument copies the
// argument's error into the receiver.
package region

import (
	"errors"
	"image"
	"slices"
)

// ErrNoMemory reports that a region could not be allocated.
var ErrNoMemory = errors.New("region: out of memory")

// Overlap is the result of ContainsRectangle.
type Overlap int

const (
	// OverlapIn means the rectangle lies entirely inside the region.
	OverlapIn Overlap = iota
	// OverlapOut means the rectangle lies entirely outside the region.
	OverlapOut
	// OverlapPart means the rectangle is partly inside.
	OverlapPart
)

// String returns the overlap name.
func (o Overlap) String() string {
	switch o {
	case OverlapIn:
		return "In"
	case OverlapOut:
		return "Out"
	case OverlapPart:
		return "Part"
	default:
		return "Unknown"
	}
}

type span struct{ x0, x1 int }

type band struct {
	y0, y1 int
	spans  []span
}

// Region is a set of pixels described by rectangles.
// The zero value is an empty region.
type Region struct {
	err    error
	bands  []band
	merged []image.Rectangle // cached Rectangles view, nil when stale
}

// New returns an empty region.
func New() *Region {
	return &Region{}
}

// NewRectangle returns a region covering r.
func NewRectangle(r image.Rectangle) *Region {
	reg := &Region{}
	r = r.Canon()
	if !r.Empty() {
		reg.bands = []band{{y0: r.Min.Y, y1: r.Max.Y, spans: []span{{r.Min.X, r.Max.X}}}}
	}
	return reg
}

// NewRectangles returns the union of rects.
func NewRectangles(rects ...image.Rectangle) *Region {
	reg := &Region{}
	for _, r := range rects {
		reg.bands = combine(reg.bands, NewRectangle(r).bands, opUnion)
	}
	return reg
}

// NewInError returns an inert region carrying err.
func NewInError(err error) *Region {
	if err == nil {
		err = ErrNoMemory
	}
	return &Region{err: err}
}

// Err returns the region's sticky error, or nil.
func (r *Region) Err() error {
	return r.err
}

// Copy returns an independent copy of r, including its error.
func (r *Region) Copy() *Region {
	c := &Region{err: r.err, bands: make([]band, len(r.bands))}
	for i, b := range r.bands {
		c.bands[i] = band{y0: b.y0, y1: b.y1, spans: slices.Clone(b.spans)}
	}
	return c
}

// IsEmpty reports whether the region contains no pixels.
// An errored region is empty.
func (r *Region) IsEmpty() bool {
	return r.err != nil || len(r.bands) == 0
}

// Extents returns the bounding rectangle of the region.
func (r *Region) Extents() image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	ext := image.Rect(r.bands[0].spans[0].x0, r.bands[0].y0, r.bands[0].spans[0].x1, r.bands[len(r.bands)-1].y1)
	for _, b := range r.bands {
		ext.Min.X = min(ext.Min.X, b.spans[0].x0)
		ext.Max.X = max(ext.Max.X, b.spans[len(b.spans)-1].x1)
	}
	return ext
}

// NumRectangles returns the number of rectangles in the merged view.
func (r *Region) NumRectangles() int {
	return len(r.view())
}

// Rectangle returns rectangle i of the merged view.
func (r *Region) Rectangle(i int) image.Rectangle {
	return r.view()[i]
}

// Rectangles returns the merged view: non-overlapping rectangles sorted
// by top edge then left edge, no two of which could be merged.
func (r *Region) Rectangles() []image.Rectangle {
	return slices.Clone(r.view())
}

func (r *Region) view() []image.Rectangle {
	if r.err != nil {
		return nil
	}
	if r.merged == nil {
		r.merged = mergedView(r.bands)
	}
	return r.merged
}

// mergedView returns the smaller of the row-first and column-first
// decompositions of bands. A shape such as a tall rectangle with a short
// one attached at its side needs three rows but only two columns.
func mergedView(bands []band) []image.Rectangle {
	rows := mergeBands(bands)
	if len(rows) < 3 {
		return rows
	}
	cols := transpose(mergeBands(columnBands(bands)))
	if len(cols) < len(rows) {
		sortScanline(cols)
		return cols
	}
	return rows
}

// columnBands returns the banded form of bands with x and y swapped.
func columnBands(bands []band) []band {
	var out []band
	for _, b := range bands {
		for _, s := range b.spans {
			t := []band{{y0: s.x0, y1: s.x1, spans: []span{{b.y0, b.y1}}}}
			out = combine(out, t, opUnion)
		}
	}
	return out
}

func transpose(rects []image.Rectangle) []image.Rectangle {
	for i, r := range rects {
		rects[i] = image.Rect(r.Min.Y, r.Min.X, r.Max.Y, r.Max.X)
	}
	return rects
}

func sortScanline(rects []image.Rectangle) {
	slices.SortFunc(rects, func(a, b image.Rectangle) int {
		if a.Min.Y != b.Min.Y {
			return a.Min.Y - b.Min.Y
		}
		return a.Min.X - b.Min.X
	})
}

// mergeBands emits rectangles, extending a rectangle downwards while the
// next touching band holds the same span.
func mergeBands(bands []band) []image.Rectangle {
	out := []image.Rectangle{}
	// open maps a span to the index in out of the rectangle ending at the
	// previous band's bottom edge.
	open := map[span]int{}
	prevY1 := 0
	for i, b := range bands {
		next := make(map[span]int, len(b.spans))
		for _, s := range b.spans {
			if idx, ok := open[s]; ok && i > 0 && prevY1 == b.y0 {
				out[idx].Max.Y = b.y1
				next[s] = idx
				continue
			}
			out = append(out, image.Rect(s.x0, b.y0, s.x1, b.y1))
			next[s] = len(out) - 1
		}
		open = next
		prevY1 = b.y1
	}
	sortScanline(out)
	return out
}

func (r *Region) set(bands []band) {
	r.bands = bands
	r.merged = nil
}

// binary applies op between r and o following the error rule.
func (r *Region) binary(o *Region, op setOp) error {
	if r.err != nil {
		return r.err
	}
	if o.err != nil {
		r.err = o.err
		r.set(nil)
		return r.err
	}
	r.set(combine(r.bands, o.bands, op))
	return nil
}

// Union sets r to r ∪ o.
func (r *Region) Union(o *Region) error { return r.binary(o, opUnion) }

// UnionRectangle sets r to r ∪ rect.
func (r *Region) UnionRectangle(rect image.Rectangle) error {
	return r.binary(NewRectangle(rect), opUnion)
}

// Intersect sets r to r ∩ o.
func (r *Region) Intersect(o *Region) error { return r.binary(o, opIntersect) }

// IntersectRectangle sets r to r ∩ rect.
func (r *Region) IntersectRectangle(rect image.Rectangle) error {
	return r.binary(NewRectangle(rect), opIntersect)
}

// Subtract sets r to r − o.
func (r *Region) Subtract(o *Region) error { return r.binary(o, opSubtract) }

// SubtractRectangle sets r to r − rect.
func (r *Region) SubtractRectangle(rect image.Rectangle) error {
	return r.binary(NewRectangle(rect), opSubtract)
}

// Xor sets r to the symmetric difference of r and o.
func (r *Region) Xor(o *Region) error { return r.binary(o, opXor) }

// XorRectangle sets r to the symmetric difference of r and rect.
func (r *Region) XorRectangle(rect image.Rectangle) error {
	return r.binary(NewRectangle(rect), opXor)
}

// Translate moves the region by (dx, dy).
func (r *Region) Translate(dx, dy int) {
	if r.err != nil || (dx == 0 && dy == 0) {
		return
	}
	for i := range r.bands {
		b := &r.bands[i]
		b.y0 += dy
		b.y1 += dy
		for j := range b.spans {
			b.spans[j].x0 += dx
			b.spans[j].x1 += dx
		}
	}
	r.merged = nil
}

// ContainsRectangle reports whether rect lies inside, outside or across
// the region boundary.
func (r *Region) ContainsRectangle(rect image.Rectangle) Overlap {
	rect = rect.Canon()
	if r.IsEmpty() || rect.Empty() {
		return OverlapOut
	}
	inter := combine(r.bands, NewRectangle(rect).bands, opIntersect)
	if len(inter) == 0 {
		return OverlapOut
	}
	if area(inter) == rect.Dx()*rect.Dy() {
		return OverlapIn
	}
	return OverlapPart
}

// ContainsPoint reports whether pixel (x, y) is in the region.
func (r *Region) ContainsPoint(x, y int) bool {
	if r.err != nil {
		return false
	}
	for _, b := range r.bands {
		if y < b.y0 {
			return false
		}
		if y >= b.y1 {
			continue
		}
		for _, s := range b.spans {
			if x >= s.x0 && x < s.x1 {
				return true
			}
		}
		return false
	}
	return false
}

// Equal reports whether r and o cover the same pixels. Errored regions
// are never equal to anything.
func (r *Region) Equal(o *Region) bool {
	if r.err != nil || o.err != nil {
		return false
	}
	return slices.EqualFunc(r.bands, o.bands, func(a, b band) bool {
		return a.y0 == b.y0 && a.y1 == b.y1 && slices.Equal(a.spans, b.spans)
	})
}

func area(bands []band) int {
	n := 0
	for _, b := range bands {
		for _, s := range b.spans {
			n += (s.x1 - s.x0) * (b.y1 - b.y0)
		}
	}
	return n
}
