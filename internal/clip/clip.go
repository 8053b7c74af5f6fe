// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package clip implements immutable device-space clip regions.
//
// A Clip is the intersection of a list of disjoint boxes and a chain of
// paths. Rectangular paths fold into the box list, which is exact; any
// other path becomes a new chain node that is rasterized when a mask is
// needed. A nil *Clip means "no clipping". Clips are never mutated once
// built, so they can be shared freely between saved graphics states.
package clip

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/vg/internal/path"
	"github.com/gogpu/vg/internal/raster"
)

// ErrNotRepresentable is returned by RectangleList when the clip cannot be
// expressed as a list of integer rectangles.
var ErrNotRepresentable = errors.New("clip: not representable as rectangles")

// Path is one node of a clip's path chain.
type Path struct {
	path      *path.Path
	fillRule  raster.FillRule
	tolerance float64
	antialias bool
	extents   path.Box
	prev      *Path
}

// Polylines returns the flattened node geometry in device space.
func (p *Path) Polylines() []path.Polyline {
	return p.path.Flatten(p.tolerance)
}

// Clip is an immutable clip region.
type Clip struct {
	boxes      []path.Box
	chain      *Path
	extents    path.Box
	allClipped bool
}

var allClipped = &Clip{allClipped: true}

// AllClipped returns the clip through which nothing is visible.
func AllClipped() *Clip {
	return allClipped
}

// IsAllClipped reports whether nothing is visible through c.
// The nil clip is never all-clipped.
func (c *Clip) IsAllClipped() bool {
	return c != nil && c.allClipped
}

// Extents returns the device-space bounds of c. The nil clip has no
// bounds and reports false.
func (c *Clip) Extents() (path.Box, bool) {
	if c == nil {
		return path.Box{}, false
	}
	return c.extents, true
}

// Boxes returns the box list of c. The slice must not be modified.
func (c *Clip) Boxes() []path.Box {
	if c == nil {
		return nil
	}
	return c.boxes
}

// Chain returns the most recent path node or nil.
func (c *Clip) Chain() *Path {
	if c == nil {
		return nil
	}
	return c.chain
}

// IsRegion reports whether c is made of integer boxes only.
func (c *Clip) IsRegion() bool {
	if c == nil || c.allClipped {
		return true
	}
	if c.chain != nil {
		return false
	}
	for _, b := range c.boxes {
		if !b.IsIntegral() {
			return false
		}
	}
	return true
}

// IntersectBox returns c ∩ b.
func IntersectBox(c *Clip, b path.Box) *Clip {
	return IntersectBoxes(c, []path.Box{b})
}

// IntersectRectangle returns c ∩ r.
func IntersectRectangle(c *Clip, r image.Rectangle) *Clip {
	return IntersectBox(c, path.BoxFromRect(r))
}

// IntersectBoxes returns c ∩ (union of boxes). The boxes must be
// pairwise disjoint.
func IntersectBoxes(c *Clip, boxes []path.Box) *Clip {
	if c.IsAllClipped() {
		return c
	}
	var out []path.Box
	if c == nil || len(c.boxes) == 0 {
		for _, b := range boxes {
			if !b.Empty() {
				out = append(out, b)
			}
		}
	} else {
		for _, a := range c.boxes {
			for _, b := range boxes {
				if i := a.Intersect(b); !i.Empty() {
					out = append(out, i)
				}
			}
		}
	}
	if len(out) == 0 {
		return allClipped
	}

	n := &Clip{boxes: out}
	if c != nil {
		n.chain = c.chain
	}
	return n.finish()
}

// IntersectPath returns c ∩ p. p is in device space and is copied.
// An aliased rectangle is snapped to whole pixels before folding.
func IntersectPath(c *Clip, p *path.Path, rule raster.FillRule, tolerance float64, antialias bool) *Clip {
	if c.IsAllClipped() {
		return c
	}
	if b, ok := p.IsBox(); ok {
		if !antialias {
			b = snap(b)
		}
		return IntersectBox(c, b)
	}
	ext, ok := p.Extents()
	if !ok || ext.Empty() {
		return allClipped
	}

	n := &Clip{chain: &Path{
		path:      p.Copy(),
		fillRule:  rule,
		tolerance: tolerance,
		antialias: antialias,
		extents:   ext,
	}}
	if c != nil {
		n.boxes = c.boxes
		n.chain.prev = c.chain
	}
	return n.finish()
}

// finish computes the extents and collapses empty results.
func (c *Clip) finish() *Clip {
	var ext path.Box
	first := true
	for _, b := range c.boxes {
		if first {
			ext, first = b, false
			continue
		}
		ext = ext.Union(b)
	}
	for n := c.chain; n != nil; n = n.prev {
		if first {
			ext, first = n.extents, false
			continue
		}
		ext = ext.Intersect(n.extents)
	}
	if ext.Empty() {
		return allClipped
	}
	c.extents = ext
	return c
}

func snap(b path.Box) path.Box {
	r := func(v fixed.Int26_6) fixed.Int26_6 { return (v + 32) &^ 63 }
	return path.Box{
		P1: fixed.Point26_6{X: r(b.P1.X), Y: r(b.P1.Y)},
		P2: fixed.Point26_6{X: r(b.P2.X), Y: r(b.P2.Y)},
	}
}

// Translate returns c moved by (dx, dy).
func (c *Clip) Translate(dx, dy fixed.Int26_6) *Clip {
	if c == nil || c.allClipped || (dx == 0 && dy == 0) {
		return c
	}
	n := &Clip{extents: c.extents.Translate(dx, dy)}
	if len(c.boxes) > 0 {
		n.boxes = make([]path.Box, len(c.boxes))
		for i, b := range c.boxes {
			n.boxes[i] = b.Translate(dx, dy)
		}
	}
	n.chain = translateChain(c.chain, dx, dy)
	return n
}

func translateChain(p *Path, dx, dy fixed.Int26_6) *Path {
	if p == nil {
		return nil
	}
	q := *p
	q.path = p.path.Copy()
	q.path.Translate(dx, dy)
	q.extents = p.extents.Translate(dx, dy)
	q.prev = translateChain(p.prev, dx, dy)
	return &q
}

// Equal reports whether a and b are known to describe the same clip:
// identical values, or identical box lists sharing one path chain.
// Clips with equal area but different histories may compare unequal.
func Equal(a, b *Clip) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.allClipped || b.allClipped {
		return a.allClipped == b.allClipped
	}
	if a.chain != b.chain || len(a.boxes) != len(b.boxes) {
		return false
	}
	for i := range a.boxes {
		if a.boxes[i] != b.boxes[i] {
			return false
		}
	}
	return true
}

// Contains reports whether the device point (x, y) is visible through c.
func (c *Clip) Contains(x, y float64) bool {
	if c == nil {
		return true
	}
	if c.allClipped {
		return false
	}
	if len(c.boxes) > 0 {
		in := false
		for _, b := range c.boxes {
			if b.Contains(x, y) {
				in = true
				break
			}
		}
		if !in {
			return false
		}
	}
	for n := c.chain; n != nil; n = n.prev {
		if !raster.Contains(n.Polylines(), n.fillRule, x, y) {
			return false
		}
	}
	return true
}

// ContainsRectangle reports whether r is entirely visible through a
// single box of c without any path restriction.
func (c *Clip) ContainsRectangle(r image.Rectangle) bool {
	if c == nil {
		return true
	}
	if c.allClipped || c.chain != nil {
		return false
	}
	rb := path.BoxFromRect(r)
	for _, b := range c.boxes {
		if b.Intersect(rb) == rb {
			return true
		}
	}
	return false
}

// RectangleList returns the integer rectangles making up c.
// It fails with ErrNotRepresentable for the nil clip, for clips with a
// path chain and for boxes that are not pixel aligned.
func (c *Clip) RectangleList() ([]image.Rectangle, error) {
	if c == nil {
		return nil, ErrNotRepresentable
	}
	if c.allClipped {
		return []image.Rectangle{}, nil
	}
	if !c.IsRegion() {
		return nil, ErrNotRepresentable
	}
	out := make([]image.Rectangle, len(c.boxes))
	for i, b := range c.boxes {
		out[i] = b.Rect()
	}
	return out, nil
}

// Bounds returns the pixel bounds of c intersected with limit.
func (c *Clip) Bounds(limit image.Rectangle) image.Rectangle {
	if c == nil {
		return limit
	}
	if c.allClipped {
		return image.Rectangle{}
	}
	return c.extents.RoundOut().Intersect(limit)
}

// coverage helpers below work on 0-255 alpha values.

func mul8(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 128
	return uint8((t + t>>8) >> 8)
}

// fillBoxes writes the exact coverage of boxes into dst.
func fillBoxes(dst *image.Alpha, boxes []path.Box) {
	clear(dst.Pix)
	r := dst.Rect
	for _, b := range boxes {
		x1, y1, x2, y2 := b.FloatBounds()
		pr := b.RoundOut().Intersect(r)
		for y := pr.Min.Y; y < pr.Max.Y; y++ {
			cy := overlap(y1, y2, float64(y))
			row := dst.Pix[(y-r.Min.Y)*dst.Stride:]
			for x := pr.Min.X; x < pr.Max.X; x++ {
				cv := cy * overlap(x1, x2, float64(x))
				v := uint8(math.Round(cv * 255))
				i := x - r.Min.X
				if int(row[i])+int(v) > 255 {
					row[i] = 255
				} else {
					row[i] += v
				}
			}
		}
	}
}

// overlap returns the length of [a, b) ∩ [p, p+1).
func overlap(a, b, p float64) float64 {
	return math.Max(0, math.Min(b, p+1)-math.Max(a, p))
}
