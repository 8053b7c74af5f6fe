// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clip

import (
	"image"

	"github.com/gogpu/vg/internal/raster"
)

// Clipper produces coverage masks for clips and remembers the last one.
// The cached mask covers the whole clip within Limit, so later requests
// for other bounds under the same clip are cropped from it. When the
// next clip keeps the same boxes and extends the previous path chain,
// only the new chain nodes are rasterized.
type Clipper struct {
	// Limit bounds the cached mask. When empty the mask covers only the
	// requested bounds.
	Limit image.Rectangle

	clip *Clip
	mask *image.Alpha
	tmp  *image.Alpha

	rasterized int
}

// Rasterized returns the number of chain nodes rasterized so far.
func (cl *Clipper) Rasterized() int {
	return cl.rasterized
}

// Reset drops the cached mask.
func (cl *Clipper) Reset() {
	cl.clip = nil
	cl.mask = nil
}

// Mask returns the coverage of c over bounds. A nil result means every
// pixel of bounds is fully visible. The returned mask may share pixels
// with the Clipper's cache and stays valid until the next call.
func (cl *Clipper) Mask(c *Clip, bounds image.Rectangle) *image.Alpha {
	if c == nil {
		return nil
	}
	if c.allClipped || bounds.Empty() {
		cl.Reset()
		return image.NewAlpha(bounds)
	}
	if c.chain == nil && c.ContainsRectangle(bounds) {
		return nil
	}

	if cl.mask != nil && bounds.In(cl.mask.Rect) {
		if Equal(cl.clip, c) {
			return crop(cl.mask, bounds)
		}
		if suffix, ok := cl.suffix(c); ok {
			cl.applyChain(c.chain, suffix)
			cl.clip = c
			return crop(cl.mask, bounds)
		}
	}

	cover := bounds
	if lc := c.Bounds(cl.Limit); bounds.In(lc) {
		cover = lc
	}
	m := image.NewAlpha(cover)
	if len(c.boxes) > 0 {
		fillBoxes(m, c.boxes)
	} else {
		for i := range m.Pix {
			m.Pix[i] = 0xff
		}
	}
	cl.mask = m
	cl.applyChain(c.chain, nil)
	cl.clip = c
	return crop(m, bounds)
}

func crop(m *image.Alpha, r image.Rectangle) *image.Alpha {
	if m.Rect == r {
		return m
	}
	return m.SubImage(r).(*image.Alpha)
}

// suffix reports whether c extends the cached clip with new chain nodes
// and returns the node where the shared prefix starts.
func (cl *Clipper) suffix(c *Clip) (*Path, bool) {
	prev := cl.clip
	if prev == nil || prev.allClipped || len(prev.boxes) != len(c.boxes) {
		return nil, false
	}
	for i := range c.boxes {
		if prev.boxes[i] != c.boxes[i] {
			return nil, false
		}
	}
	for n := c.chain; n != nil; n = n.prev {
		if n.prev == prev.chain {
			return prev.chain, true
		}
	}
	return nil, false
}

// applyChain multiplies the mask by every node from head back to stop,
// exclusive, oldest first so that incremental and full masks agree.
func (cl *Clipper) applyChain(head, stop *Path) {
	var nodes []*Path
	for n := head; n != stop; n = n.prev {
		nodes = append(nodes, n)
	}
	if len(nodes) == 0 {
		return
	}
	if cl.tmp == nil || cl.tmp.Rect != cl.mask.Rect {
		cl.tmp = image.NewAlpha(cl.mask.Rect)
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		raster.Fill(cl.tmp, n.Polylines(), n.fillRule, n.antialias)
		for j, v := range cl.tmp.Pix {
			cl.mask.Pix[j] = mul8(cl.mask.Pix[j], v)
		}
		cl.rasterized++
	}
}

// Mask returns a freshly computed coverage mask of c over bounds.
// A nil result means every pixel of bounds is fully visible.
func (c *Clip) Mask(bounds image.Rectangle) *image.Alpha {
	var cl Clipper
	return cl.Mask(c, bounds)
}
