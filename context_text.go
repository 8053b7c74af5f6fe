// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

// SelectFontFace selects a toy face by family, slant and weight. Toy
// faces are served from the built-in Go fonts: monospace family names
// pick Go Mono and every other family picks Go.
func (c *Context) SelectFontFace(family string, slant FontSlant, weight FontWeight) {
	c.do(func(b Backend) Status { return b.SelectFontFace(family, slant, weight) })
}

// SetFontFace sets the font face.
func (c *Context) SetFontFace(f *FontFace) {
	c.do(func(b Backend) Status { return b.SetFontFace(f) })
}

// FontFace returns the font face. The caller does not own a reference.
func (c *Context) FontFace() *FontFace {
	if !c.ok() {
		return newFontFaceInError(c.status)
	}
	return c.backend.FontFace()
}

// SetFontSize sets the font matrix to a uniform scale of size user
// units per em.
func (c *Context) SetFontSize(size float64) {
	c.do(func(b Backend) Status { return b.SetFontSize(size) })
}

// SetFontMatrix sets the matrix from em space to user space.
func (c *Context) SetFontMatrix(m Matrix) {
	c.do(func(b Backend) Status { return b.SetFontMatrix(m) })
}

// FontMatrix returns the font matrix.
func (c *Context) FontMatrix() Matrix { return c.backend.FontMatrix() }

// SetFontOptions merges o into the font options. Fields left at their
// default keep their current value.
func (c *Context) SetFontOptions(o FontOptions) {
	c.do(func(b Backend) Status { return b.SetFontOptions(o) })
}

// FontOptions returns the font options.
func (c *Context) FontOptions() FontOptions { return c.backend.FontOptions() }

// SetScaledFont sets the face, font matrix and options from sf.
func (c *Context) SetScaledFont(sf *ScaledFont) {
	c.do(func(b Backend) Status { return b.SetScaledFont(sf) })
}

// ScaledFont returns the scaled font for the current face, font matrix
// and CTM. The caller does not own a reference.
func (c *Context) ScaledFont() *ScaledFont {
	if !c.ok() {
		return newScaledFontInError(c.status)
	}
	sf := c.backend.ScaledFont()
	if sf == nil {
		return newScaledFontInError(StatusNotSupported)
	}
	c.setError(sf.Status())
	return sf
}

// FontExtents returns the metrics of the current font in user space.
func (c *Context) FontExtents() FontExtents {
	if !c.ok() {
		return FontExtents{}
	}
	ext, st := c.backend.FontExtents()
	c.setError(st)
	return ext
}

// TextExtents returns the extents of s set at the origin.
func (c *Context) TextExtents(s string) TextExtents {
	if !c.ok() || s == "" {
		return TextExtents{}
	}
	glyphs, _, _, st := c.backend.TextToGlyphs(0, 0, s, false)
	if c.setError(st).isError() {
		return TextExtents{}
	}
	return c.GlyphExtents(glyphs)
}

// GlyphExtents returns the extents of glyphs positioned in user space.
func (c *Context) GlyphExtents(glyphs []Glyph) TextExtents {
	if !c.ok() || len(glyphs) == 0 {
		return TextExtents{}
	}
	ext, st := c.backend.GlyphExtents(glyphs)
	c.setError(st)
	return ext
}

// textGlyphs converts s to glyphs starting at the current point.
func (c *Context) textGlyphs(s string, wantClusters bool) ([]Glyph, []TextCluster, TextClusterFlags, bool) {
	x, y := c.backend.CurrentPoint()
	glyphs, clusters, flags, st := c.backend.TextToGlyphs(x, y, s, wantClusters)
	if c.setError(st).isError() {
		return nil, nil, 0, false
	}
	return glyphs, clusters, flags, true
}

// advancePast moves the current point to the pen position after the
// last glyph.
func (c *Context) advancePast(glyphs []Glyph) {
	if len(glyphs) == 0 {
		return
	}
	last := glyphs[len(glyphs)-1]
	ext, st := c.backend.GlyphExtents(glyphs[len(glyphs)-1:])
	if c.setError(st).isError() {
		return
	}
	c.MoveTo(last.X+ext.XAdvance, last.Y+ext.YAdvance)
}

// ShowText draws s from the current point, or from the origin without
// one, and moves the current point past the text.
func (c *Context) ShowText(s string) {
	if !c.ok() || s == "" {
		return
	}
	glyphs, clusters, flags, ok := c.textGlyphs(s, true)
	if !ok {
		return
	}
	c.do(func(b Backend) Status { return b.ShowTextGlyphs(s, glyphs, clusters, flags) })
	if c.ok() {
		c.advancePast(glyphs)
	}
}

// ShowGlyphs draws glyphs positioned in user space.
func (c *Context) ShowGlyphs(glyphs []Glyph) {
	if len(glyphs) == 0 {
		return
	}
	c.ShowTextGlyphs("", glyphs, nil, 0)
}

// ShowTextGlyphs draws glyphs with a cluster map back to text. Clusters
// must cover every byte of text and every glyph; otherwise
// StatusInvalidClusters is recorded.
func (c *Context) ShowTextGlyphs(text string, glyphs []Glyph, clusters []TextCluster, flags TextClusterFlags) {
	c.do(func(b Backend) Status { return b.ShowTextGlyphs(text, glyphs, clusters, flags) })
}

// TextPath adds the outlines of s, set from the current point, to the
// path and moves the current point past the text.
func (c *Context) TextPath(s string) {
	if !c.ok() || s == "" {
		return
	}
	glyphs, _, _, ok := c.textGlyphs(s, false)
	if !ok {
		return
	}
	c.GlyphPath(glyphs)
	if c.ok() {
		c.advancePast(glyphs)
	}
}

// GlyphPath adds the outlines of glyphs to the path.
func (c *Context) GlyphPath(glyphs []Glyph) {
	c.do(func(b Backend) Status { return b.GlyphPath(glyphs) })
}
