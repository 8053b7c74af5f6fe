// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

const defaultFontFamily = "sans-serif"

func (b *defaultBackend) SelectFontFace(family string, slant FontSlant, weight FontWeight) Status {
	f := NewToyFontFace(family, slant, weight)
	defer f.Destroy()
	if st := f.Status(); st.isError() {
		return st
	}
	return b.SetFontFace(f)
}

func (b *defaultBackend) SetFontFace(f *FontFace) Status {
	if f == nil {
		return StatusNullPointer
	}
	if st := f.Status(); st.isError() {
		return st
	}
	g := b.gstate
	if f == g.fontFace {
		return StatusSuccess
	}
	f.Reference()
	g.fontFace.Destroy()
	g.fontFace = f
	g.unsetScaledFont()
	return StatusSuccess
}

// FontFace returns the current face, selecting the default toy face on
// first use. The caller does not own a reference.
func (b *defaultBackend) FontFace() *FontFace {
	g := b.gstate
	if g.fontFace == nil {
		g.fontFace = NewToyFontFace(defaultFontFamily, FontSlantNormal, FontWeightNormal)
	}
	return g.fontFace
}

func (b *defaultBackend) SetFontSize(size float64) Status {
	return b.SetFontMatrix(Scale(size, size))
}

func (b *defaultBackend) SetFontMatrix(m Matrix) Status {
	if !m.Invertible() {
		return StatusInvalidMatrix
	}
	g := b.gstate
	if m == g.fontMatrix {
		return StatusSuccess
	}
	g.fontMatrix = m
	g.unsetScaledFont()
	return StatusSuccess
}

func (b *defaultBackend) FontMatrix() Matrix { return b.gstate.fontMatrix }

func (b *defaultBackend) SetFontOptions(o FontOptions) Status {
	g := b.gstate
	merged := g.fontOptions.merge(o)
	if merged == g.fontOptions {
		return StatusSuccess
	}
	g.fontOptions = merged
	g.unsetScaledFont()
	return StatusSuccess
}

func (b *defaultBackend) FontOptions() FontOptions { return b.gstate.fontOptions }

// SetScaledFont adopts the face, font matrix and options of sf. The CTM
// of sf is ignored; the current one applies.
func (b *defaultBackend) SetScaledFont(sf *ScaledFont) Status {
	if sf == nil {
		return StatusNullPointer
	}
	if st := sf.Status(); st.isError() {
		return st
	}
	if st := b.SetFontFace(sf.FontFace()); st.isError() {
		return st
	}
	if st := b.SetFontMatrix(sf.FontMatrix()); st.isError() {
		return st
	}
	return b.SetFontOptions(sf.FontOptions())
}

// ScaledFont returns the font used for drawing, built on demand from the
// face, the font matrix and the CTM. The caller does not own a
// reference.
func (b *defaultBackend) ScaledFont() *ScaledFont {
	g := b.gstate
	if g.scaledFont == nil {
		opts := g.fontOptions
		g.scaledFont = NewScaledFont(b.FontFace(), g.fontMatrix, g.toBackend, &opts)
	}
	return g.scaledFont
}

// scaledFont returns the drawing font or its error status.
func (b *defaultBackend) scaledFont() (*ScaledFont, Status) {
	sf := b.ScaledFont()
	return sf, sf.Status()
}

func (b *defaultBackend) FontExtents() (FontExtents, Status) {
	sf, st := b.scaledFont()
	if st.isError() {
		return FontExtents{}, st
	}
	ext, err := sf.Extents()
	return ext, StatusOf(err)
}

func (b *defaultBackend) TextToGlyphs(x, y float64, text string, wantClusters bool) ([]Glyph, []TextCluster, TextClusterFlags, Status) {
	sf, st := b.scaledFont()
	if st.isError() {
		return nil, nil, 0, st
	}
	glyphs, clusters, flags, err := sf.TextToGlyphs(x, y, text, wantClusters)
	return glyphs, clusters, flags, StatusOf(err)
}

// deviceGlyphs returns glyphs with their positions mapped to target
// pixels.
func (b *defaultBackend) deviceGlyphs(glyphs []Glyph) []Glyph {
	out := make([]Glyph, len(glyphs))
	m := b.gstate.toBackend
	for i, gl := range glyphs {
		x, y := m.TransformPoint(gl.X, gl.Y)
		out[i] = Glyph{Index: gl.Index, X: x, Y: y}
	}
	return out
}

func (b *defaultBackend) ShowTextGlyphs(text string, glyphs []Glyph, clusters []TextCluster, flags TextClusterFlags) Status {
	if len(clusters) > 0 {
		if st := validateClusters(clusters, len(text), len(glyphs)); st.isError() {
			return st
		}
	}
	if len(glyphs) == 0 {
		return StatusSuccess
	}
	sf, st := b.scaledFont()
	if st.isError() {
		return st
	}
	g := b.gstate
	src := g.preparedSource()
	op := g.reducedOperator()
	return g.target.showGlyphs(op, &src, b.deviceGlyphs(glyphs), sf, g.drawClip(op, &src))
}

func (b *defaultBackend) GlyphPath(glyphs []Glyph) Status {
	sf, st := b.scaledFont()
	if st.isError() {
		return st
	}
	return StatusOf(sf.appendGlyphs(b.path, b.deviceGlyphs(glyphs)))
}

func (b *defaultBackend) GlyphExtents(glyphs []Glyph) (TextExtents, Status) {
	sf, st := b.scaledFont()
	if st.isError() {
		return TextExtents{}, st
	}
	ext, err := sf.GlyphExtents(glyphs)
	return ext, StatusOf(err)
}
