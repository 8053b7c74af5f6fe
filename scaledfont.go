// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"math"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/vg/font"
	"github.com/gogpu/vg/internal/array"
	"github.com/gogpu/vg/internal/cache"
	"github.com/gogpu/vg/internal/path"
)

// glyphCacheSize is the number of glyph outlines kept across all faces.
const glyphCacheSize = 2048

type glyphKey struct {
	face *font.Face
	gid  font.GlyphID
}

// glyphOutline is a glyph in em units with Y pointing down.
type glyphOutline struct {
	segments []font.Segment
	advance  float64
	// Ink bounds; empty when x1 > x2.
	x1, y1, x2, y2 float64
	err            error
}

var glyphCache = cache.New[glyphKey, *glyphOutline](glyphCacheSize)

func loadGlyph(f *font.Face, gid font.GlyphID) *glyphOutline {
	return glyphCache.GetOrCreate(glyphKey{f, gid}, func() *glyphOutline {
		g := &glyphOutline{x1: math.Inf(1), y1: math.Inf(1), x2: math.Inf(-1), y2: math.Inf(-1)}
		g.advance, g.err = f.Advance(gid)
		if g.err != nil {
			return g
		}
		g.segments, g.err = f.Outline(gid)
		g.bound()
		return g
	})
}

// bound computes the ink bounds, sampling curves.
func (g *glyphOutline) bound() {
	add := func(p font.Point) {
		g.x1, g.x2 = math.Min(g.x1, p.X), math.Max(g.x2, p.X)
		g.y1, g.y2 = math.Min(g.y1, p.Y), math.Max(g.y2, p.Y)
	}
	const steps = 16
	var cur font.Point
	for _, s := range g.segments {
		switch s.Op {
		case font.SegmentMoveTo, font.SegmentLineTo:
			cur = s.Args[0]
			add(cur)
		case font.SegmentQuadTo:
			p0, p1, p2 := cur, s.Args[0], s.Args[1]
			for i := 1; i <= steps; i++ {
				t := float64(i) / steps
				u := 1 - t
				add(font.Point{
					X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
					Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
				})
			}
			cur = p2
		case font.SegmentCubeTo:
			p0, p1, p2, p3 := cur, s.Args[0], s.Args[1], s.Args[2]
			for i := 1; i <= steps; i++ {
				t := float64(i) / steps
				u := 1 - t
				add(font.Point{
					X: u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
					Y: u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
				})
			}
			cur = p3
		}
	}
}

// maxAdvances caches the widest advance of each face, in em units.
var maxAdvances sync.Map

func maxAdvance(f *font.Face) float64 {
	if v, ok := maxAdvances.Load(f); ok {
		return v.(float64)
	}
	m := 0.0
	for gid := range f.NumGlyphs() {
		if adv, err := f.Advance(font.GlyphID(gid)); err == nil {
			m = math.Max(m, adv)
		}
	}
	maxAdvances.Store(f, m)
	return m
}

func (g *glyphOutline) empty() bool { return g.x1 > g.x2 }

// ScaledFont is a font face at a given font matrix, CTM and options.
type ScaledFont struct {
	refs   atomic.Int32
	status Status

	face       *FontFace
	fontMatrix Matrix
	ctm        Matrix
	options    FontOptions

	// scale maps em space to device space, without translation.
	scale Matrix

	extentsOnce sync.Once
	extents     FontExtents
	extentsErr  error

	userData array.UserData
}

func newScaledFontInError(st Status) *ScaledFont {
	sf := &ScaledFont{status: st, fontMatrix: Identity(), ctm: Identity(), scale: Identity()}
	sf.refs.Store(1)
	return sf
}

// NewScaledFont returns face scaled by fontMatrix (em space to user
// space) and ctm (user space to device space).
func NewScaledFont(face *FontFace, fontMatrix, ctm Matrix, options *FontOptions) *ScaledFont {
	if face == nil {
		return newScaledFontInError(StatusNullPointer)
	}
	if face.status.isError() {
		return newScaledFontInError(face.status)
	}
	if !fontMatrix.Invertible() || !ctm.Invertible() {
		return newScaledFontInError(StatusInvalidMatrix)
	}
	sf := &ScaledFont{
		face:       face.Reference(),
		fontMatrix: fontMatrix,
		ctm:        ctm,
		scale:      fontMatrix.Multiply(ctm).linear(),
	}
	if options != nil {
		sf.options = *options
	}
	sf.refs.Store(1)
	return sf
}

// Status returns the sticky status of sf.
func (sf *ScaledFont) Status() Status {
	if sf == nil {
		return StatusNullPointer
	}
	return sf.status
}

// Reference increments the reference count of sf.
func (sf *ScaledFont) Reference() *ScaledFont {
	if sf != nil {
		sf.refs.Add(1)
	}
	return sf
}

// ReferenceCount returns the current reference count of sf.
func (sf *ScaledFont) ReferenceCount() int {
	if sf == nil {
		return 0
	}
	return int(sf.refs.Load())
}

// Destroy drops a reference to sf.
func (sf *ScaledFont) Destroy() {
	if sf == nil || sf.refs.Add(-1) != 0 {
		return
	}
	sf.userData.Fini()
	if sf.face != nil {
		sf.face.Destroy()
	}
}

// FontFace returns the face of sf. The caller does not own a reference.
func (sf *ScaledFont) FontFace() *FontFace { return sf.face }

// FontMatrix returns the matrix from em space to user space.
func (sf *ScaledFont) FontMatrix() Matrix { return sf.fontMatrix }

// CTM returns the matrix from user space to device space.
func (sf *ScaledFont) CTM() Matrix { return sf.ctm }

// FontOptions returns the options of sf.
func (sf *ScaledFont) FontOptions() FontOptions { return sf.options }

// SetUserData attaches value to key. A nil value removes the slot.
func (sf *ScaledFont) SetUserData(key *UserDataKey, value any, destroy func(any)) error {
	if sf.status.isError() {
		return sf.status
	}
	if err := sf.userData.Set(key, value, destroy); err != nil {
		return StatusNoMemory
	}
	return nil
}

// UserData returns the value attached to key.
func (sf *ScaledFont) UserData(key *UserDataKey) any {
	return sf.userData.Get(key)
}

func (sf *ScaledFont) glyph(index uint32) *glyphOutline {
	return loadGlyph(sf.face.face, font.GlyphID(index))
}

// Extents returns the metrics of sf in user space.
func (sf *ScaledFont) Extents() (FontExtents, error) {
	if sf.status.isError() {
		return FontExtents{}, sf.status
	}
	sf.extentsOnce.Do(func() {
		f := sf.face.face
		ext, err := f.Extents()
		if err != nil {
			sf.extentsErr = err
			return
		}
		maxAdv := maxAdvance(f)
		sx, sy := sf.fontMatrix.scaleFactors()
		sf.extents = FontExtents{
			Ascent:      ext.Ascent * sy,
			Descent:     ext.Descent * sy,
			Height:      ext.Height() * sy,
			MaxXAdvance: maxAdv * sx,
		}
	})
	if sf.extentsErr != nil {
		return FontExtents{}, sf.setError(StatusOf(sf.extentsErr))
	}
	return sf.extents, nil
}

func (sf *ScaledFont) setError(st Status) error {
	st = st.public()
	if sf.status == StatusSuccess && st.isError() {
		sf.status = st
	}
	return st
}

// GlyphExtents returns the ink bounds and advance of glyphs positioned in
// user space.
func (sf *ScaledFont) GlyphExtents(glyphs []Glyph) (TextExtents, error) {
	if sf.status.isError() {
		return TextExtents{}, sf.status
	}
	if len(glyphs) == 0 {
		return TextExtents{}, nil
	}
	x1, y1 := math.Inf(1), math.Inf(1)
	x2, y2 := math.Inf(-1), math.Inf(-1)
	for _, gl := range glyphs {
		g := sf.glyph(gl.Index)
		if g.err != nil {
			return TextExtents{}, sf.setError(StatusOf(g.err))
		}
		if g.empty() {
			continue
		}
		m := sf.fontMatrix
		m.X0, m.Y0 = 0, 0
		bx1, by1, bx2, by2 := m.TransformBounds(g.x1, g.y1, g.x2, g.y2)
		x1, y1 = math.Min(x1, bx1+gl.X), math.Min(y1, by1+gl.Y)
		x2, y2 = math.Max(x2, bx2+gl.X), math.Max(y2, by2+gl.Y)
	}
	first, last := glyphs[0], glyphs[len(glyphs)-1]
	ax, ay := sf.fontMatrix.TransformDistance(sf.glyph(last.Index).advance, 0)
	ext := TextExtents{
		XAdvance: last.X + ax - first.X,
		YAdvance: last.Y + ay - first.Y,
	}
	if x1 <= x2 {
		ext.XBearing, ext.YBearing = x1-first.X, y1-first.Y
		ext.Width, ext.Height = x2-x1, y2-y1
	}
	return ext, nil
}

// TextExtents returns the extents of s set from the origin.
func (sf *ScaledFont) TextExtents(s string) (TextExtents, error) {
	glyphs, _, _, err := sf.TextToGlyphs(0, 0, s, false)
	if err != nil {
		return TextExtents{}, err
	}
	return sf.GlyphExtents(glyphs)
}

// TextToGlyphs maps s to nominal glyphs set horizontally from (x, y) in
// user space. The text is NFC-normalized first. With wantClusters the
// clusters map bytes of s to glyphs; each normalization segment forms one
// cluster. Runes the face lacks map to glyph 0.
func (sf *ScaledFont) TextToGlyphs(x, y float64, s string, wantClusters bool) ([]Glyph, []TextCluster, TextClusterFlags, error) {
	if sf.status.isError() {
		return nil, nil, 0, sf.status
	}
	if !utf8.ValidString(s) {
		return nil, nil, 0, StatusInvalidString
	}
	face := sf.face.face
	var (
		glyphs   []Glyph
		clusters []TextCluster
		it       norm.Iter
	)
	it.InitString(norm.NFC, s)
	for !it.Done() {
		start := it.Pos()
		seg := it.Next()
		n := 0
		for len(seg) > 0 {
			r, size := utf8.DecodeRune(seg)
			seg = seg[size:]
			gid, ok := face.GlyphIndex(r)
			if !ok {
				gid = 0
			}
			g := loadGlyph(face, gid)
			if g.err != nil {
				return nil, nil, 0, sf.setError(StatusOf(g.err))
			}
			glyphs = append(glyphs, Glyph{Index: uint32(gid), X: x, Y: y})
			dx, dy := sf.fontMatrix.TransformDistance(g.advance, 0)
			x, y = x+dx, y+dy
			n++
		}
		if wantClusters {
			clusters = append(clusters, TextCluster{NumBytes: it.Pos() - start, NumGlyphs: n})
		}
	}
	return glyphs, clusters, 0, nil
}

// glyphsPath returns the outlines of glyphs positioned in device space.
func (sf *ScaledFont) glyphsPath(glyphs []Glyph) (*path.Path, error) {
	p := path.New()
	if err := sf.appendGlyphs(p, glyphs); err != nil {
		return nil, err
	}
	return p, nil
}

func (sf *ScaledFont) appendGlyphs(p *path.Path, glyphs []Glyph) error {
	for _, gl := range glyphs {
		g := sf.glyph(gl.Index)
		if g.err != nil {
			return g.err
		}
		m := sf.scale
		m.X0, m.Y0 = gl.X, gl.Y
		pt := func(q font.Point) fixed.Point26_6 {
			x, y := m.TransformPoint(q.X, q.Y)
			return path.Pt(x, y)
		}
		var cur font.Point
		closeContour := false
		for _, s := range g.segments {
			switch s.Op {
			case font.SegmentMoveTo:
				if closeContour {
					p.ClosePath()
				}
				p.MoveTo(pt(s.Args[0]))
				cur, closeContour = s.Args[0], true
			case font.SegmentLineTo:
				p.LineTo(pt(s.Args[0]))
				cur = s.Args[0]
			case font.SegmentQuadTo:
				// Elevate to a cubic.
				c1 := font.Point{X: cur.X + 2.0/3*(s.Args[0].X-cur.X), Y: cur.Y + 2.0/3*(s.Args[0].Y-cur.Y)}
				c2 := font.Point{X: s.Args[1].X + 2.0/3*(s.Args[0].X-s.Args[1].X), Y: s.Args[1].Y + 2.0/3*(s.Args[0].Y-s.Args[1].Y)}
				p.CurveTo(pt(c1), pt(c2), pt(s.Args[1]))
				cur = s.Args[1]
			case font.SegmentCubeTo:
				p.CurveTo(pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2]))
				cur = s.Args[2]
			}
		}
		if closeContour {
			p.ClosePath()
		}
	}
	return nil
}

// validateClusters checks that clusters cover exactly numBytes bytes of
// text and numGlyphs glyphs.
func validateClusters(clusters []TextCluster, numBytes, numGlyphs int) Status {
	b, g := 0, 0
	for _, c := range clusters {
		if c.NumBytes < 0 || c.NumGlyphs < 0 {
			return StatusNegativeCount
		}
		if c.NumBytes == 0 && c.NumGlyphs == 0 {
			return StatusInvalidClusters
		}
		b += c.NumBytes
		g += c.NumGlyphs
	}
	if b != numBytes || g != numGlyphs {
		return StatusInvalidClusters
	}
	return StatusSuccess
}
