// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package font loads font files into shared faces.
//
// A Face is identified by name and shared process-wide through a cache.
// Each face owns an engine handle holding the parsed font tables: cmap,
// advances and extents come from go-text/typesetting, glyph outlines
// from golang.org/x/image/font/sfnt. Only a bounded number of engine
// handles stay open at once (see Options.MaxOpenHandles); when the limit
// is exceeded an arbitrary idle handle is closed and reopened on demand.
//
// All Face methods are safe for concurrent use.
package font

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrNotFound is returned for glyphs that are absent from the face.
var ErrNotFound = errors.New("font: glyph not found")

// ParseError reports a font file that could not be parsed.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("font: parse %q: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// GlyphID is a glyph index in a face.
type GlyphID uint32

// Point is a point in em units with Y pointing down.
type Point struct {
	X, Y float64
}

// SegmentOp is the kind of an outline segment.
type SegmentOp uint8

const (
	// SegmentMoveTo starts a contour at Args[0].
	SegmentMoveTo SegmentOp = iota
	// SegmentLineTo draws a line to Args[0].
	SegmentLineTo
	// SegmentQuadTo draws a quadratic curve through Args[0] to Args[1].
	SegmentQuadTo
	// SegmentCubeTo draws a cubic curve through Args[0], Args[1] to Args[2].
	SegmentCubeTo
)

// Segment is one outline segment.
type Segment struct {
	Op   SegmentOp
	Args [3]Point
}

// Extents holds the vertical metrics of a face in em units.
type Extents struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Height returns the recommended baseline distance.
func (e Extents) Height() float64 {
	return e.Ascent + e.Descent + e.LineGap
}

// engine is an open handle on the parsed font tables. It is not safe for
// concurrent use; Face serializes access.
type engine struct {
	sf   *sfnt.Font
	gt   *gotext.Face
	buf  sfnt.Buffer
	upem float64
}

func parse(name string, data []byte) (*engine, error) {
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	gt, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	return &engine{sf: sf, gt: gt, upem: float64(sf.UnitsPerEm())}, nil
}

// Face is a shared, reference-counted font face.
type Face struct {
	name    string
	data    []byte
	family  string
	builtin bool

	// mu serializes engine use.
	mu sync.Mutex

	// Guarded by the cache lock.
	refs  int
	locks int
	eng   *engine
}

// Name returns the cache key of the face.
func (f *Face) Name() string { return f.name }

// Family returns the family name recorded in the font file.
func (f *Face) Family() string { return f.family }

// with runs fn with the engine handle open.
func (f *Face) with(fn func(e *engine) error) error {
	e, err := faces.acquire(f)
	if err != nil {
		return err
	}
	defer faces.release(f)
	return fn(e)
}

// GlyphIndex returns the nominal glyph for r.
func (f *Face) GlyphIndex(r rune) (GlyphID, bool) {
	var (
		gid GlyphID
		ok  bool
	)
	_ = f.with(func(e *engine) error {
		g, found := e.gt.NominalGlyph(r)
		gid, ok = GlyphID(g), found
		return nil
	})
	return gid, ok
}

// Advance returns the horizontal advance of gid in em units.
func (f *Face) Advance(gid GlyphID) (float64, error) {
	var adv float64
	err := f.with(func(e *engine) error {
		adv = float64(e.gt.HorizontalAdvance(gotext.GID(gid))) / e.upem
		return nil
	})
	return adv, err
}

// Extents returns the vertical metrics of the face in em units. Descent
// is positive below the baseline.
func (f *Face) Extents() (Extents, error) {
	var ext Extents
	err := f.with(func(e *engine) error {
		if m, ok := e.gt.FontHExtents(); ok {
			ext = Extents{
				Ascent:  float64(m.Ascender) / e.upem,
				Descent: -float64(m.Descender) / e.upem,
				LineGap: float64(m.LineGap) / e.upem,
			}
			return nil
		}
		m, err := e.sf.Metrics(&e.buf, fixed.I(int(e.upem)), xfont.HintingNone)
		if err != nil {
			return err
		}
		ext = Extents{
			Ascent:  float64(m.Ascent) / 64 / e.upem,
			Descent: float64(m.Descent) / 64 / e.upem,
			LineGap: float64(m.Height-m.Ascent-m.Descent) / 64 / e.upem,
		}
		return nil
	})
	return ext, err
}

// Outline returns the outline of gid in em units with Y pointing down.
// Glyphs without contours, such as a space, return no segments.
func (f *Face) Outline(gid GlyphID) ([]Segment, error) {
	var out []Segment
	err := f.with(func(e *engine) error {
		ppem := fixed.I(int(e.upem))
		segs, err := e.sf.LoadGlyph(&e.buf, sfnt.GlyphIndex(gid), ppem, nil)
		if err != nil {
			if errors.Is(err, sfnt.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		scale := 1 / (64 * e.upem)
		pt := func(p fixed.Point26_6) Point {
			return Point{X: float64(p.X) * scale, Y: float64(p.Y) * scale}
		}
		out = make([]Segment, 0, len(segs))
		for _, s := range segs {
			var seg Segment
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				seg = Segment{Op: SegmentMoveTo, Args: [3]Point{pt(s.Args[0])}}
			case sfnt.SegmentOpLineTo:
				seg = Segment{Op: SegmentLineTo, Args: [3]Point{pt(s.Args[0])}}
			case sfnt.SegmentOpQuadTo:
				seg = Segment{Op: SegmentQuadTo, Args: [3]Point{pt(s.Args[0]), pt(s.Args[1])}}
			case sfnt.SegmentOpCubeTo:
				seg = Segment{Op: SegmentCubeTo, Args: [3]Point{pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2])}}
			}
			out = append(out, seg)
		}
		return nil
	})
	return out, err
}

// NumGlyphs returns the number of glyphs in the face.
func (f *Face) NumGlyphs() int {
	n := 0
	_ = f.with(func(e *engine) error {
		n = e.sf.NumGlyphs()
		return nil
	})
	return n
}

// Reference increments the reference count of f.
func (f *Face) Reference() *Face {
	faces.reference(f)
	return f
}

// Destroy drops a reference. The face leaves the cache when the last
// reference is gone.
func (f *Face) Destroy() {
	faces.destroy(f)
}
