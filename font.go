// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/gogpu/vg/font"
	"github.com/gogpu/vg/internal/array"
)

// FontSlant selects an upright or slanted toy face.
type FontSlant int

// Font slants.
const (
	FontSlantNormal FontSlant = iota
	FontSlantItalic
	FontSlantOblique
)

func (s FontSlant) valid() bool { return s >= FontSlantNormal && s <= FontSlantOblique }

// FontWeight selects the weight of a toy face.
type FontWeight int

// Font weights.
const (
	FontWeightNormal FontWeight = iota
	FontWeightBold
)

func (w FontWeight) valid() bool { return w == FontWeightNormal || w == FontWeightBold }

// FontType identifies how a font face was created.
type FontType int

// Font types.
const (
	// FontTypeToy faces are selected by family, slant and weight.
	FontTypeToy FontType = iota
	// FontTypeFile faces are parsed from font file data.
	FontTypeFile
)

// FontOptions controls how glyphs are rendered.
type FontOptions struct {
	Antialias Antialias
}

// merge overrides the fields of o that other sets.
func (o FontOptions) merge(other FontOptions) FontOptions {
	if other.Antialias != AntialiasDefault {
		o.Antialias = other.Antialias
	}
	return o
}

// Glyph is a glyph index positioned in user space.
type Glyph struct {
	Index uint32
	X, Y  float64
}

// TextCluster maps a run of UTF-8 bytes to a run of glyphs.
type TextCluster struct {
	NumBytes  int
	NumGlyphs int
}

// TextClusterFlags describes the order of a cluster array.
type TextClusterFlags int

// TextClusterFlagBackward marks clusters that map glyphs in reverse order.
const TextClusterFlagBackward TextClusterFlags = 1

// TextExtents holds the ink bounds and advance of a glyph run in user
// space.
type TextExtents struct {
	XBearing, YBearing float64
	Width, Height      float64
	XAdvance, YAdvance float64
}

// FontExtents holds the metrics of a scaled font in user space.
type FontExtents struct {
	Ascent      float64
	Descent     float64
	Height      float64
	MaxXAdvance float64
	MaxYAdvance float64
}

// FontFace is a reference-counted font face. Toy faces with the same
// family, slant and weight are shared.
type FontFace struct {
	refs   atomic.Int32
	status Status

	typ    FontType
	face   *font.Face
	family string
	slant  FontSlant
	weight FontWeight

	userData array.UserData
}

type toyKey struct {
	family string
	slant  FontSlant
	weight FontWeight
}

// toyFaces holds the live toy faces. An entry leaves the table when its
// last reference is dropped.
var toyFaces struct {
	mu    sync.Mutex
	faces map[toyKey]*FontFace
}

func newFontFaceInError(st Status) *FontFace {
	f := &FontFace{status: st}
	f.refs.Store(1)
	return f
}

// NewToyFontFace returns a face for family, slant and weight drawn from
// the built-in Go fonts.
func NewToyFontFace(family string, slant FontSlant, weight FontWeight) *FontFace {
	if !utf8.ValidString(family) {
		return newFontFaceInError(StatusInvalidString)
	}
	if !slant.valid() {
		return newFontFaceInError(StatusInvalidSlant)
	}
	if !weight.valid() {
		return newFontFaceInError(StatusInvalidWeight)
	}
	k := toyKey{family, slant, weight}

	toyFaces.mu.Lock()
	if f, ok := toyFaces.faces[k]; ok {
		f.refs.Add(1)
		toyFaces.mu.Unlock()
		return f
	}
	toyFaces.mu.Unlock()

	face, err := font.Builtin(family, font.Slant(slant), font.Weight(weight))
	if err != nil {
		return newFontFaceInError(StatusOf(err))
	}
	f := &FontFace{typ: FontTypeToy, face: face, family: family, slant: slant, weight: weight}
	f.refs.Store(1)

	toyFaces.mu.Lock()
	defer toyFaces.mu.Unlock()
	if other, ok := toyFaces.faces[k]; ok {
		other.refs.Add(1)
		face.Destroy()
		return other
	}
	if toyFaces.faces == nil {
		toyFaces.faces = make(map[toyKey]*FontFace)
	}
	toyFaces.faces[k] = f
	return f
}

// NewFontFaceFromData parses a TrueType or OpenType font. Faces with the
// same name share one parsed font.
func NewFontFaceFromData(name string, data []byte) *FontFace {
	face, err := font.Load(name, data)
	if err != nil {
		return newFontFaceInError(StatusOf(err))
	}
	f := &FontFace{typ: FontTypeFile, face: face, family: face.Family()}
	f.refs.Store(1)
	return f
}

// Status returns the sticky status of f.
func (f *FontFace) Status() Status {
	if f == nil {
		return StatusNullPointer
	}
	return f.status
}

// Type returns how f was created.
func (f *FontFace) Type() FontType { return f.typ }

// Family returns the family name of f.
func (f *FontFace) Family() string { return f.family }

// Slant returns the slant a toy face was selected with.
func (f *FontFace) Slant() FontSlant { return f.slant }

// Weight returns the weight a toy face was selected with.
func (f *FontFace) Weight() FontWeight { return f.weight }

// Reference increments the reference count of f.
func (f *FontFace) Reference() *FontFace {
	if f != nil {
		f.refs.Add(1)
	}
	return f
}

// ReferenceCount returns the current reference count of f.
func (f *FontFace) ReferenceCount() int {
	if f == nil {
		return 0
	}
	return int(f.refs.Load())
}

// Destroy drops a reference to f.
func (f *FontFace) Destroy() {
	if f == nil {
		return
	}
	if f.typ == FontTypeToy && f.face != nil {
		toyFaces.mu.Lock()
		if f.refs.Add(-1) != 0 {
			toyFaces.mu.Unlock()
			return
		}
		k := toyKey{f.family, f.slant, f.weight}
		if toyFaces.faces[k] == f {
			delete(toyFaces.faces, k)
		}
		toyFaces.mu.Unlock()
	} else if f.refs.Add(-1) != 0 {
		return
	}
	f.userData.Fini()
	if f.face != nil {
		f.face.Destroy()
	}
}

// SetUserData attaches value to key. A nil value removes the slot.
func (f *FontFace) SetUserData(key *UserDataKey, value any, destroy func(any)) error {
	if f.status.isError() {
		return f.status
	}
	if err := f.userData.Set(key, value, destroy); err != nil {
		return StatusNoMemory
	}
	return nil
}

// UserData returns the value attached to key.
func (f *FontFace) UserData(key *UserDataKey) any {
	return f.userData.Get(key)
}

// Shutdown releases the process-wide font state: the toy face table, the
// glyph cache and the font package's face cache. Call it after every
// context, surface and font has been destroyed.
func Shutdown() {
	toyFaces.mu.Lock()
	toyFaces.faces = nil
	toyFaces.mu.Unlock()
	glyphCache.Clear()
	maxAdvances.Clear()
	font.Shutdown()
}
