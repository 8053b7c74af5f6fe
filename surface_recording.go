// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"image"
	"math"
	"slices"

	"github.com/gogpu/vg/internal/clip"
	"github.com/gogpu/vg/internal/path"
	"github.com/gogpu/vg/internal/raster"
)

// unboundedExtent bounds the pixel space of an unbounded recording. It
// matches the range of the fixed-point path coordinates.
const unboundedExtent = path.MaxCoord

type commandKind int

const (
	commandPaint commandKind = iota
	commandMask
	commandStroke
	commandFill
	commandGlyphs
	commandTag
)

// command is one recorded drawing operation. It owns references to the
// patterns and fonts it uses.
type command struct {
	kind commandKind
	op   Operator
	src  source
	mask source
	clip *clip.Clip

	path       *path.Path
	style      StrokeStyle
	ctm        Matrix
	ctmInverse Matrix
	tolerance  float64
	aa         Antialias
	rule       FillRule

	glyphs []Glyph
	font   *ScaledFont

	begin       bool
	name, attrs string
}

func (c *command) release() {
	if c.src.pattern != nil {
		c.src.pattern.Destroy()
	}
	if c.mask.pattern != nil {
		c.mask.pattern.Destroy()
	}
	if c.font != nil {
		c.font.Destroy()
	}
}

// recordingSurface keeps drawing operations for later replay.
type recordingSurface struct {
	owner       *Surface
	contentType Content
	bounded     bool
	rect        image.Rectangle
	commands    []command

	ink    image.Rectangle
	hasInk bool
}

// NewRecordingSurface returns a surface that records drawing operations.
// A nil extents makes the recording unbounded.
func NewRecordingSurface(content Content, extents *Rectangle) *Surface {
	if !content.valid() {
		return newSurfaceInError(StatusInvalidContent)
	}
	rs := &recordingSurface{contentType: content}
	if extents != nil {
		if extents.Width < 0 || extents.Height < 0 {
			return newSurfaceInError(StatusInvalidSize)
		}
		rs.bounded = true
		rs.rect = image.Rect(
			int(math.Floor(extents.X)), int(math.Floor(extents.Y)),
			int(math.Ceil(extents.X+extents.Width)), int(math.Ceil(extents.Y+extents.Height)))
	} else {
		rs.rect = image.Rect(-unboundedExtent, -unboundedExtent, unboundedExtent, unboundedExtent)
	}
	s := newSurface(rs)
	rs.owner = s
	return s
}

func (s *Surface) recording() (*recordingSurface, bool) {
	rs, ok := s.backend.(*recordingSurface)
	return rs, ok
}

// Replay draws the operations recorded on s onto target, in the pixel
// space of target.
func (s *Surface) Replay(target *Surface) error {
	if err := s.Status(); err.isError() {
		return err
	}
	if st := target.Status(); st.isError() {
		return st
	}
	rs, ok := s.recording()
	if !ok {
		return StatusSurfaceTypeMismatch
	}
	if s.finished {
		return StatusSurfaceFinished
	}
	if st := rs.replay(target); st.isError() {
		return st
	}
	return nil
}

// InkExtents returns the bounds of the pixels the recorded operations
// touch.
func (s *Surface) InkExtents() Rectangle {
	rs, ok := s.recording()
	if !ok || !rs.hasInk {
		return Rectangle{}
	}
	r := rs.ink
	return Rectangle{X: float64(r.Min.X), Y: float64(r.Min.Y), Width: float64(r.Dx()), Height: float64(r.Dy())}
}

// RecordedCommands returns the number of operations recorded on s.
func (s *Surface) RecordedCommands() int {
	if rs, ok := s.recording(); ok {
		return len(rs.commands)
	}
	return 0
}

func (rs *recordingSurface) replay(target *Surface) Status {
	for i := range rs.commands {
		c := &rs.commands[i]
		src := c.src
		var st Status
		switch c.kind {
		case commandPaint:
			st = target.paint(c.op, &src, c.clip)
		case commandMask:
			mask := c.mask
			st = target.mask(c.op, &src, &mask, c.clip)
		case commandStroke:
			st = target.stroke(c.op, &src, c.path, &c.style, c.ctm, c.ctmInverse, c.tolerance, c.aa, c.clip)
		case commandFill:
			st = target.fill(c.op, &src, c.path, c.rule, c.tolerance, c.aa, c.clip)
		case commandGlyphs:
			st = target.showGlyphs(c.op, &src, c.glyphs, c.font, c.clip)
		case commandTag:
			st = target.tag(c.begin, c.name, c.attrs)
		}
		if st.isError() {
			return st
		}
	}
	return StatusSuccess
}

func (rs *recordingSurface) kind() SurfaceType { return SurfaceTypeRecording }

func (rs *recordingSurface) content() Content { return rs.contentType }

func (rs *recordingSurface) extents() (image.Rectangle, bool) {
	return rs.rect, rs.bounded
}

// record appends c, clipped to the recording's extents, and returns the
// pixels it may touch.
func (rs *recordingSurface) record(c command, bounds image.Rectangle) (image.Rectangle, Status) {
	if rs.bounded {
		c.clip = clip.IntersectRectangle(c.clip, rs.rect)
		if c.clip.IsAllClipped() {
			c.release()
			return image.Rectangle{}, intStatusNothingToDo
		}
	}
	if c.op.boundedByMask() {
		bounds = c.clip.Bounds(bounds.Intersect(rs.rect))
		if rs.bounded && bounds.Empty() {
			c.release()
			return image.Rectangle{}, intStatusNothingToDo
		}
	} else {
		bounds = c.clip.Bounds(rs.rect)
	}
	rs.commands = append(rs.commands, c)
	if !bounds.Empty() {
		if rs.hasInk {
			rs.ink = rs.ink.Union(bounds)
		} else {
			rs.ink, rs.hasInk = bounds, true
		}
	}
	return bounds, StatusSuccess
}

// ref returns src with a snapshot of its pattern, so changes made to the
// pattern or its surface after recording do not reach Replay.
func (rs *recordingSurface) ref(src *source) source {
	return source{pattern: src.pattern.snapshot(), matrix: src.matrix}
}

// retain takes new references on what c shares with another command.
func (c *command) retain() {
	c.src.pattern.Reference()
	c.mask.pattern.Reference()
	c.font.Reference()
}

// copySurface returns a recording holding the commands recorded so far.
// Recorded commands are never mutated, so the copy shares them.
func (rs *recordingSurface) copySurface() *Surface {
	c := &recordingSurface{
		contentType: rs.contentType,
		bounded:     rs.bounded,
		rect:        rs.rect,
		commands:    slices.Clone(rs.commands),
		ink:         rs.ink,
		hasInk:      rs.hasInk,
	}
	for i := range c.commands {
		c.commands[i].retain()
	}
	s := newSurface(c)
	c.owner = s
	return s
}

func (rs *recordingSurface) paint(op Operator, src *source, c *clip.Clip) (image.Rectangle, Status) {
	return rs.record(command{kind: commandPaint, op: op, src: rs.ref(src), clip: c}, rs.rect)
}

func (rs *recordingSurface) mask(op Operator, src, mask *source, c *clip.Clip) (image.Rectangle, Status) {
	return rs.record(command{kind: commandMask, op: op, src: rs.ref(src), mask: rs.ref(mask), clip: c}, rs.rect)
}

func (rs *recordingSurface) stroke(op Operator, src *source, p *path.Path, style *StrokeStyle, ctm, ctmInverse Matrix, tolerance float64, aa Antialias, c *clip.Clip) (image.Rectangle, Status) {
	bounds := raster.Bounds(strokePolygons(p, style, ctm, ctmInverse, tolerance))
	return rs.record(command{
		kind: commandStroke, op: op, src: rs.ref(src), clip: c,
		path: p.Copy(), style: style.copy(), ctm: ctm, ctmInverse: ctmInverse,
		tolerance: tolerance, aa: aa,
	}, bounds)
}

func (rs *recordingSurface) fill(op Operator, src *source, p *path.Path, rule FillRule, tolerance float64, aa Antialias, c *clip.Clip) (image.Rectangle, Status) {
	var bounds image.Rectangle
	if b, ok := p.Extents(); ok {
		bounds = b.RoundOut()
	}
	return rs.record(command{
		kind: commandFill, op: op, src: rs.ref(src), clip: c,
		path: p.Copy(), rule: rule, tolerance: tolerance, aa: aa,
	}, bounds)
}

func (rs *recordingSurface) glyphs(op Operator, src *source, glyphs []Glyph, sf *ScaledFont, c *clip.Clip) (image.Rectangle, Status) {
	var bounds image.Rectangle
	if p, err := sf.glyphsPath(glyphs); err == nil {
		if b, ok := p.Extents(); ok {
			bounds = b.RoundOut()
		}
	}
	return rs.record(command{
		kind: commandGlyphs, op: op, src: rs.ref(src), clip: c,
		glyphs: append([]Glyph(nil), glyphs...), font: sf.Reference(),
	}, bounds)
}

func (rs *recordingSurface) tag(begin bool, name, attrs string) Status {
	rs.commands = append(rs.commands, command{kind: commandTag, begin: begin, name: name, attrs: attrs})
	return StatusSuccess
}

func (rs *recordingSurface) createSimilar(content Content, width, height int) *Surface {
	return NewRecordingSurface(content, &Rectangle{Width: float64(width), Height: float64(height)})
}

// acquireSourceImage replays the recording into a scratch image covering
// want.
func (rs *recordingSurface) acquireSourceImage(want image.Rectangle) (*image.RGBA, func(), Status) {
	r := want.Intersect(rs.rect)
	format := formatForContent(rs.contentType)
	if format == FormatA8 {
		format = FormatARGB32
	}
	tmp := newImageSurfaceRect(format, r)
	if st := rs.replay(tmp); st.isError() {
		tmp.Destroy()
		return nil, nil, st
	}
	is, _ := tmp.image()
	return is.rgba, tmp.Destroy, StatusSuccess
}

func (rs *recordingSurface) finish() Status {
	for i := range rs.commands {
		rs.commands[i].release()
	}
	rs.commands = nil
	return StatusSuccess
}

func (rs *recordingSurface) flush() Status    { return StatusSuccess }
func (rs *recordingSurface) showPage() Status { return StatusSuccess }
func (rs *recordingSurface) copyPage() Status { return StatusSuccess }
