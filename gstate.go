// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"image"

	"github.com/gogpu/vg/internal/clip"
)

// Graphics state defaults.
const (
	defaultTolerance  = 0.1
	defaultLineWidth  = 2.0
	defaultMiterLimit = 10.0
	defaultFontSize   = 10.0

	// minTolerance is one fixed-point unit.
	minTolerance = 1.0 / 64
)

// gstate is one frame of the save/restore stack.
type gstate struct {
	op        Operator
	tolerance float64
	antialias Antialias
	style     StrokeStyle
	fillRule  FillRule

	fontFace    *FontFace
	scaledFont  *ScaledFont
	fontMatrix  Matrix
	fontOptions FontOptions

	// clip is in the pixel space of target.
	clip *clip.Clip

	target *Surface
	// parentTarget is set on group frames only; groupOrigin is where the
	// group's pixels sit in the parent's pixel space.
	parentTarget   *Surface
	groupOrigin    image.Point
	originalTarget *Surface

	ctm              Matrix
	ctmInverse       Matrix
	sourceCTMInverse Matrix
	// toBackend maps user space to target pixels; fromBackend is its
	// inverse.
	toBackend   Matrix
	fromBackend Matrix

	source *Pattern

	next *gstate
}

func (g *gstate) init(target *Surface) {
	*g = gstate{
		op:        OperatorOver,
		tolerance: defaultTolerance,
		antialias: AntialiasDefault,
		style: StrokeStyle{
			Width:      defaultLineWidth,
			Cap:        LineCapButt,
			Join:       LineJoinMiter,
			MiterLimit: defaultMiterLimit,
		},
		fillRule:         FillRuleWinding,
		fontMatrix:       Scale(defaultFontSize, defaultFontSize),
		target:           target.Reference(),
		originalTarget:   target.Reference(),
		ctm:              Identity(),
		ctmInverse:       Identity(),
		sourceCTMInverse: Identity(),
		source:           NewSolidPattern(0, 0, 0),
	}
	g.updateBackend()
}

// initCopy makes g a copy of o sharing its immutable values. The copy is
// never a group frame.
func (g *gstate) initCopy(o *gstate) {
	*g = *o
	g.style = o.style.copy()
	g.fontFace = o.fontFace.Reference()
	g.scaledFont = o.scaledFont.Reference()
	g.target = o.target.Reference()
	g.originalTarget = o.originalTarget.Reference()
	g.parentTarget = nil
	g.groupOrigin = image.Point{}
	g.source = o.source.Reference()
	g.next = nil
}

// fini drops the references held by g.
func (g *gstate) fini() {
	g.fontFace.Destroy()
	g.scaledFont.Destroy()
	g.target.Destroy()
	if g.parentTarget != nil {
		g.parentTarget.Destroy()
	}
	g.originalTarget.Destroy()
	g.source.Destroy()
	*g = gstate{}
}

func (g *gstate) isGroup() bool { return g.parentTarget != nil }

func (g *gstate) updateBackend() {
	g.toBackend = g.ctm.Multiply(g.target.device)
	g.fromBackend = g.target.deviceInverse.Multiply(g.ctmInverse)
}

// setCTM replaces the CTM. It fails without side effects when m is not
// invertible.
func (g *gstate) setCTM(m Matrix) Status {
	inv, err := m.Invert()
	if err != nil {
		return StatusInvalidMatrix
	}
	g.ctm, g.ctmInverse = m, inv
	g.updateBackend()
	g.unsetScaledFont()
	return StatusSuccess
}

func (g *gstate) unsetScaledFont() {
	if g.scaledFont != nil {
		g.scaledFont.Destroy()
		g.scaledFont = nil
	}
}

// source returns the source prepared for drawing onto target.
func (g *gstate) preparedSource() source {
	return g.pattern(g.source, g.sourceCTMInverse)
}

// pattern prepares p drawn with the user space described by ctmInverse.
func (g *gstate) pattern(p *Pattern, ctmInverse Matrix) source {
	return source{
		pattern: p,
		matrix:  g.target.deviceInverse.Multiply(ctmInverse).Multiply(p.matrix),
	}
}

// reducedOperator returns the cheaper equivalent of g.op for the current
// source.
func (g *gstate) reducedOperator() Operator {
	if g.op == OperatorSource && g.source.typ == PatternTypeSolid && g.source.isClear() {
		return OperatorClear
	}
	return g.op
}

// backendScale returns the larger scale factor of toBackend, used to
// convert user lengths to pixels.
func (g *gstate) backendScale() float64 {
	sx, sy := g.toBackend.scaleFactors()
	return max(sx, sy)
}
