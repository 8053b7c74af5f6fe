// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"image"
	"slices"
	"sync"

	"github.com/gogpu/vg/internal/clip"
	"github.com/gogpu/vg/internal/path"
)

// defaultBackend is the gstate-based Backend that draws through the
// compositor of its target surface.
type defaultBackend struct {
	gstate *gstate
	base   gstate
	pool   gstatePool

	// path is in the pixel space of the current target.
	path *path.Path
	tags tagStack
}

var _ ArcToBackend = (*defaultBackend)(nil)

// defaultBackends recycles backends of destroyed contexts.
var defaultBackends = sync.Pool{
	New: func() any { return new(defaultBackend) },
}

func newDefaultBackend(target *Surface, o *contextOptions) *defaultBackend {
	b := defaultBackends.Get().(*defaultBackend)
	b.base.init(target)
	b.base.tolerance = o.tolerance
	b.base.antialias = o.antialias
	b.gstate = &b.base
	b.pool.limit = o.gstatePoolSize
	if b.path == nil {
		b.path = path.New()
	}
	return b
}

func (b *defaultBackend) Destroy() {
	for b.gstate != &b.base {
		g := b.gstate
		b.gstate = g.next
		g.fini()
	}
	b.base.fini()
	b.gstate = nil
	b.pool.drain()
	b.path.Reset()
	b.tags.reset()
	defaultBackends.Put(b)
}

func (b *defaultBackend) Save() Status {
	g := b.pool.get()
	g.initCopy(b.gstate)
	g.next = b.gstate
	b.gstate = g
	return StatusSuccess
}

func (b *defaultBackend) Restore() Status {
	top := b.gstate
	if top == &b.base || top.isGroup() {
		return StatusInvalidRestore
	}
	b.pop()
	return StatusSuccess
}

// pop removes the top frame. Popping the base frame is a bug in the
// caller.
func (b *defaultBackend) pop() {
	top := b.gstate
	if top.next == nil {
		panic("vg: gstate stack underflow")
	}
	b.gstate = top.next
	top.fini()
	b.pool.put(top)
}

func (b *defaultBackend) PushGroup(content Content) Status {
	g := b.gstate
	parent := g.target
	var (
		group  *Surface
		origin image.Point
	)
	ext, bounded := parent.Extents()
	switch {
	case g.clip.IsAllClipped():
		group = NewImageSurface(formatForContent(content), 0, 0)
	case bounded:
		r := g.clip.Bounds(ext)
		origin = r.Min
		group = parent.createSimilar(content, r.Dx(), r.Dy())
	default:
		group = NewRecordingSurface(content, nil)
	}
	if st := group.Status(); st.isError() {
		return st
	}
	group.device = parent.device.Multiply(Translate(float64(-origin.X), float64(-origin.Y)))
	group.deviceInverse, _ = group.device.Invert()

	b.Save()
	top := b.gstate
	top.parentTarget = top.target
	top.target = group
	top.groupOrigin = origin
	top.clip = top.clip.Translate(path.FromInt(-origin.X), path.FromInt(-origin.Y))
	top.updateBackend()
	top.unsetScaledFont()
	b.path.Translate(path.FromInt(-origin.X), path.FromInt(-origin.Y))
	Logger().Debug("vg: push group", "origin", origin, "bounded", bounded)
	return StatusSuccess
}

func (b *defaultBackend) PopGroup() (*Pattern, Status) {
	top := b.gstate
	if !top.isGroup() {
		return nil, StatusInvalidPopGroup
	}
	group := top.target.Reference()
	origin := top.groupOrigin
	b.pop()

	group.Flush()
	p := NewSurfacePattern(group)
	p.SetMatrix(b.gstate.ctm)
	if ext, bounded := group.Extents(); bounded {
		g := b.gstate
		p.group = &groupSource{
			target: g.target,
			clip:   g.clip,
			matrix: g.pattern(p, g.ctmInverse).matrix,
			rect:   ext.Add(origin),
		}
	}
	group.Destroy()
	b.path.Translate(path.FromInt(origin.X), path.FromInt(origin.Y))
	Logger().Debug("vg: pop group", "origin", origin)
	return p, StatusSuccess
}

// groupSource records where PopGroup took a group's pixels from. The
// pixels were drawn through clip already.
type groupSource struct {
	target *Surface
	clip   *clip.Clip
	matrix Matrix
	rect   image.Rectangle
}

// drawClip returns the clip to composite src through. A group pattern
// painted back where it was popped, with an operator linear in the
// source alpha, is bounded by its rectangle only, so the clip coverage is
// not applied twice along antialiased edges.
func (g *gstate) drawClip(op Operator, src *source) *clip.Clip {
	gs := src.pattern.group
	if gs == nil || gs.target != g.target || !op.boundedBySource() || op == OperatorSaturate {
		return g.clip
	}
	if src.pattern.extend != ExtendNone || src.matrix != gs.matrix || !clip.Equal(g.clip, gs.clip) {
		return g.clip
	}
	return clip.IntersectRectangle(nil, gs.rect)
}

func (b *defaultBackend) Target() *Surface      { return b.gstate.originalTarget }
func (b *defaultBackend) GroupTarget() *Surface { return b.gstate.target }

func (b *defaultBackend) SetOperator(op Operator) Status {
	if !op.valid() {
		return StatusInvalidIndex
	}
	b.gstate.op = op
	return StatusSuccess
}

func (b *defaultBackend) SetSource(p *Pattern) Status {
	if p == nil {
		return StatusNullPointer
	}
	if st := p.Status(); st.isError() {
		return st
	}
	g := b.gstate
	p.Reference()
	g.source.Destroy()
	g.source = p
	g.sourceCTMInverse = g.ctmInverse
	return StatusSuccess
}

func (b *defaultBackend) SetSourceRGBA(r, gr, bl, a float64) Status {
	g := b.gstate
	c := RGBA{R: r, G: gr, B: bl, A: a}.clamp()
	if g.source.typ == PatternTypeSolid && g.source.color.equal(c) {
		return StatusSuccess
	}
	p := NewSolidPatternRGBA(c.R, c.G, c.B, c.A)
	defer p.Destroy()
	return b.SetSource(p)
}

func (b *defaultBackend) SetSourceSurface(s *Surface, x, y float64) Status {
	if s == nil {
		return StatusNullPointer
	}
	p := NewSurfacePattern(s)
	defer p.Destroy()
	p.SetMatrix(Translate(-x, -y))
	return b.SetSource(p)
}

func (b *defaultBackend) SetTolerance(tolerance float64) Status {
	b.gstate.tolerance = max(tolerance, minTolerance)
	return StatusSuccess
}

func (b *defaultBackend) SetAntialias(aa Antialias) Status {
	if aa < AntialiasDefault || aa > AntialiasBest {
		return StatusInvalidIndex
	}
	b.gstate.antialias = aa
	return StatusSuccess
}

func (b *defaultBackend) SetFillRule(rule FillRule) Status {
	if rule != FillRuleWinding && rule != FillRuleEvenOdd {
		return StatusInvalidIndex
	}
	b.gstate.fillRule = rule
	return StatusSuccess
}

func (b *defaultBackend) SetLineWidth(width float64) Status {
	b.gstate.style.Width = max(width, 0)
	return StatusSuccess
}

func (b *defaultBackend) SetHairline(hairline bool) Status {
	b.gstate.style.Hairline = hairline
	return StatusSuccess
}

func (b *defaultBackend) SetLineCap(lc LineCap) Status {
	if lc < LineCapButt || lc > LineCapSquare {
		return StatusInvalidIndex
	}
	b.gstate.style.Cap = lc
	return StatusSuccess
}

func (b *defaultBackend) SetLineJoin(lj LineJoin) Status {
	if lj < LineJoinMiter || lj > LineJoinBevel {
		return StatusInvalidIndex
	}
	b.gstate.style.Join = lj
	return StatusSuccess
}

func (b *defaultBackend) SetMiterLimit(limit float64) Status {
	b.gstate.style.MiterLimit = limit
	return StatusSuccess
}

// SetDash validates the whole pattern before changing anything. An empty
// pattern disables dashing.
func (b *defaultBackend) SetDash(dashes []float64, offset float64) Status {
	total := 0.0
	for _, d := range dashes {
		if !(d >= 0) {
			return StatusInvalidDash
		}
		total += d
	}
	if len(dashes) > 0 && total == 0 {
		return StatusInvalidDash
	}
	b.gstate.style.Dash = slices.Clone(dashes)
	b.gstate.style.DashOffset = offset
	return StatusSuccess
}

func (b *defaultBackend) Operator() Operator   { return b.gstate.op }
func (b *defaultBackend) Source() *Pattern     { return b.gstate.source }
func (b *defaultBackend) Tolerance() float64   { return b.gstate.tolerance }
func (b *defaultBackend) Antialias() Antialias { return b.gstate.antialias }
func (b *defaultBackend) FillRule() FillRule   { return b.gstate.fillRule }
func (b *defaultBackend) LineWidth() float64   { return b.gstate.style.Width }
func (b *defaultBackend) Hairline() bool       { return b.gstate.style.Hairline }
func (b *defaultBackend) LineCap() LineCap     { return b.gstate.style.Cap }
func (b *defaultBackend) LineJoin() LineJoin   { return b.gstate.style.Join }
func (b *defaultBackend) MiterLimit() float64  { return b.gstate.style.MiterLimit }

func (b *defaultBackend) Dash() ([]float64, float64) {
	return slices.Clone(b.gstate.style.Dash), b.gstate.style.DashOffset
}

func (b *defaultBackend) Translate(tx, ty float64) Status {
	return b.gstate.setCTM(Translate(tx, ty).Multiply(b.gstate.ctm))
}

func (b *defaultBackend) Scale(sx, sy float64) Status {
	return b.gstate.setCTM(Scale(sx, sy).Multiply(b.gstate.ctm))
}

func (b *defaultBackend) Rotate(radians float64) Status {
	return b.gstate.setCTM(Rotate(radians).Multiply(b.gstate.ctm))
}

func (b *defaultBackend) Transform(m Matrix) Status {
	return b.gstate.setCTM(m.Multiply(b.gstate.ctm))
}

func (b *defaultBackend) SetMatrix(m Matrix) Status { return b.gstate.setCTM(m) }
func (b *defaultBackend) IdentityMatrix() Status    { return b.gstate.setCTM(Identity()) }
func (b *defaultBackend) Matrix() Matrix            { return b.gstate.ctm }

func (b *defaultBackend) UserToDevice(x, y float64) (float64, float64) {
	return b.gstate.ctm.TransformPoint(x, y)
}

func (b *defaultBackend) UserToDeviceDistance(dx, dy float64) (float64, float64) {
	return b.gstate.ctm.TransformDistance(dx, dy)
}

func (b *defaultBackend) DeviceToUser(x, y float64) (float64, float64) {
	return b.gstate.ctmInverse.TransformPoint(x, y)
}

func (b *defaultBackend) DeviceToUserDistance(dx, dy float64) (float64, float64) {
	return b.gstate.ctmInverse.TransformDistance(dx, dy)
}

func (b *defaultBackend) TagBegin(name, attributes string) Status {
	if st := b.tags.begin(name, attributes); st.isError() {
		return st
	}
	return b.gstate.target.tag(true, name, attributes)
}

func (b *defaultBackend) TagEnd(name string) Status {
	if st := b.tags.end(name); st.isError() {
		return st
	}
	return b.gstate.target.tag(false, name, "")
}

func (b *defaultBackend) ShowPage() Status {
	t := b.gstate.target
	t.ShowPage()
	return t.Status()
}

func (b *defaultBackend) CopyPage() Status {
	t := b.gstate.target
	t.CopyPage()
	return t.Status()
}
