// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"image"
	"sync/atomic"

	"github.com/gogpu/vg/internal/array"
	"github.com/gogpu/vg/internal/clip"
	"github.com/gogpu/vg/internal/path"
	"github.com/gogpu/vg/region"
)

// SurfaceType identifies the backend of a surface.
type SurfaceType int

// Surface types.
const (
	SurfaceTypeImage SurfaceType = iota
	SurfaceTypeRecording
)

// source is a pattern prepared for a surface operation. matrix maps the
// target's pixel space to pattern space.
type source struct {
	pattern *Pattern
	matrix  Matrix
}

// surfaceBackend is the compositor contract of a concrete surface. Every
// drawing entry point returns the pixel rectangle it may have touched.
// Callers have already filtered out finished surfaces, all-clipped clips
// and operations that cannot change a pixel.
type surfaceBackend interface {
	kind() SurfaceType
	content() Content
	extents() (image.Rectangle, bool)

	paint(op Operator, src *source, c *clip.Clip) (image.Rectangle, Status)
	mask(op Operator, src, mask *source, c *clip.Clip) (image.Rectangle, Status)
	stroke(op Operator, src *source, p *path.Path, style *StrokeStyle, ctm, ctmInverse Matrix, tolerance float64, aa Antialias, c *clip.Clip) (image.Rectangle, Status)
	fill(op Operator, src *source, p *path.Path, rule FillRule, tolerance float64, aa Antialias, c *clip.Clip) (image.Rectangle, Status)
	glyphs(op Operator, src *source, glyphs []Glyph, sf *ScaledFont, c *clip.Clip) (image.Rectangle, Status)
	tag(begin bool, name, attrs string) Status

	// createSimilar returns nil when the backend has no preference; the
	// caller then uses an image surface.
	createSimilar(content Content, width, height int) *Surface
	// acquireSourceImage returns premultiplied pixels covering at least
	// want, in the surface's pixel space.
	acquireSourceImage(want image.Rectangle) (*image.RGBA, func(), Status)

	finish() Status
	flush() Status
	showPage() Status
	copyPage() Status
}

// Surface is a drawing target: an image in memory or a recording of
// drawing operations.
//
// Surfaces are reference counted. A surface created in error is inert.
type Surface struct {
	refs   atomic.Int32
	status Status

	backend  surfaceBackend
	finished bool
	// isClear is set while every pixel is known to be transparent.
	isClear bool

	// device maps device space to pixel space.
	device        Matrix
	deviceInverse Matrix

	damage   *region.Region
	userData array.UserData
}

func newSurface(b surfaceBackend) *Surface {
	s := &Surface{
		backend:       b,
		isClear:       true,
		device:        Identity(),
		deviceInverse: Identity(),
		damage:        region.New(),
	}
	s.refs.Store(1)
	return s
}

func newSurfaceInError(st Status) *Surface {
	s := &Surface{status: st, device: Identity(), deviceInverse: Identity(), damage: region.NewInError(st)}
	s.refs.Store(1)
	return s
}

func (s *Surface) setError(st Status) Status {
	st = st.public()
	if s.status == StatusSuccess && st.isError() {
		s.status = st
	}
	return st
}

// Status returns the sticky status of s.
func (s *Surface) Status() Status {
	if s == nil {
		return StatusNullPointer
	}
	return s.status
}

// Type returns the backend type of s.
func (s *Surface) Type() SurfaceType {
	if s.backend == nil {
		return SurfaceTypeImage
	}
	return s.backend.kind()
}

// Content returns what s stores.
func (s *Surface) Content() Content { return s.content() }

func (s *Surface) content() Content {
	if s.backend == nil {
		return ContentColorAlpha
	}
	return s.backend.content()
}

// Extents returns the pixel bounds of s. ok is false for unbounded
// surfaces.
func (s *Surface) Extents() (r image.Rectangle, ok bool) {
	if s.backend == nil {
		return image.Rectangle{}, true
	}
	return s.backend.extents()
}

// snapshot returns a surface with the current contents of s and the same
// device transform.
func (s *Surface) snapshot() *Surface {
	if s.status.isError() || s.finished {
		return s.Reference()
	}
	var c *Surface
	switch b := s.backend.(type) {
	case *imageSurface:
		c = b.copySurface()
	case *recordingSurface:
		c = b.copySurface()
	default:
		return s.Reference()
	}
	c.isClear = s.isClear
	c.device, c.deviceInverse = s.device, s.deviceInverse
	return c
}

// Reference increments the reference count of s and returns it.
func (s *Surface) Reference() *Surface {
	if s != nil {
		s.refs.Add(1)
	}
	return s
}

// ReferenceCount returns the current reference count of s.
func (s *Surface) ReferenceCount() int {
	if s == nil {
		return 0
	}
	return int(s.refs.Load())
}

// Destroy drops a reference. The last reference finishes the surface and
// destroys its user data.
func (s *Surface) Destroy() {
	if s == nil || s.refs.Add(-1) != 0 {
		return
	}
	if !s.finished && s.backend != nil {
		s.finish()
	}
	s.userData.Fini()
}

// Finish releases the resources of s and disconnects it from its
// backend. Drawing on a finished surface records StatusSurfaceFinished.
func (s *Surface) Finish() {
	if s.status.isError() || s.finished {
		return
	}
	s.finish()
}

func (s *Surface) finish() {
	if st := s.backend.flush(); st.isError() {
		s.setError(st)
	}
	s.finished = true
	if st := s.backend.finish(); st.isError() {
		s.setError(st)
		Logger().Warn("vg: surface finished with error", "type", s.backend.kind(), "status", st)
	}
}

// Flush completes pending drawing.
func (s *Surface) Flush() {
	if s.status.isError() || s.finished {
		return
	}
	s.setError(s.backend.flush())
}

// MarkDirty tells s that its pixels were changed outside of vg.
func (s *Surface) MarkDirty() {
	r, ok := s.Extents()
	if !ok {
		return
	}
	s.MarkDirtyRectangle(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// MarkDirtyRectangle tells s that the given pixel rectangle was changed
// outside of vg.
func (s *Surface) MarkDirtyRectangle(x, y, width, height int) {
	if s.status.isError() {
		return
	}
	if s.finished {
		s.setError(StatusSurfaceFinished)
		return
	}
	r := image.Rect(x, y, x+width, y+height)
	if r.Empty() {
		return
	}
	s.isClear = false
	s.addDamage(r)
}

func (s *Surface) addDamage(r image.Rectangle) {
	if r.Empty() || s.damage == nil {
		return
	}
	_ = s.damage.UnionRectangle(r)
}

// Damage returns a copy of the region of pixels changed since the last
// call to ResetDamage.
func (s *Surface) Damage() *region.Region {
	if s.damage == nil {
		return region.New()
	}
	return s.damage.Copy()
}

// ResetDamage empties the damage region.
func (s *Surface) ResetDamage() {
	if s.status.isError() {
		return
	}
	s.damage = region.New()
}

// SetDeviceOffset sets the offset added to device coordinates to get
// pixel coordinates.
func (s *Surface) SetDeviceOffset(x, y float64) {
	if s.status.isError() {
		return
	}
	if s.finished {
		s.setError(StatusSurfaceFinished)
		return
	}
	s.device.X0, s.device.Y0 = x, y
	s.deviceInverse, _ = s.device.Invert()
}

// DeviceOffset returns the device offset of s.
func (s *Surface) DeviceOffset() (x, y float64) {
	return s.device.X0, s.device.Y0
}

// SetDeviceScale sets the scale from device to pixel coordinates.
func (s *Surface) SetDeviceScale(sx, sy float64) {
	if s.status.isError() {
		return
	}
	if s.finished {
		s.setError(StatusSurfaceFinished)
		return
	}
	m := s.device
	m.XX, m.YY = sx, sy
	inv, err := m.Invert()
	if err != nil {
		s.setError(StatusInvalidMatrix)
		return
	}
	s.device, s.deviceInverse = m, inv
}

// DeviceScale returns the device scale of s.
func (s *Surface) DeviceScale() (sx, sy float64) {
	return s.device.XX, s.device.YY
}

// SetUserData attaches value to key. A nil value removes the slot.
func (s *Surface) SetUserData(key *UserDataKey, value any, destroy func(any)) error {
	if s.status.isError() {
		return s.status
	}
	if err := s.userData.Set(key, value, destroy); err != nil {
		return s.setError(StatusNoMemory)
	}
	return nil
}

// UserData returns the value attached to key.
func (s *Surface) UserData(key *UserDataKey) any {
	return s.userData.Get(key)
}

// CreateSimilar returns a new surface suited to be drawn onto s. The new
// surface inherits the device scale of s.
func (s *Surface) CreateSimilar(content Content, width, height int) *Surface {
	if s.status.isError() {
		return newSurfaceInError(s.status)
	}
	if s.finished {
		return newSurfaceInError(StatusSurfaceFinished)
	}
	if !content.valid() {
		return newSurfaceInError(StatusInvalidContent)
	}
	if width < 0 || height < 0 {
		return newSurfaceInError(StatusInvalidSize)
	}
	sim := s.createSimilar(content, width, height)
	if sim.status.isError() {
		return sim
	}
	sim.SetDeviceScale(s.device.XX, s.device.YY)
	return sim
}

func (s *Surface) createSimilar(content Content, width, height int) *Surface {
	if sim := s.backend.createSimilar(content, width, height); sim != nil {
		return sim
	}
	return NewImageSurface(formatForContent(content), width, height)
}

// ShowPage emits the current page and clears the surface.
func (s *Surface) ShowPage() {
	if s.status.isError() {
		return
	}
	if s.finished {
		s.setError(StatusSurfaceFinished)
		return
	}
	s.setError(s.backend.showPage())
}

// CopyPage emits the current page and keeps its contents.
func (s *Surface) CopyPage() {
	if s.status.isError() {
		return
	}
	if s.finished {
		s.setError(StatusSurfaceFinished)
		return
	}
	s.setError(s.backend.copyPage())
}

// The methods below are the generic compositor entry points used by the
// default backend. Each returns the status to record on the context.

func (s *Surface) begin(c *clip.Clip, srcs ...*source) (Status, bool) {
	if s.status.isError() {
		return s.status, false
	}
	if s.finished {
		return s.setError(StatusSurfaceFinished), false
	}
	for _, src := range srcs {
		if st := src.pattern.status; st.isError() {
			return st, false
		}
	}
	if c.IsAllClipped() {
		return StatusSuccess, false
	}
	return StatusSuccess, true
}

// nothingToDo reports whether op with src cannot change any pixel.
func (s *Surface) nothingToDo(op Operator, src *Pattern) bool {
	if op == OperatorDest {
		return true
	}
	if op == OperatorClear && s.isClear {
		return true
	}
	return op.boundedBySource() && src.isClear()
}

func (s *Surface) done(op Operator, r image.Rectangle, st Status) Status {
	if st == intStatusNothingToDo {
		return StatusSuccess
	}
	if st.isError() {
		return s.setError(st)
	}
	st = st.public()
	if !r.Empty() {
		s.isClear = false
		s.addDamage(r)
	}
	return st
}

func (s *Surface) paint(op Operator, src *source, c *clip.Clip) Status {
	if st, ok := s.begin(c, src); !ok {
		return st
	}
	if s.nothingToDo(op, src.pattern) {
		return StatusSuccess
	}
	r, st := s.backend.paint(op, src, c)
	st = s.done(op, r, st)
	if st == StatusSuccess && c == nil && (op == OperatorClear || (op == OperatorSource && src.pattern.isClear())) {
		s.isClear = true
	}
	return st
}

func (s *Surface) mask(op Operator, src, mask *source, c *clip.Clip) Status {
	if st, ok := s.begin(c, src, mask); !ok {
		return st
	}
	if s.nothingToDo(op, src.pattern) {
		return StatusSuccess
	}
	if op.boundedByMask() && mask.pattern.isClear() {
		return StatusSuccess
	}
	r, st := s.backend.mask(op, src, mask, c)
	return s.done(op, r, st)
}

func (s *Surface) stroke(op Operator, src *source, p *path.Path, style *StrokeStyle, ctm, ctmInverse Matrix, tolerance float64, aa Antialias, c *clip.Clip) Status {
	if st, ok := s.begin(c, src); !ok {
		return st
	}
	if s.nothingToDo(op, src.pattern) {
		return StatusSuccess
	}
	r, st := s.backend.stroke(op, src, p, style, ctm, ctmInverse, tolerance, aa, c)
	return s.done(op, r, st)
}

func (s *Surface) fill(op Operator, src *source, p *path.Path, rule FillRule, tolerance float64, aa Antialias, c *clip.Clip) Status {
	if st, ok := s.begin(c, src); !ok {
		return st
	}
	if s.nothingToDo(op, src.pattern) {
		return StatusSuccess
	}
	if p.Empty() && op.boundedByMask() {
		return StatusSuccess
	}
	r, st := s.backend.fill(op, src, p, rule, tolerance, aa, c)
	return s.done(op, r, st)
}

func (s *Surface) showGlyphs(op Operator, src *source, glyphs []Glyph, sf *ScaledFont, c *clip.Clip) Status {
	if st, ok := s.begin(c, src); !ok {
		return st
	}
	if len(glyphs) == 0 || s.nothingToDo(op, src.pattern) {
		return StatusSuccess
	}
	if st := sf.status; st.isError() {
		return st
	}
	r, st := s.backend.glyphs(op, src, glyphs, sf, c)
	return s.done(op, r, st)
}

func (s *Surface) tag(begin bool, name, attrs string) Status {
	if s.status.isError() {
		return s.status
	}
	if s.finished {
		return s.setError(StatusSurfaceFinished)
	}
	st := s.backend.tag(begin, name, attrs)
	if st.isError() {
		return s.setError(st)
	}
	return StatusSuccess
}

// acquireSourceImage returns the pixels of s covering want.
func (s *Surface) acquireSourceImage(want image.Rectangle) (*image.RGBA, func(), Status) {
	if s.status.isError() {
		return nil, nil, s.status
	}
	if s.finished {
		return nil, nil, StatusSurfaceFinished
	}
	return s.backend.acquireSourceImage(want)
}
