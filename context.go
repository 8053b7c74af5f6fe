// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"io"
	"sync/atomic"

	"github.com/gogpu/vg/internal/array"
)

// Context is the drawing context. It holds a reference to its target
// surface and forwards every operation to a Backend.
//
// A Context has a sticky status. The first failing operation records its
// error; every later drawing call is then a no-op and getters keep
// returning the state at the time of the error. Check Status after a
// sequence of calls instead of after each call.
//
// A Context is not safe for concurrent use.
type Context struct {
	refs     atomic.Int32
	status   Status
	userData array.UserData
	backend  Backend
}

// Ensure Context implements io.Closer.
var _ io.Closer = (*Context)(nil)

// NewContext creates a context drawing onto target.
//
//	s := vg.NewImageSurface(vg.FormatARGB32, 640, 480)
//	cr := vg.NewContext(s)
//	defer cr.Destroy()
//
// A nil target is an error unless WithBackend supplies the backend. A
// target in error or finished yields a context in error; such a context
// ignores all drawing.
func NewContext(target *Surface, opts ...ContextOption) *Context {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if options.backend != nil {
		return newContext(options.backend, StatusSuccess)
	}
	switch {
	case target == nil:
		return newContextInError(StatusNullPointer)
	case target.Status().isError():
		return newContextInError(target.Status())
	case target.finished:
		return newContextInError(StatusSurfaceFinished)
	}
	return newContext(newDefaultBackend(target, &options), StatusSuccess)
}

func newContext(b Backend, st Status) *Context {
	c := &Context{backend: b, status: st}
	c.refs.Store(1)
	return c
}

func newContextInError(st Status) *Context {
	Logger().Debug("vg: context created in error", "status", st)
	return newContext(nullBackend{}, st)
}

// Status returns the sticky status of c.
func (c *Context) Status() Status {
	if c == nil {
		return StatusNullPointer
	}
	return c.status
}

// Err returns the sticky status of c as an error, or nil.
func (c *Context) Err() error { return c.Status().err() }

// setError records st when c has no error yet. It returns the recorded
// status.
func (c *Context) setError(st Status) Status {
	st = st.public()
	if c.status == StatusSuccess && st.isError() {
		c.status = st
	}
	return c.status
}

// ok reports whether c may run an operation.
func (c *Context) ok() bool { return c.status == StatusSuccess }

// do runs a backend operation on a context not in error.
func (c *Context) do(op func(Backend) Status) {
	if c.ok() {
		c.setError(op(c.backend))
	}
}

// Reference increments the reference count of c.
func (c *Context) Reference() *Context {
	if c != nil {
		c.refs.Add(1)
	}
	return c
}

// ReferenceCount returns the current reference count of c.
func (c *Context) ReferenceCount() int {
	if c == nil {
		return 0
	}
	return int(c.refs.Load())
}

// Destroy drops a reference. The last reference releases the backend,
// the target and the user data.
func (c *Context) Destroy() {
	if c == nil || c.refs.Add(-1) != 0 {
		return
	}
	c.backend.Destroy()
	c.backend = nullBackend{}
	c.userData.Fini()
}

// Close drops the caller's reference to c. It implements io.Closer.
func (c *Context) Close() error {
	c.Destroy()
	return nil
}

// SetUserData attaches value to key. A nil value removes the slot.
func (c *Context) SetUserData(key *UserDataKey, value any, destroy func(any)) error {
	if c.status.isError() {
		return c.status
	}
	if err := c.userData.Set(key, value, destroy); err != nil {
		return c.setError(StatusNoMemory)
	}
	return nil
}

// UserData returns the value attached to key.
func (c *Context) UserData(key *UserDataKey) any {
	return c.userData.Get(key)
}

// Save pushes a copy of the graphics state.
func (c *Context) Save() { c.do(Backend.Save) }

// Restore pops the graphics state pushed by the matching Save. Restoring
// without a matching Save, or across an open group, records
// StatusInvalidRestore.
func (c *Context) Restore() { c.do(Backend.Restore) }

// PushGroup redirects drawing to an intermediate color and alpha surface
// until the matching PopGroup.
func (c *Context) PushGroup() { c.PushGroupWithContent(ContentColorAlpha) }

// PushGroupWithContent is PushGroup with an explicit content.
func (c *Context) PushGroupWithContent(content Content) {
	if !content.valid() {
		c.setError(StatusInvalidContent)
		return
	}
	c.do(func(b Backend) Status { return b.PushGroup(content) })
}

// PopGroup ends the current group and returns it as a surface pattern
// positioned in the user space of the restored state. The caller owns
// the pattern.
func (c *Context) PopGroup() *Pattern {
	if !c.ok() {
		return newPatternInError(c.status)
	}
	p, st := c.backend.PopGroup()
	if st.isError() {
		return newPatternInError(c.setError(st))
	}
	return p
}

// PopGroupToSource ends the current group and makes it the source.
func (c *Context) PopGroupToSource() {
	p := c.PopGroup()
	defer p.Destroy()
	if p.Status().isError() {
		return
	}
	c.SetSource(p)
}

// Target returns the surface c was created for. The caller does not own
// a reference.
func (c *Context) Target() *Surface { return c.backend.Target() }

// GroupTarget returns the surface drawing currently goes to: the
// innermost group or the target.
func (c *Context) GroupTarget() *Surface { return c.backend.GroupTarget() }

// SetOperator sets the compositing operator.
func (c *Context) SetOperator(op Operator) {
	c.do(func(b Backend) Status { return b.SetOperator(op) })
}

// Operator returns the compositing operator.
func (c *Context) Operator() Operator { return c.backend.Operator() }

// SetSource sets the source pattern. Later changes of the CTM do not
// move the pattern.
func (c *Context) SetSource(p *Pattern) {
	c.do(func(b Backend) Status { return b.SetSource(p) })
}

// SetSourceRGB sets an opaque solid source.
func (c *Context) SetSourceRGB(r, g, b float64) { c.SetSourceRGBA(r, g, b, 1) }

// SetSourceRGBA sets a translucent solid source.
func (c *Context) SetSourceRGBA(r, g, b, a float64) {
	c.do(func(be Backend) Status { return be.SetSourceRGBA(r, g, b, a) })
}

// SetSourceSurface sets s as the source with its origin at (x, y) in
// user space.
func (c *Context) SetSourceSurface(s *Surface, x, y float64) {
	c.do(func(b Backend) Status { return b.SetSourceSurface(s, x, y) })
}

// Source returns the source pattern. The caller does not own a
// reference.
func (c *Context) Source() *Pattern { return c.backend.Source() }

// SetTolerance sets the flattening tolerance in device pixels.
func (c *Context) SetTolerance(tolerance float64) {
	c.do(func(b Backend) Status { return b.SetTolerance(tolerance) })
}

// Tolerance returns the flattening tolerance.
func (c *Context) Tolerance() float64 { return c.backend.Tolerance() }

// SetAntialias sets the antialiasing mode of fills, strokes and clips.
func (c *Context) SetAntialias(aa Antialias) {
	c.do(func(b Backend) Status { return b.SetAntialias(aa) })
}

// Antialias returns the antialiasing mode.
func (c *Context) Antialias() Antialias { return c.backend.Antialias() }

// SetFillRule sets the fill rule of fills and clips.
func (c *Context) SetFillRule(rule FillRule) {
	c.do(func(b Backend) Status { return b.SetFillRule(rule) })
}

// FillRule returns the fill rule.
func (c *Context) FillRule() FillRule { return c.backend.FillRule() }

// SetLineWidth sets the stroke width in user space.
func (c *Context) SetLineWidth(width float64) {
	c.do(func(b Backend) Status { return b.SetLineWidth(width) })
}

// LineWidth returns the stroke width.
func (c *Context) LineWidth() float64 { return c.backend.LineWidth() }

// SetHairline makes strokes one device pixel wide.
func (c *Context) SetHairline(hairline bool) {
	c.do(func(b Backend) Status { return b.SetHairline(hairline) })
}

// Hairline reports whether hairline stroking is on.
func (c *Context) Hairline() bool { return c.backend.Hairline() }

// SetLineCap sets the cap style of open subpath ends.
func (c *Context) SetLineCap(lc LineCap) {
	c.do(func(b Backend) Status { return b.SetLineCap(lc) })
}

// LineCap returns the cap style.
func (c *Context) LineCap() LineCap { return c.backend.LineCap() }

// SetLineJoin sets the join style.
func (c *Context) SetLineJoin(lj LineJoin) {
	c.do(func(b Backend) Status { return b.SetLineJoin(lj) })
}

// LineJoin returns the join style.
func (c *Context) LineJoin() LineJoin { return c.backend.LineJoin() }

// SetMiterLimit sets the ratio above which miter joins become bevels.
func (c *Context) SetMiterLimit(limit float64) {
	c.do(func(b Backend) Status { return b.SetMiterLimit(limit) })
}

// MiterLimit returns the miter limit.
func (c *Context) MiterLimit() float64 { return c.backend.MiterLimit() }

// SetDash sets the dash pattern in user space. An empty pattern turns
// dashing off. Negative entries and patterns of zeros record
// StatusInvalidDash.
func (c *Context) SetDash(dashes []float64, offset float64) {
	c.do(func(b Backend) Status { return b.SetDash(dashes, offset) })
}

// Dash returns a copy of the dash pattern and its offset.
func (c *Context) Dash() ([]float64, float64) { return c.backend.Dash() }

// DashCount returns the number of entries of the dash pattern.
func (c *Context) DashCount() int {
	d, _ := c.backend.Dash()
	return len(d)
}

// Translate moves the user-space origin by (tx, ty).
func (c *Context) Translate(tx, ty float64) {
	c.do(func(b Backend) Status { return b.Translate(tx, ty) })
}

// Scale scales the user-space axes.
func (c *Context) Scale(sx, sy float64) {
	c.do(func(b Backend) Status { return b.Scale(sx, sy) })
}

// Rotate rotates the user-space axes by radians.
func (c *Context) Rotate(radians float64) {
	c.do(func(b Backend) Status { return b.Rotate(radians) })
}

// Transform applies m to user space before the current CTM.
func (c *Context) Transform(m Matrix) {
	c.do(func(b Backend) Status { return b.Transform(m) })
}

// SetMatrix replaces the CTM. A non-invertible m records
// StatusInvalidMatrix and leaves the CTM unchanged.
func (c *Context) SetMatrix(m Matrix) {
	c.do(func(b Backend) Status { return b.SetMatrix(m) })
}

// IdentityMatrix resets the CTM.
func (c *Context) IdentityMatrix() { c.do(Backend.IdentityMatrix) }

// Matrix returns the CTM.
func (c *Context) Matrix() Matrix { return c.backend.Matrix() }

// UserToDevice maps a point from user space to device space.
func (c *Context) UserToDevice(x, y float64) (float64, float64) {
	return c.backend.UserToDevice(x, y)
}

// UserToDeviceDistance maps a distance vector from user space to device
// space.
func (c *Context) UserToDeviceDistance(dx, dy float64) (float64, float64) {
	return c.backend.UserToDeviceDistance(dx, dy)
}

// DeviceToUser maps a point from device space to user space.
func (c *Context) DeviceToUser(x, y float64) (float64, float64) {
	return c.backend.DeviceToUser(x, y)
}

// DeviceToUserDistance maps a distance vector from device space to user
// space.
func (c *Context) DeviceToUserDistance(dx, dy float64) (float64, float64) {
	return c.backend.DeviceToUserDistance(dx, dy)
}

// TagBegin opens a tag. Attributes are a list of key=value pairs.
func (c *Context) TagBegin(name, attributes string) {
	c.do(func(b Backend) Status { return b.TagBegin(name, attributes) })
}

// TagEnd closes the innermost open tag, which must be name.
func (c *Context) TagEnd(name string) {
	c.do(func(b Backend) Status { return b.TagEnd(name) })
}

// ShowPage emits the current page of the target and clears it.
func (c *Context) ShowPage() { c.do(Backend.ShowPage) }

// CopyPage emits the current page of the target and keeps its contents.
func (c *Context) CopyPage() { c.do(Backend.CopyPage) }
