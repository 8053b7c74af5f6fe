// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

// Backend implements the operations of a Context. A Context checks its
// own status before every call and records the first error a Backend
// returns; a Backend therefore never sees calls on a context in error.
//
// A Backend must leave its visible state (path, CTM, clip, current
// point) unchanged when it returns an error. Custom backends can embed
// UnsupportedBackend and override the operations they support.
type Backend interface {
	// Destroy releases the backend when its context is destroyed.
	Destroy()

	Save() Status
	Restore() Status
	PushGroup(content Content) Status
	PopGroup() (*Pattern, Status)
	Target() *Surface
	GroupTarget() *Surface

	SetOperator(op Operator) Status
	SetSource(p *Pattern) Status
	SetSourceRGBA(r, g, b, a float64) Status
	SetSourceSurface(s *Surface, x, y float64) Status
	SetTolerance(tolerance float64) Status
	SetAntialias(aa Antialias) Status
	SetFillRule(rule FillRule) Status
	SetLineWidth(width float64) Status
	SetHairline(hairline bool) Status
	SetLineCap(lc LineCap) Status
	SetLineJoin(lj LineJoin) Status
	SetMiterLimit(limit float64) Status
	SetDash(dashes []float64, offset float64) Status

	Operator() Operator
	Source() *Pattern
	Tolerance() float64
	Antialias() Antialias
	FillRule() FillRule
	LineWidth() float64
	Hairline() bool
	LineCap() LineCap
	LineJoin() LineJoin
	MiterLimit() float64
	Dash() (dashes []float64, offset float64)

	Translate(tx, ty float64) Status
	Scale(sx, sy float64) Status
	Rotate(radians float64) Status
	Transform(m Matrix) Status
	SetMatrix(m Matrix) Status
	IdentityMatrix() Status
	Matrix() Matrix
	UserToDevice(x, y float64) (float64, float64)
	UserToDeviceDistance(dx, dy float64) (float64, float64)
	DeviceToUser(x, y float64) (float64, float64)
	DeviceToUserDistance(dx, dy float64) (float64, float64)

	NewPath() Status
	NewSubPath() Status
	MoveTo(x, y float64) Status
	LineTo(x, y float64) Status
	CurveTo(x1, y1, x2, y2, x3, y3 float64) Status
	// Arc adds an arc with angles already normalized by the caller.
	Arc(xc, yc, radius, angle1, angle2 float64, forward bool) Status
	RelMoveTo(dx, dy float64) Status
	RelLineTo(dx, dy float64) Status
	RelCurveTo(dx1, dy1, dx2, dy2, dx3, dy3 float64) Status
	Rectangle(x, y, width, height float64) Status
	ClosePath() Status
	PathExtents() (x1, y1, x2, y2 float64)
	HasCurrentPoint() bool
	CurrentPoint() (x, y float64)
	CopyPath() *Path
	CopyPathFlat() *Path
	AppendPath(p *Path) Status

	Paint() Status
	PaintWithAlpha(alpha float64) Status
	Mask(p *Pattern) Status
	Stroke() Status
	StrokePreserve() Status
	Fill() Status
	FillPreserve() Status
	InStroke(x, y float64) (bool, Status)
	InFill(x, y float64) bool
	StrokeExtents() (x1, y1, x2, y2 float64, st Status)
	FillExtents() (x1, y1, x2, y2 float64)

	Clip() Status
	ClipPreserve() Status
	ResetClip() Status
	InClip(x, y float64) bool
	ClipExtents() (x1, y1, x2, y2 float64)
	CopyClipRectangleList() ([]Rectangle, Status)

	SelectFontFace(family string, slant FontSlant, weight FontWeight) Status
	SetFontFace(f *FontFace) Status
	FontFace() *FontFace
	SetFontSize(size float64) Status
	SetFontMatrix(m Matrix) Status
	FontMatrix() Matrix
	SetFontOptions(o FontOptions) Status
	FontOptions() FontOptions
	SetScaledFont(sf *ScaledFont) Status
	ScaledFont() *ScaledFont
	FontExtents() (FontExtents, Status)
	TextToGlyphs(x, y float64, text string, wantClusters bool) ([]Glyph, []TextCluster, TextClusterFlags, Status)
	ShowTextGlyphs(text string, glyphs []Glyph, clusters []TextCluster, flags TextClusterFlags) Status
	GlyphPath(glyphs []Glyph) Status
	GlyphExtents(glyphs []Glyph) (TextExtents, Status)

	TagBegin(name, attributes string) Status
	TagEnd(name string) Status

	ShowPage() Status
	CopyPage() Status
}

// ArcToBackend is implemented by backends that support ArcTo.
type ArcToBackend interface {
	ArcTo(x1, y1, x2, y2, radius float64) Status
}

// UnsupportedBackend implements every Backend operation by returning
// StatusNotSupported. Getters return zero values.
type UnsupportedBackend struct{}

var _ Backend = UnsupportedBackend{}

func (UnsupportedBackend) Destroy() {}

func (UnsupportedBackend) Save() Status                 { return StatusNotSupported }
func (UnsupportedBackend) Restore() Status              { return StatusNotSupported }
func (UnsupportedBackend) PushGroup(Content) Status     { return StatusNotSupported }
func (UnsupportedBackend) PopGroup() (*Pattern, Status) { return nil, StatusNotSupported }
func (UnsupportedBackend) Target() *Surface             { return nil }
func (UnsupportedBackend) GroupTarget() *Surface        { return nil }

func (UnsupportedBackend) SetOperator(Operator) Status                        { return StatusNotSupported }
func (UnsupportedBackend) SetSource(*Pattern) Status                          { return StatusNotSupported }
func (UnsupportedBackend) SetSourceRGBA(_, _, _, _ float64) Status            { return StatusNotSupported }
func (UnsupportedBackend) SetSourceSurface(*Surface, float64, float64) Status { return StatusNotSupported }
func (UnsupportedBackend) SetTolerance(float64) Status                        { return StatusNotSupported }
func (UnsupportedBackend) SetAntialias(Antialias) Status                      { return StatusNotSupported }
func (UnsupportedBackend) SetFillRule(FillRule) Status                        { return StatusNotSupported }
func (UnsupportedBackend) SetLineWidth(float64) Status                        { return StatusNotSupported }
func (UnsupportedBackend) SetHairline(bool) Status                            { return StatusNotSupported }
func (UnsupportedBackend) SetLineCap(LineCap) Status                          { return StatusNotSupported }
func (UnsupportedBackend) SetLineJoin(LineJoin) Status                        { return StatusNotSupported }
func (UnsupportedBackend) SetMiterLimit(float64) Status                       { return StatusNotSupported }
func (UnsupportedBackend) SetDash([]float64, float64) Status                  { return StatusNotSupported }

func (UnsupportedBackend) Operator() Operator         { return OperatorOver }
func (UnsupportedBackend) Source() *Pattern           { return nil }
func (UnsupportedBackend) Tolerance() float64         { return 0 }
func (UnsupportedBackend) Antialias() Antialias       { return AntialiasDefault }
func (UnsupportedBackend) FillRule() FillRule         { return FillRuleWinding }
func (UnsupportedBackend) LineWidth() float64         { return 0 }
func (UnsupportedBackend) Hairline() bool             { return false }
func (UnsupportedBackend) LineCap() LineCap           { return LineCapButt }
func (UnsupportedBackend) LineJoin() LineJoin         { return LineJoinMiter }
func (UnsupportedBackend) MiterLimit() float64        { return 0 }
func (UnsupportedBackend) Dash() ([]float64, float64) { return nil, 0 }

func (UnsupportedBackend) Translate(_, _ float64) Status { return StatusNotSupported }
func (UnsupportedBackend) Scale(_, _ float64) Status     { return StatusNotSupported }
func (UnsupportedBackend) Rotate(float64) Status         { return StatusNotSupported }
func (UnsupportedBackend) Transform(Matrix) Status       { return StatusNotSupported }
func (UnsupportedBackend) SetMatrix(Matrix) Status       { return StatusNotSupported }
func (UnsupportedBackend) IdentityMatrix() Status        { return StatusNotSupported }
func (UnsupportedBackend) Matrix() Matrix                { return Identity() }

func (UnsupportedBackend) UserToDevice(x, y float64) (float64, float64)           { return x, y }
func (UnsupportedBackend) UserToDeviceDistance(dx, dy float64) (float64, float64) { return dx, dy }
func (UnsupportedBackend) DeviceToUser(x, y float64) (float64, float64)           { return x, y }
func (UnsupportedBackend) DeviceToUserDistance(dx, dy float64) (float64, float64) { return dx, dy }

func (UnsupportedBackend) NewPath() Status                            { return StatusNotSupported }
func (UnsupportedBackend) NewSubPath() Status                         { return StatusNotSupported }
func (UnsupportedBackend) MoveTo(_, _ float64) Status                 { return StatusNotSupported }
func (UnsupportedBackend) LineTo(_, _ float64) Status                 { return StatusNotSupported }
func (UnsupportedBackend) CurveTo(_, _, _, _, _, _ float64) Status    { return StatusNotSupported }
func (UnsupportedBackend) Arc(_, _, _, _, _ float64, _ bool) Status   { return StatusNotSupported }
func (UnsupportedBackend) RelMoveTo(_, _ float64) Status              { return StatusNotSupported }
func (UnsupportedBackend) RelLineTo(_, _ float64) Status              { return StatusNotSupported }
func (UnsupportedBackend) RelCurveTo(_, _, _, _, _, _ float64) Status { return StatusNotSupported }
func (UnsupportedBackend) Rectangle(_, _, _, _ float64) Status        { return StatusNotSupported }
func (UnsupportedBackend) ClosePath() Status                          { return StatusNotSupported }
func (UnsupportedBackend) PathExtents() (x1, y1, x2, y2 float64)      { return }
func (UnsupportedBackend) HasCurrentPoint() bool                      { return false }
func (UnsupportedBackend) CurrentPoint() (x, y float64)               { return }
func (UnsupportedBackend) CopyPath() *Path                            { return pathInError(StatusNotSupported) }
func (UnsupportedBackend) CopyPathFlat() *Path                        { return pathInError(StatusNotSupported) }
func (UnsupportedBackend) AppendPath(*Path) Status                    { return StatusNotSupported }

func (UnsupportedBackend) Paint() Status                        { return StatusNotSupported }
func (UnsupportedBackend) PaintWithAlpha(float64) Status        { return StatusNotSupported }
func (UnsupportedBackend) Mask(*Pattern) Status                 { return StatusNotSupported }
func (UnsupportedBackend) Stroke() Status                       { return StatusNotSupported }
func (UnsupportedBackend) StrokePreserve() Status               { return StatusNotSupported }
func (UnsupportedBackend) Fill() Status                         { return StatusNotSupported }
func (UnsupportedBackend) FillPreserve() Status                 { return StatusNotSupported }
func (UnsupportedBackend) InStroke(_, _ float64) (bool, Status) { return false, StatusNotSupported }
func (UnsupportedBackend) InFill(_, _ float64) bool             { return false }
func (UnsupportedBackend) StrokeExtents() (x1, y1, x2, y2 float64, st Status) {
	return 0, 0, 0, 0, StatusNotSupported
}
func (UnsupportedBackend) FillExtents() (x1, y1, x2, y2 float64) { return }

func (UnsupportedBackend) Clip() Status                          { return StatusNotSupported }
func (UnsupportedBackend) ClipPreserve() Status                  { return StatusNotSupported }
func (UnsupportedBackend) ResetClip() Status                     { return StatusNotSupported }
func (UnsupportedBackend) InClip(_, _ float64) bool              { return false }
func (UnsupportedBackend) ClipExtents() (x1, y1, x2, y2 float64) { return }
func (UnsupportedBackend) CopyClipRectangleList() ([]Rectangle, Status) {
	return nil, StatusNotSupported
}

func (UnsupportedBackend) SelectFontFace(string, FontSlant, FontWeight) Status { return StatusNotSupported }
func (UnsupportedBackend) SetFontFace(*FontFace) Status                        { return StatusNotSupported }
func (UnsupportedBackend) FontFace() *FontFace                                 { return nil }
func (UnsupportedBackend) SetFontSize(float64) Status                          { return StatusNotSupported }
func (UnsupportedBackend) SetFontMatrix(Matrix) Status                         { return StatusNotSupported }
func (UnsupportedBackend) FontMatrix() Matrix                                  { return Identity() }
func (UnsupportedBackend) SetFontOptions(FontOptions) Status                   { return StatusNotSupported }
func (UnsupportedBackend) FontOptions() FontOptions                            { return FontOptions{} }
func (UnsupportedBackend) SetScaledFont(*ScaledFont) Status                    { return StatusNotSupported }
func (UnsupportedBackend) ScaledFont() *ScaledFont                             { return nil }
func (UnsupportedBackend) FontExtents() (FontExtents, Status)                  { return FontExtents{}, StatusNotSupported }
func (UnsupportedBackend) TextToGlyphs(float64, float64, string, bool) ([]Glyph, []TextCluster, TextClusterFlags, Status) {
	return nil, nil, 0, StatusNotSupported
}
func (UnsupportedBackend) ShowTextGlyphs(string, []Glyph, []TextCluster, TextClusterFlags) Status {
	return StatusNotSupported
}
func (UnsupportedBackend) GlyphPath([]Glyph) Status { return StatusNotSupported }
func (UnsupportedBackend) GlyphExtents([]Glyph) (TextExtents, Status) {
	return TextExtents{}, StatusNotSupported
}

func (UnsupportedBackend) TagBegin(_, _ string) Status { return StatusNotSupported }
func (UnsupportedBackend) TagEnd(string) Status        { return StatusNotSupported }

func (UnsupportedBackend) ShowPage() Status { return StatusNotSupported }
func (UnsupportedBackend) CopyPage() Status { return StatusNotSupported }
