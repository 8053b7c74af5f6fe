// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

// nullBackend accepts every operation and draws nothing. Getters report
// the defaults of a fresh context.
type nullBackend struct{}

// NewNullBackend returns a Backend for contexts that discard all drawing,
// for use with WithBackend.
func NewNullBackend() Backend { return nullBackend{} }

func (nullBackend) Destroy() {}

func (nullBackend) Save() Status                 { return StatusSuccess }
func (nullBackend) Restore() Status              { return StatusSuccess }
func (nullBackend) PushGroup(Content) Status     { return StatusSuccess }
func (nullBackend) PopGroup() (*Pattern, Status) { return NewSolidPatternRGBA(0, 0, 0, 0), StatusSuccess }
func (nullBackend) Target() *Surface             { return nil }
func (nullBackend) GroupTarget() *Surface        { return nil }

func (nullBackend) SetOperator(Operator) Status                        { return StatusSuccess }
func (nullBackend) SetSource(*Pattern) Status                          { return StatusSuccess }
func (nullBackend) SetSourceRGBA(_, _, _, _ float64) Status            { return StatusSuccess }
func (nullBackend) SetSourceSurface(*Surface, float64, float64) Status { return StatusSuccess }
func (nullBackend) SetTolerance(float64) Status                        { return StatusSuccess }
func (nullBackend) SetAntialias(Antialias) Status                      { return StatusSuccess }
func (nullBackend) SetFillRule(FillRule) Status                        { return StatusSuccess }
func (nullBackend) SetLineWidth(float64) Status                        { return StatusSuccess }
func (nullBackend) SetHairline(bool) Status                            { return StatusSuccess }
func (nullBackend) SetLineCap(LineCap) Status                          { return StatusSuccess }
func (nullBackend) SetLineJoin(LineJoin) Status                        { return StatusSuccess }
func (nullBackend) SetMiterLimit(float64) Status                       { return StatusSuccess }
func (nullBackend) SetDash([]float64, float64) Status                  { return StatusSuccess }

func (nullBackend) Operator() Operator         { return OperatorOver }
func (nullBackend) Source() *Pattern           { return blackPattern }
func (nullBackend) Tolerance() float64         { return defaultTolerance }
func (nullBackend) Antialias() Antialias       { return AntialiasDefault }
func (nullBackend) FillRule() FillRule         { return FillRuleWinding }
func (nullBackend) LineWidth() float64         { return defaultLineWidth }
func (nullBackend) Hairline() bool             { return false }
func (nullBackend) LineCap() LineCap           { return LineCapButt }
func (nullBackend) LineJoin() LineJoin         { return LineJoinMiter }
func (nullBackend) MiterLimit() float64        { return defaultMiterLimit }
func (nullBackend) Dash() ([]float64, float64) { return nil, 0 }

func (nullBackend) Translate(_, _ float64) Status { return StatusSuccess }
func (nullBackend) Scale(_, _ float64) Status     { return StatusSuccess }
func (nullBackend) Rotate(float64) Status         { return StatusSuccess }
func (nullBackend) Transform(Matrix) Status       { return StatusSuccess }
func (nullBackend) SetMatrix(Matrix) Status       { return StatusSuccess }
func (nullBackend) IdentityMatrix() Status        { return StatusSuccess }
func (nullBackend) Matrix() Matrix                { return Identity() }

func (nullBackend) UserToDevice(x, y float64) (float64, float64)           { return x, y }
func (nullBackend) UserToDeviceDistance(dx, dy float64) (float64, float64) { return dx, dy }
func (nullBackend) DeviceToUser(x, y float64) (float64, float64)           { return x, y }
func (nullBackend) DeviceToUserDistance(dx, dy float64) (float64, float64) { return dx, dy }

func (nullBackend) NewPath() Status                            { return StatusSuccess }
func (nullBackend) NewSubPath() Status                         { return StatusSuccess }
func (nullBackend) MoveTo(_, _ float64) Status                 { return StatusSuccess }
func (nullBackend) LineTo(_, _ float64) Status                 { return StatusSuccess }
func (nullBackend) CurveTo(_, _, _, _, _, _ float64) Status    { return StatusSuccess }
func (nullBackend) Arc(_, _, _, _, _ float64, _ bool) Status   { return StatusSuccess }
func (nullBackend) RelMoveTo(_, _ float64) Status              { return StatusSuccess }
func (nullBackend) RelLineTo(_, _ float64) Status              { return StatusSuccess }
func (nullBackend) RelCurveTo(_, _, _, _, _, _ float64) Status { return StatusSuccess }
func (nullBackend) Rectangle(_, _, _, _ float64) Status        { return StatusSuccess }
func (nullBackend) ClosePath() Status                          { return StatusSuccess }
func (nullBackend) PathExtents() (x1, y1, x2, y2 float64)      { return }
func (nullBackend) HasCurrentPoint() bool                      { return false }
func (nullBackend) CurrentPoint() (x, y float64)               { return }
func (nullBackend) CopyPath() *Path                            { return &Path{} }
func (nullBackend) CopyPathFlat() *Path                        { return &Path{} }
func (nullBackend) AppendPath(p *Path) Status                  { return p.validate() }

func (nullBackend) Paint() Status                                      { return StatusSuccess }
func (nullBackend) PaintWithAlpha(float64) Status                      { return StatusSuccess }
func (nullBackend) Mask(*Pattern) Status                               { return StatusSuccess }
func (nullBackend) Stroke() Status                                     { return StatusSuccess }
func (nullBackend) StrokePreserve() Status                             { return StatusSuccess }
func (nullBackend) Fill() Status                                       { return StatusSuccess }
func (nullBackend) FillPreserve() Status                               { return StatusSuccess }
func (nullBackend) InStroke(_, _ float64) (bool, Status)               { return false, StatusSuccess }
func (nullBackend) InFill(_, _ float64) bool                           { return false }
func (nullBackend) StrokeExtents() (x1, y1, x2, y2 float64, st Status) { return }
func (nullBackend) FillExtents() (x1, y1, x2, y2 float64)              { return }

func (nullBackend) Clip() Status                                 { return StatusSuccess }
func (nullBackend) ClipPreserve() Status                         { return StatusSuccess }
func (nullBackend) ResetClip() Status                            { return StatusSuccess }
func (nullBackend) InClip(_, _ float64) bool                     { return true }
func (nullBackend) ClipExtents() (x1, y1, x2, y2 float64)        { return }
func (nullBackend) CopyClipRectangleList() ([]Rectangle, Status) { return nil, StatusSuccess }

func (nullBackend) SelectFontFace(string, FontSlant, FontWeight) Status { return StatusSuccess }
func (nullBackend) SetFontFace(*FontFace) Status                        { return StatusSuccess }
func (nullBackend) FontFace() *FontFace                                 { return nil }
func (nullBackend) SetFontSize(float64) Status                          { return StatusSuccess }
func (nullBackend) SetFontMatrix(Matrix) Status                         { return StatusSuccess }
func (nullBackend) FontMatrix() Matrix                                  { return Scale(defaultFontSize, defaultFontSize) }
func (nullBackend) SetFontOptions(FontOptions) Status                   { return StatusSuccess }
func (nullBackend) FontOptions() FontOptions                            { return FontOptions{} }
func (nullBackend) SetScaledFont(*ScaledFont) Status                    { return StatusSuccess }
func (nullBackend) ScaledFont() *ScaledFont                             { return nil }
func (nullBackend) FontExtents() (FontExtents, Status)                  { return FontExtents{}, StatusSuccess }
func (nullBackend) TextToGlyphs(float64, float64, string, bool) ([]Glyph, []TextCluster, TextClusterFlags, Status) {
	return nil, nil, 0, StatusSuccess
}
func (nullBackend) ShowTextGlyphs(string, []Glyph, []TextCluster, TextClusterFlags) Status {
	return StatusSuccess
}
func (nullBackend) GlyphPath([]Glyph) Status                   { return StatusSuccess }
func (nullBackend) GlyphExtents([]Glyph) (TextExtents, Status) { return TextExtents{}, StatusSuccess }

func (nullBackend) TagBegin(_, _ string) Status { return StatusSuccess }
func (nullBackend) TagEnd(string) Status        { return StatusSuccess }

func (nullBackend) ShowPage() Status { return StatusSuccess }
func (nullBackend) CopyPage() Status { return StatusSuccess }
