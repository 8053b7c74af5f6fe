// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"math"
	"testing"
)

func TestToyFontFaceSharing(t *testing.T) {
	a := NewToyFontFace("serif", FontSlantNormal, FontWeightBold)
	b := NewToyFontFace("serif", FontSlantNormal, FontWeightBold)
	defer a.Destroy()
	defer b.Destroy()
	if a != b {
		t.Error("equal toy faces are not shared")
	}
	if a.ReferenceCount() != 2 {
		t.Errorf("ReferenceCount() = %d, want 2", a.ReferenceCount())
	}
	if a.Type() != FontTypeToy || a.Family() != "serif" || a.Weight() != FontWeightBold {
		t.Errorf("face = %v %q %v", a.Type(), a.Family(), a.Weight())
	}

	c := NewToyFontFace("serif", FontSlantItalic, FontWeightBold)
	defer c.Destroy()
	if c == a {
		t.Error("faces with different slants are shared")
	}
}

func TestToyFontFaceErrors(t *testing.T) {
	tests := []struct {
		name string
		f    *FontFace
		want Status
	}{
		{"slant", NewToyFontFace("sans", FontSlant(5), FontWeightNormal), StatusInvalidSlant},
		{"weight", NewToyFontFace("sans", FontSlantNormal, FontWeight(700)), StatusInvalidWeight},
		{"family", NewToyFontFace("\xff", FontSlantNormal, FontWeightNormal), StatusInvalidString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.f.Destroy()
			if st := tt.f.Status(); st != tt.want {
				t.Errorf("Status() = %v, want %v", st, tt.want)
			}
		})
	}

	cr, _ := newTestContext(t, 4, 4)
	cr.SelectFontFace("sans", FontSlant(5), FontWeightNormal)
	if st := cr.Status(); st != StatusInvalidSlant {
		t.Errorf("SelectFontFace() status = %v, want %v", st, StatusInvalidSlant)
	}
}

func TestFontSize(t *testing.T) {
	cr, _ := newTestContext(t, 4, 4)
	cr.SetFontSize(24)
	if got := cr.FontMatrix(); got != Scale(24, 24) {
		t.Errorf("FontMatrix() = %v, want %v", got, Scale(24, 24))
	}
	sf := cr.ScaledFont()
	if got := sf.FontMatrix(); got != Scale(24, 24) {
		t.Errorf("ScaledFont().FontMatrix() = %v, want %v", got, Scale(24, 24))
	}
	fe := cr.FontExtents()
	if fe.Ascent <= 0 || fe.Height < fe.Ascent {
		t.Errorf("FontExtents() = %+v", fe)
	}
	cr.SetFontMatrix(Scale(0, 0))
	if st := cr.Status(); st != StatusInvalidMatrix {
		t.Errorf("SetFontMatrix(singular) status = %v, want %v", st, StatusInvalidMatrix)
	}
}

func TestTextExtents(t *testing.T) {
	cr, _ := newTestContext(t, 4, 4)
	cr.SetFontSize(20)
	one := cr.TextExtents("H")
	two := cr.TextExtents("HH")
	if one.Width <= 0 || one.Height <= 0 || one.XAdvance <= 0 {
		t.Fatalf("TextExtents(%q) = %+v", "H", one)
	}
	if one.YBearing >= 0 {
		t.Errorf("YBearing = %v, want negative for a glyph above the baseline", one.YBearing)
	}
	if !near(two.XAdvance, 2*one.XAdvance) {
		t.Errorf("XAdvance of two glyphs = %v, want %v", two.XAdvance, 2*one.XAdvance)
	}
	if e := cr.TextExtents(""); e != (TextExtents{}) {
		t.Errorf("TextExtents(\"\") = %+v, want zero", e)
	}
}

func TestTextToGlyphsClusters(t *testing.T) {
	cr, _ := newTestContext(t, 4, 4)
	sf := cr.ScaledFont()
	s := "aé́b"
	glyphs, clusters, flags, err := sf.TextToGlyphs(1, 2, s, true)
	if err != nil {
		t.Fatalf("TextToGlyphs() error = %v", err)
	}
	if flags != 0 {
		t.Errorf("flags = %v, want 0", flags)
	}
	if st := validateClusters(clusters, len(s), len(glyphs)); st != StatusSuccess {
		t.Errorf("clusters %v do not cover %d bytes and %d glyphs: %v", clusters, len(s), len(glyphs), st)
	}
	if glyphs[0].X != 1 || glyphs[0].Y != 2 {
		t.Errorf("first glyph at (%v, %v), want (1, 2)", glyphs[0].X, glyphs[0].Y)
	}
	for i := 1; i < len(glyphs); i++ {
		if glyphs[i].X < glyphs[i-1].X {
			t.Errorf("glyph %d at x=%v before glyph %d at x=%v", i, glyphs[i].X, i-1, glyphs[i-1].X)
		}
	}
	if _, _, _, err := sf.TextToGlyphs(0, 0, "\xff", false); err != StatusInvalidString {
		t.Errorf("TextToGlyphs(invalid) error = %v, want %v", err, StatusInvalidString)
	}
}

func TestValidateClusters(t *testing.T) {
	tests := []struct {
		name     string
		clusters []TextCluster
		bytes    int
		glyphs   int
		want     Status
	}{
		{"exact", []TextCluster{{1, 1}, {2, 1}}, 3, 2, StatusSuccess},
		{"ligature", []TextCluster{{2, 1}}, 2, 1, StatusSuccess},
		{"short", []TextCluster{{1, 1}}, 2, 1, StatusInvalidClusters},
		{"empty cluster", []TextCluster{{0, 0}, {1, 1}}, 1, 1, StatusInvalidClusters},
		{"negative", []TextCluster{{-1, 1}, {2, 0}}, 1, 1, StatusNegativeCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateClusters(tt.clusters, tt.bytes, tt.glyphs); got != tt.want {
				t.Errorf("validateClusters() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShowText(t *testing.T) {
	cr, s := newWhiteContext(t, 64, 32)
	cr.SetFontSize(20)
	cr.MoveTo(4, 24)
	adv := cr.TextExtents("Hi").XAdvance
	cr.ShowText("Hi")
	if st := cr.Status(); st != StatusSuccess {
		t.Fatalf("Status() = %v", st)
	}
	x, y := cr.CurrentPoint()
	if math.Abs(x-(4+adv)) > 1e-3 || y != 24 {
		t.Errorf("CurrentPoint() = (%v, %v), want (%v, 24)", x, y, 4+adv)
	}

	dark := 0
	for py := range 32 {
		for px := range 64 {
			if pixelAt(t, s, px, py).R < 0x80 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("ShowText() drew nothing")
	}

	cr.ShowText("\xff")
	if st := cr.Status(); st != StatusInvalidString {
		t.Errorf("ShowText(invalid) status = %v, want %v", st, StatusInvalidString)
	}
}

func TestShowTextGlyphsClusters(t *testing.T) {
	cr, _ := newTestContext(t, 16, 16)
	glyphs := []Glyph{{Index: 1, X: 2, Y: 12}}
	cr.ShowTextGlyphs("ab", glyphs, []TextCluster{{1, 1}}, 0)
	if st := cr.Status(); st != StatusInvalidClusters {
		t.Errorf("Status() = %v, want %v", st, StatusInvalidClusters)
	}
}

func TestTextPath(t *testing.T) {
	cr, _ := newTestContext(t, 64, 32)
	cr.SetFontSize(16)
	cr.MoveTo(2, 20)
	cr.TextPath("o")
	if st := cr.Status(); st != StatusSuccess {
		t.Fatalf("Status() = %v", st)
	}
	x1, y1, x2, y2 := cr.PathExtents()
	if x1 < 2 || x2 <= x1 || y2 > 20.5 || y1 >= y2 {
		t.Errorf("PathExtents() = (%v, %v, %v, %v), want a glyph right of x=2 above the baseline", x1, y1, x2, y2)
	}
	p := cr.CopyPath()
	curves := 0
	for i := 0; i < len(p.Data); i += p.Data[i].Length {
		if p.Data[i].Type == PathCurveTo {
			curves++
		}
	}
	if curves == 0 {
		t.Error("glyph path of \"o\" has no curves")
	}
	if x, _ := cr.CurrentPoint(); x <= 2 {
		t.Errorf("current point x = %v, want past the glyph", x)
	}
}

func TestScaledFontFollowsCTM(t *testing.T) {
	cr, _ := newTestContext(t, 4, 4)
	cr.Scale(2, 2)
	sf := cr.ScaledFont()
	if got := sf.CTM(); got != Scale(2, 2) {
		t.Errorf("ScaledFont().CTM() = %v, want %v", got, Scale(2, 2))
	}
	// Extents stay in user space.
	a := cr.TextExtents("x").XAdvance
	cr.IdentityMatrix()
	if b := cr.TextExtents("x").XAdvance; !near(a, b) {
		t.Errorf("XAdvance under scale = %v, want %v", a, b)
	}
}
