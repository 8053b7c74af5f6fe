// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"image/color"
	"testing"
)

func TestPatternConstructors(t *testing.T) {
	tests := []struct {
		name   string
		p      *Pattern
		typ    PatternType
		status Status
	}{
		{"solid", NewSolidPattern(1, 0, 0), PatternTypeSolid, StatusSuccess},
		{"linear", NewLinearGradient(0, 0, 1, 1), PatternTypeLinear, StatusSuccess},
		{"radial", NewRadialGradient(0, 0, 0, 0, 0, 1), PatternTypeRadial, StatusSuccess},
		{"radial negative radius", NewRadialGradient(0, 0, -1, 0, 0, 1), PatternTypeSolid, StatusInvalidSize},
		{"surface nil", NewSurfacePattern(nil), PatternTypeSolid, StatusNullPointer},
		{"raster source", NewRasterSourcePattern(nil, ContentColorAlpha, 4, 4), PatternTypeRasterSource, StatusSuccess},
		{"raster source bad content", NewRasterSourcePattern(nil, Content(1), 4, 4), PatternTypeSolid, StatusInvalidContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.p.Destroy()
			if st := tt.p.Status(); st != tt.status {
				t.Fatalf("Status() = %v, want %v", st, tt.status)
			}
			if tt.status == StatusSuccess && tt.p.Type() != tt.typ {
				t.Errorf("Type() = %v, want %v", tt.p.Type(), tt.typ)
			}
		})
	}
}

func TestSolidPatternClamps(t *testing.T) {
	p := NewSolidPatternRGBA(2, -1, 0.5, 3)
	defer p.Destroy()
	got, err := p.RGBA()
	if err != nil {
		t.Fatalf("RGBA() error = %v", err)
	}
	if want := (RGBA{1, 0, 0.5, 1}); got != want {
		t.Errorf("RGBA() = %v, want %v", got, want)
	}
	if _, err := p.ColorStopCount(); err != StatusPatternTypeMismatch {
		t.Errorf("ColorStopCount() error = %v, want %v", err, StatusPatternTypeMismatch)
	}
}

func TestColorStopsSorted(t *testing.T) {
	p := NewLinearGradient(0, 0, 10, 0)
	defer p.Destroy()
	p.AddColorStopRGB(1, 0, 0, 1)
	p.AddColorStopRGB(0, 1, 0, 0)
	p.AddColorStopRGB(0.5, 0, 1, 0)
	p.AddColorStopRGB(0.5, 0, 0, 0)

	n, err := p.ColorStopCount()
	if err != nil || n != 4 {
		t.Fatalf("ColorStopCount() = %d, %v, want 4", n, err)
	}
	want := []RGBA{RGB(1, 0, 0), RGB(0, 1, 0), RGB(0, 0, 0), RGB(0, 0, 1)}
	for i, w := range want {
		s, err := p.ColorStop(i)
		if err != nil {
			t.Fatalf("ColorStop(%d) error = %v", i, err)
		}
		if s.Color != w {
			t.Errorf("ColorStop(%d) = %v, want %v", i, s.Color, w)
		}
	}
	if _, err := p.ColorStop(4); err != StatusInvalidIndex {
		t.Errorf("ColorStop(4) error = %v, want %v", err, StatusInvalidIndex)
	}
}

func TestPatternSetMatrix(t *testing.T) {
	p := NewSolidPattern(0, 0, 0)
	defer p.Destroy()
	p.SetMatrix(Scale(2, 2))
	if got := p.Matrix(); got != Scale(2, 2) {
		t.Errorf("Matrix() = %v, want %v", got, Scale(2, 2))
	}
	p.SetMatrix(Scale(0, 1))
	if st := p.Status(); st != StatusInvalidMatrix {
		t.Fatalf("Status() = %v, want %v", st, StatusInvalidMatrix)
	}
	p.SetExtend(ExtendRepeat)
	if p.Extend() != ExtendPad {
		t.Errorf("setter changed a pattern in error")
	}
}

func TestLinearGradientPaint(t *testing.T) {
	cr, s := newTestContext(t, 16, 4)
	g := NewLinearGradient(0, 0, 16, 0)
	g.AddColorStopRGB(0, 0, 0, 0)
	g.AddColorStopRGB(1, 1, 1, 1)
	cr.SetSource(g)
	g.Destroy()
	cr.Paint()

	prev := -1
	for x := range 16 {
		p := pixelAt(t, s, x, 2)
		if p.A != 0xff {
			t.Fatalf("pixel (%d, 2) alpha = %d, want 255", x, p.A)
		}
		if int(p.R) < prev {
			t.Errorf("pixel (%d, 2) red = %d, decreased from %d", x, p.R, prev)
		}
		prev = int(p.R)
	}
	if first, last := pixelAt(t, s, 0, 0).R, pixelAt(t, s, 15, 0).R; first > 0x10 || last < 0xef {
		t.Errorf("gradient ends = %d, %d, want near 0 and 255", first, last)
	}
}

func TestSurfacePatternRepeat(t *testing.T) {
	tile := NewImageSurface(FormatARGB32, 2, 2)
	tc := NewContext(tile)
	tc.SetSourceRGB(1, 0, 0)
	tc.Rectangle(0, 0, 1, 1)
	tc.Fill()
	tc.Destroy()

	cr, s := newTestContext(t, 8, 8)
	p := NewSurfacePattern(tile)
	tile.Destroy()
	p.SetExtend(ExtendRepeat)
	p.SetFilter(FilterNearest)
	cr.SetSource(p)
	p.Destroy()
	cr.Paint()

	checkPixels(t, s, func(x, y int) color.RGBA {
		if x%2 == 0 && y%2 == 0 {
			return red
		}
		return transparent
	})
}

func TestRasterSourcePattern(t *testing.T) {
	released := 0
	p := NewRasterSourcePattern("data", ContentColorAlpha, 4, 4)
	p.SetAcquire(func(data any, target *Surface, extents Rectangle) *Surface {
		if data != "data" {
			t.Errorf("acquire data = %v, want %q", data, "data")
		}
		img := NewImageSurface(FormatARGB32, 4, 4)
		c := NewContext(img)
		c.SetSourceRGB(0, 0, 1)
		c.Paint()
		c.Destroy()
		return img
	}, func(data any, s *Surface) {
		released++
		s.Destroy()
	})

	cr, s := newTestContext(t, 6, 6)
	cr.SetSource(p)
	p.Destroy()
	cr.Paint()
	if released == 0 {
		t.Error("release callback not called")
	}
	blue := color.RGBA{0, 0, 0xff, 0xff}
	checkPixels(t, s, func(x, y int) color.RGBA {
		if inRect(x, y, 0, 0, 4, 4) {
			return blue
		}
		return transparent
	})
}

func TestPatternUserData(t *testing.T) {
	p := NewSolidPattern(0, 0, 0)
	var key UserDataKey
	gone := false
	_ = p.SetUserData(&key, "v", func(any) { gone = true })
	q := p.Reference()
	p.Destroy()
	if gone {
		t.Fatal("user data destroyed while referenced")
	}
	if q.UserData(&key) != "v" {
		t.Errorf("UserData() = %v, want %q", q.UserData(&key), "v")
	}
	q.Destroy()
	if !gone {
		t.Error("user data not destroyed with the last reference")
	}
}
