// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"image"
	"image/color"
	"testing"
)

var (
	white       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	black       = color.RGBA{0, 0, 0, 0xff}
	red         = color.RGBA{0xff, 0, 0, 0xff}
	transparent = color.RGBA{}
)

// newTestContext returns a context on a w×h ARGB32 surface.
func newTestContext(t *testing.T, w, h int) (*Context, *Surface) {
	t.Helper()
	s := NewImageSurface(FormatARGB32, w, h)
	if st := s.Status(); st != StatusSuccess {
		t.Fatalf("NewImageSurface() status = %v", st)
	}
	cr := NewContext(s)
	if st := cr.Status(); st != StatusSuccess {
		t.Fatalf("NewContext() status = %v", st)
	}
	t.Cleanup(func() {
		cr.Destroy()
		s.Destroy()
	})
	return cr, s
}

// newWhiteContext is newTestContext with the surface painted white.
func newWhiteContext(t *testing.T, w, h int) (*Context, *Surface) {
	t.Helper()
	cr, s := newTestContext(t, w, h)
	cr.SetSourceRGB(1, 1, 1)
	cr.Paint()
	cr.SetSourceRGB(0, 0, 0)
	return cr, s
}

func pixelAt(t *testing.T, s *Surface, x, y int) color.RGBA {
	t.Helper()
	s.Flush()
	img, ok := s.Image().(*image.RGBA)
	if !ok {
		t.Fatalf("Image() = %T, want *image.RGBA", s.Image())
	}
	return img.RGBAAt(x, y)
}

// checkPixels compares every pixel of s with want(x, y).
func checkPixels(t *testing.T, s *Surface, want func(x, y int) color.RGBA) {
	t.Helper()
	s.Flush()
	img := s.Image().(*image.RGBA)
	b := img.Bounds()
	bad := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			got, w := img.RGBAAt(x, y), want(x, y)
			if got != w {
				if bad < 5 {
					t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, w)
				}
				bad++
			}
		}
	}
	if bad > 5 {
		t.Errorf("%d more pixels differ", bad-5)
	}
}

func inRect(x, y, x0, y0, x1, y1 int) bool {
	return x >= x0 && x < x1 && y >= y0 && y < y1
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
