// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"math"
	"testing"
)

// BenchmarkFill benchmarks filling shapes on surfaces of various sizes.
func BenchmarkFill(b *testing.B) {
	sizes := []struct {
		name   string
		width  int
		height int
	}{
		{"100x100", 100, 100},
		{"512x512", 512, 512},
		{"1920x1080", 1920, 1080},
	}

	for _, size := range sizes {
		b.Run("rect_"+size.name, func(b *testing.B) {
			s := NewImageSurface(FormatARGB32, size.width, size.height)
			defer s.Destroy()
			cr := NewContext(s)
			defer cr.Destroy()
			cr.SetSourceRGB(1, 0, 0)
			b.ReportAllocs()
			b.SetBytes(int64(size.width * size.height * 4))
			for b.Loop() {
				cr.Rectangle(0, 0, float64(size.width), float64(size.height))
				cr.Fill()
			}
		})
		b.Run("circle_"+size.name, func(b *testing.B) {
			s := NewImageSurface(FormatARGB32, size.width, size.height)
			defer s.Destroy()
			cr := NewContext(s)
			defer cr.Destroy()
			cr.SetSourceRGBA(0, 0, 1, 0.5)
			r := float64(min(size.width, size.height)) / 2
			b.ReportAllocs()
			for b.Loop() {
				cr.Arc(float64(size.width)/2, float64(size.height)/2, r, 0, 2*math.Pi)
				cr.Fill()
			}
		})
	}
}

// BenchmarkSaveRestore measures gstate pool reuse.
func BenchmarkSaveRestore(b *testing.B) {
	s := NewImageSurface(FormatARGB32, 1, 1)
	defer s.Destroy()
	cr := NewContext(s)
	defer cr.Destroy()
	b.ReportAllocs()
	for b.Loop() {
		cr.Save()
		cr.Translate(1, 1)
		cr.Restore()
	}
}

// BenchmarkClippedPaint paints through a circular clip, which builds a
// clip mask once and reuses it.
func BenchmarkClippedPaint(b *testing.B) {
	s := NewImageSurface(FormatARGB32, 512, 512)
	defer s.Destroy()
	cr := NewContext(s)
	defer cr.Destroy()
	cr.Arc(256, 256, 200, 0, 2*math.Pi)
	cr.Clip()
	cr.SetSourceRGBA(0, 1, 0, 0.5)
	b.ReportAllocs()
	for b.Loop() {
		cr.Paint()
	}
}

// BenchmarkShowText benchmarks text rendering with the glyph cache warm.
func BenchmarkShowText(b *testing.B) {
	s := NewImageSurface(FormatARGB32, 400, 40)
	defer s.Destroy()
	cr := NewContext(s)
	defer cr.Destroy()
	cr.SetFontSize(16)
	b.ReportAllocs()
	for b.Loop() {
		cr.MoveTo(4, 24)
		cr.ShowText("The quick brown fox jumps over the lazy dog")
	}
}
