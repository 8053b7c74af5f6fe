// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

import (
	"math/rand/v2"
	"testing"
)

type px [4]byte

func apply(m Mode, s, d px) px {
	r, g, b, a := Lookup(m)(s[0], s[1], s[2], s[3], d[0], d[1], d[2], d[3])
	return px{r, g, b, a}
}

func TestPorterDuff(t *testing.T) {
	red := px{255, 0, 0, 255}
	blue := px{0, 0, 255, 255}
	halfRed := px{128, 0, 0, 128}
	none := px{}

	tests := []struct {
		name string
		mode Mode
		s, d px
		want px
	}{
		{"clear", Clear, red, blue, none},
		{"source", Source, halfRed, blue, halfRed},
		{"dest", Dest, red, blue, blue},
		{"over opaque", Over, red, blue, red},
		{"over half", Over, halfRed, blue, px{128, 0, 127, 255}},
		{"over transparent", Over, none, blue, blue},
		{"in", In, red, px{0, 0, 128, 128}, px{128, 0, 0, 128}},
		{"in empty dest", In, red, none, none},
		{"out", Out, red, blue, none},
		{"out empty dest", Out, red, none, red},
		{"atop", Atop, halfRed, blue, px{128, 0, 127, 255}},
		{"atop empty dest", Atop, red, none, none},
		{"dest over", DestOver, red, px{0, 0, 128, 128}, px{127, 0, 128, 255}},
		{"dest in", DestIn, halfRed, blue, px{0, 0, 128, 128}},
		{"dest out", DestOut, halfRed, blue, px{0, 0, 127, 127}},
		{"dest atop", DestAtop, red, blue, blue},
		{"xor", Xor, red, blue, none},
		{"xor half", Xor, halfRed, none, halfRed},
		{"add", Add, halfRed, px{200, 0, 0, 200}, px{255, 0, 0, 255}},
		{"saturate room", Saturate, halfRed, px{0, 0, 100, 100}, px{128, 0, 100, 228}},
		{"saturate full", Saturate, red, blue, blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(tt.mode, tt.s, tt.d); got != tt.want {
				t.Errorf("%v(%v, %v) = %v, want %v", tt.mode, tt.s, tt.d, got, tt.want)
			}
		})
	}
}

func TestBlendModes(t *testing.T) {
	grey := px{128, 128, 128, 255}
	white := px{255, 255, 255, 255}
	black := px{0, 0, 0, 255}
	red := px{255, 0, 0, 255}

	tests := []struct {
		name string
		mode Mode
		s, d px
		want px
	}{
		{"multiply white", Multiply, white, grey, grey},
		{"multiply black", Multiply, black, grey, black},
		{"screen black", Screen, black, grey, grey},
		{"screen white", Screen, white, grey, white},
		{"darken", Darken, grey, white, grey},
		{"lighten", Lighten, grey, black, grey},
		{"difference same", Difference, grey, grey, black},
		{"difference white", Difference, white, black, white},
		{"exclusion black", Exclusion, black, grey, grey},
		{"color dodge black", ColorDodge, black, grey, grey},
		{"color burn white", ColorBurn, white, grey, grey},
		{"hard light black", HardLight, black, grey, black},
		{"overlay black backdrop", Overlay, grey, black, black},
		{"luminosity of white", Luminosity, white, red, white},
		{"color of grey", Color, red, grey, px{255, 74, 74, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(tt.mode, tt.s, tt.d)
			for i := range got {
				if diff := int(got[i]) - int(tt.want[i]); diff < -1 || diff > 1 {
					t.Errorf("%v(%v, %v) = %v, want %v", tt.mode, tt.s, tt.d, got, tt.want)
					break
				}
			}
		})
	}
}

// TestTransparentOperands checks the identities every blend mode shares:
// a transparent source keeps the destination and a transparent
// destination yields the source.
func TestTransparentOperands(t *testing.T) {
	s := px{60, 30, 90, 120}
	d := px{10, 200, 40, 220}
	for m := Multiply; m < numModes; m++ {
		if got := apply(m, px{}, d); got != d {
			t.Errorf("%v(transparent, d) = %v, want %v", m, got, d)
		}
		if got := apply(m, s, px{}); got != s {
			t.Errorf("%v(s, transparent) = %v, want %v", m, got, s)
		}
	}
}

// TestPremultipliedInvariant checks that no channel exceeds alpha.
func TestPremultipliedInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	randPx := func() px {
		a := byte(r.IntN(256))
		return px{byte(r.IntN(int(a) + 1)), byte(r.IntN(int(a) + 1)), byte(r.IntN(int(a) + 1)), a}
	}
	for m := Clear; m < numModes; m++ {
		for range 500 {
			s, d := randPx(), randPx()
			got := apply(m, s, d)
			for i := range 3 {
				if int(got[i]) > int(got[3])+1 {
					t.Fatalf("%v(%v, %v) = %v: colour exceeds alpha", m, s, d, got)
				}
			}
		}
	}
}

func TestBounded(t *testing.T) {
	tests := []struct {
		mode         Mode
		mask, source bool
	}{
		{Clear, true, false},
		{Source, true, false},
		{Over, true, true},
		{In, false, false},
		{Out, false, false},
		{DestIn, false, false},
		{DestAtop, false, false},
		{Atop, true, true},
		{Saturate, true, true},
		{Multiply, true, true},
	}
	for _, tt := range tests {
		if got := BoundedByMask(tt.mode); got != tt.mask {
			t.Errorf("BoundedByMask(%v) = %v, want %v", tt.mode, got, tt.mask)
		}
		if got := BoundedBySource(tt.mode); got != tt.source {
			t.Errorf("BoundedBySource(%v) = %v, want %v", tt.mode, got, tt.source)
		}
	}
}

func TestSpan(t *testing.T) {
	blue := []byte{0, 0, 255, 255}
	red := []byte{255, 0, 0, 255}
	row := func(p []byte, n int) []byte {
		out := make([]byte, 0, 4*n)
		for range n {
			out = append(out, p...)
		}
		return out
	}

	tests := []struct {
		name       string
		mode       Mode
		mask, clip []byte
		want       [][4]byte
	}{
		{"over full", Over, nil, nil, [][4]byte{{255, 0, 0, 255}, {255, 0, 0, 255}}},
		{"over masked", Over, []byte{0, 255}, nil, [][4]byte{{0, 0, 255, 255}, {255, 0, 0, 255}}},
		{"over clipped", Over, nil, []byte{255, 0}, [][4]byte{{255, 0, 0, 255}, {0, 0, 255, 255}}},
		{"source half", Source, []byte{128, 255}, nil, [][4]byte{{128, 0, 127, 255}, {255, 0, 0, 255}}},
		{"clear clipped", Clear, nil, []byte{0, 255}, [][4]byte{{0, 0, 255, 255}, {0, 0, 0, 0}}},
		// Unbounded: outside the mask the destination is cleared, but the
		// clip still protects it.
		{"in unbounded", In, []byte{0, 0}, []byte{255, 0}, [][4]byte{{0, 0, 0, 0}, {0, 0, 255, 255}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := row(blue, 2)
			Span(dst, row(red, 2), tt.mask, tt.clip, tt.mode)
			for i, w := range tt.want {
				got := [4]byte(dst[i*4 : i*4+4])
				if got != w {
					t.Errorf("pixel %d = %v, want %v", i, got, w)
				}
			}
		})
	}
}

func TestMulDiv255(t *testing.T) {
	for a := range 256 {
		for b := range 256 {
			want := byte((a*b + 127) / 255)
			if got := MulDiv255(byte(a), byte(b)); got != want {
				t.Fatalf("MulDiv255(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestModeString(t *testing.T) {
	if got := Saturate.String(); got != "Saturate" {
		t.Errorf("Saturate.String() = %q", got)
	}
	if got := Mode(200).String(); got != "Unknown" {
		t.Errorf("Mode(200).String() = %q", got)
	}
}
