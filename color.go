// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"image/color"
	"math"
)

// RGBA is a non-premultiplied color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// clamp returns c with every component clamped to [0, 1]. NaN becomes 0.
func (c RGBA) clamp() RGBA {
	return RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Color converts c to a standard library color.
func (c RGBA) Color() color.Color {
	return color.NRGBA64{
		R: uint16(math.Round(clamp01(c.R) * 0xffff)),
		G: uint16(math.Round(clamp01(c.G) * 0xffff)),
		B: uint16(math.Round(clamp01(c.B) * 0xffff)),
		A: uint16(math.Round(clamp01(c.A) * 0xffff)),
	}
}

// FromColor converts a standard library color.
func FromColor(c color.Color) RGBA {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
		A: float64(n.A) / 0xffff,
	}
}

// premul returns c as premultiplied 8-bit RGBA.
func (c RGBA) premul() color.RGBA {
	c = c.clamp()
	a := c.A
	return color.RGBA{
		R: uint8(math.Round(c.R * a * 255)),
		G: uint8(math.Round(c.G * a * 255)),
		B: uint8(math.Round(c.B * a * 255)),
		A: uint8(math.Round(a * 255)),
	}
}

// The 16-bit thresholds below which a colour is treated as fully
// transparent or at which it is treated as opaque.
const (
	alphaClear  = 0x00ff
	alphaOpaque = 0xff00
)

func alphaShort(a float64) int {
	return int(clamp01(a) * 0xffff)
}

func alphaIsClear(a float64) bool  { return alphaShort(a) <= alphaClear }
func alphaIsOpaque(a float64) bool { return alphaShort(a) >= alphaOpaque }

// isClear reports whether c is treated as fully transparent.
func (c RGBA) isClear() bool { return alphaIsClear(c.A) }

// isOpaque reports whether c is treated as opaque.
func (c RGBA) isOpaque() bool { return alphaIsOpaque(c.A) }

// isBlack reports whether the colour channels are treated as zero.
func (c RGBA) isBlack() bool {
	return alphaShort(c.R) <= alphaClear && alphaShort(c.G) <= alphaClear && alphaShort(c.B) <= alphaClear
}

// equal compares two colors at 16-bit precision. Two clear colors are
// equal whatever their channels.
func (c RGBA) equal(o RGBA) bool {
	if alphaShort(c.A) != alphaShort(o.A) {
		return false
	}
	if alphaShort(c.A) == 0 {
		return true
	}
	return alphaShort(c.R) == alphaShort(o.R) && alphaShort(c.G) == alphaShort(o.G) && alphaShort(c.B) == alphaShort(o.B)
}
