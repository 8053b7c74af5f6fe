// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

import "math"

// rgb is an unpremultiplied colour with channels in [0, 1].
type rgb struct{ r, g, b float64 }

// Lum returns the luminance of (r, g, b) with BT.601 weights.
func Lum(r, g, b float64) float64 {
	return 0.30*r + 0.59*g + 0.11*b
}

// Sat returns max(r, g, b) - min(r, g, b).
func Sat(r, g, b float64) float64 {
	return max(r, g, b) - min(r, g, b)
}

func (c rgb) lum() float64 { return Lum(c.r, c.g, c.b) }
func (c rgb) sat() float64 { return Sat(c.r, c.g, c.b) }

// clip brings out-of-range channels back to [0, 1] keeping luminance.
func (c rgb) clip() rgb {
	l := c.lum()
	n := min(c.r, c.g, c.b)
	x := max(c.r, c.g, c.b)
	if n < 0 {
		f := func(v float64) float64 { return l + (v-l)*l/(l-n) }
		c = rgb{f(c.r), f(c.g), f(c.b)}
	}
	if x > 1 {
		f := func(v float64) float64 { return l + (v-l)*(1-l)/(x-l) }
		c = rgb{f(c.r), f(c.g), f(c.b)}
	}
	return c
}

func (c rgb) setLum(l float64) rgb {
	d := l - c.lum()
	return rgb{c.r + d, c.g + d, c.b + d}.clip()
}

func (c rgb) setSat(s float64) rgb {
	ch := []*float64{&c.r, &c.g, &c.b}
	// Order the channel pointers min, mid, max.
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	if *ch[1] > *ch[2] {
		ch[1], ch[2] = ch[2], ch[1]
	}
	if *ch[0] > *ch[1] {
		ch[0], ch[1] = ch[1], ch[0]
	}
	lo, mid, hi := *ch[0], *ch[1], *ch[2]
	if hi > lo {
		*ch[1] = (mid - lo) * s / (hi - lo)
		*ch[2] = s
	} else {
		*ch[1], *ch[2] = 0, 0
	}
	*ch[0] = 0
	return c
}

func hslHue(s, d rgb) rgb        { return s.setSat(d.sat()).setLum(d.lum()) }
func hslSaturation(s, d rgb) rgb { return d.setSat(s.sat()).setLum(d.lum()) }
func hslColor(s, d rgb) rgb      { return s.setLum(d.lum()) }
func hslLuminosity(s, d rgb) rgb { return d.setLum(s.lum()) }

// nonSeparable wraps an HSL blend function into a pixel blend.
func nonSeparable(b func(s, d rgb) rgb) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
		if sa == 0 {
			return dr, dg, db, da
		}
		if da == 0 {
			return sr, sg, sb, sa
		}
		fsa, fda := float64(sa)/255, float64(da)/255
		un := func(v byte, a float64) float64 { return math.Min(1, float64(v)/255/a) }
		s := rgb{un(sr, fsa), un(sg, fsa), un(sb, fsa)}
		d := rgb{un(dr, fda), un(dg, fda), un(db, fda)}
		res := b(s, d)
		ch := func(sv, dv byte, v float64) byte {
			return compose(float64(sv)/255, float64(dv)/255, fsa, fda, v)
		}
		return ch(sr, dr, res.r), ch(sg, dg, res.g), ch(sb, db, res.b), unionAlpha(sa, da)
	}
}
