// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

import "math"

// channelFunc is a separable blend function B(Cs, Cb) on unpremultiplied
// channels in [0, 1].
type channelFunc func(s, d float64) float64

// separable wraps a channel function into a pixel blend.
func separable(b channelFunc) Func {
	return func(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
		if sa == 0 {
			return dr, dg, db, da
		}
		if da == 0 {
			return sr, sg, sb, sa
		}
		fsa, fda := float64(sa)/255, float64(da)/255
		ch := func(s, d byte) byte {
			fs, fd := float64(s)/255, float64(d)/255
			v := b(fs/fsa, fd/fda)
			return compose(fs, fd, fsa, fda, v)
		}
		return ch(sr, dr), ch(sg, dg), ch(sb, db), unionAlpha(sa, da)
	}
}

// compose returns (1-Sa)*D + (1-Da)*S + Sa*Da*B as a byte. s and d are
// premultiplied.
func compose(s, d, sa, da, b float64) byte {
	v := (1-sa)*d + (1-da)*s + sa*da*math.Max(0, math.Min(1, b))
	return byte(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func unionAlpha(sa, da byte) byte {
	return addClamp(sa, mulDiv255(da, 0xff-sa))
}

func multiply(s, d float64) float64 { return s * d }

func screen(s, d float64) float64 { return s + d - s*d }

func overlay(s, d float64) float64 { return hardLight(d, s) }

func darken(s, d float64) float64 { return math.Min(s, d) }

func lighten(s, d float64) float64 { return math.Max(s, d) }

func colorDodge(s, d float64) float64 {
	switch {
	case d == 0:
		return 0
	case s >= 1:
		return 1
	}
	return math.Min(1, d/(1-s))
}

func colorBurn(s, d float64) float64 {
	switch {
	case d >= 1:
		return 1
	case s <= 0:
		return 0
	}
	return 1 - math.Min(1, (1-d)/s)
}

func hardLight(s, d float64) float64 {
	if s <= 0.5 {
		return multiply(2*s, d)
	}
	return screen(2*s-1, d)
}

func softLight(s, d float64) float64 {
	if s <= 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var dd float64
	if d <= 0.25 {
		dd = ((16*d-12)*d + 4) * d
	} else {
		dd = math.Sqrt(d)
	}
	return d + (2*s-1)*(dd-d)
}

func difference(s, d float64) float64 { return math.Abs(s - d) }

func exclusion(s, d float64) float64 { return s + d - 2*s*d }
