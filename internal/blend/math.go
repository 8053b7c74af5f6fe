// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

// div255 divides x by 255 with rounding, exact for every product of two
// bytes. This is Alvy Ray Smith's formula.
func div255(x uint32) uint32 {
	x += 128
	return (x + x>>8) >> 8
}

// mulDiv255 returns a*b/255 rounded to nearest.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint32(a) * uint32(b)))
}

// MulDiv255 returns a*b/255 rounded to nearest.
func MulDiv255(a, b byte) byte {
	return mulDiv255(a, b)
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// lerp returns a + (b-a)*t/255 rounded to nearest.
func lerp(a, b, t byte) byte {
	if t == 0xff {
		return b
	}
	if t == 0 {
		return a
	}
	return byte(div255(uint32(a)*uint32(255-t) + uint32(b)*uint32(t)))
}
