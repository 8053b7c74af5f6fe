// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

// Span composites a row of premultiplied RGBA pixels.
//
// mask is the shape coverage and clip the clip coverage, one byte per
// pixel; a nil slice means full coverage. Source and Clear interpolate
// between the destination and the source by mask∩clip. Every other mode
// computes (src IN mask) OP dst and interpolates that with the
// destination by clip.
func Span(dst, src, mask, clip []byte, m Mode) {
	n := len(dst) / 4
	f := Lookup(m)
	for i := range n {
		o := i * 4
		mc := byte(0xff)
		if mask != nil {
			mc = mask[i]
		}
		cc := byte(0xff)
		if clip != nil {
			cc = clip[i]
		}
		d := dst[o : o+4 : o+4]
		s := src[o : o+4 : o+4]

		switch m {
		case Source, Clear:
			t := mulDiv255(mc, cc)
			if t == 0 {
				continue
			}
			var sr, sg, sb, sa byte
			if m == Source {
				sr, sg, sb, sa = s[0], s[1], s[2], s[3]
			}
			d[0], d[1], d[2], d[3] = lerp(d[0], sr, t), lerp(d[1], sg, t), lerp(d[2], sb, t), lerp(d[3], sa, t)
			continue
		}

		if cc == 0 {
			continue
		}
		sr, sg, sb, sa := s[0], s[1], s[2], s[3]
		if mc != 0xff {
			sr, sg, sb, sa = mulDiv255(sr, mc), mulDiv255(sg, mc), mulDiv255(sb, mc), mulDiv255(sa, mc)
		}
		r, g, b, a := f(sr, sg, sb, sa, d[0], d[1], d[2], d[3])
		d[0], d[1], d[2], d[3] = lerp(d[0], r, cc), lerp(d[1], g, cc), lerp(d[2], b, cc), lerp(d[3], a, cc)
	}
}
