// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

// Porter-Duff operators on premultiplied alpha. Each combines
// Fa*S + Fb*D with the factors named in the Mode constants.

func blendClear(_, _, _, _, _, _, _, _ byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

func blendSource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

func blendDest(_, _, _, _, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return dr, dg, db, da
}

// porterDuff computes S*fa + D*fb per channel.
func porterDuff(sr, sg, sb, sa, dr, dg, db, da, fa, fb byte) (byte, byte, byte, byte) {
	c := func(s, d byte) byte {
		return byte(min(255, div255(uint32(s)*uint32(fa)+uint32(d)*uint32(fb))))
	}
	return c(sr, dr), c(sg, dg), c(sb, db), c(sa, da)
}

func blendOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	if sa == 0xff {
		return sr, sg, sb, sa
	}
	if sa == 0 && sr|sg|sb == 0 {
		return dr, dg, db, da
	}
	return porterDuff(sr, sg, sb, sa, dr, dg, db, da, 0xff, 0xff-sa)
}

func blendIn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return porterDuff(sr, sg, sb, sa, dr, dg, db, da, da, 0)
}

func blendOut(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return porterDuff(sr, sg, sb, sa, dr, dg, db, da, 0xff-da, 0)
}

func blendAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return porterDuff(sr, sg, sb, sa, dr, dg, db, da, da, 0xff-sa)
}

func blendDestOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return porterDuff(sr, sg, sb, sa, dr, dg, db, da, 0xff-da, 0xff)
}

func blendDestIn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return porterDuff(sr, sg, sb, sa, dr, dg, db, da, 0, sa)
}

func blendDestOut(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return porterDuff(sr, sg, sb, sa, dr, dg, db, da, 0, 0xff-sa)
}

func blendDestAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return porterDuff(sr, sg, sb, sa, dr, dg, db, da, 0xff-da, sa)
}

func blendXor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return porterDuff(sr, sg, sb, sa, dr, dg, db, da, 0xff-da, 0xff-sa)
}

func blendAdd(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addClamp(sr, dr), addClamp(sg, dg), addClamp(sb, db), addClamp(sa, da)
}

// blendSaturate adds as much of the source as fits in the remaining
// destination coverage.
func blendSaturate(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	room := 0xff - da
	if sa <= room {
		return blendAdd(sr, sg, sb, sa, dr, dg, db, da)
	}
	f := byte(uint32(room) * 0xff / uint32(sa))
	return porterDuff(sr, sg, sb, sa, dr, dg, db, da, f, 0xff)
}
