// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package blend implements compositing operators on premultiplied 8-bit
// RGBA pixels.
//
// The Porter-Duff operators, Add and Saturate work directly on
// premultiplied values. The separable and non-separable blend modes
// unpremultiply, blend and recombine with
//
//	Result = (1 - Sa)*D + (1 - Da)*S + Sa*Da*B(Cs, Cb)
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode is a compositing operator.
type Mode uint8

const (
	Clear           Mode = iota // 0
	Source                      // S
	Over                        // S + D*(1-Sa)
	In                          // S*Da
	Out                         // S*(1-Da)
	Atop                        // S*Da + D*(1-Sa)
	Dest                        // D
	DestOver                    // S*(1-Da) + D
	DestIn                      // D*Sa
	DestOut                     // D*(1-Sa)
	DestAtop                    // S*(1-Da) + D*Sa
	Xor                         // S*(1-Da) + D*(1-Sa)
	Add                         // min(S + D, 1)
	Saturate                    // S*min(1, (1-Da)/Sa) + D
	Multiply                    // B = Cs*Cb
	Screen                      // B = Cs + Cb - Cs*Cb
	Overlay                     // B = HardLight(Cb, Cs)
	Darken                      // B = min(Cs, Cb)
	Lighten                     // B = max(Cs, Cb)
	ColorDodge                  // B = min(1, Cb/(1-Cs))
	ColorBurn                   // B = 1 - min(1, (1-Cb)/Cs)
	HardLight                   // Multiply or Screen depending on Cs
	SoftLight                   // soft HardLight
	Difference                  // B = |Cs - Cb|
	Exclusion                   // B = Cs + Cb - 2*Cs*Cb
	Hue                         // SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb))
	Saturation                  // SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb))
	Color                       // SetLum(Cs, Lum(Cb))
	Luminosity                  // SetLum(Cb, Lum(Cs))

	numModes
)

var modeNames = [...]string{
	"Clear", "Source", "Over", "In", "Out", "Atop", "Dest", "DestOver",
	"DestIn", "DestOut", "DestAtop", "Xor", "Add", "Saturate", "Multiply",
	"Screen", "Overlay", "Darken", "Lighten", "ColorDodge", "ColorBurn",
	"HardLight", "SoftLight", "Difference", "Exclusion", "Hue",
	"Saturation", "Color", "Luminosity",
}

// String returns the operator name.
func (m Mode) String() string {
	if m < numModes {
		return modeNames[m]
	}
	return "Unknown"
}

// Func blends one premultiplied source pixel with one destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

var funcs = [numModes]Func{
	Clear:      blendClear,
	Source:     blendSource,
	Over:       blendOver,
	In:         blendIn,
	Out:        blendOut,
	Atop:       blendAtop,
	Dest:       blendDest,
	DestOver:   blendDestOver,
	DestIn:     blendDestIn,
	DestOut:    blendDestOut,
	DestAtop:   blendDestAtop,
	Xor:        blendXor,
	Add:        blendAdd,
	Saturate:   blendSaturate,
	Multiply:   separable(multiply),
	Screen:     separable(screen),
	Overlay:    separable(overlay),
	Darken:     separable(darken),
	Lighten:    separable(lighten),
	ColorDodge: separable(colorDodge),
	ColorBurn:  separable(colorBurn),
	HardLight:  separable(hardLight),
	SoftLight:  separable(softLight),
	Difference: separable(difference),
	Exclusion:  separable(exclusion),
	Hue:        nonSeparable(hslHue),
	Saturation: nonSeparable(hslSaturation),
	Color:      nonSeparable(hslColor),
	Luminosity: nonSeparable(hslLuminosity),
}

// Lookup returns the blend function for m. Unknown modes use Over.
func Lookup(m Mode) Func {
	if m < numModes {
		return funcs[m]
	}
	return blendOver
}

// BoundedByMask reports whether pixels outside the shape are left
// untouched by m.
func BoundedByMask(m Mode) bool {
	switch m {
	case In, Out, DestIn, DestAtop:
		return false
	}
	return true
}

// BoundedBySource reports whether pixels where the source is transparent
// are left untouched by m.
func BoundedBySource(m Mode) bool {
	switch m {
	case Clear, Source, In, Out, DestIn, DestAtop:
		return false
	}
	return true
}

// IsNoop reports whether m leaves the destination unchanged whatever the
// source is.
func IsNoop(m Mode) bool {
	return m == Dest
}
