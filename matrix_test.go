// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"math"
	"testing"
)

func matrixNear(a, b Matrix) bool {
	return near(a.XX, b.XX) && near(a.YX, b.YX) && near(a.XY, b.XY) &&
		near(a.YY, b.YY) && near(a.X0, b.X0) && near(a.Y0, b.Y0)
}

func TestMultiplyOrder(t *testing.T) {
	// Scale first, then translate.
	m := Scale(2, 3).Multiply(Translate(10, 20))
	if x, y := m.TransformPoint(1, 1); x != 12 || y != 23 {
		t.Errorf("TransformPoint(1, 1) = (%v, %v), want (12, 23)", x, y)
	}
	// Methods prepend, so the translation happens in scaled space.
	m = Identity().Scale(2, 3).Translate(10, 20)
	if x, y := m.TransformPoint(1, 1); x != 22 || y != 63 {
		t.Errorf("TransformPoint(1, 1) = (%v, %v), want (22, 63)", x, y)
	}
}

func TestRotate(t *testing.T) {
	x, y := Rotate(math.Pi/2).TransformPoint(1, 0)
	if !near(x, 0) || !near(y, 1) {
		t.Errorf("Rotate(π/2) maps (1, 0) to (%v, %v), want (0, 1)", x, y)
	}
}

func TestInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		ok   bool
	}{
		{"identity", Identity(), true},
		{"scale translate", Scale(2, 4).Multiply(Translate(3, -5)), true},
		{"rotate", Rotate(0.3).Multiply(Translate(1, 2)), true},
		{"shear", NewMatrix(1, 0.5, 0.25, 1, 7, 8), true},
		{"singular", Scale(0, 1), false},
		{"rank one", NewMatrix(1, 2, 2, 4, 0, 0), false},
		{"nan", NewMatrix(math.NaN(), 0, 0, 1, 0, 0), false},
		{"inf", Translate(math.Inf(1), 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := tt.m.Invert()
			if tt.ok != (err == nil) {
				t.Fatalf("Invert() error = %v, want ok=%v", err, tt.ok)
			}
			if !tt.ok {
				if err != StatusInvalidMatrix {
					t.Errorf("Invert() error = %v, want %v", err, StatusInvalidMatrix)
				}
				return
			}
			if got := tt.m.Multiply(inv); !matrixNear(got, Identity()) {
				t.Errorf("m × m⁻¹ = %+v, want identity", got)
			}
		})
	}
}

func TestIsIntegerTranslation(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		tx, ty int
		ok     bool
	}{
		{"identity", Identity(), 0, 0, true},
		{"integer", Translate(-3, 7), -3, 7, true},
		{"fractional", Translate(0.5, 0), 0, 0, false},
		{"scaled", Scale(2, 2), 0, 0, false},
		{"huge", Translate(1e12, 0), 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, ty, ok := tt.m.IsIntegerTranslation()
			if tx != tt.tx || ty != tt.ty || ok != tt.ok {
				t.Errorf("IsIntegerTranslation() = (%d, %d, %v), want (%d, %d, %v)", tx, ty, ok, tt.tx, tt.ty, tt.ok)
			}
		})
	}
}

func TestTransformBounds(t *testing.T) {
	x1, y1, x2, y2 := Rotate(math.Pi/2).TransformBounds(0, 0, 2, 1)
	if !near(x1, -1) || !near(y1, 0) || !near(x2, 0) || !near(y2, 2) {
		t.Errorf("TransformBounds() = (%v, %v, %v, %v), want (-1, 0, 0, 2)", x1, y1, x2, y2)
	}
}

func TestIsAxisAligned(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"scale", Scale(-2, 3), true},
		{"quarter turn", NewMatrix(0, 1, -1, 0, 4, 4), true},
		{"rotate", Rotate(0.1), false},
		{"shear", NewMatrix(1, 0, 0.5, 1, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.isAxisAligned(); got != tt.want {
				t.Errorf("isAxisAligned() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScaleFactors(t *testing.T) {
	sx, sy := Scale(3, 4).Multiply(Rotate(1)).scaleFactors()
	if !near(sx, 3) || !near(sy, 4) {
		t.Errorf("scaleFactors() = (%v, %v), want (3, 4)", sx, sy)
	}
}
