// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package path

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"golang.org/x/image/math/fixed"
)

// recorder captures the segment sequence produced by Interpret.
type recorder struct {
	ops []Op
	pts []fixed.Point26_6
}

func (r *recorder) MoveTo(p fixed.Point26_6) error {
	r.ops = append(r.ops, OpMoveTo)
	r.pts = append(r.pts, p)
	return nil
}

func (r *recorder) LineTo(p fixed.Point26_6) error {
	r.ops = append(r.ops, OpLineTo)
	r.pts = append(r.pts, p)
	return nil
}

func (r *recorder) CurveTo(p1, p2, p3 fixed.Point26_6) error {
	r.ops = append(r.ops, OpCurveTo)
	r.pts = append(r.pts, p1, p2, p3)
	return nil
}

func (r *recorder) ClosePath() error {
	r.ops = append(r.ops, OpClosePath)
	return nil
}

func TestFromFloatClamped(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		margin float64
		want   float64
	}{
		{"in range", 10.5, 0, 10.5},
		{"rounds to 1/64", 1.0 / 128 * 3, 0, 2.0 / 64},
		{"clamped high", 1e12, 0, MaxCoord},
		{"clamped low", -1e12, 0, -MaxCoord},
		{"margin shrinks limit", 1e12, 1000, MaxCoord - 1000},
		{"margin is capped", 1e12, 1e12, MaxCoord / 2},
		{"nan", math.NaN(), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToFloat(FromFloatClamped(tt.v, tt.margin))
			if got != tt.want {
				t.Errorf("FromFloatClamped(%v, %v) = %v, want %v", tt.v, tt.margin, got, tt.want)
			}
		})
	}
}

func TestPath_CloseReopensSubPath(t *testing.T) {
	p := New()
	p.MoveTo(Pt(1, 1))
	p.LineTo(Pt(5, 1))
	p.LineTo(Pt(5, 5))
	p.ClosePath()

	cur, ok := p.CurrentPoint()
	if !ok || cur != Pt(1, 1) {
		t.Fatalf("CurrentPoint() = %v, %v; want (1,1), true", cur, ok)
	}

	var r recorder
	_ = p.Interpret(&r)
	want := []Op{OpMoveTo, OpLineTo, OpLineTo, OpClosePath, OpMoveTo}
	if !reflect.DeepEqual(r.ops, want) {
		t.Errorf("ops = %v, want %v", r.ops, want)
	}

	// A following LineTo starts at the close point.
	p.LineTo(Pt(9, 9))
	r = recorder{}
	_ = p.Interpret(&r)
	want = []Op{OpMoveTo, OpLineTo, OpLineTo, OpClosePath, OpMoveTo, OpLineTo}
	if !reflect.DeepEqual(r.ops, want) {
		t.Errorf("ops = %v, want %v", r.ops, want)
	}
	if r.pts[4] != Pt(1, 1) {
		t.Errorf("implicit MoveTo at %v, want (1,1)", r.pts[4])
	}
}

func TestPath_MoveToReplacesMoveTo(t *testing.T) {
	p := New()
	p.MoveTo(Pt(1, 1))
	p.MoveTo(Pt(2, 2))
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestPath_DegenerateLineTo(t *testing.T) {
	p := New()
	p.LineTo(Pt(3, 3)) // acts as MoveTo
	p.LineTo(Pt(3, 3)) // kept: first segment after MoveTo
	p.LineTo(Pt(3, 3)) // dropped
	var r recorder
	_ = p.Interpret(&r)
	want := []Op{OpMoveTo, OpLineTo}
	if !reflect.DeepEqual(r.ops, want) {
		t.Errorf("ops = %v, want %v", r.ops, want)
	}
}

func TestPath_Relative(t *testing.T) {
	p := New()
	if err := p.RelLineTo(Pt(1, 1)); !errors.Is(err, ErrNoCurrentPoint) {
		t.Fatalf("RelLineTo without current point error = %v", err)
	}
	p.MoveTo(Pt(10, 10))
	_ = p.RelLineTo(Pt(5, 0))
	_ = p.RelCurveTo(Pt(1, 1), Pt(2, 2), Pt(3, 3))
	cur, _ := p.CurrentPoint()
	if cur != Pt(18, 13) {
		t.Errorf("CurrentPoint() = %v, want (18,13)", cur)
	}
}

func TestPath_FlattenIdempotent(t *testing.T) {
	p := New()
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.LineTo(Pt(10, 10))
	p.ClosePath()
	p.MoveTo(Pt(20, 20))
	p.LineTo(Pt(30, 25))

	var plain recorder
	_ = p.Interpret(&plain)
	for _, tol := range []float64{0.001, 0.1, 1, 100} {
		var flat recorder
		_ = p.InterpretFlat(&flat, tol)
		if !reflect.DeepEqual(plain, flat) {
			t.Errorf("InterpretFlat(%v) differs from Interpret", tol)
		}
	}
}

func TestPath_FlattenCurveWithinTolerance(t *testing.T) {
	p0, p1, p2, p3 := Pt(0, 0), Pt(0, 100), Pt(100, 100), Pt(100, 0)
	p := New()
	p.MoveTo(p0)
	p.CurveTo(p1, p2, p3)

	for _, tol := range []float64{1, 0.25, 0.05} {
		var r recorder
		_ = p.InterpretFlat(&r, tol)
		for _, op := range r.ops {
			if op == OpCurveTo {
				t.Fatalf("flattened path contains a curve")
			}
		}
		if r.pts[len(r.pts)-1] != p3 {
			t.Errorf("tol %v: last point %v, want %v", tol, r.pts[len(r.pts)-1], p3)
		}
		// Every curve sample must be near the polyline.
		poly := make([]Point, len(r.pts))
		for i, q := range r.pts {
			poly[i] = PointToFloat(q)
		}
		c0, c1, c2, c3 := PointToFloat(p0), PointToFloat(p1), PointToFloat(p2), PointToFloat(p3)
		for i := 0; i <= 100; i++ {
			q := evalCubic(c0, c1, c2, c3, float64(i)/100)
			best := math.Inf(1)
			for j := 1; j < len(poly); j++ {
				best = math.Min(best, distanceToLine(q, poly[j-1], poly[j]))
			}
			// Fixed-point rounding adds up to half a 1/64 unit.
			if best > tol+1.0/64 {
				t.Fatalf("tol %v: sample %d is %v away from polyline", tol, i, best)
			}
		}
	}
}

func TestPath_IsBox(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *Path)
		want  bool
	}{
		{"closed clockwise", func(p *Path) {
			p.MoveTo(Pt(2, 2))
			p.LineTo(Pt(6, 2))
			p.LineTo(Pt(6, 6))
			p.LineTo(Pt(2, 6))
			p.ClosePath()
		}, true},
		{"vertical first", func(p *Path) {
			p.MoveTo(Pt(2, 2))
			p.LineTo(Pt(2, 6))
			p.LineTo(Pt(6, 6))
			p.LineTo(Pt(6, 2))
			p.ClosePath()
		}, true},
		{"unclosed", func(p *Path) {
			p.MoveTo(Pt(2, 2))
			p.LineTo(Pt(6, 2))
			p.LineTo(Pt(6, 6))
			p.LineTo(Pt(2, 6))
		}, true},
		{"triangle", func(p *Path) {
			p.MoveTo(Pt(2, 2))
			p.LineTo(Pt(6, 2))
			p.LineTo(Pt(6, 6))
			p.ClosePath()
		}, false},
		{"skewed", func(p *Path) {
			p.MoveTo(Pt(2, 2))
			p.LineTo(Pt(6, 3))
			p.LineTo(Pt(6, 6))
			p.LineTo(Pt(2, 6))
			p.ClosePath()
		}, false},
		{"two rectangles", func(p *Path) {
			for _, x := range []float64{0, 10} {
				p.MoveTo(Pt(x, 0))
				p.LineTo(Pt(x+2, 0))
				p.LineTo(Pt(x+2, 2))
				p.LineTo(Pt(x, 2))
				p.ClosePath()
			}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			tt.build(p)
			b, ok := p.IsBox()
			if ok != tt.want {
				t.Fatalf("IsBox() ok = %v, want %v", ok, tt.want)
			}
			if ok && b != (Box{P1: Pt(2, 2), P2: Pt(6, 6)}) {
				t.Errorf("IsBox() = %v", b)
			}
		})
	}
}

func TestPath_Extents(t *testing.T) {
	p := New()
	p.MoveTo(Pt(100, 100)) // lone MoveTo does not count
	p.MoveTo(Pt(0, 0))
	p.CurveTo(Pt(0, 40), Pt(40, 40), Pt(40, 0))

	b, ok := p.Extents()
	if !ok {
		t.Fatal("Extents() ok = false")
	}
	x1, y1, x2, y2 := b.FloatBounds()
	if x1 != 0 || y1 != 0 || x2 != 40 {
		t.Errorf("Extents() = (%v,%v,%v,%v)", x1, y1, x2, y2)
	}
	// Apex of the curve is at 3/4 of the control height.
	if math.Abs(y2-30) > 1.0/32 {
		t.Errorf("Extents() max y = %v, want 30", y2)
	}
}

func TestPath_Translate(t *testing.T) {
	p := New()
	p.MoveTo(Pt(1, 1))
	p.LineTo(Pt(2, 3))
	p.Translate(FromInt(-1), FromInt(2))
	cur, _ := p.CurrentPoint()
	if cur != Pt(1, 5) {
		t.Errorf("CurrentPoint() = %v, want (1,5)", cur)
	}
}

func TestPath_Flatten(t *testing.T) {
	p := New()
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(4, 0))
	p.LineTo(Pt(4, 4))
	p.ClosePath()
	p.MoveTo(Pt(9, 9)) // lone move dropped
	p.MoveTo(Pt(10, 10))
	p.LineTo(Pt(12, 10))

	lines := p.Flatten(0.1)
	if len(lines) != 2 {
		t.Fatalf("Flatten() returned %d polylines, want 2", len(lines))
	}
	if !lines[0].Closed || len(lines[0].Points) != 3 {
		t.Errorf("first polyline = %+v", lines[0])
	}
	if lines[1].Closed || len(lines[1].Points) != 2 {
		t.Errorf("second polyline = %+v", lines[1])
	}
}
