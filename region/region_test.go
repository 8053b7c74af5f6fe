// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package region

import (
	"errors"
	"image"
	"math/rand/v2"
	"testing"
)

func rect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

func TestRegion_Empty(t *testing.T) {
	r := New()
	if !r.IsEmpty() {
		t.Error("New().IsEmpty() = false")
	}
	if n := NewRectangle(rect(1, 1, 0, 5)).NumRectangles(); n != 0 {
		t.Errorf("zero-width rectangle region has %d rectangles", n)
	}
	if got := r.Extents(); got != (image.Rectangle{}) {
		t.Errorf("Extents() = %v, want empty", got)
	}
}

func TestRegion_Operations(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := rect(5, 5, 10, 10)

	tests := []struct {
		name     string
		apply    func(r *Region) error
		wantArea int
		wantExt  image.Rectangle
	}{
		{"union", func(r *Region) error { return r.UnionRectangle(b) }, 175, image.Rect(0, 0, 15, 15)},
		{"intersect", func(r *Region) error { return r.IntersectRectangle(b) }, 25, image.Rect(5, 5, 10, 10)},
		{"subtract", func(r *Region) error { return r.SubtractRectangle(b) }, 75, image.Rect(0, 0, 10, 10)},
		{"xor", func(r *Region) error { return r.XorRectangle(b) }, 150, image.Rect(0, 0, 15, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRectangle(a)
			if err := tt.apply(r); err != nil {
				t.Fatalf("error = %v", err)
			}
			if got := area(r.bands); got != tt.wantArea {
				t.Errorf("area = %d, want %d", got, tt.wantArea)
			}
			if got := r.Extents(); got != tt.wantExt {
				t.Errorf("Extents() = %v, want %v", got, tt.wantExt)
			}
			checkNormalized(t, r)
		})
	}
}

func TestRegion_UnionMergesAdjacent(t *testing.T) {
	r := NewRectangles(rect(0, 0, 5, 5), rect(5, 0, 5, 5), rect(0, 5, 10, 5))
	if n := r.NumRectangles(); n != 1 {
		t.Fatalf("NumRectangles() = %d, want 1 (%v)", n, r.Rectangles())
	}
	if got := r.Rectangle(0); got != rect(0, 0, 10, 10) {
		t.Errorf("Rectangle(0) = %v", got)
	}
}

func TestRegion_MergedViewAcrossBands(t *testing.T) {
	// Column on the left spans two bands that differ on the right.
	r := NewRectangles(rect(0, 0, 2, 4), rect(5, 0, 2, 2))
	if n := r.NumRectangles(); n != 2 {
		t.Errorf("NumRectangles() = %d, want 2 (%v)", n, r.Rectangles())
	}
}

func TestRegion_UnionCount(t *testing.T) {
	tests := []struct {
		name string
		a, b image.Rectangle
		want int
	}{
		{"disjoint", rect(0, 0, 2, 2), rect(10, 10, 2, 2), 2},
		{"same band", rect(0, 0, 4, 4), rect(2, 0, 6, 4), 1},
		{"contained", rect(0, 0, 10, 10), rect(2, 2, 2, 2), 1},
		{"side bump", rect(0, 0, 2, 4), rect(1, 1, 2, 2), 2},
		{"top bump", rect(0, 0, 4, 2), rect(1, 1, 2, 2), 2},
		{"touching side", rect(0, 0, 2, 4), rect(2, 1, 2, 2), 2},
		// No partition of these unions into two rectangles exists.
		{"cross", rect(0, 4, 10, 2), rect(4, 0, 2, 10), 3},
		{"step", rect(0, 0, 4, 4), rect(2, 2, 4, 4), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewRectangle(tt.a)
			_ = u.UnionRectangle(tt.b)
			if n := u.NumRectangles(); n != tt.want {
				t.Errorf("NumRectangles() = %d, want %d (%v)", n, tt.want, u.Rectangles())
			}
			checkNormalized(t, u)
		})
	}
}

func TestRegion_RandomAlgebra(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	randRegion := func() *Region {
		r := New()
		for range 1 + rng.IntN(6) {
			_ = r.UnionRectangle(rect(rng.IntN(20), rng.IntN(20), 1+rng.IntN(10), 1+rng.IntN(10)))
		}
		return r
	}

	randRect := func() image.Rectangle {
		return rect(rng.IntN(20), rng.IntN(20), 1+rng.IntN(10), 1+rng.IntN(10))
	}

	for i := range 200 {
		a, b, c := randRegion(), randRegion(), randRegion()

		ra, rb := randRect(), randRect()
		pair := NewRectangle(ra)
		_ = pair.UnionRectangle(rb)
		limit := 2
		if ra.Overlaps(rb) {
			// Crossing or stepped rectangles need a third piece.
			limit = 3
		}
		if n := pair.NumRectangles(); n > limit {
			t.Fatalf("iteration %d: %v ∪ %v has %d rectangles, want at most %d", i, ra, rb, n, limit)
		}
		checkNormalized(t, pair)

		ab := a.Copy()
		_ = ab.Union(b)
		ba := b.Copy()
		_ = ba.Union(a)
		if !ab.Equal(ba) {
			t.Fatalf("iteration %d: union not commutative", i)
		}
		checkNormalized(t, ab)

		left := ab.Copy()
		_ = left.Union(c)
		bc := b.Copy()
		_ = bc.Union(c)
		right := a.Copy()
		_ = right.Union(bc)
		if !left.Equal(right) {
			t.Fatalf("iteration %d: union not associative", i)
		}

		x := a.Copy()
		_ = x.Xor(b)
		// a xor b == (a ∪ b) − (a ∩ b)
		inter := a.Copy()
		_ = inter.Intersect(b)
		want := ab.Copy()
		_ = want.Subtract(inter)
		if !x.Equal(want) {
			t.Fatalf("iteration %d: xor mismatch", i)
		}
		checkNormalized(t, x)

		// Pixel-level check of the intersection.
		for y := 0; y < 32; y++ {
			for px := 0; px < 32; px++ {
				in := a.ContainsPoint(px, y) && b.ContainsPoint(px, y)
				if inter.ContainsPoint(px, y) != in {
					t.Fatalf("iteration %d: intersect wrong at (%d,%d)", i, px, y)
				}
			}
		}
	}
}

// checkNormalized verifies the banded form and the maximal-merge view.
func checkNormalized(t *testing.T, r *Region) {
	t.Helper()
	for i, b := range r.bands {
		if b.y0 >= b.y1 || len(b.spans) == 0 {
			t.Fatalf("band %d degenerate: %+v", i, b)
		}
		for j, s := range b.spans {
			if s.x0 >= s.x1 {
				t.Fatalf("band %d span %d empty", i, j)
			}
			if j > 0 && b.spans[j-1].x1 >= s.x0 {
				t.Fatalf("band %d spans %d and %d touch", i, j-1, j)
			}
		}
		if i > 0 {
			p := r.bands[i-1]
			if p.y1 > b.y0 {
				t.Fatalf("bands %d and %d overlap", i-1, i)
			}
		}
	}

	rects := r.Rectangles()
	total := 0
	for i, a := range rects {
		total += a.Dx() * a.Dy()
		for j := i + 1; j < len(rects); j++ {
			b := rects[j]
			if a.Overlaps(b) {
				t.Fatalf("rectangles %v and %v overlap", a, b)
			}
			sameCols := a.Min.X == b.Min.X && a.Max.X == b.Max.X && (a.Max.Y == b.Min.Y || b.Max.Y == a.Min.Y)
			sameRows := a.Min.Y == b.Min.Y && a.Max.Y == b.Max.Y && (a.Max.X == b.Min.X || b.Max.X == a.Min.X)
			if sameCols || sameRows {
				t.Fatalf("rectangles %v and %v could be merged", a, b)
			}
		}
		if i > 0 {
			p := rects[i-1]
			if p.Min.Y > a.Min.Y || (p.Min.Y == a.Min.Y && p.Min.X > a.Min.X) {
				t.Fatalf("rectangles not in scanline order: %v before %v", p, a)
			}
		}
	}
	if total != area(r.bands) {
		t.Fatalf("merged view area %d, banded area %d", total, area(r.bands))
	}
}

func TestRegion_ContainsRectangle(t *testing.T) {
	r := NewRectangles(rect(0, 0, 10, 10), rect(20, 0, 10, 10))
	tests := []struct {
		name string
		rect image.Rectangle
		want Overlap
	}{
		{"inside", rect(2, 2, 3, 3), OverlapIn},
		{"outside", rect(12, 2, 3, 3), OverlapOut},
		{"partial", rect(8, 2, 4, 3), OverlapPart},
		{"spanning gap", rect(5, 0, 20, 5), OverlapPart},
		{"empty", rect(1, 1, 0, 0), OverlapOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ContainsRectangle(tt.rect); got != tt.want {
				t.Errorf("ContainsRectangle(%v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestRegion_ErrorPropagation(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	// Errored receiver: no-op returning its error.
	a := NewInError(errA)
	if err := a.UnionRectangle(rect(0, 0, 1, 1)); !errors.Is(err, errA) {
		t.Errorf("Union on errored region = %v, want %v", err, errA)
	}
	if !a.IsEmpty() {
		t.Error("errored region is not empty")
	}

	// Errored argument: receiver takes the argument's error.
	ok := NewRectangle(rect(0, 0, 4, 4))
	if err := ok.Intersect(NewInError(errB)); !errors.Is(err, errB) {
		t.Errorf("Intersect with errored argument = %v, want %v", err, errB)
	}
	if !errors.Is(ok.Err(), errB) {
		t.Errorf("Err() = %v, want %v", ok.Err(), errB)
	}

	// Both errored: left-hand side wins.
	left := NewInError(errA)
	if err := left.Subtract(NewInError(errB)); !errors.Is(err, errA) {
		t.Errorf("Subtract of two errored regions = %v, want %v", err, errA)
	}

	if NewInError(nil).Err() == nil {
		t.Error("NewInError(nil) has no error")
	}
}

func TestRegion_Translate(t *testing.T) {
	r := NewRectangle(rect(0, 0, 2, 2))
	r.Translate(3, 4)
	if got := r.Extents(); got != rect(3, 4, 2, 2) {
		t.Errorf("Extents() = %v", got)
	}
	if !r.ContainsPoint(4, 5) || r.ContainsPoint(0, 0) {
		t.Error("ContainsPoint after Translate is wrong")
	}
}
