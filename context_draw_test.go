// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"testing"
)

func drawSquares(cr *Context) {
	cr.SetSourceRGB(1, 0, 0)
	cr.Rectangle(1, 1, 4, 4)
	cr.Fill()
	cr.SetSourceRGB(0, 0, 1)
	cr.Rectangle(3, 3, 4, 4)
	cr.Fill()
}

func TestGroupRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		clip    func(cr *Context)
		maxDiff int
	}{
		{"unclipped", func(*Context) {}, 0},
		{"clipped", func(cr *Context) {
			cr.Rectangle(2, 2, 6, 6)
			cr.Clip()
		}, 0},
		{"translated", func(cr *Context) { cr.Translate(2, 1) }, 0},
		{"fractional clip", func(cr *Context) {
			cr.Rectangle(4.5, 2.5, 8.5, 9.5)
			cr.Clip()
		}, 2},
		{"rotated clip", func(cr *Context) {
			cr.Translate(6, 6)
			cr.Rotate(0.5)
			cr.Scale(1.2, 0.8)
			cr.Rectangle(-4, -4, 8, 8)
			cr.Clip()
			cr.IdentityMatrix()
		}, 2},
		{"circle clip", func(cr *Context) {
			cr.Arc(5, 5, 3.3, 0, 2*math.Pi)
			cr.Clip()
		}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			direct, ds := newWhiteContext(t, 12, 12)
			tt.clip(direct)
			drawSquares(direct)

			grouped, gs := newWhiteContext(t, 12, 12)
			tt.clip(grouped)
			grouped.PushGroup()
			if grouped.GroupTarget() == gs {
				t.Fatal("GroupTarget() is the target inside a group")
			}
			drawSquares(grouped)
			grouped.PopGroupToSource()
			grouped.Paint()

			if st := grouped.Status(); st != StatusSuccess {
				t.Fatalf("Status() = %v", st)
			}
			if grouped.GroupTarget() != gs {
				t.Error("GroupTarget() is not the target after PopGroup")
			}
			if d := maxPixelDiff(t, ds, gs); d > tt.maxDiff {
				t.Errorf("group differs from direct drawing by %d, want at most %d", d, tt.maxDiff)
			}
		})
	}
}

// maxPixelDiff returns the largest channel difference between a and b.
func maxPixelDiff(t *testing.T, a, b *Surface) int {
	t.Helper()
	a.Flush()
	b.Flush()
	ia, ib := a.Image().(*image.RGBA), b.Image().(*image.RGBA)
	d := 0
	for i := range ia.Pix {
		d = max(d, abs(int(ia.Pix[i])-int(ib.Pix[i])))
	}
	return d
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestGroupMovedKeepsClip(t *testing.T) {
	// A group painted elsewhere is clipped again by the current clip.
	cr, s := newWhiteContext(t, 12, 12)
	cr.Rectangle(2, 2, 4, 4)
	cr.Clip()
	cr.PushGroup()
	cr.SetSourceRGB(1, 0, 0)
	cr.Paint()
	p := cr.PopGroup()
	defer p.Destroy()
	cr.Translate(3, 0)
	cr.SetSource(p)
	cr.Paint()
	checkPixels(t, s, func(x, y int) color.RGBA {
		if inRect(x, y, 5, 2, 6, 6) {
			return red
		}
		return white
	})
}

func TestGroupKeepsPath(t *testing.T) {
	cr, _ := newTestContext(t, 20, 20)
	cr.Rectangle(4, 4, 6, 6)
	cr.Clip()
	cr.MoveTo(5, 7)
	cr.PushGroup()
	if x, y := cr.CurrentPoint(); !near(x, 5) || !near(y, 7) {
		t.Errorf("CurrentPoint() in group = (%v, %v), want (5, 7)", x, y)
	}
	cr.LineTo(8, 9)
	cr.PopGroup().Destroy()
	if x, y := cr.CurrentPoint(); !near(x, 8) || !near(y, 9) {
		t.Errorf("CurrentPoint() after group = (%v, %v), want (8, 9)", x, y)
	}
}

func TestGroupAllClipped(t *testing.T) {
	cr, _ := newTestContext(t, 8, 8)
	cr.Rectangle(2, 2, 0, 0)
	cr.Clip()
	cr.PushGroup()
	cr.Paint()
	p := cr.PopGroup()
	defer p.Destroy()
	if st := p.Status(); st != StatusSuccess {
		t.Errorf("PopGroup().Status() = %v, want success", st)
	}
	if typ := p.Type(); typ != PatternTypeSurface {
		t.Errorf("PopGroup().Type() = %v, want surface", typ)
	}
}

func TestPaintWithAlpha(t *testing.T) {
	tests := []struct {
		name  string
		alpha float64
		check func(c color.RGBA) bool
	}{
		{"opaque", 1, func(c color.RGBA) bool { return c == red }},
		{"transparent", 0, func(c color.RGBA) bool { return c == white }},
		{"half", 0.5, func(c color.RGBA) bool {
			return c.R == 0xff && c.A == 0xff && c.G >= 126 && c.G <= 129 && c.G == c.B
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr, s := newWhiteContext(t, 4, 4)
			cr.SetSourceRGB(1, 0, 0)
			cr.PaintWithAlpha(tt.alpha)
			if got := pixelAt(t, s, 1, 1); !tt.check(got) {
				t.Errorf("PaintWithAlpha(%v) pixel = %v", tt.alpha, got)
			}
		})
	}
}

func TestMaskSurface(t *testing.T) {
	mask := NewImageSurface(FormatA8, 10, 10)
	defer mask.Destroy()
	mcr := NewContext(mask)
	mcr.Rectangle(0, 0, 5, 10)
	mcr.Fill()
	mcr.Destroy()

	cr, s := newWhiteContext(t, 10, 10)
	cr.MaskSurface(mask, 0, 0)
	if st := cr.Status(); st != StatusSuccess {
		t.Fatalf("Status() = %v", st)
	}
	checkPixels(t, s, func(x, y int) color.RGBA {
		if x < 5 {
			return black
		}
		return white
	})
}

func TestFillOperators(t *testing.T) {
	t.Run("clear", func(t *testing.T) {
		cr, s := newWhiteContext(t, 6, 6)
		cr.SetOperator(OperatorClear)
		cr.Rectangle(1, 1, 2, 2)
		cr.Fill()
		checkPixels(t, s, func(x, y int) color.RGBA {
			if inRect(x, y, 1, 1, 3, 3) {
				return transparent
			}
			return white
		})
	})
	t.Run("unbounded with empty path", func(t *testing.T) {
		cr, s := newWhiteContext(t, 6, 6)
		cr.SetOperator(OperatorIn)
		cr.Fill()
		checkPixels(t, s, func(int, int) color.RGBA { return transparent })
	})
	t.Run("bounded with empty path", func(t *testing.T) {
		cr, s := newWhiteContext(t, 6, 6)
		cr.Fill()
		checkPixels(t, s, func(int, int) color.RGBA { return white })
	})
}

func TestFillEvenOdd(t *testing.T) {
	cr, s := newWhiteContext(t, 10, 10)
	cr.SetAntialias(AntialiasNone)
	cr.SetFillRule(FillRuleEvenOdd)
	cr.Rectangle(1, 1, 8, 8)
	cr.Rectangle(3, 3, 4, 4)
	cr.Fill()
	checkPixels(t, s, func(x, y int) color.RGBA {
		if inRect(x, y, 1, 1, 9, 9) && !inRect(x, y, 3, 3, 7, 7) {
			return black
		}
		return white
	})
}

func TestStroke(t *testing.T) {
	t.Run("solid", func(t *testing.T) {
		cr, s := newWhiteContext(t, 10, 10)
		cr.SetAntialias(AntialiasNone)
		cr.MoveTo(2, 5)
		cr.LineTo(8, 5)
		cr.Stroke()
		if cr.HasCurrentPoint() {
			t.Error("Stroke() kept the path")
		}
		checkPixels(t, s, func(x, y int) color.RGBA {
			if inRect(x, y, 2, 4, 8, 6) {
				return black
			}
			return white
		})
	})
	t.Run("dashed", func(t *testing.T) {
		cr, s := newWhiteContext(t, 10, 10)
		cr.SetAntialias(AntialiasNone)
		cr.SetDash([]float64{2, 2}, 0)
		cr.MoveTo(0, 5)
		cr.LineTo(10, 5)
		cr.Stroke()
		checkPixels(t, s, func(x, y int) color.RGBA {
			if y >= 4 && y < 6 && x%4 < 2 {
				return black
			}
			return white
		})
	})
	t.Run("zero width", func(t *testing.T) {
		cr, s := newWhiteContext(t, 10, 10)
		cr.SetLineWidth(0)
		cr.MoveTo(0, 5)
		cr.LineTo(10, 5)
		cr.Stroke()
		checkPixels(t, s, func(int, int) color.RGBA { return white })
	})
}

func TestHitTesting(t *testing.T) {
	cr, _ := newTestContext(t, 40, 40)
	cr.Rectangle(10, 10, 20, 20)

	tests := []struct {
		x, y             float64
		inFill, inStroke bool
	}{
		{15, 15, true, false},
		{5, 5, false, false},
		{10.5, 20, true, true},
		{9.5, 20, false, true},
		{31.5, 20, false, false},
	}
	for _, tt := range tests {
		if got := cr.InFill(tt.x, tt.y); got != tt.inFill {
			t.Errorf("InFill(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.inFill)
		}
		if got := cr.InStroke(tt.x, tt.y); got != tt.inStroke {
			t.Errorf("InStroke(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.inStroke)
		}
	}
}

func TestExtents(t *testing.T) {
	const eps = 1e-3
	check := func(t *testing.T, name string, got, want [4]float64) {
		t.Helper()
		for i := range got {
			if math.Abs(got[i]-want[i]) > eps {
				t.Errorf("%s = %v, want %v", name, got, want)
				return
			}
		}
	}

	cr, _ := newTestContext(t, 40, 40)
	cr.Rectangle(10, 10, 20, 20)
	var got [4]float64
	got[0], got[1], got[2], got[3] = cr.FillExtents()
	check(t, "FillExtents()", got, [4]float64{10, 10, 30, 30})
	got[0], got[1], got[2], got[3] = cr.StrokeExtents()
	check(t, "StrokeExtents()", got, [4]float64{9, 9, 31, 31})
	got[0], got[1], got[2], got[3] = cr.PathExtents()
	check(t, "PathExtents()", got, [4]float64{10, 10, 30, 30})

	cr.NewPath()
	cr.Scale(2, 2)
	cr.Rectangle(1, 1, 4, 4)
	got[0], got[1], got[2], got[3] = cr.FillExtents()
	check(t, "FillExtents() scaled", got, [4]float64{1, 1, 5, 5})
	got[0], got[1], got[2], got[3] = cr.ClipExtents()
	check(t, "ClipExtents() scaled", got, [4]float64{0, 0, 20, 20})
}

func TestClipExtentsAndInClip(t *testing.T) {
	cr, _ := newTestContext(t, 20, 20)
	var got [4]float64
	got[0], got[1], got[2], got[3] = cr.ClipExtents()
	if got != [4]float64{0, 0, 20, 20} {
		t.Errorf("ClipExtents() unclipped = %v, want [0 0 20 20]", got)
	}
	cr.Rectangle(2, 3, 4, 5)
	cr.Clip()
	got[0], got[1], got[2], got[3] = cr.ClipExtents()
	if got != [4]float64{2, 3, 6, 8} {
		t.Errorf("ClipExtents() = %v, want [2 3 6 8]", got)
	}
	if !cr.InClip(3, 4) || cr.InClip(1, 1) {
		t.Error("InClip() disagrees with the clip rectangle")
	}
	cr.ResetClip()
	if !cr.InClip(1, 1) {
		t.Error("InClip(1, 1) = false after ResetClip")
	}
}

func TestClipMonotonic(t *testing.T) {
	cr, _ := newTestContext(t, 30, 30)
	cr.Arc(15, 15, 10, 0, 2*math.Pi)
	cr.Clip()
	inside := func() (n int) {
		for y := 0.5; y < 30; y++ {
			for x := 0.5; x < 30; x++ {
				if cr.InClip(x, y) {
					n++
				}
			}
		}
		return n
	}
	before := inside()
	for y := 0.5; y < 30; y++ {
		for x := 0.5; x < 30; x++ {
			cr.Save()
			was := cr.InClip(x, y)
			cr.Rectangle(5, 5, 12, 20)
			cr.Clip()
			if cr.InClip(x, y) && !was {
				t.Fatalf("InClip(%v, %v) became true after intersecting", x, y)
			}
			cr.Restore()
		}
	}
	cr.Rectangle(0, 0, 30, 30)
	cr.Clip()
	if after := inside(); after != before {
		t.Errorf("covering intersection changed the clip area from %d to %d", before, after)
	}
}

func TestCopyClipRectangleList(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(cr *Context)
		want    []Rectangle
		wantErr error
	}{
		{"unclipped", func(*Context) {}, []Rectangle{{0, 0, 10, 10}}, nil},
		{"rectangle", func(cr *Context) {
			cr.Rectangle(1, 2, 3, 4)
			cr.Clip()
		}, []Rectangle{{1, 2, 3, 4}}, nil},
		{"scaled", func(cr *Context) {
			cr.Scale(2, 2)
			cr.Rectangle(1, 1, 2, 2)
			cr.Clip()
		}, []Rectangle{{1, 1, 2, 2}}, nil},
		{"empty", func(cr *Context) {
			cr.Rectangle(1, 1, 2, 2)
			cr.Clip()
			cr.Rectangle(5, 5, 2, 2)
			cr.Clip()
		}, []Rectangle{}, nil},
		{"path", func(cr *Context) {
			cr.Arc(5, 5, 3, 0, 2*math.Pi)
			cr.Clip()
		}, nil, StatusClipNotRepresentable},
		{"rotated", func(cr *Context) {
			cr.Rectangle(2, 2, 4, 4)
			cr.Clip()
			cr.Rotate(math.Pi / 6)
		}, nil, StatusClipNotRepresentable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr, _ := newTestContext(t, 10, 10)
			tt.setup(cr)
			got, err := cr.CopyClipRectangleList()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CopyClipRectangleList() error = %v, want %v", err, tt.wantErr)
			}
			if st := cr.Status(); st != StatusSuccess {
				t.Errorf("Status() = %v, want success", st)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("CopyClipRectangleList() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("rectangle %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDeviceOffset(t *testing.T) {
	s := NewImageSurface(FormatARGB32, 10, 10)
	defer s.Destroy()
	s.SetDeviceOffset(5, 5)
	cr := NewContext(s)
	defer cr.Destroy()
	cr.Rectangle(0, 0, 2, 2)
	cr.Fill()
	checkPixels(t, s, func(x, y int) color.RGBA {
		if inRect(x, y, 5, 5, 7, 7) {
			return black
		}
		return transparent
	})
	if x, y := cr.UserToDevice(1, 1); x != 1 || y != 1 {
		t.Errorf("UserToDevice(1, 1) = (%v, %v), want (1, 1)", x, y)
	}
}

func TestWritePNG(t *testing.T) {
	cr, s := newWhiteContext(t, 4, 4)
	cr.Rectangle(0, 0, 2, 2)
	cr.Fill()
	var buf bytes.Buffer
	if err := s.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG() = %v", err)
	}
	img, _, err := image.Decode(&buf)
	if err != nil {
		t.Fatalf("image.Decode() = %v", err)
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); got != black {
		t.Errorf("decoded pixel (0, 0) = %v, want %v", got, black)
	}
	if got := color.RGBAModel.Convert(img.At(3, 3)).(color.RGBA); got != white {
		t.Errorf("decoded pixel (3, 3) = %v, want %v", got, white)
	}
}

func TestFarCoordinates(t *testing.T) {
	tests := []struct {
		name   string
		draw   func(cr *Context)
		inside [2]int
		out    [2]int
	}{
		{"stroke", func(cr *Context) {
			cr.SetLineWidth(10)
			cr.MoveTo(-1e7, 10)
			cr.LineTo(1e7, 10)
			cr.Stroke()
		}, [2]int{10, 10}, [2]int{10, 25}},
		{"triangle", func(cr *Context) {
			cr.MoveTo(-1e7, 20)
			cr.LineTo(1e7, 20)
			cr.LineTo(0, -1e7)
			cr.Fill()
		}, [2]int{10, 10}, [2]int{10, 25}},
		{"even-odd triangle", func(cr *Context) {
			cr.SetFillRule(FillRuleEvenOdd)
			cr.MoveTo(-1e7, 20)
			cr.LineTo(1e7, 20)
			cr.LineTo(0, -1e7)
			cr.Fill()
		}, [2]int{10, 10}, [2]int{10, 25}},
		{"huge rectangle", func(cr *Context) {
			cr.Rectangle(-1e12, -1e12, 2e12, 2e12)
			cr.Fill()
		}, [2]int{10, 10}, [2]int{-1, -1}},
		{"clamped band", func(cr *Context) {
			cr.Rectangle(-1e12, 5, 2e12, 10)
			cr.Fill()
		}, [2]int{10, 10}, [2]int{10, 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr, s := newWhiteContext(t, 32, 32)
			tt.draw(cr)
			if st := cr.Status(); st != StatusSuccess {
				t.Fatalf("Status() = %v", st)
			}
			if got := pixelAt(t, s, tt.inside[0], tt.inside[1]); got != black {
				t.Errorf("pixel %v = %v, want %v", tt.inside, got, black)
			}
			if tt.out[0] >= 0 {
				if got := pixelAt(t, s, tt.out[0], tt.out[1]); got != white {
					t.Errorf("pixel %v = %v, want %v", tt.out, got, white)
				}
			}
		})
	}
}

func TestHugeRectangleExtents(t *testing.T) {
	cr, _ := newTestContext(t, 8, 8)
	cr.Rectangle(-1e12, -1e12, 2e12, 2e12)
	x1, y1, x2, y2 := cr.PathExtents()
	for _, v := range []float64{x1, y1} {
		if v > -1e6 {
			t.Errorf("PathExtents() min = %v, want below -1e6", v)
		}
	}
	for _, v := range []float64{x2, y2} {
		if v < 1e6 {
			t.Errorf("PathExtents() max = %v, want above 1e6", v)
		}
	}
	if !cr.InFill(4, 4) {
		t.Error("InFill(4, 4) = false inside the clamped rectangle")
	}
}
