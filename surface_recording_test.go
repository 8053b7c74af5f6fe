// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import "testing"

func TestRecordingKeepsSources(t *testing.T) {
	tests := []struct {
		name string
		// draw paints red onto cr and returns a func that changes the
		// source afterwards.
		draw func(cr *Context) func()
	}{
		{"gradient stops", func(cr *Context) func() {
			g := NewLinearGradient(0, 0, 8, 0)
			g.AddColorStopRGB(0, 1, 0, 0)
			g.AddColorStopRGB(1, 1, 0, 0)
			cr.SetSource(g)
			cr.Paint()
			return func() {
				g.AddColorStopRGB(0.5, 0, 0, 1)
				g.SetExtend(ExtendRepeat)
				g.SetMatrix(Translate(3, 0))
				g.Destroy()
			}
		}},
		{"image source", func(cr *Context) func() {
			src := NewImageSurface(FormatARGB32, 8, 8)
			sc := NewContext(src)
			sc.SetSourceRGB(1, 0, 0)
			sc.Paint()
			cr.SetSourceSurface(src, 0, 0)
			cr.Paint()
			return func() {
				sc.SetSourceRGB(0, 1, 0)
				sc.Paint()
				sc.Destroy()
				src.Destroy()
			}
		}},
		{"recording source", func(cr *Context) func() {
			src := NewRecordingSurface(ContentColorAlpha, nil)
			sc := NewContext(src)
			sc.SetSourceRGB(1, 0, 0)
			sc.Rectangle(0, 0, 8, 8)
			sc.Fill()
			cr.SetSourceSurface(src, 0, 0)
			cr.Paint()
			return func() {
				sc.SetSourceRGB(0, 1, 0)
				sc.Paint()
				sc.Destroy()
				src.Destroy()
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecordingSurface(ContentColorAlpha, nil)
			defer rec.Destroy()
			cr := NewContext(rec)
			change := tt.draw(cr)
			if st := cr.Status(); st != StatusSuccess {
				t.Fatalf("Status() = %v", st)
			}
			cr.Destroy()
			change()

			_, dst := newWhiteContext(t, 8, 8)
			if err := rec.Replay(dst); err != nil {
				t.Fatalf("Replay() = %v", err)
			}
			for _, x := range []int{1, 4, 6} {
				if got := pixelAt(t, dst, x, 4); got != red {
					t.Errorf("pixel (%d, 4) = %v, want %v", x, got, red)
				}
			}
		})
	}
}

func TestRecordingSnapshotSharesCommands(t *testing.T) {
	src := NewRecordingSurface(ContentColorAlpha, nil)
	defer src.Destroy()
	sc := NewContext(src)
	sc.SetSourceRGB(1, 0, 0)
	sc.Paint()
	sc.Destroy()

	snap := src.snapshot()
	defer snap.Destroy()
	if snap == src {
		t.Fatal("snapshot() returned the recording itself")
	}
	if n := snap.RecordedCommands(); n != 1 {
		t.Errorf("RecordedCommands() = %d, want 1", n)
	}
	solid := src.backend.(*recordingSurface).commands[0].src.pattern
	if n := solid.ReferenceCount(); n != 2 {
		t.Errorf("shared pattern ReferenceCount() = %d, want 2", n)
	}
}
