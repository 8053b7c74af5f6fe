// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command vgdemo draws a demonstration scene with the vg library and
// writes it as PNG. With -record the scene is drawn into a recording
// surface first and replayed onto the image.
package main

import (
	"flag"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/vg"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "demo.png", "output file")
		record  = flag.Bool("record", false, "draw through a recording surface")
		verbose = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		vg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	img := vg.NewImageSurface(vg.FormatARGB32, *width, *height)
	defer img.Destroy()

	target := img
	if *record {
		target = vg.NewRecordingSurface(vg.ContentColorAlpha, nil)
		defer target.Destroy()
	}

	cr := vg.NewContext(target)
	drawBackground(cr, *height)
	drawShapes(cr)
	drawTransforms(cr)
	drawGroup(cr)
	drawClipped(cr)
	drawText(cr)
	if err := cr.Err(); err != nil {
		log.Fatalf("Drawing failed: %v", err)
	}
	cr.Destroy()

	if *record {
		log.Printf("Recorded %d operations", target.RecordedCommands())
		if err := target.Replay(img); err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := img.WritePNG(f); err != nil {
		f.Close()
		log.Fatalf("Failed to save: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)", *output, *width, *height)
}

func drawBackground(cr *vg.Context, h int) {
	g := vg.NewLinearGradient(0, 0, 0, float64(h))
	g.AddColorStopRGB(0, 0.1, 0.2, 0.4)
	g.AddColorStopRGB(1, 0.5, 0.5, 0.6)
	cr.SetSource(g)
	g.Destroy()
	cr.Paint()
}

func drawShapes(cr *vg.Context) {
	circles := []struct{ x, y, r, g, b float64 }{
		{150, 150, 1, 0.3, 0.3},
		{200, 150, 0.3, 1, 0.3},
		{175, 200, 0.3, 0.3, 1},
	}
	for _, c := range circles {
		cr.SetSourceRGBA(c.r, c.g, c.b, 0.8)
		cr.Arc(c.x, c.y, 60, 0, 2*math.Pi)
		cr.Fill()
	}

	cr.SetSourceRGB(1, 0.8, 0)
	cr.Rectangle(350, 100, 120, 80)
	cr.FillPreserve()
	cr.SetSourceRGB(1, 1, 1)
	cr.SetLineWidth(4)
	cr.SetLineJoin(vg.LineJoinRound)
	cr.Stroke()
}

func drawTransforms(cr *vg.Context) {
	cr.Save()
	defer cr.Restore()
	cr.Translate(600, 150)
	for i := range 8 {
		cr.Save()
		cr.Rotate(float64(i) * math.Pi / 8)
		cr.SetSourceRGBA(1, 1, 1, 0.15+float64(i)*0.1)
		cr.Rectangle(-40, -40, 80, 80)
		cr.SetLineWidth(2)
		cr.Stroke()
		cr.Restore()
	}
}

// drawGroup composites two overlapping shapes at half opacity as one
// layer.
func drawGroup(cr *vg.Context) {
	cr.PushGroup()
	cr.SetSourceRGB(0.9, 0.2, 0.5)
	cr.Arc(150, 420, 70, 0, 2*math.Pi)
	cr.Fill()
	cr.SetSourceRGB(0.2, 0.5, 0.9)
	cr.Rectangle(150, 380, 130, 90)
	cr.Fill()
	cr.PopGroupToSource()
	cr.PaintWithAlpha(0.5)
}

func drawClipped(cr *vg.Context) {
	cr.Save()
	defer cr.Restore()
	cr.Arc(450, 420, 80, 0, 2*math.Pi)
	cr.Clip()
	cr.SetSourceRGB(1, 1, 1)
	cr.SetLineWidth(6)
	cr.SetDash([]float64{12, 6}, 0)
	for y := 330.0; y < 520; y += 20 {
		cr.MoveTo(360, y)
		cr.LineTo(540, y+40)
	}
	cr.Stroke()
}

func drawText(cr *vg.Context) {
	cr.SelectFontFace("sans-serif", vg.FontSlantNormal, vg.FontWeightBold)
	cr.SetFontSize(36)
	cr.SetSourceRGB(1, 1, 1)
	cr.MoveTo(580, 430)
	cr.TagBegin(vg.TagLink, "uri='https://github.com/gogpu'")
	cr.ShowText("vg")
	cr.TagEnd(vg.TagLink)

	cr.SetFontSize(18)
	cr.MoveTo(580, 470)
	cr.TextPath("outlined")
	cr.SetLineWidth(1)
	cr.Stroke()
}
