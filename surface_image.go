// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/gogpu/vg/internal/clip"
)

// maxImageSize is the largest width or height of an image surface.
const maxImageSize = 32767

// ImageOption configures NewImageSurface.
type ImageOption func(*imageOptions)

type imageOptions struct {
	img image.Image
}

// WithImage makes the surface draw into img instead of allocating its
// own pixels. img must be an *image.RGBA for FormatARGB32 and FormatRGB24
// or an *image.Alpha for FormatA8, with the requested size. Pixel data of
// an *image.RGBA is premultiplied, as the image package defines it.
//
// Example:
//
//	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
//	s := vg.NewImageSurface(vg.FormatARGB32, 640, 480, vg.WithImage(img))
func WithImage(img image.Image) ImageOption {
	return func(o *imageOptions) {
		o.img = img
	}
}

// imageSurface rasterizes into memory.
type imageSurface struct {
	owner  *Surface
	format Format
	rect   image.Rectangle
	rgba   *image.RGBA
	alpha  *image.Alpha

	// clipper caches the last clip mask.
	clipper clip.Clipper
}

// NewImageSurface returns an image surface of the given format and size.
// The pixels start transparent; RGB24 surfaces start black.
func NewImageSurface(format Format, width, height int, opts ...ImageOption) *Surface {
	if !format.valid() {
		return newSurfaceInError(StatusInvalidFormat)
	}
	if width < 0 || height < 0 || width > maxImageSize || height > maxImageSize {
		return newSurfaceInError(StatusInvalidSize)
	}
	var o imageOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := image.Rect(0, 0, width, height)
	is := &imageSurface{format: format, rect: r}
	is.clipper.Limit = r
	wrapped := o.img != nil
	switch {
	case format == FormatA8 && wrapped:
		a, ok := o.img.(*image.Alpha)
		if !ok {
			return newSurfaceInError(StatusInvalidFormat)
		}
		if a.Rect.Dx() != width || a.Rect.Dy() != height {
			return newSurfaceInError(StatusInvalidSize)
		}
		is.alpha = &image.Alpha{Pix: a.Pix, Stride: a.Stride, Rect: r}
	case format == FormatA8:
		is.alpha = image.NewAlpha(r)
	case wrapped:
		m, ok := o.img.(*image.RGBA)
		if !ok {
			return newSurfaceInError(StatusInvalidFormat)
		}
		if m.Rect.Dx() != width || m.Rect.Dy() != height {
			return newSurfaceInError(StatusInvalidSize)
		}
		is.rgba = &image.RGBA{Pix: m.Pix, Stride: m.Stride, Rect: r}
	default:
		is.rgba = image.NewRGBA(r)
	}
	if format == FormatRGB24 {
		for y := range height {
			forceOpaque(is.rgba.Pix[is.rgba.PixOffset(0, y):][:width*4])
		}
	}

	s := newSurface(is)
	s.isClear = !wrapped && format != FormatRGB24
	is.owner = s
	return s
}

// newImageSurfaceRect returns a surface whose pixels cover r in its own
// pixel space. It is used for scratch targets that keep the coordinates
// of the surface they stand in for.
func newImageSurfaceRect(format Format, r image.Rectangle) *Surface {
	is := &imageSurface{format: format, rect: r}
	is.clipper.Limit = r
	if format == FormatA8 {
		is.alpha = image.NewAlpha(r)
	} else {
		is.rgba = image.NewRGBA(r)
	}
	if format == FormatRGB24 {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			forceOpaque(is.rgba.Pix[is.rgba.PixOffset(r.Min.X, y):][:r.Dx()*4])
		}
	}
	s := newSurface(is)
	s.isClear = format != FormatRGB24
	is.owner = s
	return s
}

func (s *Surface) image() (*imageSurface, bool) {
	is, ok := s.backend.(*imageSurface)
	return is, ok
}

// Image returns the pixels of an image surface: an *image.RGBA for
// ARGB32 and RGB24, an *image.Alpha for A8. It returns nil for other
// surface types. Call Flush before reading and MarkDirty after writing.
func (s *Surface) Image() image.Image {
	is, ok := s.image()
	if !ok {
		return nil
	}
	if is.alpha != nil {
		return is.alpha
	}
	return is.rgba
}

// Format returns the pixel format of an image surface, or FormatInvalid.
func (s *Surface) Format() Format {
	if is, ok := s.image(); ok {
		return is.format
	}
	return FormatInvalid
}

// Width returns the width of an image surface in pixels.
func (s *Surface) Width() int {
	if is, ok := s.image(); ok {
		return is.rect.Dx()
	}
	return 0
}

// Height returns the height of an image surface in pixels.
func (s *Surface) Height() int {
	if is, ok := s.image(); ok {
		return is.rect.Dy()
	}
	return 0
}

// WritePNG encodes the contents of a bounded surface as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	if s.status.isError() {
		return s.status
	}
	if s.finished {
		return StatusSurfaceFinished
	}
	r, ok := s.Extents()
	if !ok || r.Empty() {
		return StatusInvalidSize
	}
	var img image.Image
	if is, isImage := s.image(); isImage && is.alpha != nil {
		img = is.alpha
	} else {
		m, release, st := s.acquireSourceImage(r)
		if st.isError() {
			return st
		}
		defer release()
		img = m
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: %w", StatusWriteError, err)
	}
	return nil
}

func (is *imageSurface) kind() SurfaceType { return SurfaceTypeImage }

func (is *imageSurface) content() Content { return is.format.content() }

func (is *imageSurface) extents() (image.Rectangle, bool) { return is.rect, true }

func (is *imageSurface) createSimilar(Content, int, int) *Surface { return nil }

func (is *imageSurface) acquireSourceImage(want image.Rectangle) (*image.RGBA, func(), Status) {
	if is.rgba != nil {
		return is.rgba, func() {}, StatusSuccess
	}
	r := want.Intersect(is.rect)
	m := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := is.alpha.Pix[is.alpha.PixOffset(r.Min.X, y):][:r.Dx()]
		dst := m.Pix[m.PixOffset(r.Min.X, y):][:r.Dx()*4]
		for i, a := range src {
			dst[i*4+3] = a
		}
	}
	return m, func() {}, StatusSuccess
}

// copySurface returns a new image surface holding a copy of the pixels.
func (is *imageSurface) copySurface() *Surface {
	c := newImageSurfaceRect(is.format, is.rect)
	cs, _ := c.image()
	w := is.rect.Dx()
	for y := is.rect.Min.Y; y < is.rect.Max.Y; y++ {
		if is.alpha != nil {
			copy(cs.alpha.Pix[cs.alpha.PixOffset(is.rect.Min.X, y):][:w], is.alpha.Pix[is.alpha.PixOffset(is.rect.Min.X, y):][:w])
		} else {
			copy(cs.rgba.Pix[cs.rgba.PixOffset(is.rect.Min.X, y):][:w*4], is.rgba.Pix[is.rgba.PixOffset(is.rect.Min.X, y):][:w*4])
		}
	}
	return c
}

func (is *imageSurface) tag(bool, string, string) Status { return StatusSuccess }

func (is *imageSurface) finish() Status {
	is.clipper.Reset()
	return StatusSuccess
}

func (is *imageSurface) flush() Status    { return StatusSuccess }
func (is *imageSurface) showPage() Status { return StatusSuccess }
func (is *imageSurface) copyPage() Status { return StatusSuccess }

// forceOpaque sets the alpha of every pixel of an RGBA row to 0xff.
func forceOpaque(row []byte) {
	for i := 3; i < len(row); i += 4 {
		row[i] = 0xff
	}
}
