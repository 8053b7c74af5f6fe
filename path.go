// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/vg/internal/path"
)

// PathDataType is the kind of a path record.
type PathDataType int

// Path record kinds.
const (
	PathMoveTo PathDataType = iota
	PathLineTo
	PathCurveTo
	PathClosePath
)

// points returns the number of point records that follow a header.
func (t PathDataType) points() int {
	switch t {
	case PathMoveTo, PathLineTo:
		return 1
	case PathCurveTo:
		return 3
	}
	return 0
}

// PathData is one record of a Path: either a header, using Type and
// Length, or a point, using X and Y. A header is followed by Length-1
// point records.
type PathData struct {
	Type   PathDataType
	Length int
	X, Y   float64
}

// Path is a copy of a path in user space.
//
// Example:
//
//	p := cr.CopyPath()
//	for i := 0; i < len(p.Data); i += p.Data[i].Length {
//		h := p.Data[i]
//		switch h.Type {
//		case vg.PathMoveTo:
//			x, y := p.Data[i+1].X, p.Data[i+1].Y
//			// ...
//		}
//	}
type Path struct {
	Status Status
	Data   []PathData
}

// validate checks every header of p before anything reads its points.
func (p *Path) validate() Status {
	if p.Status.isError() {
		return p.Status
	}
	for i := 0; i < len(p.Data); {
		h := p.Data[i]
		if h.Type < PathMoveTo || h.Type > PathClosePath {
			return StatusInvalidPathData
		}
		if h.Length != 1+h.Type.points() || i+h.Length > len(p.Data) {
			return StatusInvalidPathData
		}
		i += h.Length
	}
	return StatusSuccess
}

// pathExporter turns a device path into records in user space.
type pathExporter struct {
	data []PathData
	m    Matrix
}

func (e *pathExporter) header(t PathDataType) {
	e.data = append(e.data, PathData{Type: t, Length: 1 + t.points()})
}

func (e *pathExporter) point(pt fixed.Point26_6) {
	p := path.PointToFloat(pt)
	x, y := e.m.TransformPoint(p.X, p.Y)
	e.data = append(e.data, PathData{X: x, Y: y})
}

func (e *pathExporter) MoveTo(pt fixed.Point26_6) error {
	e.header(PathMoveTo)
	e.point(pt)
	return nil
}

func (e *pathExporter) LineTo(pt fixed.Point26_6) error {
	e.header(PathLineTo)
	e.point(pt)
	return nil
}

func (e *pathExporter) CurveTo(p1, p2, p3 fixed.Point26_6) error {
	e.header(PathCurveTo)
	e.point(p1)
	e.point(p2)
	e.point(p3)
	return nil
}

func (e *pathExporter) ClosePath() error {
	e.header(PathClosePath)
	return nil
}

// exportPath copies p into user space through deviceToUser. Curves are
// flattened to lines when tolerance is positive.
func exportPath(p *path.Path, deviceToUser Matrix, tolerance float64) *Path {
	e := &pathExporter{m: deviceToUser}
	var err error
	if tolerance > 0 {
		err = p.InterpretFlat(e, tolerance)
	} else {
		err = p.Interpret(e)
	}
	if err != nil {
		return &Path{Status: StatusOf(err)}
	}
	return &Path{Data: e.data}
}

func pathInError(st Status) *Path {
	return &Path{Status: st}
}
