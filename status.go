// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"errors"
	"io"
	"io/fs"

	"github.com/gogpu/vg/font"
	"github.com/gogpu/vg/internal/array"
	"github.com/gogpu/vg/internal/clip"
	"github.com/gogpu/vg/internal/path"
)

// Status is the outcome of an operation. StatusSuccess is the only
// non-error value. New kinds are only ever appended; callers must treat
// values they do not know as a generic failure.
type Status int

// Status values.
const (
	StatusSuccess Status = iota
	StatusNoMemory
	StatusInvalidRestore
	StatusInvalidPopGroup
	StatusNoCurrentPoint
	StatusInvalidMatrix
	StatusInvalidStatus
	StatusNullPointer
	StatusInvalidString
	StatusInvalidPathData
	StatusReadError
	StatusWriteError
	StatusSurfaceFinished
	StatusSurfaceTypeMismatch
	StatusPatternTypeMismatch
	StatusInvalidContent
	StatusInvalidFormat
	StatusInvalidVisual
	StatusFileNotFound
	StatusInvalidDash
	StatusInvalidDSCComment
	StatusInvalidIndex
	StatusClipNotRepresentable
	StatusTempFileError
	StatusInvalidStride
	StatusFontTypeMismatch
	StatusUserFontImmutable
	StatusUserFontError
	StatusNegativeCount
	StatusInvalidClusters
	StatusInvalidSlant
	StatusInvalidWeight
	StatusInvalidSize
	StatusUserFontNotImplemented
	StatusDeviceTypeMismatch
	StatusDeviceError
	StatusInvalidMeshConstruction
	StatusDeviceFinished
	StatusPNGError
	StatusFontEngineError
	StatusTagError
	StatusNotSupported

	statusLast
)

// Control codes passed between internal layers. They never reach a
// caller: public entry points resolve them with public().
const (
	intStatusUnsupported Status = 100 + iota
	intStatusNothingToDo
	intStatusDegenerate
	intStatusAnalyzeRecordingSurfacePattern
)

var statusMessages = [...]string{
	StatusSuccess:                 "no error has occurred",
	StatusNoMemory:                "out of memory",
	StatusInvalidRestore:          "Restore without matching Save",
	StatusInvalidPopGroup:         "PopGroup without matching PushGroup",
	StatusNoCurrentPoint:          "no current point",
	StatusInvalidMatrix:           "invalid matrix (not invertible)",
	StatusInvalidStatus:           "invalid value for an input Status",
	StatusNullPointer:             "nil pointer",
	StatusInvalidString:           "input string not valid UTF-8",
	StatusInvalidPathData:         "input path data not valid",
	StatusReadError:               "error while reading from input stream",
	StatusWriteError:              "error while writing to output stream",
	StatusSurfaceFinished:         "the target surface has been finished",
	StatusSurfaceTypeMismatch:     "the surface type is not appropriate for the operation",
	StatusPatternTypeMismatch:     "the pattern type is not appropriate for the operation",
	StatusInvalidContent:          "invalid value for an input Content",
	StatusInvalidFormat:           "invalid value for an input Format",
	StatusInvalidVisual:           "invalid value for an input visual",
	StatusFileNotFound:            "file not found",
	StatusInvalidDash:             "invalid value for a dash setting",
	StatusInvalidDSCComment:       "invalid value for a DSC comment",
	StatusInvalidIndex:            "invalid index passed to getter",
	StatusClipNotRepresentable:    "clip region not representable in desired format",
	StatusTempFileError:           "error creating or writing to a temporary file",
	StatusInvalidStride:           "invalid value for stride",
	StatusFontTypeMismatch:        "the font type is not appropriate for the operation",
	StatusUserFontImmutable:       "the user-font is immutable",
	StatusUserFontError:           "error occurred in a user-font callback function",
	StatusNegativeCount:           "negative number used where it is not allowed",
	StatusInvalidClusters:         "input clusters do not represent the accompanying text and glyph arrays",
	StatusInvalidSlant:            "invalid value for an input FontSlant",
	StatusInvalidWeight:           "invalid value for an input FontWeight",
	StatusInvalidSize:             "invalid value (typically too big) for the size of the input (surface, pattern, etc.)",
	StatusUserFontNotImplemented:  "user-font method not implemented",
	StatusDeviceTypeMismatch:      "the device type is not appropriate for the operation",
	StatusDeviceError:             "an operation to the device caused an unspecified error",
	StatusInvalidMeshConstruction: "invalid operation during mesh pattern construction",
	StatusDeviceFinished:          "the target device has been finished",
	StatusPNGError:                "error occurred in the PNG encoder",
	StatusFontEngineError:         "error occurred in the font engine",
	StatusTagError:                "invalid tag name, attributes, or nesting",
	StatusNotSupported:            "operation not supported by the backend",
}

// String returns a human-readable description of s.
func (s Status) String() string {
	if s >= 0 && s < statusLast {
		return statusMessages[s]
	}
	return "unknown status"
}

// Error implements the error interface.
func (s Status) Error() string {
	return "vg: " + s.String()
}

// isError reports whether s is a public error. Internal control codes
// are not errors.
func (s Status) isError() bool {
	return s != StatusSuccess && s < intStatusUnsupported
}

// public resolves internal control codes into the public enumeration.
func (s Status) public() Status {
	switch s {
	case intStatusUnsupported:
		return StatusNotSupported
	case intStatusNothingToDo, intStatusDegenerate, intStatusAnalyzeRecordingSurfacePattern:
		return StatusSuccess
	}
	return s
}

// err returns s as an error, or nil for StatusSuccess and control codes.
func (s Status) err() error {
	if !s.isError() {
		return nil
	}
	return s
}

// StatusOf maps err onto the Status enumeration. A nil error is
// StatusSuccess. Errors that are or wrap a Status map to that value;
// errors from the array, path, clip and font packages and from I/O map to
// the matching kind. Any other error is StatusDeviceError.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var s Status
	if errors.As(err, &s) {
		return s.public()
	}
	var pe *font.ParseError
	switch {
	case errors.Is(err, array.ErrNoMemory):
		return StatusNoMemory
	case errors.Is(err, path.ErrNoCurrentPoint):
		return StatusNoCurrentPoint
	case errors.Is(err, clip.ErrNotRepresentable):
		return StatusClipNotRepresentable
	case errors.Is(err, fs.ErrNotExist):
		return StatusFileNotFound
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return StatusReadError
	case errors.Is(err, io.ErrShortWrite), errors.Is(err, io.ErrClosedPipe):
		return StatusWriteError
	case errors.As(err, &pe), errors.Is(err, font.ErrNotFound):
		return StatusFontEngineError
	}
	return StatusDeviceError
}
