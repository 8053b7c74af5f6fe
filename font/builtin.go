// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package font

import (
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Slant selects an upright or slanted face.
type Slant int

const (
	// SlantNormal is upright.
	SlantNormal Slant = iota
	// SlantItalic is italic.
	SlantItalic
	// SlantOblique is oblique; the built-in faces use italic for it.
	SlantOblique
)

// Weight selects the stroke weight of a face.
type Weight int

const (
	// WeightNormal is the regular weight.
	WeightNormal Weight = iota
	// WeightBold is bold.
	WeightBold
)

// DefaultFamily is the family used for an empty family name.
const DefaultFamily = "sans-serif"

type builtinKey struct {
	mono   bool
	italic bool
	bold   bool
}

var builtinData = map[builtinKey][]byte{
	{false, false, false}: goregular.TTF,
	{false, false, true}:  gobold.TTF,
	{false, true, false}:  goitalic.TTF,
	{false, true, true}:   gobolditalic.TTF,
	{true, false, false}:  gomono.TTF,
	{true, false, true}:   gomonobold.TTF,
	{true, true, false}:   gomonoitalic.TTF,
	{true, true, true}:    gomonobolditalic.TTF,
}

var monoFamilies = []string{"mono", "courier", "fixed", "console"}

// builtins pins the toy faces that were handed out so that they survive
// their users' Destroy calls until Shutdown.
var builtins struct {
	mu    sync.Mutex
	faces map[builtinKey]*Face
}

func resetBuiltins() {
	builtins.mu.Lock()
	builtins.faces = nil
	builtins.mu.Unlock()
}

// Builtin returns the built-in face closest to family, slant and weight.
// Family names containing "mono", "courier", "fixed" or "console" map to
// Go Mono; every other family maps to Go. The caller owns a reference.
func Builtin(family string, slant Slant, weight Weight) (*Face, error) {
	lf := strings.ToLower(family)
	k := builtinKey{italic: slant != SlantNormal, bold: weight == WeightBold}
	for _, m := range monoFamilies {
		if strings.Contains(lf, m) {
			k.mono = true
			break
		}
	}

	builtins.mu.Lock()
	f, ok := builtins.faces[k]
	builtins.mu.Unlock()
	if ok {
		return f.Reference(), nil
	}

	f, err := Load(builtinName(k), builtinData[k])
	if err != nil {
		return nil, err
	}
	faces.mu.Lock()
	f.builtin = true
	faces.mu.Unlock()

	builtins.mu.Lock()
	if builtins.faces == nil {
		builtins.faces = make(map[builtinKey]*Face)
	}
	builtins.faces[k] = f
	builtins.mu.Unlock()
	return f, nil
}

func builtinName(k builtinKey) string {
	var b strings.Builder
	b.WriteString("builtin:go")
	if k.mono {
		b.WriteString("-mono")
	}
	if k.bold {
		b.WriteString("-bold")
	}
	if k.italic {
		b.WriteString("-italic")
	}
	return b.String()
}
