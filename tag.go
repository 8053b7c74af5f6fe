// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/gogpu/vg/internal/array"
)

// Well-known tag names.
const (
	// TagLink marks a hyperlink. It needs a uri, dest or page attribute.
	TagLink = "Link"
	// TagDest marks a link destination. It needs a name attribute.
	TagDest = "vg.dest"
)

// TagAttribute is one key=value pair of a tag attribute string. Value is
// a bool, a float64, a string or a []any of those.
type TagAttribute struct {
	Key   string
	Value any
}

var errTagSyntax = errors.New("vg: malformed tag attributes")

// tagNames interns tag names so the nesting stack of every context holds
// one copy of each.
var tagNames struct {
	mu    sync.Mutex
	names map[string]string
}

func internTag(name string) string {
	tagNames.mu.Lock()
	defer tagNames.mu.Unlock()
	if s, ok := tagNames.names[name]; ok {
		return s
	}
	if tagNames.names == nil {
		tagNames.names = make(map[string]string)
	}
	s := strings.Clone(name)
	tagNames.names[s] = s
	return s
}

// ParseTagAttributes parses a tag attribute string such as
//
//	uri='https://go.dev' rect=[0 0 10 10] internal=false
//
// Strings are single-quoted with backslash escapes. Arrays hold
// space-separated values.
func ParseTagAttributes(s string) ([]TagAttribute, error) {
	p := attrParser{s: s}
	var attrs []TagAttribute
	for {
		p.skipSpace()
		if p.eof() {
			return attrs, nil
		}
		key := p.key()
		if key == "" {
			return nil, p.errorf("expected key")
		}
		p.skipSpace()
		if !p.consume('=') {
			return nil, p.errorf("expected '=' after %q", key)
		}
		p.skipSpace()
		v, err := p.value(true)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, TagAttribute{Key: key, Value: v})
	}
}

type attrParser struct {
	s   string
	pos int
}

func (p *attrParser) eof() bool { return p.pos >= len(p.s) }

func (p *attrParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", errTagSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *attrParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.s[p.pos])) {
		p.pos++
	}
}

func (p *attrParser) consume(c byte) bool {
	if !p.eof() && p.s[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *attrParser) key() string {
	start := p.pos
	for !p.eof() {
		c := p.s[p.pos]
		if c == '_' || c == '-' || c == '.' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			p.pos++
			continue
		}
		break
	}
	return p.s[start:p.pos]
}

func (p *attrParser) value(arrays bool) (any, error) {
	if p.eof() {
		return nil, p.errorf("expected value")
	}
	switch c := p.s[p.pos]; {
	case c == '\'':
		return p.str()
	case c == '[':
		if !arrays {
			return nil, p.errorf("nested array")
		}
		p.pos++
		var vs []any
		for {
			p.skipSpace()
			if p.eof() {
				return nil, p.errorf("unterminated array")
			}
			if p.consume(']') {
				return vs, nil
			}
			v, err := p.value(false)
			if err != nil {
				return nil, err
			}
			vs = append(vs, v)
		}
	}
	start := p.pos
	for !p.eof() && !unicode.IsSpace(rune(p.s[p.pos])) && p.s[p.pos] != ']' {
		p.pos++
	}
	word := p.s[start:p.pos]
	switch word {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	f, err := strconv.ParseFloat(word, 64)
	if err != nil {
		p.pos = start
		return nil, p.errorf("invalid value %q", word)
	}
	return f, nil
}

func (p *attrParser) str() (string, error) {
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.s[p.pos]
		p.pos++
		switch c {
		case '\\':
			if p.eof() {
				return "", p.errorf("unterminated string")
			}
			b.WriteByte(p.s[p.pos])
			p.pos++
		case '\'':
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", p.errorf("unterminated string")
}

// checkTag validates the attributes of a tag opening.
func checkTag(name, attrs string) Status {
	if name == "" {
		return StatusTagError
	}
	parsed, err := ParseTagAttributes(attrs)
	if err != nil {
		Logger().Debug("vg: tag rejected", "tag", name, "err", err)
		return StatusTagError
	}
	has := func(keys ...string) bool {
		for _, a := range parsed {
			for _, k := range keys {
				if a.Key == k {
					return true
				}
			}
		}
		return false
	}
	switch name {
	case TagLink:
		if !has("uri", "dest", "page") {
			return StatusTagError
		}
	case TagDest:
		if !has("name") {
			return StatusTagError
		}
	}
	return StatusSuccess
}

// tagStack tracks open tags of one context.
type tagStack struct {
	names array.Array[string]
}

func (ts *tagStack) begin(name, attrs string) Status {
	if st := checkTag(name, attrs); st.isError() {
		return st
	}
	return StatusOf(ts.names.Append(internTag(name)))
}

func (ts *tagStack) end(name string) Status {
	n := ts.names.Len()
	if n == 0 || *ts.names.Index(n-1) != name {
		return StatusTagError
	}
	ts.names.Truncate(n - 1)
	return StatusSuccess
}

func (ts *tagStack) depth() int { return ts.names.Len() }

func (ts *tagStack) reset() { ts.names.Reset() }
