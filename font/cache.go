// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package font

import (
	"sync"

	"golang.org/x/image/font/sfnt"
)

// DefaultMaxOpenHandles is the default bound on open engine handles.
const DefaultMaxOpenHandles = 10

// Options configures the face cache.
type Options struct {
	// MaxOpenHandles bounds the number of faces whose font tables are
	// parsed at the same time. Values below 1 select the default.
	MaxOpenHandles int
}

// faceCache maps names to faces. One mutex guards the map, every face's
// reference and lock counts and the open-handle count. Font parsing
// never runs with the mutex held.
type faceCache struct {
	mu      sync.Mutex
	faces   map[string]*Face
	open    int
	maxOpen int
}

var faces = newFaceCache()

func newFaceCache() *faceCache {
	return &faceCache{
		faces:   make(map[string]*Face),
		maxOpen: DefaultMaxOpenHandles,
	}
}

// Configure applies o to the face cache. Lowering MaxOpenHandles closes
// idle handles immediately.
func Configure(o Options) {
	if o.MaxOpenHandles < 1 {
		o.MaxOpenHandles = DefaultMaxOpenHandles
	}
	faces.mu.Lock()
	faces.maxOpen = o.MaxOpenHandles
	n := faces.evictLocked()
	faces.mu.Unlock()
	logEvictions(n)
}

// Load returns the face cached under name, or parses data and caches it.
// The caller owns one reference and must call Destroy.
func Load(name string, data []byte) (*Face, error) {
	return faces.load(name, func() ([]byte, error) { return data, nil })
}

// LoadFunc is like Load but only calls read when name is not cached.
func LoadFunc(name string, read func() ([]byte, error)) (*Face, error) {
	return faces.load(name, read)
}

// OpenHandles returns the number of faces whose tables are parsed.
func OpenHandles() int {
	faces.mu.Lock()
	defer faces.mu.Unlock()
	return faces.open
}

// Cached returns the number of faces in the cache.
func Cached() int {
	faces.mu.Lock()
	defer faces.mu.Unlock()
	return len(faces.faces)
}

// Shutdown empties the face cache and closes every handle. Faces still
// referenced stay usable and reopen their handles on demand; faces
// loaded afterwards start a fresh cache.
func Shutdown() {
	faces.mu.Lock()
	for _, f := range faces.faces {
		f.eng = nil
	}
	faces.faces = make(map[string]*Face)
	faces.open = 0
	faces.mu.Unlock()
	resetBuiltins()
	Logger().Debug("font: face cache shut down")
}

func (c *faceCache) load(name string, read func() ([]byte, error)) (*Face, error) {
	c.mu.Lock()
	if f, ok := c.faces[name]; ok {
		f.refs++
		c.mu.Unlock()
		return f, nil
	}
	c.mu.Unlock()

	data, err := read()
	if err != nil {
		return nil, &ParseError{Name: name, Err: err}
	}
	eng, err := parse(name, data)
	if err != nil {
		return nil, err
	}
	family, _ := eng.sf.Name(nil, sfnt.NameIDFamily)

	c.mu.Lock()
	if f, ok := c.faces[name]; ok {
		// Lost a race with another loader.
		f.refs++
		c.mu.Unlock()
		return f, nil
	}
	f := &Face{name: name, data: data, family: family, refs: 1, eng: eng}
	c.faces[name] = f
	c.open++
	n := c.evictLocked()
	c.mu.Unlock()

	logEvictions(n)
	Logger().Debug("font: face loaded", "name", name, "family", family)
	return f, nil
}

// acquire opens the handle of f when needed and then locks f for engine
// use. The face is pinned under the cache lock first, so eviction leaves
// its handle alone while it waits for the face lock. The two locks are
// never held together.
func (c *faceCache) acquire(f *Face) (*engine, error) {
	c.mu.Lock()
	f.locks++
	e := f.eng
	c.mu.Unlock()

	if e == nil {
		var err error
		if e, err = parse(f.name, f.data); err != nil {
			c.mu.Lock()
			f.locks--
			c.mu.Unlock()
			return nil, err
		}
		c.mu.Lock()
		if f.eng != nil {
			// Another caller opened it first.
			e = f.eng
		} else {
			f.eng = e
			if c.faces[f.name] == f {
				c.open++
			}
		}
		n := c.evictLocked()
		c.mu.Unlock()
		logEvictions(n)
	}

	f.mu.Lock()
	return e, nil
}

func (c *faceCache) release(f *Face) {
	f.mu.Unlock()

	c.mu.Lock()
	f.locks--
	n := 0
	if f.locks == 0 && c.open > c.maxOpen {
		// Handles opened while every face was busy.
		n = c.evictLocked()
	}
	c.mu.Unlock()
	logEvictions(n)
}

// evictLocked closes idle handles until the open count fits. The victim
// is whichever idle face map iteration yields first. c.mu must be held.
func (c *faceCache) evictLocked() int {
	n := 0
	for c.open > c.maxOpen {
		victim := (*Face)(nil)
		for _, f := range c.faces {
			if f.eng != nil && f.locks == 0 {
				victim = f
				break
			}
		}
		if victim == nil {
			// Every open handle is in use.
			break
		}
		victim.eng = nil
		c.open--
		n++
	}
	return n
}

func logEvictions(n int) {
	if n > 0 {
		Logger().Debug("font: closed idle face handles", "count", n)
	}
}

func (c *faceCache) reference(f *Face) {
	c.mu.Lock()
	f.refs++
	c.mu.Unlock()
}

func (c *faceCache) destroy(f *Face) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f.refs <= 0 {
		return
	}
	f.refs--
	if f.refs > 0 || f.builtin {
		return
	}
	if c.faces[f.name] == f {
		delete(c.faces, f.name)
		if f.eng != nil {
			c.open--
		}
	}
	f.eng = nil
}
