// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vg

// defaultGStatePoolSize is the number of released gstates a context keeps
// for reuse.
const defaultGStatePoolSize = 4

// gstatePool recycles gstates of one context. It is drained when the
// context is destroyed.
type gstatePool struct {
	free  []*gstate
	limit int
	// allocated counts gstates created by this pool.
	allocated int
}

func (p *gstatePool) get() *gstate {
	if n := len(p.free); n > 0 {
		g := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return g
	}
	p.allocated++
	if p.allocated > p.limit {
		Logger().Debug("vg: gstate pool exhausted", "allocated", p.allocated, "limit", p.limit)
	}
	return new(gstate)
}

func (p *gstatePool) put(g *gstate) {
	if len(p.free) < p.limit {
		p.free = append(p.free, g)
	}
}

func (p *gstatePool) drain() {
	clear(p.free)
	p.free = p.free[:0]
	p.allocated = 0
}
