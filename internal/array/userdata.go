// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package array

// Key identifies a user-data slot by the address of a value. Two keys are
// equal only if they are the same pointer.
type Key struct {
	_ byte // non-zero size so distinct keys have distinct addresses
}

// DestroyFunc releases a user-data value.
type DestroyFunc func(value any)

type slot struct {
	key     *Key
	value   any
	destroy DestroyFunc
}

// UserData is a small table of (key, value, destructor) triples.
// Lookups scan linearly; tables are expected to hold a handful of entries.
type UserData struct {
	slots Array[slot]
}

// Set attaches value to key. A previous value for key is destroyed first.
// A nil value removes the slot.
func (u *UserData) Set(key *Key, value any, destroy DestroyFunc) error {
	if key == nil {
		return nil
	}

	free := -1
	slots := u.slots.Slice()
	for i := range slots {
		s := &slots[i]
		if s.key == key {
			old, oldDestroy := s.value, s.destroy
			if value == nil {
				*s = slot{}
			} else {
				*s = slot{key: key, value: value, destroy: destroy}
			}
			if old != nil && oldDestroy != nil {
				oldDestroy(old)
			}
			return nil
		}
		if s.key == nil && free < 0 {
			free = i
		}
	}

	if value == nil {
		return nil
	}
	if free >= 0 {
		slots[free] = slot{key: key, value: value, destroy: destroy}
		return nil
	}
	return u.slots.Append(slot{key: key, value: value, destroy: destroy})
}

// Get returns the value attached to key, or nil.
func (u *UserData) Get(key *Key) any {
	if key == nil {
		return nil
	}
	for _, s := range u.slots.Slice() {
		if s.key == key {
			return s.value
		}
	}
	return nil
}

// Len returns the number of occupied slots.
func (u *UserData) Len() int {
	n := 0
	for _, s := range u.slots.Slice() {
		if s.key != nil {
			n++
		}
	}
	return n
}

// Fini destroys every value exactly once and empties the table.
func (u *UserData) Fini() {
	slots := u.slots.Slice()
	u.slots = Array[slot]{}
	for _, s := range slots {
		if s.value != nil && s.destroy != nil {
			s.destroy(s.value)
		}
	}
}
