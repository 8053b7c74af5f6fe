// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package array provides the growable array used for path segments, clip
// boxes and user-data slots.
//
// The array tracks its capacity (Size) separately from its logical length
// (Len). Capacity grows by doubling and is never released by Truncate, so
// a buffer that is refilled every frame stops allocating after warm-up.
package array

import (
	"errors"
	"math"
	"slices"
)

var (
	// ErrNoMemory is returned when a growth request cannot be satisfied.
	ErrNoMemory = errors.New("array: out of memory")

	// ErrEmptyAppend is returned by AppendMultiple for an empty source.
	ErrEmptyAppend = errors.New("array: append of zero elements")
)

// maxElements bounds the element count so that n*elementSize cannot
// overflow the address range.
const maxElements = math.MaxInt32

// Array is a growable buffer of T.
//
// The zero value is an empty array ready to use; no memory is allocated
// until the first growth.
type Array[T any] struct {
	elems []T // len(elems) is the capacity
	n     int
}

// New returns an empty array. It does not allocate.
func New[T any]() *Array[T] {
	return &Array[T]{}
}

// Len returns the number of elements in the array.
func (a *Array[T]) Len() int { return a.n }

// Size returns the capacity of the array in elements.
func (a *Array[T]) Size() int { return len(a.elems) }

// GrowBy ensures room for n more elements. Capacity doubles (starting at
// one) until it suffices. On failure the array is left unchanged.
func (a *Array[T]) GrowBy(n int) error {
	if n < 0 {
		return ErrNoMemory
	}
	required := a.n + n
	if required < a.n || required > maxElements {
		return ErrNoMemory
	}
	if required <= len(a.elems) {
		return nil
	}

	size := len(a.elems)
	if size == 0 {
		size = 1
	}
	for size < required {
		if size > maxElements/2 {
			size = required
			break
		}
		size *= 2
	}

	grown := make([]T, size)
	copy(grown, a.elems[:a.n])
	a.elems = grown
	return nil
}

// Append adds one element at the end of the array.
func (a *Array[T]) Append(v T) error {
	if err := a.GrowBy(1); err != nil {
		return err
	}
	a.elems[a.n] = v
	a.n++
	return nil
}

// AppendMultiple adds all of vs at the end of the array. Appending an
// empty source is rejected; callers special-case empty inputs.
func (a *Array[T]) AppendMultiple(vs ...T) error {
	if len(vs) == 0 {
		return ErrEmptyAppend
	}
	if err := a.GrowBy(len(vs)); err != nil {
		return err
	}
	copy(a.elems[a.n:], vs)
	a.n += len(vs)
	return nil
}

// Truncate reduces the length to n if n is smaller than Len.
// The capacity is kept.
func (a *Array[T]) Truncate(n int) {
	if n >= 0 && n < a.n {
		clear(a.elems[n:a.n])
		a.n = n
	}
}

// Index returns a pointer to element i.
//
// Index(0) on an empty array returns nil instead of panicking, so callers
// can take the address of the first element of a possibly empty array.
// Any other out-of-range index panics.
func (a *Array[T]) Index(i int) *T {
	if i == 0 && a.n == 0 {
		return nil
	}
	if i < 0 || i >= a.n {
		panic("array: index out of range")
	}
	return &a.elems[i]
}

// Slice returns the logical contents. The slice aliases the array storage
// and is invalidated by the next growth.
func (a *Array[T]) Slice() []T {
	return a.elems[:a.n:a.n]
}

// Sort sorts the logical range in place.
func (a *Array[T]) Sort(cmp func(x, y T) int) {
	slices.SortFunc(a.elems[:a.n], cmp)
}

// Reset sets the length to zero and keeps the capacity.
func (a *Array[T]) Reset() {
	a.Truncate(0)
}
