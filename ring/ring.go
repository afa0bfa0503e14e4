// Package ring provides a fixed-capacity FIFO buffer that overwrites its
// oldest element once full.
//
// A Ring is not safe for concurrent use; callers that share one between
// goroutines must synchronize access themselves.
package ring

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidCapacity is returned by New when capacity is not positive.
var ErrInvalidCapacity = errors.New("ring: invalid capacity")

// Ring is a fixed-capacity circular buffer.
type Ring[T any] struct {
	buf   []T
	next  int // slot the next Add writes
	count int // total values ever added since the last Reset
}

// New creates an empty ring that holds up to capacity values.
func New[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Ring[T]{buf: make([]T, capacity)}, nil
}

// Add appends v, overwriting the oldest value when the ring is full.
func (r *Ring[T]) Add(v T) {
	r.buf[r.next] = v
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
	}
	r.count++
}

// Capacity returns the maximum number of stored values.
func (r *Ring[T]) Capacity() int {
	return len(r.buf)
}

// Count returns how many values have been added since creation or the last
// Reset, including overwritten ones.
func (r *Ring[T]) Count() int {
	return r.count
}

// StoredCount returns how many values are currently held.
func (r *Ring[T]) StoredCount() int {
	return min(r.count, len(r.buf))
}

// IsEmpty reports whether nothing has been added.
func (r *Ring[T]) IsEmpty() bool {
	return r.count == 0
}

// IsFull reports whether the next Add will overwrite a value.
func (r *Ring[T]) IsFull() bool {
	return r.count >= len(r.buf)
}

// ValueToBeRemovedNext returns the value the next Add will overwrite.
// The boolean is false while the ring is not yet full.
func (r *Ring[T]) ValueToBeRemovedNext() (T, bool) {
	if !r.IsFull() {
		var zero T
		return zero, false
	}
	return r.buf[r.next], true
}

// All returns the stored values, oldest first. The sequence reads a snapshot
// taken when All is called, so it may be ranged over any number of times and
// is unaffected by later calls to Add or Reset.
func (r *Ring[T]) All() iter.Seq[T] {
	snap := r.Values()
	return func(yield func(T) bool) {
		for _, v := range snap {
			if !yield(v) {
				return
			}
		}
	}
}

// Values returns a copy of the stored values, oldest first.
func (r *Ring[T]) Values() []T {
	n := r.StoredCount()
	out := make([]T, 0, n)
	if r.count < len(r.buf) {
		return append(out, r.buf[:n]...)
	}
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}

// Reset discards every value. Capacity is unchanged.
func (r *Ring[T]) Reset() {
	clear(r.buf)
	r.next = 0
	r.count = 0
}
