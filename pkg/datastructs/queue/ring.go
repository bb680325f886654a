package queue

import "github.com/huynhanx03/go-sequence/pkg/utils"

var _ Queue[int] = (*Ring[int])(nil)

// Ring is a bounded FIFO queue over a power-of-two circular buffer.
// It rejects writes when full rather than growing; callers that need
// backpressure build blocking on top of it.
type Ring[T any] struct {
	buf  []T
	mask uint64
	head uint64 // next write position
	tail uint64 // next read position
}

// NewRing creates a ring with capacity rounded up to a power of two.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 2 {
		capacity = 2
	}
	capacity = utils.CeilToPowerOfTwo(capacity)
	return &Ring[T]{
		buf:  make([]T, capacity),
		mask: uint64(capacity - 1),
	}
}

// Enqueue adds an item. Returns false if the ring is full.
func (r *Ring[T]) Enqueue(item T) bool {
	if r.head-r.tail == uint64(len(r.buf)) {
		return false
	}
	r.buf[r.head&r.mask] = item
	r.head++
	return true
}

// Dequeue removes and returns an item. Returns false if the ring is empty.
func (r *Ring[T]) Dequeue() (T, bool) {
	var zero T
	if r.head == r.tail {
		return zero, false
	}
	item := r.buf[r.tail&r.mask]
	r.buf[r.tail&r.mask] = zero
	r.tail++
	return item, true
}

// Len returns the number of buffered items.
func (r *Ring[T]) Len() int {
	return int(r.head - r.tail)
}

// Capacity returns the maximum number of items the ring can hold.
func (r *Ring[T]) Capacity() int {
	return len(r.buf)
}

// IsFull returns true if no more items can be enqueued.
func (r *Ring[T]) IsFull() bool {
	return r.head-r.tail == uint64(len(r.buf))
}

// IsEmpty returns true if the ring contains no items.
func (r *Ring[T]) IsEmpty() bool {
	return r.head == r.tail
}
