package queue

import "sync"

// chunkSize is the number of element slots per linked-list node.
const chunkSize = 64

var _ Queue[int] = (*Chunked[int])(nil)

// chunk is a single fixed-size node in the linked chunk list.
type chunk[T any] struct {
	elems [chunkSize]T
	next  *chunk[T]
}

// Chunked is an unbounded FIFO queue backed by a linked list of fixed-size
// chunks. Chunks are recycled through a sync.Pool so steady-state operation
// allocates nothing. Dequeued slots are zeroed so the queue never pins
// element memory past consumption.
type Chunked[T any] struct {
	head    *chunk[T]
	tail    *chunk[T]
	headIdx int // next read position in head
	tailIdx int // next write position in tail
	length  int

	pool *sync.Pool
}

// NewChunked creates an empty unbounded chunked queue.
func NewChunked[T any]() *Chunked[T] {
	return &Chunked[T]{
		pool: &sync.Pool{
			New: func() any {
				return new(chunk[T])
			},
		},
	}
}

// Enqueue adds an item to the tail. It always succeeds.
func (q *Chunked[T]) Enqueue(item T) bool {
	if q.tail == nil || q.tailIdx == chunkSize {
		c := q.pool.Get().(*chunk[T])
		if q.tail == nil {
			q.head = c
		} else {
			q.tail.next = c
		}
		q.tail = c
		q.tailIdx = 0
	}

	q.tail.elems[q.tailIdx] = item
	q.tailIdx++
	q.length++
	return true
}

// Dequeue removes and returns the head item.
// Returns (zero, false) if the queue is empty.
func (q *Chunked[T]) Dequeue() (T, bool) {
	var zero T
	if q.length == 0 {
		return zero, false
	}

	item := q.head.elems[q.headIdx]
	q.head.elems[q.headIdx] = zero
	q.headIdx++
	q.length--

	if q.headIdx == chunkSize {
		drained := q.head
		q.head = drained.next
		q.headIdx = 0

		drained.next = nil
		q.pool.Put(drained)

		if q.head == nil {
			q.tail = nil
			q.tailIdx = 0
		}
	}

	return item, true
}

// Len returns the number of buffered items.
func (q *Chunked[T]) Len() int {
	return q.length
}

// IsEmpty returns true if the queue contains no items.
func (q *Chunked[T]) IsEmpty() bool {
	return q.length == 0
}

// Clear drains all items and returns every chunk to the pool.
func (q *Chunked[T]) Clear() {
	for {
		if _, ok := q.Dequeue(); !ok {
			break
		}
	}
	if q.head != nil {
		q.head.next = nil
		q.pool.Put(q.head)
		q.head = nil
		q.tail = nil
		q.headIdx = 0
		q.tailIdx = 0
	}
}
