package bridge

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/huynhanx03/go-sequence/pkg/datastructs/queue"
	"github.com/huynhanx03/go-sequence/pkg/sequence"
)

var _ sequence.Sequence[int] = (*Bounded[int])(nil)

// Bounded is the fixed-capacity variant of Bridge. Producers feel
// backpressure when the buffer is full: TryAdd rejects, Add blocks until the
// consumer makes room. Close, hooks, and consumer semantics match Bridge.
type Bounded[T any] struct {
	lock     sync.Mutex
	ring     *queue.Ring[T]
	closed   bool
	done     bool
	notEmpty chan struct{}
	notFull  chan struct{}
	hooks    closeHooks
}

// NewBounded creates an open bridge holding at most capacity values
// (rounded up to a power of two).
func NewBounded[T any](capacity int) *Bounded[T] {
	return &Bounded[T]{
		ring:     queue.NewRing[T](capacity),
		notEmpty: make(chan struct{}, 1),
		notFull:  make(chan struct{}, 1),
	}
}

// TryAdd enqueues item without blocking.
// Returns false if the buffer is full or the stream has terminated.
func (b *Bounded[T]) TryAdd(item T) bool {
	b.lock.Lock()
	if b.done || !b.ring.Enqueue(item) {
		b.lock.Unlock()
		return false
	}
	b.lock.Unlock()
	wake(b.notEmpty)
	return true
}

// Add enqueues item, blocking while the buffer is full. It returns
// ErrClosed if the stream has terminated, or the cancellation error if ctx
// ends the wait.
func (b *Bounded[T]) Add(ctx context.Context, item T) error {
	for {
		b.lock.Lock()
		if b.done {
			b.lock.Unlock()
			// Cascade the wakeup so other blocked producers also observe
			// the termination.
			wake(b.notFull)
			return ErrClosed
		}
		if b.ring.Enqueue(item) {
			full := b.ring.IsFull()
			b.lock.Unlock()
			wake(b.notEmpty)
			if !full {
				// Pass the credit on: the token channel holds at most one
				// wakeup, so consecutive dequeues can free more slots than
				// tokens. Another blocked producer takes the spare slot.
				wake(b.notFull)
			}
			return nil
		}
		b.lock.Unlock()

		select {
		case <-b.notFull:
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "bridge: add cancelled")
		}
	}
}

// Close marks end-of-input. Idempotent. Buffered values are still delivered
// before the consumer observes the end.
func (b *Bounded[T]) Close() {
	b.lock.Lock()
	if b.closed {
		b.lock.Unlock()
		return
	}
	b.closed = true
	b.lock.Unlock()
	wake(b.notEmpty)
}

// AddCloseHook registers fn to run once at end-of-input, as on Bridge.
func (b *Bounded[T]) AddCloseHook(fn func()) {
	b.hooks.add(fn)
}

// TryAdvance blocks until a value, end-of-input, or ctx cancellation.
// Semantics match Bridge.TryAdvance.
func (b *Bounded[T]) TryAdvance(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		b.lock.Lock()
		if item, ok := b.ring.Dequeue(); ok {
			b.lock.Unlock()
			wake(b.notFull)
			return item, true, nil
		}
		if b.closed {
			b.done = true
			b.lock.Unlock()
			wake(b.notFull)
			b.hooks.fire()
			return zero, false, nil
		}
		b.lock.Unlock()

		select {
		case <-b.notEmpty:
		case <-ctx.Done():
			return zero, false, errors.Wrap(ctx.Err(), "bridge: pull cancelled")
		}
	}
}

// TrySplit always returns nil.
func (b *Bounded[T]) TrySplit() sequence.Sequence[T] {
	return nil
}

// EstimateSize returns 0: the number of values still to arrive is unknown.
func (b *Bounded[T]) EstimateSize() int64 {
	return 0
}

// Len returns the number of values currently buffered.
func (b *Bounded[T]) Len() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.ring.Len()
}

// Cap returns the buffer capacity.
func (b *Bounded[T]) Cap() int {
	return b.ring.Capacity()
}

func wake(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
