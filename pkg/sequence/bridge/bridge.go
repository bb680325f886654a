// Package bridge converts push-style production into pull-style consumption.
// Any number of producer goroutines feed values in; a single consumer pulls
// them out through the sequence contract, blocking until a value or
// end-of-input is available.
package bridge

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/huynhanx03/go-sequence/pkg/datastructs/queue"
	pkgruntime "github.com/huynhanx03/go-sequence/pkg/runtime"
	"github.com/huynhanx03/go-sequence/pkg/sequence"
)

const (
	// Spinning constants for the consumer's adaptive wait.
	// Active spin: use PAUSE instruction (low power, keeps CPU warm).
	// Park: block on the notify channel.
	activeSpinCycles = 4 // Number of PAUSE cycles per active spin iteration
	activeSpinTries  = 8 // Max active spin iterations before parking
)

var _ sequence.Sequence[int] = (*Bridge[int])(nil)

// Bridge is a thread-safe, unbounded FIFO channel between push-style
// producers and a single pull-style consumer.
//
// Producers call Add concurrently; each producer's own values keep their
// relative order. Close marks end-of-input and is idempotent. The consumer
// drives TryAdvance, which blocks until a value, end-of-input, or ctx
// cancellation.
//
// The protocol is single-consumer: two goroutines pulling concurrently get
// an unspecified partition of the elements between them.
type Bridge[T any] struct {
	lock   sync.Mutex
	queue  *queue.Chunked[T]
	closed bool // Close called
	done   bool // end-of-input observed by the consumer
	notify chan struct{}
	hooks  closeHooks
}

// New creates an open, empty bridge.
func New[T any]() *Bridge[T] {
	return &Bridge[T]{
		queue:  queue.NewChunked[T](),
		notify: make(chan struct{}, 1),
	}
}

// Add enqueues item for the consumer. It never blocks.
//
// Values added after Close but before the consumer has observed end-of-input
// are still delivered (the queue drains fully before the close mark is
// visible). Values added after end-of-input was observed are dropped.
func (b *Bridge[T]) Add(item T) {
	b.lock.Lock()
	if b.done {
		b.lock.Unlock()
		return
	}
	b.queue.Enqueue(item)
	b.lock.Unlock()
	wake(b.notify)
}

// Close marks end-of-input. The consumer observes it only after every value
// enqueued before Close has been delivered. A second call is a no-op.
func (b *Bridge[T]) Close() {
	b.lock.Lock()
	if b.closed {
		b.lock.Unlock()
		return
	}
	b.closed = true
	b.lock.Unlock()
	wake(b.notify)
}

// AddCloseHook registers fn to run once, when the consumer first observes
// end-of-input. Hooks run synchronously on the consumer goroutine, in
// registration order. Registering after end-of-input runs fn immediately.
func (b *Bridge[T]) AddCloseHook(fn func()) {
	b.hooks.add(fn)
}

// TryAdvance blocks until a value or end-of-input is available.
//
// On a value it returns (value, true, nil). On end-of-input it fires the
// close hooks exactly once and returns (zero, false, nil), and keeps
// returning that on every later call. If ctx is cancelled before either is
// available, the cancellation is surfaced as an error, never as a silent
// end-of-input.
func (b *Bridge[T]) TryAdvance(ctx context.Context) (T, bool, error) {
	var zero T
	for spin := 0; ; spin++ {
		b.lock.Lock()
		if item, ok := b.queue.Dequeue(); ok {
			b.lock.Unlock()
			return item, true, nil
		}
		if b.closed {
			b.done = true
			b.lock.Unlock()
			b.hooks.fire()
			return zero, false, nil
		}
		b.lock.Unlock()

		if err := ctx.Err(); err != nil {
			return zero, false, errors.Wrap(err, "bridge: pull cancelled")
		}

		// Producers are often mid-publish; spin briefly before parking.
		if spin < activeSpinTries {
			pkgruntime.Procyield(activeSpinCycles)
			continue
		}

		select {
		case <-b.notify:
		case <-ctx.Done():
			return zero, false, errors.Wrap(ctx.Err(), "bridge: pull cancelled")
		}
		spin = 0
	}
}

// TrySplit always returns nil: a bridge is a single logical input stream.
func (b *Bridge[T]) TrySplit() sequence.Sequence[T] {
	return nil
}

// EstimateSize returns 0: the number of values still to arrive is unknown.
func (b *Bridge[T]) EstimateSize() int64 {
	return 0
}

// Len returns the number of values currently buffered.
func (b *Bridge[T]) Len() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.queue.Len()
}
