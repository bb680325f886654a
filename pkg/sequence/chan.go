package sequence

import (
	"context"

	"github.com/pkg/errors"
)

var _ Sequence[int] = (*chanSequence[int])(nil)

// chanSequence pulls elements from a receive channel until it is closed.
type chanSequence[T any] struct {
	ch <-chan T
}

// FromChan creates a non-splittable sequence that pulls from ch.
// End-of-input is observed when ch is closed. A pull blocked on an open,
// empty channel is aborted by ctx and surfaces the cancellation error.
func FromChan[T any](ch <-chan T) Sequence[T] {
	return &chanSequence[T]{ch: ch}
}

func (s *chanSequence[T]) TryAdvance(ctx context.Context) (T, bool, error) {
	var zero T
	select {
	case item, ok := <-s.ch:
		if !ok {
			return zero, false, nil
		}
		return item, true, nil
	case <-ctx.Done():
		return zero, false, errors.Wrap(ctx.Err(), "sequence: pull cancelled")
	}
}

func (s *chanSequence[T]) TrySplit() Sequence[T] {
	return nil
}

func (s *chanSequence[T]) EstimateSize() int64 {
	return 0
}
