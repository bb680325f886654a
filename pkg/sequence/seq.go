package sequence

import (
	"context"
	"iter"
)

var _ Sequence[int] = (*seqSequence[int])(nil)

// seqSequence adapts a range-over-func iterator to the pull contract.
type seqSequence[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

// FromSeq creates a non-splittable sequence over a standard iterator.
// The underlying iterator is stopped when the sequence reports
// end-of-input; a sequence abandoned before exhaustion leaves the
// iterator un-stopped.
func FromSeq[T any](seq iter.Seq[T]) Sequence[T] {
	next, stop := iter.Pull(seq)
	return &seqSequence[T]{next: next, stop: stop}
}

func (s *seqSequence[T]) TryAdvance(_ context.Context) (T, bool, error) {
	var zero T
	if s.done {
		return zero, false, nil
	}
	item, ok := s.next()
	if !ok {
		s.done = true
		s.stop()
		return zero, false, nil
	}
	return item, true, nil
}

func (s *seqSequence[T]) TrySplit() Sequence[T] {
	return nil
}

func (s *seqSequence[T]) EstimateSize() int64 {
	return 0
}
