package sequence

import "context"

var _ Sequence[int] = (*sliceSequence[int])(nil)

// sliceSequence pulls elements from an in-memory slice.
// It is splittable: TrySplit carves off the first half of the remaining
// elements, so repeated splits decompose the slice into balanced pieces.
type sliceSequence[T any] struct {
	items []T
	pos   int
}

// FromSlice creates a splittable sequence over items.
// The slice is not copied; callers must not mutate it while pulling.
func FromSlice[T any](items []T) Sequence[T] {
	return &sliceSequence[T]{items: items}
}

func (s *sliceSequence[T]) TryAdvance(_ context.Context) (T, bool, error) {
	var zero T
	if s.pos >= len(s.items) {
		return zero, false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return item, true, nil
}

func (s *sliceSequence[T]) TrySplit() Sequence[T] {
	remaining := len(s.items) - s.pos
	if remaining < 2 {
		return nil
	}
	mid := s.pos + remaining/2
	left := &sliceSequence[T]{items: s.items[s.pos:mid]}
	s.pos = mid
	return left
}

func (s *sliceSequence[T]) EstimateSize() int64 {
	return int64(len(s.items) - s.pos)
}
