// Package sequence provides a pull-based iteration contract for lazily
// produced element streams, with optional parallel decomposition via
// splitting. It is the boundary every source and decorator in this module
// implements.
package sequence

import "context"

// Sequence is the pull contract for a stream of elements.
//
// TryAdvance returns the next element with true, or (zero, false, nil) once
// the sequence is exhausted. Blocking implementations honor ctx and report
// cancellation through the error return; cancellation is never conflated
// with natural end-of-input.
//
// TrySplit carves off a prefix of the remaining elements as an independent
// sub-sequence, or returns nil when the sequence cannot be decomposed.
//
// EstimateSize returns a hint of the remaining element count, 0 when unknown.
type Sequence[T any] interface {
	TryAdvance(ctx context.Context) (T, bool, error)
	TrySplit() Sequence[T]
	EstimateSize() int64
}
