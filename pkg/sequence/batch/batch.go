// Package batch groups consecutive elements of a source sequence into
// ordered, size-bounded slices. Grouping is live: elements are pulled from
// the source on demand, never drained eagerly, so a batcher over a bridge
// starts yielding as soon as enough elements have arrived.
package batch

import (
	"context"

	"github.com/huynhanx03/go-sequence/pkg/sequence"
	"github.com/huynhanx03/go-sequence/pkg/utils"
)

var _ sequence.Sequence[[]int] = (*Batcher[int])(nil)

// Batcher wraps a source sequence of T and yields []T groups of at most
// size elements. Every yielded batch has between 1 and size elements; the
// final batch may be short; an empty batch is never yielded.
type Batcher[T any] struct {
	source sequence.Sequence[T]
	size   int
}

// New creates a batcher over source. size is clamped to a minimum of 1.
func New[T any](source sequence.Sequence[T], size int) *Batcher[T] {
	if size < 1 {
		size = 1
	}
	return &Batcher[T]{source: source, size: size}
}

// TryAdvance pulls from the source until the batch is full or the source
// ends. A source failure propagates and discards the partial batch.
func (b *Batcher[T]) TryAdvance(ctx context.Context) ([]T, bool, error) {
	group := make([]T, 0, b.size)
	for len(group) < b.size {
		item, ok, err := b.source.TryAdvance(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			break
		}
		group = append(group, item)
	}

	if len(group) == 0 {
		return nil, false, nil
	}
	return group, true, nil
}

// TrySplit delegates to the source: if the source yields a sub-sequence it
// is wrapped in a batcher with the same size, otherwise nil. A batcher over
// a bridge is therefore never splittable.
func (b *Batcher[T]) TrySplit() sequence.Sequence[[]T] {
	sub := b.source.TrySplit()
	if sub == nil {
		return nil
	}
	return New(sub, b.size)
}

// EstimateSize returns ceil(source estimate / size).
func (b *Batcher[T]) EstimateSize() int64 {
	return utils.CeilDiv(b.source.EstimateSize(), int64(b.size))
}
