package batch

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/huynhanx03/go-sequence/pkg/sequence"
	"github.com/huynhanx03/go-sequence/pkg/utils"
)

var _ sequence.Sequence[[]int] = (*Timed[int])(nil)

// Timed is a batcher that also bounds how long a batch may wait for its
// remaining elements. Once the first element of a batch arrives, the batch
// is flushed after maxWait even if it is short. Waiting for the first
// element of a batch is unbounded (only caller cancellation ends it), so an
// idle source produces no empty batches.
type Timed[T any] struct {
	source  sequence.Sequence[T]
	size    int
	maxWait time.Duration
}

// NewTimed creates a time-bounded batcher over source. size is clamped to a
// minimum of 1.
func NewTimed[T any](source sequence.Sequence[T], size int, maxWait time.Duration) *Timed[T] {
	if size < 1 {
		size = 1
	}
	return &Timed[T]{source: source, size: size, maxWait: maxWait}
}

// TryAdvance yields the next batch: full if size elements arrive within
// maxWait of the first, short otherwise. Caller cancellation and source
// failures propagate and discard the partial batch.
func (b *Timed[T]) TryAdvance(ctx context.Context) ([]T, bool, error) {
	first, ok, err := b.source.TryAdvance(ctx)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	group := make([]T, 0, b.size)
	group = append(group, first)
	if b.size == 1 {
		return group, true, nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, b.maxWait)
	defer cancel()

	for len(group) < b.size {
		item, ok, err := b.source.TryAdvance(waitCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && waitCtx.Err() != nil && ctx.Err() == nil {
				// The flush window elapsed; deliver what we have. Any
				// other source failure discards the partial batch.
				return group, true, nil
			}
			return nil, false, err
		}
		if !ok {
			break
		}
		group = append(group, item)
	}
	return group, true, nil
}

// TrySplit always returns nil: time-based grouping is inherently sequential.
func (b *Timed[T]) TrySplit() sequence.Sequence[[]T] {
	return nil
}

// EstimateSize returns ceil(source estimate / size).
func (b *Timed[T]) EstimateSize() int64 {
	return utils.CeilDiv(b.source.EstimateSize(), int64(b.size))
}
