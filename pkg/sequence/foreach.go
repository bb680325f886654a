package sequence

import "context"

// ForEach drives seq to exhaustion, invoking fn on every element in pull
// order. It stops on the first error from the sequence or from fn and
// returns it; a nil return means the sequence ended naturally.
func ForEach[T any](ctx context.Context, seq Sequence[T], fn func(T) error) error {
	for {
		item, ok, err := seq.TryAdvance(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(item); err != nil {
			return err
		}
	}
}

// Collect drains seq into a slice.
func Collect[T any](ctx context.Context, seq Sequence[T]) ([]T, error) {
	var out []T
	if hint := seq.EstimateSize(); hint > 0 {
		out = make([]T, 0, hint)
	}
	err := ForEach(ctx, seq, func(item T) error {
		out = append(out, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
