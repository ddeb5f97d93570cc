package collection

import "context"

// ConcurrentForEach runs fn for every element concurrently and waits for all
// launched calls to finish.
func ConcurrentForEach[T any](ctx context.Context, items []T, fn func(context.Context, T) error, opts ...Option) error {
	_, err := execute(ctx, "concurrent_for_each", items, func(ctx context.Context, item T) (struct{}, error) {
		return struct{}{}, fn(ctx, item)
	}, opts)
	return err
}

// ConcurrentMap runs fn for every element concurrently and returns the
// results in input order.
func ConcurrentMap[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error), opts ...Option) ([]R, error) {
	return execute(ctx, "concurrent_map", items, fn, opts)
}

type maybe[R any] struct {
	value R
	ok    bool
}

// ConcurrentCompactMap is ConcurrentMap that drops every result whose ok
// flag is false. The remaining results keep their input order.
func ConcurrentCompactMap[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, bool, error), opts ...Option) ([]R, error) {
	results, err := execute(ctx, "concurrent_compact_map", items, func(ctx context.Context, item T) (maybe[R], error) {
		v, ok, err := fn(ctx, item)
		return maybe[R]{value: v, ok: ok}, err
	}, opts)
	if err != nil {
		return nil, err
	}

	out := make([]R, 0, len(results))
	for _, r := range results {
		if r.ok {
			out = append(out, r.value)
		}
	}
	return out, nil
}

// ConcurrentFlatMap runs fn for every element concurrently and concatenates
// the returned slices, in element order and then in slice order.
func ConcurrentFlatMap[T, R any](ctx context.Context, items []T, fn func(context.Context, T) ([]R, error), opts ...Option) ([]R, error) {
	results, err := execute(ctx, "concurrent_flat_map", items, fn, opts)
	if err != nil {
		return nil, err
	}

	n := 0
	for _, r := range results {
		n += len(r)
	}
	out := make([]R, 0, n)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
