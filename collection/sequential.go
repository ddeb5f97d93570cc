package collection

import "context"

// ForEach calls fn for each element in order, waiting for each call before
// starting the next. It stops at the first error and returns it; later
// elements are never visited.
func ForEach[T any](ctx context.Context, items []T, fn func(context.Context, T) error) error {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// Map transforms each element in order, stopping at the first error.
func Map[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := fn(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// CompactMap transforms each element in order and keeps only results whose
// ok flag is true, stopping at the first error.
func CompactMap[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, bool, error)) ([]R, error) {
	out := make([]R, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, ok, err := fn(ctx, item)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// FlatMap transforms each element into a slice, in order, and concatenates
// the slices, stopping at the first error.
func FlatMap[T, R any](ctx context.Context, items []T, fn func(context.Context, T) ([]R, error)) ([]R, error) {
	out := make([]R, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vs, err := fn(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}
