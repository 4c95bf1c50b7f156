package paging

import "context"

// Source is an ordered, filterable collection that can report its size and
// return a bounded slice of its rows.
//
// Count returns the number of matching rows, ignoring any limit or offset
// already applied to the underlying query. Fetch returns at most limit rows in
// the source's canonical order after skipping offset rows. Implementations own
// their concurrency safety; Paginate calls Count and then at most one Fetch.
type Source[T any] interface {
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, offset, limit int) ([]T, error)
}

// SliceSource serves rows from an in-memory slice.
type SliceSource[T any] struct {
	rows []T
}

// NewSliceSource returns a Source over rows. The slice is not copied.
func NewSliceSource[T any](rows []T) *SliceSource[T] {
	return &SliceSource[T]{rows: rows}
}

// Count returns len(rows).
func (s *SliceSource[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.rows), nil
}

// Fetch returns a copy of rows[offset:offset+limit], clipped to the slice.
func (s *SliceSource[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 || offset >= len(s.rows) || limit <= 0 {
		return []T{}, nil
	}
	end := min(offset+limit, len(s.rows))
	out := make([]T, end-offset)
	copy(out, s.rows[offset:end])
	return out, nil
}
