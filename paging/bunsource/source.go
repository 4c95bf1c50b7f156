// Package bunsource adapts a bun select query to paging.Source.
package bunsource

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/simp-lee/alchemist/paging"
)

// Source pages through the rows matched by a bun select query.
type Source[T any] struct {
	query *bun.SelectQuery
}

var _ paging.Source[struct{}] = (*Source[struct{}])(nil)

// New returns a Source over query. The query is cloned on every Fetch so it
// is never mutated.
func New[T any](query *bun.SelectQuery) *Source[T] {
	return &Source[T]{query: query}
}

// Count returns the number of rows matched by the query, ignoring limit and
// offset.
func (s *Source[T]) Count(ctx context.Context) (int, error) {
	return s.query.Clone().Count(ctx)
}

// Fetch returns up to limit rows after skipping offset.
func (s *Source[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	rows := make([]T, 0, limit)
	if err := s.query.Clone().Model(&rows).Offset(offset).Limit(limit).Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}
