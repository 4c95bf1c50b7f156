// Package gormsource adapts a gorm query to paging.Source.
package gormsource

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/alchemist/paging"
)

// Source pages through the rows matched by a gorm query.
type Source[T any] struct {
	query *gorm.DB
}

var _ paging.Source[struct{}] = (*Source[struct{}])(nil)

// New returns a Source over query. Filters, joins and ordering already applied
// to query are kept; any limit or offset is dropped. When query has no model
// yet, T is used.
func New[T any](query *gorm.DB) *Source[T] {
	if query.Statement.Model == nil {
		query = query.Model(new(T))
	}
	// gorm merges Offset(0) into an existing offset, so clear both up front.
	query = query.Offset(-1).Limit(-1)
	return &Source[T]{query: query.Session(&gorm.Session{})}
}

// Count returns the number of rows matched by the query.
func (s *Source[T]) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.query.WithContext(ctx).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

// Fetch returns up to limit rows after skipping offset.
func (s *Source[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	var rows []T
	if err := s.query.WithContext(ctx).Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
