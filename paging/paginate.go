package paging

import (
	"context"
	"fmt"
)

// Paginate counts src, validates page against the resulting page total and
// fetches the rows of that page.
//
// It returns an *OutOfRangeError (matching ErrOutOfRange) when page is outside
// [1, pages], or is anything but 1 when the source is empty; no fetch is
// performed in that case. Failures of the source are returned as *SourceError
// without retry.
func Paginate[T any](ctx context.Context, src Source[T], page int, cfg Config) (*Page[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	perPage := cfg.PerPage

	total, err := src.Count(ctx)
	if err != nil {
		return nil, &SourceError{Op: "count", Err: err}
	}
	if total < 0 {
		return nil, &SourceError{Op: "count", Err: fmt.Errorf("negative count %d", total)}
	}

	p := &Page[T]{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   ceilDiv(total, perPage),
		PrevNum: page - 1,
		NextNum: page + 1,
	}

	if p.Pages == 0 {
		if page != 1 {
			return nil, &OutOfRangeError{Page: page, Pages: 0}
		}
		p.Items = []T{}
		return p, nil
	}

	if page < 1 || page > p.Pages {
		return nil, &OutOfRangeError{Page: page, Pages: p.Pages}
	}

	offset := (page - 1) * perPage
	items, err := src.Fetch(ctx, offset, perPage)
	if err != nil {
		return nil, &SourceError{Op: "fetch", Err: err}
	}
	if items == nil {
		items = []T{}
	}
	// Items never exceeds PerPage, whatever the source returned.
	if len(items) > perPage {
		items = items[:perPage]
	}
	p.Items = items

	p.First = offset + 1
	if page != p.Pages {
		p.Last = offset + perPage
	} else {
		p.Last = total
	}

	return p, nil
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
